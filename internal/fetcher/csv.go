// Package fetcher reads tabular input (CSV, XLSX) and fetches remote pages.
package fetcher

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"
)

// CSVOptions configures CSV decoding.
type CSVOptions struct {
	Delimiter  rune // default ','
	LazyQuotes bool
	TrimSpace  bool     // trim surrounding whitespace from every value
	Required   []string // header columns that must be present
}

// DecodeCSV reads a CSV whose first row is a header and decodes every
// following row into T using T's `csv` struct tags. Columns without a
// matching field are ignored. A missing required column is an error. Short
// rows are padded with empty values and long rows are cut to the header.
func DecodeCSV[T any](r io.Reader, opts CSVOptions) ([]T, error) {
	reader := csv.NewReader(r)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	reader.LazyQuotes = opts.LazyQuotes
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, eris.New("csv: empty input, no header row")
	}
	if err != nil {
		return nil, eris.Wrap(err, "csv: read header")
	}
	header = cleanHeader(header)

	if missing := missingColumns(header, opts.Required); len(missing) > 0 {
		return nil, eris.Errorf("csv: missing required column %q", missing[0])
	}

	dec, err := csvutil.NewDecoder(reader, header...)
	if err != nil {
		return nil, eris.Wrap(err, "csv: create decoder")
	}
	dec.AlignRecord = true
	if opts.TrimSpace {
		dec.Map = func(field, _ string, _ any) string {
			return strings.TrimSpace(field)
		}
	}

	var out []T
	for {
		var v T
		err := dec.Decode(&v)
		if err == io.EOF {
			break
		}
		if err != nil {
			// +2: one for the header, one for 1-based numbering.
			return nil, eris.Wrapf(err, "csv: decode line %d", len(out)+2)
		}
		out = append(out, v)
	}

	return out, nil
}

// cleanHeader trims whitespace and a leading UTF-8 byte order mark from
// header names.
func cleanHeader(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		out[i] = strings.TrimSpace(h)
	}
	return out
}

func missingColumns(header, required []string) []string {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[h] = true
	}
	var missing []string
	for _, col := range required {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	return missing
}
