package fetcher

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// XLSXOptions configures the XLSX parser.
type XLSXOptions struct {
	SheetName string // default is the first sheet
	SkipRows  int    // number of leading rows to skip

	// RawNumbers returns the stored value of numeric cells instead of the
	// text produced by the cell's number format.
	RawNumbers bool
}

// ReadXLSX reads an XLSX file and returns all rows as string slices.
func ReadXLSX(path string, opts XLSXOptions) ([][]string, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "xlsx: open file")
	}
	return readRows(f, opts)
}

// ReadXLSXBinary parses an in-memory XLSX workbook and returns all rows of the
// selected sheet as string slices.
func ReadXLSXBinary(data []byte, opts XLSXOptions) ([][]string, error) {
	f, err := xlsx.OpenBinary(data)
	if err != nil {
		return nil, eris.Wrap(err, "xlsx: open binary")
	}
	return readRows(f, opts)
}

func readRows(f *xlsx.File, opts XLSXOptions) ([][]string, error) {
	sheet, err := getSheet(f, opts)
	if err != nil {
		return nil, err
	}

	var rows [][]string
	for i, row := range sheet.Rows {
		if i < opts.SkipRows {
			continue
		}
		rows = append(rows, rowToStrings(row, opts.RawNumbers))
	}

	return rows, nil
}

func getSheet(f *xlsx.File, opts XLSXOptions) (*xlsx.Sheet, error) {
	if opts.SheetName != "" {
		sheet, ok := f.Sheet[opts.SheetName]
		if !ok {
			return nil, eris.Errorf("xlsx: sheet %q not found", opts.SheetName)
		}
		return sheet, nil
	}

	if len(f.Sheets) == 0 {
		return nil, eris.New("xlsx: workbook has no sheets")
	}

	return f.Sheets[0], nil
}

func rowToStrings(row *xlsx.Row, rawNumbers bool) []string {
	if row == nil {
		return nil
	}
	cells := make([]string, len(row.Cells))
	for j, cell := range row.Cells {
		if rawNumbers && cell.Type() == xlsx.CellTypeNumeric {
			cells[j] = cell.Value
			continue
		}
		cells[j] = cell.String()
	}
	return cells
}

// Table is a header-addressed view over rows read from a spreadsheet.
type Table struct {
	Header []string
	Rows   [][]string
	colIdx map[string]int
}

// NewTable treats the first row as the header and the rest as data rows.
func NewTable(rows [][]string) (*Table, error) {
	if len(rows) == 0 {
		return nil, eris.New("table: no header row")
	}
	header := cleanHeader(rows[0])
	colIdx := make(map[string]int, len(header))
	for i, col := range header {
		if _, dup := colIdx[col]; !dup {
			colIdx[col] = i
		}
	}
	return &Table{Header: header, Rows: rows[1:], colIdx: colIdx}, nil
}

// Has reports whether the header contains col.
func (t *Table) Has(col string) bool {
	_, ok := t.colIdx[col]
	return ok
}

// Require returns an error naming the first of cols missing from the header.
func (t *Table) Require(cols ...string) error {
	if missing := missingColumns(t.Header, cols); len(missing) > 0 {
		return eris.Errorf("table: missing required column %q", missing[0])
	}
	return nil
}

// Get safely retrieves the trimmed value of col from row. Unknown columns and
// short rows yield "".
func (t *Table) Get(row []string, col string) string {
	idx, ok := t.colIdx[col]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// BlankRow reports whether every cell of row is empty after trimming.
func BlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
