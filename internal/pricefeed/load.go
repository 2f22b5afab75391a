package pricefeed

import (
	"strconv"

	"github.com/rotisserie/eris"

	"github.com/sells-group/marketplace-cli/internal/fetcher"
	"github.com/sells-group/marketplace-cli/internal/model"
)

// Price list columns.
const (
	ColSKU           = "SKU"
	ColSellingPrice  = "Selling Price"
	ColBusinessPrice = "Business Price"
)

// SheetOptions locates the price list inside a workbook.
type SheetOptions struct {
	Sheet    string // sheet name; empty means the first sheet
	SkipRows int    // rows above the header row
}

// Numeric cells are read as stored, not as the cell's number format shows
// them, so a "$#,##0" format neither rounds nor breaks a price.
func (o SheetOptions) xlsx() fetcher.XLSXOptions {
	return fetcher.XLSXOptions{SheetName: o.Sheet, SkipRows: o.SkipRows, RawNumbers: true}
}

// Load reads a price list from the XLSX file at path.
func Load(path string, opts SheetOptions) ([]model.PriceRecord, error) {
	rows, err := fetcher.ReadXLSX(path, opts.xlsx())
	if err != nil {
		return nil, eris.Wrap(err, "pricefeed: read price list")
	}
	return parseRows(rows, opts.SkipRows)
}

// Parse reads a price list from an in-memory XLSX workbook.
func Parse(data []byte, opts SheetOptions) ([]model.PriceRecord, error) {
	rows, err := fetcher.ReadXLSXBinary(data, opts.xlsx())
	if err != nil {
		return nil, eris.Wrap(err, "pricefeed: read price list")
	}
	return parseRows(rows, opts.SkipRows)
}

// parseRows maps spreadsheet rows to price records. The first row is the
// header; SKU and Selling Price are required, Business Price is optional.
// Fully blank rows are skipped. skipped is the number of rows read past
// above the header, used to report spreadsheet row numbers.
func parseRows(rows [][]string, skipped int) ([]model.PriceRecord, error) {
	tbl, err := fetcher.NewTable(rows)
	if err != nil {
		return nil, eris.Wrap(err, "pricefeed: read header")
	}
	if err := tbl.Require(ColSKU, ColSellingPrice); err != nil {
		return nil, eris.Wrap(err, "pricefeed")
	}
	hasBusiness := tbl.Has(ColBusinessPrice)

	var records []model.PriceRecord
	for i, row := range tbl.Rows {
		if fetcher.BlankRow(row) {
			continue
		}
		rowNum := skipped + i + 2 // header is row skipped+1

		sku := tbl.Get(row, ColSKU)
		if sku == "" {
			return nil, eris.Errorf("pricefeed: row %d: empty %s", rowNum, ColSKU)
		}

		selling, err := parsePrice(tbl.Get(row, ColSellingPrice))
		if err != nil {
			return nil, eris.Wrapf(err, "pricefeed: row %d: %s", rowNum, ColSellingPrice)
		}

		rec := model.PriceRecord{Row: rowNum, SKU: sku, SellingPrice: selling}

		if hasBusiness {
			if raw := tbl.Get(row, ColBusinessPrice); raw != "" {
				business, err := parsePrice(raw)
				if err != nil {
					return nil, eris.Wrapf(err, "pricefeed: row %d: %s", rowNum, ColBusinessPrice)
				}
				rec.BusinessPrice = &business
			}
		}

		records = append(records, rec)
	}

	return records, nil
}

func parsePrice(s string) (float64, error) {
	if s == "" {
		return 0, eris.New("empty price")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, eris.Errorf("malformed price %q", s)
	}
	return v, nil
}

// FormatPrice renders a price as its shortest decimal text, e.g. 9.99 or 10.
func FormatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
