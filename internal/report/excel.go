package report

import (
	"io"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"

	"github.com/sells-group/marketplace-cli/internal/model"
)

// Workbook sheet names, in the order they are written.
const (
	SheetStateOrders    = "State Orders"
	SheetCategoryOrders = "Category Orders"
	SheetTopProducts    = "Top 20 Products"
)

// Value column headers.
const (
	ColTotalSales = "Total Sales"
)

// SheetNames lists the workbook sheets in write order.
var SheetNames = []string{SheetStateOrders, SheetCategoryOrders, SheetTopProducts}

// Workbook builds the three-sheet summary workbook.
func (r *Report) Workbook() (*xlsx.File, error) {
	f := xlsx.NewFile()

	if err := addCountSheet(f, SheetStateOrders, ColShipState, r.StateOrders()); err != nil {
		return nil, err
	}
	if err := addCountSheet(f, SheetCategoryOrders, ColCategory, r.CategoryOrders()); err != nil {
		return nil, err
	}

	sheet, err := f.AddSheet(SheetTopProducts)
	if err != nil {
		return nil, eris.Wrapf(err, "report: add sheet %q", SheetTopProducts)
	}
	addHeader(sheet, ColASIN, ColQty)
	for _, p := range r.Top20Products() {
		row := sheet.AddRow()
		row.AddCell().SetString(p.ASIN)
		row.AddCell().SetInt(p.Qty)
	}

	return f, nil
}

// SaveToExcel writes the summary workbook to path.
func (r *Report) SaveToExcel(path string) error {
	f, err := r.Workbook()
	if err != nil {
		return err
	}
	if err := f.Save(path); err != nil {
		return eris.Wrap(err, "report: save workbook")
	}

	zap.L().Info("reports saved",
		zap.String("path", path),
		zap.Int("orders", r.Len()),
	)
	return nil
}

// WriteExcel streams the summary workbook to w.
func (r *Report) WriteExcel(w io.Writer) error {
	f, err := r.Workbook()
	if err != nil {
		return err
	}
	if err := f.Write(w); err != nil {
		return eris.Wrap(err, "report: write workbook")
	}
	return nil
}

func addCountSheet(f *xlsx.File, name, keyCol string, counts []model.GroupCount) error {
	sheet, err := f.AddSheet(name)
	if err != nil {
		return eris.Wrapf(err, "report: add sheet %q", name)
	}
	addHeader(sheet, keyCol, ColTotalSales)
	for _, c := range counts {
		row := sheet.AddRow()
		row.AddCell().SetString(c.Key)
		row.AddCell().SetInt(c.Total)
	}
	return nil
}

func addHeader(sheet *xlsx.Sheet, cols ...string) {
	row := sheet.AddRow()
	for _, col := range cols {
		row.AddCell().SetString(col)
	}
}
