package pricefeed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
)

func createPriceXLSX(t *testing.T, dir string, rows [][]string) string {
	t.Helper()
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Prices")
	require.NoError(t, err)
	for _, rowData := range rows {
		row := sheet.AddRow()
		for _, cellData := range rowData {
			row.AddCell().SetString(cellData)
		}
	}
	path := filepath.Join(dir, "prices.xlsx")
	require.NoError(t, f.Save(path))
	return path
}

func TestLoad_Basic(t *testing.T) {
	path := createPriceXLSX(t, t.TempDir(), [][]string{
		{"SKU", "Selling Price", "Business Price"},
		{"A1", "9.99", "9.99"},
		{"A2", "9.99", "7.99"},
		{"A3", "4.50", ""},
	})

	records, err := Load(path, SheetOptions{})
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "A1", records[0].SKU)
	assert.Equal(t, 2, records[0].Row)
	assert.InDelta(t, 9.99, records[0].SellingPrice, 1e-9)
	require.NotNil(t, records[0].BusinessPrice)
	assert.False(t, records[0].HasDistinctBusinessPrice())

	require.NotNil(t, records[1].BusinessPrice)
	assert.InDelta(t, 7.99, *records[1].BusinessPrice, 1e-9)
	assert.True(t, records[1].HasDistinctBusinessPrice())

	assert.Nil(t, records[2].BusinessPrice)
	assert.InDelta(t, 4.5, records[2].SellingPrice, 1e-9)
}

func TestLoad_NumericCells(t *testing.T) {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Prices")
	require.NoError(t, err)
	header := sheet.AddRow()
	header.AddCell().SetString("SKU")
	header.AddCell().SetString("Selling Price")
	row := sheet.AddRow()
	row.AddCell().SetString("A1")
	row.AddCell().SetFloat(9.99)
	path := filepath.Join(t.TempDir(), "numeric.xlsx")
	require.NoError(t, f.Save(path))

	records, err := Load(path, SheetOptions{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.InDelta(t, 9.99, records[0].SellingPrice, 1e-9)
	assert.Equal(t, "9.99", FormatPrice(records[0].SellingPrice))
}

func TestLoad_NoBusinessPriceColumn(t *testing.T) {
	path := createPriceXLSX(t, t.TempDir(), [][]string{
		{"SKU", "Selling Price"},
		{"A1", "10"},
	})

	records, err := Load(path, SheetOptions{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Nil(t, records[0].BusinessPrice)
}

func TestLoad_MissingRequiredColumn(t *testing.T) {
	tests := []struct {
		name   string
		header []string
		want   string
	}{
		{"no sku", []string{"Selling Price"}, `"SKU"`},
		{"no selling price", []string{"SKU", "Business Price"}, `"Selling Price"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := createPriceXLSX(t, t.TempDir(), [][]string{tt.header})
			_, err := Load(path, SheetOptions{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "Price Data.xlsx"), SheetOptions{})
	assert.Error(t, err)
}

func TestLoad_MalformedPrice(t *testing.T) {
	path := createPriceXLSX(t, t.TempDir(), [][]string{
		{"SKU", "Selling Price", "Business Price"},
		{"A1", "9.99", ""},
		{"A2", "$9.99", ""},
	})

	_, err := Load(path, SheetOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 3")
	assert.Contains(t, err.Error(), "malformed price")
}

func TestLoad_MalformedBusinessPrice(t *testing.T) {
	path := createPriceXLSX(t, t.TempDir(), [][]string{
		{"SKU", "Selling Price", "Business Price"},
		{"A1", "9.99", "n/a"},
	})

	_, err := Load(path, SheetOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Business Price")
}

func TestLoad_EmptySKU(t *testing.T) {
	path := createPriceXLSX(t, t.TempDir(), [][]string{
		{"SKU", "Selling Price"},
		{"", "9.99"},
	})

	_, err := Load(path, SheetOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty SKU")
}

func TestLoad_SkipsBlankRows(t *testing.T) {
	path := createPriceXLSX(t, t.TempDir(), [][]string{
		{"SKU", "Selling Price"},
		{"A1", "1"},
		{"", ""},
		{"A2", "2"},
	})

	records, err := Load(path, SheetOptions{})
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "A2", records[1].SKU)
	assert.Equal(t, 4, records[1].Row)
}

func TestParse_Binary(t *testing.T) {
	path := createPriceXLSX(t, t.TempDir(), [][]string{
		{"SKU", "Selling Price"},
		{"A1", "1.25"},
	})
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	records, err := Parse(data, SheetOptions{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "A1", records[0].SKU)
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "9.99", FormatPrice(9.99))
	assert.Equal(t, "10", FormatPrice(10))
	assert.Equal(t, "0.5", FormatPrice(0.5))
}

func TestLoad_FormattedNumericCellsUseStoredValue(t *testing.T) {
	for _, format := range []string{"0", "0.0", "#,##0", "$#,##0.00"} {
		t.Run(format, func(t *testing.T) {
			f := xlsx.NewFile()
			sheet, err := f.AddSheet("Prices")
			require.NoError(t, err)
			header := sheet.AddRow()
			header.AddCell().SetString("SKU")
			header.AddCell().SetString("Selling Price")
			header.AddCell().SetString("Business Price")
			row := sheet.AddRow()
			row.AddCell().SetString("A1")
			row.AddCell().SetFloatWithFormat(9.99, format)
			row.AddCell().SetFloatWithFormat(1234.5, format)
			path := filepath.Join(t.TempDir(), "formatted.xlsx")
			require.NoError(t, f.Save(path))

			records, err := Load(path, SheetOptions{})
			require.NoError(t, err)
			require.Len(t, records, 1)
			assert.Equal(t, "9.99", FormatPrice(records[0].SellingPrice))
			require.NotNil(t, records[0].BusinessPrice)
			assert.Equal(t, "1234.5", FormatPrice(*records[0].BusinessPrice))
		})
	}
}

func TestLoad_NamedSheetAndSkipRows(t *testing.T) {
	f := xlsx.NewFile()
	cover, err := f.AddSheet("Cover")
	require.NoError(t, err)
	cover.AddRow().AddCell().SetString("Q3 price list")

	sheet, err := f.AddSheet("Prices")
	require.NoError(t, err)
	for _, rowData := range [][]string{
		{"Exported 2024-07-01"},
		{"SKU", "Selling Price"},
		{"A1", "5"},
		{"A2", "oops"},
	} {
		row := sheet.AddRow()
		for _, c := range rowData {
			row.AddCell().SetString(c)
		}
	}
	path := filepath.Join(t.TempDir(), "prices.xlsx")
	require.NoError(t, f.Save(path))

	_, err = Load(path, SheetOptions{})
	require.Error(t, err, "first sheet has no price columns")

	_, err = Load(path, SheetOptions{Sheet: "Prices", SkipRows: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 4", "row numbers count the skipped rows")

	_, err = Load(path, SheetOptions{Sheet: "Missing"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `sheet "Missing" not found`)
}
