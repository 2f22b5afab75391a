package report

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
)

func sheetRows(t *testing.T, sheet *xlsx.Sheet) [][]string {
	t.Helper()
	var rows [][]string
	for _, row := range sheet.Rows {
		var cells []string
		for _, c := range row.Cells {
			cells = append(cells, c.String())
		}
		rows = append(rows, cells)
	}
	return rows
}

func TestSaveToExcel_Sheets(t *testing.T) {
	r, err := Parse(strings.NewReader(sampleCSV), Options{})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, r.SaveToExcel(path))

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	require.Len(t, f.Sheets, 3)
	for i, name := range SheetNames {
		assert.Equal(t, name, f.Sheets[i].Name)
	}

	assert.Equal(t, [][]string{
		{"ship-state", "Total Sales"},
		{"CA", "2"},
	}, sheetRows(t, f.Sheets[0]))
	assert.Equal(t, [][]string{
		{"Category", "Total Sales"},
		{"Toys", "2"},
	}, sheetRows(t, f.Sheets[1]))
	assert.Equal(t, [][]string{
		{"ASIN", "Qty"},
		{"X2", "5"},
		{"X1", "3"},
	}, sheetRows(t, f.Sheets[2]))
}

func TestSaveToExcel_EmptyReportStillHasThreeSheets(t *testing.T) {
	r := New(nil)

	path := filepath.Join(t.TempDir(), "empty.xlsx")
	require.NoError(t, r.SaveToExcel(path))

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	require.Len(t, f.Sheets, 3)
	for i, name := range SheetNames {
		assert.Equal(t, name, f.Sheets[i].Name)
		require.NotEmpty(t, f.Sheets[i].Rows, "header row")
	}
}

func TestSaveToExcel_BadPath(t *testing.T) {
	r := New(nil)
	err := r.SaveToExcel(filepath.Join(t.TempDir(), "missing-dir", "out.xlsx"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "report: save workbook")
}

func TestWriteExcel(t *testing.T) {
	r, err := Parse(strings.NewReader(sampleCSV), Options{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.WriteExcel(&buf))

	f, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, f.Sheets, 3)
	assert.Equal(t, SheetTopProducts, f.Sheets[2].Name)
}
