package extract

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// buildWorkbook writes a two-sheet workbook with the given number of
// data rows on the first sheet.
func buildWorkbook(t *testing.T, rows int) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName("Sheet1", "sales"))
	require.NoError(t, f.SetSheetRow("sales", "A1", &[]string{"id", "region", "amount"}))
	for i := 0; i < rows; i++ {
		cell := fmt.Sprintf("A%d", i+2)
		require.NoError(t, f.SetSheetRow("sales", cell, &[]any{i, fmt.Sprintf("region-%d", i%5), i * 10}))
	}

	_, err := f.NewSheet("summary")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("summary", "A1", &[]string{"metric", "value"}))
	require.NoError(t, f.SetSheetRow("summary", "A2", &[]any{"total", rows}))

	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestExcelPerSheetSample(t *testing.T) {
	path := buildWorkbook(t, 100)

	lim := testLimits()
	lim.SampleRows = 10
	res, err := NewExcel(NewPlainText()).Extract(path, lim)
	require.NoError(t, err)

	assert.Contains(t, res.Text, "#### Sheet: sales")
	assert.Contains(t, res.Text, "#### Sheet: summary")
	assert.Contains(t, res.Text, "| id | region | amount |")
	assert.Contains(t, res.Text, "| metric | value |")

	// 100 sales rows sampled to 10, 1 summary row kept whole.
	assert.Equal(t, 101, res.TotalUnits)
	assert.Equal(t, 11, res.SampledUnits)
	assert.True(t, res.Truncated)
}

func TestExcelSmallSheetsKeptWhole(t *testing.T) {
	path := buildWorkbook(t, 5)

	res, err := NewExcel(NewPlainText()).Extract(path, testLimits())
	require.NoError(t, err)

	assert.Equal(t, 6, res.TotalUnits)
	assert.Equal(t, 6, res.SampledUnits)
	assert.False(t, res.Truncated)
}

func TestExcelDeterministic(t *testing.T) {
	path := buildWorkbook(t, 73)
	e := NewExcel(NewPlainText())

	first, err := e.Extract(path, testLimits())
	require.NoError(t, err)
	second, err := e.Extract(path, testLimits())
	require.NoError(t, err)

	assert.Equal(t, first.Text, second.Text)
}

func TestExcelCorruptWorkbook(t *testing.T) {
	path := writeTemp(t, "fake.xlsx", "this is not a zip archive")

	res, err := NewExcel(NewPlainText()).Extract(path, testLimits())
	require.NoError(t, err)
	assert.Equal(t, "workbook could not be parsed", res.Note)
}
