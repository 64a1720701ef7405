package extract

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildCSV(rows int) string {
	var sb strings.Builder
	sb.WriteString("id,region,amount\n")
	for i := 0; i < rows; i++ {
		fmt.Fprintf(&sb, "%d,region-%d,%d\n", i, i%5, i*10)
	}
	return sb.String()
}

func TestCSVStratifiedSample(t *testing.T) {
	path := writeTemp(t, "sales.csv", buildCSV(1000))

	lim := testLimits()
	lim.SampleRows = 20
	res, err := NewCSV(NewPlainText()).Extract(path, lim)
	require.NoError(t, err)

	assert.Equal(t, 1000, res.TotalUnits)
	assert.Equal(t, 20, res.SampledUnits)
	assert.True(t, res.Truncated)

	// Header preserved.
	assert.Contains(t, res.Text, "| id | region | amount |")

	// Rows come from across the range, not just the head.
	assert.Contains(t, res.Text, "| 0 |")
	assert.Contains(t, res.Text, "| 950 |")
	assert.NotContains(t, res.Text, "| 19 |")
}

func TestCSVSmallFileKeptWhole(t *testing.T) {
	path := writeTemp(t, "small.csv", buildCSV(5))

	res, err := NewCSV(NewPlainText()).Extract(path, testLimits())
	require.NoError(t, err)

	assert.Equal(t, 5, res.TotalUnits)
	assert.Equal(t, 5, res.SampledUnits)
	assert.False(t, res.Truncated)
	assert.NotContains(t, res.Text, "Sample:")
}

func TestCSVHeaderOnlyFile(t *testing.T) {
	path := writeTemp(t, "empty.csv", "id,region,amount\n")

	res, err := NewCSV(NewPlainText()).Extract(path, testLimits())
	require.NoError(t, err)

	// Schema survives with zero data rows.
	assert.Equal(t, 0, res.TotalUnits)
	assert.Equal(t, 0, res.SampledUnits)
	assert.False(t, res.Truncated)
	assert.Contains(t, res.Text, "| id | region | amount |")
}

func TestCSVZeroSampleKeepsHeader(t *testing.T) {
	path := writeTemp(t, "sales.csv", buildCSV(100))

	lim := testLimits()
	lim.SampleRows = 1
	res, err := NewCSV(NewPlainText()).Extract(path, lim)
	require.NoError(t, err)

	assert.Equal(t, 100, res.TotalUnits)
	assert.Equal(t, 1, res.SampledUnits)
	assert.Contains(t, res.Text, "| id | region | amount |")
}

func TestCSVDeterministic(t *testing.T) {
	path := writeTemp(t, "sales.csv", buildCSV(317))
	c := NewCSV(NewPlainText())

	first, err := c.Extract(path, testLimits())
	require.NoError(t, err)
	second, err := c.Extract(path, testLimits())
	require.NoError(t, err)

	assert.Equal(t, first.Text, second.Text)
}

func TestCSVEmptyFileDegrades(t *testing.T) {
	path := writeTemp(t, "nothing.csv", "")

	res, err := NewCSV(NewPlainText()).Extract(path, testLimits())
	require.NoError(t, err)
	assert.Equal(t, "CSV has no header row", res.Note)
}

func TestCSVRaggedRowsTolerated(t *testing.T) {
	path := writeTemp(t, "ragged.csv", "a,b,c\n1,2,3\n4,5\n6,7,8,9\n")

	res, err := NewCSV(NewPlainText()).Extract(path, testLimits())
	require.NoError(t, err)

	assert.Equal(t, 3, res.TotalUnits)
	// Short rows are padded to the header width, long ones render
	// their extra cells dropped at the header width.
	assert.Contains(t, res.Text, "| 4 | 5 |")
}

func TestTSVSupport(t *testing.T) {
	c := NewCSV(NewPlainText())
	assert.True(t, c.Supports(".csv"))
	assert.True(t, c.Supports(".tsv"))
	assert.False(t, c.Supports(".xlsx"))

	path := writeTemp(t, "data.tsv", "a\tb\n1\t2\n")
	res, err := c.Extract(path, testLimits())
	require.NoError(t, err)
	assert.Contains(t, res.Text, "| a | b |")
	assert.Contains(t, res.Text, "| 1 | 2 |")
}
