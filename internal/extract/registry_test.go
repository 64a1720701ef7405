package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistryDispatch(t *testing.T) {
	r := NewRegistry()

	assert.IsType(t, &Notebook{}, r.ForExt(".ipynb"))
	assert.IsType(t, &CSV{}, r.ForExt(".csv"))
	assert.IsType(t, &CSV{}, r.ForExt(".tsv"))
	assert.IsType(t, &Excel{}, r.ForExt(".xlsx"))
	assert.IsType(t, &SQLDump{}, r.ForExt(".sql"))

	// Everything else falls back to plain text.
	assert.IsType(t, &PlainText{}, r.ForExt(".py"))
	assert.IsType(t, &PlainText{}, r.ForExt(""))
}

func TestRegistryStructured(t *testing.T) {
	r := NewRegistry()
	assert.True(t, r.Structured(".xlsx"))
	assert.True(t, r.Structured(".ipynb"))
	assert.False(t, r.Structured(".py"))
	assert.False(t, r.Structured(""))
}

func TestLimitsScale(t *testing.T) {
	lim := Limits{MaxBytes: 10000, SampleRows: 70, MaxOutputLines: 55}

	half := lim.Scale(0.5)
	assert.Equal(t, 5000, half.MaxBytes)
	assert.Equal(t, 35, half.SampleRows)
	assert.Equal(t, 27, half.MaxOutputLines)

	// Floors keep a retry coherent.
	tiny := lim.Scale(0.0001)
	assert.Equal(t, 256, tiny.MaxBytes)
	assert.Equal(t, 1, tiny.SampleRows)
	assert.Equal(t, 5, tiny.MaxOutputLines)

	// Out-of-range factors are a no-op.
	assert.Equal(t, lim, lim.Scale(0))
	assert.Equal(t, lim, lim.Scale(1.5))
}
