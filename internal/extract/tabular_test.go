package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSampleIndicesSpread(t *testing.T) {
	idx := sampleIndices(1000, 20)
	assert.Len(t, idx, 20)

	// Head is represented and the spread covers the full range, not
	// just rows 0..19.
	assert.Equal(t, 0, idx[0])
	assert.Equal(t, 950, idx[19])
	for i := 1; i < len(idx); i++ {
		assert.Greater(t, idx[i], idx[i-1])
	}
}

func TestSampleIndicesSmallTotal(t *testing.T) {
	assert.Equal(t, []int{0, 1, 2}, sampleIndices(3, 20))
	assert.Nil(t, sampleIndices(0, 20))
	assert.Nil(t, sampleIndices(100, 0))
}

func TestSampleIndicesDeterministic(t *testing.T) {
	assert.Equal(t, sampleIndices(977, 13), sampleIndices(977, 13))
}

func TestMarkdownRowEscaping(t *testing.T) {
	var sb strings.Builder
	markdownRow(&sb, []string{"a|b", "line1\nline2"}, 2)
	assert.Equal(t, "| a\\|b | line1 line2 |\n", sb.String())
}

func TestMarkdownRowPadsShortRows(t *testing.T) {
	var sb strings.Builder
	markdownRow(&sb, []string{"only"}, 3)
	assert.Equal(t, "| only |  |  |\n", sb.String())
}
