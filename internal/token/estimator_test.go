package token

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHeuristicDeterministic(t *testing.T) {
	h := NewHeuristic()
	text := "The quick brown fox jumps over the lazy dog."
	assert.Equal(t, h.Estimate(text), h.Estimate(text))
}

func TestHeuristicMonotonic(t *testing.T) {
	h := NewHeuristic()
	prev := 0
	for i := 0; i <= 2000; i += 37 {
		got := h.Estimate(strings.Repeat("a", i))
		assert.GreaterOrEqual(t, got, prev, "length %d", i)
		prev = got
	}
}

func TestHeuristicBounds(t *testing.T) {
	h := NewHeuristic()
	assert.Equal(t, 0, h.Estimate(""))
	assert.Equal(t, 1, h.Estimate("a"))
	// 700 bytes at 3.5 chars/token = 200 tokens.
	assert.Equal(t, 200, h.Estimate(strings.Repeat("x", 700)))
	assert.True(t, h.Approximate())
}

func TestHeuristicOverestimatesVersusFourCharRule(t *testing.T) {
	// The heuristic must not undercount relative to the common
	// 4-chars-per-token average on representative text.
	h := NewHeuristic()
	text := strings.Repeat("budget allocation for token counting ", 50)
	assert.GreaterOrEqual(t, h.Estimate(text), len(text)/4)
}

func TestTiktokenDeterministic(t *testing.T) {
	est, err := NewTiktoken("gpt-4o")
	if err != nil {
		t.Skipf("tiktoken encoding unavailable: %v", err)
	}
	text := "Hello, world! This is a test."
	first := est.Estimate(text)
	require.Positive(t, first)
	assert.Equal(t, first, est.Estimate(text))
	assert.Equal(t, 0, est.Estimate(""))
	assert.False(t, est.Approximate())
}

func TestNewFallsBackOnUnknownModel(t *testing.T) {
	// Unknown models fall back to cl100k_base inside NewTiktoken, so
	// New should still return a non-approximate estimator; if even
	// that fails in this environment, the heuristic is returned.
	est := New("definitely-not-a-model", zap.NewNop())
	require.NotNil(t, est)
	assert.Positive(t, est.Estimate("some text"))
}
