package token

import "math"

// defaultCharsPerToken is deliberately below the ~4 chars/token that
// cl100k-family encodings average on English text. Overestimating keeps
// budget decisions safe: a section admitted on a heuristic count should
// not silently exceed the real count.
const defaultCharsPerToken = 3.5

// Heuristic estimates tokens from byte length. It is monotonic in text
// length and deterministic.
type Heuristic struct {
	// CharsPerToken is the byte-to-token ratio. Defaults to
	// defaultCharsPerToken when zero or negative.
	CharsPerToken float64
}

// NewHeuristic creates a heuristic estimator with the default ratio.
func NewHeuristic() *Heuristic {
	return &Heuristic{CharsPerToken: defaultCharsPerToken}
}

// Estimate returns ceil(len(text) / CharsPerToken), with a minimum of 1
// for any non-empty text.
func (h *Heuristic) Estimate(text string) int {
	if text == "" {
		return 0
	}
	ratio := h.CharsPerToken
	if ratio <= 0 {
		ratio = defaultCharsPerToken
	}
	n := int(math.Ceil(float64(len(text)) / ratio))
	if n < 1 {
		return 1
	}
	return n
}

// Approximate always returns true.
func (h *Heuristic) Approximate() bool {
	return true
}

var _ Estimator = (*Heuristic)(nil)
