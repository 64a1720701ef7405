// Package token counts tokens for budget decisions.
//
// The primary estimator wraps tiktoken keyed to the target model's
// encoding. When the encoding cannot be initialized, construction falls
// back to a deterministic character-ratio heuristic, and every estimate
// from that path is flagged approximate. Both implementations are pure
// functions of their input: no state is carried across calls.
package token

import "go.uber.org/zap"

// Estimator counts tokens for arbitrary text.
type Estimator interface {
	// Estimate returns a non-negative token count for text. Calling it
	// twice on identical text yields identical output.
	Estimate(text string) int

	// Approximate reports whether counts come from the fallback
	// heuristic rather than the real tokenizer.
	Approximate() bool
}

// New returns a tiktoken-backed estimator for the given model, or the
// heuristic fallback when the encoding is unavailable (for example when
// the encoding data cannot be loaded). The choice is made once at
// startup; downstream code is indifferent to which is active.
func New(model string, logger *zap.Logger) Estimator {
	est, err := NewTiktoken(model)
	if err != nil {
		logger.Warn("tokenizer unavailable, using heuristic estimates",
			zap.String("model", model),
			zap.Error(err))
		return NewHeuristic()
	}
	return est
}
