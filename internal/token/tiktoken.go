package token

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// Tiktoken counts tokens with the encoding of a target model.
type Tiktoken struct {
	encoding *tiktoken.Tiktoken
}

// NewTiktoken creates an estimator for the given model. If the model has
// no registered encoding, cl100k_base is tried before giving up.
func NewTiktoken(model string) (*Tiktoken, error) {
	encoding, err := tiktoken.EncodingForModel(model)
	if err != nil {
		encoding, err = tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			return nil, fmt.Errorf("initializing tokenizer: %w", err)
		}
	}
	return &Tiktoken{encoding: encoding}, nil
}

// Estimate returns the exact token count for text.
func (t *Tiktoken) Estimate(text string) int {
	if text == "" {
		return 0
	}
	return len(t.encoding.Encode(text, nil, nil))
}

// Approximate always returns false: counts are exact for the encoding.
func (t *Tiktoken) Approximate() bool {
	return false
}

var _ Estimator = (*Tiktoken)(nil)
