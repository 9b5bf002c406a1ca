// Package tokenizer provides token counting and prompt truncation for
// completion requests.
//
// Counting uses the tiktoken BPE when the encoding can be initialized;
// otherwise it falls back to a character-based estimate so callers never
// have to handle a missing tokenizer.
package tokenizer

import (
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

const (
	// defaultEncoding is the BPE used by current OpenAI chat models.
	defaultEncoding = "cl100k_base"

	// fallbackCharsPerToken is the estimate used when the BPE is
	// unavailable. Roughly four characters per token for mixed prose.
	fallbackCharsPerToken = 4
)

// Tokenizer counts tokens for prompt budgeting.
type Tokenizer struct {
	encoding *tiktoken.Tiktoken
}

// New creates a tokenizer for the default encoding. Initialization failure
// (e.g. the BPE data is not available) is not fatal: the tokenizer falls
// back to estimation.
func New() *Tokenizer {
	enc, err := tiktoken.GetEncoding(defaultEncoding)
	if err != nil {
		return &Tokenizer{}
	}
	return &Tokenizer{encoding: enc}
}

// Count returns the number of tokens in text.
func (t *Tokenizer) Count(text string) int {
	if t.encoding != nil {
		return len(t.encoding.Encode(text, nil, nil))
	}
	return estimate(text)
}

// Truncate returns text cut down to at most maxTokens tokens. Text within
// the budget is returned unchanged.
func (t *Tokenizer) Truncate(text string, maxTokens int) string {
	if maxTokens <= 0 {
		return ""
	}

	if t.encoding != nil {
		tokens := t.encoding.Encode(text, nil, nil)
		if len(tokens) <= maxTokens {
			return text
		}
		return t.encoding.Decode(tokens[:maxTokens])
	}

	if estimate(text) <= maxTokens {
		return text
	}
	// Estimate-based cut on rune boundaries.
	runes := []rune(text)
	limit := maxTokens * fallbackCharsPerToken
	if limit >= len(runes) {
		return text
	}
	return string(runes[:limit])
}

// IsEstimating reports whether the tokenizer is running without the BPE
// and counting by estimation.
func (t *Tokenizer) IsEstimating() bool {
	return t.encoding == nil
}

func estimate(text string) int {
	if strings.TrimSpace(text) == "" {
		return 0
	}
	n := len([]rune(text))
	count := n / fallbackCharsPerToken
	if n%fallbackCharsPerToken != 0 {
		count++
	}
	return count
}
