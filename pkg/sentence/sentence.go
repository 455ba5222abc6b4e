// Package sentence splits text into sentences with a Punkt tokenizer.
package sentence

import (
	"fmt"
	"strings"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
)

// Splitter wraps a trained Punkt tokenizer. Building one loads the
// training data, so callers keep one per worker.
type Splitter struct {
	tokenizer *sentences.DefaultSentenceTokenizer
}

// NewSplitter builds an English Punkt splitter.
func NewSplitter() (*Splitter, error) {
	tokenizer, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build sentence tokenizer: %w", err)
	}
	return &Splitter{tokenizer: tokenizer}, nil
}

// Split returns the trimmed, non-empty sentences of text in order.
func (s *Splitter) Split(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	var out []string
	for _, sent := range s.tokenizer.Tokenize(text) {
		if t := strings.TrimSpace(sent.Text); t != "" {
			out = append(out, t)
		}
	}
	return out
}
