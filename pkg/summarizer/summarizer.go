// Package summarizer implements the extractive summarization strategies.
// Every strategy ranks the sentences of a Document and returns the best
// ones verbatim, in document order.
package summarizer

import (
	"errors"
	"fmt"
	"sort"

	"github.com/dtnitsch/llm-doc-digest/models"
)

// ErrEmptyDocument is returned when there is nothing to rank.
var ErrEmptyDocument = errors.New("document has no sentences")

// Strategy ranks sentences; a higher rating means more summary-worthy.
type Strategy interface {
	Rate(doc *Document) ([]float64, error)
}

var strategies = map[models.Method]Strategy{
	models.MethodTextRank: TextRank{Damping: 0.85, Epsilon: 1e-4, MaxIterations: 100},
	models.MethodLexRank:  LexRank{Threshold: 0.1, Epsilon: 1e-4, MaxIterations: 100},
	models.MethodLuhn:     Luhn{MaxGap: 4, MinFrequency: 2},
	models.MethodLSA:      LSA{MinDimensions: 3, ReductionRatio: 0.5},
}

// For returns the strategy behind a method.
func For(m models.Method) (Strategy, error) {
	s, ok := strategies[m]
	if !ok {
		return nil, fmt.Errorf("no strategy registered for %s", m)
	}
	return s, nil
}

// Summarize extracts up to count sentences from doc with method m.
// Fewer sentences come back when the document is shorter than count.
func Summarize(m models.Method, doc *Document, count int) ([]string, error) {
	s, err := For(m)
	if err != nil {
		return nil, err
	}
	return Extract(s, doc, count)
}

// Extract rates the sentences with s and keeps the count best.
func Extract(s Strategy, doc *Document, count int) ([]string, error) {
	if doc == nil || len(doc.Sentences) == 0 {
		return nil, ErrEmptyDocument
	}
	ratings, err := s.Rate(doc)
	if err != nil {
		return nil, err
	}
	if len(ratings) != len(doc.Sentences) {
		return nil, fmt.Errorf("strategy rated %d of %d sentences", len(ratings), len(doc.Sentences))
	}
	picked := best(ratings, max(1, count))
	out := make([]string, len(picked))
	for i, idx := range picked {
		out[i] = doc.Sentences[idx]
	}
	return out, nil
}

// best returns the indices of the count highest ratings in ascending index
// order. Equal ratings keep document order.
func best(ratings []float64, count int) []int {
	order := make([]int, len(ratings))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return ratings[order[a]] > ratings[order[b]]
	})
	if count < len(order) {
		order = order[:count]
	}
	sort.Ints(order)
	return order
}
