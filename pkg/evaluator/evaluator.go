// Package evaluator scores candidate summaries against the text they were
// extracted from.
package evaluator

import (
	"strings"
	"unicode/utf8"

	"github.com/dtnitsch/llm-doc-digest/models"
)

// Evaluator turns a candidate into Metrics and a composite score using
// the weights of its Config.
type Evaluator struct {
	Config models.Config
	// Language is the snowball stemmer language; empty means english.
	Language string
}

// New returns an evaluator for cfg.
func New(cfg models.Config, language string) *Evaluator {
	return &Evaluator{Config: cfg, Language: language}
}

// Evaluate computes every metric of candidate against reference and fills
// in OverallScore. sentences is the number of sentences in candidate. An
// empty candidate gets zero metrics and a failed score.
func (e *Evaluator) Evaluate(candidate string, sentences int, reference string) models.Metrics {
	if strings.TrimSpace(candidate) == "" {
		return models.Metrics{OverallScore: models.Failed}
	}
	m := models.Metrics{
		Similarity:       Rouge(candidate, reference, e.Language),
		CompressionRatio: CompressionRatio(candidate, reference),
		Readability:      FleschReadingEase(candidate, sentences),
		SentenceCount:    sentences,
	}
	m.OverallScore = e.Composite(m)
	return m
}

// Composite weighs LCS similarity, readability clamped to [0, 100] and
// compression effectiveness. A candidate longer than its reference gets a
// fixed -0.5 compression term.
func (e *Evaluator) Composite(m models.Metrics) models.Score {
	readability := min(max(m.Readability, 0), 100) / 100
	compression := -0.5
	if m.CompressionRatio <= 1.0 {
		compression = 1 - m.CompressionRatio
	}
	return models.Score(e.Config.SimilarityWeight*m.Similarity.LCS +
		e.Config.ReadabilityWeight*readability +
		e.Config.CompressionWeight*compression)
}

// CompressionRatio is the character length of candidate over reference,
// or 1 when the reference is empty.
func CompressionRatio(candidate, reference string) float64 {
	refLen := utf8.RuneCountInString(reference)
	if refLen == 0 {
		return 1.0
	}
	return float64(utf8.RuneCountInString(candidate)) / float64(refLen)
}
