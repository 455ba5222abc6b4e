// Package report renders digest results as per-document reports and a
// batch manifest, in YAML or JSON.
package report

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/dtnitsch/llm-doc-digest/models"
	"github.com/dtnitsch/llm-doc-digest/pkg/keywords"
)

// Output formats.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// topKeywordCount is how many keywords a report or manifest lists.
const topKeywordCount = 25

// Report is the full outcome of one document.
type Report struct {
	Path        string `json:"path" yaml:"path"`
	RunID       string `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	ContentHash string `json:"content_hash,omitempty" yaml:"content_hash,omitempty"`
	Format      string `json:"format" yaml:"format"`
	Language    string `json:"language,omitempty" yaml:"language,omitempty"`

	TotalPages     int `json:"total_pages" yaml:"total_pages"`
	ExtractedPages int `json:"extracted_pages" yaml:"extracted_pages"`

	Method          string                    `json:"method" yaml:"method"`
	Fallback        bool                      `json:"fallback" yaml:"fallback"`
	SummaryPages    []int                     `json:"summary_pages" yaml:"summary_pages"`
	FilteredPages   []int                     `json:"filtered_pages" yaml:"filtered_pages"`
	SummaryChars    int                       `json:"summary_chars" yaml:"summary_chars"`
	FilteredChars   int                       `json:"filtered_chars" yaml:"filtered_chars"`
	SentenceCount   int                       `json:"sentence_count" yaml:"sentence_count"`
	TargetSentences int                       `json:"target_sentences,omitempty" yaml:"target_sentences,omitempty"`
	Metrics         map[string]models.Metrics `json:"metrics,omitempty" yaml:"metrics,omitempty"`
	TopKeywords     []string                  `json:"top_keywords,omitempty" yaml:"top_keywords,omitempty"`
	DurationMS      int64                     `json:"duration_ms" yaml:"duration_ms"`

	// Budget views, set when a size budget was given.
	BudgetChars int    `json:"budget_chars,omitempty" yaml:"budget_chars,omitempty"`
	BudgetText  string `json:"budget_text,omitempty" yaml:"budget_text,omitempty"`
	BudgetPages []int  `json:"budget_pages,omitempty" yaml:"budget_pages,omitempty"`

	SummaryText  string `json:"summary_text,omitempty" yaml:"summary_text,omitempty"`
	FilteredText string `json:"filtered_text,omitempty" yaml:"filtered_text,omitempty"`
}

// Options control what a Report carries besides the numbers.
type Options struct {
	RunID       string
	ContentHash string
	IncludeText bool
	Budget      int
	DurationMS  int64
	WordCounts  map[string]int
}

// New builds the report of doc and its pipeline result.
func New(doc models.Document, result models.Result, opts Options) Report {
	r := Report{
		Path:            doc.Path,
		RunID:           opts.RunID,
		ContentHash:     opts.ContentHash,
		Format:          doc.Format,
		Language:        result.Language,
		TotalPages:      doc.TotalPages,
		ExtractedPages:  len(doc.Pages),
		Method:          result.Method,
		Fallback:        result.IsFallback(),
		SummaryPages:    nonNil(result.SummaryPages),
		FilteredPages:   nonNil(result.FilteredPages),
		SummaryChars:    utf8.RuneCountInString(result.SummaryText),
		FilteredChars:   utf8.RuneCountInString(result.FilteredText),
		SentenceCount:   result.SentenceCount,
		TargetSentences: result.TargetSentences,
		Metrics:         result.MethodMetrics,
		DurationMS:      opts.DurationMS,
	}
	if opts.WordCounts != nil {
		r.TopKeywords = keywords.TopKeywords(opts.WordCounts, topKeywordCount)
	}
	if opts.Budget > 0 {
		r.BudgetChars = opts.Budget
		r.BudgetText, r.BudgetPages = result.ForBudget(opts.Budget)
	}
	if opts.IncludeText {
		r.SummaryText = result.SummaryText
		r.FilteredText = result.FilteredText
	}
	return r
}

// Encode renders v in format. YAML writes failed scores as -.inf, JSON as null.
func Encode(v any, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case FormatYAML, "yml", "":
		data, err := yaml.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("error marshalling yaml: %w", err)
		}
		return data, nil
	case FormatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("error marshalling json: %w", err)
		}
		return append(data, '\n'), nil
	}
	return nil, fmt.Errorf("unknown output format %q", format)
}

// Extension returns the file extension used for format.
func Extension(format string) string {
	if strings.ToLower(format) == FormatJSON {
		return "json"
	}
	return "yaml"
}

func nonNil(pages []int) []int {
	if pages == nil {
		return []int{}
	}
	return pages
}
