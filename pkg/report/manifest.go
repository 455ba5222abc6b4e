package report

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/dtnitsch/llm-doc-digest/models"
	"github.com/dtnitsch/llm-doc-digest/pkg/extractor"
	"github.com/dtnitsch/llm-doc-digest/pkg/keywords"
)

// Manifest is a lightweight overview of a batch: status, winning method
// and top keywords of every document.
type Manifest struct {
	GeneratedAt       string            `json:"generated_at" yaml:"generated_at"`
	TotalDocuments    int               `json:"total_documents" yaml:"total_documents"`
	Successful        int               `json:"successful" yaml:"successful"`
	Failed            int               `json:"failed" yaml:"failed"`
	Wins              map[string]int    `json:"wins,omitempty" yaml:"wins,omitempty"`
	AggregateKeywords []string          `json:"aggregate_keywords" yaml:"aggregate_keywords"`
	Results           []DocumentSummary `json:"results" yaml:"results"`
}

// DocumentSummary is one manifest line.
type DocumentSummary struct {
	Path          string       `json:"path" yaml:"path"`
	Status        string       `json:"status" yaml:"status"` // "success" or "error"
	ErrorType     string       `json:"error_type,omitempty" yaml:"error_type,omitempty"`
	ErrorMessage  string       `json:"error_message,omitempty" yaml:"error_message,omitempty"`
	RunID         string       `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	ReportPath    string       `json:"report_path,omitempty" yaml:"report_path,omitempty"`
	SizeBytes     int64        `json:"size_bytes,omitempty" yaml:"size_bytes,omitempty"`
	Method        string       `json:"method,omitempty" yaml:"method,omitempty"`
	Score         models.Score `json:"score,omitempty" yaml:"score,omitempty"`
	SummaryPages  []int        `json:"summary_pages,omitempty" yaml:"summary_pages,omitempty"`
	FilteredPages []int        `json:"filtered_pages,omitempty" yaml:"filtered_pages,omitempty"`
	TopKeywords   []string     `json:"top_keywords,omitempty" yaml:"top_keywords,omitempty"`
}

// DocumentResult is what a digest worker produced for one input file.
type DocumentResult struct {
	Path       string
	Report     *Report
	ReportPath string
	SizeBytes  int64
	WordCounts map[string]int
	Err        error
	ErrorType  string
}

// Error types.
const (
	ErrorTypeUnsupported = "unsupported_format"
	ErrorTypeExtract     = "extract_error"
	ErrorTypeCanceled    = "canceled"
	ErrorTypeInternal    = "internal_error"
)

// ClassifyError maps a worker error to a manifest error type.
func ClassifyError(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, extractor.ErrUnsupportedFormat):
		return ErrorTypeUnsupported
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ErrorTypeCanceled
	}
	return ErrorTypeExtract
}

// GenerateManifest aggregates worker results. Results are listed by path.
func GenerateManifest(results []DocumentResult, aggregateKeywords map[string]int) Manifest {
	m := Manifest{
		GeneratedAt:       time.Now().Format(time.RFC3339),
		TotalDocuments:    len(results),
		Wins:              make(map[string]int),
		AggregateKeywords: keywords.TopKeywords(aggregateKeywords, topKeywordCount),
		Results:           make([]DocumentSummary, 0, len(results)),
	}

	for _, result := range results {
		summary := DocumentSummary{Path: result.Path}

		if result.Err != nil {
			m.Failed++
			summary.Status = "error"
			summary.ErrorType = result.ErrorType
			if summary.ErrorType == "" {
				summary.ErrorType = ClassifyError(result.Err)
			}
			summary.ErrorMessage = result.Err.Error()
			m.Results = append(m.Results, summary)
			continue
		}

		m.Successful++
		summary.Status = "success"
		summary.ReportPath = result.ReportPath
		summary.SizeBytes = result.SizeBytes
		if r := result.Report; r != nil {
			summary.RunID = r.RunID
			summary.Method = r.Method
			summary.SummaryPages = r.SummaryPages
			summary.FilteredPages = r.FilteredPages
			if metrics, ok := r.Metrics[r.Method]; ok {
				summary.Score = metrics.OverallScore
			}
			m.Wins[r.Method]++
		}
		if result.WordCounts != nil {
			summary.TopKeywords = keywords.TopKeywords(result.WordCounts, 10)
		}
		m.Results = append(m.Results, summary)
	}

	sort.SliceStable(m.Results, func(i, j int) bool {
		return m.Results[i].Path < m.Results[j].Path
	})
	return m
}
