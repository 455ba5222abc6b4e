package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtnitsch/llm-doc-digest/models"
	"github.com/dtnitsch/llm-doc-digest/pkg/extractor"
)

func sampleResult() (models.Document, models.Result) {
	doc := models.Document{
		Path:       "docs/manual.pdf",
		Format:     "pdf",
		TotalPages: 12,
		Pages:      make([]models.PageText, 10),
	}
	result := models.Result{
		SummaryText:   "Short summary.",
		SummaryPages:  []int{3, 4},
		Method:        "textrank",
		FilteredText:  "Short summary. And the rest of the filtered text.",
		FilteredPages: []int{2, 3, 4},
		MethodMetrics: map[string]models.Metrics{
			"textrank": {OverallScore: 0.61, SentenceCount: 1},
			"lsa":      {OverallScore: models.Failed},
		},
		Language:        "en",
		SentenceCount:   2,
		TargetSentences: 10,
	}
	return doc, result
}

func TestNew(t *testing.T) {
	doc, result := sampleResult()

	r := New(doc, result, Options{
		RunID:      "run-1",
		DurationMS: 42,
		WordCounts: map[string]int{"pump": 3, "valve": 5, "a": 9},
	})

	assert.Equal(t, "docs/manual.pdf", r.Path)
	assert.Equal(t, 12, r.TotalPages)
	assert.Equal(t, 10, r.ExtractedPages)
	assert.False(t, r.Fallback)
	assert.Equal(t, 14, r.SummaryChars)
	assert.Equal(t, []string{"valve:5", "pump:3"}, r.TopKeywords)
	assert.Empty(t, r.SummaryText)
	assert.Empty(t, r.FilteredText)
	assert.Zero(t, r.BudgetChars)
}

func TestNew_FallbackHasEmptyPageLists(t *testing.T) {
	r := New(models.Document{Path: "x.txt"}, models.Result{Method: models.TagNoSentences}, Options{})
	assert.True(t, r.Fallback)
	assert.Equal(t, []int{}, r.SummaryPages)
	assert.Equal(t, []int{}, r.FilteredPages)
}

func TestNew_Budget(t *testing.T) {
	doc, result := sampleResult()

	fits := New(doc, result, Options{Budget: 1000, IncludeText: true})
	assert.Equal(t, result.FilteredText, fits.BudgetText)
	assert.Equal(t, []int{2, 3, 4}, fits.BudgetPages)
	assert.Equal(t, result.SummaryText, fits.SummaryText)

	tight := New(doc, result, Options{Budget: 20})
	assert.Equal(t, result.SummaryText, tight.BudgetText)
	assert.Equal(t, []int{3, 4}, tight.BudgetPages)
}

func TestEncode_FailedScores(t *testing.T) {
	doc, result := sampleResult()
	r := New(doc, result, Options{})

	data, err := Encode(r, FormatJSON)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(data), "\n"))

	var decoded Report
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.False(t, decoded.Metrics["lsa"].OverallScore.Valid())
	assert.InDelta(t, 0.61, float64(decoded.Metrics["textrank"].OverallScore), 1e-9)
	assert.Contains(t, string(data), `"overall_score": null`)

	data, err = Encode(r, "YML")
	require.NoError(t, err)
	assert.Contains(t, string(data), "overall_score: -.inf")
	assert.Contains(t, string(data), "method: textrank")
}

func TestEncode_UnknownFormat(t *testing.T) {
	_, err := Encode(Report{}, "xml")
	assert.Error(t, err)
}

func TestExtension(t *testing.T) {
	assert.Equal(t, "json", Extension("JSON"))
	assert.Equal(t, "yaml", Extension("yaml"))
	assert.Equal(t, "yaml", Extension(""))
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{fmt.Errorf("open: %w", extractor.ErrUnsupportedFormat), ErrorTypeUnsupported},
		{fmt.Errorf("stopped: %w", context.Canceled), ErrorTypeCanceled},
		{context.DeadlineExceeded, ErrorTypeCanceled},
		{errors.New("bad xref table"), ErrorTypeExtract},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyError(tt.err), fmt.Sprint(tt.err))
	}
}

func TestGenerateManifest(t *testing.T) {
	doc, result := sampleResult()
	r := New(doc, result, Options{RunID: "run-1"})

	results := []DocumentResult{
		{Path: "z.docx", Err: fmt.Errorf("%w: z.docx", extractor.ErrUnsupportedFormat)},
		{Path: "docs/manual.pdf", Report: &r, ReportPath: "out/manual.yaml", SizeBytes: 2048, WordCounts: map[string]int{"pump": 2}},
		{Path: "b.txt", Err: errors.New("worker crashed"), ErrorType: ErrorTypeInternal},
	}

	m := GenerateManifest(results, map[string]int{"pump": 2, "valve": 1})

	assert.Equal(t, 3, m.TotalDocuments)
	assert.Equal(t, 1, m.Successful)
	assert.Equal(t, 2, m.Failed)
	assert.Equal(t, map[string]int{"textrank": 1}, m.Wins)
	assert.Equal(t, []string{"pump:2", "valve:1"}, m.AggregateKeywords)

	require.Len(t, m.Results, 3)
	assert.Equal(t, "b.txt", m.Results[0].Path)
	assert.Equal(t, ErrorTypeInternal, m.Results[0].ErrorType)
	assert.Equal(t, "docs/manual.pdf", m.Results[1].Path)
	assert.Equal(t, "success", m.Results[1].Status)
	assert.Equal(t, "run-1", m.Results[1].RunID)
	assert.InDelta(t, 0.61, float64(m.Results[1].Score), 1e-9)
	assert.Equal(t, []string{"pump:2"}, m.Results[1].TopKeywords)
	assert.Equal(t, "z.docx", m.Results[2].Path)
	assert.Equal(t, "error", m.Results[2].Status)
	assert.Equal(t, ErrorTypeUnsupported, m.Results[2].ErrorType)
}
