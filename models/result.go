package models

import "unicode/utf8"

// Method tags for results that did not come from a strategy.
const (
	TagNotAvailable = "N/A"
	TagFirstPageRaw = "fallback: first page raw"
	TagFullFiltered = "fallback: full filtered text"
	TagNoSentences  = "no sentences post-filter"
)

// Result is everything the pipeline hands to a downstream consumer: the
// best single summary and the full filtered document, each with the page
// numbers it came from. MethodMetrics is for logging only.
type Result struct {
	SummaryText   string             `json:"summary_text" yaml:"summary_text"`
	SummaryPages  []int              `json:"summary_pages" yaml:"summary_pages"`
	Method        string             `json:"method" yaml:"method"`
	MethodMetrics map[string]Metrics `json:"method_metrics,omitempty" yaml:"method_metrics,omitempty"`
	FilteredText  string             `json:"filtered_text" yaml:"filtered_text"`
	FilteredPages []int              `json:"filtered_pages" yaml:"filtered_pages"`

	Language        string `json:"language,omitempty" yaml:"language,omitempty"`
	SentenceCount   int    `json:"sentence_count" yaml:"sentence_count"`
	TargetSentences int    `json:"target_sentences,omitempty" yaml:"target_sentences,omitempty"`
}

// EmptyResult is returned for an empty page list.
func EmptyResult() Result {
	return Result{
		SummaryPages:  []int{},
		Method:        TagNotAvailable,
		FilteredPages: []int{},
	}
}

// IsFallback reports whether no strategy won.
func (r Result) IsFallback() bool {
	switch r.Method {
	case TagNotAvailable, TagFirstPageRaw, TagFullFiltered, TagNoSentences:
		return true
	}
	return false
}

// ForBudget picks the view a size-constrained consumer should send on:
// the full filtered text when it fits within maxChars, otherwise the best
// summary. A non-positive budget always selects the summary.
func (r Result) ForBudget(maxChars int) (string, []int) {
	if maxChars > 0 && r.FilteredText != "" && utf8.RuneCountInString(r.FilteredText) <= maxChars {
		return r.FilteredText, r.FilteredPages
	}
	return r.SummaryText, r.SummaryPages
}
