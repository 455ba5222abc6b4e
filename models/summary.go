package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// Method identifies one extractive summarization strategy.
// The declaration order is also the tie-break order during selection.
type Method int

const (
	MethodTextRank Method = iota // graph centrality
	MethodLexRank                // lexical graph
	MethodLuhn                   // word frequency heuristic
	MethodLSA                    // latent semantic analysis
)

// Methods lists every strategy in tie-break order.
var Methods = []Method{MethodTextRank, MethodLexRank, MethodLuhn, MethodLSA}

var methodNames = map[Method]string{
	MethodTextRank: "textrank",
	MethodLexRank:  "lexrank",
	MethodLuhn:     "luhn",
	MethodLSA:      "lsa",
}

func (m Method) String() string {
	if name, ok := methodNames[m]; ok {
		return name
	}
	return fmt.Sprintf("method(%d)", int(m))
}

// ParseMethod resolves a strategy name such as "lexrank".
func ParseMethod(s string) (Method, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for m, name := range methodNames {
		if name == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown summarization method: %q", s)
}

func (m Method) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Method) UnmarshalText(b []byte) error {
	parsed, err := ParseMethod(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Score is a composite score. Failed or empty candidates carry -Inf,
// which JSON cannot represent, so it is written as null.
type Score float64

// Failed is the score of a candidate that must never be selected.
var Failed = Score(math.Inf(-1))

// Valid reports whether the score is finite.
func (s Score) Valid() bool {
	f := float64(s)
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}

func (s Score) MarshalJSON() ([]byte, error) {
	if !s.Valid() {
		return []byte("null"), nil
	}
	return json.Marshal(float64(s))
}

func (s *Score) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*s = Failed
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*s = Score(f)
	return nil
}

// Similarity holds ROUGE F-measures of a candidate against its reference.
type Similarity struct {
	Unigram float64 `json:"rouge1" yaml:"rouge1"`
	Bigram  float64 `json:"rouge2" yaml:"rouge2"`
	LCS     float64 `json:"rouge_l" yaml:"rouge_l"`
}

// Metrics is the scoring bundle of one candidate.
// Every sub-score is zero when the candidate text is empty.
type Metrics struct {
	Similarity       Similarity `json:"similarity" yaml:"similarity"`
	CompressionRatio float64    `json:"compression_ratio" yaml:"compression_ratio"`
	Readability      float64    `json:"readability" yaml:"readability"`
	SentenceCount    int        `json:"sentence_count" yaml:"sentence_count"`
	OverallScore     Score      `json:"overall_score" yaml:"overall_score"`
}

// SummaryCandidate is one strategy's output, enriched with its metrics.
type SummaryCandidate struct {
	Method    Method   `json:"method" yaml:"method"`
	Sentences []string `json:"sentences" yaml:"sentences"`
	Text      string   `json:"text" yaml:"text"`
	Pages     []int    `json:"pages" yaml:"pages"`
	Metrics   Metrics  `json:"metrics" yaml:"metrics"`
	Score     Score    `json:"score" yaml:"score"`
	Err       error    `json:"-" yaml:"-"`
}

// Empty reports whether the candidate produced no usable text.
func (c *SummaryCandidate) Empty() bool {
	return strings.TrimSpace(c.Text) == ""
}
