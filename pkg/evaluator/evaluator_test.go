package evaluator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dtnitsch/llm-doc-digest/models"
)

func TestRouge_Identical(t *testing.T) {
	text := "The council approved money to repair the river wall."
	got := Rouge(text, text, "english")
	assert.InDelta(t, 1.0, got.Unigram, 1e-9)
	assert.InDelta(t, 1.0, got.Bigram, 1e-9)
	assert.InDelta(t, 1.0, got.LCS, 1e-9)
}

func TestRouge_Disjoint(t *testing.T) {
	got := Rouge("apples oranges", "trucks boats", "english")
	assert.Equal(t, models.Similarity{}, got)
	assert.Equal(t, models.Similarity{}, Rouge("", "trucks boats", "english"))
}

func TestRouge_Partial(t *testing.T) {
	// hypothesis is a subsequence of the reference: precision 1, recall 0.5
	got := Rouge("a b", "a x b y", "english")
	assert.InDelta(t, 2.0/3.0, got.Unigram, 1e-9)
	assert.InDelta(t, 2.0/3.0, got.LCS, 1e-9)
	assert.Equal(t, 0.0, got.Bigram)
}

func TestComposite(t *testing.T) {
	e := New(models.DefaultConfig(), "english")

	tests := []struct {
		name string
		m    models.Metrics
		want float64
	}{
		{
			name: "weighted sum",
			m:    models.Metrics{Similarity: models.Similarity{LCS: 0.5}, Readability: 50, CompressionRatio: 0.2},
			want: 0.4*0.5 + 0.3*0.5 + 0.3*0.8,
		},
		{
			name: "readability is clamped",
			m:    models.Metrics{Similarity: models.Similarity{LCS: 1}, Readability: 130, CompressionRatio: 1},
			want: 0.4 + 0.3,
		},
		{
			name: "negative readability counts as zero",
			m:    models.Metrics{Readability: -40, CompressionRatio: 0.5},
			want: 0.3 * 0.5,
		},
		{
			name: "expansion is penalized",
			m:    models.Metrics{Readability: 0, CompressionRatio: 1.2},
			want: 0.3 * -0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, float64(e.Composite(tt.m)), 1e-9)
		})
	}
}

func TestEvaluate(t *testing.T) {
	e := New(models.DefaultConfig(), "english")
	reference := "The cat sat on the mat. The dog ran in the park. Birds sang all day."

	m := e.Evaluate("The cat sat on the mat.", 1, reference)
	assert.True(t, m.OverallScore.Valid())
	assert.Equal(t, 1, m.SentenceCount)
	assert.Less(t, m.CompressionRatio, 1.0)
	assert.Greater(t, m.Similarity.LCS, 0.0)
	assert.InDelta(t, float64(e.Composite(m)), float64(m.OverallScore), 1e-12)
}

func TestEvaluate_EmptyCandidate(t *testing.T) {
	e := New(models.DefaultConfig(), "")
	m := e.Evaluate("   ", 0, "Some reference text.")
	assert.False(t, m.OverallScore.Valid())
	assert.Equal(t, models.Failed, m.OverallScore)
	assert.Equal(t, models.Similarity{}, m.Similarity)
}

func TestCompressionRatio(t *testing.T) {
	assert.Equal(t, 1.0, CompressionRatio("anything", ""))
	assert.InDelta(t, 0.5, CompressionRatio("ab", "abcd"), 1e-9)
	assert.InDelta(t, 0.5, CompressionRatio("éé", "éééé"), 1e-9)
	assert.InDelta(t, 2.0, CompressionRatio("abcd", "ab"), 1e-9)
}

func TestSyllables(t *testing.T) {
	tests := map[string]int{
		"the":     1,
		"cake":    1,
		"table":   2,
		"jumped":  1,
		"wanted":  2,
		"banana":  3,
		"rhythm":  1,
		"Reading": 2,
		"42":      0,
	}
	for word, want := range tests {
		assert.Equal(t, want, Syllables(word), word)
	}
}

func TestFleschReadingEase(t *testing.T) {
	assert.Equal(t, 0.0, FleschReadingEase("", 1))
	assert.Equal(t, 0.0, FleschReadingEase("The cat sat.", 0))

	// 3 words, 3 syllables, 1 sentence
	want := 206.835 - 1.015*3 - 84.6*1
	assert.InDelta(t, want, FleschReadingEase("The cat sat.", 1), 1e-9)
	assert.Greater(t, FleschReadingEase("The cat sat.", 1), FleschReadingEase("Institutional accountability necessitates comprehensive documentation.", 1))
}
