package summarizer

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtnitsch/llm-doc-digest/models"
)

type periodSplitter struct{}

func (periodSplitter) Split(text string) []string {
	var out []string
	for _, s := range strings.SplitAfter(text, ".") {
		if t := strings.TrimSpace(s); t != "" {
			out = append(out, t)
		}
	}
	return out
}

type fixedStrategy struct {
	ratings []float64
	err     error
}

func (f fixedStrategy) Rate(doc *Document) ([]float64, error) {
	return f.ratings, f.err
}

const sample = `The river flooded the lower town after three days of rain.
Engineers inspected the river wall and found cracks along the town side.
The council approved money to repair the river wall before winter.
Children played football in the park on Saturday.
Residents of the lower town were moved to the school hall.
The repaired wall will protect the town from future river floods.
A bakery on the high street sold out of bread by noon.
Engineers expect the wall repairs to finish in six weeks.`

func TestSummarize_AllMethods(t *testing.T) {
	doc := NewDocument(sample, periodSplitter{}, "english")
	require.Len(t, doc.Sentences, 8)

	for _, m := range models.Methods {
		t.Run(m.String(), func(t *testing.T) {
			got, err := Summarize(m, doc, 3)
			require.NoError(t, err)
			assert.NotEmpty(t, got)
			assert.LessOrEqual(t, len(got), 3)

			// sentences come back verbatim and in document order
			last := -1
			for _, s := range got {
				pos := indexOf(doc.Sentences, s)
				require.GreaterOrEqual(t, pos, 0, "sentence %q not in document", s)
				assert.Greater(t, pos, last)
				last = pos
			}

			again, err := Summarize(m, doc, 3)
			require.NoError(t, err)
			assert.Equal(t, got, again)
		})
	}
}

func TestSummarize_ShortDocument(t *testing.T) {
	doc := NewDocument("Only one sentence about river walls.", periodSplitter{}, "")
	assert.Equal(t, "english", doc.Language)

	for _, m := range models.Methods {
		got, err := Summarize(m, doc, 5)
		require.NoError(t, err, m.String())
		assert.Equal(t, []string{"Only one sentence about river walls."}, got, m.String())
	}
}

func TestExtract(t *testing.T) {
	doc := &Document{Sentences: []string{"a.", "b.", "c.", "d."}, Terms: make([][]string, 4)}

	got, err := Extract(fixedStrategy{ratings: []float64{0.2, 0.9, 0.2, 0.5}}, doc, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"b.", "d."}, got)

	// a zero count still yields one sentence
	got, err = Extract(fixedStrategy{ratings: []float64{0.2, 0.9, 0.2, 0.5}}, doc, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"b."}, got)

	_, err = Extract(fixedStrategy{ratings: []float64{1}}, doc, 2)
	assert.Error(t, err)

	boom := errors.New("boom")
	_, err = Extract(fixedStrategy{err: boom}, doc, 2)
	assert.ErrorIs(t, err, boom)
}

func TestExtract_EmptyDocument(t *testing.T) {
	_, err := Extract(TextRank{}, nil, 3)
	assert.ErrorIs(t, err, ErrEmptyDocument)

	_, err = Extract(TextRank{}, &Document{}, 3)
	assert.ErrorIs(t, err, ErrEmptyDocument)
}

func TestBest_TiesKeepDocumentOrder(t *testing.T) {
	ratings := []float64{0.5, 0.9, 0.5, 0.1}
	assert.Equal(t, []int{0, 1}, best(ratings, 2))
	assert.Equal(t, []int{0, 1, 2}, best(ratings, 3))
	assert.Equal(t, []int{0, 1, 2, 3}, best(ratings, 10))
}

func TestLSA_NoContentWords(t *testing.T) {
	doc := NewDocument("It is. So it was.", periodSplitter{}, "english")
	require.Len(t, doc.Sentences, 2)

	_, err := Summarize(models.MethodLSA, doc, 1)
	assert.Error(t, err)
}

func TestLuhn_RateSentence(t *testing.T) {
	l := Luhn{MaxGap: 1, MinFrequency: 2}
	significant := map[string]bool{"wall": true}

	assert.InDelta(t, 4.0/3.0, l.rateSentence([]string{"wall", "x", "wall"}, significant), 1e-9)
	// a gap wider than MaxGap splits the cluster
	assert.InDelta(t, 1.0, l.rateSentence([]string{"wall", "x", "y", "wall"}, significant), 1e-9)
	assert.Equal(t, 0.0, l.rateSentence([]string{"x", "y"}, significant))
}

func TestStem(t *testing.T) {
	assert.Equal(t, "run", Stem("running", "english"))
	assert.Equal(t, "running", Stem("running", "klingon"))
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}
