package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMethodNames(t *testing.T) {
	for _, m := range Methods {
		parsed, err := ParseMethod(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, parsed)
	}

	_, err := ParseMethod(TagFullFiltered)
	assert.Error(t, err)

	parsed, err := ParseMethod("  LexRank ")
	require.NoError(t, err)
	assert.Equal(t, MethodLexRank, parsed)
}

func TestScoreJSON(t *testing.T) {
	data, err := json.Marshal(map[string]Score{"ok": 0.5, "failed": Failed})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":0.5,"failed":null}`, string(data))

	var m Metrics
	require.NoError(t, json.Unmarshal([]byte(`{"overall_score":null}`), &m))
	assert.False(t, m.OverallScore.Valid())
}

func TestSummaryCandidateEmpty(t *testing.T) {
	assert.True(t, (&SummaryCandidate{}).Empty())
	assert.True(t, (&SummaryCandidate{Text: " \n "}).Empty())
	assert.False(t, (&SummaryCandidate{Text: "A sentence."}).Empty())
}
