package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtnitsch/llm-doc-digest/models"
)

func TestRecorder_StrategyFinished(t *testing.T) {
	r := NewRecorder()

	r.StrategyFinished(models.MethodTextRank, 0.62, nil, 10*time.Millisecond)
	r.StrategyFinished(models.MethodLSA, models.Failed, errors.New("svd failed"), time.Millisecond)
	r.StrategyFinished(models.MethodLuhn, models.Failed, nil, time.Millisecond)

	assert.Equal(t, 0.62, testutil.ToFloat64(r.candidateScore.WithLabelValues("textrank")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.strategyFailures.WithLabelValues("lsa")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.strategyFailures.WithLabelValues("luhn")))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.strategyFailures.WithLabelValues("textrank")))
}

func TestRecorder_DocumentFinished(t *testing.T) {
	r := NewRecorder()

	r.DocumentFinished("lexrank", time.Second)
	r.DocumentFinished("lexrank", time.Second)
	r.DocumentFinished(models.TagFullFiltered, time.Second)
	r.DocumentFinished(models.TagNotAvailable, time.Second)
	r.DocumentFailed()

	assert.Equal(t, 2.0, testutil.ToFloat64(r.strategyWins.WithLabelValues("lexrank")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.documents.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.documents.WithLabelValues(OutcomeFallback)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.documents.WithLabelValues(OutcomeError)))
	var m dto.Metric
	require.NoError(t, r.pipelineDuration.Write(&m))
	assert.Equal(t, uint64(4), m.GetHistogram().GetSampleCount())
}

func TestRecorder_WriteTextfile(t *testing.T) {
	r := NewRecorder()
	r.CacheLookup(true)
	r.CacheLookup(false)
	r.DocumentFinished("luhn", 250*time.Millisecond)

	path := filepath.Join(t.TempDir(), "ldd.prom")
	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.True(t, strings.Contains(out, `ldd_cache_lookups_total{result="hit"} 1`))
	assert.True(t, strings.Contains(out, `ldd_strategy_wins_total{method="luhn"} 1`))
	assert.True(t, strings.Contains(out, "ldd_pipeline_duration_seconds_count 1"))
}
