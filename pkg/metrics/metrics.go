// Package metrics exports digest counters in Prometheus format.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dtnitsch/llm-doc-digest/models"
)

const namespace = "ldd"

// Document outcomes.
const (
	OutcomeSuccess  = "success"
	OutcomeFallback = "fallback"
	OutcomeError    = "error"
)

// Recorder collects pipeline metrics into its own registry. It satisfies
// pipeline.Observer and is safe for concurrent use.
type Recorder struct {
	registry *prometheus.Registry

	documents        *prometheus.CounterVec
	strategyFailures *prometheus.CounterVec
	strategyWins     *prometheus.CounterVec
	strategyLatency  *prometheus.HistogramVec
	candidateScore   *prometheus.GaugeVec
	pipelineDuration prometheus.Histogram
	cacheLookups     *prometheus.CounterVec
}

// DefaultBuckets are the latency buckets in seconds.
var DefaultBuckets = []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60}

// NewRecorder registers every collector on a fresh registry.
func NewRecorder() *Recorder {
	r := &Recorder{registry: prometheus.NewRegistry()}

	r.documents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_total",
			Help:      "Documents processed, by outcome",
		},
		[]string{"outcome"},
	)

	r.strategyFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "strategy_failures_total",
			Help:      "Summarization strategies that failed or returned nothing",
		},
		[]string{"method"},
	)

	r.strategyWins = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "strategy_wins_total",
			Help:      "Documents whose selected summary came from the method",
		},
		[]string{"method"},
	)

	r.strategyLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "strategy_duration_seconds",
			Help:      "Time spent in one summarization strategy",
			Buckets:   DefaultBuckets,
		},
		[]string{"method"},
	)

	r.candidateScore = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "candidate_score",
			Help:      "Composite score of the last successful candidate per method",
		},
		[]string{"method"},
	)

	r.pipelineDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pipeline_duration_seconds",
			Help:      "Time to digest one document",
			Buckets:   DefaultBuckets,
		},
	)

	r.cacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Extraction cache lookups, by result",
		},
		[]string{"result"},
	)

	r.registry.MustRegister(
		r.documents,
		r.strategyFailures,
		r.strategyWins,
		r.strategyLatency,
		r.candidateScore,
		r.pipelineDuration,
		r.cacheLookups,
	)
	return r
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// StrategyFinished records one candidate.
func (r *Recorder) StrategyFinished(method models.Method, score models.Score, err error, elapsed time.Duration) {
	name := method.String()
	r.strategyLatency.WithLabelValues(name).Observe(elapsed.Seconds())
	if err != nil || !score.Valid() {
		r.strategyFailures.WithLabelValues(name).Inc()
		return
	}
	r.candidateScore.WithLabelValues(name).Set(float64(score))
}

// DocumentFinished records the selected method of a document. Fallback
// tags count as fallback outcomes and never as wins.
func (r *Recorder) DocumentFinished(method string, elapsed time.Duration) {
	r.pipelineDuration.Observe(elapsed.Seconds())
	if _, err := models.ParseMethod(method); err != nil {
		r.documents.WithLabelValues(OutcomeFallback).Inc()
		return
	}
	r.documents.WithLabelValues(OutcomeSuccess).Inc()
	r.strategyWins.WithLabelValues(method).Inc()
}

// DocumentFailed records a document that never reached the pipeline.
func (r *Recorder) DocumentFailed() {
	r.documents.WithLabelValues(OutcomeError).Inc()
}

// CacheLookup records an extraction cache hit or miss.
func (r *Recorder) CacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	r.cacheLookups.WithLabelValues(result).Inc()
}

// WriteTextfile writes every metric to path in the text exposition format
// read by the node exporter textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return nil
}
