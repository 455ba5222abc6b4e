package digest

import (
	"log/slog"

	"github.com/dtnitsch/llm-doc-digest/models"
	"github.com/dtnitsch/llm-doc-digest/pkg/caching"
	"github.com/dtnitsch/llm-doc-digest/pkg/langdetect"
	"github.com/dtnitsch/llm-doc-digest/pkg/metrics"
	"github.com/dtnitsch/llm-doc-digest/pkg/report"
)

// Job is one input file for a worker.
type Job struct {
	Path string
}

// Options are the per-batch settings every worker shares.
type Options struct {
	Config      models.Config
	IncludeText bool
	Budget      int
}

// env carries the shared collaborators of a batch. Cache and Recorder are
// optional.
type env struct {
	logger   *slog.Logger
	cache    *caching.Cache
	recorder *metrics.Recorder
	detector *langdetect.Detector
	opts     Options
}

// Stats summarizes a batch for the closing log line.
type Stats struct {
	TotalDocuments   int
	Successful       int
	Failed           int
	Fallbacks        int
	TotalTimeSeconds float64
}

func collectStats(results []report.DocumentResult) Stats {
	s := Stats{TotalDocuments: len(results)}
	for _, r := range results {
		switch {
		case r.Err != nil:
			s.Failed++
		case r.Report != nil && r.Report.Fallback:
			s.Successful++
			s.Fallbacks++
		default:
			s.Successful++
		}
	}
	return s
}
