package digest

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/llm-doc-digest/internal/common"
	"github.com/dtnitsch/llm-doc-digest/models"
	"github.com/dtnitsch/llm-doc-digest/pkg/caching"
	"github.com/dtnitsch/llm-doc-digest/pkg/db"
	"github.com/dtnitsch/llm-doc-digest/pkg/langdetect"
	"github.com/dtnitsch/llm-doc-digest/pkg/metrics"
	"github.com/dtnitsch/llm-doc-digest/pkg/report"
	"github.com/dtnitsch/llm-doc-digest/pkg/storage"
)

// NewLogger builds the JSON stderr logger every action uses.
func NewLogger(c *cli.Context) *slog.Logger {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	if c.Bool("verbose") {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

// LoadConfig reads --config, or returns the defaults when it is unset.
func LoadConfig(c *cli.Context) (models.Config, error) {
	if path := c.String("config"); path != "" {
		return models.LoadConfig(path)
	}
	return models.DefaultConfig(), nil
}

func DigestAction(c *cli.Context) error {
	logger := NewLogger(c)
	startTime := time.Now()

	cfg, err := LoadConfig(c)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}

	runConfig := &models.RunConfig{
		Files:       append(common.ParseFileList(c.String("files")), c.Args().Slice()...),
		WorkerCount: c.Int("workers"),
	}
	if len(runConfig.Files) == 0 {
		fmt.Fprintln(os.Stderr, "Error: No files provided")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, `  llm-doc-digest digest --files "report.pdf,notes.txt"`)
		fmt.Fprintln(os.Stderr, `  llm-doc-digest digest report.pdf manual.html --format json`)
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Need help? Run: llm-doc-digest digest --help")
		return cli.Exit("", 1)
	}

	files, invalid := common.SanitizeAndValidatePaths(runConfig.Files)
	if len(invalid) > 0 {
		fmt.Fprintf(os.Stderr, "Error: %d file(s) cannot be digested:\n", len(invalid))
		for path, reason := range invalid {
			fmt.Fprintf(os.Stderr, "  - %s (%s)\n", path, reason)
		}
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Supported formats: .pdf, .html, .htm, .txt")
		return cli.Exit("", 1)
	}
	runConfig.Files = files

	format := c.String("format")
	if format != report.FormatYAML && format != report.FormatJSON {
		return cli.Exit(fmt.Sprintf("unknown format %q, want yaml or json", format), 2)
	}

	e := &env{
		logger:   logger,
		detector: langdetect.New(),
		opts: Options{
			Config:      cfg,
			IncludeText: c.Bool("include-text"),
			Budget:      c.Int("budget"),
		},
	}

	if dir := c.String("cache-dir"); dir != "" {
		maxAge, err := time.ParseDuration(c.String("max-age"))
		if err != nil {
			return cli.Exit(fmt.Sprintf("invalid max-age duration: %v", err), 2)
		}
		e.cache, err = caching.NewCache(dir, maxAge)
		if err != nil {
			return cli.Exit(err.Error(), 2)
		}
	}

	metricsFile := c.String("metrics-file")
	if metricsFile != "" {
		e.recorder = metrics.NewRecorder()
	}

	var database *db.DB
	if path := c.String("db"); path != "" {
		database, err = db.OpenPath(path)
		if err != nil {
			return cli.Exit(fmt.Sprintf("failed to open database: %v", err), 2)
		}
		defer database.Close()
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt)
	defer stop()

	allResults, aggregate := run(ctx, e, runConfig.Files, runConfig.WorkerCount)

	if outDir := c.String("out"); outDir != "" {
		writeReports(logger, &storage.Storage{BaseDir: outDir}, allResults, format)
	}
	if database != nil {
		recordRuns(logger, database, allResults)
	}

	manifest := report.GenerateManifest(allResults, aggregate)
	data, err := report.Encode(manifest, format)
	if err != nil {
		return err
	}
	if _, err := os.Stdout.Write(data); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	if e.recorder != nil {
		if err := e.recorder.WriteTextfile(metricsFile); err != nil {
			logger.Warn("Failed to write metrics file", "path", metricsFile, "error", err)
		}
	}

	stats := collectStats(allResults)
	stats.TotalTimeSeconds = time.Since(startTime).Seconds()
	logger.Info("Digest finished",
		"documents", stats.TotalDocuments,
		"successful", stats.Successful,
		"failed", stats.Failed,
		"fallbacks", stats.Fallbacks,
		"total_time_seconds", stats.TotalTimeSeconds,
	)

	if stats.Failed > 0 {
		return cli.Exit(fmt.Sprintf("%d of %d documents failed", stats.Failed, stats.TotalDocuments), 1)
	}
	return nil
}

// writeReports saves one report per successful document and records the
// file it went to.
func writeReports(logger *slog.Logger, s *storage.Storage, results []report.DocumentResult, format string) {
	for i := range results {
		r := &results[i]
		if r.Err != nil || r.Report == nil {
			continue
		}
		data, err := report.Encode(r.Report, format)
		if err != nil {
			logger.Warn("Failed to encode report", "path", r.Path, "error", err)
			continue
		}
		name := storage.ReportPath(r.Path, r.Report.ContentHash, report.Extension(format))
		if err := s.SaveFile(name, data); err != nil {
			logger.Warn("Failed to save report", "path", r.Path, "error", err)
			continue
		}
		r.ReportPath = name
	}
}

// recordRuns stores every successful run. Writes happen here, after the
// workers are done, so SQLite sees a single writer.
func recordRuns(logger *slog.Logger, database *db.DB, results []report.DocumentResult) {
	for _, r := range results {
		if r.Err != nil || r.Report == nil {
			continue
		}
		rep := r.Report
		docID, err := database.UpsertDocument(rep.Path, rep.ContentHash, rep.Format, rep.TotalPages)
		if err != nil {
			logger.Warn("Failed to record document", "path", rep.Path, "error", err)
			continue
		}
		runID, err := database.InsertRun(db.Run{
			RunUUID:         rep.RunID,
			DocID:           docID,
			Method:          rep.Method,
			Language:        rep.Language,
			SummaryPages:    rep.SummaryPages,
			FilteredPages:   rep.FilteredPages,
			SummaryChars:    rep.SummaryChars,
			FilteredChars:   rep.FilteredChars,
			SentenceCount:   rep.SentenceCount,
			TargetSentences: rep.TargetSentences,
			DurationMS:      rep.DurationMS,
		}, rep.Metrics)
		if err != nil {
			logger.Warn("Failed to record run", "path", rep.Path, "error", err)
			continue
		}
		logger.Info("Recorded run", "path", rep.Path, "run_id", runID, "run_uuid", rep.RunID)
	}
}
