package digest

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dtnitsch/llm-doc-digest/internal/common"
	"github.com/dtnitsch/llm-doc-digest/models"
	"github.com/dtnitsch/llm-doc-digest/pkg/analytics"
	"github.com/dtnitsch/llm-doc-digest/pkg/extractor"
	"github.com/dtnitsch/llm-doc-digest/pkg/keywords"
	"github.com/dtnitsch/llm-doc-digest/pkg/langdetect"
	"github.com/dtnitsch/llm-doc-digest/pkg/pipeline"
	"github.com/dtnitsch/llm-doc-digest/pkg/report"
	"github.com/dtnitsch/llm-doc-digest/pkg/sentence"
)

// run digests files on workerCount workers and reduces their keyword counts.
// Results come back in completion order.
func run(ctx context.Context, e *env, files []string, workerCount int) ([]report.DocumentResult, map[string]int) {
	if workerCount < 1 {
		workerCount = 1
	}
	e.logger.Info("Starting digest phase", "document_count", len(files), "workers", workerCount)

	var wg sync.WaitGroup
	jobs := make(chan Job, len(files))
	results := make(chan report.DocumentResult, len(files))

	for w := 1; w <= workerCount; w++ {
		wg.Add(1)
		go worker(ctx, w, e, &wg, jobs, results)
	}

	for _, path := range files {
		jobs <- Job{Path: path}
	}
	close(jobs)

	wg.Wait()
	close(results)
	e.logger.Info("All digest workers finished")

	allResults := make([]report.DocumentResult, 0, len(files))
	intermediate := []map[string]int{}
	for result := range results {
		allResults = append(allResults, result)
		if result.WordCounts != nil {
			intermediate = append(intermediate, result.WordCounts)
		}
	}

	e.logger.Info("Starting keyword reduce phase", "maps", len(intermediate))
	return allResults, keywords.Reduce(intermediate)
}

// worker owns one sentence tokenizer and one pipeline.
func worker(ctx context.Context, id int, e *env, wg *sync.WaitGroup, jobs <-chan Job, results chan<- report.DocumentResult) {
	defer wg.Done()

	splitter, err := sentence.NewSplitter()
	if err != nil {
		e.logger.Error("Worker could not build sentence splitter", "worker_id", id, "error", err)
		for job := range jobs {
			results <- report.DocumentResult{Path: job.Path, Err: err, ErrorType: report.ErrorTypeInternal}
		}
		return
	}

	opts := []pipeline.Option{
		pipeline.WithLogger(e.logger.With("worker_id", id)),
		pipeline.WithLanguageDetector(e.detector),
	}
	if e.recorder != nil {
		opts = append(opts, pipeline.WithObserver(e.recorder))
	}
	p := pipeline.New(e.opts.Config, splitter, opts...)

	for job := range jobs {
		e.logger.Info("Worker started job", "worker_id", id, "path", job.Path)
		result := process(ctx, id, e, p, job.Path)
		if result.Err != nil && e.recorder != nil {
			e.recorder.DocumentFailed()
		}
		results <- result
		e.logger.Info("Worker finished job", "worker_id", id, "path", job.Path, "error", result.Err)
	}
}

func process(ctx context.Context, id int, e *env, p *pipeline.Pipeline, path string) (result report.DocumentResult) {
	result = report.DocumentResult{Path: path}
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("Worker recovered from panic", "worker_id", id, "path", path, "panic", r)
			result = report.DocumentResult{
				Path:      path,
				Err:       fmt.Errorf("panic while digesting %s: %v", path, r),
				ErrorType: report.ErrorTypeInternal,
			}
		}
	}()

	if err := ctx.Err(); err != nil {
		result.Err = err
		result.ErrorType = report.ErrorTypeCanceled
		return result
	}

	doc, hash, size, err := load(e, id, path)
	if err != nil {
		e.logger.Error("Error extracting document", "worker_id", id, "path", path, "error", err)
		result.Err = err
		result.ErrorType = report.ClassifyError(err)
		return result
	}
	result.SizeBytes = size

	start := time.Now()
	res := p.RunDocument(ctx, doc)
	elapsed := time.Since(start)

	a := &analytics.Analytics{Language: langdetect.StemmerFor(res.Language)}
	result.WordCounts = keywords.Map(res.FilteredText, a)

	rep := report.New(doc, res, report.Options{
		RunID:       uuid.NewString(),
		ContentHash: hash,
		IncludeText: e.opts.IncludeText,
		Budget:      e.opts.Budget,
		DurationMS:  elapsed.Milliseconds(),
		WordCounts:  result.WordCounts,
	})
	result.Report = &rep
	return result
}

// load extracts path, going through the cache when one is configured.
func load(e *env, id int, path string) (models.Document, string, int64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Document{}, "", 0, fmt.Errorf("failed to read %s: %w", path, err)
	}
	hash := common.ContentHash(data)

	if e.cache != nil {
		doc, hit := e.cache.GetDocument(hash)
		if e.recorder != nil {
			e.recorder.CacheLookup(hit)
		}
		if hit {
			e.logger.Info("Extracted pages found in cache", "worker_id", id, "path", path)
			doc.Path = path
			return doc, hash, int64(len(data)), nil
		}
	}

	doc, err := extractor.Extract(path)
	if err != nil {
		return models.Document{}, hash, 0, err
	}

	if e.cache != nil {
		if err := e.cache.SetDocument(hash, doc); err != nil {
			e.logger.Warn("Failed to cache extracted pages", "worker_id", id, "path", path, "error", err)
		}
	}
	return doc, hash, int64(len(data)), nil
}
