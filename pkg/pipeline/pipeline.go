// Package pipeline turns the pages of one document into the best summary
// and the full filtered text, both with page provenance.
//
// The steps are: drop boilerplate pages, index the sentences of the kept
// pages, run every summarization strategy with the same sentence budget,
// score each candidate against the filtered text, and keep the highest
// scoring candidate. Run never fails; every degenerate input maps to one of
// the fallback results in models.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dtnitsch/llm-doc-digest/models"
	"github.com/dtnitsch/llm-doc-digest/pkg/classifier"
	"github.com/dtnitsch/llm-doc-digest/pkg/evaluator"
	"github.com/dtnitsch/llm-doc-digest/pkg/langdetect"
	"github.com/dtnitsch/llm-doc-digest/pkg/provenance"
	"github.com/dtnitsch/llm-doc-digest/pkg/summarizer"
)

// SentenceSplitter is the sentence boundary tokenizer shared by the
// indexer and the strategies.
type SentenceSplitter interface {
	Split(text string) []string
}

// LanguageDetector picks the stemmer language of the filtered text.
type LanguageDetector interface {
	Detect(text string) langdetect.Result
}

// Observer receives per-strategy and per-document outcomes. Implementations
// must be safe for concurrent use.
type Observer interface {
	StrategyFinished(method models.Method, score models.Score, err error, elapsed time.Duration)
	DocumentFinished(method string, elapsed time.Duration)
}

// Pipeline is safe for concurrent use only when its splitter is.
type Pipeline struct {
	config     models.Config
	splitter   SentenceSplitter
	logger     *slog.Logger
	observer   Observer
	languages  LanguageDetector
	strategies map[models.Method]summarizer.Strategy
}

// Option customizes a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger. nil keeps slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithObserver reports outcomes to o.
func WithObserver(o Observer) Option {
	return func(p *Pipeline) { p.observer = o }
}

// WithLanguageDetector enables language detection. Without it every
// document is treated as English.
func WithLanguageDetector(d LanguageDetector) Option {
	return func(p *Pipeline) { p.languages = d }
}

// WithStrategy replaces the strategy behind method m.
func WithStrategy(m models.Method, s summarizer.Strategy) Option {
	return func(p *Pipeline) { p.strategies[m] = s }
}

// New returns a pipeline scoring with cfg.
func New(cfg models.Config, splitter SentenceSplitter, opts ...Option) *Pipeline {
	p := &Pipeline{
		config:     cfg,
		splitter:   splitter,
		logger:     slog.Default(),
		strategies: make(map[models.Method]summarizer.Strategy, len(models.Methods)),
	}
	for _, m := range models.Methods {
		if s, err := summarizer.For(m); err == nil {
			p.strategies[m] = s
		}
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// RunDocument runs an extracted document.
func (p *Pipeline) RunDocument(ctx context.Context, doc models.Document) models.Result {
	return p.Run(ctx, doc.Pages, doc.TotalPages)
}

// Run processes the pages of one document. totalPages is the page count of
// the whole document, which can exceed len(pages) when blank pages were not
// extracted. Pages are expected in ascending page order.
func (p *Pipeline) Run(ctx context.Context, pages []models.PageText, totalPages int) models.Result {
	start := time.Now()
	result := p.run(ctx, pages, totalPages)
	if p.observer != nil {
		p.observer.DocumentFinished(result.Method, time.Since(start))
	}
	p.logger.Info("Digest complete",
		"method", result.Method,
		"summary_pages", result.SummaryPages,
		"filtered_pages", len(result.FilteredPages),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return result
}

func (p *Pipeline) run(ctx context.Context, pages []models.PageText, totalPages int) models.Result {
	if len(pages) == 0 {
		p.logger.Warn("No pages to digest")
		return models.EmptyResult()
	}
	if totalPages < len(pages) {
		totalPages = len(pages)
	}

	var kept []models.PageText
	for _, page := range pages {
		page.TotalPages = totalPages
		verdict := classifier.Classify(page)
		if verdict.Boilerplate {
			p.logger.Debug("Dropped boilerplate page",
				"page", page.PageNumber,
				"reason", verdict.Reason,
				"match", verdict.Match,
			)
			continue
		}
		kept = append(kept, page)
	}

	if len(kept) == 0 {
		return p.firstPageFallback(pages[0])
	}

	idx, filtered := provenance.Build(kept, p.splitter)
	if strings.TrimSpace(filtered.FullText) == "" || idx.Len() == 0 {
		p.logger.Warn("No sentences after filtering", "kept_pages", len(kept))
		return models.Result{
			SummaryPages:  []int{},
			Method:        models.TagNoSentences,
			FilteredText:  filtered.FullText,
			FilteredPages: filtered.Pages,
		}
	}

	language := langdetect.English
	if p.languages != nil {
		language = p.languages.Detect(filtered.FullText)
	}
	target := p.config.TargetSentences(idx.Len())
	p.logger.Info("Filtered document",
		"pages", len(pages),
		"kept_pages", len(kept),
		"sentences", idx.Len(),
		"target", target,
		"language", language.Code,
	)

	doc := summarizer.NewDocument(filtered.FullText, p.splitter, language.Stemmer)
	candidates, elapsed := p.generate(ctx, doc, target)
	eval := evaluator.New(p.config, language.Stemmer)

	metrics := make(map[string]models.Metrics, len(candidates))
	var best *models.SummaryCandidate
	for i := range candidates {
		c := &candidates[i]
		c.Text = strings.Join(c.Sentences, " ")
		// unmatched summaries fall back to the first page that contributed text
		c.Pages = idx.Attribute(c.Sentences, filtered.Pages[0])
		c.Metrics = eval.Evaluate(c.Text, len(c.Sentences), filtered.FullText)
		c.Score = c.Metrics.OverallScore
		metrics[c.Method.String()] = c.Metrics
		if p.observer != nil {
			p.observer.StrategyFinished(c.Method, c.Score, c.Err, elapsed[i])
		}

		if c.Err != nil {
			p.logger.Warn("Strategy failed", "method", c.Method.String(), "error", c.Err)
		} else {
			p.logger.Info("Strategy scored",
				"method", c.Method.String(),
				"sentences", len(c.Sentences),
				"score", float64(c.Score),
				"rouge_l", c.Metrics.Similarity.LCS,
				"readability", c.Metrics.Readability,
				"compression", c.Metrics.CompressionRatio,
				"pages", c.Pages,
			)
		}
		if c.Empty() {
			continue
		}
		// strict comparison keeps the earliest method on ties
		if best == nil || c.Score > best.Score {
			best = c
		}
	}

	if best == nil {
		p.logger.Warn("Every strategy failed, using full filtered text")
		return models.Result{
			SummaryText:     filtered.FullText,
			SummaryPages:    filtered.Pages,
			Method:          models.TagFullFiltered,
			MethodMetrics:   metrics,
			FilteredText:    filtered.FullText,
			FilteredPages:   filtered.Pages,
			Language:        language.Code,
			SentenceCount:   idx.Len(),
			TargetSentences: target,
		}
	}

	p.logger.Info("Selected summary", "method", best.Method.String(), "score", float64(best.Score))
	return models.Result{
		SummaryText:     best.Text,
		SummaryPages:    best.Pages,
		Method:          best.Method.String(),
		MethodMetrics:   metrics,
		FilteredText:    filtered.FullText,
		FilteredPages:   filtered.Pages,
		Language:        language.Code,
		SentenceCount:   idx.Len(),
		TargetSentences: target,
	}
}

// firstPageFallback stands the first raw page in for a document whose
// pages were all classified as boilerplate.
func (p *Pipeline) firstPageFallback(first models.PageText) models.Result {
	idx := provenance.ForPage(first, p.splitter)
	p.logger.Warn("Every page classified as boilerplate, using first page",
		"page", first.PageNumber,
		"sentences", idx.Len(),
	)
	return models.Result{
		SummaryText:   first.Text,
		SummaryPages:  []int{first.PageNumber},
		Method:        models.TagFirstPageRaw,
		MethodMetrics: map[string]models.Metrics{},
		FilteredText:  first.Text,
		FilteredPages: []int{first.PageNumber},
		SentenceCount: idx.Len(),
	}
}

// generate runs every strategy on doc. Candidates and their run times
// come back in models.Methods order whatever order the strategies finish in.
func (p *Pipeline) generate(ctx context.Context, doc *summarizer.Document, target int) ([]models.SummaryCandidate, []time.Duration) {
	candidates := make([]models.SummaryCandidate, len(models.Methods))
	elapsed := make([]time.Duration, len(models.Methods))

	var g errgroup.Group
	if p.config.Concurrency > 0 {
		g.SetLimit(p.config.Concurrency)
	}
	for i, m := range models.Methods {
		g.Go(func() error {
			start := time.Now()
			sentences, err := p.summarize(ctx, m, doc, target)
			c := models.SummaryCandidate{Method: m, Sentences: sentences, Err: err}
			if err != nil {
				c.Sentences = nil
			}
			candidates[i] = c
			elapsed[i] = time.Since(start)
			return nil
		})
	}
	_ = g.Wait()
	return candidates, elapsed
}

// summarize runs one strategy and turns a panic into an error.
func (p *Pipeline) summarize(ctx context.Context, m models.Method, doc *summarizer.Document, target int) (sentences []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			sentences = nil
			err = fmt.Errorf("strategy %s panicked: %v", m, r)
		}
	}()
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("strategy %s not started: %w", m, err)
	}
	s, ok := p.strategies[m]
	if !ok || s == nil {
		return nil, fmt.Errorf("no strategy registered for %s", m)
	}
	return summarizer.Extract(s, doc, target)
}
