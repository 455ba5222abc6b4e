package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/dtnitsch/llm-doc-digest/models"
)

// ErrRunNotFound is returned when a run id is unknown.
var ErrRunNotFound = errors.New("run not found")

// Run is one pipeline execution over a document.
type Run struct {
	RunID           int64
	RunUUID         string
	DocID           int64
	Path            string
	Method          string
	Language        string
	SummaryPages    []int
	FilteredPages   []int
	SummaryChars    int
	FilteredChars   int
	SentenceCount   int
	TargetSentences int
	DurationMS      int64
	CreatedAt       time.Time
}

// RunMetric is the score of one strategy within a run.
type RunMetric struct {
	Method  string
	Metrics models.Metrics
}

// InsertRun stores a run and its per-strategy metrics in one transaction,
// returning the run_id.
func (db *DB) InsertRun(run Run, metrics map[string]models.Metrics) (int64, error) {
	summaryPages, err := encodePages(run.SummaryPages)
	if err != nil {
		return 0, err
	}
	filteredPages, err := encodePages(run.FilteredPages)
	if err != nil {
		return 0, err
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }() // no-op after commit

	result, err := tx.Exec(`
		INSERT INTO runs (run_uuid, doc_id, method, language, summary_pages, filtered_pages,
		                  summary_chars, filtered_chars, sentence_count, target_sentences, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.RunUUID, run.DocID, run.Method, NewNullString(run.Language), summaryPages, filteredPages,
		run.SummaryChars, run.FilteredChars, run.SentenceCount, run.TargetSentences, run.DurationMS)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}

	for _, method := range metricOrder(metrics) {
		m := metrics[method]
		_, err := tx.Exec(`
			INSERT INTO run_metrics (run_id, method, rouge1, rouge2, rouge_l, readability,
			                         compression_ratio, sentence_count, overall_score)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, runID, method, m.Similarity.Unigram, m.Similarity.Bigram, m.Similarity.LCS,
			m.Readability, m.CompressionRatio, m.SentenceCount, NewNullScore(m.OverallScore))
		if err != nil {
			return 0, fmt.Errorf("failed to insert metrics for %s: %w", method, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}
	return runID, nil
}

const runColumns = `
	r.run_id, r.run_uuid, r.doc_id, d.path, r.method, r.language,
	r.summary_pages, r.filtered_pages, r.summary_chars, r.filtered_chars,
	r.sentence_count, r.target_sentences, r.duration_ms, r.created_at
`

// ListRuns retrieves runs ordered by most recent first
func (db *DB) ListRuns(limit int) ([]Run, error) {
	query := `SELECT ` + runColumns + `
		FROM runs r
		JOIN documents d ON d.doc_id = r.doc_id
		ORDER BY r.created_at DESC, r.run_id DESC
	`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}

	return runs, nil
}

// GetRun retrieves a run by run_id.
func (db *DB) GetRun(runID int64) (*Run, error) {
	row := db.QueryRow(`SELECT `+runColumns+`
		FROM runs r
		JOIN documents d ON d.doc_id = r.doc_id
		WHERE r.run_id = ?
	`, runID)
	return scanRunRow(row)
}

// GetRunByUUID retrieves a run by the identifier printed in reports.
func (db *DB) GetRunByUUID(runUUID string) (*Run, error) {
	row := db.QueryRow(`SELECT `+runColumns+`
		FROM runs r
		JOIN documents d ON d.doc_id = r.doc_id
		WHERE r.run_uuid = ?
	`, runUUID)
	return scanRunRow(row)
}

// GetRunMetrics returns the per-strategy metrics of a run in insertion order.
func (db *DB) GetRunMetrics(runID int64) ([]RunMetric, error) {
	rows, err := db.Query(`
		SELECT method, rouge1, rouge2, rouge_l, readability, compression_ratio,
		       sentence_count, overall_score
		FROM run_metrics
		WHERE run_id = ?
		ORDER BY metric_id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get run metrics: %w", err)
	}
	defer rows.Close()

	var metrics []RunMetric
	for rows.Next() {
		var rm RunMetric
		var score sql.NullFloat64
		m := &rm.Metrics
		if err := rows.Scan(&rm.Method, &m.Similarity.Unigram, &m.Similarity.Bigram, &m.Similarity.LCS,
			&m.Readability, &m.CompressionRatio, &m.SentenceCount, &score); err != nil {
			return nil, fmt.Errorf("failed to scan run metric: %w", err)
		}
		m.OverallScore = models.Failed
		if score.Valid {
			m.OverallScore = models.Score(score.Float64)
		}
		metrics = append(metrics, rm)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate run metrics: %w", err)
	}

	return metrics, nil
}

// NewNullScore stores failed (non-finite) scores as NULL.
func NewNullScore(s models.Score) sql.NullFloat64 {
	if !s.Valid() {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: float64(s), Valid: true}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (*Run, error) {
	var r Run
	var language, summaryPages, filteredPages sql.NullString
	if err := s.Scan(&r.RunID, &r.RunUUID, &r.DocID, &r.Path, &r.Method, &language,
		&summaryPages, &filteredPages, &r.SummaryChars, &r.FilteredChars,
		&r.SentenceCount, &r.TargetSentences, &r.DurationMS, &r.CreatedAt); err != nil {
		return nil, err
	}
	r.Language = language.String

	var err error
	if r.SummaryPages, err = decodePages(summaryPages.String); err != nil {
		return nil, err
	}
	if r.FilteredPages, err = decodePages(filteredPages.String); err != nil {
		return nil, err
	}
	return &r, nil
}

func scanRunRow(row *sql.Row) (*Run, error) {
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return r, nil
}

func encodePages(pages []int) (string, error) {
	if pages == nil {
		pages = []int{}
	}
	data, err := json.Marshal(pages)
	if err != nil {
		return "", fmt.Errorf("failed to encode pages: %w", err)
	}
	return string(data), nil
}

func decodePages(s string) ([]int, error) {
	pages := []int{}
	if s == "" {
		return pages, nil
	}
	if err := json.Unmarshal([]byte(s), &pages); err != nil {
		return nil, fmt.Errorf("failed to decode pages: %w", err)
	}
	return pages, nil
}

// metricOrder lists known methods in enumeration order, then any other
// keys alphabetically.
func metricOrder(metrics map[string]models.Metrics) []string {
	order := make([]string, 0, len(metrics))
	known := make(map[string]bool, len(models.Methods))
	for _, m := range models.Methods {
		known[m.String()] = true
		if _, ok := metrics[m.String()]; ok {
			order = append(order, m.String())
		}
	}
	var rest []string
	for k := range metrics {
		if !known[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(order, rest...)
}
