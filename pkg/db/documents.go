package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrDocumentNotFound is returned when a document id or hash is unknown.
var ErrDocumentNotFound = errors.New("document not found")

// Document is a stored input file, identified by its content hash.
type Document struct {
	DocID       int64
	Path        string
	ContentHash string
	Format      string
	TotalPages  int
	CreatedAt   time.Time
}

// UpsertDocument records a document, returning its doc_id. A document whose
// content hash is already known keeps its id; its path, format and page
// count are refreshed.
func (db *DB) UpsertDocument(path, contentHash, format string, totalPages int) (int64, error) {
	if contentHash == "" {
		return 0, errors.New("content hash is required")
	}

	_, err := db.Exec(`
		INSERT INTO documents (path, content_hash, format, total_pages)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(content_hash) DO UPDATE SET
			path = excluded.path,
			format = excluded.format,
			total_pages = excluded.total_pages,
			updated_at = CURRENT_TIMESTAMP
	`, path, contentHash, NewNullString(format), totalPages)
	if err != nil {
		return 0, fmt.Errorf("failed to upsert document: %w", err)
	}

	var docID int64
	if err := db.QueryRow("SELECT doc_id FROM documents WHERE content_hash = ?", contentHash).Scan(&docID); err != nil {
		return 0, fmt.Errorf("failed to get document ID: %w", err)
	}
	return docID, nil
}

// GetDocumentByHash looks a document up by content hash.
func (db *DB) GetDocumentByHash(contentHash string) (*Document, error) {
	var d Document
	var format sql.NullString
	err := db.QueryRow(`
		SELECT doc_id, path, content_hash, format, total_pages, created_at
		FROM documents
		WHERE content_hash = ?
	`, contentHash).Scan(&d.DocID, &d.Path, &d.ContentHash, &format, &d.TotalPages, &d.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDocumentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	d.Format = format.String
	return &d, nil
}

// NewNullString converts empty strings to NULL.
func NewNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
