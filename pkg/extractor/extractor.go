// Package extractor reads documents from disk and returns their text page
// by page. Pages without extractable text are left out, but still count
// towards the document's total page count.
package extractor

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dtnitsch/llm-doc-digest/models"
)

// ErrUnsupportedFormat is returned for file extensions with no extractor.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// Document formats.
const (
	FormatPDF  = "pdf"
	FormatHTML = "html"
	FormatText = "text"
)

// FormatOf maps a file extension to a document format.
func FormatOf(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return FormatPDF, nil
	case ".html", ".htm":
		return FormatHTML, nil
	case ".txt", ".text":
		return FormatText, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
}

// Extract reads path and splits it into pages.
func Extract(path string) (models.Document, error) {
	format, err := FormatOf(path)
	if err != nil {
		return models.Document{}, err
	}

	var doc models.Document
	switch format {
	case FormatPDF:
		doc, err = extractPDF(path)
	case FormatHTML:
		doc, err = extractHTMLFile(path)
	case FormatText:
		doc, err = extractTextFile(path)
	}
	if err != nil {
		return models.Document{}, fmt.Errorf("failed to extract %s: %w", path, err)
	}
	doc.Path = path
	doc.Format = format
	return doc, nil
}

// newDocument keeps the non-blank texts as numbered pages. texts[i] is page i+1.
func newDocument(texts []string) models.Document {
	doc := models.Document{TotalPages: len(texts), Pages: []models.PageText{}}
	for i, text := range texts {
		if strings.TrimSpace(text) == "" {
			continue
		}
		doc.Pages = append(doc.Pages, models.PageText{
			PageNumber: i + 1,
			Text:       text,
			TotalPages: len(texts),
		})
	}
	return doc
}

func readFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
