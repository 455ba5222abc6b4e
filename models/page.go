package models

import "strings"

// PageText is the raw extracted text of a single page.
type PageText struct {
	PageNumber int    `json:"page_number" yaml:"page_number"`
	Text       string `json:"text" yaml:"text"`
	TotalPages int    `json:"total_pages" yaml:"total_pages"`
}

// WordCount counts whitespace separated tokens.
func (p PageText) WordCount() int {
	return len(strings.Fields(p.Text))
}

// ContentSentence is one sentence of a page that survived boilerplate filtering.
type ContentSentence struct {
	Text       string `json:"text" yaml:"text"`
	SourcePage int    `json:"source_page" yaml:"source_page"`
}

// FilteredDocument is the concatenation of all kept pages.
// Pages is ascending and deduplicated.
type FilteredDocument struct {
	FullText string `json:"full_text" yaml:"full_text"`
	Pages    []int  `json:"pages" yaml:"pages"`
}

// Document is what an extractor hands to the pipeline: the pages that
// yielded text, plus the original page count including blank pages.
type Document struct {
	Path       string     `json:"path" yaml:"path"`
	Format     string     `json:"format" yaml:"format"`
	TotalPages int        `json:"total_pages" yaml:"total_pages"`
	Pages      []PageText `json:"pages" yaml:"pages"`
}

// PlainText joins all page texts with newlines.
func (d *Document) PlainText() string {
	var sb strings.Builder
	for _, p := range d.Pages {
		sb.WriteString(p.Text)
		sb.WriteString("\n")
	}
	return sb.String()
}
