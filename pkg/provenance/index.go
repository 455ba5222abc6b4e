// Package provenance records which page every content sentence came from
// and maps summary sentences back to page numbers.
package provenance

import (
	"regexp"
	"sort"
	"strings"

	"github.com/dtnitsch/llm-doc-digest/models"
)

// SentenceSplitter is the sentence boundary tokenizer the index uses.
type SentenceSplitter interface {
	Split(text string) []string
}

// Index holds every content sentence with its source page.
type Index struct {
	Sentences []models.ContentSentence
	lookup    map[string]int
}

var (
	blankLines = regexp.MustCompile(`\n\s*\n`)
	spaceRuns  = regexp.MustCompile(`[ \t]+`)
)

// NormalizeWhitespace collapses blank lines and runs of spaces or tabs.
func NormalizeWhitespace(text string) string {
	text = blankLines.ReplaceAllString(text, "\n")
	text = spaceRuns.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

func key(sentence string) string {
	return strings.ToLower(strings.TrimSpace(sentence))
}

// Build indexes the kept pages in order and concatenates them into the
// filtered document. Pages whose text is blank contribute neither
// sentences nor a page number.
func Build(pages []models.PageText, splitter SentenceSplitter) (*Index, models.FilteredDocument) {
	idx := &Index{lookup: make(map[string]int)}
	var sb strings.Builder
	seen := make(map[int]struct{})
	docPages := []int{}

	for _, page := range pages {
		for _, s := range splitter.Split(page.Text) {
			idx.add(models.ContentSentence{Text: s, SourcePage: page.PageNumber})
		}
		sb.WriteString(page.Text)
		sb.WriteString("\n")
		if strings.TrimSpace(page.Text) == "" {
			continue
		}
		if _, ok := seen[page.PageNumber]; !ok {
			seen[page.PageNumber] = struct{}{}
			docPages = append(docPages, page.PageNumber)
		}
	}
	sort.Ints(docPages)

	return idx, models.FilteredDocument{
		FullText: NormalizeWhitespace(sb.String()),
		Pages:    docPages,
	}
}

// ForPage indexes a single raw page. Used when every page was classified
// as boilerplate and the first page stands in for the document.
func ForPage(page models.PageText, splitter SentenceSplitter) *Index {
	idx, _ := Build([]models.PageText{page}, splitter)
	return idx
}

func (idx *Index) add(s models.ContentSentence) {
	idx.Sentences = append(idx.Sentences, s)
	// a repeated sentence maps to the page it was last seen on
	idx.lookup[key(s.Text)] = s.SourcePage
}

// Len is the number of indexed sentences.
func (idx *Index) Len() int {
	return len(idx.Sentences)
}

// PageOf looks a sentence up by exact, case-insensitive, trimmed text.
func (idx *Index) PageOf(sentence string) (int, bool) {
	page, ok := idx.lookup[key(sentence)]
	return page, ok
}

// Attribute maps summary sentences to the sorted set of their source pages.
//
// This is a heuristic lookup, not a guaranteed provenance link: a
// summarizer may split or join sentences differently from the per-page
// tokenization, and such sentences match nothing and contribute no page.
// When none of a non-empty summary's sentences match, the summary is
// attributed to fallbackPage (the first page with text) rather than to no page
// at all. Callers rely on that conservative attribution, so do not make
// it stricter.
func (idx *Index) Attribute(sentences []string, fallbackPage int) []int {
	found := make(map[int]struct{})
	nonEmpty := false
	for _, s := range sentences {
		if strings.TrimSpace(s) == "" {
			continue
		}
		nonEmpty = true
		if page, ok := idx.PageOf(s); ok {
			found[page] = struct{}{}
		}
	}
	if !nonEmpty {
		return []int{}
	}
	if len(found) == 0 {
		return []int{fallbackPage}
	}
	pages := make([]int, 0, len(found))
	for p := range found {
		pages = append(pages, p)
	}
	sort.Ints(pages)
	return pages
}
