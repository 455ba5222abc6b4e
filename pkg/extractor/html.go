package extractor

import (
	"bufio"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"

	"github.com/dtnitsch/llm-doc-digest/models"
)

func extractHTMLFile(path string) (models.Document, error) {
	html, err := readFile(path)
	if err != nil {
		return models.Document{}, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return ExtractHTML(html, &url.URL{Scheme: "file", Path: filepath.ToSlash(abs)})
}

// ExtractHTML isolates the main content of an HTML page with readability
// and splits it into logical pages, one per h1 or h2 section. Content
// before the first heading, including the article title, forms page 1.
func ExtractHTML(html string, base *url.URL) (models.Document, error) {
	parser := readability.NewParser()
	article, err := parser.Parse(strings.NewReader(html), base)
	if err != nil {
		return models.Document{}, fmt.Errorf("failed to parse html: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(article.Content))
	if err != nil {
		return models.Document{}, fmt.Errorf("failed to parse readable content: %w", err)
	}

	var pages []string
	var current []string
	if title := normalizeText(article.Title); title != "" {
		current = append(current, title)
	}
	flush := func() {
		if len(current) > 0 {
			pages = append(pages, strings.Join(current, "\n"))
			current = nil
		}
	}

	doc.Find("h1,h2,h3,h4,p,li,table,pre").Each(func(i int, s *goquery.Selection) {
		tag := goquery.NodeName(s)
		switch tag {
		case "h1", "h2":
			flush()
			if text := normalizeText(s.Text()); text != "" {
				current = append(current, text)
			}
		case "table":
			if rows := tableLines(s); len(rows) > 0 {
				current = append(current, rows...)
			}
		case "pre":
			if code := strings.TrimSpace(s.Text()); code != "" {
				current = append(current, code)
			}
		default:
			// list items nested in a table cell are covered by the table
			if s.ParentsFiltered("table").Length() > 0 {
				return
			}
			if text := normalizeText(s.Text()); text != "" {
				current = append(current, text)
			}
		}
	})
	flush()

	return newDocument(pages), nil
}

// normalizeText trims every line and joins the non-empty ones with spaces.
func normalizeText(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	scanner := bufio.NewScanner(strings.NewReader(input))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			b.WriteString(line)
			b.WriteString(" ")
		}
	}
	return strings.TrimSpace(b.String())
}

// tableLines renders each table row as one line of pipe separated cells.
func tableLines(s *goquery.Selection) []string {
	var lines []string
	s.Find("tr").Each(func(i int, tr *goquery.Selection) {
		var cells []string
		tr.Find("th,td").Each(func(j int, cell *goquery.Selection) {
			cells = append(cells, normalizeText(cell.Text()))
		})
		if line := strings.TrimSpace(strings.Join(cells, " | ")); strings.Trim(line, "| ") != "" {
			lines = append(lines, line)
		}
	})
	return lines
}
