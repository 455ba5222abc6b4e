// Package classifier decides whether an extracted page is front or back
// matter (table of contents, index, preface, ...) rather than content.
package classifier

import (
	"regexp"
	"strings"

	"github.com/dtnitsch/llm-doc-digest/models"
)

// Reasons reported by Classify.
const (
	ReasonNone         = ""
	ReasonHeading      = "heading"
	ReasonToCLines     = "toc-lines"
	ReasonEdgeKeyword  = "edge-keyword"
	ReasonFrontKeyword = "front-keyword"
)

// Verdict is the outcome of classifying one page.
type Verdict struct {
	Boilerplate bool   `json:"boilerplate" yaml:"boilerplate"`
	Reason      string `json:"reason,omitempty" yaml:"reason,omitempty"`
	Match       string `json:"match,omitempty" yaml:"match,omitempty"`
}

type heading struct {
	name string
	re   *regexp.Regexp
	// recurring headings are tolerated mid-document on long pages
	recurring bool
}

func newHeading(pattern string, recurring bool) heading {
	return heading{
		name:      pattern,
		re:        regexp.MustCompile(`(?im)^\s*` + pattern + `\s*$`),
		recurring: recurring,
	}
}

var headings = []heading{
	newHeading(`table of contents`, false),
	newHeading(`contents`, false),
	newHeading(`preface`, false),
	newHeading(`foreword`, false),
	newHeading(`acknowledgements?`, false),
	newHeading(`dedication`, false),
	newHeading(`introduction`, true),
	newHeading(`executive summary`, true),
	newHeading(`abstract`, true),
	newHeading(`index`, false),
	newHeading(`bibliography`, false),
	newHeading(`references`, false),
	newHeading(`glossary`, false),
	newHeading(`appendix`, false),
	newHeading(`about the authors?`, false),
	newHeading(`author bios?`, false),
	newHeading(`notes to the reader`, false),
	newHeading(`list of figures`, false),
	newHeading(`list of tables`, false),
	newHeading(`errata`, false),
}

// A ToC or index line: text, filler of dots, underscores or spaces, then a
// page number (digits or lowercase roman numerals).
var tocLine = regexp.MustCompile(`^(.*?)\s*[._\s]+\s*([ivxlcdm]+|\d+)\s*$`)

var edgeKeywords = []string{
	"index", "references", "bibliography", "about the author", "glossary",
	"contents", "figure captions", "table captions", "acknowledgements",
}

var frontKeywords = []string{
	"preface", "foreword", "dedication", "author bio", "about the author",
	"notes to the reader", "copyright information", "isbn",
}

const (
	headingLines      = 5
	frontKeywordLines = 15
	tocMinLines       = 4
	tocLineShare      = 0.4
	edgeShare         = 0.05
	edgeMaxWords      = 150
	recurringMinWords = 200
)

var lineBreak = regexp.MustCompile(`\r\n|\r|\n`)

// splitLines splits on any line break; a trailing break does not produce
// an empty last line.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := lineBreak.Split(text, -1)
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func head(lines []string, n int) string {
	if len(lines) > n {
		lines = lines[:n]
	}
	return strings.Join(lines, "\n")
}

// IsBoilerplate reports whether the page is front or back matter.
func IsBoilerplate(page models.PageText) bool {
	return Classify(page).Boilerplate
}

// Classify applies the heuristics in order and reports the first that fires.
// It is a pure function of the page text, number and document length.
func Classify(page models.PageText) Verdict {
	lines := splitLines(page.Text)
	words := page.WordCount()
	total := float64(page.TotalPages)

	top := head(lines, headingLines)
	for _, h := range headings {
		if !h.re.MatchString(top) {
			continue
		}
		midDocument := float64(page.PageNumber) > total*0.10 && float64(page.PageNumber) < total*0.90
		if h.recurring && midDocument && words > recurringMinWords {
			continue
		}
		return Verdict{Boilerplate: true, Reason: ReasonHeading, Match: h.name}
	}

	if len(lines) > tocMinLines {
		matches := 0
		for _, line := range lines {
			if tocLine.MatchString(line) {
				matches++
			}
		}
		if float64(matches)/float64(len(lines)) > tocLineShare {
			return Verdict{Boilerplate: true, Reason: ReasonToCLines}
		}
	}

	if isEdgePage(page) && words < edgeMaxWords {
		lower := strings.ToLower(page.Text)
		for _, kw := range edgeKeywords {
			if strings.Contains(lower, kw) {
				return Verdict{Boilerplate: true, Reason: ReasonEdgeKeyword, Match: kw}
			}
		}
	}

	front := strings.ToLower(head(lines, frontKeywordLines))
	for _, kw := range frontKeywords {
		if strings.Contains(front, kw) {
			return Verdict{Boilerplate: true, Reason: ReasonFrontKeyword, Match: kw}
		}
	}

	return Verdict{Reason: ReasonNone}
}

// isEdgePage reports whether the page is within the first or last 5% of the
// document. The leading window always includes page 1.
func isEdgePage(page models.PageText) bool {
	window := int(float64(page.TotalPages) * edgeShare)
	if page.PageNumber <= max(1, window) {
		return true
	}
	return page.PageNumber >= page.TotalPages-max(0, window-1)
}
