package extractor

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/dtnitsch/llm-doc-digest/models"
)

func extractPDF(path string) (models.Document, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return models.Document{}, fmt.Errorf("failed to open pdf: %w", err)
	}
	defer f.Close()

	total := r.NumPage()
	texts := make([]string, total)
	for i := 1; i <= total; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		texts[i-1] = pageText(p)
	}
	return newDocument(texts), nil
}

// pageText rebuilds the lines of a page from its text rows. A page whose
// content stream cannot be decoded yields no text.
func pageText(p pdf.Page) (text string) {
	defer func() {
		if recover() != nil {
			text = ""
		}
	}()

	rows, err := p.GetTextByRow()
	if err != nil {
		plain, err := p.GetPlainText(nil)
		if err != nil {
			return ""
		}
		return plain
	}

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		if line := joinRow(row.Content); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

// joinRow concatenates the glyph runs of one row left to right, inserting
// a space where the horizontal gap is wider than a fraction of the font size.
func joinRow(texts pdf.TextHorizontal) string {
	sort.SliceStable(texts, func(i, j int) bool { return texts[i].X < texts[j].X })

	var sb strings.Builder
	end := 0.0
	for i, t := range texts {
		if i > 0 && t.X-end > t.FontSize*0.2 && !strings.HasSuffix(sb.String(), " ") && !strings.HasPrefix(t.S, " ") {
			sb.WriteByte(' ')
		}
		sb.WriteString(t.S)
		end = t.X + t.W
	}
	return strings.TrimSpace(sb.String())
}
