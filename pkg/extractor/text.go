package extractor

import (
	"strings"

	"github.com/dtnitsch/llm-doc-digest/models"
)

// pageBreak separates pages in plain text dumps (pdftotext writes one per page).
const pageBreak = "\f"

func extractTextFile(path string) (models.Document, error) {
	text, err := readFile(path)
	if err != nil {
		return models.Document{}, err
	}
	return SplitText(text), nil
}

// SplitText splits plain text into pages on form feeds. A trailing form
// feed does not open an extra page.
func SplitText(text string) models.Document {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, pageBreak)
	return newDocument(strings.Split(text, pageBreak))
}
