package digest

import (
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/llm-doc-digest/internal/common"
	"github.com/dtnitsch/llm-doc-digest/pkg/classifier"
	"github.com/dtnitsch/llm-doc-digest/pkg/extractor"
	"github.com/dtnitsch/llm-doc-digest/pkg/report"
)

// errNoPages is reported for documents without extractable text.
var errNoPages = errors.New("no extractable text")

// PageDecision is one line of classify output.
type PageDecision struct {
	Page        int    `json:"page" yaml:"page"`
	Words       int    `json:"words" yaml:"words"`
	Boilerplate bool   `json:"boilerplate" yaml:"boilerplate"`
	Reason      string `json:"reason,omitempty" yaml:"reason,omitempty"`
	Match       string `json:"match,omitempty" yaml:"match,omitempty"`
}

// ClassifyOutput lists the boilerplate decision for every extracted page.
type ClassifyOutput struct {
	Path       string         `json:"path" yaml:"path"`
	TotalPages int            `json:"total_pages" yaml:"total_pages"`
	Kept       int            `json:"kept" yaml:"kept"`
	Dropped    int            `json:"dropped" yaml:"dropped"`
	Pages      []PageDecision `json:"pages" yaml:"pages"`
}

func ClassifyAction(c *cli.Context) error {
	logger := NewLogger(c)

	path := common.SanitizePath(c.String("file"))
	if path == "" && c.NArg() > 0 {
		path = common.SanitizePath(c.Args().First())
	}
	if path == "" {
		return cli.Exit("Error: No file provided. Usage: llm-doc-digest classify --file report.pdf", 1)
	}

	doc, err := extractor.Extract(path)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	if len(doc.Pages) == 0 {
		return cli.Exit(fmt.Sprintf("%s: %v", path, errNoPages), 1)
	}

	out := ClassifyOutput{Path: path, TotalPages: doc.TotalPages}
	for _, page := range doc.Pages {
		verdict := classifier.Classify(page)
		out.Pages = append(out.Pages, PageDecision{
			Page:        page.PageNumber,
			Words:       page.WordCount(),
			Boilerplate: verdict.Boilerplate,
			Reason:      verdict.Reason,
			Match:       verdict.Match,
		})
		if verdict.Boilerplate {
			out.Dropped++
		} else {
			out.Kept++
		}
	}
	logger.Info("Classified pages", "path", path, "kept", out.Kept, "dropped", out.Dropped)

	data, err := report.Encode(out, c.String("format"))
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}
