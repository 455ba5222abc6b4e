package db

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/llm-doc-digest/models"
)

// RunsAction lists recorded runs, most recent first.
func RunsAction(c *cli.Context) error {
	database, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer database.Close()

	runs, err := database.ListRuns(c.Int("limit"))
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Println("No runs found")
		return nil
	}

	fmt.Printf("%-6s %-20s %-30s %-6s %-12s %-10s %-40s\n",
		"ID", "Created", "Method", "Lang", "Pages", "Chars", "Path")
	fmt.Println(strings.Repeat("-", 130))

	for _, r := range runs {
		fmt.Printf("%-6d %-20s %-30s %-6s %-12s %-10d %-40s\n",
			r.RunID,
			r.CreatedAt.Format("2006-01-02 15:04:05"),
			r.Method,
			r.Language,
			fmt.Sprintf("%d/%d", len(r.SummaryPages), len(r.FilteredPages)),
			r.SummaryChars,
			r.Path,
		)
	}

	fmt.Printf("\nTotal: %d runs\n", len(runs))
	fmt.Printf("\nTip: Use 'llm-doc-digest db run <id>' to see per-method scores\n")

	return nil
}

// RunAction shows one run with the metrics of every strategy.
func RunAction(c *cli.Context) error {
	database, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer database.Close()

	run, err := GetRunOrLatest(c, database)
	if err != nil {
		return err
	}

	metrics, err := database.GetRunMetrics(run.RunID)
	if err != nil {
		return fmt.Errorf("failed to get run metrics: %w", err)
	}

	fmt.Printf("Run %d (%s)\n", run.RunID, run.RunUUID)
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Created:        %s\n", run.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Document:       %s\n", run.Path)
	fmt.Printf("Language:       %s\n", run.Language)
	fmt.Printf("Method:         %s\n", run.Method)
	fmt.Printf("Summary pages:  %s\n", formatPages(run.SummaryPages))
	fmt.Printf("Filtered pages: %s\n", formatPages(run.FilteredPages))
	fmt.Printf("Sentences:      %d (target %d)\n", run.SentenceCount, run.TargetSentences)
	fmt.Printf("Characters:     %d summary / %d filtered\n", run.SummaryChars, run.FilteredChars)
	fmt.Printf("Duration:       %dms\n", run.DurationMS)

	if len(metrics) > 0 {
		fmt.Printf("\nMethods (%d):\n", len(metrics))
		fmt.Println(strings.Repeat("-", 60))
		fmt.Printf("%-10s %-8s %-8s %-8s %-8s %-8s %-8s\n",
			"Method", "Score", "ROUGE-1", "ROUGE-2", "ROUGE-L", "Flesch", "Ratio")
		for _, m := range metrics {
			fmt.Printf("%-10s %-8s %-8.3f %-8.3f %-8.3f %-8.1f %-8.3f\n",
				m.Method,
				formatScore(m.Metrics.OverallScore),
				m.Metrics.Similarity.Unigram,
				m.Metrics.Similarity.Bigram,
				m.Metrics.Similarity.LCS,
				m.Metrics.Readability,
				m.Metrics.CompressionRatio,
			)
		}
	}

	return nil
}

func formatScore(s models.Score) string {
	if !s.Valid() {
		return "failed"
	}
	return fmt.Sprintf("%.3f", float64(s))
}

func formatPages(pages []int) string {
	if len(pages) == 0 {
		return "-"
	}
	parts := make([]string, len(pages))
	for i, p := range pages {
		parts[i] = fmt.Sprintf("%d", p)
	}
	return strings.Join(parts, ",")
}
