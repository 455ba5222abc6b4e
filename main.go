package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	dbactions "github.com/dtnitsch/llm-doc-digest/internal/db"
	"github.com/dtnitsch/llm-doc-digest/internal/digest"
	"github.com/dtnitsch/llm-doc-digest/pkg/help"
)

func main() {
	// a missing .env is fine
	_ = godotenv.Load()

	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	quiet := &cli.BoolFlag{
		Name:    "quiet",
		Aliases: []string{"q"},
		Usage:   "Only log errors",
		EnvVars: []string{"LDD_QUIET"},
	}
	verbose := &cli.BoolFlag{
		Name:    "verbose",
		Usage:   "Log per-page classifier decisions",
		EnvVars: []string{"LDD_VERBOSE"},
	}
	format := &cli.StringFlag{
		Name:    "format",
		Value:   "yaml",
		Usage:   "Output format: yaml or json",
		EnvVars: []string{"LDD_FORMAT"},
	}
	dbPath := &cli.StringFlag{
		Name:    "db",
		Usage:   "SQLite run history file",
		EnvVars: []string{"LDD_DB"},
	}

	return &cli.App{
		Name:  "llm-doc-digest",
		Usage: "Boilerplate-filtered, page-attributed extractive summaries of long documents",
		Commands: []*cli.Command{
			{
				Name:      "digest",
				Usage:     "Summarize documents and print a manifest",
				ArgsUsage: "[file ...]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "files",
						Aliases: []string{"f"},
						Usage:   "Comma separated list of .pdf, .html or .txt files",
						EnvVars: []string{"LDD_FILES"},
					},
					&cli.IntFlag{
						Name:    "workers",
						Aliases: []string{"w"},
						Value:   4,
						Usage:   "Documents processed in parallel",
						EnvVars: []string{"LDD_WORKERS"},
					},
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "YAML scoring configuration",
						EnvVars: []string{"LDD_CONFIG"},
					},
					format,
					&cli.StringFlag{
						Name:    "out",
						Aliases: []string{"o"},
						Usage:   "Directory for per-document reports",
						EnvVars: []string{"LDD_OUT"},
					},
					&cli.BoolFlag{
						Name:    "include-text",
						Usage:   "Include summary and filtered text in reports",
						EnvVars: []string{"LDD_INCLUDE_TEXT"},
					},
					&cli.IntFlag{
						Name:    "budget",
						Usage:   "Character budget; reports carry the full filtered text when it fits, otherwise the summary",
						EnvVars: []string{"LDD_BUDGET"},
					},
					dbPath,
					&cli.StringFlag{
						Name:    "cache-dir",
						Usage:   "Directory caching extracted pages by content hash",
						EnvVars: []string{"LDD_CACHE_DIR"},
					},
					&cli.StringFlag{
						Name:    "max-age",
						Value:   "24h",
						Usage:   "Maximum age of cached extractions (0 keeps them forever)",
						EnvVars: []string{"LDD_MAX_AGE"},
					},
					&cli.StringFlag{
						Name:    "metrics-file",
						Usage:   "Write Prometheus metrics to this textfile",
						EnvVars: []string{"LDD_METRICS_FILE"},
					},
					quiet,
					verbose,
				},
				Action: digest.DigestAction,
			},
			{
				Name:      "classify",
				Usage:     "Show the boilerplate decision for every page",
				ArgsUsage: "[file]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "file",
						Usage: "Document to classify",
					},
					format,
					quiet,
					verbose,
				},
				Action: digest.ClassifyAction,
			},
			{
				Name:  "db",
				Usage: "Inspect the run history",
				Subcommands: []*cli.Command{
					{
						Name:  "runs",
						Usage: "List recorded runs",
						Flags: []cli.Flag{
							dbPath,
							&cli.IntFlag{
								Name:  "limit",
								Value: 20,
								Usage: "Maximum runs to list (0 for all)",
							},
						},
						Action: dbactions.RunsAction,
					},
					{
						Name:      "run",
						Usage:     "Show one run with per-method scores",
						ArgsUsage: "[run id or uuid]",
						Flags:     []cli.Flag{dbPath},
						Action:    dbactions.RunAction,
					},
				},
			},
			{
				Name:  "quickstart",
				Usage: "Print a YAML cheat sheet",
				Action: func(c *cli.Context) error {
					fmt.Print(help.QuickstartYAML)
					return nil
				},
			},
		},
	}
}
