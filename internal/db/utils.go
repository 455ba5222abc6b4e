package db

import (
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"

	dbpkg "github.com/dtnitsch/llm-doc-digest/pkg/db"
)

func openDatabase(c *cli.Context) (*dbpkg.DB, error) {
	var database *dbpkg.DB
	var err error
	if path := c.String("db"); path != "" {
		database, err = dbpkg.OpenPath(path)
	} else {
		database, err = dbpkg.Open()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return database, nil
}

// GetRunOrLatest resolves the run named by the first argument, either a
// numeric run id or a run uuid, or the latest run when none is given.
func GetRunOrLatest(c *cli.Context, database *dbpkg.DB) (*dbpkg.Run, error) {
	if c.NArg() == 0 {
		runs, err := database.ListRuns(1)
		if err != nil {
			return nil, fmt.Errorf("failed to get latest run: %w", err)
		}
		if len(runs) == 0 {
			return nil, fmt.Errorf("no runs found. Run 'llm-doc-digest digest --db <path> --files \"...\"' first")
		}
		return &runs[0], nil
	}

	arg := c.Args().First()
	if runID, err := strconv.ParseInt(arg, 10, 64); err == nil {
		return database.GetRun(runID)
	}
	return database.GetRunByUUID(arg)
}
