package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/capacinator/capacinator/internal/api"
	"github.com/capacinator/capacinator/internal/cache"
	"github.com/capacinator/capacinator/internal/cli"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Cache path: env var or default ~/.capacinator/capacinator.db
	dbPath := os.Getenv("CAPACINATOR_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".capacinator", "capacinator.db")
	}

	cfg := api.LoadConfig()

	var observer api.Observer = api.NoopObserver{}
	if os.Getenv("CAPACINATOR_LOG_CALLS") == "1" {
		observer = api.NewLogObserver(os.Stderr)
	}
	client := api.New(cfg, observer)

	app := &cli.App{
		Scenarios: client,
		Resources: client,
		Reports:   client,
		Health:    client,
	}

	// The cache is optional: a failure to open it degrades to online-only.
	if database, err := cache.OpenDB(dbPath); err == nil {
		defer database.Close()
		app.Cache = cache.NewStore(database)
	}

	interactive := func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app, cfg.BaseURL, interactive).Execute()
}
