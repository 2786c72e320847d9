package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"

	"github.com/danialarif/gigdesk/internal/api"
	"github.com/danialarif/gigdesk/internal/cli"
	"github.com/danialarif/gigdesk/internal/config"
	"github.com/danialarif/gigdesk/internal/db"
	"github.com/danialarif/gigdesk/internal/session"
	"github.com/danialarif/gigdesk/internal/upload"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A local .env can carry GIGDESK_* overrides during development;
	// missing is the normal case.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	dbPath, err := cfg.DatabasePath()
	if err != nil {
		return err
	}
	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	store := session.NewStore(database)

	var observer api.Observer = api.NoopObserver{}
	if cfg.LogCalls {
		observer = api.NewLogObserver(os.Stderr)
	}
	client := api.New(api.Config{
		BaseURL: cfg.APIBase,
		Timeout: time.Duration(cfg.TimeoutMs) * time.Millisecond,
	}, store, observer)

	app := &cli.App{
		Config:   cfg,
		Sessions: store,
		Client:   client,
		Uploader: upload.New(client),
	}
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
