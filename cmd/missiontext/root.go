package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mkraft/missiontext/catalog"
	"github.com/mkraft/missiontext/config"
	"github.com/mkraft/missiontext/dbopen"
)

// app carries the loaded configuration and logger into the
// subcommands. PersistentPreRunE fills it before any RunE fires.
type app struct {
	cfgPath  string
	logLevel string

	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "missiontext",
		Short: "Mission transcript scraper, cleaner, and corpus builder",
		Long: `missiontext collects spaceflight mission transcripts, extracts the
dialogue from them, and aggregates the result into a deduplicated
training corpus. Stages communicate through the data directory and a
SQLite catalog, so each command can run on its own.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}

	cmd.PersistentFlags().StringVar(&a.cfgPath, "config", "", "path to YAML config file")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level override (debug|info|warn|error)")

	cmd.AddCommand(newScrapeCmd(a))
	cmd.AddCommand(newCleanCmd(a))
	cmd.AddCommand(newBuildCmd(a))
	cmd.AddCommand(newServeCmd(a))

	return cmd
}

func (a *app) setup() error {
	path := a.cfgPath
	if path == "" {
		path = os.Getenv("MISSIONTEXT_CONFIG")
	}
	if path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		a.cfg = cfg
	} else {
		a.cfg = config.Default()
	}

	if a.logLevel == "" {
		a.logLevel = os.Getenv("LOG_LEVEL")
	}
	if a.logLevel != "" {
		a.cfg.LogLevel = a.logLevel
		if err := a.cfg.Validate(); err != nil {
			return err
		}
	}

	a.logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: a.cfg.Level()}))
	slog.SetDefault(a.logger)
	return nil
}

// openCatalog opens the catalog database, creating its directory and
// schema when needed. The caller owns the returned handle.
func (a *app) openCatalog() (*sql.DB, *catalog.Store, error) {
	db, err := dbopen.Open(a.cfg.Catalog.Path, dbopen.WithMkdirAll(), dbopen.WithSchema(catalog.Schema))
	if err != nil {
		return nil, nil, fmt.Errorf("open catalog %s: %w", a.cfg.Catalog.Path, err)
	}
	return db, catalog.NewStore(db), nil
}
