// ABOUTME: Root Cobra command for forge CLI.
// ABOUTME: Loads config, logger and knowledge base; opens storage lazily.
package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mfulp2020/forgefitness/internal/config"
	"github.com/mfulp2020/forgefitness/internal/generator"
	"github.com/mfulp2020/forgefitness/internal/logging"
	"github.com/mfulp2020/forgefitness/internal/observability"
	"github.com/mfulp2020/forgefitness/internal/storage"
)

var (
	cfg    *config.Config
	logger *slog.Logger
	gen    *generator.Generator
	db     *storage.DB

	logLevel  string
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "forge",
	Short: "Workout program generator",
	Long: `Forge builds weekly training programs from a curated knowledge base.

Pick an experience level, a weekly split, how many days you train and what
you are training for. Forge resolves the split, builds one workout template
per day with sets, rep ranges, rest and superset groupings, and can append
core and cardio finishers.

QUICK START:

  $ forge generate                              # intermediate full body, 3 days
  $ forge generate --level beginner --days 4    # beginner, 4 days
  $ forge generate --split push_pull_legs --days 6 --focus hypertrophy
  $ forge generate --focus fat_loss --finisher core_cardio --save

KNOWLEDGE BASE:

  $ forge splits                  # List splits and their day mappings
  $ forge library "Upper A"       # Show one workout as built exercises
  $ forge verify                  # Check the library for problems
  $ forge parse 4x6-8 "3x30s"     # Inspect prescription parsing
  $ forge normalize "bench press" # Map a name to the catalog

SAVED TEMPLATES:

  $ forge templates list          # Saved templates, newest first
  $ forge templates show abc123   # One template with exercises
  $ forge export json -o backup.json

SERVERS:

  $ forge serve                   # HTTP API on localhost:8087
  $ forge mcp                     # MCP server on stdio

CONFIGURATION:

  Settings live in ~/.config/forge/config.json. FORGE_UNITS, FORGE_DATA_DIR,
  FORGE_LIBRARY_DIR and FORGE_ADDR override the file. Templates are stored in
  ~/.local/share/forge/forge.db.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "install-skill" {
			return nil
		}

		level, err := logging.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		logger, err = logging.New(cmd.ErrOrStderr(), level, logFormat)
		if err != nil {
			return err
		}

		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		lib, err := cfg.OpenLibrary()
		if err != nil {
			return fmt.Errorf("failed to load library: %w", err)
		}
		gen = generator.New(lib,
			generator.WithLogger(logger),
			generator.WithRecorder(observability.NewRecorder()),
		)

		// VerifyLibrary logs each diagnostic at warn.
		gen.VerifyLibrary()
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if db == nil {
			return nil
		}
		err := db.Close()
		db = nil
		return err
	},
}

// openDB opens the template store on first use.
func openDB() (*storage.DB, error) {
	if db != nil {
		return db, nil
	}
	var err error
	db, err = cfg.OpenStorage()
	if err != nil {
		return nil, fmt.Errorf("failed to open template store: %w", err)
	}
	return db, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (text, json)")
}
