// cmd/tools/dbmigrate/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/codr1/nyxxdocs/internal/config"
	"github.com/codr1/nyxxdocs/internal/db"
	"github.com/codr1/nyxxdocs/internal/theme"
)

func main() {
	var (
		configPath = flag.String("config", "config/config.yaml", "Path to the site config")
		dbPath     = flag.String("db", "", "Path to SQLite database (overrides the config)")
		command    = flag.String("command", "", "Command to run (up, down, version, prefs, set-theme, clear-theme)")
		value      = flag.String("value", "", "Value for set-theme (dark or light)")
	)
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if *command == "" {
		flag.Usage()
		os.Exit(1)
	}

	path := *dbPath
	if path == "" {
		cfg, err := config.Load(*configPath)
		if err != nil {
			log.Fatal().Err(err).Str("config", *configPath).Msg("Failed to load configuration")
		}
		path = cfg.Database.Filename
	}

	absDB, err := filepath.Abs(path)
	if err != nil {
		log.Fatal().Err(err).Str("db", path).Msg("Invalid database path")
	}
	if err := os.MkdirAll(filepath.Dir(absDB), 0755); err != nil {
		log.Fatal().Err(err).Msg("Failed to create database directory")
	}

	if err := run(os.Stdout, *command, absDB, *value); err != nil {
		log.Fatal().Err(err).Str("command", *command).Msg("Command failed")
	}
}

func run(out io.Writer, command, path, value string) error {
	switch command {
	case "up", "down", "version":
		return migrateCommand(out, command, path)
	case "prefs":
		return listPreferences(out, path)
	case "set-theme":
		return setTheme(path, value)
	case "clear-theme":
		return clearTheme(path)
	default:
		return fmt.Errorf("unknown command: %s", command)
	}
}

func migrateCommand(out io.Writer, command, path string) error {
	sqlDB, err := db.Open(path)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	m, err := db.NewMigrator(sqlDB)
	if err != nil {
		return err
	}

	switch command {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("migration up failed: %w", err)
		}
		log.Info().Msg("Successfully ran migrations up")
	case "down":
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("migration down failed: %w", err)
		}
		log.Info().Msg("Successfully ran migrations down")
	case "version":
		version, dirty, err := m.Version()
		if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
			return fmt.Errorf("get version failed: %w", err)
		}
		fmt.Fprintf(out, "Version: %d, Dirty: %v\n", version, dirty)
	}
	return nil
}

func listPreferences(out io.Writer, path string) error {
	database, err := db.New(path)
	if err != nil {
		return err
	}
	defer database.Close()

	prefs, err := database.Queries.ListPreferences(context.Background())
	if err != nil {
		return fmt.Errorf("list preferences: %w", err)
	}
	for _, pref := range prefs {
		fmt.Fprintf(out, "%s=%s (%s)\n", pref.Key, pref.Value, pref.UpdatedAt.Format(time.RFC3339))
	}
	return nil
}

// setTheme writes the preference the way another process would; a running
// server picks it up on its next poll.
func setTheme(path, value string) error {
	mode, ok := theme.ParseModeLoose(value)
	if !ok {
		return fmt.Errorf("invalid theme %q: must be dark or light", value)
	}

	database, err := db.New(path)
	if err != nil {
		return err
	}
	defer database.Close()

	var previous string
	err = database.RunInTx(context.Background(), func(tx *db.DB) error {
		store := theme.NewSQLStore(tx.Queries)
		value, _, err := store.Get(context.Background(), theme.Key)
		if err != nil {
			return err
		}
		previous = value
		return store.Set(context.Background(), theme.Key, mode.String())
	})
	if err != nil {
		return err
	}
	log.Info().Str("theme", mode.String()).Str("previous", previous).Msg("Theme preference written")
	return nil
}

// clearTheme drops the stored preference so viewers without a cookie fall
// back to the configured default.
func clearTheme(path string) error {
	database, err := db.New(path)
	if err != nil {
		return err
	}
	defer database.Close()

	deleted, err := database.Queries.DeletePreference(context.Background(), theme.Key)
	if err != nil {
		return fmt.Errorf("delete preference: %w", err)
	}
	log.Info().Int64("deleted", deleted).Msg("Theme preference cleared")
	return nil
}
