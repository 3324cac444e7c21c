// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/codr1/nyxxdocs/internal/config"
	"github.com/codr1/nyxxdocs/internal/db"
	"github.com/codr1/nyxxdocs/internal/ratelimit"
	"github.com/codr1/nyxxdocs/internal/scheduler"
	"github.com/codr1/nyxxdocs/internal/theme"
)

type Config struct {
	Port            string
	Environment     string
	ShutdownTimeout time.Duration
	ConfigPath      string
	StaticDir       string
	TrustProxy      bool
}

func loadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found")
	}

	return &Config{
		Port:            getEnv("PORT", ""),
		Environment:     getEnv("ENVIRONMENT", "development"),
		ShutdownTimeout: time.Duration(getEnvAsInt("SHUTDOWN_TIMEOUT_SECONDS", 30)) * time.Second,
		ConfigPath:      getEnv("CONFIG_PATH", "config/config.yaml"),
		StaticDir:       getEnv("STATIC_DIR", "build/bin/static"),
		TrustProxy:      getEnv("TRUST_PROXY", "") == "true",
	}, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func setupLogger(environment string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

// app holds everything the routes share.
type app struct {
	site    *config.Config
	db      *db.DB
	sync    *theme.Sync
	limiter *ratelimit.Limiter
	poller  *theme.Poller
}

func newApp(ctx context.Context, env *Config, site *config.Config) (*app, error) {
	database, err := db.NewFromConfig(site)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	cell := theme.NewCell(theme.ParseMode(site.Theme.DefaultMode))
	syncer := theme.NewSync(theme.NewSQLStore(database.Queries), cell)
	if _, err := syncer.Refresh(ctx); err != nil {
		log.Warn().Err(err).Msg("Failed to load stored theme, using default")
	}

	limiter := ratelimit.New(&ratelimit.Config{
		Window:     time.Minute,
		MaxPerIP:   site.Theme.WritesPerMinute,
		TrustProxy: env.TrustProxy,
	})

	sched, err := scheduler.ServiceInstance()
	if err != nil {
		database.Close()
		limiter.Close()
		return nil, fmt.Errorf("scheduler: %w", err)
	}
	poller := theme.NewPoller(sched, site.Theme.PollInterval, func() {
		pollCtx, cancel := context.WithTimeout(ctx, site.Theme.PollInterval)
		defer cancel()
		if _, err := syncer.Refresh(pollCtx); err != nil {
			log.Warn().Err(err).Msg("Theme poll failed")
		}
	})

	if cron := site.Database.OptimizeCron; cron != "" {
		if _, err := sched.AddJob("sqlite-optimize", cron, func() {
			optimizeCtx, cancel := context.WithTimeout(ctx, time.Minute)
			defer cancel()
			if err := database.Optimize(optimizeCtx); err != nil {
				log.Warn().Err(err).Msg("Database optimize failed")
			}
		}); err != nil {
			database.Close()
			limiter.Close()
			return nil, fmt.Errorf("schedule optimize: %w", err)
		}
	}

	return &app{
		site:    site,
		db:      database,
		sync:    syncer,
		limiter: limiter,
		poller:  poller,
	}, nil
}

func (a *app) Close() {
	a.limiter.Close()
	a.sync.Cell().Close()
	if err := a.db.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close database")
	}
}

func main() {
	config, err := loadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	setupLogger(config.Environment)

	site, err := loadSiteConfig(config.ConfigPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", config.ConfigPath).Msg("Failed to load site configuration")
	}
	if config.Port == "" {
		config.Port = strconv.Itoa(site.App.Port)
	}

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := scheduler.Init(); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize scheduler")
	}
	if err := scheduler.Start(); err != nil {
		log.Fatal().Err(err).Msg("Failed to start scheduler")
	}

	a, err := newApp(ctx, config, site)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize application")
	}
	defer a.Close()

	server := newServer(config, a)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if !a.poller.Enabled() {
			log.Info().Msg("Theme polling disabled")
			return nil
		}
		stopPolling, err := a.poller.Start(ctx)
		if err != nil {
			return fmt.Errorf("start theme poller: %w", err)
		}
		<-ctx.Done()
		stopPolling()
		return nil
	})

	// Run server
	g.Go(func() error {
		log.Info().Str("port", config.Port).Msg("Starting server")
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Wait for interrupt signal
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		log.Info().Msg("Shutting down server")
		// Event streams only end when their subscriptions close.
		a.sync.Cell().Close()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		if err := scheduler.Stop(); err != nil {
			return fmt.Errorf("scheduler shutdown error: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Server terminated with error")
		os.Exit(1)
	}
}

func loadSiteConfig(path string) (*config.Config, error) {
	return config.Load(path)
}
