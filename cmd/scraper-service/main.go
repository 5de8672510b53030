package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/dmcruz/livebet/internal/parser/parsers/betclic"
	pkgconfig "github.com/dmcruz/livebet/internal/pkg/config"
	"github.com/dmcruz/livebet/internal/pkg/llm"
	"github.com/dmcruz/livebet/internal/pkg/logging"
	"github.com/dmcruz/livebet/internal/pkg/notify"
	"github.com/dmcruz/livebet/internal/pkg/server"
	"github.com/dmcruz/livebet/internal/pkg/storage"
)

const defaultConfigPath = "configs/production.yaml"

func main() {
	if err := run(); err != nil {
		slog.Error("Scraper service failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", defaultConfigPath, "path to config file")
	flag.Parse()

	// .env is optional; secrets may come from the real environment.
	_ = godotenv.Load()

	slog.Info("Loading config", "path", *configPath)
	cfg, err := pkgconfig.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if _, err := logging.Setup(&cfg.Logging, "scraper-service"); err != nil {
		slog.Warn("Failed to setup logging, continuing with default logger", "error", err)
	}

	if cfg.LLM.APIKey == "" {
		return fmt.Errorf("model API key is required: set ANTHROPIC_API_KEY or llm.api_key")
	}

	client := betclic.NewClient(&cfg.Betclic)
	browser := betclic.NewStatsBrowser(cfg)
	normalizer := llm.NewNormalizer(&cfg.LLM, llm.NewClient(cfg.LLM.APIKey))

	opts := betclic.ScraperOpts{
		Audit: storage.NewStatsLog(cfg.Audit.StatsLogPath),
	}

	if cfg.Postgres.DSN != "" {
		snapshots, err := storage.NewPostgresSnapshotStorage(&cfg.Postgres)
		if err != nil {
			slog.Warn("Snapshot storage unavailable, continuing without it", "error", err)
		} else {
			defer snapshots.Close()
			opts.Snapshots = snapshots
		}
	}

	if cfg.Telegram.BotToken != "" {
		if notifier := notify.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID); notifier != nil {
			opts.Notifier = notifier
		}
	}

	scraper := betclic.NewScraper(cfg, client, browser, normalizer, opts)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slog.Info("Starting scraper service", "listing_url", client.ListingURL(), "port", cfg.Server.Port)
	return server.New(cfg, scraper).Run(ctx)
}
