// Command monitor runs one full Africa monitoring pass: it collects the
// country listing, generates per-country overviews and writes the ranked
// JSON report. It takes no flags; behavior is driven by monitor.yaml and
// environment variables.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/umoja-labs/africa-pulse/internal/config"
	"github.com/umoja-labs/africa-pulse/internal/logger"
	"github.com/umoja-labs/africa-pulse/internal/pipeline"
)

func main() {
	// A missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if cfg.OverviewMode == config.ModeAI && cfg.OpenRouterKey == "" {
		log.WarnObj("OPENROUTER_API_KEY is not set, AI overviews will degrade to placeholders", "missing_api_key", nil)
	}

	if err := pipeline.New(cfg, log).Run(context.Background()); err != nil {
		log.ErrorObj("monitoring run failed", "run_failed", map[string]any{
			"error": err.Error(),
		})
		log.Sync()
		os.Exit(1)
	}
}
