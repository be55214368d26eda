package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/anvil-web/reqkit/internal/app"
	"github.com/anvil-web/reqkit/internal/config"
	"github.com/anvil-web/reqkit/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "webprobe failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	log.Infow("webprobe starting", "base_url", cfg.BaseURL, "lang", cfg.Lang)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	probe, err := app.NewProbe(cfg, log)
	if err != nil {
		return fmt.Errorf("build probe: %w", err)
	}

	payload, err := probe.Run(ctx)
	if err != nil {
		return fmt.Errorf("probe %s %s: %w", cfg.ProbeMethod, cfg.ProbePath, err)
	}

	if len(payload) == 0 {
		fmt.Println("(no payload)")
		return nil
	}
	fmt.Println(string(payload))
	return nil
}
