// Command smoke drives a running engine through the full competition
// lifecycle and verifies every guard. Intended for local and staging checks:
//
//	go run ./cmd/smoke -url http://localhost:9090
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/ovation/internal/smoketest"
	"github.com/okian/ovation/pkg/logger"
)

func main() {
	cfg := smoketest.NewConfig()
	flag.StringVar(&cfg.BaseURL, "url", cfg.BaseURL, "base URL of the running service")
	flag.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "per-request timeout")
	flag.StringVar(&cfg.AdminToken, "token", "", "admin bearer token (empty: use X-Actor headers)")
	flag.StringVar(&cfg.Category, "category", cfg.Category, "category for the throwaway competition")
	flag.BoolVar(&cfg.KeepCompetition, "keep", false, "leave the created competition in place")
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	if err := smoketest.Run(runCtx, cfg); err != nil {
		logger.Get().Error(runCtx, "smoke run failed", logger.Error(err))
		os.Exit(1)
	}
}
