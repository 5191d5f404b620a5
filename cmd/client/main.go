package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/wintakam/wintakam/internal/client/cli"
	"github.com/wintakam/wintakam/internal/client/config"
	"github.com/wintakam/wintakam/internal/logging"
)

func main() {
	ctx := context.Background()
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("%v", err)
	}

	handler := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	logger := logging.NewSlogLogger(handler)

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)
}
