// Command magazine-admin-audit читает очередь аудита и пишет события в лог.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/magabrotheeeer/magazine-admin/internal/app/audit"
	"github.com/magabrotheeeer/magazine-admin/internal/config"
	"github.com/magabrotheeeer/magazine-admin/internal/lib/sl"
)

func main() {
	cfg := config.MustLoad()
	logger := sl.New(cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := audit.New(cfg, logger, nil)
	if err != nil {
		logger.Error("failed to initialize app", sl.Err(err))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		logger.Error("app stopped with error", sl.Err(err))
		os.Exit(1)
	}
	logger.Info("magazine-admin-audit stopped gracefully")
}
