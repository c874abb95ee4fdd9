// Command magazine-admin консоль администратора платформы журналов.
package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/magabrotheeeer/magazine-admin/internal/app/console"
	"github.com/magabrotheeeer/magazine-admin/internal/config"
	"github.com/magabrotheeeer/magazine-admin/internal/lib/sl"
)

func main() {
	verbose := flag.Bool("v", false, "debug logging to stderr")
	uploadTimeout := flag.Duration("upload-timeout", 10*time.Minute, "timeout for a single file upload")
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg := config.MustLoadConsole()

	store, err := console.OpenStore(cfg)
	if err != nil {
		logger.Error("failed to open session store", sl.Err(err))
		os.Exit(console.ExitFailure)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := console.New(logger, cfg, store, &http.Client{Timeout: *uploadTimeout}, os.Stdout, os.Stdin)
	code := app.Run(ctx, flag.Args())
	stop()
	os.Exit(code)
}
