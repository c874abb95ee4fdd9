// Package proxy собирает прокси-сервер консоли: хранилище файлов, пересылку
// в удалённый API, категории и события аудита.
package proxy

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/magabrotheeeer/magazine-admin/internal/cache"
	"github.com/magabrotheeeer/magazine-admin/internal/categories"
	"github.com/magabrotheeeer/magazine-admin/internal/config"
	"github.com/magabrotheeeer/magazine-admin/internal/events"
	"github.com/magabrotheeeer/magazine-admin/internal/lib/sl"
	"github.com/magabrotheeeer/magazine-admin/internal/metrics"
	"github.com/magabrotheeeer/magazine-admin/internal/migrations"
	"github.com/magabrotheeeer/magazine-admin/internal/objectstore"
	"github.com/magabrotheeeer/magazine-admin/internal/remote"
	"github.com/magabrotheeeer/magazine-admin/internal/storage"
)

const shutdownTimeout = 15 * time.Second

// App прокси-сервер.
type App struct {
	server  *http.Server
	logger  *slog.Logger
	closers []io.Closer
}

// New создаёт зависимости по конфигу и регистрирует маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "app.proxy.New"
	app := &App{logger: logger}

	store, err := app.categoryStore(ctx, cfg)
	if err != nil {
		app.close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var pub events.Publisher = events.NopPublisher{}
	if cfg.RabbitMQ.URL != "" {
		amqpPub, err := events.NewAMQPPublisher(cfg.RabbitMQ.URL, cfg.Exchange, cfg.Retries, cfg.Delay)
		if err != nil {
			app.close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		app.closers = append(app.closers, amqpPub)
		pub = amqpPub
	} else {
		logger.Info("rabbitmq url is empty, audit events are disabled")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	deps := Deps{
		Log:        logger,
		Config:     cfg,
		Remote:     remote.NewClient(cfg.BaseURL, cfg.RemoteAPI.Timeout),
		Storage:    objectstore.New(cfg.ObjectStorage),
		Categories: categories.NewService(store, pub, logger),
		Publisher:  pub,
		Metrics:    metrics.New(reg),
		Registry:   reg,
	}

	router := chi.NewRouter()
	RegisterRoutes(router, deps)

	app.server = &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return app, nil
}

func (a *App) categoryStore(ctx context.Context, cfg *config.Config) (categories.Store, error) {
	switch cfg.Backend {
	case "", "memory":
		a.logger.Warn("categories are kept in memory: changes are lost on restart and not shared between instances")
		return categories.NewMemoryStore(categories.Defaults), nil
	case "redis":
		c, err := cache.InitServer(ctx, cfg.RedisConnection)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, c)
		return cache.NewCategoryStore(ctx, c, categories.Defaults)
	case "postgres":
		db, err := storage.New(ctx, cfg.StorageConnectionString)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, db)
		if err := migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
			return nil, err
		}
		if err := storage.CheckDatabaseReady(ctx, db); err != nil {
			return nil, err
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unknown categories backend %q", cfg.Backend)
	}
}

// Run обслуживает запросы до отмены ctx, затем мягко останавливает сервер.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.close()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.close()
		return err
	}
}

func (a *App) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			a.logger.Error("failed to close resource", sl.Err(err))
		}
	}
	a.closers = nil
}
