package proxy

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/magazine-admin/internal/categories"
	"github.com/magabrotheeeer/magazine-admin/internal/config"
	"github.com/magabrotheeeer/magazine-admin/internal/events"
	// Регистрация описания API для /docs.
	_ "github.com/magabrotheeeer/magazine-admin/internal/http/docs"
	"github.com/magabrotheeeer/magazine-admin/internal/http/handlers/categories/add"
	"github.com/magabrotheeeer/magazine-admin/internal/http/handlers/categories/list"
	"github.com/magabrotheeeer/magazine-admin/internal/http/handlers/categories/remove"
	"github.com/magabrotheeeer/magazine-admin/internal/http/handlers/categories/rename"
	"github.com/magabrotheeeer/magazine-admin/internal/http/handlers/forward"
	"github.com/magabrotheeeer/magazine-admin/internal/http/handlers/health"
	"github.com/magabrotheeeer/magazine-admin/internal/http/handlers/magazines/create"
	"github.com/magabrotheeeer/magazine-admin/internal/http/handlers/upload/proxyupload"
	"github.com/magabrotheeeer/magazine-admin/internal/http/handlers/upload/signedurl"
	"github.com/magabrotheeeer/magazine-admin/internal/http/middlewarectx"
	"github.com/magabrotheeeer/magazine-admin/internal/metrics"
)

// ObjectStorage операции хранилища, нужные прокси.
type ObjectStorage interface {
	PresignPut(ctx context.Context, key, contentType string) (string, error)
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error)
	Ping(ctx context.Context) error
}

// Deps зависимости маршрутов.
type Deps struct {
	Log        *slog.Logger
	Config     *config.Config
	Remote     forward.Upstream
	Storage    ObjectStorage
	Categories *categories.Service
	Publisher  events.Publisher
	Metrics    *metrics.Metrics
	Registry   *prometheus.Registry
}

// RegisterRoutes регистрирует все маршруты прокси.
func RegisterRoutes(r chi.Router, d Deps) {
	cfg := d.Config
	log := d.Log

	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
		middlewarectx.CORS(cfg.AllowedOrigin),
		d.Metrics.Middleware,
	)
	r.MethodNotAllowed(middlewarectx.MethodNotAllowed)
	r.NotFound(middlewarectx.NotFound)

	r.Route("/api", func(r chi.Router) {
		r.MethodNotAllowed(middlewarectx.MethodNotAllowed)
		r.NotFound(middlewarectx.NotFound)

		// Загрузка файлов, без авторизации, с ограничением частоты
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RateLimit(log, cfg.RPS, cfg.Burst))
			r.Post("/upload", proxyupload.New(log, d.Storage, d.Publisher, d.Metrics, cfg.MaxUploadSize).ServeHTTP)
			r.Post("/r2-url", signedurl.New(log, d.Storage, d.Metrics).ServeHTTP)
		})

		// Пересылка в удалённый API, требует Authorization
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RequireAuthorization(log))
			r.Post("/magazines/create", create.New(log, d.Remote, d.Publisher, d.Metrics, cfg.CreateMagPath).ServeHTTP)
			r.Get("/magazines", forward.New(log, d.Remote, d.Metrics, http.MethodGet, cfg.MagazinesPath).ServeHTTP)
			r.Get("/users", forward.New(log, d.Remote, d.Metrics, http.MethodGet, cfg.UsersPath).ServeHTTP)
			r.Get("/users/{uid}", forward.New(log, d.Remote, d.Metrics, http.MethodGet, cfg.UserDetailsPath,
				forward.WithErrorEnvelope("Failed to fetch user details")).ServeHTTP)
			r.Delete("/users/{uid}", forward.New(log, d.Remote, d.Metrics, http.MethodDelete, cfg.DeleteUserPath,
				forward.WithEvent(d.Publisher, events.UserDeleted)).ServeHTTP)
		})

		r.Get("/categories", list.New(log, d.Categories).ServeHTTP)
		r.Post("/categories", add.New(log, d.Categories).ServeHTTP)
		r.Put("/categories", rename.New(log, d.Categories).ServeHTTP)
		r.Delete("/categories", remove.New(log, d.Categories).ServeHTTP)
	})

	r.Get("/healthz", health.New(log, map[string]health.Checker{
		"storage":    d.Storage,
		"categories": d.Categories,
	}).ServeHTTP)
	r.Handle("/metrics", promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{}))
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
