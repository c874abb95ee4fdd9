// Package health реализует GET /healthz.
package health

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/magazine-admin/internal/http/response"
	"github.com/magabrotheeeer/magazine-admin/internal/lib/sl"
)

const checkTimeout = 3 * time.Second

// Checker зависимость, которую можно проверить.
type Checker interface {
	Ping(ctx context.Context) error
}

// Handler проверяет зависимости по имени.
type Handler struct {
	log    *slog.Logger
	checks map[string]Checker
}

// New создаёт Handler.
func New(log *slog.Logger, checks map[string]Checker) *Handler {
	return &Handler{log: log, checks: checks}
}

// ServeHTTP godoc
// @Summary Проверка готовности
// @Tags Health
// @Produce json
// @Success 200 {object} response.Response
// @Failure 503 {object} response.Response
// @Router /healthz [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.health"

	ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
	defer cancel()

	status := http.StatusOK
	results := make(map[string]string, len(h.checks))
	for name, c := range h.checks {
		if err := c.Ping(ctx); err != nil {
			h.log.Warn("health check failed", slog.String("op", op), slog.String("check", name), sl.Err(err))
			results[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		results[name] = "ok"
	}

	render.Status(r, status)
	render.JSON(w, r, response.Response{
		Success: status == http.StatusOK,
		Data:    results,
	})
}
