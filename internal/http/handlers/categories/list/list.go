// Package list реализует GET /api/categories.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/magazine-admin/internal/http/response"
	"github.com/magabrotheeeer/magazine-admin/internal/lib/sl"
)

// Service источник категорий.
type Service interface {
	List(ctx context.Context) ([]string, error)
}

// Handler обработчик списка категорий.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создаёт Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список категорий
// @Tags Categories
// @Produce json
// @Success 200 {object} response.Response "data: массив имён"
// @Failure 500 {object} response.ErrorResponse
// @Router /api/categories [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.categories.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	list, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list categories", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Internal server error"))
		return
	}

	render.JSON(w, r, response.OK(list))
}
