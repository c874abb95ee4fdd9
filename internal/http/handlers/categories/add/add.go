// Package add реализует POST /api/categories.
package add

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/magazine-admin/internal/categories"
	"github.com/magabrotheeeer/magazine-admin/internal/http/response"
	"github.com/magabrotheeeer/magazine-admin/internal/lib/sl"
	"github.com/magabrotheeeer/magazine-admin/internal/models"
)

// Service добавляет категорию и возвращает полный список.
type Service interface {
	Add(ctx context.Context, name string) ([]string, error)
}

// Handler обработчик добавления категории.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создаёт Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service, validate: validator.New()}
}

// ServeHTTP godoc
// @Summary Добавить категорию
// @Tags Categories
// @Accept json
// @Produce json
// @Param request body models.AddCategoryRequest true "Имя категории"
// @Success 201 {object} response.Response "data: список после добавления"
// @Failure 400 {object} response.ErrorResponse "Пустое имя или дубликат"
// @Failure 500 {object} response.ErrorResponse
// @Router /api/categories [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.categories.add"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.AddCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to decode request", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("Category name is required"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		log.Warn("validation failed", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("Category name is required"))
		return
	}

	list, err := h.service.Add(r.Context(), req.Name)
	switch {
	case errors.Is(err, categories.ErrEmptyName):
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("Category name cannot be empty"))
		return
	case errors.Is(err, categories.ErrExists):
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("Category already exists"))
		return
	case err != nil:
		log.Error("failed to add category", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Internal server error"))
		return
	}

	log.Info("category added", slog.String("name", req.Name))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.OKWithMessage("Category added successfully", list))
}
