// Package rename реализует PUT /api/categories.
package rename

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

// Service переименовывает категорию и возвращает полный список.
type Service interface {
	Rename(ctx context.Context, oldName, newName string) ([]string, error)
}

// Handler обработчик переименования категории.
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
// @Summary Переименовать категорию
// @Description Позиция категории в списке сохраняется.
// @Tags Categories
// @Accept json
// @Produce json
// @Param request body models.RenameCategoryRequest true "Старое и новое имя"
// @Success 200 {object} response.Response "data: список после изменения"
// @Failure 400 {object} response.ErrorResponse "Пустое имя или дубликат"
// @Failure 404 {object} response.ErrorResponse "Категория не найдена"
// @Router /api/categories [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.categories.rename"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.RenameCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to decode request", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("Both old and new category names are required"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		log.Warn("validation failed", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("Both old and new category names are required"))
		return
	}

	list, err := h.service.Rename(r.Context(), req.OldName, req.NewName)
	switch {
	case errors.Is(err, categories.ErrEmptyName):
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("New category name cannot be empty"))
		return
	case errors.Is(err, categories.ErrNotFound):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("Category not found"))
		return
	case errors.Is(err, categories.ErrExists):
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("Category name already exists"))
		return
	case err != nil:
		log.Error("failed to rename category", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Internal server error"))
		return
	}

	log.Info("category renamed", slog.String("old", req.OldName), slog.String("new", req.NewName))
	render.JSON(w, r, response.OKWithMessage("Category updated successfully", list))
}
