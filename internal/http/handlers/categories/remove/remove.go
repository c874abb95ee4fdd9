// Package remove реализует DELETE /api/categories.
package remove

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

// Service удаляет категорию и возвращает полный список.
type Service interface {
	Delete(ctx context.Context, name string) ([]string, error)
}

// Handler обработчик удаления категории.
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
// @Summary Удалить категорию
// @Tags Categories
// @Accept json
// @Produce json
// @Param request body models.DeleteCategoryRequest true "Имя категории"
// @Success 200 {object} response.Response "data: список после удаления"
// @Failure 400 {object} response.ErrorResponse "Нет имени"
// @Failure 404 {object} response.ErrorResponse "Категория не найдена"
// @Router /api/categories [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.categories.remove"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DeleteCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to decode request", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("Category name is required for deletion"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		log.Warn("validation failed", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("Category name is required for deletion"))
		return
	}

	list, err := h.service.Delete(r.Context(), req.CategoryName)
	switch {
	case errors.Is(err, categories.ErrEmptyName):
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("Category name is required for deletion"))
		return
	case errors.Is(err, categories.ErrNotFound):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("Category not found"))
		return
	case err != nil:
		log.Error("failed to delete category", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Internal server error"))
		return
	}

	log.Info("category deleted", slog.String("name", req.CategoryName))
	render.JSON(w, r, response.OKWithMessage("Category deleted successfully", list))
}
