// Package signedurl реализует POST /api/r2-url: выдачу короткоживущей
// подписанной ссылки для PUT одного объекта.
package signedurl

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/magazine-admin/internal/lib/sl"
	"github.com/magabrotheeeer/magazine-admin/internal/metrics"
	"github.com/magabrotheeeer/magazine-admin/internal/models"
	"github.com/magabrotheeeer/magazine-admin/internal/upload"
)

const endpoint = "r2-url"

// Signer подписывает PUT-запрос для ключа.
type Signer interface {
	PresignPut(ctx context.Context, key, contentType string) (string, error)
}

// Handler обработчик выдачи подписанных ссылок.
type Handler struct {
	log      *slog.Logger
	signer   Signer
	metrics  *metrics.Metrics
	validate *validator.Validate
}

// New создаёт Handler.
func New(log *slog.Logger, signer Signer, m *metrics.Metrics) *Handler {
	return &Handler{
		log:      log,
		signer:   signer,
		metrics:  m,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Получить подписанную ссылку для загрузки
// @Description Возвращает ссылку для PUT объекта fileName с типом fileType. Ссылка живёт около минуты.
// @Tags Upload
// @Accept json
// @Produce json
// @Param request body models.SignedURLRequest true "Ключ и MIME-тип"
// @Success 200 {object} models.SignedURLResponse
// @Failure 400 {object} models.SignedURLResponse "Некорректный запрос или тип"
// @Failure 500 {object} models.SignedURLResponse "Ошибка подписи"
// @Router /api/r2-url [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.upload.signedurl"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.SignedURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		h.fail(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			log.Warn("validation failed", sl.Err(err))
			h.fail(w, r, http.StatusBadRequest, "fileName and fileType are required")
			return
		}
		log.Error("validation error", sl.Err(err))
		h.fail(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	if !upload.TypeAllowed(req.FileType) {
		log.Warn("rejected file type", slog.String("content_type", req.FileType))
		h.fail(w, r, http.StatusBadRequest, "File type "+req.FileType+" is not allowed")
		return
	}

	url, err := h.signer.PresignPut(r.Context(), req.FileName, req.FileType)
	if err != nil {
		log.Error("failed to presign upload", slog.String("key", req.FileName), sl.Err(err))
		h.metrics.Upload(endpoint, metrics.ResultError)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, models.SignedURLResponse{Error: "Failed to generate upload URL"})
		return
	}

	h.metrics.Upload(endpoint, metrics.ResultOK)
	log.Info("signed url issued", slog.String("key", req.FileName))
	render.JSON(w, r, models.SignedURLResponse{UploadURL: url, Key: req.FileName})
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, status int, msg string) {
	h.metrics.Upload(endpoint, metrics.ResultRejected)
	render.Status(r, status)
	render.JSON(w, r, models.SignedURLResponse{Error: msg})
}
