// Package create реализует POST /api/magazines/create.
//
// Handler проверяет поля журнала, подставляет значения по умолчанию и
// пересылает запрос в удалённый API с заголовком Authorization администратора.
package create

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/magazine-admin/internal/events"
	"github.com/magabrotheeeer/magazine-admin/internal/http/handlers/forward"
	"github.com/magabrotheeeer/magazine-admin/internal/http/middlewarectx"
	"github.com/magabrotheeeer/magazine-admin/internal/http/response"
	"github.com/magabrotheeeer/magazine-admin/internal/lib/sl"
	"github.com/magabrotheeeer/magazine-admin/internal/metrics"
	"github.com/magabrotheeeer/magazine-admin/internal/models"
)

// Handler создаёт журнал через удалённый API.
type Handler struct {
	log      *slog.Logger
	upstream forward.Upstream
	pub      events.Publisher
	metrics  *metrics.Metrics
	path     string
	validate *validator.Validate
}

// New создаёт Handler. path путь создания журнала в удалённом API.
func New(log *slog.Logger, upstream forward.Upstream, pub events.Publisher, m *metrics.Metrics, path string) *Handler {
	if pub == nil {
		pub = events.NopPublisher{}
	}
	return &Handler{
		log:      log,
		upstream: upstream,
		pub:      pub,
		metrics:  m,
		path:     path,
		validate: validator.New(),
	}
}

// MagazineCreated событие создания журнала.
type MagazineCreated struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Type        string `json:"type"`
	MagzineType string `json:"magzineType"`
}

// ServeHTTP godoc
// @Summary Создать журнал
// @Description Проверяет поля, подставляет category=other и magzineType=magzine по умолчанию и пересылает запрос в удалённый API.
// @Tags Magazines
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer-токен администратора"
// @Param request body models.MagazineRequest true "Данные журнала"
// @Success 200 {object} map[string]any "Ответ удалённого API"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос"
// @Failure 401 {object} response.ErrorResponse "Нет заголовка Authorization"
// @Router /api/magazines/create [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.magazines.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.MagazineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			log.Error("validation error", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid request body"))
			return
		}
		log.Warn("validation failed", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(verrs))
		return
	}
	req = req.WithDefaults()

	start := time.Now()
	resp, err := h.upstream.Do(r.Context(), http.MethodPost, h.path, middlewarectx.AuthorizationFrom(r.Context()), req)
	if err != nil {
		forward.Fail(w, r, log, err)
		return
	}
	h.metrics.ObserveUpstream(h.path, resp.StatusCode, time.Since(start).Seconds())

	if resp.OK() {
		if err := h.pub.Publish(r.Context(), events.MagazineCreated, MagazineCreated{
			Name: req.Name, Category: req.Category, Type: req.Type, MagzineType: req.MagzineType,
		}); err != nil {
			log.Warn("failed to publish magazine event", sl.Err(err))
		}
		log.Info("magazine created", slog.String("name", req.Name))
	} else {
		log.Warn("upstream rejected magazine", slog.Int("status", resp.StatusCode))
	}
	forward.Write(w, resp)
}
