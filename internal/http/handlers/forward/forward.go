// Package forward пересылает запросы администратора в удалённый API.
// Код статуса и тело ответа удалённого API передаются клиенту без изменений.
package forward

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/magazine-admin/internal/events"
	"github.com/magabrotheeeer/magazine-admin/internal/http/middlewarectx"
	"github.com/magabrotheeeer/magazine-admin/internal/http/response"
	"github.com/magabrotheeeer/magazine-admin/internal/lib/sl"
	"github.com/magabrotheeeer/magazine-admin/internal/metrics"
	"github.com/magabrotheeeer/magazine-admin/internal/remote"
)

// Upstream удалённый API.
type Upstream interface {
	Do(ctx context.Context, method, path, authorization string, body any) (*remote.Response, error)
}

// Handler пересылает один маршрут.
type Handler struct {
	log      *slog.Logger
	upstream Upstream
	metrics  *metrics.Metrics
	method   string
	path     string

	errorMessage string
	pub          events.Publisher
	eventKey     string
}

// Option настраивает Handler.
type Option func(*Handler)

// WithErrorEnvelope оборачивает ответ удалённого API с ошибкой в
// {success:false, message, error}. fallback используется, если в ответе нет сообщения.
func WithErrorEnvelope(fallback string) Option {
	return func(h *Handler) { h.errorMessage = fallback }
}

// WithEvent публикует событие key после успешного ответа.
func WithEvent(pub events.Publisher, key string) Option {
	return func(h *Handler) {
		h.pub = pub
		h.eventKey = key
	}
}

// New создаёт Handler, пересылающий запрос методом method на path удалённого API.
// В path может быть {uid}: он заменяется параметром маршрута.
func New(log *slog.Logger, upstream Upstream, m *metrics.Metrics, method, path string, opts ...Option) *Handler {
	h := &Handler{log: log, upstream: upstream, metrics: m, method: method, path: path}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// UserEvent событие действия над пользователем.
type UserEvent struct {
	UID string `json:"uid"`
}

// ServeHTTP godoc
// @Summary Пересылка в удалённый API
// @Description Пересылает запрос с заголовком Authorization и возвращает ответ удалённого API как есть.
// @Tags Users, Magazines
// @Produce json
// @Param Authorization header string true "Bearer-токен администратора"
// @Param uid path string false "Идентификатор пользователя"
// @Success 200 {object} map[string]any
// @Failure 401 {object} response.ErrorResponse "Нет заголовка Authorization"
// @Failure 502 {object} response.ErrorResponse "Удалённый API недоступен"
// @Failure 504 {object} response.ErrorResponse "Таймаут удалённого API"
// @Router /api/users [get]
// @Router /api/magazines [get]
// @Router /api/users/{uid} [get]
// @Router /api/users/{uid} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.forward"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("upstream", h.path),
	)

	uid := chi.URLParam(r, "uid")
	path := remote.Path(h.path, uid)

	start := time.Now()
	resp, err := h.upstream.Do(r.Context(), h.method, path, middlewarectx.AuthorizationFrom(r.Context()), nil)
	if err != nil {
		Fail(w, r, log, err)
		return
	}
	h.metrics.ObserveUpstream(h.path, resp.StatusCode, time.Since(start).Seconds())

	if !resp.OK() && h.errorMessage != "" {
		log.Warn("upstream returned error", slog.Int("status", resp.StatusCode))
		render.Status(r, resp.StatusCode)
		render.JSON(w, r, errorEnvelope(resp, h.errorMessage))
		return
	}

	if resp.OK() && h.pub != nil {
		if err := h.pub.Publish(r.Context(), h.eventKey, UserEvent{UID: uid}); err != nil {
			log.Warn("failed to publish event", slog.String("routing_key", h.eventKey), sl.Err(err))
		}
	}

	log.Info("request forwarded", slog.Int("status", resp.StatusCode))
	Write(w, resp)
}

// Write передаёт ответ удалённого API клиенту.
func Write(w http.ResponseWriter, resp *remote.Response) {
	ct := resp.ContentType
	if ct == "" {
		ct = "application/json"
	}
	w.Header().Set("Content-Type", ct)
	w.WriteHeader(resp.StatusCode)
	_, _ = w.Write(resp.Body)
}

// Fail отвечает на транспортную ошибку: 504 при таймауте, иначе 502.
func Fail(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	if remote.IsTimeout(err) {
		log.Error("upstream timeout", sl.Err(err))
		render.Status(r, http.StatusGatewayTimeout)
		render.JSON(w, r, response.Error("Upstream request timed out"))
		return
	}
	log.Error("upstream request failed", sl.Err(err))
	render.Status(r, http.StatusBadGateway)
	render.JSON(w, r, response.Error("Internal server error"))
}

// UpstreamError ответ с ошибкой удалённого API; error содержит его исходное тело.
type UpstreamError struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Error   json.RawMessage `json:"error,omitempty"`
}

func errorEnvelope(resp *remote.Response, fallback string) UpstreamError {
	var body map[string]any
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		return UpstreamError{Message: fallback}
	}
	msg := fallback
	if m, ok := body["message"].(string); ok && m != "" {
		msg = m
	} else if e, ok := body["error"].(string); ok && e != "" {
		msg = e
	}
	return UpstreamError{Message: msg, Error: json.RawMessage(resp.Body)}
}
