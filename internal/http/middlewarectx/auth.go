package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/magazine-admin/internal/http/response"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// Authorization ключ исходного заголовка Authorization в контексте.
const Authorization Key = "authorization"

// RequireAuthorization пропускает запрос дальше только при непустом заголовке
// Authorization. Сам токен не проверяется: это делает удалённый API.
func RequireAuthorization(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.RequireAuthorization"

			header := strings.TrimSpace(r.Header.Get("Authorization"))
			if header == "" {
				log.Warn("missing authorization header",
					slog.String("op", op),
					slog.String("request_id", middleware.GetReqID(r.Context())),
					slog.String("path", r.URL.Path),
				)
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("Authorization header is required"))
				return
			}
			ctx := context.WithValue(r.Context(), Authorization, header)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AuthorizationFrom возвращает заголовок, сохранённый RequireAuthorization.
func AuthorizationFrom(ctx context.Context) string {
	v, _ := ctx.Value(Authorization).(string)
	return v
}
