// Package middlewarectx содержит HTTP middleware прокси: CORS, проверку
// заголовка Authorization, ограничение частоты и метрики.
package middlewarectx

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/magazine-admin/internal/http/response"
)

const (
	allowMethods = "GET, POST, PUT, DELETE, OPTIONS"
	allowHeaders = "Content-Type, Authorization"
)

// CORS добавляет заголовки Access-Control-* к каждому ответу и отвечает 200 на preflight.
func CORS(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Methods", allowMethods)
			h.Set("Access-Control-Allow-Headers", allowHeaders)

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// MethodNotAllowed ответ 405 в едином формате.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusMethodNotAllowed)
	render.JSON(w, r, response.Error("Method not allowed"))
}

// NotFound ответ 404 в едином формате.
func NotFound(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusNotFound)
	render.JSON(w, r, response.Error("Not found"))
}
