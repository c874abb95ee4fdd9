// Package metrics регистрирует метрики прокси в Prometheus.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

// Результаты операций загрузки.
const (
	ResultOK       = "ok"
	ResultRejected = "rejected"
	ResultError    = "error"
)

// Metrics счётчики прокси.
type Metrics struct {
	Requests *prometheus.CounterVec
	Uploads  *prometheus.CounterVec
	Upstream *prometheus.HistogramVec
}

// New создаёт и регистрирует метрики в reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "magazine_admin",
			Name:      "http_requests_total",
			Help:      "HTTP requests served by the proxy.",
		}, []string{"method", "route", "status"}),
		Uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "magazine_admin",
			Name:      "uploads_total",
			Help:      "Upload and signed URL requests by outcome.",
		}, []string{"endpoint", "result"}),
		Upstream: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "magazine_admin",
			Name:      "upstream_request_duration_seconds",
			Help:      "Latency of requests forwarded to the remote API.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "status"}),
	}
	reg.MustRegister(m.Requests, m.Uploads, m.Upstream)
	return m
}

// Middleware считает запросы по шаблону маршрута chi.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.Requests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
	})
}

// Upload фиксирует исход загрузки.
func (m *Metrics) Upload(endpoint, result string) {
	if m == nil {
		return
	}
	m.Uploads.WithLabelValues(endpoint, result).Inc()
}

// ObserveUpstream фиксирует длительность запроса к удалённому API.
func (m *Metrics) ObserveUpstream(route string, status int, seconds float64) {
	if m == nil {
		return
	}
	m.Upstream.WithLabelValues(route, strconv.Itoa(status)).Observe(seconds)
}
