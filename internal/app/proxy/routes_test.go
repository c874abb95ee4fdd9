package proxy

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/magazine-admin/internal/categories"
	"github.com/magabrotheeeer/magazine-admin/internal/config"
	"github.com/magabrotheeeer/magazine-admin/internal/events"
	"github.com/magabrotheeeer/magazine-admin/internal/metrics"
	"github.com/magabrotheeeer/magazine-admin/internal/remote"
)

type fakeStorage struct{}

func (fakeStorage) PresignPut(_ context.Context, key, _ string) (string, error) {
	return "https://signed.test/" + key, nil
}

func (fakeStorage) Put(_ context.Context, key string, _ io.Reader, _ int64, _ string) (string, error) {
	return "https://pub.test/" + key, nil
}

func (fakeStorage) Ping(context.Context) error { return nil }

type fakeUpstream struct {
	lastPath string
	lastAuth string
}

func (f *fakeUpstream) Do(_ context.Context, _, path, authorization string, _ any) (*remote.Response, error) {
	f.lastPath = path
	f.lastAuth = authorization
	return &remote.Response{StatusCode: 200, ContentType: "application/json", Body: []byte(`{"users":[]}`)}, nil
}

func newRouter(t *testing.T) (http.Handler, *fakeUpstream) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{}
	cfg.AllowedOrigin = "*"
	cfg.RPS = 100
	cfg.Burst = 100
	cfg.MaxUploadSize = 1 << 20
	cfg.UsersPath = "/api/v1/admin/get-all-users"
	cfg.UserDetailsPath = "/api/v1/user/profile/{uid}"
	cfg.DeleteUserPath = "/api/v1/admin/delete-user/{uid}"
	cfg.MagazinesPath = "/api/v1/admin/get-all-magzines"
	cfg.CreateMagPath = "/api/v1/admin/create-magzine"

	upstream := &fakeUpstream{}
	reg := prometheus.NewRegistry()
	r := chi.NewRouter()
	RegisterRoutes(r, Deps{
		Log:        logger,
		Config:     cfg,
		Remote:     upstream,
		Storage:    fakeStorage{},
		Categories: categories.NewService(categories.NewMemoryStore(categories.Defaults), events.NopPublisher{}, logger),
		Publisher:  events.NopPublisher{},
		Metrics:    metrics.New(reg),
		Registry:   reg,
	})
	return r, upstream
}

func do(t *testing.T, h http.Handler, method, target, body string, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rdr)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

type listBody struct {
	Success bool     `json:"success"`
	Data    []string `json:"data"`
	Message string   `json:"message"`
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) listBody {
	t.Helper()
	var b listBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &b))
	return b
}

func count(list []string, name string) int {
	n := 0
	for _, v := range list {
		if v == name {
			n++
		}
	}
	return n
}

func TestRoutes_CategoryRoundTrip(t *testing.T) {
	h, _ := newRouter(t)

	w := do(t, h, http.MethodPost, "/api/categories", `{"name":"  Gaming  "}`, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(t, h, http.MethodGet, "/api/categories", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	before := decodeList(t, w)
	assert.Equal(t, 1, count(before.Data, "Gaming"))

	w = do(t, h, http.MethodPost, "/api/categories", `{"name":"Gaming"}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Category already exists", decodeList(t, w).Message)

	w = do(t, h, http.MethodGet, "/api/categories", "", nil)
	assert.Equal(t, before.Data, decodeList(t, w).Data)

	w = do(t, h, http.MethodDelete, "/api/categories", `{"categoryName":"Gaming"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, decodeList(t, w).Data, "Gaming")

	w = do(t, h, http.MethodPut, "/api/categories", `{"oldName":"Travel","newName":"Tourism"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Tourism", decodeList(t, w).Data[5])
}

func TestRoutes_CORSAndMethods(t *testing.T) {
	h, _ := newRouter(t)

	tests := []struct {
		name   string
		method string
		target string
		status int
	}{
		{name: "preflight categories", method: http.MethodOptions, target: "/api/categories", status: http.StatusOK},
		{name: "preflight upload", method: http.MethodOptions, target: "/api/upload", status: http.StatusOK},
		{name: "method not allowed", method: http.MethodPatch, target: "/api/categories", status: http.StatusMethodNotAllowed},
		{name: "get on upload", method: http.MethodGet, target: "/api/upload", status: http.StatusMethodNotAllowed},
		{name: "users without token", method: http.MethodGet, target: "/api/users", status: http.StatusUnauthorized},
		{name: "unknown route", method: http.MethodGet, target: "/api/nope", status: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, tt.method, tt.target, "", nil)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestRoutes_ForwardsAuthorization(t *testing.T) {
	h, upstream := newRouter(t)

	w := do(t, h, http.MethodGet, "/api/users/abc", "", map[string]string{"Authorization": "Bearer tok"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/api/v1/user/profile/abc", upstream.lastPath)
	assert.Equal(t, "Bearer tok", upstream.lastAuth)
}

func TestRoutes_SignedURLAndHealth(t *testing.T) {
	h, _ := newRouter(t)

	w := do(t, h, http.MethodPost, "/api/r2-url", `{"fileName":"magazines/covers/1-a.jpg","fileType":"image/jpeg"}`, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"uploadURL":"https://signed.test/magazines/covers/1-a.jpg","key":"magazines/covers/1-a.jpg"}`, w.Body.String())

	w = do(t, h, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, h, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "magazine_admin_http_requests_total")
}
