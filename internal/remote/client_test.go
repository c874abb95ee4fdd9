package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_DoForwardsAuthorizationAndBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/admin/create-magzine", r.URL.Path)
		assert.Equal(t, "Bearer abc", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Tech Monthly", body["name"])

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", time.Second)
	resp, err := c.Do(context.Background(), http.MethodPost, "/api/v1/admin/create-magzine", "Bearer abc",
		map[string]string{"name": "Tech Monthly"})
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.True(t, resp.OK())
	assert.JSONEq(t, `{"success":true}`, string(resp.Body))
}

func TestClient_DoReturnsNon2xxWithoutError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message":"forbidden"}`))
	}))
	defer srv.Close()

	resp, err := NewClient(srv.URL, time.Second).Do(context.Background(), http.MethodGet, "/x", "", nil)
	require.NoError(t, err)
	assert.False(t, resp.OK())

	var body struct{ Message string }
	require.NoError(t, resp.Decode(&body))
	assert.Equal(t, "forbidden", body.Message)
}

func TestClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, 20*time.Millisecond).Do(context.Background(), http.MethodGet, "/slow", "", nil)
	require.Error(t, err)
	assert.True(t, IsTimeout(err))
}

func TestPath(t *testing.T) {
	assert.Equal(t, "/api/v1/user/profile/12%2F3", Path("/api/v1/user/profile/{uid}", "12/3"))
	assert.False(t, IsTimeout(nil))
}
