package console

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/magazine-admin/internal/models"
	"github.com/magabrotheeeer/magazine-admin/internal/upload"
)

func file(name, ct string, size int) upload.File {
	return upload.File{
		FileInfo: upload.FileInfo{Name: name, ContentType: ct, Size: int64(size)},
		Body:     bytes.NewReader(bytes.Repeat([]byte{0x1}, size)),
	}
}

type publishBackend struct {
	srv     *httptest.Server
	created atomic.Int32
	body    models.MagazineRequest
	auth    string
}

func newPublishBackend(t *testing.T) *publishBackend {
	t.Helper()
	b := &publishBackend{}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/r2-url", func(w http.ResponseWriter, r *http.Request) {
		var req models.SignedURLRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		_ = json.NewEncoder(w).Encode(models.SignedURLResponse{
			UploadURL: b.srv.URL + "/bucket/" + req.FileName + "?X-Amz-Signature=sig",
			Key:       req.FileName,
		})
	})
	mux.HandleFunc("/bucket/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/api/magazines/create", func(w http.ResponseWriter, r *http.Request) {
		b.created.Add(1)
		b.auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&b.body))
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"success":true,"data":{"_id":"m1"}}`)
	})
	b.srv = httptest.NewServer(mux)
	t.Cleanup(b.srv.Close)
	return b
}

func TestPublishMagazine_SignedUpload(t *testing.T) {
	b := newPublishBackend(t)
	c := New(newNoopLogger(), loggedIn(t), Options{ProxyURL: b.srv.URL, LoginURL: b.srv.URL + "/login", Timeout: 5e9})
	o := upload.NewOrchestrator(upload.NewSignedURLUploader(c.Proxy(), b.srv.Client(), "https://pub.example.test"))

	var seen []string
	res := c.PublishMagazine(context.Background(), o,
		PublishForm{Name: "Wanderlust", Type: "pro"},
		file("cover.jpg", "image/jpeg", 2<<20),
		file("issue.pdf", "application/pdf", 1<<20),
		func(field string, pct int) {
			if pct == 100 {
				seen = append(seen, field)
			}
		},
	)

	require.True(t, res.Success, res.Message)
	assert.Nil(t, res.FieldErrors)
	assert.Equal(t, []string{"coverImage", "pdfFile"}, seen)
	assert.EqualValues(t, 1, b.created.Load())
	assert.Equal(t, "Bearer tok", b.auth)

	assert.Regexp(t, regexp.MustCompile(`^https://pub\.example\.test/magazines/covers/\d+-[0-9a-f]{12}\.jpg$`), b.body.Image)
	assert.Regexp(t, regexp.MustCompile(`^https://pub\.example\.test/magazines/files/\d+-[0-9a-f]{12}\.pdf$`), b.body.File)
	assert.Equal(t, res.Cover.ResultURL, b.body.Image)
	assert.Equal(t, res.Document.ResultURL, b.body.File)
	assert.Equal(t, models.DefaultCategory, b.body.Category)
	assert.Equal(t, models.ContentMagazine, b.body.MagzineType)
	assert.JSONEq(t, `{"_id":"m1"}`, string(res.Data))
}

func TestPublishMagazine_Rejections(t *testing.T) {
	tests := []struct {
		name      string
		form      PublishForm
		cover     upload.File
		document  upload.File
		wantField string
		wantMsg   string
	}{
		{
			name:      "нет названия",
			form:      PublishForm{Type: "free"},
			cover:     file("c.jpg", "image/jpeg", 10),
			document:  file("d.pdf", "application/pdf", 10),
			wantField: "Name",
			wantMsg:   "Name is required",
		},
		{
			name:      "неизвестный тариф",
			form:      PublishForm{Name: "x", Type: "gold"},
			cover:     file("c.jpg", "image/jpeg", 10),
			document:  file("d.pdf", "application/pdf", 10),
			wantField: "Type",
			wantMsg:   "Type must be one of: free pro",
		},
		{
			name:      "обложка слишком большая",
			form:      PublishForm{Name: "x", Type: "free"},
			cover:     file("c.jpg", "image/jpeg", 11<<20),
			document:  file("d.pdf", "application/pdf", 10),
			wantField: "coverImage",
			wantMsg:   "File size 11.00MB exceeds maximum size of 10.00MB",
		},
		{
			name:      "документ не PDF",
			form:      PublishForm{Name: "x", Type: "free"},
			cover:     file("c.jpg", "image/jpeg", 10),
			document:  file("d.txt", "text/plain", 10),
			wantField: "pdfFile",
			wantMsg:   "File type text/plain is not allowed. Allowed types: application/pdf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newPublishBackend(t)
			c := New(newNoopLogger(), loggedIn(t), Options{ProxyURL: b.srv.URL, Timeout: 5e9})
			o := upload.NewOrchestrator(upload.NewSignedURLUploader(c.Proxy(), b.srv.Client(), "https://pub.example.test"))

			res := c.PublishMagazine(context.Background(), o, tt.form, tt.cover, tt.document, nil)

			assert.False(t, res.Success)
			assert.Equal(t, tt.wantMsg, res.FieldErrors[tt.wantField])
			assert.EqualValues(t, 0, b.created.Load())
		})
	}
}

func TestPublishMagazine_StorageFailureStopsCreate(t *testing.T) {
	srv := newFakeServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/magazines/create" {
			t.Error("create must not be called")
		}
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"error":"Failed to generate signed URL"}`)
	})
	c := newClient(srv, loggedIn(t))
	o := upload.NewOrchestrator(upload.NewSignedURLUploader(c.Proxy(), nil, "https://pub.example.test"))

	res := c.PublishMagazine(context.Background(), o, PublishForm{Name: "x", Type: "free"},
		file("c.png", "image/png", 10), file("d.pdf", "application/pdf", 10), nil)

	assert.False(t, res.Success)
	assert.Contains(t, res.FieldErrors["coverImage"], "Failed to upload cover image")
	assert.Contains(t, res.FieldErrors["coverImage"], "Failed to generate signed URL")
	assert.Nil(t, res.Document)
}
