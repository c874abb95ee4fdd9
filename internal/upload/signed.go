package upload

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/magabrotheeeer/magazine-admin/internal/models"
	"github.com/magabrotheeeer/magazine-admin/internal/remote"
)

// SignedURLUploader запрашивает у прокси подписанную ссылку и кладёт файл
// напрямую в хранилище. Публичный адрес вычисляется из publicBase и ключа.
type SignedURLUploader struct {
	proxy      *remote.Client
	storage    *http.Client
	publicBase string
}

// NewSignedURLUploader создаёт стратегию. storage используется для PUT в хранилище.
func NewSignedURLUploader(proxy *remote.Client, storage *http.Client, publicBase string) *SignedURLUploader {
	if storage == nil {
		storage = http.DefaultClient
	}
	return &SignedURLUploader{proxy: proxy, storage: storage, publicBase: publicBase}
}

func (s *SignedURLUploader) Name() string { return "signed" }

func (s *SignedURLUploader) Upload(ctx context.Context, f File, key string, progress ProgressFunc) (string, error) {
	progress.report(ProgressPrepared)

	resp, err := s.proxy.Do(ctx, http.MethodPost, "/api/r2-url", "", models.SignedURLRequest{
		FileName: key,
		FileType: f.ContentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to get signed URL: %w", err)
	}
	var signed models.SignedURLResponse
	_ = resp.Decode(&signed)
	if !resp.OK() {
		if signed.Error != "" {
			return "", fmt.Errorf("failed to get signed URL: %s", signed.Error)
		}
		return "", fmt.Errorf("failed to get signed URL: status %d", resp.StatusCode)
	}
	if signed.UploadURL == "" {
		return "", fmt.Errorf("failed to get signed URL: empty uploadURL")
	}
	progress.report(ProgressSent)

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, signed.UploadURL, f.Body)
	if err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}
	req.ContentLength = f.Size
	req.Header.Set("Content-Type", f.ContentType)

	put, err := s.storage.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload failed: %w", err)
	}
	defer put.Body.Close()
	if put.StatusCode < 200 || put.StatusCode >= 300 {
		text, _ := io.ReadAll(io.LimitReader(put.Body, 4096))
		return "", fmt.Errorf("upload failed with status: %d - %s", put.StatusCode, strings.TrimSpace(string(text)))
	}
	progress.report(ProgressStored)

	return PublicURL(s.publicBase, key), nil
}
