package upload

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path"
	"strings"

	"github.com/magabrotheeeer/magazine-admin/internal/models"
	"github.com/magabrotheeeer/magazine-admin/internal/remote"
)

// ProxyUploader отправляет файл multipart-запросом на /api/upload; прокси сам
// кладёт его в хранилище и возвращает публичный адрес.
type ProxyUploader struct {
	proxy *remote.Client
	http  *http.Client
}

// NewProxyUploader создаёт стратегию. hc используется для самой загрузки,
// у него должен быть таймаут больше, чем у обычных запросов.
func NewProxyUploader(proxy *remote.Client, hc *http.Client) *ProxyUploader {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &ProxyUploader{proxy: proxy, http: hc}
}

func (p *ProxyUploader) Name() string { return "proxy" }

func (p *ProxyUploader) Upload(ctx context.Context, f File, key string, progress ProgressFunc) (string, error) {
	progress.report(ProgressPrepared)

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		pw.CloseWithError(writeMultipart(mw, f, key))
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.proxy.BaseURL()+"/api/upload", pr)
	if err != nil {
		pr.Close()
		return "", fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	progress.report(ProgressSent)

	resp, err := p.http.Do(req)
	if err != nil {
		pr.Close()
		return "", fmt.Errorf("upload failed: %w", err)
	}
	defer resp.Body.Close()
	progress.report(ProgressStored)

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	result := &remote.Response{StatusCode: resp.StatusCode, Body: body}
	var out models.UploadResponse
	_ = result.Decode(&out)
	if !result.OK() {
		if out.Error != "" {
			return "", fmt.Errorf("upload failed: %d - %s", resp.StatusCode, out.Error)
		}
		return "", fmt.Errorf("upload failed: %d - %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if !out.Success || out.URL == "" {
		if out.Error != "" {
			return "", fmt.Errorf("upload failed: %s", out.Error)
		}
		return "", fmt.Errorf("upload failed")
	}
	return out.URL, nil
}

func writeMultipart(mw *multipart.Writer, f File, key string) error {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, f.Name))
	h.Set("Content-Type", f.ContentType)
	part, err := mw.CreatePart(h)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, f.Body); err != nil {
		return err
	}
	if err := mw.WriteField("fileName", key); err != nil {
		return err
	}
	if err := mw.WriteField("folder", path.Dir(key)); err != nil {
		return err
	}
	return mw.Close()
}
