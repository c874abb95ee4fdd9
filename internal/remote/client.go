// Package remote реализует JSON-клиент к внешним HTTP API: удалённому API
// платформы (для прокси) и самому прокси (для консоли).
//
// Клиент не интерпретирует ответы: возвращает код статуса и тело как есть,
// чтобы вызывающая сторона могла передать их дальше без изменений.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// maxBody ограничение на размер тела ответа.
const maxBody = 16 << 20

// Client клиент к JSON API с базовым адресом и таймаутом.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
}

// Response ответ внешнего API.
type Response struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// OK сообщает, что код ответа 2xx.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Decode разбирает тело ответа как JSON.
func (r *Response) Decode(v any) error {
	if len(r.Body) == 0 {
		return errors.New("empty response body")
	}
	return json.Unmarshal(r.Body, v)
}

// NewClient создаёт клиента. timeout ограничивает каждый запрос целиком.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		timeout:    timeout,
		httpClient: &http.Client{},
	}
}

// WithHTTPClient подменяет транспорт (используется в тестах).
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// BaseURL базовый адрес клиента.
func (c *Client) BaseURL() string { return c.baseURL }

// Path подставляет экранированный uid в шаблон вида /users/{uid}.
func Path(tpl, uid string) string {
	return strings.ReplaceAll(tpl, "{uid}", url.PathEscape(uid))
}

func (c *Client) newRequest(ctx context.Context, method, target, authorization string, body any) (*http.Request, error) {
	var rdr io.Reader
	if body != nil {
		switch b := body.(type) {
		case []byte:
			rdr = bytes.NewReader(b)
		case json.RawMessage:
			rdr = bytes.NewReader(b)
		default:
			var buf bytes.Buffer
			if err := json.NewEncoder(&buf).Encode(body); err != nil {
				return nil, err
			}
			rdr = &buf
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, target, rdr)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if rdr != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	return req, nil
}

// Do выполняет запрос к baseURL+path. authorization передаётся в заголовок
// Authorization без изменений. Ответ с любым кодом статуса не считается ошибкой.
func (c *Client) Do(ctx context.Context, method, path, authorization string, body any) (*Response, error) {
	target := path
	if !strings.HasPrefix(path, "http://") && !strings.HasPrefix(path, "https://") {
		target = c.baseURL + path
	}
	return c.DoURL(ctx, method, target, authorization, body)
}

// DoURL выполняет запрос по абсолютному адресу.
func (c *Client) DoURL(ctx context.Context, method, target, authorization string, body any) (*Response, error) {
	const op = "remote.Client.Do"

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := c.newRequest(ctx, method, target, authorization, body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return c.send(req)
}

func (c *Client) send(req *http.Request) (*Response, error) {
	const op = "remote.Client.Do"

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("%s: read body: %w", op, err)
	}
	return &Response{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        data,
	}, nil
}

// IsTimeout сообщает, что запрос прерван по таймауту.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
