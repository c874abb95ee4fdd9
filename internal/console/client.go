// Package console реализует клиент консоли администратора к прокси-серверу.
//
// Каждая функция возвращает Result и никогда не возвращает ошибку Go:
// сетевые сбои, таймауты и ответы не 2xx превращаются в сообщение для оператора.
package console

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/magabrotheeeer/magazine-admin/internal/lib/sl"
	"github.com/magabrotheeeer/magazine-admin/internal/remote"
	"github.com/magabrotheeeer/magazine-admin/internal/session"
)

// Сообщения, которые видит оператор.
const (
	MsgNoToken      = "No authentication token found. Please login again."
	MsgAuthFailed   = "Authentication failed. Please login again."
	MsgAccessDenied = "Access denied. Admin privileges required."
	MsgTimeout      = "Request timeout. Please try again."
	MsgNetwork      = "Network error. Please check your connection and try again."
	MsgUnexpected   = "An unexpected error occurred. Please try again."
)

// Result единый конверт ответа клиента.
type Result[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func fail[T any](msg string) Result[T] {
	return Result[T]{Success: false, Message: msg}
}

func ok[T any](data T) Result[T] {
	return Result[T]{Success: true, Data: data}
}

// Options параметры клиента.
type Options struct {
	ProxyURL          string
	LoginURL          string
	Timeout           time.Duration
	TokenScanFallback bool
}

// Client клиент консоли.
type Client struct {
	log          *slog.Logger
	proxy        *remote.Client
	loginURL     string
	store        session.Store
	scanFallback bool
	now          func() time.Time
}

// New создаёт клиента поверх хранилища сессии.
func New(log *slog.Logger, store session.Store, opts Options) *Client {
	return &Client{
		log:          log,
		proxy:        remote.NewClient(opts.ProxyURL, opts.Timeout),
		loginURL:     opts.LoginURL,
		store:        store,
		scanFallback: opts.TokenScanFallback,
		now:          time.Now,
	}
}

// WithHTTPClient подменяет транспорт.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.proxy.WithHTTPClient(hc)
	return c
}

// Proxy клиент прокси-сервера; нужен оркестратору загрузки.
func (c *Client) Proxy() *remote.Client { return c.proxy }

// Store хранилище сессии клиента.
func (c *Client) Store() session.Store { return c.store }

// authorized выполняет запрос к прокси с токеном из сессии. При неуспехе
// возвращает сообщение для оператора; what описывает действие для общего сообщения об ошибке.
func (c *Client) authorized(ctx context.Context, method, path string, body any, what string) (*remote.Response, string) {
	token := session.Token(c.store)
	if token == "" {
		return nil, MsgNoToken
	}

	resp, err := c.proxy.Do(ctx, method, path, "Bearer "+token, body)
	if err != nil {
		c.log.Warn("proxy request failed", slog.String("path", path), sl.Err(err))
		return nil, transportMessage(err, what)
	}
	if !resp.OK() {
		c.log.Debug("proxy returned error status", slog.String("path", path), slog.Int("status", resp.StatusCode))
		return nil, statusMessage(resp, what)
	}
	return resp, ""
}

func transportMessage(err error, what string) string {
	if remote.IsTimeout(err) {
		return MsgTimeout
	}
	if errors.Is(err, context.Canceled) {
		return fmt.Sprintf("Failed to %s. Request was cancelled.", what)
	}
	return MsgNetwork
}

func statusMessage(resp *remote.Response, what string) string {
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return MsgAuthFailed
	case http.StatusForbidden:
		return MsgAccessDenied
	}
	if msg := backendMessage(resp.Body); msg != "" {
		return msg
	}
	return fmt.Sprintf("Failed to %s. Status: %d", what, resp.StatusCode)
}

// backendMessage достаёт message или error из тела ответа.
func backendMessage(body []byte) string {
	var env struct {
		Message string          `json:"message"`
		Error   json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return ""
	}
	if env.Message != "" {
		return env.Message
	}
	var s string
	if err := json.Unmarshal(env.Error, &s); err == nil {
		return s
	}
	return ""
}

// unwrapList разбирает список из {key:[..]}, {data:[..]} или голого массива.
func unwrapList[T any](body []byte, key string) ([]T, error) {
	var list []T
	if err := json.Unmarshal(body, &list); err == nil {
		return list, nil
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil {
		return nil, err
	}
	for _, k := range []string{key, "data"} {
		raw, found := obj[k]
		if !found {
			continue
		}
		if err := json.Unmarshal(raw, &list); err == nil {
			return list, nil
		}
		// {data: {users: [...]}}
		var inner map[string]json.RawMessage
		if err := json.Unmarshal(raw, &inner); err == nil {
			if r, found := inner[key]; found {
				if err := json.Unmarshal(r, &list); err == nil {
					return list, nil
				}
			}
		}
	}
	return nil, fmt.Errorf("no %q list in response", key)
}

// unwrapObject разбирает объект из {data:{..}}, {key:{..}} или корня.
func unwrapObject[T any](body []byte, key string) (T, error) {
	var out T
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil {
		return out, err
	}
	for _, k := range []string{"data", key} {
		if raw, found := obj[k]; found && len(raw) > 0 && raw[0] == '{' {
			err := json.Unmarshal(raw, &out)
			return out, err
		}
	}
	err := json.Unmarshal(body, &out)
	return out, err
}
