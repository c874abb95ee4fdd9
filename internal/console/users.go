package console

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/magabrotheeeer/magazine-admin/internal/lib/sl"
	"github.com/magabrotheeeer/magazine-admin/internal/models"
)

// FetchUsers возвращает всех пользователей платформы.
func (c *Client) FetchUsers(ctx context.Context) Result[[]models.User] {
	resp, msg := c.authorized(ctx, http.MethodGet, "/api/users", nil, "fetch users")
	if msg != "" {
		return fail[[]models.User](msg)
	}
	users, err := unwrapList[models.User](resp.Body, "users")
	if err != nil {
		c.log.Warn("unexpected users payload", sl.Err(err))
		return fail[[]models.User]("Failed to fetch users. Please try again.")
	}
	return ok(users)
}

// GetUserDetails возвращает профиль пользователя по uid.
func (c *Client) GetUserDetails(ctx context.Context, uid string) Result[models.User] {
	if uid == "" {
		return fail[models.User]("User UID is required")
	}
	resp, msg := c.authorized(ctx, http.MethodGet, "/api/users/"+url.PathEscape(uid), nil, "fetch user details")
	if msg != "" {
		return fail[models.User](msg)
	}
	user, err := unwrapObject[models.User](resp.Body, "user")
	if err != nil {
		c.log.Warn("unexpected user payload", sl.Err(err))
		return fail[models.User]("Failed to fetch user details. Please try again.")
	}
	return ok(user)
}

// DeleteUser удаляет пользователя по uid.
func (c *Client) DeleteUser(ctx context.Context, uid string) Result[json.RawMessage] {
	if uid == "" {
		return fail[json.RawMessage]("User UID is required")
	}
	resp, msg := c.authorized(ctx, http.MethodDelete, "/api/users/"+url.PathEscape(uid), nil, "delete user")
	if msg != "" {
		return fail[json.RawMessage](msg)
	}
	return ok(json.RawMessage(resp.Body))
}
