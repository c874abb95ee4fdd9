package console

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/magabrotheeeer/magazine-admin/internal/lib/sl"
	"github.com/magabrotheeeer/magazine-admin/internal/models"
)

// LoginRequest учётные данные администратора.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult результат входа.
type LoginResult struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Token   string              `json:"token,omitempty"`
	User    *models.SessionUser `json:"user,omitempty"`
}

// Login выполняет вход через удалённый API и сохраняет сессию.
// Пускает только пользователей с userType == "admin", даже если удалённый вход успешен.
func (c *Client) Login(ctx context.Context, creds LoginRequest) LoginResult {
	const op = "console.Login"
	log := c.log.With(sl.Op(op))

	resp, err := c.proxy.DoURL(ctx, http.MethodPost, c.loginURL, "", creds)
	if err != nil {
		log.Warn("login request failed", sl.Err(err))
		return LoginResult{Message: transportMessage(err, "login")}
	}

	var data map[string]any
	if err := json.Unmarshal(resp.Body, &data); err != nil {
		log.Warn("login response is not JSON", slog.Int("status", resp.StatusCode), sl.Err(err))
		return LoginResult{Message: MsgUnexpected}
	}

	success, _ := data["success"].(bool)
	message, _ := data["message"].(string)
	if !resp.OK() || !(success || message == "Login successful") {
		if message == "" {
			message = "Invalid email or password"
		}
		return LoginResult{Message: message}
	}

	user := extractUser(data, creds.Email, c.now().UnixMilli())
	if user.UserType != models.UserTypeAdmin {
		log.Info("login rejected: not an admin", slog.String("email", user.Email), slog.String("user_type", user.UserType))
		return LoginResult{Message: MsgAccessDenied}
	}

	token := extractToken(data, c.scanFallback)
	if token == "" {
		log.Error("login succeeded but no token found in response")
		return LoginResult{Message: "Login succeeded but the server did not return a token."}
	}

	if err := c.store.Set(models.Session{Token: token, User: user}); err != nil {
		log.Error("failed to store session", sl.Err(err))
	}

	if message == "" {
		message = "Login successful"
	}
	return LoginResult{Success: true, Message: message, Token: token, User: &user}
}

// Logout удаляет сохранённую сессию.
func (c *Client) Logout() {
	if err := c.store.Clear(); err != nil {
		c.log.Warn("failed to clear session", sl.Err(err))
	}
}

// IsAuthenticated есть ли действующая сессия.
func (c *Client) IsAuthenticated() bool {
	return c.store.IsAuthenticated()
}

// CurrentUser профиль из сессии или nil.
func (c *Client) CurrentUser() *models.SessionUser {
	s, err := c.store.Get()
	if err != nil {
		return nil
	}
	u := s.User
	return &u
}

// extractUser достаёт профиль из user.user, user или корня ответа.
func extractUser(data map[string]any, email string, nowMillis int64) models.SessionUser {
	info := data
	if u, isMap := data["user"].(map[string]any); isMap {
		info = u
		if inner, isMap := u["user"].(map[string]any); isMap {
			info = inner
		}
	}

	return models.SessionUser{
		ID:       firstString(info, fmt.Sprintf("user-%d", nowMillis), "id", "_id", "uid"),
		Email:    firstString(info, email, "email"),
		Name:     firstString(info, "User", "name", "username"),
		Role:     firstString(info, "user", "role"),
		UserType: firstString(info, "user", "userType"),
	}
}

// firstString возвращает первое непустое значение из keys или def.
// Числовые идентификаторы приводятся к строке.
func firstString(m map[string]any, def string, keys ...string) string {
	for _, k := range keys {
		switch v := m[k].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return fmt.Sprintf("%.0f", v)
		}
	}
	return def
}
