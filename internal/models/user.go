// Package models содержит доменные структуры консоли администратора:
// сессию, пользователей, журналы, категории и задания загрузки.
// Все записи, кроме сессии, принадлежат удалённому API и хранятся
// локально только для отображения.
package models

// SessionUser минимальный профиль пользователя, сохраняемый вместе с токеном.
type SessionUser struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	UserType string `json:"userType"`
}

// Session токен и профиль текущего администратора.
type Session struct {
	Token string      `json:"token"`
	User  SessionUser `json:"user"`
}

// User пользователь платформы в том виде, в котором его отдаёт удалённый API.
type User struct {
	ID                  string `json:"_id,omitempty"`
	UID                 any    `json:"uid"`
	Username            string `json:"username"`
	Name                string `json:"name"`
	Email               string `json:"email"`
	Role                string `json:"role,omitempty"`
	UserType            string `json:"userType,omitempty"`
	SubscriptionStatus  string `json:"subscriptionStatus,omitempty"`
	SubscriptionEndDate string `json:"subscriptionEndDate,omitempty"`
	CreatedAt           string `json:"createdAt,omitempty"`
}

// UserTypeAdmin значение userType, которому разрешён вход в консоль.
const UserTypeAdmin = "admin"
