package models

import "time"

// AuthStatus описывает текущее состояние сессии администратора.
type AuthStatus string

const (
	AuthStatusLoading         AuthStatus = "loading"
	AuthStatusUnauthenticated AuthStatus = "unauthenticated"
	AuthStatusAuthenticated   AuthStatus = "authenticated"
)

// AuthState — конкретное состояние вместо произвольного any:
// Email заполнен только когда Status == AuthStatusAuthenticated.
type AuthState struct {
	Status AuthStatus `json:"status"`
	Email  string     `json:"email,omitempty"`
}

// IsAuthenticated сообщает, авторизована ли сессия.
func (s AuthState) IsAuthenticated() bool {
	return s.Status == AuthStatusAuthenticated
}

// StoredSession — персистентная часть сессии: идентичность и время выдачи.
type StoredSession struct {
	Email    string    `json:"email"`
	IssuedAt time.Time `json:"issued_at"`
}

// PendingMagicLink хранит одноразовый запрос на вход по ссылке.
// TokenHash — bcrypt-хеш токена, сам токен нигде не сохраняется.
type PendingMagicLink struct {
	Email     string
	TokenHash string
	ExpiresAt time.Time
}
