package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/gallery-backend/internal/models"
)

// SessionRepository хранит единственную сессию администратора в PostgreSQL.
type SessionRepository struct {
	db *sqlx.DB
}

// NewSessionRepository создаёт экземпляр репозитория.
func NewSessionRepository(db *sqlx.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// GetSession возвращает сохранённую сессию или (nil, nil).
func (r *SessionRepository) GetSession(ctx context.Context) (*models.StoredSession, error) {
	var row struct {
		Email    string       `db:"email"`
		IssuedAt sql.NullTime `db:"issued_at"`
	}

	err := r.db.GetContext(ctx, &row,
		`SELECT email, issued_at FROM admin_session WHERE id = 1`)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("session repository: get %w", err)
	}

	return &models.StoredSession{
		Email:    row.Email,
		IssuedAt: row.IssuedAt.Time,
	}, nil
}

// SetSession сохраняет сессию, замещая предыдущую.
func (r *SessionRepository) SetSession(ctx context.Context, session models.StoredSession) error {
	query := `
		INSERT INTO admin_session (id, email, issued_at)
		VALUES (1, $1, $2)
		ON CONFLICT (id) DO UPDATE SET email = EXCLUDED.email, issued_at = EXCLUDED.issued_at
	`
	if _, err := r.db.ExecContext(ctx, query, session.Email, session.IssuedAt); err != nil {
		return fmt.Errorf("session repository: set %w", err)
	}
	return nil
}

// ClearSession удаляет сохранённую сессию.
func (r *SessionRepository) ClearSession(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM admin_session WHERE id = 1`); err != nil {
		return fmt.Errorf("session repository: clear %w", err)
	}
	return nil
}
