package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"personalblog/internal/models"
)

type sessionRepository struct {
	db *sqlx.DB
}

func NewSessionRepository(db *sqlx.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, session *models.Session) error {
	query := `
		INSERT INTO sessions (session_id, user_id, expires_at, created_at)
		VALUES (:session_id, :user_id, :expires_at, :created_at)
	`

	if session.SessionID == "" {
		session.SessionID = newID()
	}

	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.NamedExecContext(ctx, query, session)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	return nil
}

// GetValid returns the session only while it has not expired.
func (r *sessionRepository) GetValid(ctx context.Context, sessionID string, now time.Time) (*models.Session, error) {
	query := r.db.Rebind(`SELECT * FROM sessions WHERE session_id = ? AND expires_at > ?`)

	var session models.Session
	err := r.db.GetContext(ctx, &session, query, sessionID, now.UTC())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("session: %w", models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return &session, nil
}

func (r *sessionRepository) Delete(ctx context.Context, sessionID string) error {
	query := r.db.Rebind(`DELETE FROM sessions WHERE session_id = ?`)

	_, err := r.db.ExecContext(ctx, query, sessionID)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}

func (r *sessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	query := r.db.Rebind(`DELETE FROM sessions WHERE expires_at <= ?`)

	result, err := r.db.ExecContext(ctx, query, now.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}

	return result.RowsAffected()
}
