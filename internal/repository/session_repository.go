package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/monitoring-admin-api/internal/models"
)

// SessionRepository reads console sessions.
type SessionRepository struct {
	db *sqlx.DB
}

// NewSessionRepository constructs the repository.
func NewSessionRepository(db *sqlx.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// LastAccess returns the latest access time per user and session status. A user may
// appear once per status.
func (r *SessionRepository) LastAccess(ctx context.Context, userIDs []string) ([]models.UserSession, error) {
	if len(userIDs) == 0 {
		return []models.UserSession{}, nil
	}
	const query = `SELECT s.userid, MAX(s.lastaccess) AS lastaccess, s.status
FROM sessions s
WHERE s.userid = ANY($1::bigint[])
GROUP BY s.userid, s.status`
	var sessions []models.UserSession
	if err := r.db.SelectContext(ctx, &sessions, query, pq.Array(userIDs)); err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}
