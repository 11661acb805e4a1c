package repository

import (
	"context"

	"github.com/eventdesk/backend/domain"
)

// SessionRepository persists signed-in sessions. Save is also the refresh
// path: rewriting the payload keeps the stored expiry and the key TTL in
// step, where a bare TTL bump would leave a stale expiry inside the payload.
type SessionRepository interface {
	Get(ctx context.Context, id string) (*domain.Session, error)
	Save(ctx context.Context, session *domain.Session) error
	Delete(ctx context.Context, id string) error
}
