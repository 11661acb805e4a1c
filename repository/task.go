package repository

import (
	"context"
	"time"

	"github.com/eventdesk/backend/domain"
)

// TaskRepository persists tasks for the dashboard board. Listing returns raw
// rows on purpose: validation and urgency derivation happen in the domain
// conversion step, not in storage.
type TaskRepository interface {
	ListForEvent(ctx context.Context, eventID string) ([]domain.RawTask, error)
	GetByID(ctx context.Context, id string) (*domain.RawTask, error)
	UpdateStatus(ctx context.Context, id string, status domain.Status, updatedAt time.Time) error
	AddComment(ctx context.Context, comment *domain.Comment) error
	AddAttachment(ctx context.Context, attachment *domain.Attachment) error
}
