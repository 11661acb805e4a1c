package repository

import (
	"context"
	"time"

	"github.com/eventdesk/backend/domain"
)

// EventRepository persists events and the template set used to seed them.
type EventRepository interface {
	// LatestByOwner returns the most recently created event for the owner,
	// or domain.ErrEventNotFound when none exists.
	LatestByOwner(ctx context.Context, ownerID string) (*domain.Event, error)
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	// CreateWithChecklist inserts the event and instantiates the full template
	// set against it in one transaction. A failure on any insert leaves no
	// event and no tasks behind.
	CreateWithChecklist(ctx context.Context, ownerID string, eventDate time.Time) (*domain.Event, int, error)
	// Generate instantiates the full template set against an existing event
	// inside a single transaction: either every task is created or none is.
	Generate(ctx context.Context, eventID string) (int, error)
	ListTemplates(ctx context.Context) ([]domain.TaskTemplate, error)
}
