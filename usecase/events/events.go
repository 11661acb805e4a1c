package events

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/eventdesk/backend/domain"
	"github.com/eventdesk/backend/repository"
)

// UseCase owns the event lifecycle: one active event per account, seeded
// from the checklist template set.
type UseCase struct {
	events repository.EventRepository
	logger *zap.Logger
}

func New(events repository.EventRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{events: events, logger: logger}
}

// GetOrCreate returns the owner's latest event. When none exists a new one
// is created with the fallback date and the template set instantiated
// against it in a single transaction, so a failure leaves neither an event
// nor tasks behind. The boolean reports whether a new event was created.
func (uc *UseCase) GetOrCreate(ctx context.Context, ownerID string, fallbackDate time.Time) (*domain.Event, bool, error) {
	event, err := uc.events.LatestByOwner(ctx, ownerID)
	if err == nil {
		return event, false, nil
	}
	if !errors.Is(err, domain.ErrEventNotFound) {
		return nil, false, domain.PersistenceFailure(err)
	}

	event, count, err := uc.events.CreateWithChecklist(ctx, ownerID, fallbackDate)
	if err != nil {
		return nil, false, domain.PersistenceFailure(err)
	}
	uc.logger.Info("event created with generated checklist",
		zap.String("event_id", event.ID),
		zap.String("owner_id", ownerID),
		zap.Int("tasks", count))
	return event, true, nil
}

// Get returns the event by id.
func (uc *UseCase) Get(ctx context.Context, eventID string) (*domain.Event, error) {
	event, err := uc.events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			return nil, err
		}
		return nil, domain.PersistenceFailure(err)
	}
	return event, nil
}

// Generate re-runs template instantiation for an existing event. The
// repository guarantees all-or-nothing semantics.
func (uc *UseCase) Generate(ctx context.Context, eventID string) (int, error) {
	count, err := uc.events.Generate(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			return 0, err
		}
		return 0, domain.PersistenceFailure(err)
	}
	return count, nil
}

// Templates lists the checklist blueprint set.
func (uc *UseCase) Templates(ctx context.Context) ([]domain.TaskTemplate, error) {
	templates, err := uc.events.ListTemplates(ctx)
	if err != nil {
		return nil, domain.PersistenceFailure(err)
	}
	return templates, nil
}
