package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/eventdesk/backend/domain"
)

type fakeEventRepo struct {
	latest      *domain.Event
	createErr   error
	generateErr error

	created   []time.Time
	generated []string
}

// CreateWithChecklist mirrors the real repository's transaction: a failure
// persists nothing, so no orphan event can be left behind.
func (f *fakeEventRepo) CreateWithChecklist(ctx context.Context, ownerID string, eventDate time.Time) (*domain.Event, int, error) {
	if f.createErr != nil {
		return nil, 0, f.createErr
	}
	f.created = append(f.created, eventDate)
	event := &domain.Event{ID: "new-event", OwnerID: ownerID, EventDate: eventDate, CreatedAt: time.Now()}
	f.latest = event
	f.generated = append(f.generated, event.ID)
	return event, 8, nil
}

func (f *fakeEventRepo) LatestByOwner(ctx context.Context, ownerID string) (*domain.Event, error) {
	if f.latest == nil {
		return nil, domain.ErrEventNotFound
	}
	return f.latest, nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if f.latest != nil && f.latest.ID == id {
		return f.latest, nil
	}
	return nil, domain.ErrEventNotFound
}

func (f *fakeEventRepo) Generate(ctx context.Context, eventID string) (int, error) {
	if f.generateErr != nil {
		return 0, f.generateErr
	}
	f.generated = append(f.generated, eventID)
	return 8, nil
}

func (f *fakeEventRepo) ListTemplates(ctx context.Context) ([]domain.TaskTemplate, error) {
	return nil, nil
}

func TestGetOrCreate_ExistingEventWins(t *testing.T) {
	existing := &domain.Event{ID: "e1", OwnerID: "o1"}
	repo := &fakeEventRepo{latest: existing}
	uc := New(repo, nil)

	event, created, err := uc.GetOrCreate(context.Background(), "o1", time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created {
		t.Error("no event should be created when one exists")
	}
	if event.ID != "e1" {
		t.Errorf("expected existing event, got %s", event.ID)
	}
	if len(repo.generated) != 0 {
		t.Error("templates must not be re-instantiated for an existing event")
	}
}

func TestGetOrCreate_CreatesAndGenerates(t *testing.T) {
	repo := &fakeEventRepo{}
	uc := New(repo, nil)
	fallback := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	event, created, err := uc.GetOrCreate(context.Background(), "o1", fallback)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Error("expected a new event to be reported as created")
	}
	if len(repo.created) != 1 || !repo.created[0].Equal(fallback) {
		t.Errorf("expected event created with fallback date %s, got %v", fallback, repo.created)
	}
	if len(repo.generated) != 1 || repo.generated[0] != event.ID {
		t.Errorf("expected checklist generated for %s, got %v", event.ID, repo.generated)
	}
}

func TestGetOrCreate_CreationFailureSurfaces(t *testing.T) {
	repo := &fakeEventRepo{createErr: errors.New("deadlock")}
	uc := New(repo, nil)

	_, _, err := uc.GetOrCreate(context.Background(), "o1", time.Now())
	if !domain.IsDomainError(err, domain.ErrCodeUnavailable) {
		t.Fatalf("expected UNAVAILABLE, got %v", err)
	}
}

func TestGetOrCreate_FailedCreationLeavesNoOrphanEvent(t *testing.T) {
	repo := &fakeEventRepo{createErr: errors.New("deadlock")}
	uc := New(repo, nil)
	fallback := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	if _, _, err := uc.GetOrCreate(context.Background(), "o1", fallback); err == nil {
		t.Fatal("expected the first call to fail")
	}
	if repo.latest != nil {
		t.Fatal("a failed creation must not persist an event")
	}

	// The next attempt must start over: create the event and its checklist
	// together, never hand back an event with an empty board.
	repo.createErr = nil
	event, created, err := uc.GetOrCreate(context.Background(), "o1", fallback)
	if err != nil {
		t.Fatalf("unexpected error on retry: %v", err)
	}
	if !created {
		t.Error("retry should report a freshly created event")
	}
	if len(repo.generated) != 1 || repo.generated[0] != event.ID {
		t.Errorf("expected checklist generated for %s on retry, got %v", event.ID, repo.generated)
	}
}

func TestGenerate_NotFoundPassesThrough(t *testing.T) {
	repo := &fakeEventRepo{generateErr: domain.ErrEventNotFound}
	uc := New(repo, nil)

	_, err := uc.Generate(context.Background(), "missing")
	if !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}
