package tasks

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/eventdesk/backend/repository"
	"github.com/eventdesk/backend/usecase"
)

// Registry hands out one Board per event, loading it on first use.
type Registry struct {
	repo   repository.TaskRepository
	buffer usecase.AppendBuffer
	logger *zap.Logger
	clock  func() time.Time

	mu      sync.Mutex
	entries map[string]*registryEntry
}

// registryEntry latches the first load: callers arriving while it runs wait
// for the result instead of seeing an empty board.
type registryEntry struct {
	board *Board
	once  sync.Once
	err   error
}

func NewRegistry(repo repository.TaskRepository, buffer usecase.AppendBuffer, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		repo:    repo,
		buffer:  buffer,
		logger:  logger,
		clock:   time.Now,
		entries: make(map[string]*registryEntry),
	}
}

// ForEvent returns the board for the event, populating it on first access.
// A failed first load evicts the entry so a later call can retry.
func (r *Registry) ForEvent(ctx context.Context, eventID string) (*Board, error) {
	r.mu.Lock()
	entry, ok := r.entries[eventID]
	if !ok {
		entry = &registryEntry{board: NewBoard(eventID, r.repo, r.buffer, r.logger, r.clock)}
		r.entries[eventID] = entry
	}
	r.mu.Unlock()

	entry.once.Do(func() {
		entry.err = entry.board.Reload(ctx)
	})
	if entry.err != nil {
		r.mu.Lock()
		if r.entries[eventID] == entry {
			delete(r.entries, eventID)
		}
		r.mu.Unlock()
		return nil, entry.err
	}
	return entry.board, nil
}
