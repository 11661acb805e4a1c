package tasks

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/eventdesk/backend/domain"
	"github.com/eventdesk/backend/repository"
	"github.com/eventdesk/backend/usecase"
)

// Board holds the in-memory task state for one event and coordinates every
// mutation with the task repository. Remote writes happen first; the local
// copy is only touched after the store confirms, so a failed write leaves the
// board exactly as it was.
type Board struct {
	eventID string
	repo    repository.TaskRepository
	buffer  usecase.AppendBuffer
	logger  *zap.Logger
	clock   func() time.Time

	mu         sync.RWMutex
	byID       map[string]*domain.Task
	loadSeq    uint64
	appliedSeq uint64
}

// NewBoard creates an empty board for the event. Call Reload to populate it.
func NewBoard(eventID string, repo repository.TaskRepository, buffer usecase.AppendBuffer, logger *zap.Logger, clock func() time.Time) *Board {
	if logger == nil {
		logger = zap.NewNop()
	}
	if clock == nil {
		clock = time.Now
	}
	return &Board{
		eventID: eventID,
		repo:    repo,
		buffer:  buffer,
		logger:  logger,
		clock:   clock,
		byID:    make(map[string]*domain.Task),
	}
}

// EventID returns the event this board belongs to.
func (b *Board) EventID() string {
	return b.eventID
}

// Reload fetches the event's tasks and replaces the in-memory state.
//
// Each reload carries a sequence number taken when the fetch starts. If a
// later-issued reload finishes first, the earlier response is discarded on
// arrival instead of overwriting newer state.
func (b *Board) Reload(ctx context.Context) error {
	b.mu.Lock()
	b.loadSeq++
	seq := b.loadSeq
	b.mu.Unlock()

	raws, err := b.repo.ListForEvent(ctx, b.eventID)
	if err != nil {
		return domain.PersistenceFailure(err)
	}

	now := b.clock()
	loaded := make(map[string]*domain.Task, len(raws))
	for _, raw := range raws {
		task, err := domain.ParseTask(raw, now)
		if err != nil {
			// Skip policy: one malformed row must not hide the rest of
			// the checklist.
			b.logger.Warn("skipping malformed task row",
				zap.String("task_id", raw.ID),
				zap.String("event_id", b.eventID),
				zap.Error(err))
			continue
		}
		loaded[task.ID] = task
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if seq < b.appliedSeq {
		b.logger.Debug("discarding stale task list response",
			zap.Uint64("seq", seq),
			zap.Uint64("applied", b.appliedSeq))
		return nil
	}
	b.appliedSeq = seq
	b.byID = loaded
	return nil
}

// ChangeStatus persists the transition and then applies it locally.
//
// All six transitions between distinct states are legal and done is not
// terminal. Re-setting the current status is also legal and re-stamps
// updated_at. On persistence failure the in-memory task is left untouched
// and the error distinguishes the failure kind for the caller.
func (b *Board) ChangeStatus(ctx context.Context, taskID string, status domain.Status) (*domain.Task, error) {
	if _, err := domain.ParseStatus(string(status)); err != nil {
		return nil, err
	}

	b.mu.RLock()
	_, held := b.byID[taskID]
	b.mu.RUnlock()
	if !held {
		return nil, domain.ErrTaskNotFound
	}

	updatedAt := b.clock()
	if err := b.repo.UpdateStatus(ctx, taskID, status, updatedAt); err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, domain.PersistenceFailure(err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	task, ok := b.byID[taskID]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	task.Status = status
	task.UpdatedAt = updatedAt
	task.Refresh(b.clock())
	copied := cloneTask(task)
	return &copied, nil
}

// AddComment appends a comment to the task, falling back to the offline
// buffer when the store is unreachable. Appends are safe to replay, unlike
// status changes.
func (b *Board) AddComment(ctx context.Context, taskID, userID, content string) (*domain.Comment, error) {
	if content == "" {
		return nil, domain.ErrInvalidPayload
	}
	b.mu.RLock()
	_, held := b.byID[taskID]
	b.mu.RUnlock()
	if !held {
		return nil, domain.ErrTaskNotFound
	}

	comment := &domain.Comment{
		ID:        uuid.NewString(),
		TaskID:    taskID,
		Content:   content,
		UserID:    userID,
		CreatedAt: b.clock(),
	}

	if err := b.repo.AddComment(ctx, comment); err != nil {
		if b.buffer == nil {
			return nil, domain.PersistenceFailure(err)
		}
		if bufErr := b.buffer.BufferComment(ctx, comment); bufErr != nil {
			b.logger.Error("failed to buffer comment", zap.Error(bufErr))
			return nil, domain.PersistenceFailure(err)
		}
		b.logger.Warn("comment buffered for later sync", zap.String("task_id", taskID), zap.Error(err))
	}

	b.mu.Lock()
	if task, ok := b.byID[taskID]; ok {
		task.Comments = append(task.Comments, *comment)
	}
	b.mu.Unlock()
	return comment, nil
}

// AddAttachment appends an attachment reference to the task, with the same
// offline-buffer fallback as AddComment.
func (b *Board) AddAttachment(ctx context.Context, attachment *domain.Attachment) (*domain.Attachment, error) {
	if attachment == nil || attachment.Name == "" || attachment.URL == "" {
		return nil, domain.ErrInvalidPayload
	}
	b.mu.RLock()
	_, held := b.byID[attachment.TaskID]
	b.mu.RUnlock()
	if !held {
		return nil, domain.ErrTaskNotFound
	}

	if attachment.ID == "" {
		attachment.ID = uuid.NewString()
	}
	if attachment.UploadedAt.IsZero() {
		attachment.UploadedAt = b.clock()
	}

	if err := b.repo.AddAttachment(ctx, attachment); err != nil {
		if b.buffer == nil {
			return nil, domain.PersistenceFailure(err)
		}
		if bufErr := b.buffer.BufferAttachment(ctx, attachment); bufErr != nil {
			b.logger.Error("failed to buffer attachment", zap.Error(bufErr))
			return nil, domain.PersistenceFailure(err)
		}
		b.logger.Warn("attachment buffered for later sync", zap.String("task_id", attachment.TaskID), zap.Error(err))
	}

	b.mu.Lock()
	if task, ok := b.byID[attachment.TaskID]; ok {
		task.Attachments = append(task.Attachments, *attachment)
	}
	b.mu.Unlock()
	return attachment, nil
}

// Visible returns the filtered, sorted task list. Urgency is recomputed on
// every call so overdue tasks surface without waiting for a reload.
func (b *Board) Visible(filter domain.Filter) []domain.Task {
	return domain.VisibleTasks(b.snapshot(), filter)
}

// Get returns a copy of a single task with fresh urgency.
func (b *Board) Get(taskID string) (*domain.Task, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	task, ok := b.byID[taskID]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	copied := cloneTask(task)
	copied.Refresh(b.clock())
	return &copied, nil
}

// Owners lists the distinct owner labels on the board, for the filter bar.
func (b *Board) Owners() []string {
	return domain.Owners(b.snapshot())
}

// Overview computes the dashboard header numbers.
func (b *Board) Overview(eventDate *time.Time) domain.Overview {
	return domain.Summarize(b.snapshot(), eventDate, b.clock())
}

// snapshot copies the board into a slice ordered by creation time (id as a
// tie-break) with urgency recomputed against the current clock.
func (b *Board) snapshot() []domain.Task {
	now := b.clock()

	b.mu.RLock()
	tasks := make([]domain.Task, 0, len(b.byID))
	for _, task := range b.byID {
		copied := cloneTask(task)
		copied.Refresh(now)
		tasks = append(tasks, copied)
	}
	b.mu.RUnlock()

	sort.Slice(tasks, func(i, j int) bool {
		if !tasks[i].CreatedAt.Equal(tasks[j].CreatedAt) {
			return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
		}
		return tasks[i].ID < tasks[j].ID
	})
	return tasks
}

func cloneTask(task *domain.Task) domain.Task {
	copied := *task
	copied.Comments = append([]domain.Comment(nil), task.Comments...)
	copied.Attachments = append([]domain.Attachment(nil), task.Attachments...)
	return copied
}
