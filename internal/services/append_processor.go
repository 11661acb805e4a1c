package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/eventdesk/backend/domain"
	"github.com/eventdesk/backend/internal/infrastructure/buffer"
	"github.com/eventdesk/backend/repository"
)

// ConnectionHealth abstracts the connection monitor functionality.
type ConnectionHealth interface {
	IsOnline() bool
}

// ProcessorConfig controls how frequently buffered appends are replayed.
type ProcessorConfig struct {
	Interval   time.Duration
	BatchSize  int
	MaxRetries int
}

// AppendProcessor replays buffered comments and attachments against Postgres
// once it is reachable again. Only append-only writes flow through here.
type AppendProcessor struct {
	store   *buffer.Store
	monitor ConnectionHealth
	tasks   repository.TaskRepository
	logger  *zap.Logger
	cron    *cron.Cron
	cfg     ProcessorConfig
}

func NewAppendProcessor(
	store *buffer.Store,
	monitor ConnectionHealth,
	tasks repository.TaskRepository,
	logger *zap.Logger,
	cfg ProcessorConfig,
) *AppendProcessor {
	if cfg.Interval <= 0 {
		cfg.Interval = 30 * time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	ap := &AppendProcessor{
		store:   store,
		monitor: monitor,
		tasks:   tasks,
		logger:  logger,
		cfg:     cfg,
		cron:    cron.New(cron.WithSeconds()),
	}

	schedule := fmt.Sprintf("@every %ds", int(cfg.Interval.Seconds()))
	_, _ = ap.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Interval)
		defer cancel()
		if err := ap.Drain(ctx); err != nil {
			ap.logger.Error("append buffer drain failed", zap.Error(err))
		}
	})

	return ap
}

// Start launches the cron scheduler.
func (ap *AppendProcessor) Start() {
	if ap == nil || ap.cron == nil {
		return
	}
	ap.cron.Start()
	ap.logger.Info("append processor started")
}

// Stop gracefully stops the scheduler.
func (ap *AppendProcessor) Stop(ctx context.Context) {
	if ap == nil || ap.cron == nil {
		return
	}
	stopCtx := ap.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	ap.logger.Info("append processor stopped")
}

// Drain replays buffered items synchronously.
func (ap *AppendProcessor) Drain(ctx context.Context) error {
	if ap == nil || ap.store == nil {
		return nil
	}
	if ap.monitor != nil && !ap.monitor.IsOnline() {
		ap.logger.Debug("skipping append drain (offline)")
		return nil
	}

	items, err := ap.store.GetBatch(ap.cfg.BatchSize)
	if err != nil {
		return err
	}

	for _, item := range items {
		if err := ap.replay(ctx, item); err != nil {
			ap.logger.Error("failed to replay buffered append",
				zap.String("item_id", item.ID),
				zap.String("entity", item.Entity),
				zap.Error(err))

			item.Retries++
			if item.Retries >= ap.cfg.MaxRetries {
				ap.logger.Warn("dropping buffered append (max retries reached)", zap.String("item_id", item.ID))
				_ = ap.store.Remove(item)
				continue
			}

			if err := ap.store.Remove(item); err != nil {
				ap.logger.Warn("failed to remove buffered append", zap.Error(err))
			}
			if err := ap.store.Requeue(item); err != nil {
				ap.logger.Error("failed to requeue buffered append", zap.Error(err))
			}
			continue
		}

		if err := ap.store.Remove(item); err != nil {
			ap.logger.Warn("failed to purge replayed append", zap.Error(err))
		}
	}
	return nil
}

// Buffer persists an append for later replay.
func (ap *AppendProcessor) Buffer(item buffer.Item) error {
	if ap == nil || ap.store == nil {
		return fmt.Errorf("append processor not configured")
	}
	return ap.store.Enqueue(item)
}

// Size returns the number of buffered items.
func (ap *AppendProcessor) Size() int {
	if ap == nil || ap.store == nil {
		return 0
	}
	size, err := ap.store.Size()
	if err != nil {
		return 0
	}
	return size
}

func (ap *AppendProcessor) replay(ctx context.Context, item buffer.Item) error {
	if ctx == nil {
		ctx = context.Background()
	}

	switch item.Entity {
	case buffer.EntityComment:
		var comment domain.Comment
		if err := json.Unmarshal(item.Data, &comment); err != nil {
			return err
		}
		err := ap.tasks.AddComment(ctx, &comment)
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			// Parent task is gone; nothing left to replay.
			ap.logger.Warn("buffered comment references a missing task", zap.String("task_id", comment.TaskID))
			return nil
		}
		return err

	case buffer.EntityAttachment:
		var attachment domain.Attachment
		if err := json.Unmarshal(item.Data, &attachment); err != nil {
			return err
		}
		err := ap.tasks.AddAttachment(ctx, &attachment)
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			ap.logger.Warn("buffered attachment references a missing task", zap.String("task_id", attachment.TaskID))
			return nil
		}
		return err

	default:
		return fmt.Errorf("unsupported entity %s", item.Entity)
	}
}
