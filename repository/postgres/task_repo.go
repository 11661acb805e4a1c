package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eventdesk/backend/domain"
	"github.com/eventdesk/backend/repository"
)

const taskColumns = `
	t.id, t.event_id, t.title, t.description, t.status, t.due_date, t.owner,
	(
		SELECT COALESCE(jsonb_agg(jsonb_build_object(
			'id', c.id,
			'task_id', c.task_id,
			'content', c.content,
			'user_id', c.user_id,
			'user_name', u.name,
			'created_at', c.created_at
		) ORDER BY c.created_at), '[]'::jsonb)
		FROM comments c
		LEFT JOIN users u ON u.id = c.user_id
		WHERE c.task_id = t.id
	),
	(
		SELECT COALESCE(jsonb_agg(jsonb_build_object(
			'id', a.id,
			'task_id', a.task_id,
			'name', a.name,
			'url', a.url,
			'mime_type', a.mime_type,
			'size', a.size,
			'uploaded_by', a.uploaded_by,
			'uploaded_at', a.uploaded_at
		) ORDER BY a.uploaded_at), '[]'::jsonb)
		FROM attachments a
		WHERE a.task_id = t.id
	),
	t.created_at, t.updated_at`

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository returns a Postgres-backed implementation of TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) repository.TaskRepository {
	return &taskRepository{pool: pool}
}

func (r *taskRepository) ListForEvent(ctx context.Context, eventID string) ([]domain.RawTask, error) {
	query := `SELECT` + taskColumns + `
	FROM tasks t
	WHERE t.event_id = $1
	ORDER BY t.created_at`

	rows, err := r.pool.Query(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []domain.RawTask
	for rows.Next() {
		raw, err := scanRawTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *raw)
	}
	return tasks, rows.Err()
}

func (r *taskRepository) GetByID(ctx context.Context, id string) (*domain.RawTask, error) {
	query := `SELECT` + taskColumns + `
	FROM tasks t
	WHERE t.id = $1`

	return scanRawTask(r.pool.QueryRow(ctx, query, id))
}

func (r *taskRepository) UpdateStatus(ctx context.Context, id string, status domain.Status, updatedAt time.Time) error {
	const query = `
	UPDATE tasks
	SET status = $2, updated_at = $3
	WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id, string(status), updatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *taskRepository) AddComment(ctx context.Context, comment *domain.Comment) error {
	if comment == nil || comment.TaskID == "" {
		return domain.ErrInvalidPayload
	}
	if comment.ID == "" {
		comment.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO comments (id, task_id, content, user_id, created_at)
	VALUES ($1, $2, $3, $4, COALESCE($5, NOW()))
	RETURNING created_at`

	err := r.pool.QueryRow(ctx, query,
		comment.ID,
		comment.TaskID,
		comment.Content,
		comment.UserID,
		nullTime(comment.CreatedAt),
	).Scan(&comment.CreatedAt)
	if isTaskFKViolation(err) {
		return domain.ErrTaskNotFound
	}
	return err
}

func (r *taskRepository) AddAttachment(ctx context.Context, attachment *domain.Attachment) error {
	if attachment == nil || attachment.TaskID == "" {
		return domain.ErrInvalidPayload
	}
	if attachment.ID == "" {
		attachment.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO attachments (id, task_id, name, url, mime_type, size, uploaded_by, uploaded_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, COALESCE($8, NOW()))
	RETURNING uploaded_at`

	err := r.pool.QueryRow(ctx, query,
		attachment.ID,
		attachment.TaskID,
		attachment.Name,
		attachment.URL,
		attachment.MimeType,
		attachment.Size,
		attachment.UploadedBy,
		nullTime(attachment.UploadedAt),
	).Scan(&attachment.UploadedAt)
	if isTaskFKViolation(err) {
		return domain.ErrTaskNotFound
	}
	return err
}

func scanRawTask(row interface {
	Scan(dest ...interface{}) error
}) (*domain.RawTask, error) {
	var raw domain.RawTask
	if err := row.Scan(
		&raw.ID,
		&raw.EventID,
		&raw.Title,
		&raw.Description,
		&raw.Status,
		&raw.DueDate,
		&raw.Owner,
		&raw.Comments,
		&raw.Attachments,
		&raw.CreatedAt,
		&raw.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	return &raw, nil
}
