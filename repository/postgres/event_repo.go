package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eventdesk/backend/domain"
	"github.com/eventdesk/backend/repository"
)

type eventRepository struct {
	pool *pgxpool.Pool
}

// NewEventRepository returns a Postgres-backed implementation of EventRepository.
func NewEventRepository(pool *pgxpool.Pool) repository.EventRepository {
	return &eventRepository{pool: pool}
}

func (r *eventRepository) LatestByOwner(ctx context.Context, ownerID string) (*domain.Event, error) {
	const query = `
	SELECT id, owner_id, event_date, created_at
	FROM events
	WHERE owner_id = $1
	ORDER BY created_at DESC
	LIMIT 1`

	return scanEvent(r.pool.QueryRow(ctx, query, ownerID))
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	const query = `
	SELECT id, owner_id, event_date, created_at
	FROM events
	WHERE id = $1`

	return scanEvent(r.pool.QueryRow(ctx, query, id))
}

// CreateWithChecklist inserts the event and expands the template set against
// it in the same transaction, so a half-created event can never be observed.
func (r *eventRepository) CreateWithChecklist(ctx context.Context, ownerID string, eventDate time.Time) (*domain.Event, int, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, 0, err
	}
	defer tx.Rollback(ctx)

	event, err := scanEvent(tx.QueryRow(ctx, `
	INSERT INTO events (id, owner_id, event_date)
	VALUES (gen_random_uuid(), $1, $2)
	RETURNING id, owner_id, event_date, created_at`, ownerID, eventDate))
	if err != nil {
		return nil, 0, err
	}

	count, err := instantiateInTx(ctx, tx, *event)
	if err != nil {
		return nil, 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, 0, err
	}
	return event, count, nil
}

// Generate expands the template set into tasks for an existing event inside
// one transaction. A failure on any insert rolls back the whole batch.
func (r *eventRepository) Generate(ctx context.Context, eventID string) (int, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	event, err := scanEvent(tx.QueryRow(ctx, `
	SELECT id, owner_id, event_date, created_at
	FROM events
	WHERE id = $1
	FOR UPDATE`, eventID))
	if err != nil {
		return 0, err
	}

	count, err := instantiateInTx(ctx, tx, *event)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return count, nil
}

func instantiateInTx(ctx context.Context, tx pgx.Tx, event domain.Event) (int, error) {
	templates, err := listTemplates(ctx, tx)
	if err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	tasks := domain.InstantiateTemplates(templates, event, now)

	const insert = `
	INSERT INTO tasks (id, event_id, title, description, status, due_date, owner, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	batch := &pgx.Batch{}
	for _, task := range tasks {
		batch.Queue(insert,
			task.ID,
			task.EventID,
			task.Title,
			nullString(task.Description),
			string(task.Status),
			task.DueDate,
			nullString(task.Owner),
			task.CreatedAt,
			task.UpdatedAt,
		)
	}

	results := tx.SendBatch(ctx, batch)
	for range tasks {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return 0, err
		}
	}
	if err := results.Close(); err != nil {
		return 0, err
	}
	return len(tasks), nil
}

func (r *eventRepository) ListTemplates(ctx context.Context) ([]domain.TaskTemplate, error) {
	return listTemplates(ctx, r.pool)
}

type queryer interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
}

func listTemplates(ctx context.Context, q queryer) ([]domain.TaskTemplate, error) {
	const query = `
	SELECT id, title, description, default_owner, due_in_days
	FROM task_templates
	ORDER BY due_in_days, title`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []domain.TaskTemplate
	for rows.Next() {
		var tpl domain.TaskTemplate
		if err := rows.Scan(&tpl.ID, &tpl.Title, &tpl.Description, &tpl.DefaultOwner, &tpl.DueInDays); err != nil {
			return nil, err
		}
		templates = append(templates, tpl)
	}
	return templates, rows.Err()
}

func scanEvent(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Event, error) {
	var event domain.Event
	if err := row.Scan(&event.ID, &event.OwnerID, &event.EventDate, &event.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEventNotFound
		}
		return nil, err
	}
	return &event, nil
}
