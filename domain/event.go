package domain

import (
	"time"

	"github.com/google/uuid"
)

// Event is a single scheduled occasion owning a set of tasks. One event is
// expected per owning account at a time; the latest-created one wins when
// several exist.
type Event struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	EventDate time.Time `json:"event_date"`
	CreatedAt time.Time `json:"created_at"`
}

// TaskTemplate is a reusable blueprint used to seed a new event's checklist.
// DueInDays is relative to the event date and may be negative, meaning the
// task is due before the event.
type TaskTemplate struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	DefaultOwner string `json:"default_owner"`
	DueInDays    int    `json:"due_in_days"`
}

// InstantiateTemplates expands the template set into concrete tasks for the
// event. Every generated task starts in todo with the template's default
// owner and a due date offset from the event date.
func InstantiateTemplates(templates []TaskTemplate, event Event, now time.Time) []Task {
	tasks := make([]Task, 0, len(templates))
	for _, tpl := range templates {
		due := event.EventDate.AddDate(0, 0, tpl.DueInDays)
		task := Task{
			ID:          uuid.NewString(),
			EventID:     event.ID,
			Title:       tpl.Title,
			Description: tpl.Description,
			Status:      StatusTodo,
			DueDate:     due,
			Owner:       tpl.DefaultOwner,
			Comments:    []Comment{},
			Attachments: []Attachment{},
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		task.Refresh(now)
		tasks = append(tasks, task)
	}
	return tasks
}
