package domain

import "time"

// Status enumerates the three task states shown on the dashboard board.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusDone       Status = "done"
)

// ParseStatus validates a raw status string coming from storage or a request.
func ParseStatus(raw string) (Status, error) {
	switch Status(raw) {
	case StatusTodo, StatusInProgress, StatusDone:
		return Status(raw), nil
	default:
		return "", NewError(ErrCodeInvalid, "unknown task status")
	}
}

// Task is a checklist item belonging to exactly one event.
//
// IsUrgent is derived state: it is recomputed from DueDate and Status on
// every read and never treated as authoritative when persisted.
type Task struct {
	ID          string       `json:"id"`
	EventID     string       `json:"event_id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Status      Status       `json:"status"`
	DueDate     time.Time    `json:"due_date"`
	Owner       string       `json:"owner"`
	Comments    []Comment    `json:"comments"`
	Attachments []Attachment `json:"attachments"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	IsUrgent    bool         `json:"is_urgent"`
}

// Refresh recomputes the derived urgency flag against the given reference time.
func (t *Task) Refresh(now time.Time) {
	if t == nil {
		return
	}
	t.IsUrgent = Urgent(t.DueDate, t.Status, now)
}

// Comment is an append-only note on a task.
type Comment struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"task_id,omitempty"`
	Content   string    `json:"content"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Attachment is a file reference attached to a task.
type Attachment struct {
	ID         string    `json:"id"`
	TaskID     string    `json:"task_id,omitempty"`
	Name       string    `json:"name"`
	URL        string    `json:"url"`
	MimeType   string    `json:"mime_type"`
	Size       int64     `json:"size"`
	UploadedBy string    `json:"uploaded_by"`
	UploadedAt time.Time `json:"uploaded_at"`
}
