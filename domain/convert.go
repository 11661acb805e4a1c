package domain

import (
	"encoding/json"
	"time"
)

// RawTask mirrors a persisted task row before validation. Optional columns
// arrive as nil pointers and the nested collections as raw JSON, exactly the
// shape the storage layer hands over.
type RawTask struct {
	ID          string
	EventID     string
	Title       string
	Description *string
	Status      string
	DueDate     *time.Time
	Owner       *string
	Comments    json.RawMessage
	Attachments json.RawMessage
	CreatedAt   *time.Time
	UpdatedAt   *time.Time
}

// ParseTask converts a raw row into a Task, applying the defaulting rules for
// optional fields and rejecting rows whose dates or status are unusable.
//
// Missing description and owner default to empty strings. Comments and
// attachments default to empty slices unless the raw value is a JSON array.
// A missing due, created or updated timestamp is a validation error: silently
// substituting "now" would corrupt urgency and ordering downstream. The
// urgency flag is always computed here, never read from the row.
func ParseTask(raw RawTask, now time.Time) (*Task, error) {
	if raw.ID == "" {
		return nil, NewError(ErrCodeInvalid, "task row missing id")
	}

	status, err := ParseStatus(raw.Status)
	if err != nil {
		return nil, err
	}

	if raw.DueDate == nil {
		return nil, NewError(ErrCodeInvalid, "task row missing due date")
	}
	if raw.CreatedAt == nil || raw.UpdatedAt == nil {
		return nil, NewError(ErrCodeInvalid, "task row missing audit timestamps")
	}

	task := &Task{
		ID:          raw.ID,
		EventID:     raw.EventID,
		Title:       raw.Title,
		Status:      status,
		DueDate:     *raw.DueDate,
		Comments:    decodeComments(raw.Comments),
		Attachments: decodeAttachments(raw.Attachments),
		CreatedAt:   *raw.CreatedAt,
		UpdatedAt:   *raw.UpdatedAt,
	}
	if raw.Description != nil {
		task.Description = *raw.Description
	}
	if raw.Owner != nil {
		task.Owner = *raw.Owner
	}
	task.Refresh(now)
	return task, nil
}

func decodeComments(raw json.RawMessage) []Comment {
	var comments []Comment
	if len(raw) == 0 || json.Unmarshal(raw, &comments) != nil || comments == nil {
		return []Comment{}
	}
	return comments
}

func decodeAttachments(raw json.RawMessage) []Attachment {
	var attachments []Attachment
	if len(raw) == 0 || json.Unmarshal(raw, &attachments) != nil || attachments == nil {
		return []Attachment{}
	}
	return attachments
}
