package buffer

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	EntityComment    = "comment"
	EntityAttachment = "attachment"
)

// Item is an append-only write waiting to be replayed against the primary
// store. Only comments and attachments are ever buffered; status changes are
// not safe to replay and never land here.
type Item struct {
	ID        string          `json:"id"`
	TaskID    string          `json:"task_id"`
	Entity    string          `json:"entity"`
	Data      json.RawMessage `json:"data"`
	Retries   int             `json:"retries"`
	Timestamp time.Time       `json:"timestamp"`

	bucketKey []byte
}

func (i *Item) normalize() {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	if i.Timestamp.IsZero() {
		i.Timestamp = time.Now()
	}
}
