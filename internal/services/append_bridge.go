package services

import (
	"context"
	"encoding/json"

	"github.com/eventdesk/backend/domain"
	"github.com/eventdesk/backend/internal/infrastructure/buffer"
	"github.com/eventdesk/backend/usecase"
)

// AppendBridge adapts the append processor to the use-case buffer port.
type AppendBridge struct {
	processor *AppendProcessor
}

func NewAppendBridge(processor *AppendProcessor) *AppendBridge {
	return &AppendBridge{processor: processor}
}

func (b *AppendBridge) BufferComment(ctx context.Context, comment *domain.Comment) error {
	if b.processor == nil || comment == nil {
		return domain.ErrInvalidPayload
	}
	payload, err := json.Marshal(comment)
	if err != nil {
		return err
	}
	return b.processor.Buffer(buffer.Item{
		ID:     comment.ID,
		TaskID: comment.TaskID,
		Entity: buffer.EntityComment,
		Data:   payload,
	})
}

func (b *AppendBridge) BufferAttachment(ctx context.Context, attachment *domain.Attachment) error {
	if b.processor == nil || attachment == nil {
		return domain.ErrInvalidPayload
	}
	payload, err := json.Marshal(attachment)
	if err != nil {
		return err
	}
	return b.processor.Buffer(buffer.Item{
		ID:     attachment.ID,
		TaskID: attachment.TaskID,
		Entity: buffer.EntityAttachment,
		Data:   payload,
	})
}

var _ usecase.AppendBuffer = (*AppendBridge)(nil)
