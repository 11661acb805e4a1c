package usecase

import (
	"context"

	"github.com/eventdesk/backend/domain"
)

// AppendBuffer absorbs append-only writes (comments, attachments) while the
// primary store is unreachable. Status changes are deliberately not part of
// this interface: a failed status write must surface to the caller with local
// state untouched, never linger in a queue.
type AppendBuffer interface {
	BufferComment(ctx context.Context, comment *domain.Comment) error
	BufferAttachment(ctx context.Context, attachment *domain.Attachment) error
}
