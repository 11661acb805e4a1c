package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/eventdesk/backend/api/transport"
	"github.com/eventdesk/backend/domain"
	"github.com/eventdesk/backend/pkg/httpcontext"
	eventsUC "github.com/eventdesk/backend/usecase/events"
	tasksUC "github.com/eventdesk/backend/usecase/tasks"
)

// defaultEventHorizon is how far out a fresh event is scheduled when the
// account has none yet.
const defaultEventHorizon = 30 * 24 * time.Hour

type TaskHandler struct {
	baseHandler
	boards *tasksUC.Registry
	events *eventsUC.UseCase
}

func NewTaskHandler(boards *tasksUC.Registry, events *eventsUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		baseHandler: newBaseHandler(adapter, logger),
		boards:      boards,
		events:      events,
	}
}

// board resolves the caller's active event and its task board, creating and
// seeding the event on first access.
func (h *TaskHandler) board(ctx context.Context, ownerID string) (*tasksUC.Board, *domain.Event, error) {
	event, created, err := h.events.GetOrCreate(ctx, ownerID, time.Now().Add(defaultEventHorizon))
	if err != nil {
		return nil, nil, err
	}
	if created {
		h.logger.Info("seeded event on first access", zap.String("event_id", event.ID), zap.String("owner_id", ownerID))
	}
	board, err := h.boards.ForEvent(ctx, event.ID)
	if err != nil {
		return nil, nil, err
	}
	return board, event, nil
}

// @Summary List tasks for the caller's event
// @Tags tasks
// @Param q query string false "search in title and description"
// @Param owner query string false "exact owner filter"
// @Param status query string false "todo, in-progress or done"
// @Router /api/v1/tasks [get]
func (h *TaskHandler) List(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	filter := domain.Filter{
		Search: string(ctx.QueryArgs().Peek("q")),
		Owner:  string(ctx.QueryArgs().Peek("owner")),
	}
	if raw := string(ctx.QueryArgs().Peek("status")); raw != "" {
		status, err := domain.ParseStatus(raw)
		if err != nil {
			h.badRequest(ctx, "unknown status filter")
			return
		}
		filter.Status = status
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	board, _, err := h.board(stdCtx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, board.Visible(filter))
}

// @Summary Fetch a single task
// @Tags tasks
// @Router /api/v1/tasks/{id} [get]
func (h *TaskHandler) Get(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	taskID, ok := ctx.UserValue("id").(string)
	if !ok || taskID == "" {
		h.badRequest(ctx, "missing task id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	board, _, err := h.board(stdCtx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	task, err := board.Get(taskID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, task)
}

// @Summary Move a task to another status
// @Tags tasks
// @Router /api/v1/tasks/{id}/status [patch]
func (h *TaskHandler) ChangeStatus(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	taskID, ok := ctx.UserValue("id").(string)
	if !ok || taskID == "" {
		h.badRequest(ctx, "missing task id")
		return
	}

	var req transport.StatusChangeRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.badRequest(ctx, "malformed request body")
		return
	}
	status, err := domain.ParseStatus(req.Status)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	board, _, err := h.board(stdCtx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	task, err := board.ChangeStatus(stdCtx, taskID, status)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, task)
}

// @Summary Append a comment to a task
// @Tags tasks
// @Router /api/v1/tasks/{id}/comments [post]
func (h *TaskHandler) AddComment(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	taskID, ok := ctx.UserValue("id").(string)
	if !ok || taskID == "" {
		h.badRequest(ctx, "missing task id")
		return
	}

	var req transport.CommentRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.Content == "" {
		h.badRequest(ctx, "comment content is required")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	board, _, err := h.board(stdCtx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	comment, err := board.AddComment(stdCtx, taskID, userID, req.Content)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, comment)
}

// @Summary Register an attachment on a task
// @Tags tasks
// @Router /api/v1/tasks/{id}/attachments [post]
func (h *TaskHandler) AddAttachment(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	taskID, ok := ctx.UserValue("id").(string)
	if !ok || taskID == "" {
		h.badRequest(ctx, "missing task id")
		return
	}

	var req transport.AttachmentRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.Name == "" || req.URL == "" {
		h.badRequest(ctx, "attachment name and url are required")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	board, _, err := h.board(stdCtx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	attachment, err := board.AddAttachment(stdCtx, &domain.Attachment{
		TaskID:     taskID,
		Name:       req.Name,
		URL:        req.URL,
		MimeType:   req.MimeType,
		Size:       req.Size,
		UploadedBy: userID,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, attachment)
}

// @Summary Distinct task owners for the filter bar
// @Tags tasks
// @Router /api/v1/tasks/owners [get]
func (h *TaskHandler) Owners(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	board, _, err := h.board(stdCtx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	owners := board.Owners()
	if owners == nil {
		owners = []string{}
	}
	h.respondSuccess(ctx, http.StatusOK, owners)
}

// @Summary Dashboard header numbers
// @Tags tasks
// @Router /api/v1/tasks/overview [get]
func (h *TaskHandler) Overview(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	board, event, err := h.board(stdCtx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, board.Overview(&event.EventDate))
}

// @Summary Re-fetch the caller's task list from storage
// @Tags tasks
// @Router /api/v1/tasks/reload [post]
func (h *TaskHandler) Reload(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	board, _, err := h.board(stdCtx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	if err := board.Reload(stdCtx); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, board.Visible(domain.Filter{}))
}
