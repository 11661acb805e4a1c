package handler

import (
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/eventdesk/backend/pkg/httpcontext"
	eventsUC "github.com/eventdesk/backend/usecase/events"
)

type EventHandler struct {
	baseHandler
	events *eventsUC.UseCase
}

func NewEventHandler(events *eventsUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *EventHandler {
	return &EventHandler{
		baseHandler: newBaseHandler(adapter, logger),
		events:      events,
	}
}

// @Summary Active event for the caller, created and seeded when absent
// @Tags events
// @Param fallback_date query string false "RFC 3339 date used if a new event must be created"
// @Router /api/v1/event [get]
func (h *EventHandler) GetOrCreate(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	fallback := time.Now().Add(defaultEventHorizon)
	if raw := string(ctx.QueryArgs().Peek("fallback_date")); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			h.badRequest(ctx, "fallback_date must be RFC 3339")
			return
		}
		fallback = parsed
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	event, created, err := h.events.GetOrCreate(stdCtx, userID, fallback)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	h.respondSuccess(ctx, status, event)
}

// @Summary Instantiate the checklist templates against an event
// @Tags events
// @Router /api/v1/event/{id}/generate [post]
func (h *EventHandler) Generate(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	eventID, ok := ctx.UserValue("id").(string)
	if !ok || eventID == "" {
		h.badRequest(ctx, "missing event id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	count, err := h.events.Generate(stdCtx, eventID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, map[string]int{"generated": count})
}

// @Summary Checklist template set
// @Tags events
// @Router /api/v1/event/templates [get]
func (h *EventHandler) Templates(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	templates, err := h.events.Templates(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, templates)
}
