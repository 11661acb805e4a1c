package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/eventdesk/backend/api/transport"
	"github.com/eventdesk/backend/domain"
	"github.com/eventdesk/backend/pkg/httpcontext"
	adminUC "github.com/eventdesk/backend/usecase/admin"
)

type AdminHandler struct {
	baseHandler
	uc *adminUC.UseCase
}

func NewAdminHandler(uc *adminUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List all accounts
// @Tags admin
// @Router /api/v1/admin/users [get]
func (h *AdminHandler) ListUsers(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	users, err := h.uc.ListUsers(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, users)
}

// @Summary Register a new account
// @Tags admin
// @Router /api/v1/admin/users [post]
func (h *AdminHandler) CreateUser(ctx *fasthttp.RequestCtx) {
	var req transport.CreateUserRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.badRequest(ctx, "malformed request body")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, err := h.uc.CreateUser(stdCtx, req.Name, req.Email, req.Password, domain.Role(req.Role))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, user)
}

// @Summary Promote or demote an account
// @Tags admin
// @Router /api/v1/admin/users/{id}/role [patch]
func (h *AdminHandler) ChangeRole(ctx *fasthttp.RequestCtx) {
	userID, ok := ctx.UserValue("id").(string)
	if !ok || userID == "" {
		h.badRequest(ctx, "missing user id")
		return
	}
	var req transport.RoleChangeRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.badRequest(ctx, "malformed request body")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.ChangeRole(stdCtx, userID, domain.Role(req.Role)); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondNoContent(ctx)
}

// @Summary Suspend or reinstate an account
// @Tags admin
// @Router /api/v1/admin/users/{id}/block [patch]
func (h *AdminHandler) SetBlocked(ctx *fasthttp.RequestCtx) {
	userID, ok := ctx.UserValue("id").(string)
	if !ok || userID == "" {
		h.badRequest(ctx, "missing user id")
		return
	}
	var req transport.BlockRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.badRequest(ctx, "malformed request body")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.SetBlocked(stdCtx, userID, req.Blocked); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondNoContent(ctx)
}

// @Summary Delete an account
// @Tags admin
// @Router /api/v1/admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(ctx *fasthttp.RequestCtx) {
	userID, ok := ctx.UserValue("id").(string)
	if !ok || userID == "" {
		h.badRequest(ctx, "missing user id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.DeleteUser(stdCtx, userID); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondNoContent(ctx)
}
