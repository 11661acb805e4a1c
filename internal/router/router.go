package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/eventdesk/backend/api/handler"
	"github.com/eventdesk/backend/internal/middleware"
)

type Handlers struct {
	Auth   *apiHandler.AuthHandler
	Task   *apiHandler.TaskHandler
	Event  *apiHandler.EventHandler
	Admin  *apiHandler.AdminHandler
	Health *apiHandler.HealthHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Auth routes
	r.POST("/api/v1/auth/login", handlers.Auth.Login)
	r.POST("/api/v1/auth/refresh", authMiddleware(handlers.Auth.Refresh))
	r.POST("/api/v1/auth/logout", authMiddleware(handlers.Auth.Logout))
	r.GET("/api/v1/session", authMiddleware(handlers.Auth.Session))
	r.GET("/api/v1/profile", authMiddleware(handlers.Auth.Profile))

	// Task board
	r.GET("/api/v1/tasks", authMiddleware(handlers.Task.List))
	r.GET("/api/v1/tasks/owners", authMiddleware(handlers.Task.Owners))
	r.GET("/api/v1/tasks/overview", authMiddleware(handlers.Task.Overview))
	r.POST("/api/v1/tasks/reload", authMiddleware(handlers.Task.Reload))
	r.GET("/api/v1/tasks/{id}", authMiddleware(handlers.Task.Get))
	r.PATCH("/api/v1/tasks/{id}/status", authMiddleware(handlers.Task.ChangeStatus))
	r.POST("/api/v1/tasks/{id}/comments", authMiddleware(handlers.Task.AddComment))
	r.POST("/api/v1/tasks/{id}/attachments", authMiddleware(handlers.Task.AddAttachment))

	// Event lifecycle
	r.GET("/api/v1/event", authMiddleware(handlers.Event.GetOrCreate))
	r.GET("/api/v1/event/templates", authMiddleware(handlers.Event.Templates))
	r.POST("/api/v1/event/{id}/generate", authMiddleware(handlers.Event.Generate))

	// Account administration
	admin := func(h fasthttp.RequestHandler) fasthttp.RequestHandler {
		return authMiddleware(middleware.RequireAdmin(h))
	}
	r.GET("/api/v1/admin/users", admin(handlers.Admin.ListUsers))
	r.POST("/api/v1/admin/users", admin(handlers.Admin.CreateUser))
	r.PATCH("/api/v1/admin/users/{id}/role", admin(handlers.Admin.ChangeRole))
	r.PATCH("/api/v1/admin/users/{id}/block", admin(handlers.Admin.SetBlocked))
	r.DELETE("/api/v1/admin/users/{id}", admin(handlers.Admin.DeleteUser))

	return r
}
