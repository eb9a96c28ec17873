package handler

import (
	"github.com/gofiber/fiber/v2"

	authhandler "github.com/joselazo21/todo-list/internal/auth/handler"
)

// RegisterRoutes mounts the task surface. Every route sits behind the bearer
// middleware; handlers read the resolved account id from locals.
func RegisterRoutes(app *fiber.App, h *TaskHandler, auth *authhandler.AuthHandler) {
	tasks := app.Group("/api/v1/tasks", auth.RequireAuth)
	tasks.Post("/", h.Create)
	tasks.Get("/", h.List)
	tasks.Get("/stats", h.Statistics)
	tasks.Get("/productivity", h.Productivity)
	tasks.Post("/bulk/complete", h.BulkComplete)
	tasks.Get("/:id", h.Get)
	tasks.Put("/:id", h.Update)
	tasks.Delete("/:id", h.Delete)
	tasks.Post("/:id/complete", h.Complete)
	tasks.Post("/:id/reopen", h.Reopen)
}
