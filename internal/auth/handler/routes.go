package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/joselazo21/todo-list/config"
	"github.com/joselazo21/todo-list/internal/auth/ratelimit"
)

func RegisterRoutes(app *fiber.App, h *AuthHandler, limiter ratelimit.Limiter, cfg *config.Config) {
	auth := app.Group("/api/v1/auth")
	auth.Post("/register", RateLimit(limiter, "register", cfg.RegisterRateLimit, cfg.RateLimitWindow), h.Register)
	auth.Post("/login", RateLimit(limiter, "login", cfg.LoginRateLimit, cfg.RateLimitWindow), h.Login)
	auth.Post("/refresh", h.Refresh)
	auth.Post("/logout", h.Logout)
	auth.Post("/verify-email/request",
		RateLimit(limiter, "verify", cfg.RegisterRateLimit, cfg.RateLimitWindow), h.VerifyEmailRequest)
	auth.Post("/verify-email/confirm", h.VerifyEmailConfirm)

	app.Get("/api/v1/me", h.RequireAuth, h.Me)
	app.Post("/api/v1/me/password", h.RequireAuth, h.ChangePassword)
}
