package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/vanskyhawk/kanban/internal/config"
	"github.com/vanskyhawk/kanban/internal/handlers"
	"github.com/vanskyhawk/kanban/internal/middleware"
	"github.com/vanskyhawk/kanban/internal/ratelimit"
)

type Handlers struct {
	Auth     *handlers.AuthHandler
	MFA      *handlers.MFAHandler
	Approval *handlers.ApprovalHandler
	Board    *handlers.BoardHandler
	Card     *handlers.CardHandler
	Column   *handlers.ColumnHandler
	Tag      *handlers.TagHandler
	Template *handlers.TemplateHandler
	Prompt   *handlers.PromptHandler
	Health   *handlers.HealthHandler
}

func Setup(app *fiber.App, cfg *config.Config, limiter *ratelimit.Limiter, h *Handlers) {
	api := app.Group("/api")

	// General API limit: 100 req/min per IP.
	api.Use(middleware.RateLimitByIP(limiter, ratelimit.TypeAPI))

	api.Get("/health", h.Health.Check)

	// Auth — public, with the stricter 5/15min limit on credential and
	// token endpoints.
	auth := api.Group("/auth")
	authLimit := middleware.RateLimitByIP(limiter, ratelimit.TypeAuth)
	auth.Post("/register", authLimit, h.Auth.Register)
	auth.Post("/login", authLimit, h.Auth.Login)
	auth.Post("/verify-email", authLimit, h.Auth.VerifyEmail)
	auth.Post("/forgot-password", authLimit, h.Auth.ForgotPassword)
	auth.Post("/reset-password", authLimit, h.Auth.ResetPassword)
	auth.Post("/magic-link", authLimit, h.Auth.RequestMagicLink)
	auth.Post("/verify-magic-link", authLimit, h.Auth.VerifyMagicLink)
	auth.Post("/mfa/verify", authLimit, h.MFA.Verify)

	// Admin approval links are opened from the notification email.
	auth.Get("/approve", h.Approval.Approve)

	auth.Get("/me", h.Auth.Me)
	auth.Post("/logout", h.Auth.Logout)

	// MFA management requires a session.
	protected := middleware.SessionProtected(cfg)
	auth.Get("/mfa/setup", protected, h.MFA.Setup)
	auth.Post("/mfa/enable", protected, h.MFA.Enable)
	auth.Post("/mfa/disable", protected, h.MFA.Disable)
	auth.Get("/mfa/status", protected, h.MFA.Status)

	// Board data. Ownership is re-verified inside each handler.
	api.Get("/board", protected, h.Board.Get)
	api.Put("/board", protected, h.Board.Update)

	api.Post("/cards", protected, h.Card.Create)
	api.Put("/cards/:id", protected, h.Card.Update)
	api.Delete("/cards/:id", protected, h.Card.Delete)
	api.Get("/cards/:id/comments", protected, h.Card.ListComments)
	api.Post("/cards/:id/comments", protected, h.Card.CreateComment)

	api.Post("/columns", protected, h.Column.Create)
	api.Delete("/columns/:id", protected, h.Column.Delete)

	api.Get("/tags", protected, h.Tag.List)
	api.Post("/tags", protected, h.Tag.Create)

	api.Get("/templates", protected, h.Template.List)
	api.Post("/templates", protected, h.Template.Create)

	// AI generation is limited per user, not per IP.
	api.Post("/generate-prompt", protected,
		middleware.RateLimitByUser(limiter, ratelimit.TypeOpenAI), h.Prompt.Generate)
}
