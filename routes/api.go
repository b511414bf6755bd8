package routes

import (
	"github.com/gofiber/fiber/v2"

	"go_chat_client/handlers"
)

func RegisterAPIRoutes(app *fiber.App, h *handlers.StubHandler, chatLimiter fiber.Handler) {
	api := app.Group("/api")
	api.Post("/session", h.CreateSession)
	api.Post("/chat", chatLimiter, h.Chat)
	api.Post("/feedback", h.Feedback)
	api.Get("/health", h.Health)
}
