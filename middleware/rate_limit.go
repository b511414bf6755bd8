package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"go_chat_client/models"
)

// RateLimit caps requests per client IP within window. Over the cap the
// client gets 429 with a detail body.
func RateLimit(max int, window time.Duration) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(models.ErrorBody{
				Detail: "Rate limit exceeded",
			})
		},
	})
}
