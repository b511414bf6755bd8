package middleware

import (
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

// SessionLocal is the fiber Locals key stub handlers set so each request
// line carries the chat session it touched.
const SessionLocal = "session_id"

const (
	prodFormat = `{"time":"${time}","ip":"${ip}","method":"${method}","path":"${path}","status":${status},"latency":"${latency}","session_id":"${locals:session_id}"}` + "\n"
	devFormat  = "[${time}] ${status} - ${latency} ${method} ${path} session=${locals:session_id}\n"
)

func Logger(env string, out io.Writer) fiber.Handler {
	cfg := logger.Config{
		Format:     devFormat,
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
		Output:     out,
	}
	if env == "prod" {
		cfg.Format = prodFormat
		cfg.TimeFormat = time.RFC3339
	}
	return logger.New(cfg)
}
