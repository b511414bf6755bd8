package bootstrap

import (
	"io"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"go_chat_client/config"
	"go_chat_client/console"
	"go_chat_client/handlers"
	"go_chat_client/middleware"
	"go_chat_client/pkg/logging"
	"go_chat_client/routes"
)

// App is the console side: a client bound to the configured backend.
type App struct {
	Cfg      *config.Config
	Services *Services
}

func NewApp(cfg *config.Config) *App {
	app := &App{Cfg: cfg, Services: NewServices(cfg)}
	logging.Logger.Info("chat client ready", "base_url", app.Services.ChatClient.BaseURL())
	return app
}

// Console wires a terminal session to the app's client. Without a configured
// user identifier a random one is used for this run.
func (a *App) Console(in io.Reader, out io.Writer) *console.Console {
	userID := a.Cfg.UserIdentifier
	if userID == "" {
		userID = "cli-" + uuid.NewString()
	}
	return console.New(a.Services.ChatClient, in, out, userID)
}

// StubServer is the in-memory stand-in backend.
type StubServer struct {
	Cfg            *config.Config
	Infrastructure *Infrastructure
	Handlers       *Handlers
	Fiber          *fiber.App
}

func NewStubServer(cfg *config.Config) *StubServer {
	s := &StubServer{Cfg: cfg}
	s.Infrastructure = NewInfrastructure()
	s.Handlers = NewHandlers(cfg, s.Infrastructure)

	app := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler,
		DisableStartupMessage: true,
	})
	app.Use(middleware.Logger(cfg.AppEnv, os.Stdout))
	app.Use(middleware.CORS(cfg.AllowOrigins))
	routes.RegisterAPIRoutes(app, s.Handlers.StubHandler, middleware.RateLimit(cfg.StubRateLimit, time.Minute))
	s.Fiber = app
	return s
}

func (s *StubServer) Listen() error {
	logging.Logger.Info("stub backend running", "addr", "http://localhost:"+s.Cfg.StubPort)
	return s.Fiber.Listen(":" + s.Cfg.StubPort)
}

func (s *StubServer) Shutdown() error {
	if s == nil || s.Fiber == nil {
		return nil
	}
	return s.Fiber.Shutdown()
}
