package bootstrap

import (
	"github.com/google/uuid"

	"go_chat_client/config"
	"go_chat_client/handlers"
)

type Handlers struct {
	StubHandler *handlers.StubHandler
}

func NewHandlers(cfg *config.Config, infra *Infrastructure) *Handlers {
	return &Handlers{
		StubHandler: handlers.NewStubHandler(infra.Cache, cfg.StubVersion, uuid.NewString),
	}
}
