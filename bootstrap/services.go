package bootstrap

import (
	"go_chat_client/config"
	"go_chat_client/pkg/logging"
	"go_chat_client/services"
)

type Services struct {
	ChatClient *services.ChatClient
}

func NewServices(cfg *config.Config) *Services {
	return &Services{
		ChatClient: services.NewChatClient(cfg.BaseURL(), services.WithLogger(logging.Logger)),
	}
}
