package handlers

import (
	"log/slog"

	"github.com/edgard/relaybot/internal/ai"
	"github.com/edgard/relaybot/internal/config"
)

// HandlerDeps provides dependencies for Telegram command and message
// handlers.
type HandlerDeps struct {
	Logger *slog.Logger
	Config *config.Config
	AI     ai.Client
}
