// Package bot implements the core bot lifecycle management and
// component orchestration for the RelayBot application.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	tgbot "github.com/go-telegram/bot"
	"golang.org/x/sync/errgroup"

	"github.com/edgard/relaybot/internal/ai"
	"github.com/edgard/relaybot/internal/config"
)

// Bot represents the main bot application and manages its components'
// lifecycle.
type Bot struct {
	logger   *slog.Logger
	cfg      *config.Config
	aiClient ai.Client
	tgBot    *tgbot.Bot
}

// NewBot creates a new instance of the bot with all required
// dependencies.
func NewBot(logger *slog.Logger, cfg *config.Config, aiClient ai.Client, tgBot *tgbot.Bot) *Bot {
	return &Bot{
		logger:   logger.With("component", "bot_orchestrator"),
		cfg:      cfg,
		aiClient: aiClient,
		tgBot:    tgBot,
	}
}

// Run starts the Telegram listener and blocks until the context is
// cancelled or the listener fails. It returns an error only for
// failures other than context cancellation.
func (b *Bot) Run(ctx context.Context) error {
	b.logger.Info("Starting bot orchestrator...")

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		b.logger.Info("Starting Telegram bot listener...")

		b.tgBot.Start(gCtx)
		b.logger.Info("Telegram bot listener stopped.")

		if gCtx.Err() == nil {
			b.logger.Warn("Telegram bot listener stopped unexpectedly without context cancellation.")
			return fmt.Errorf("telegram listener stopped unexpectedly")
		}
		return nil
	})

	b.logger.Info("Bot orchestrator running. Waiting for shutdown signal or error...")
	err := g.Wait()

	if err != nil && !errors.Is(err, context.Canceled) {
		b.logger.Error("Bot orchestrator stopped due to error", "error", err)
		return err
	}

	b.logger.Info("Bot orchestrator stopped gracefully.")
	return nil
}
