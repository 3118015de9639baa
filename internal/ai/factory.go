package ai

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/edgard/relaybot/internal/config"
)

// New creates and returns a Client based on the provided configuration.
// It acts as a factory, selecting either the OpenAI or Gemini
// implementation. Adding a provider means adding a case here and an
// implementation of Client; callers are unaffected.
func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (Client, error) {
	log.Info("Initializing AI client", "provider", cfg.AI.Provider)

	switch cfg.AI.Provider {
	case config.ProviderOpenAI:
		client, err := newOpenAIClient(cfg.OpenAI, cfg.AI.Timeout, log)
		if err != nil {
			return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
		}
		return client, nil
	case config.ProviderGemini:
		client, err := newGeminiClient(ctx, cfg.Gemini, log)
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unknown AI provider specified: %s", cfg.AI.Provider)
	}
}
