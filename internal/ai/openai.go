package ai

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/edgard/relaybot/internal/config"
)

// openAIClient implements Client using the OpenAI Chat Completions API.
type openAIClient struct {
	client *openai.Client
	model  string
	log    *slog.Logger
}

// newOpenAIClient creates a new OpenAI-backed client. The base URL is
// configurable so OpenAI-compatible gateways can be used unchanged.
func newOpenAIClient(cfg config.OpenAIConfig, timeout time.Duration, log *slog.Logger) (*openAIClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("OpenAI API key is required")
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	}
	clientCfg.HTTPClient = &http.Client{Timeout: timeout}

	logger := log.With("component", "openai_client")
	logger.Info("OpenAI client initialized", "model", cfg.Model, "base_url", clientCfg.BaseURL)

	return &openAIClient{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
		log:    logger,
	}, nil
}

// GenerateReply sends the user's text as the sole user turn of a chat
// completion and returns the first choice's content.
func (c *openAIClient) GenerateReply(ctx context.Context, text string) (string, error) {
	startTime := time.Now()

	text = strings.TrimSpace(text)
	if text == "" {
		return "", errors.New("empty user message")
	}

	c.log.DebugContext(ctx, "Generating OpenAI reply")

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
	})
	if err != nil {
		c.log.ErrorContext(ctx, "OpenAI chat completion failed", "error", err)
		return "", c.wrapError(err)
	}

	reply := ""
	if len(resp.Choices) > 0 {
		reply = strings.TrimSpace(resp.Choices[0].Message.Content)
	}
	if reply == "" {
		c.log.WarnContext(ctx, "OpenAI response contained no choices or empty content", "response_id", resp.ID)
		return "", &Error{
			Provider: config.ProviderOpenAI,
			Category: CategoryEmptyResponse,
			Err:      errors.New("no response choices returned"),
		}
	}

	c.log.InfoContext(ctx, "OpenAI reply generated",
		"duration_ms", time.Since(startTime).Milliseconds(),
		"tokens", resp.Usage.TotalTokens)

	return reply, nil
}

func (c *openAIClient) wrapError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &Error{Provider: config.ProviderOpenAI, Category: categoryFromStatus(apiErr.HTTPStatusCode), Err: err}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &Error{Provider: config.ProviderOpenAI, Category: categoryFromStatus(reqErr.HTTPStatusCode), Err: err}
	}

	return &Error{Provider: config.ProviderOpenAI, Category: CategoryNetwork, Err: err}
}
