package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/edgard/relaybot/internal/config"
)

// geminiClient implements Client using Google's Gemini API through the
// official genai SDK.
type geminiClient struct {
	genaiClient *genai.Client
	model       string
	log         *slog.Logger
}

// newGeminiClient creates a new Gemini-backed client with the provided
// configuration. The base URL override exists for tests and proxies.
func newGeminiClient(ctx context.Context, cfg config.GeminiConfig, log *slog.Logger) (*geminiClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini API key is required")
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	gi, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	logger := log.With("component", "gemini_client")
	logger.Info("Gemini client initialized", "model", cfg.Model)

	return &geminiClient{
		genaiClient: gi,
		model:       cfg.Model,
		log:         logger,
	}, nil
}

// GenerateReply sends the user's text as a single user content and
// returns the first candidate's text.
func (c *geminiClient) GenerateReply(ctx context.Context, text string) (string, error) {
	startTime := time.Now()

	text = strings.TrimSpace(text)
	if text == "" {
		return "", errors.New("empty user message")
	}

	c.log.DebugContext(ctx, "Generating Gemini reply")

	contents := []*genai.Content{genai.NewContentFromText(text, genai.RoleUser)}

	resp, err := c.genaiClient.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		c.log.ErrorContext(ctx, "Gemini API call failed", "error", err)
		return "", c.wrapError(err)
	}

	reply, err := c.extractText(ctx, resp)
	if err != nil {
		return "", err
	}

	c.log.InfoContext(ctx, "Gemini reply generated",
		"duration_ms", time.Since(startTime).Milliseconds())

	return reply, nil
}

// extractText pulls the generated text from a response. A response with
// a prompt-feedback block reason or without any candidate text is
// reported as an empty-response error.
func (c *geminiClient) extractText(ctx context.Context, resp *genai.GenerateContentResponse) (string, error) {
	if resp != nil && resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != genai.BlockedReasonUnspecified {
		c.log.WarnContext(ctx, "Gemini request blocked",
			"reason", resp.PromptFeedback.BlockReason,
			"message", resp.PromptFeedback.BlockReasonMessage)
		return "", &Error{
			Provider: config.ProviderGemini,
			Category: CategoryEmptyResponse,
			Err:      fmt.Errorf("prompt blocked: %s", resp.PromptFeedback.BlockReason),
		}
	}

	if resp == nil || len(resp.Candidates) == 0 ||
		resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		c.log.WarnContext(ctx, "Gemini returned no candidates")
		return "", &Error{
			Provider: config.ProviderGemini,
			Category: CategoryEmptyResponse,
			Err:      errors.New("no candidates returned"),
		}
	}

	text := strings.TrimSpace(resp.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		c.log.WarnContext(ctx, "Gemini candidate contained no text")
		return "", &Error{
			Provider: config.ProviderGemini,
			Category: CategoryEmptyResponse,
			Err:      errors.New("candidate contained no text"),
		}
	}

	return text, nil
}

func (c *geminiClient) wrapError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &Error{Provider: config.ProviderGemini, Category: categoryFromStatus(apiErr.Code), Err: err}
	}

	return &Error{Provider: config.ProviderGemini, Category: CategoryNetwork, Err: err}
}
