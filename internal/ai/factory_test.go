package ai

import (
	"context"
	"testing"
	"time"

	"github.com/edgard/relaybot/internal/config"
)

func TestNewSelectsProvider(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		cfg     config.Config
		wantErr bool
	}{
		{
			name: "openai",
			cfg: config.Config{
				AI:     config.AIConfig{Provider: config.ProviderOpenAI, Timeout: time.Minute},
				OpenAI: config.OpenAIConfig{APIKey: "sk-test", Model: "gpt-3.5-turbo", BaseURL: config.DefaultOpenAIBaseURL},
			},
		},
		{
			name: "gemini",
			cfg: config.Config{
				AI:     config.AIConfig{Provider: config.ProviderGemini, Timeout: time.Minute},
				Gemini: config.GeminiConfig{APIKey: "g-test", Model: "gemini-pro"},
			},
		},
		{
			name: "unknown provider",
			cfg: config.Config{
				AI: config.AIConfig{Provider: "claude", Timeout: time.Minute},
			},
			wantErr: true,
		},
		{
			name: "openai without key",
			cfg: config.Config{
				AI:     config.AIConfig{Provider: config.ProviderOpenAI, Timeout: time.Minute},
				OpenAI: config.OpenAIConfig{Model: "gpt-3.5-turbo", BaseURL: config.DefaultOpenAIBaseURL},
			},
			wantErr: true,
		},
		{
			name: "gemini without key",
			cfg: config.Config{
				AI:     config.AIConfig{Provider: config.ProviderGemini, Timeout: time.Minute},
				Gemini: config.GeminiConfig{Model: "gemini-pro"},
			},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			client, err := New(context.Background(), &tc.cfg, testLogger())
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("New returned error: %v", err)
			}
			if client == nil {
				t.Fatal("expected non-nil client")
			}
		})
	}
}
