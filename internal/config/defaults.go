package config

import "time"

// Default values for configuration
const (
	// Log defaults
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	// AI defaults
	DefaultAITimeout = 2 * time.Minute

	// OpenAI defaults
	DefaultOpenAIBaseURL = "https://api.openai.com/v1"
	DefaultOpenAIModel   = "gpt-3.5-turbo"

	// Gemini defaults
	DefaultGeminiModel = "gemini-pro"
)

// Default user-visible messages
const (
	DefaultWelcomeMessage = "Hi! I'm an AI chat bot powered by {provider}.\n\n" +
		"Just send me any message, and I'll do my best to respond. " +
		"I can handle short questions or longer discussions.\n\n" +
		"Let's chat!"

	DefaultGeneralErrorMessage = "Sorry, I encountered an error trying to reach the AI. Please try again later."
)
