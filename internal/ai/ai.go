// Package ai provides interfaces and implementations for interacting
// with different AI backends. One implementation exists per supported
// provider (OpenAI and Gemini), selected at startup by the factory.
package ai

import "context"

// Client defines the interface for generating a reply to a user's
// message. Each call performs exactly one outbound request to the
// configured provider; there is no conversation history.
//
// For any non-empty input, GenerateReply returns either a non-empty
// reply or an error, never both. Failures are reported as *Error with
// a category describing the failure class.
type Client interface {
	GenerateReply(ctx context.Context, text string) (string, error)
}
