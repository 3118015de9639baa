package ai

import (
	"fmt"
	"net/http"
)

// Category classifies a provider failure.
type Category string

const (
	CategoryNetwork       Category = "network"
	CategoryAuth          Category = "auth"
	CategoryQuota         Category = "quota"
	CategoryEmptyResponse Category = "empty_response"
)

// Error is the error type returned by Client implementations. It wraps
// the underlying SDK or transport error and carries the provider name
// and a failure category so callers can log and react without
// inspecting provider internals.
type Error struct {
	Provider string
	Category Category
	Err      error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s error", e.Provider, e.Category)
	}
	return fmt.Sprintf("%s: %s error: %v", e.Provider, e.Category, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// categoryFromStatus maps an HTTP status code from a provider API to a
// failure category. Anything not recognizably auth or quota related is
// treated as a network-level failure.
func categoryFromStatus(code int) Category {
	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return CategoryAuth
	case http.StatusTooManyRequests:
		return CategoryQuota
	default:
		return CategoryNetwork
	}
}
