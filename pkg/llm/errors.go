package llm

import "fmt"

// APIError is a failure reported by the provider's API, carrying the upstream
// status code and error type where the provider exposes them.
type APIError struct {
	StatusCode int
	Type       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("%s (%s, status %d)", e.Message, e.Type, e.StatusCode)
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}
