package serverutils

import "github.com/gofiber/fiber/v2"

// Error types surfaced on the wire. The taxonomy is closed: everything below
// the HTTP boundary returns one of these (or a plain error, mapped to 500).
const (
	TypeValidation        = "ValidationError"
	TypeNotFound          = "NotFoundError"
	TypeAuthorization     = "AuthorizationError"
	TypeUpstream          = "UpstreamError"
	TypeMalformedUpstream = "MalformedUpstreamResponseError"
)

// AppError carries a machine-readable type, a human message and the HTTP
// status it maps to. Translation to the wire format happens only in
// ErrorHandlerMiddleware.
type AppError struct {
	Type       string `json:"type"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"errorMessage"`
}

func (e *AppError) Error() string {
	return e.Message
}

func NewValidationError(message string) *AppError {
	return &AppError{Type: TypeValidation, StatusCode: fiber.StatusBadRequest, Message: message}
}

// NewNotFoundError is surfaced as a generic failure. An unknown user behind a
// valid token is an unexpected condition, not a client addressing mistake:
// users are created in the OAuth login flow, never here.
func NewNotFoundError(message string) *AppError {
	return &AppError{Type: TypeNotFound, StatusCode: fiber.StatusInternalServerError, Message: message}
}

func NewAuthorizationError(message string) *AppError {
	return &AppError{Type: TypeAuthorization, StatusCode: fiber.StatusUnauthorized, Message: message}
}

// NewUpstreamError wraps an OAuth or LLM failure with the upstream status
// where available. Never retried.
func NewUpstreamError(statusCode int, message string) *AppError {
	if statusCode == 0 {
		statusCode = fiber.StatusBadGateway
	}
	return &AppError{Type: TypeUpstream, StatusCode: statusCode, Message: message}
}

// NewMalformedUpstreamError marks LLM output that failed post-parse
// validation. The model output is non-deterministic, so a blind retry is not
// safe against duplicate side effects; this is a hard failure.
func NewMalformedUpstreamError(message string) *AppError {
	return &AppError{Type: TypeMalformedUpstream, StatusCode: fiber.StatusBadGateway, Message: message}
}
