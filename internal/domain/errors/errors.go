// Package errors defines the application error taxonomy shared by the
// usecase and delivery layers.
package errors

import (
	"net/http"

	"voidbot/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails returns a copy of the error carrying detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Callback-flow errors. All of these are terminal for one login attempt: the
// user is sent back to the entry point with the machine-readable code and has
// to re-initiate the flow.
var (
	// ErrProviderError reports an error code Discord attached to the redirect.
	ErrProviderError = NewBaseError(
		http.StatusBadRequest,
		"PROVIDER_ERROR",
		"The identity provider rejected the login.",
		"",
	)

	// ErrMissingCode reports an authorization redirect without a code parameter.
	ErrMissingCode = NewBaseError(
		http.StatusBadRequest,
		"MISSING_CODE",
		"The authorization redirect did not carry a code.",
		"",
	)

	// ErrStateMismatch reports an absent, expired, or non-matching state
	// token. This is the CSRF guard: the exchange is never attempted when it
	// trips.
	ErrStateMismatch = NewBaseError(
		http.StatusBadRequest,
		"STATE_MISMATCH",
		"The login state token is missing or does not match.",
		"",
	)

	// ErrRedirectURIMismatch reports a redirect_uri that differs from the one
	// this service used in the authorize request.
	ErrRedirectURIMismatch = NewBaseError(
		http.StatusBadRequest,
		"REDIRECT_URI_MISMATCH",
		"The redirect URI does not match the one used to start the login.",
		"",
	)

	// ErrExchangeFailed reports a network or HTTP failure while redeeming the
	// authorization code.
	ErrExchangeFailed = NewBaseError(
		http.StatusBadGateway,
		"EXCHANGE_FAILED",
		"Redeeming the authorization code failed.",
		"",
	)

	// ErrMissingUser reports a token exchange that succeeded at the HTTP level
	// but returned no user identity. A 200 with no user is not a success.
	ErrMissingUser = NewBaseError(
		http.StatusBadGateway,
		"MISSING_USER",
		"The identity provider returned no user for the session.",
		"",
	)
)

// Guild-sync errors. Unlike callback failures these are locally recoverable:
// the dashboard may retry without discarding the session, except for
// UNAUTHORIZED which forces a logout of the stale token.
var (
	// ErrNoToken reports a guild sync attempted without a session. This is a
	// distinct terminal status, not a fetch failure: the dashboard must
	// distinguish "never logged in" from "request failed".
	ErrNoToken = NewBaseError(
		http.StatusUnauthorized,
		"NO_TOKEN",
		"No session token is present.",
		"",
	)

	// ErrGuildFetchFailed reports a non-2xx reply from the guild listing.
	ErrGuildFetchFailed = NewBaseError(
		http.StatusBadGateway,
		"GUILD_FETCH_FAILED",
		"Fetching the server list failed.",
		"",
	)

	// ErrUnauthorized reports a revoked or expired provider token. The local
	// session is invalidated when this is returned; retrying as-is is useless.
	ErrUnauthorized = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHORIZED",
		"The session is no longer valid.",
		"",
	)
)

// General errors.
var (
	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"Unknown user.",
		"",
	)

	ErrSessionNotFound = NewBaseError(
		http.StatusUnauthorized,
		"SESSION_NOT_FOUND",
		"The session does not exist or has been revoked.",
		"",
	)

	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Input validation failed.",
		"",
	)

	ErrConfigInvalid = NewBaseError(
		http.StatusInternalServerError,
		"CONFIG_ERROR",
		"The service OAuth configuration is incomplete.",
		"",
	)

	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error.",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "Database execution failed."
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
