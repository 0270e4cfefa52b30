// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"voidbot/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// CallbackInput carries everything the provider redirect (or the SPA relaying
// it) handed back. ProviderError is the raw error code from the redirect
// query, empty when the user approved.
type CallbackInput struct {
	Code          string
	State         string
	RedirectURI   string
	ProviderError string
}

// LogoutInput identifies the session to revoke.
type LogoutInput struct {
	UserID    uuid.UUID
	SessionID uuid.UUID
}

// --- Output DTOs ---

// StartLoginOutput returns the provider authorize URL the browser should visit.
type StartLoginOutput struct {
	AuthorizationURL string
}

// CallbackOutput returns the logged-in user and the dashboard access token.
type CallbackOutput struct {
	User        *entity.User
	AccessToken string
}

// AuthenticatedUser is the resolved identity behind a bearer token.
type AuthenticatedUser struct {
	User      *entity.User
	SessionID uuid.UUID
}

// AuthUsecase defines the interface for login-flow business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AuthUsecase interface {
	// StartLogin issues a state token and builds the provider authorize URL.
	StartLogin(ctx context.Context) (*StartLoginOutput, error)

	// HandleCallback drives the authorization-code redemption: classify
	// provider errors, consume the state token, exchange the code, fetch the
	// identity, and establish a local session. Failures are AppError values
	// whose codes the delivery layer forwards verbatim.
	HandleCallback(ctx context.Context, input CallbackInput) (*CallbackOutput, error)

	// Authenticate resolves a dashboard bearer token to its user and session.
	Authenticate(ctx context.Context, token string) (*AuthenticatedUser, error)

	// Logout revokes the session. Revoking an already revoked session
	// succeeds, so a stale tab logging out twice is harmless.
	Logout(ctx context.Context, input LogoutInput) error

	// PurgeExpiredSessions removes expired session rows. Called periodically
	// by the cleanup delivery.
	PurgeExpiredSessions(ctx context.Context) error
}
