// Package service defines domain service interfaces implemented by the
// infrastructure layer.
package service

import (
	"context"
	"errors"
	"time"

	"voidbot/internal/domain/entity"
)

// ErrProviderTokenRevoked reports that the provider no longer accepts the
// stored access token: the user revoked the grant or it expired. Callers
// invalidate the local session when they see it.
var ErrProviderTokenRevoked = errors.New("provider token revoked or expired")

// OAuthUser represents the identity Discord returns for an access token.
type OAuthUser struct {
	ID          string // Discord snowflake ID
	Username    string // Unique username
	DisplayName string // Global display name, may be empty
	AvatarHash  string // Avatar hash for CDN URLs, may be empty
	Email       string // Email address, present with the email scope
	Verified    bool   // Whether the email is verified by Discord
	Locale      string // User's locale/language preference
}

// OAuthToken represents the credentials obtained from the code exchange.
// The refresh token may be empty when the provider does not issue one.
type OAuthToken struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
	ExpiresAt    time.Time
}

// OAuthProvider defines the interface for the Discord OAuth2 authorization
// code flow and the resource fetches that follow it.
type OAuthProvider interface {
	// BuildAuthorizationURL constructs the provider authorize URL carrying the
	// given anti-CSRF state token.
	BuildAuthorizationURL(state string) (string, error)

	// ExchangeCode redeems an authorization code for tokens. The redirectURI
	// must be byte-identical to the one used in the authorize request.
	ExchangeCode(ctx context.Context, code string, redirectURI string) (*OAuthToken, error)

	// FetchUser retrieves the identity of the token's owner.
	FetchUser(ctx context.Context, accessToken string) (*OAuthUser, error)

	// FetchGuilds retrieves every guild the token's owner belongs to,
	// unfiltered. Callers apply entity.FilterManageable themselves.
	FetchGuilds(ctx context.Context, accessToken string) ([]*entity.Guild, error)

	// BuildInviteURL constructs the bot invite URL for a guild, pre-selecting
	// the guild and the permission set the bot needs.
	BuildInviteURL(guildID string) string
}
