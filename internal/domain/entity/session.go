package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session represents one authenticated dashboard login. It owns the Discord
// OAuth tokens obtained during the code exchange; those never leave the
// server. The browser only ever holds the service's own access token, whose
// hash is stored here so a session can be revoked server-side.
type Session struct {
	ID                   uuid.UUID // The unique ID for this session record.
	UserID               uuid.UUID // Links this session to the User it belongs to.
	TokenHash            string    // SHA-256 hash of the service access token issued to the browser.
	ProviderAccessToken  string    // Discord bearer token used for guild sync on the user's behalf.
	ProviderRefreshToken string    // Discord refresh token, may be empty when the provider omitted it.
	ExpiresAt            time.Time // The time when this session becomes invalid.
	CreatedAt            time.Time // Timestamp of when the session was created (login time).
}

// Active reports whether the session is still usable at the given instant.
func (s *Session) Active(now time.Time) bool {
	return s.ExpiresAt.After(now)
}
