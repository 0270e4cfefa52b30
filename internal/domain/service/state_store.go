package service

import "context"

// StateStore issues and redeems the one-time anti-CSRF state tokens used by
// the OAuth login flow. Consume is atomic: for a given token exactly one call
// returns true, so a replayed callback fails the state check instead of
// triggering a second code exchange.
type StateStore interface {
	// Issue creates a new state token and registers it for later consumption.
	Issue(ctx context.Context) (string, error)

	// Consume redeems the token, removing it in the same step. It returns
	// false for unknown, expired, or already-consumed tokens.
	Consume(ctx context.Context, state string) bool
}
