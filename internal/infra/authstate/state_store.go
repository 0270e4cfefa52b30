// Package authstate stores the one-time state tokens issued to in-flight
// OAuth logins.
package authstate

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"voidbot/config"
	"voidbot/internal/domain/service"

	"github.com/jellydator/ttlcache/v3"
	"github.com/pkg/errors"
)

const defaultStateTTL = 10 * time.Minute

// Store implements service.StateStore on an in-process TTL cache. Tokens are
// meaningless outside the issuing process, so there is no need to persist
// them; a restart simply fails in-flight logins with a state mismatch.
type Store struct {
	cache *ttlcache.Cache[string, time.Time]
	ttl   time.Duration
}

// New creates a state store with automatic expiry cleanup.
func New(cfg *config.Config) *Store {
	ttl := defaultStateTTL
	if cfg.DiscordOAuth != nil && cfg.DiscordOAuth.StateTTL > 0 {
		ttl = cfg.DiscordOAuth.StateTTL
	}

	cache := ttlcache.New(
		ttlcache.WithTTL[string, time.Time](ttl),
		ttlcache.WithDisableTouchOnHit[string, time.Time](),
	)
	go cache.Start()

	return &Store{
		cache: cache,
		ttl:   ttl,
	}
}

// Issue creates a new state token and registers it for later consumption.
func (s *Store) Issue(_ context.Context) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Wrap(err, "failed to generate state token")
	}

	state := hex.EncodeToString(buf)
	s.cache.Set(state, time.Now(), s.ttl)

	return state, nil
}

// Consume redeems the token, removing it in the same step. GetAndDelete is
// atomic under the cache lock, so two concurrent callbacks carrying the same
// state cannot both pass the check.
func (s *Store) Consume(_ context.Context, state string) bool {
	if state == "" {
		return false
	}

	item, existed := s.cache.GetAndDelete(state)

	return existed && item != nil
}

// Stop halts the background expiry loop.
func (s *Store) Stop() {
	s.cache.Stop()
}

var _ service.StateStore = (*Store)(nil)
