package authstate

import (
	"context"
	"sync"
	"testing"
	"time"

	"voidbot/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, ttl time.Duration) *Store {
	t.Helper()

	cfg := &config.Config{
		DiscordOAuth: &config.DiscordOAuthConfig{StateTTL: ttl},
	}
	store := New(cfg)
	t.Cleanup(store.Stop)

	return store
}

func TestStore_IssueAndConsume(t *testing.T) {
	store := newTestStore(t, time.Minute)
	ctx := context.Background()

	state, err := store.Issue(ctx)
	require.NoError(t, err)
	assert.Len(t, state, 64)

	assert.True(t, store.Consume(ctx, state))
}

func TestStore_ConsumeIsOneTime(t *testing.T) {
	store := newTestStore(t, time.Minute)
	ctx := context.Background()

	state, err := store.Issue(ctx)
	require.NoError(t, err)

	assert.True(t, store.Consume(ctx, state))
	assert.False(t, store.Consume(ctx, state), "second consume must fail")
}

func TestStore_ConsumeUnknownState(t *testing.T) {
	store := newTestStore(t, time.Minute)

	assert.False(t, store.Consume(context.Background(), "never-issued"))
	assert.False(t, store.Consume(context.Background(), ""))
}

func TestStore_ConsumeExpiredState(t *testing.T) {
	store := newTestStore(t, 20*time.Millisecond)
	ctx := context.Background()

	state, err := store.Issue(ctx)
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)

	assert.False(t, store.Consume(ctx, state))
}

func TestStore_ConcurrentConsume(t *testing.T) {
	store := newTestStore(t, time.Minute)
	ctx := context.Background()

	state, err := store.Issue(ctx)
	require.NoError(t, err)

	const attempts = 16

	var wg sync.WaitGroup
	results := make(chan bool, attempts)
	for range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- store.Consume(ctx, state)
		}()
	}
	wg.Wait()
	close(results)

	consumed := 0
	for ok := range results {
		if ok {
			consumed++
		}
	}
	assert.Equal(t, 1, consumed, "exactly one consumer may win")
}

func TestStore_IssuedStatesAreUnique(t *testing.T) {
	store := newTestStore(t, time.Minute)
	ctx := context.Background()

	seen := make(map[string]struct{})
	for range 100 {
		state, err := store.Issue(ctx)
		require.NoError(t, err)
		_, dup := seen[state]
		require.False(t, dup)
		seen[state] = struct{}{}
	}
}
