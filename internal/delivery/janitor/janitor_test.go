package janitor

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"voidbot/config"
	mockusecase "voidbot/internal/mocks/usecase"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newJanitor(t *testing.T, interval time.Duration) (*sessionJanitor, *mockusecase.MockAuthUsecase) {
	t.Helper()

	uc := mockusecase.NewMockAuthUsecase(t)
	cfg := &config.Config{Auth: &config.AuthConfig{CleanupInterval: interval}}

	j := New(Params{
		Cfg:    cfg,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		AuthUC: uc,
	})

	return j.(*sessionJanitor), uc
}

func TestSessionJanitor_PurgesOnTick(t *testing.T) {
	j, uc := newJanitor(t, 5*time.Millisecond)

	swept := make(chan struct{}, 1)
	uc.On("PurgeExpiredSessions", mock.Anything).
		Run(func(mock.Arguments) {
			select {
			case swept <- struct{}{}:
			default:
			}
		}).
		Return(nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- j.Serve(ctx) }()

	select {
	case <-swept:
	case <-time.After(time.Second):
		t.Fatal("expected a cleanup sweep")
	}

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop on cancel")
	}
}

func TestSessionJanitor_DefaultInterval(t *testing.T) {
	j, _ := newJanitor(t, 0)

	require.Equal(t, defaultCleanupInterval, j.interval)
}

func TestSessionJanitor_StopsWithoutSweep(t *testing.T) {
	j, _ := newJanitor(t, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, j.Serve(ctx))
}
