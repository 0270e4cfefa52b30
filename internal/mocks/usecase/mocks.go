// Package usecase provides hand-written testify mocks for the usecase
// interfaces, used by delivery-layer tests.
package usecase

import (
	"context"
	"testing"

	"voidbot/internal/domain/entity"
	"voidbot/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockAuthUsecase mocks usecase.AuthUsecase.
type MockAuthUsecase struct {
	mock.Mock
}

// NewMockAuthUsecase creates a mock that asserts its expectations when the test ends.
func NewMockAuthUsecase(t *testing.T) *MockAuthUsecase {
	m := &MockAuthUsecase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockAuthUsecase) StartLogin(ctx context.Context) (*usecase.StartLoginOutput, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*usecase.StartLoginOutput), args.Error(1)
}

func (m *MockAuthUsecase) HandleCallback(ctx context.Context, input usecase.CallbackInput) (*usecase.CallbackOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*usecase.CallbackOutput), args.Error(1)
}

func (m *MockAuthUsecase) Authenticate(ctx context.Context, token string) (*usecase.AuthenticatedUser, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*usecase.AuthenticatedUser), args.Error(1)
}

func (m *MockAuthUsecase) Logout(ctx context.Context, input usecase.LogoutInput) error {
	args := m.Called(ctx, input)

	return args.Error(0)
}

func (m *MockAuthUsecase) PurgeExpiredSessions(ctx context.Context) error {
	args := m.Called(ctx)

	return args.Error(0)
}

// MockGuildUsecase mocks usecase.GuildUsecase.
type MockGuildUsecase struct {
	mock.Mock
}

// NewMockGuildUsecase creates a mock that asserts its expectations when the test ends.
func NewMockGuildUsecase(t *testing.T) *MockGuildUsecase {
	m := &MockGuildUsecase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockGuildUsecase) ListGuilds(ctx context.Context, userID uuid.UUID, sessionID uuid.UUID) (*usecase.ListGuildsOutput, error) {
	args := m.Called(ctx, userID, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*usecase.ListGuildsOutput), args.Error(1)
}

func (m *MockGuildUsecase) SetActiveGuild(ctx context.Context, userID uuid.UUID, sessionID uuid.UUID, guildID string) error {
	args := m.Called(ctx, userID, sessionID, guildID)

	return args.Error(0)
}

func (m *MockGuildUsecase) GetActiveGuild(ctx context.Context, userID uuid.UUID) (*entity.GuildSelection, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.GuildSelection), args.Error(1)
}

func (m *MockGuildUsecase) ClearActiveGuild(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)

	return args.Error(0)
}

func (m *MockGuildUsecase) BuildInvite(ctx context.Context, userID uuid.UUID, guildID string) (*usecase.InviteOutput, error) {
	args := m.Called(ctx, userID, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*usecase.InviteOutput), args.Error(1)
}

func (m *MockGuildUsecase) BuildInviteQR(ctx context.Context, userID uuid.UUID, guildID string) ([]byte, error) {
	args := m.Called(ctx, userID, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]byte), args.Error(1)
}
