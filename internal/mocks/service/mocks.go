// Package service provides hand-written testify mocks for the domain service
// interfaces.
package service

import (
	"context"
	"testing"
	"time"

	"voidbot/internal/domain/entity"
	"voidbot/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockOAuthProvider mocks service.OAuthProvider.
type MockOAuthProvider struct {
	mock.Mock
}

// NewMockOAuthProvider creates a mock that asserts its expectations when the test ends.
func NewMockOAuthProvider(t *testing.T) *MockOAuthProvider {
	m := &MockOAuthProvider{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockOAuthProvider) BuildAuthorizationURL(state string) (string, error) {
	args := m.Called(state)

	return args.String(0), args.Error(1)
}

func (m *MockOAuthProvider) ExchangeCode(ctx context.Context, code string, redirectURI string) (*service.OAuthToken, error) {
	args := m.Called(ctx, code, redirectURI)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.OAuthToken), args.Error(1)
}

func (m *MockOAuthProvider) FetchUser(ctx context.Context, accessToken string) (*service.OAuthUser, error) {
	args := m.Called(ctx, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.OAuthUser), args.Error(1)
}

func (m *MockOAuthProvider) FetchGuilds(ctx context.Context, accessToken string) ([]*entity.Guild, error) {
	args := m.Called(ctx, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Guild), args.Error(1)
}

func (m *MockOAuthProvider) BuildInviteURL(guildID string) string {
	args := m.Called(guildID)

	return args.String(0)
}

// MockTokenService mocks service.TokenService.
type MockTokenService struct {
	mock.Mock
}

// NewMockTokenService creates a mock that asserts its expectations when the test ends.
func NewMockTokenService(t *testing.T) *MockTokenService {
	m := &MockTokenService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockTokenService) GenerateToken(userID uuid.UUID, sessionID uuid.UUID) (string, error) {
	args := m.Called(userID, sessionID)

	return args.String(0), args.Error(1)
}

func (m *MockTokenService) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.Claims), args.Error(1)
}

func (m *MockTokenService) GetTokenDuration() time.Duration {
	args := m.Called()

	return args.Get(0).(time.Duration)
}

// MockStateStore mocks service.StateStore.
type MockStateStore struct {
	mock.Mock
}

// NewMockStateStore creates a mock that asserts its expectations when the test ends.
func NewMockStateStore(t *testing.T) *MockStateStore {
	m := &MockStateStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockStateStore) Issue(ctx context.Context) (string, error) {
	args := m.Called(ctx)

	return args.String(0), args.Error(1)
}

func (m *MockStateStore) Consume(ctx context.Context, state string) bool {
	args := m.Called(ctx, state)

	return args.Bool(0)
}

// MockEventPublisher mocks service.EventPublisher.
type MockEventPublisher struct {
	mock.Mock
}

// NewMockEventPublisher creates a mock that asserts its expectations when the test ends.
func NewMockEventPublisher(t *testing.T) *MockEventPublisher {
	m := &MockEventPublisher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockEventPublisher) PublishSessionEvent(ctx context.Context, event *service.SessionEvent) error {
	args := m.Called(ctx, event)

	return args.Error(0)
}

func (m *MockEventPublisher) Close() error {
	args := m.Called()

	return args.Error(0)
}

// MockQRCodeService mocks service.QRCodeService.
type MockQRCodeService struct {
	mock.Mock
}

// NewMockQRCodeService creates a mock that asserts its expectations when the test ends.
func NewMockQRCodeService(t *testing.T) *MockQRCodeService {
	m := &MockQRCodeService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockQRCodeService) GenerateInviteQR(inviteURL string) ([]byte, error) {
	args := m.Called(inviteURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]byte), args.Error(1)
}
