package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"voidbot/internal/domain/entity"
	domainerrors "voidbot/internal/domain/errors"
	mockUsecase "voidbot/internal/mocks/usecase"
	"voidbot/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func runAuthMiddleware(t *testing.T, uc usecase.AuthUsecase, decorate func(*http.Request)) (echo.Context, error) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/api/discord/guilds", nil)
	if decorate != nil {
		decorate(req)
	}
	c := echo.New().NewContext(req, httptest.NewRecorder())

	handlerCalled := false
	err := NewAuthMiddleware(uc).Authenticate(func(c echo.Context) error {
		handlerCalled = true

		return nil
	})(c)

	if err != nil {
		assert.False(t, handlerCalled)
	}

	return c, err
}

func TestAuthMiddleware_BearerToken(t *testing.T) {
	uc := mockUsecase.NewMockAuthUsecase(t)

	userID := uuid.New()
	sessionID := uuid.New()
	uc.On("Authenticate", mock.Anything, "jwt_token").Return(&usecase.AuthenticatedUser{
		User:      &entity.User{ID: userID},
		SessionID: sessionID,
	}, nil)

	c, err := runAuthMiddleware(t, uc, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer jwt_token")
	})

	require.NoError(t, err)
	assert.Equal(t, userID, c.Get(ContextKeyUserID))
	assert.Equal(t, sessionID, c.Get(ContextKeySessionID))
}

func TestAuthMiddleware_CookieFallback(t *testing.T) {
	uc := mockUsecase.NewMockAuthUsecase(t)

	userID := uuid.New()
	uc.On("Authenticate", mock.Anything, "cookie_token").Return(&usecase.AuthenticatedUser{
		User:      &entity.User{ID: userID},
		SessionID: uuid.New(),
	}, nil)

	c, err := runAuthMiddleware(t, uc, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: "cookie_token"})
	})

	require.NoError(t, err)
	assert.Equal(t, userID, c.Get(ContextKeyUserID))
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	uc := mockUsecase.NewMockAuthUsecase(t)

	uc.On("Authenticate", mock.Anything, "").Return(nil, domainerrors.ErrNoToken)

	_, err := runAuthMiddleware(t, uc, nil)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NO_TOKEN", appErr.ErrorCode())
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	uc := mockUsecase.NewMockAuthUsecase(t)

	// A Basic header is not a bearer token; the usecase sees an empty token.
	uc.On("Authenticate", mock.Anything, "").Return(nil, domainerrors.ErrNoToken)

	_, err := runAuthMiddleware(t, uc, func(req *http.Request) {
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	})

	require.Error(t, err)
}

func TestAuthMiddleware_RevokedSession(t *testing.T) {
	uc := mockUsecase.NewMockAuthUsecase(t)

	uc.On("Authenticate", mock.Anything, "stale_token").
		Return(nil, domainerrors.ErrSessionNotFound)

	_, err := runAuthMiddleware(t, uc, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer stale_token")
	})

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusUnauthorized, appErr.HTTPCode())
}
