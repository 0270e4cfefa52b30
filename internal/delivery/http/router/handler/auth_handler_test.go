package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"voidbot/config"
	"voidbot/internal/delivery/http/middleware"
	"voidbot/internal/domain/entity"
	domainerrors "voidbot/internal/domain/errors"
	mockUsecase "voidbot/internal/mocks/usecase"
	"voidbot/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testFrontendURL = "http://localhost:3000"

func newAuthHandler(t *testing.T) (*AuthHandler, *mockUsecase.MockAuthUsecase) {
	t.Helper()

	uc := mockUsecase.NewMockAuthUsecase(t)
	cfg := &config.Config{
		DiscordOAuth: &config.DiscordOAuthConfig{FrontendURL: testFrontendURL},
		Auth:         &config.AuthConfig{TokenDuration: time.Hour},
	}

	return NewAuthHandler(uc, cfg, slog.New(slog.NewTextHandler(io.Discard, nil))), uc
}

func newEchoContext(t *testing.T, method, target string, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()

	return echo.New().NewContext(req, rec), rec
}

func setIdentity(c echo.Context, userID, sessionID uuid.UUID) {
	c.Set(middleware.ContextKeyUserID, userID)
	c.Set(middleware.ContextKeySessionID, sessionID)
}

func TestAuthHandler_DiscordLogin_JSON(t *testing.T) {
	h, uc := newAuthHandler(t)
	c, rec := newEchoContext(t, http.MethodGet, "/api/auth/discord/login", "")

	uc.On("StartLogin", c.Request().Context()).Return(&usecase.StartLoginOutput{
		AuthorizationURL: "https://discord.com/oauth2/authorize?state=abc",
	}, nil)

	require.NoError(t, h.DiscordLogin(c))

	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Data["oauth_url"], "state=abc")
}

func TestAuthHandler_DiscordLogin_Redirect(t *testing.T) {
	h, uc := newAuthHandler(t)
	c, rec := newEchoContext(t, http.MethodGet, "/api/auth/discord/login?redirect=true", "")

	uc.On("StartLogin", c.Request().Context()).Return(&usecase.StartLoginOutput{
		AuthorizationURL: "https://discord.com/oauth2/authorize?state=abc",
	}, nil)

	require.NoError(t, h.DiscordLogin(c))

	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, "https://discord.com/oauth2/authorize?state=abc", rec.Header().Get(echo.HeaderLocation))
}

func TestAuthHandler_DiscordCallback_Success(t *testing.T) {
	h, uc := newAuthHandler(t)
	c, rec := newEchoContext(t, http.MethodGet, "/auth/callback?code=code123&state=state123", "")

	uc.On("HandleCallback", c.Request().Context(), usecase.CallbackInput{
		Code:  "code123",
		State: "state123",
	}).Return(&usecase.CallbackOutput{
		User:        &entity.User{ID: uuid.New(), DiscordID: "123"},
		AccessToken: "jwt_token",
	}, nil)

	require.NoError(t, h.DiscordCallback(c))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, testFrontendURL+"/home", rec.Header().Get(echo.HeaderLocation))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, middleware.AccessTokenCookie, cookies[0].Name)
	assert.Equal(t, "jwt_token", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestAuthHandler_DiscordCallback_Failure(t *testing.T) {
	h, uc := newAuthHandler(t)
	c, rec := newEchoContext(t, http.MethodGet, "/auth/callback?code=code123&state=bogus", "")

	uc.On("HandleCallback", c.Request().Context(), usecase.CallbackInput{
		Code:  "code123",
		State: "bogus",
	}).Return(nil, domainerrors.ErrStateMismatch)

	require.NoError(t, h.DiscordCallback(c))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, testFrontendURL+"/?auth=error&msg=STATE_MISMATCH", rec.Header().Get(echo.HeaderLocation))
	assert.Empty(t, rec.Result().Cookies())
}

func TestAuthHandler_DiscordCallback_ProviderError(t *testing.T) {
	h, uc := newAuthHandler(t)
	c, rec := newEchoContext(t, http.MethodGet, "/auth/callback?error=access_denied", "")

	uc.On("HandleCallback", c.Request().Context(), usecase.CallbackInput{
		ProviderError: "access_denied",
	}).Return(nil, domainerrors.ErrProviderError.WithDetails("access_denied"))

	require.NoError(t, h.DiscordCallback(c))

	// The provider's own code reaches the frontend, not the generic kind.
	assert.Equal(t, testFrontendURL+"/?auth=error&msg=access_denied", rec.Header().Get(echo.HeaderLocation))
}

func TestAuthHandler_DiscordExchange_Success(t *testing.T) {
	h, uc := newAuthHandler(t)
	c, rec := newEchoContext(t, http.MethodPost, "/api/auth/discord",
		`{"code":"code123","state":"state123","redirect_uri":"http://localhost:8080/auth/callback"}`)

	userID := uuid.New()
	uc.On("HandleCallback", c.Request().Context(), usecase.CallbackInput{
		Code:        "code123",
		State:       "state123",
		RedirectURI: "http://localhost:8080/auth/callback",
	}).Return(&usecase.CallbackOutput{
		User: &entity.User{
			ID:        userID,
			DiscordID: "123456789012345678",
			Username:  "voiduser",
		},
		AccessToken: "jwt_token",
	}, nil)

	require.NoError(t, h.DiscordExchange(c))

	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			AccessToken string       `json:"access_token"`
			User        userResponse `json:"user"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "jwt_token", body.Data.AccessToken)
	assert.Equal(t, "123456789012345678", body.Data.User.DiscordID)
	assert.NotEmpty(t, body.Data.User.AvatarURL)
}

func TestAuthHandler_DiscordExchange_Failure(t *testing.T) {
	h, uc := newAuthHandler(t)
	c, _ := newEchoContext(t, http.MethodPost, "/api/auth/discord", `{"state":"state123"}`)

	uc.On("HandleCallback", c.Request().Context(), usecase.CallbackInput{State: "state123"}).
		Return(nil, domainerrors.ErrMissingCode)

	err := h.DiscordExchange(c)

	// The error propagates to the central handler carrying its code.
	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "MISSING_CODE", appErr.ErrorCode())
}

func TestAuthHandler_Logout(t *testing.T) {
	h, uc := newAuthHandler(t)
	c, rec := newEchoContext(t, http.MethodPost, "/api/auth/logout", "")

	userID := uuid.New()
	sessionID := uuid.New()
	setIdentity(c, userID, sessionID)

	uc.On("Logout", c.Request().Context(), usecase.LogoutInput{
		UserID:    userID,
		SessionID: sessionID,
	}).Return(nil)

	require.NoError(t, h.Logout(c))

	assert.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, middleware.AccessTokenCookie, cookies[0].Name)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestAuthHandler_Logout_NoIdentity(t *testing.T) {
	h, _ := newAuthHandler(t)
	c, _ := newEchoContext(t, http.MethodPost, "/api/auth/logout", "")

	err := h.Logout(c)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "UNAUTHORIZED", appErr.ErrorCode())
}
