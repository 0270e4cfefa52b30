// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"voidbot/config"
	"voidbot/internal/delivery/http/middleware"
	"voidbot/internal/delivery/http/response"
	"voidbot/internal/domain/constants"
	"voidbot/internal/domain/entity"
	domainerrors "voidbot/internal/domain/errors"
	"voidbot/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthHandler holds dependencies for login-flow handlers.
type AuthHandler struct {
	uc          usecase.AuthUsecase
	frontendURL string
	secureEnv   bool
	tokenTTL    time.Duration
	logger      *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase, cfg *config.Config, logger *slog.Logger) *AuthHandler {
	frontendURL := ""
	if cfg.DiscordOAuth != nil {
		frontendURL = strings.TrimSuffix(cfg.DiscordOAuth.FrontendURL, "/")
	}

	tokenTTL := 24 * time.Hour
	if cfg.Auth != nil && cfg.Auth.TokenDuration > 0 {
		tokenTTL = cfg.Auth.TokenDuration
	}

	return &AuthHandler{
		uc:          uc,
		frontendURL: frontendURL,
		secureEnv:   cfg.Env.Env == constants.EnvProduction,
		tokenTTL:    tokenTTL,
		logger:      logger,
	}
}

// userResponse is the wire shape for a user; the avatar URL is resolved
// server-side so the SPA never needs to know the CDN layout.
type userResponse struct {
	ID          uuid.UUID `json:"id"`
	DiscordID   string    `json:"discord_id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	AvatarURL   string    `json:"avatar_url"`
	Email       string    `json:"email,omitempty"`
}

func newUserResponse(u *entity.User) userResponse {
	return userResponse{
		ID:          u.ID,
		DiscordID:   u.DiscordID,
		Username:    u.Username,
		DisplayName: u.Display(),
		AvatarURL:   u.AvatarURL(),
		Email:       u.Email,
	}
}

// DiscordLogin initiates the Discord sign-in flow. With ?redirect=true the
// browser is sent straight to Discord; otherwise the authorize URL is
// returned as JSON for SPA-driven navigation.
func (h *AuthHandler) DiscordLogin(c echo.Context) error {
	out, err := h.uc.StartLogin(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	if c.QueryParam("redirect") == "true" {
		return c.Redirect(http.StatusTemporaryRedirect, out.AuthorizationURL)
	}

	return response.Success(c, http.StatusOK, map[string]string{
		"oauth_url": out.AuthorizationURL,
	}, "Discord OAuth URL generated successfully")
}

// DiscordCallback handles the server-rendered redirect back from Discord.
// Success plants the access token cookie and sends the browser to the
// dashboard; failure sends it to the frontend with a machine-readable code.
func (h *AuthHandler) DiscordCallback(c echo.Context) error {
	input := usecase.CallbackInput{
		Code:          c.QueryParam("code"),
		State:         c.QueryParam("state"),
		ProviderError: c.QueryParam("error"),
	}

	out, err := h.uc.HandleCallback(c.Request().Context(), input)
	if err != nil {
		return c.Redirect(http.StatusSeeOther, h.errorRedirect(err))
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    out.AccessToken,
		Path:     "/",
		MaxAge:   int(h.tokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.secureEnv,
		SameSite: http.SameSiteLaxMode,
	})

	return c.Redirect(http.StatusSeeOther, h.frontendURL+"/home")
}

// DiscordExchange handles the SPA variant of the callback: the frontend
// relays the redirect parameters as JSON and receives the token in the body.
func (h *AuthHandler) DiscordExchange(c echo.Context) error {
	var input struct {
		Code          string `json:"code"`
		State         string `json:"state"`
		RedirectURI   string `json:"redirect_uri"`
		ProviderError string `json:"error"`
	}
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid callback input")
	}

	out, err := h.uc.HandleCallback(c.Request().Context(), usecase.CallbackInput{
		Code:          input.Code,
		State:         input.State,
		RedirectURI:   input.RedirectURI,
		ProviderError: input.ProviderError,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"user":         newUserResponse(out.User),
		"access_token": out.AccessToken,
	}, "Discord authentication successful")
}

// Logout revokes the caller's session and clears the token cookie.
func (h *AuthHandler) Logout(c echo.Context) error {
	userID, sessionID, err := identityFromContext(c)
	if err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.Logout(c.Request().Context(), usecase.LogoutInput{
		UserID:    userID,
		SessionID: sessionID,
	}); err != nil {
		return errors.WithStack(err)
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureEnv,
		SameSite: http.SameSiteLaxMode,
	})

	return response.Success(c, http.StatusOK, map[string]string{"message": "Successfully logged out"}, "Logout successful")
}

// errorRedirect maps a callback failure to the frontend error landing URL.
// Provider rejections carry the provider's own code (access_denied etc.) so
// the frontend can distinguish user cancellation from real failures.
func (h *AuthHandler) errorRedirect(err error) string {
	code := "INTERNAL_ERROR"

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		code = appErr.ErrorCode()
		if code == domainerrors.ErrProviderError.ErrorCode() && appErr.Details() != "" {
			code = appErr.Details()
		}
	}

	return h.frontendURL + "/?auth=error&msg=" + url.QueryEscape(code)
}

// identityFromContext reads the identity the auth middleware resolved.
func identityFromContext(c echo.Context) (uuid.UUID, uuid.UUID, error) {
	userID, ok := c.Get(middleware.ContextKeyUserID).(uuid.UUID)
	if !ok {
		return uuid.Nil, uuid.Nil, domainerrors.ErrUnauthorized
	}

	sessionID, ok := c.Get(middleware.ContextKeySessionID).(uuid.UUID)
	if !ok {
		return uuid.Nil, uuid.Nil, domainerrors.ErrUnauthorized
	}

	return userID, sessionID, nil
}
