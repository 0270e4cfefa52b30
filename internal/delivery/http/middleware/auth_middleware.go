package middleware

import (
	"strings"

	"voidbot/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// Context keys the auth middleware populates for downstream handlers.
const (
	ContextKeyUser      = "user"
	ContextKeyUserID    = "userID"
	ContextKeySessionID = "sessionID"
)

// AccessTokenCookie carries the dashboard token for the server-rendered flow,
// where the browser never sees the token in a response body.
const AccessTokenCookie = "voidbot_token"

// AuthMiddleware resolves the bearer token to a user and session before the
// handler runs.
type AuthMiddleware struct {
	authUC usecase.AuthUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(authUC usecase.AuthUsecase) *AuthMiddleware {
	return &AuthMiddleware{authUC: authUC}
}

// Authenticate validates the access token and stores the resolved identity on
// the request context. Errors flow to the central error handler so the
// response envelope carries the machine-readable code.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := extractToken(c)

		authed, err := m.authUC.Authenticate(c.Request().Context(), token)
		if err != nil {
			return errors.WithStack(err)
		}

		c.Set(ContextKeyUser, authed.User)
		c.Set(ContextKeyUserID, authed.User.ID)
		c.Set(ContextKeySessionID, authed.SessionID)

		return next(c)
	}
}

// extractToken pulls the access token from the Authorization header, falling
// back to the session cookie set by the server-rendered callback.
func extractToken(c echo.Context) string {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader != "" {
		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token != authHeader {
			return token
		}

		// A non-Bearer Authorization header is not a token at all.
		return ""
	}

	if cookie, err := c.Cookie(AccessTokenCookie); err == nil {
		return cookie.Value
	}

	return ""
}
