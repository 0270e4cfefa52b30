// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"voidbot/config"
	"voidbot/internal/domain/service"
)

const defaultTokenTTL = time.Hour * 24

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
// The dashboard issues a single HS256 access token per login; the server-side
// session row, not a refresh token, is what keeps a login alive.
type jwtService struct {
	secret   string        // Secret key for signing tokens.
	tokenTTL time.Duration // Time-to-live for tokens.
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	ttl := defaultTokenTTL
	if cfg.Auth != nil && cfg.Auth.TokenDuration > 0 {
		ttl = cfg.Auth.TokenDuration
	}

	return &jwtService{
		secret:   cfg.SecretKey.Access,
		tokenTTL: ttl,
	}, nil
}

// GenerateToken creates a new access token bound to a user and session.
// The session ID lets a revoked session invalidate the token before its exp.
func (s *jwtService) GenerateToken(userID uuid.UUID, sessionID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID.String(),
		"sid": sessionID.String(),
		"iat": now.Unix(),
		"exp": now.Add(s.tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(s.secret))
}

// ValidateToken checks the validity of a token string and extracts its claims.
func (s *jwtService) ValidateToken(tokenString string) (*service.Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, jwt.ErrTokenInvalidClaims
	}

	userID, err := parseUUIDClaim(mapClaims, "sub")
	if err != nil {
		return nil, err
	}
	sessionID, err := parseUUIDClaim(mapClaims, "sid")
	if err != nil {
		return nil, err
	}

	return &service.Claims{
		UserID:    userID,
		SessionID: sessionID,
	}, nil
}

// GetTokenDuration returns the configured token lifetime.
func (s *jwtService) GetTokenDuration() time.Duration {
	return s.tokenTTL
}

func parseUUIDClaim(claims jwt.MapClaims, name string) (uuid.UUID, error) {
	raw, ok := claims[name].(string)
	if !ok {
		return uuid.Nil, jwt.ErrTokenInvalidClaims
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, jwt.ErrTokenInvalidClaims
	}

	return id, nil
}
