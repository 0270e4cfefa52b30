// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"time"

	"voidbot/config"
	deliverycontext "voidbot/internal/delivery/context"
	"voidbot/internal/domain/entity"
	domainerrors "voidbot/internal/domain/errors"
	"voidbot/internal/domain/repository"
	"voidbot/internal/domain/service"
	"voidbot/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const defaultSessionDuration = 7 * 24 * time.Hour

// authService implements the AuthUsecase interface.
type authService struct {
	txManager       repository.TransactionManager
	userRepo        repository.UserRepository
	sessionRepo     repository.SessionRepository
	selectionRepo   repository.GuildSelectionRepository
	oauthProvider   service.OAuthProvider
	tokenService    service.TokenService
	stateStore      service.StateStore
	publisher       service.EventPublisher
	redirectURI     string
	sessionDuration time.Duration
	logger          *slog.Logger
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager     repository.TransactionManager
	UserRepo      repository.UserRepository
	SessionRepo   repository.SessionRepository
	SelectionRepo repository.GuildSelectionRepository
	OAuthProvider service.OAuthProvider
	TokenService  service.TokenService
	StateStore    service.StateStore
	Publisher     service.EventPublisher
	Config        *config.Config
	Logger        *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	sessionDuration := defaultSessionDuration
	if params.Config != nil && params.Config.Auth != nil && params.Config.Auth.SessionDuration > 0 {
		sessionDuration = params.Config.Auth.SessionDuration
	}

	redirectURI := ""
	if params.Config != nil && params.Config.DiscordOAuth != nil {
		redirectURI = params.Config.DiscordOAuth.RedirectURI
	}

	return &authService{
		txManager:       params.TxManager,
		userRepo:        params.UserRepo,
		sessionRepo:     params.SessionRepo,
		selectionRepo:   params.SelectionRepo,
		oauthProvider:   params.OAuthProvider,
		tokenService:    params.TokenService,
		stateStore:      params.StateStore,
		publisher:       params.Publisher,
		redirectURI:     redirectURI,
		sessionDuration: sessionDuration,
		logger:          params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// StartLogin issues a state token and builds the provider authorize URL.
func (srv *authService) StartLogin(ctx context.Context) (*usecase.StartLoginOutput, error) {
	state, err := srv.stateStore.Issue(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue state token")
	}

	authURL, err := srv.oauthProvider.BuildAuthorizationURL(state)
	if err != nil {
		return nil, domainerrors.ErrConfigInvalid.WrapMessage(err.Error())
	}

	srv.log(ctx).Info("Login initiated", slog.String("state_prefix", statePrefix(state)))

	return &usecase.StartLoginOutput{AuthorizationURL: authURL}, nil
}

// HandleCallback drives the authorization-code redemption.
//
// The checks run in a fixed order: provider error first, then the missing
// code, then the state token. The state is consumed before any outbound call,
// so a duplicate callback carrying the same state fails the state check and
// the code is exchanged at most once.
func (srv *authService) HandleCallback(ctx context.Context, input usecase.CallbackInput) (*usecase.CallbackOutput, error) {
	if input.ProviderError != "" {
		srv.log(ctx).Warn("Provider returned an error", slog.String("error", input.ProviderError))
		srv.discardState(ctx, input.State)

		return nil, domainerrors.ErrProviderError.WithDetails(input.ProviderError)
	}

	if input.Code == "" {
		srv.discardState(ctx, input.State)

		return nil, domainerrors.ErrMissingCode
	}

	if !srv.stateStore.Consume(ctx, input.State) {
		srv.log(ctx).Warn("State token rejected", slog.String("state_prefix", statePrefix(input.State)))

		return nil, domainerrors.ErrStateMismatch
	}

	if input.RedirectURI != "" && input.RedirectURI != srv.redirectURI {
		return nil, domainerrors.ErrRedirectURIMismatch
	}

	token, err := srv.oauthProvider.ExchangeCode(ctx, input.Code, srv.redirectURI)
	if err != nil {
		srv.log(ctx).Error("Code exchange failed", slog.Any("error", err))

		return nil, domainerrors.ErrExchangeFailed.WithDetails(err.Error())
	}

	oauthUser, err := srv.oauthProvider.FetchUser(ctx, token.AccessToken)
	if err != nil {
		srv.log(ctx).Error("Identity fetch failed", slog.Any("error", err))

		return nil, domainerrors.ErrMissingUser.WithDetails(err.Error())
	}
	if oauthUser == nil || oauthUser.ID == "" {
		return nil, domainerrors.ErrMissingUser
	}

	user := &entity.User{
		DiscordID:   oauthUser.ID,
		Username:    oauthUser.Username,
		DisplayName: oauthUser.DisplayName,
		AvatarHash:  oauthUser.AvatarHash,
		Email:       oauthUser.Email,
	}

	sessionID := uuid.New()

	var accessToken string
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()
		sessionRepo := repoFactory.NewSessionRepository()

		if err := userRepo.Upsert(ctx, user); err != nil {
			return errors.Wrap(err, "failed to upsert user")
		}

		accessToken, err = srv.tokenService.GenerateToken(user.ID, sessionID)
		if err != nil {
			return errors.Wrap(err, "failed to generate access token")
		}

		session := &entity.Session{
			ID:                   sessionID,
			UserID:               user.ID,
			TokenHash:            hashToken(accessToken),
			ProviderAccessToken:  token.AccessToken,
			ProviderRefreshToken: token.RefreshToken,
			ExpiresAt:            time.Now().Add(srv.sessionDuration),
		}

		return sessionRepo.CreateSession(ctx, session)
	})
	if err != nil {
		return nil, err
	}

	srv.publishSessionEvent(ctx, service.SessionEventCreated, user.ID, sessionID, "")

	srv.log(ctx).Info("Login completed",
		slog.String("user_id", user.ID.String()),
		slog.String("session_id", sessionID.String()),
	)

	return &usecase.CallbackOutput{
		User:        user,
		AccessToken: accessToken,
	}, nil
}

// Authenticate resolves a dashboard bearer token to its user and session.
func (srv *authService) Authenticate(ctx context.Context, token string) (*usecase.AuthenticatedUser, error) {
	if token == "" {
		return nil, domainerrors.ErrNoToken
	}

	claims, err := srv.tokenService.ValidateToken(token)
	if err != nil {
		return nil, domainerrors.ErrUnauthorized.WrapMessage("invalid access token")
	}

	session, err := srv.sessionRepo.FindSessionByID(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, domainerrors.ErrSessionNotFound
		}

		return nil, errors.Wrap(err, "failed to load session")
	}

	if !session.Active(time.Now()) || session.UserID != claims.UserID {
		return nil, domainerrors.ErrSessionNotFound
	}
	if session.TokenHash != hashToken(token) {
		return nil, domainerrors.ErrUnauthorized.WrapMessage("token does not match session")
	}

	user, err := srv.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to load user")
	}

	return &usecase.AuthenticatedUser{
		User:      user,
		SessionID: session.ID,
	}, nil
}

// Logout revokes the session and drops the active guild selection. Revoking
// an already revoked session succeeds.
func (srv *authService) Logout(ctx context.Context, input usecase.LogoutInput) error {
	if err := srv.sessionRepo.DeleteSession(ctx, input.SessionID); err != nil {
		return errors.Wrap(err, "failed to delete session")
	}

	if err := srv.selectionRepo.ClearActiveGuild(ctx, input.UserID); err != nil {
		return errors.Wrap(err, "failed to clear active guild")
	}

	srv.publishSessionEvent(ctx, service.SessionEventRevoked, input.UserID, input.SessionID, "")

	srv.log(ctx).Info("Logout completed",
		slog.String("user_id", input.UserID.String()),
		slog.String("session_id", input.SessionID.String()),
	)

	return nil
}

// PurgeExpiredSessions drops session rows whose expiry has passed. Expired
// sessions are already unusable through Authenticate; this reclaims the rows.
func (srv *authService) PurgeExpiredSessions(ctx context.Context) error {
	if err := srv.sessionRepo.DeleteExpiredSessions(ctx); err != nil {
		return errors.Wrap(err, "failed to purge expired sessions")
	}

	srv.log(ctx).Info("Expired sessions purged")

	return nil
}

// publishSessionEvent emits a session lifecycle event. Publishing is best
// effort: a broker outage must not fail the login or logout itself.
func (srv *authService) publishSessionEvent(ctx context.Context, eventType string, userID, sessionID uuid.UUID, guildID string) {
	event := &service.SessionEvent{
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		Type:       eventType,
		UserID:     userID.String(),
		SessionID:  sessionID.String(),
		GuildID:    guildID,
		OccurredAt: time.Now().Unix(),
	}

	if err := srv.publisher.PublishSessionEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish session event",
			slog.String("type", eventType),
			slog.Any("error", err),
		)
	}
}

// discardState burns a state token on branches that reject the callback
// before the state check. A rejected redirect must not leave a redeemable
// token behind.
func (srv *authService) discardState(ctx context.Context, state string) {
	if state != "" {
		srv.stateStore.Consume(ctx, state)
	}
}

// hashToken stores only a digest of the bearer token, so a leaked sessions
// table cannot be replayed against the API.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))

	return hex.EncodeToString(sum[:])
}

// statePrefix truncates a state token for logging.
func statePrefix(state string) string {
	if len(state) <= 8 {
		return state
	}

	return state[:8]
}
