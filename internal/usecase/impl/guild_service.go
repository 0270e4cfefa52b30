package impl

import (
	"context"
	"log/slog"
	"time"

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

// guildService implements the GuildUsecase interface.
type guildService struct {
	sessionRepo   repository.SessionRepository
	selectionRepo repository.GuildSelectionRepository
	oauthProvider service.OAuthProvider
	qrService     service.QRCodeService
	publisher     service.EventPublisher
	logger        *slog.Logger
}

// GuildServiceParams holds dependencies for GuildService, injected by Fx.
type GuildServiceParams struct {
	fx.In

	SessionRepo   repository.SessionRepository
	SelectionRepo repository.GuildSelectionRepository
	OAuthProvider service.OAuthProvider
	QRService     service.QRCodeService
	Publisher     service.EventPublisher
	Logger        *slog.Logger
}

// NewGuildService is the constructor for guildService.
func NewGuildService(params GuildServiceParams) usecase.GuildUsecase {
	return &guildService{
		sessionRepo:   params.SessionRepo,
		selectionRepo: params.SelectionRepo,
		oauthProvider: params.OAuthProvider,
		qrService:     params.QRService,
		publisher:     params.Publisher,
		logger:        params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *guildService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListGuilds fetches the user's guilds from the provider and filters them to
// the ones they can manage.
func (srv *guildService) ListGuilds(ctx context.Context, userID uuid.UUID, sessionID uuid.UUID) (*usecase.ListGuildsOutput, error) {
	guilds, err := srv.fetchManageableGuilds(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	activeGuildID := ""
	selection, err := srv.selectionRepo.FindActiveGuild(ctx, userID)
	switch {
	case err == nil:
		activeGuildID = selection.GuildID
	case errors.Is(err, repository.ErrSelectionNotFound):
		// No selection yet.
	default:
		return nil, errors.Wrap(err, "failed to load active guild")
	}

	srv.log(ctx).Info("Guilds listed",
		slog.String("user_id", userID.String()),
		slog.Int("manageable", len(guilds)),
	)

	return &usecase.ListGuildsOutput{
		Guilds:        guilds,
		ActiveGuildID: activeGuildID,
	}, nil
}

// SetActiveGuild selects the guild the dashboard operates on. The guild must
// be in the user's manageable set; anything else is rejected even when the
// guild exists, so a crafted request cannot select someone else's server.
func (srv *guildService) SetActiveGuild(ctx context.Context, userID uuid.UUID, sessionID uuid.UUID, guildID string) error {
	if guildID == "" {
		return domainerrors.ErrValidationFailed.WrapMessage("guild id must not be empty")
	}

	guilds, err := srv.fetchManageableGuilds(ctx, userID, sessionID)
	if err != nil {
		return err
	}

	manageable := false
	for _, g := range guilds {
		if g.ID == guildID {
			manageable = true

			break
		}
	}
	if !manageable {
		return domainerrors.ErrValidationFailed.WrapMessage("guild is not manageable by this user")
	}

	if err := srv.selectionRepo.SetActiveGuild(ctx, userID, guildID); err != nil {
		return errors.Wrap(err, "failed to set active guild")
	}

	srv.log(ctx).Info("Active guild set",
		slog.String("user_id", userID.String()),
		slog.String("guild_id", guildID),
	)

	return nil
}

// GetActiveGuild returns the user's current selection, or nil when no guild
// is selected. An empty selection is a normal state, not an error.
func (srv *guildService) GetActiveGuild(ctx context.Context, userID uuid.UUID) (*entity.GuildSelection, error) {
	selection, err := srv.selectionRepo.FindActiveGuild(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrSelectionNotFound) {
			return nil, nil
		}

		return nil, errors.Wrap(err, "failed to load active guild")
	}

	return selection, nil
}

// ClearActiveGuild drops the selection.
func (srv *guildService) ClearActiveGuild(ctx context.Context, userID uuid.UUID) error {
	if err := srv.selectionRepo.ClearActiveGuild(ctx, userID); err != nil {
		return errors.Wrap(err, "failed to clear active guild")
	}

	return nil
}

// BuildInvite returns the bot invite URL for the guild and optimistically
// records it as the active selection. The optimistic write means the
// dashboard shows the guild as pending immediately; if the admin abandons the
// invite, the next guild sync simply shows the bot as absent.
func (srv *guildService) BuildInvite(ctx context.Context, userID uuid.UUID, guildID string) (*usecase.InviteOutput, error) {
	if guildID == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("guild id must not be empty")
	}

	if err := srv.selectionRepo.SetActiveGuild(ctx, userID, guildID); err != nil {
		return nil, errors.Wrap(err, "failed to record invite selection")
	}

	return &usecase.InviteOutput{
		URL: srv.oauthProvider.BuildInviteURL(guildID),
	}, nil
}

// BuildInviteQR renders the invite URL as a PNG QR code.
func (srv *guildService) BuildInviteQR(ctx context.Context, userID uuid.UUID, guildID string) ([]byte, error) {
	invite, err := srv.BuildInvite(ctx, userID, guildID)
	if err != nil {
		return nil, err
	}

	png, err := srv.qrService.GenerateInviteQR(invite.URL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to render invite QR code")
	}

	return png, nil
}

// fetchManageableGuilds loads the session's provider token, pulls the guild
// list, and filters it. A 401 from the provider revokes the local session
// before surfacing as an unauthorized error, because the stored token is
// useless from that point on.
func (srv *guildService) fetchManageableGuilds(ctx context.Context, userID uuid.UUID, sessionID uuid.UUID) ([]*entity.Guild, error) {
	session, err := srv.sessionRepo.FindSessionByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, domainerrors.ErrNoToken
		}

		return nil, errors.Wrap(err, "failed to load session")
	}
	if !session.Active(time.Now()) {
		return nil, domainerrors.ErrNoToken
	}

	guilds, err := srv.oauthProvider.FetchGuilds(ctx, session.ProviderAccessToken)
	if err != nil {
		if errors.Is(err, service.ErrProviderTokenRevoked) {
			srv.revokeSession(ctx, userID, sessionID)

			return nil, domainerrors.ErrUnauthorized
		}

		srv.log(ctx).Error("Guild fetch failed", slog.Any("error", err))

		return nil, domainerrors.ErrGuildFetchFailed.WithDetails(err.Error())
	}

	return entity.FilterManageable(guilds), nil
}

// revokeSession drops a session whose provider token turned out to be dead
// and publishes the revocation.
func (srv *guildService) revokeSession(ctx context.Context, userID uuid.UUID, sessionID uuid.UUID) {
	if err := srv.sessionRepo.DeleteSession(ctx, sessionID); err != nil {
		srv.log(ctx).Warn("Failed to delete revoked session", slog.Any("error", err))
	}

	event := &service.SessionEvent{
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		Type:       service.SessionEventRevoked,
		UserID:     userID.String(),
		SessionID:  sessionID.String(),
		OccurredAt: time.Now().Unix(),
	}
	if err := srv.publisher.PublishSessionEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish session event", slog.Any("error", err))
	}

	srv.log(ctx).Info("Session revoked after provider rejected token",
		slog.String("user_id", userID.String()),
		slog.String("session_id", sessionID.String()),
	)
}
