package usecase

import (
	"context"

	"voidbot/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Output DTOs ---

// ListGuildsOutput returns the guilds the user can manage plus their current
// dashboard selection. ActiveGuildID is empty when nothing is selected.
type ListGuildsOutput struct {
	Guilds        []*entity.Guild
	ActiveGuildID string
}

// InviteOutput returns the bot invite link for a guild.
type InviteOutput struct {
	URL string
}

// GuildUsecase defines the interface for guild-related business operations.
type GuildUsecase interface {
	// ListGuilds fetches the user's guilds from the provider and filters them
	// to the ones they can manage. A revoked provider token revokes the local
	// session and surfaces as an unauthorized error.
	ListGuilds(ctx context.Context, userID uuid.UUID, sessionID uuid.UUID) (*ListGuildsOutput, error)

	// SetActiveGuild selects the guild the dashboard operates on, replacing
	// any previous selection. The guild must be in the user's manageable set.
	SetActiveGuild(ctx context.Context, userID uuid.UUID, sessionID uuid.UUID, guildID string) error

	// GetActiveGuild returns the user's current selection, or nil when no
	// guild is selected.
	GetActiveGuild(ctx context.Context, userID uuid.UUID) (*entity.GuildSelection, error)

	// ClearActiveGuild drops the selection.
	ClearActiveGuild(ctx context.Context, userID uuid.UUID) error

	// BuildInvite returns the bot invite URL for the guild and optimistically
	// records the guild as the active selection, so the dashboard lands on it
	// once the invite completes.
	BuildInvite(ctx context.Context, userID uuid.UUID, guildID string) (*InviteOutput, error)

	// BuildInviteQR renders the invite URL as a PNG QR code.
	BuildInviteQR(ctx context.Context, userID uuid.UUID, guildID string) ([]byte, error)
}
