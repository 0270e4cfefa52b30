// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"voidbot/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrSelectionNotFound is returned when a user has no active guild selection.
var ErrSelectionNotFound = errors.New("guild selection not found")

// GuildSelectionRepository persists which guild a user currently manages in
// the dashboard. Each user holds at most one selection; setting a new one
// replaces the old.
type GuildSelectionRepository interface {
	// SetActiveGuild records guildID as the user's active guild, replacing any
	// previous selection in the same statement.
	SetActiveGuild(ctx context.Context, userID uuid.UUID, guildID string) error

	// FindActiveGuild retrieves the user's current selection.
	FindActiveGuild(ctx context.Context, userID uuid.UUID) (*entity.GuildSelection, error)

	// ClearActiveGuild removes the user's selection. Clearing a user with no
	// selection is not an error.
	ClearActiveGuild(ctx context.Context, userID uuid.UUID) error
}
