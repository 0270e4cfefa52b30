package entity

import (
	"time"

	"github.com/google/uuid"
)

// PermissionManageGuild is Discord's "Manage Server" permission bit.
const PermissionManageGuild int64 = 0x20

// Guild is a Discord server as reported by the provider's guild listing.
// Guilds are transient: they are re-fetched on every dashboard load and never
// persisted.
type Guild struct {
	ID          string // Discord snowflake ID of the guild.
	Name        string // Guild display name.
	IconHash    string // Icon hash, empty when the guild has no icon.
	Owner       bool   // Whether the current user owns the guild.
	Permissions int64  // The user's permission bitmask within the guild.
}

// Manageable reports whether the user may administer the guild: either they
// own it or they hold the Manage Server permission.
func (g *Guild) Manageable() bool {
	return g.Owner || g.Permissions&PermissionManageGuild != 0
}

// IconURL returns the CDN URL for the guild icon, or empty when it has none.
func (g *Guild) IconURL() string {
	if g.IconHash == "" {
		return ""
	}

	return "https://cdn.discordapp.com/icons/" + g.ID + "/" + g.IconHash + ".png?size=128"
}

// FilterManageable returns the subset of guilds the user may administer.
// The result is always a strict subset of the input; entries failing both the
// ownership and the permission check are dropped.
func FilterManageable(guilds []*Guild) []*Guild {
	filtered := make([]*Guild, 0, len(guilds))
	for _, g := range guilds {
		if g.Manageable() {
			filtered = append(filtered, g)
		}
	}

	return filtered
}

// GuildSelection is the single guild the user has designated as the bot's
// target. The free tier allows at most one selection per user; setting a new
// one replaces the previous selection.
type GuildSelection struct {
	UserID    uuid.UUID // The user owning the selection. Unique: one row per user.
	GuildID   string    // Discord snowflake ID of the selected guild.
	UpdatedAt time.Time // Timestamp of the last change to the selection.
}
