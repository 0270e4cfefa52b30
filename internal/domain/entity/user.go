// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core entity in the system, representing one Discord account
// that has signed in to the dashboard at least once.
type User struct {
	ID          uuid.UUID // The unique identifier for the user within this service.
	DiscordID   string    // The user's immutable Discord snowflake ID.
	Username    string    // The Discord username at the time of the last login.
	DisplayName string    // The Discord global display name, may be empty.
	AvatarHash  string    // The Discord avatar hash, empty when the user has no custom avatar.
	Email       string    // The email returned by the identity provider, may be empty.
	CreatedAt   time.Time // Timestamp of when this user account first logged in.
	UpdatedAt   time.Time // Timestamp of the last modification to this user's data.
}

// AvatarURL returns the CDN URL for the user's avatar, falling back to the
// default embed avatar when the user has no custom one.
func (u *User) AvatarURL() string {
	if u.AvatarHash == "" {
		return "https://cdn.discordapp.com/embed/avatars/0.png"
	}

	return "https://cdn.discordapp.com/avatars/" + u.DiscordID + "/" + u.AvatarHash + ".png?size=128"
}

// Display returns the name the dashboard should show for the user.
func (u *User) Display() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}

	return u.Username
}
