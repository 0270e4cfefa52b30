package model

import (
	"time"

	"github.com/google/uuid"
)

// GuildSelectionModel mirrors the 'guild_selections' table. The primary key
// on user_id is what enforces at most one active guild per user; replacing a
// selection is an upsert on that key.
type GuildSelectionModel struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	GuildID   string    `gorm:"type:varchar(32);not null"`
	UpdatedAt time.Time

	User *UserModel `gorm:"foreignKey:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (GuildSelectionModel) TableName() string {
	return "guild_selections"
}
