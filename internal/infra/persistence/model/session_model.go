package model

import (
	"time"

	"github.com/google/uuid"
)

// SessionModel mirrors the 'sessions' table. One row per dashboard login.
// Provider tokens are stored server-side only and never serialized outward.
type SessionModel struct {
	ID                   uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID               uuid.UUID `gorm:"type:uuid;not null;index"`
	TokenHash            string    `gorm:"type:varchar(255);unique;not null"`
	ProviderAccessToken  string    `gorm:"type:text;not null"`
	ProviderRefreshToken string    `gorm:"type:text"`
	ExpiresAt            time.Time `gorm:"not null;index"`
	CreatedAt            time.Time

	User *UserModel `gorm:"foreignKey:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (SessionModel) TableName() string {
	return "sessions"
}
