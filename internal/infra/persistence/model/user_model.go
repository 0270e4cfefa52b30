package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. PostgreSQL generates UUIDs via uuid_generate_v7().
type UserModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	DiscordID   string    `gorm:"type:varchar(32);unique;not null"`
	Username    string    `gorm:"type:varchar(100);not null"`
	DisplayName string    `gorm:"type:varchar(100)"`
	AvatarHash  string    `gorm:"type:varchar(64)"`
	Email       string    `gorm:"type:varchar(255)"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Sessions []SessionModel `gorm:"foreignKey:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
