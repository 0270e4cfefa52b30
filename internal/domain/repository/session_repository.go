// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"voidbot/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrSessionNotFound is returned when a session is not found.
var ErrSessionNotFound = errors.New("session not found")

// SessionRepository defines the interface for dashboard session management.
// A session row binds a user to the Discord tokens obtained at login; revoking
// the row is what "logging out" means server-side.
type SessionRepository interface {
	// CreateSession persists a new session record.
	CreateSession(ctx context.Context, session *entity.Session) error

	// FindSessionByID retrieves a session by its unique ID.
	FindSessionByID(ctx context.Context, id uuid.UUID) (*entity.Session, error)

	// DeleteSession removes a session by its ID, effectively logging out.
	DeleteSession(ctx context.Context, id uuid.UUID) error

	// DeleteExpiredSessions removes all expired sessions from the database.
	// This should be called periodically for cleanup.
	DeleteExpiredSessions(ctx context.Context) error
}
