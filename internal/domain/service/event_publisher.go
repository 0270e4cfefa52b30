package service

import (
	"context"
)

// Session event types published on login and logout.
const (
	SessionEventCreated = "session.created"
	SessionEventRevoked = "session.revoked"
)

// SessionEvent represents a session lifecycle change for async consumers,
// such as audit logging or cross-service cache invalidation.
type SessionEvent struct {
	RequestID  string `json:"request_id,omitempty"` // For distributed tracing
	Type       string `json:"type"`
	UserID     string `json:"user_id"`
	SessionID  string `json:"session_id"`
	GuildID    string `json:"guild_id,omitempty"` // Set when a guild selection triggered the event
	OccurredAt int64  `json:"occurred_at"`        // Unix seconds
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishSessionEvent publishes a session lifecycle event for async processing
	PublishSessionEvent(ctx context.Context, event *SessionEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
