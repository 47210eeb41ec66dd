package entities

import "time"

// NotificationKind represents how a notification should be displayed
type NotificationKind string

const (
	NotificationSuccess NotificationKind = "success"
	NotificationError   NotificationKind = "error"
)

// DefaultNotificationTTL is the display-hint lifetime for a notification
// before the client auto-dismisses it.
const DefaultNotificationTTL = 5 * time.Second

// Notification represents a transient user-facing message emitted after a
// completed mutation attempt. Exactly one is emitted per attempt.
type Notification struct {
	ID        string           `json:"id" db:"id"`
	Message   string           `json:"message" db:"message"`
	Kind      NotificationKind `json:"kind" db:"kind"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
	ExpiresAt time.Time        `json:"expires_at" db:"expires_at"`
}
