package providers

import (
	"context"

	"github.com/surgiplan/backend/internal/domain/entities"
)

// EventBus defines the interface for publishing and subscribing to
// notification events
type EventBus interface {
	// Publish publishes a notification to all subscribers
	Publish(ctx context.Context, channel string, notification *entities.Notification) error

	// Subscribe subscribes to notifications on a channel
	Subscribe(ctx context.Context, channel string) (<-chan *entities.Notification, error)

	// Unsubscribe unsubscribes from a channel
	Unsubscribe(ctx context.Context, channel string) error

	// Close closes the event bus and all subscriptions
	Close() error
}

// NotificationsChannel carries every mutation-outcome notification
const NotificationsChannel = "agenda:notifications"
