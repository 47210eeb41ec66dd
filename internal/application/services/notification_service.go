package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/surgiplan/backend/internal/domain/entities"
	"github.com/surgiplan/backend/internal/domain/providers"
)

// maxRecentNotifications bounds the in-memory backlog served to clients that
// connect after a mutation has already completed.
const maxRecentNotifications = 50

// NotificationService implements providers.Notifier. It stamps notifications
// with an ID and auto-dismiss deadline, keeps a bounded recent list
// supporting manual dismissal, and fans each one out over the event bus for
// the SSE stream.
type NotificationService struct {
	bus providers.EventBus
	ttl time.Duration

	mu     sync.Mutex
	recent []*entities.Notification
}

// NewNotificationService creates a new notification service. A zero ttl
// falls back to the default display lifetime.
func NewNotificationService(bus providers.EventBus, ttl time.Duration) *NotificationService {
	if ttl <= 0 {
		ttl = entities.DefaultNotificationTTL
	}
	return &NotificationService{bus: bus, ttl: ttl}
}

// Notify records and broadcasts a single mutation-outcome notification
func (n *NotificationService) Notify(ctx context.Context, message string, kind entities.NotificationKind) {
	now := time.Now()
	notification := &entities.Notification{
		ID:        uuid.New().String(),
		Message:   message,
		Kind:      kind,
		CreatedAt: now,
		ExpiresAt: now.Add(n.ttl),
	}

	n.mu.Lock()
	n.recent = append(n.recent, notification)
	if len(n.recent) > maxRecentNotifications {
		n.recent = n.recent[len(n.recent)-maxRecentNotifications:]
	}
	n.mu.Unlock()

	if n.bus != nil {
		// Broadcast failures must not fail the mutation that triggered them.
		if err := n.bus.Publish(ctx, providers.NotificationsChannel, notification); err != nil {
			log.Warn().Err(err).Msg("failed to broadcast notification")
		}
	}
}

// Recent returns the undismissed notifications that have not yet expired,
// oldest first.
func (n *NotificationService) Recent() []*entities.Notification {
	now := time.Now()

	n.mu.Lock()
	defer n.mu.Unlock()

	out := make([]*entities.Notification, 0, len(n.recent))
	for _, notification := range n.recent {
		if notification.ExpiresAt.After(now) {
			out = append(out, notification)
		}
	}
	return out
}

// Dismiss removes a notification by ID ahead of its auto-dismiss deadline
func (n *NotificationService) Dismiss(id string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	for i, notification := range n.recent {
		if notification.ID == id {
			n.recent = append(n.recent[:i], n.recent[i+1:]...)
			return true
		}
	}
	return false
}
