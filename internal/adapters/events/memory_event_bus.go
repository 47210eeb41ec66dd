package events

import (
	"context"
	"sync"

	"github.com/surgiplan/backend/internal/domain/entities"
	"github.com/surgiplan/backend/internal/domain/providers"
)

// MemoryEventBus is a single-process EventBus used in tests and when Redis
// is unavailable.
type MemoryEventBus struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan *entities.Notification]struct{}
	closed      bool
}

// NewMemoryEventBus creates a new in-process event bus
func NewMemoryEventBus() providers.EventBus {
	return &MemoryEventBus{
		subscribers: make(map[string]map[chan *entities.Notification]struct{}),
	}
}

// Publish delivers the notification to every subscriber of the channel
func (b *MemoryEventBus) Publish(ctx context.Context, channel string, notification *entities.Notification) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for subscriber := range b.subscribers[channel] {
		select {
		case subscriber <- notification:
		default:
			// Subscriber channel full, skip.
		}
	}
	return nil
}

// Subscribe subscribes to notifications on a channel
func (b *MemoryEventBus) Subscribe(ctx context.Context, channel string) (<-chan *entities.Notification, error) {
	b.mu.Lock()
	if b.subscribers[channel] == nil {
		b.subscribers[channel] = make(map[chan *entities.Notification]struct{})
	}
	eventChan := make(chan *entities.Notification, 100)
	b.subscribers[channel][eventChan] = struct{}{}
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.remove(channel, eventChan)
	}()

	return eventChan, nil
}

func (b *MemoryEventBus) remove(channel string, eventChan chan *entities.Notification) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if subscribers, ok := b.subscribers[channel]; ok {
		if _, ok := subscribers[eventChan]; ok {
			delete(subscribers, eventChan)
			close(eventChan)
		}
		if len(subscribers) == 0 {
			delete(b.subscribers, channel)
		}
	}
}

// Unsubscribe drops all subscribers of a channel
func (b *MemoryEventBus) Unsubscribe(ctx context.Context, channel string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for subscriber := range b.subscribers[channel] {
		close(subscriber)
	}
	delete(b.subscribers, channel)
	return nil
}

// Close closes all subscriptions
func (b *MemoryEventBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	for channel, subscribers := range b.subscribers {
		for subscriber := range subscribers {
			close(subscriber)
		}
		delete(b.subscribers, channel)
	}
	return nil
}
