package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/surgiplan/backend/internal/adapters/events"
	"github.com/surgiplan/backend/internal/application/services"
	"github.com/surgiplan/backend/internal/domain/entities"
	"github.com/surgiplan/backend/internal/domain/providers"
)

func TestNotificationService_Notify(t *testing.T) {
	t.Run("stamps an ID and an auto-dismiss deadline", func(t *testing.T) {
		svc := services.NewNotificationService(events.NewMemoryEventBus(), 0)

		svc.Notify(context.Background(), "Cirurgia salva", entities.NotificationSuccess)

		recent := svc.Recent()
		require.Len(t, recent, 1)
		assert.NotEmpty(t, recent[0].ID)
		assert.Equal(t, "Cirurgia salva", recent[0].Message)
		assert.Equal(t, entities.NotificationSuccess, recent[0].Kind)
		assert.Equal(t, entities.DefaultNotificationTTL, recent[0].ExpiresAt.Sub(recent[0].CreatedAt))
	})

	t.Run("broadcasts over the event bus", func(t *testing.T) {
		bus := events.NewMemoryEventBus()
		defer bus.Close()
		svc := services.NewNotificationService(bus, time.Minute)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		stream, err := bus.Subscribe(ctx, providers.NotificationsChannel)
		require.NoError(t, err)

		svc.Notify(context.Background(), "Cirurgia excluída", entities.NotificationError)

		select {
		case notification := <-stream:
			assert.Equal(t, "Cirurgia excluída", notification.Message)
			assert.Equal(t, entities.NotificationError, notification.Kind)
		case <-time.After(time.Second):
			t.Fatal("no notification received on the bus")
		}
	})

	t.Run("works without a bus", func(t *testing.T) {
		svc := services.NewNotificationService(nil, time.Minute)
		svc.Notify(context.Background(), "ok", entities.NotificationSuccess)
		assert.Len(t, svc.Recent(), 1)
	})
}

func TestNotificationService_Recent(t *testing.T) {
	t.Run("orders oldest first and drops expired entries", func(t *testing.T) {
		svc := services.NewNotificationService(nil, time.Minute)

		svc.Notify(context.Background(), "first", entities.NotificationSuccess)
		svc.Notify(context.Background(), "second", entities.NotificationSuccess)

		recent := svc.Recent()
		require.Len(t, recent, 2)
		assert.Equal(t, "first", recent[0].Message)
		assert.Equal(t, "second", recent[1].Message)

		expired := services.NewNotificationService(nil, time.Nanosecond)
		expired.Notify(context.Background(), "gone", entities.NotificationSuccess)
		time.Sleep(time.Millisecond)
		assert.Empty(t, expired.Recent())
	})

	t.Run("keeps a bounded backlog", func(t *testing.T) {
		svc := services.NewNotificationService(nil, time.Hour)

		for i := 0; i < 60; i++ {
			svc.Notify(context.Background(), "n", entities.NotificationSuccess)
		}
		assert.Len(t, svc.Recent(), 50)
	})
}

func TestNotificationService_Dismiss(t *testing.T) {
	svc := services.NewNotificationService(nil, time.Minute)

	svc.Notify(context.Background(), "dismiss me", entities.NotificationSuccess)
	recent := svc.Recent()
	require.Len(t, recent, 1)

	assert.True(t, svc.Dismiss(recent[0].ID))
	assert.Empty(t, svc.Recent())
	assert.False(t, svc.Dismiss(recent[0].ID))
}
