package scheduling_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/surgiplan/backend/internal/domain/entities"
	"github.com/surgiplan/backend/internal/scheduling"
)

func TestReschedule(t *testing.T) {
	t.Run("moves the date and keeps the time of day", func(t *testing.T) {
		s := &entities.Surgery{
			ScheduledAt: time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC),
		}

		got := scheduling.Reschedule(s, time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC))

		assert.Equal(t, time.Date(2024, time.March, 20, 10, 0, 0, 0, time.UTC), got)
		// Input untouched.
		assert.Equal(t, 15, s.ScheduledAt.Day())
	})

	t.Run("preserves minutes and seconds across months", func(t *testing.T) {
		s := &entities.Surgery{
			ScheduledAt: time.Date(2024, time.January, 31, 14, 45, 30, 0, time.UTC),
		}

		got := scheduling.Reschedule(s, time.Date(2024, time.April, 2, 0, 0, 0, 0, time.UTC))

		assert.Equal(t, 14, got.Hour())
		assert.Equal(t, 45, got.Minute())
		assert.Equal(t, 30, got.Second())
		assert.Equal(t, time.April, got.Month())
		assert.Equal(t, 2, got.Day())
	})

	t.Run("dropping onto the same date is a no-op", func(t *testing.T) {
		s := &entities.Surgery{
			ScheduledAt: time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC),
		}

		got := scheduling.Reschedule(s, time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC))
		assert.Equal(t, s.ScheduledAt, got)
	})
}
