package scheduling

import (
	"time"

	"github.com/surgiplan/backend/internal/domain/entities"
)

// Reschedule computes the timestamp a surgery moves to when dropped onto a
// calendar date: the year, month and day of newDate with the surgery's
// original time of day preserved. The input surgery is not modified.
// Dropping onto the date the surgery already occupies yields the same
// timestamp; the write is still round-tripped through the store.
func Reschedule(s *entities.Surgery, newDate time.Time) time.Time {
	t := s.ScheduledAt
	return time.Date(newDate.Year(), newDate.Month(), newDate.Day(),
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}
