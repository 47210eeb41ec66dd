package scheduling_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/surgiplan/backend/internal/scheduling"
)

func TestBuildMonthGrid(t *testing.T) {
	t.Run("pads leading cells up to the weekday of day 1", func(t *testing.T) {
		// March 2024 starts on a Friday (offset 5) and has 31 days.
		grid := scheduling.BuildMonthGrid(time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC))

		assert.Len(t, grid, 5+31)
		for i := 0; i < 5; i++ {
			assert.True(t, grid[i].Empty)
		}
		assert.False(t, grid[5].Empty)
		assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), grid[5].Date)
		assert.Equal(t, time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC), grid[len(grid)-1].Date)
	})

	t.Run("has no leading cells when the month starts on Sunday", func(t *testing.T) {
		// September 2024 starts on a Sunday.
		grid := scheduling.BuildMonthGrid(time.Date(2024, time.September, 20, 0, 0, 0, 0, time.UTC))

		assert.Len(t, grid, 30)
		assert.False(t, grid[0].Empty)
		assert.Equal(t, 1, grid[0].Date.Day())
	})

	t.Run("handles leap February", func(t *testing.T) {
		grid := scheduling.BuildMonthGrid(time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC))

		// Feb 1, 2024 is a Thursday (offset 4), 29 days.
		assert.Len(t, grid, 4+29)
		assert.Equal(t, 29, grid[len(grid)-1].Date.Day())
	})

	t.Run("length equals weekday offset plus days in month for every month", func(t *testing.T) {
		for monthOffset := 0; monthOffset < 48; monthOffset++ {
			ref := time.Date(2023, time.January, 17, 12, 30, 0, 0, time.UTC).AddDate(0, monthOffset, 0)
			first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
			daysInMonth := first.AddDate(0, 1, -1).Day()

			grid := scheduling.BuildMonthGrid(ref)
			assert.Len(t, grid, int(first.Weekday())+daysInMonth, "month %s", ref.Format("2006-01"))
		}
	})
}

func TestBuildWeekGrid(t *testing.T) {
	t.Run("returns 7 consecutive dates starting on Sunday", func(t *testing.T) {
		// Wednesday.
		week := scheduling.BuildWeekGrid(time.Date(2024, time.March, 13, 18, 45, 0, 0, time.UTC))

		assert.Len(t, week, 7)
		assert.Equal(t, time.Sunday, week[0].Weekday())
		assert.Equal(t, time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC), week[0])
		for i := 1; i < 7; i++ {
			assert.Equal(t, week[i-1].AddDate(0, 0, 1), week[i])
		}
	})

	t.Run("a Sunday reference starts its own week", func(t *testing.T) {
		week := scheduling.BuildWeekGrid(time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC))
		assert.Equal(t, 10, week[0].Day())
	})

	t.Run("crosses month boundaries", func(t *testing.T) {
		// Friday March 1, 2024: the week starts Sunday February 25.
		week := scheduling.BuildWeekGrid(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC))
		assert.Equal(t, time.Date(2024, time.February, 25, 0, 0, 0, 0, time.UTC), week[0])
		assert.Equal(t, time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC), week[6])
	})
}

func TestStep(t *testing.T) {
	ref := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

	t.Run("month view steps by one month", func(t *testing.T) {
		assert.Equal(t, time.April, scheduling.Step(ref, scheduling.ViewMonth, 1).Month())
		assert.Equal(t, time.February, scheduling.Step(ref, scheduling.ViewMonth, -1).Month())
	})

	t.Run("week view steps by 7 days", func(t *testing.T) {
		assert.Equal(t, 22, scheduling.Step(ref, scheduling.ViewWeek, 1).Day())
		assert.Equal(t, 8, scheduling.Step(ref, scheduling.ViewWeek, -1).Day())
	})
}
