// Package scheduling contains the pure transformation core of the surgery
// agenda: calendar grid projection, filtering, rescheduling and aggregation.
// Nothing in this package performs I/O or reads the clock; callers pass
// reference dates explicitly so every function is deterministic.
package scheduling

import (
	"time"
)

// ViewMode selects the active calendar projection
type ViewMode string

const (
	ViewMonth ViewMode = "month"
	ViewWeek  ViewMode = "week"
)

// DaySlot is a single cell of a rendered calendar grid. Leading cells before
// day 1 of a month are empty placeholders so the first day lands on its
// weekday column.
type DaySlot struct {
	Date  time.Time `json:"date"`
	Empty bool      `json:"empty"`
}

// BuildMonthGrid projects ref's month onto a Sunday-first grid: one empty
// slot per weekday preceding day 1, then one dated slot per day of the
// month. Total length is weekday offset + days in month; there is no
// trailing padding.
func BuildMonthGrid(ref time.Time) []DaySlot {
	first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	offset := int(first.Weekday())
	daysInMonth := first.AddDate(0, 1, -1).Day()

	grid := make([]DaySlot, 0, offset+daysInMonth)
	for i := 0; i < offset; i++ {
		grid = append(grid, DaySlot{Empty: true})
	}
	for day := 1; day <= daysInMonth; day++ {
		grid = append(grid, DaySlot{
			Date: time.Date(ref.Year(), ref.Month(), day, 0, 0, 0, 0, ref.Location()),
		})
	}
	return grid
}

// BuildWeekGrid returns the 7 consecutive dates of ref's week, starting on
// the Sunday on or before ref.
func BuildWeekGrid(ref time.Time) []time.Time {
	sunday := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location()).
		AddDate(0, 0, -int(ref.Weekday()))

	week := make([]time.Time, 7)
	for i := range week {
		week[i] = sunday.AddDate(0, 0, i)
	}
	return week
}

// Step moves the reference date by delta steps of the active view: whole
// months in month view, 7-day jumps in week view. Navigation operates only
// on the reference date, never on individual cells.
func Step(ref time.Time, view ViewMode, delta int) time.Time {
	if view == ViewWeek {
		return ref.AddDate(0, 0, 7*delta)
	}
	return ref.AddDate(0, delta, 0)
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
