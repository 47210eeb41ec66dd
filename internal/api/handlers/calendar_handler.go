package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/surgiplan/backend/internal/application/services"
	"github.com/surgiplan/backend/internal/domain/entities"
	"github.com/surgiplan/backend/internal/scheduling"
)

// CalendarHandler projects the surgery collection onto a month or week grid
type CalendarHandler struct {
	sync *services.SyncService
}

// NewCalendarHandler creates a new calendar handler
func NewCalendarHandler(sync *services.SyncService) *CalendarHandler {
	return &CalendarHandler{sync: sync}
}

type calendarDay struct {
	Date      string              `json:"date,omitempty"`
	Empty     bool                `json:"empty,omitempty"`
	Surgeries []*entities.Surgery `json:"surgeries"`
}

// GetCalendar handles GET /api/calendar. Query parameters: view (month or
// week), ref (YYYY-MM-DD, defaults to today), step (signed offset in months
// or weeks from ref), doctor, auth_status, status, hospital, insurance.
func (h *CalendarHandler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	view := scheduling.ViewMode(q.Get("view"))
	if view == "" {
		view = scheduling.ViewMonth
	}
	if view != scheduling.ViewMonth && view != scheduling.ViewWeek {
		respondWithError(w, http.StatusBadRequest, "view must be month or week")
		return
	}

	ref := time.Now()
	if raw := q.Get("ref"); raw != "" {
		parsed, err := time.ParseInLocation(scheduling.DayKeyFormat, raw, time.Local)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid ref, expected YYYY-MM-DD")
			return
		}
		ref = parsed
	}

	if raw := q.Get("step"); raw != "" {
		delta, err := strconv.Atoi(raw)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid step, expected an integer")
			return
		}
		ref = scheduling.Step(ref, view, delta)
	}

	snapshot := h.sync.Snapshot()
	filtered := scheduling.Filter(snapshot.Surgeries, q.Get("doctor"), advancedFiltersFromQuery(r))
	byDay := scheduling.BucketByDay(filtered)

	var days []calendarDay
	switch view {
	case scheduling.ViewMonth:
		for _, slot := range scheduling.BuildMonthGrid(ref) {
			if slot.Empty {
				days = append(days, calendarDay{Empty: true, Surgeries: []*entities.Surgery{}})
				continue
			}
			days = append(days, dayFor(slot.Date, byDay))
		}
	case scheduling.ViewWeek:
		for _, date := range scheduling.BuildWeekGrid(ref) {
			days = append(days, dayFor(date, byDay))
		}
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"view": view,
		"ref":  ref.Format(scheduling.DayKeyFormat),
		"days": days,
	})
}

func dayFor(date time.Time, byDay map[string][]*entities.Surgery) calendarDay {
	key := date.Format(scheduling.DayKeyFormat)
	surgeries := byDay[key]
	if surgeries == nil {
		surgeries = []*entities.Surgery{}
	}
	return calendarDay{Date: key, Surgeries: surgeries}
}
