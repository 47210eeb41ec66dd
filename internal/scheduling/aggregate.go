package scheduling

import (
	"sort"
	"time"

	"github.com/surgiplan/backend/internal/domain/entities"
)

// UnknownLabel buckets surgeries whose hospital reference no longer
// resolves. Dangling references are a display concern, never an error.
const UnknownLabel = "Unknown"

// Dashboard holds the dashboard card values, computed over the full
// unfiltered collection anchored at an explicit point in time.
type Dashboard struct {
	SurgeriesToday   []*entities.Surgery `json:"surgeries_today"`
	PendingAuthCount int                 `json:"pending_auth_count"`
	MonthRevenue     float64             `json:"month_revenue"`
}

// ComputeDashboard reduces the full collection anchored at now:
// today's surgeries ascending by time, the pending-authorization count, and
// revenue from performed surgeries in the current calendar month.
func ComputeDashboard(all []*entities.Surgery, now time.Time) Dashboard {
	d := Dashboard{SurgeriesToday: []*entities.Surgery{}}

	for _, s := range all {
		if sameDay(s.ScheduledAt, now) {
			d.SurgeriesToday = append(d.SurgeriesToday, s)
		}
		if s.AuthorizationStatus == entities.AuthorizationPending {
			d.PendingAuthCount++
		}
		if s.Status == entities.SurgeryPerformed &&
			s.ScheduledAt.Year() == now.Year() && s.ScheduledAt.Month() == now.Month() {
			d.MonthRevenue += s.TotalValue
		}
	}

	sort.SliceStable(d.SurgeriesToday, func(i, j int) bool {
		return d.SurgeriesToday[i].ScheduledAt.Before(d.SurgeriesToday[j].ScheduledAt)
	})
	return d
}

// HospitalCount pairs a hospital display name with its surgery count
type HospitalCount struct {
	Hospital string `json:"hospital"`
	Count    int    `json:"count"`
}

// Report holds the report summary over an already-filtered subset
type Report struct {
	TotalSurgeries      int             `json:"total_surgeries"`
	RealizedSurgeries   int             `json:"realized_surgeries"`
	TotalRevenue        float64         `json:"total_revenue"`
	SurgeriesByHospital []HospitalCount `json:"surgeries_by_hospital"`
}

// ComputeReport reduces a filtered subset. hospitalName resolves a hospital
// ID to its display name, reporting false for dangling references, which
// land under UnknownLabel. SurgeriesByHospital is ordered descending by
// count with name as tiebreak.
func ComputeReport(filtered []*entities.Surgery, hospitalName func(string) (string, bool)) Report {
	r := Report{
		TotalSurgeries:      len(filtered),
		SurgeriesByHospital: []HospitalCount{},
	}

	counts := make(map[string]int)
	for _, s := range filtered {
		if s.Status == entities.SurgeryPerformed {
			r.RealizedSurgeries++
			r.TotalRevenue += s.TotalValue
		}

		label := UnknownLabel
		if name, ok := hospitalName(s.HospitalID); ok {
			label = name
		}
		counts[label]++
	}

	for name, count := range counts {
		r.SurgeriesByHospital = append(r.SurgeriesByHospital, HospitalCount{Hospital: name, Count: count})
	}
	sort.Slice(r.SurgeriesByHospital, func(i, j int) bool {
		a, b := r.SurgeriesByHospital[i], r.SurgeriesByHospital[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Hospital < b.Hospital
	})
	return r
}
