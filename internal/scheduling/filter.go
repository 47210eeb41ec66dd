package scheduling

import (
	"sort"
	"strings"
	"time"

	"github.com/surgiplan/backend/internal/domain/entities"
)

// All is the sentinel meaning "no restriction" for any filter dimension.
// It is also the zero-value behavior: an empty filter field restricts
// nothing.
const All = "all"

// AdvancedFilters are the four field-level equality filters applied in
// conjunction with the doctor filter.
type AdvancedFilters struct {
	AuthorizationStatus string
	Status              string
	HospitalID          string
	InsurancePlanID     string
}

func active(v string) bool {
	return v != "" && v != All
}

func (f AdvancedFilters) matches(s *entities.Surgery) bool {
	if active(f.AuthorizationStatus) && string(s.AuthorizationStatus) != f.AuthorizationStatus {
		return false
	}
	if active(f.Status) && string(s.Status) != f.Status {
		return false
	}
	if active(f.HospitalID) && s.HospitalID != f.HospitalID {
		return false
	}
	if active(f.InsurancePlanID) && s.InsurancePlanID != f.InsurancePlanID {
		return false
	}
	return true
}

// Filter returns the surgeries passing the doctor filter and every advanced
// filter, preserving the original relative order. The doctor filter matches
// a surgery when the doctor is its main surgeon or a participating doctor.
func Filter(all []*entities.Surgery, doctorID string, adv AdvancedFilters) []*entities.Surgery {
	out := make([]*entities.Surgery, 0, len(all))
	for _, s := range all {
		if active(doctorID) && !s.InvolvesDoctor(doctorID) {
			continue
		}
		if !adv.matches(s) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// SearchByPatient performs a case-insensitive substring match on patient
// names. An empty query yields an empty result set, not the full
// collection.
func SearchByPatient(all []*entities.Surgery, query string) []*entities.Surgery {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []*entities.Surgery{}
	}

	out := make([]*entities.Surgery, 0, len(all))
	for _, s := range all {
		if strings.Contains(strings.ToLower(s.PatientName), q) {
			out = append(out, s)
		}
	}
	return out
}

// EndOfDay returns the last represented instant of t's calendar day
// (23:59:59.999 local), so a range ending on a date includes surgeries
// scheduled any time that day.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59,
		int(999*time.Millisecond), t.Location())
}

// FilterRange returns the surgeries scheduled within [from, end-of-day(to)]
// that involve doctorID. This is the report filter stage; it composes with,
// and never merges into, the calendar's advanced filter stage.
func FilterRange(all []*entities.Surgery, from, to time.Time, doctorID string) []*entities.Surgery {
	end := EndOfDay(to)

	out := make([]*entities.Surgery, 0, len(all))
	for _, s := range all {
		if s.ScheduledAt.Before(from) || s.ScheduledAt.After(end) {
			continue
		}
		if active(doctorID) && !s.InvolvesDoctor(doctorID) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// DayKeyFormat is the bucket key layout used by BucketByDay.
const DayKeyFormat = "2006-01-02"

// BucketByDay groups surgeries by local calendar date, sorting each day's
// bucket ascending by scheduled time.
func BucketByDay(surgeries []*entities.Surgery) map[string][]*entities.Surgery {
	buckets := make(map[string][]*entities.Surgery)
	for _, s := range surgeries {
		key := s.ScheduledAt.Format(DayKeyFormat)
		buckets[key] = append(buckets[key], s)
	}
	for _, bucket := range buckets {
		sort.SliceStable(bucket, func(i, j int) bool {
			return bucket[i].ScheduledAt.Before(bucket[j].ScheduledAt)
		})
	}
	return buckets
}
