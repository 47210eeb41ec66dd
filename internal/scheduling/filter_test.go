package scheduling_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/surgiplan/backend/internal/domain/entities"
	"github.com/surgiplan/backend/internal/scheduling"
)

func surgery(id string, overrides func(*entities.Surgery)) *entities.Surgery {
	s := &entities.Surgery{
		ID:                  id,
		PatientName:         "Paciente " + id,
		MainSurgeonID:       "doc-1",
		ScheduledAt:         time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC),
		HospitalID:          "hosp-1",
		InsurancePlanID:     "plan-1",
		AuthorizationStatus: entities.AuthorizationPending,
		Status:              entities.SurgeryScheduled,
	}
	if overrides != nil {
		overrides(s)
	}
	return s
}

func TestFilter(t *testing.T) {
	t.Run("all filters set to all returns the collection in order", func(t *testing.T) {
		all := []*entities.Surgery{surgery("a", nil), surgery("b", nil), surgery("c", nil)}

		got := scheduling.Filter(all, scheduling.All, scheduling.AdvancedFilters{
			AuthorizationStatus: scheduling.All,
			Status:              scheduling.All,
			HospitalID:          scheduling.All,
			InsurancePlanID:     scheduling.All,
		})

		assert.Equal(t, all, got)
	})

	t.Run("doctor filter matches main surgeon or participating doctor", func(t *testing.T) {
		main := surgery("main", nil)
		participant := surgery("part", func(s *entities.Surgery) {
			s.MainSurgeonID = "doc-9"
			s.ParticipatingIDs = []string{"doc-1", "doc-2"}
		})
		unrelated := surgery("other", func(s *entities.Surgery) { s.MainSurgeonID = "doc-9" })

		got := scheduling.Filter([]*entities.Surgery{main, participant, unrelated}, "doc-1", scheduling.AdvancedFilters{})

		assert.Equal(t, []*entities.Surgery{main, participant}, got)
	})

	t.Run("advanced filters conjoin", func(t *testing.T) {
		matching := surgery("match", func(s *entities.Surgery) {
			s.AuthorizationStatus = entities.AuthorizationApproved
			s.HospitalID = "H1"
		})
		wrongHospital := surgery("nomatch", func(s *entities.Surgery) {
			s.AuthorizationStatus = entities.AuthorizationApproved
			s.HospitalID = "H2"
		})

		got := scheduling.Filter([]*entities.Surgery{matching, wrongHospital}, scheduling.All, scheduling.AdvancedFilters{
			AuthorizationStatus: "Liberado",
			HospitalID:          "H1",
		})

		assert.Equal(t, []*entities.Surgery{matching}, got)
	})

	t.Run("empty collection yields empty result", func(t *testing.T) {
		got := scheduling.Filter(nil, "doc-1", scheduling.AdvancedFilters{Status: "Realizada"})
		assert.Empty(t, got)
	})
}

func TestSearchByPatient(t *testing.T) {
	all := []*entities.Surgery{
		surgery("a", func(s *entities.Surgery) { s.PatientName = "Maria Souza" }),
		surgery("b", func(s *entities.Surgery) { s.PatientName = "João Silva" }),
		surgery("c", func(s *entities.Surgery) { s.PatientName = "Mariana Lima" }),
	}

	t.Run("matches case-insensitive substrings", func(t *testing.T) {
		got := scheduling.SearchByPatient(all, "mari")
		assert.Len(t, got, 2)
		assert.Equal(t, "Maria Souza", got[0].PatientName)
		assert.Equal(t, "Mariana Lima", got[1].PatientName)
	})

	t.Run("empty query yields empty result, not the full collection", func(t *testing.T) {
		assert.Empty(t, scheduling.SearchByPatient(all, ""))
		assert.Empty(t, scheduling.SearchByPatient(all, "   "))
	})
}

func TestFilterRange(t *testing.T) {
	t.Run("end bound is inclusive through end of day", func(t *testing.T) {
		lastDay := surgery("edge", func(s *entities.Surgery) {
			s.ScheduledAt = time.Date(2024, time.January, 31, 23, 30, 0, 0, time.UTC)
		})
		nextDay := surgery("out", func(s *entities.Surgery) {
			s.ScheduledAt = time.Date(2024, time.February, 1, 0, 30, 0, 0, time.UTC)
		})

		got := scheduling.FilterRange(
			[]*entities.Surgery{lastDay, nextDay},
			time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC),
			scheduling.All,
		)

		assert.Equal(t, []*entities.Surgery{lastDay}, got)
	})

	t.Run("applies the doctor membership check", func(t *testing.T) {
		in := surgery("in", nil)
		out := surgery("out", func(s *entities.Surgery) { s.MainSurgeonID = "doc-9" })

		got := scheduling.FilterRange(
			[]*entities.Surgery{in, out},
			time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC),
			"doc-1",
		)

		assert.Equal(t, []*entities.Surgery{in}, got)
	})
}

func TestBucketByDay(t *testing.T) {
	t.Run("groups by local date and sorts each bucket by time", func(t *testing.T) {
		late := surgery("late", func(s *entities.Surgery) {
			s.ScheduledAt = time.Date(2024, time.March, 15, 16, 0, 0, 0, time.UTC)
		})
		early := surgery("early", func(s *entities.Surgery) {
			s.ScheduledAt = time.Date(2024, time.March, 15, 8, 0, 0, 0, time.UTC)
		})
		other := surgery("other", func(s *entities.Surgery) {
			s.ScheduledAt = time.Date(2024, time.March, 16, 9, 0, 0, 0, time.UTC)
		})

		buckets := scheduling.BucketByDay([]*entities.Surgery{late, early, other})

		assert.Len(t, buckets, 2)
		assert.Equal(t, []*entities.Surgery{early, late}, buckets["2024-03-15"])
		assert.Equal(t, []*entities.Surgery{other}, buckets["2024-03-16"])
	})
}
