package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/surgiplan/backend/internal/application/services"
	"github.com/surgiplan/backend/internal/scheduling"
)

// ReportHandler serves period reports and their CSV export
type ReportHandler struct {
	sync *services.SyncService
}

// NewReportHandler creates a new report handler
func NewReportHandler(sync *services.SyncService) *ReportHandler {
	return &ReportHandler{sync: sync}
}

// reportWindow parses the from/to/doctor query parameters. An absent window
// defaults to the current calendar month. The to day is inclusive.
func (h *ReportHandler) reportWindow(r *http.Request) (from, to time.Time, doctorID string, err error) {
	q := r.URL.Query()
	now := time.Now()

	from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	to = from.AddDate(0, 1, -1)

	if raw := q.Get("from"); raw != "" {
		from, err = time.ParseInLocation(scheduling.DayKeyFormat, raw, time.Local)
		if err != nil {
			return from, to, "", fmt.Errorf("invalid from, expected YYYY-MM-DD")
		}
	}
	if raw := q.Get("to"); raw != "" {
		to, err = time.ParseInLocation(scheduling.DayKeyFormat, raw, time.Local)
		if err != nil {
			return from, to, "", fmt.Errorf("invalid to, expected YYYY-MM-DD")
		}
	}
	return from, scheduling.EndOfDay(to), q.Get("doctor"), nil
}

// GetReport handles GET /api/reports?from=&to=&doctor=
func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	from, to, doctorID, err := h.reportWindow(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	snapshot := h.sync.Snapshot()
	filtered := scheduling.FilterRange(snapshot.Surgeries, from, to, doctorID)
	report := scheduling.ComputeReport(filtered, snapshot.HospitalName)

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"from":   from.Format(scheduling.DayKeyFormat),
		"to":     to.Format(scheduling.DayKeyFormat),
		"report": report,
	})
}

// ExportReport handles GET /api/reports/export. It streams the filtered
// surgeries for the same window as CSV.
func (h *ReportHandler) ExportReport(w http.ResponseWriter, r *http.Request) {
	from, to, doctorID, err := h.reportWindow(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	snapshot := h.sync.Snapshot()
	filtered := scheduling.FilterRange(snapshot.Surgeries, from, to, doctorID)

	filename := fmt.Sprintf("relatorio_%s_%s.csv",
		from.Format(scheduling.DayKeyFormat), to.Format(scheduling.DayKeyFormat))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)

	writer := csv.NewWriter(w)
	defer writer.Flush()

	writer.Write([]string{"date", "patient", "main_surgeon", "hospital", "insurance_plan", "status", "authorization", "total_value"})
	for _, s := range filtered {
		writer.Write([]string{
			s.ScheduledAt.Format("2006-01-02 15:04"),
			s.PatientName,
			h.doctorName(snapshot, s.MainSurgeonID),
			resolveName(snapshot.HospitalName, s.HospitalID),
			resolveName(snapshot.InsurancePlanName, s.InsurancePlanID),
			string(s.Status),
			string(s.AuthorizationStatus),
			strconv.FormatFloat(s.TotalValue, 'f', 2, 64),
		})
	}
}

func (h *ReportHandler) doctorName(snapshot *services.Snapshot, id string) string {
	if doctor, ok := snapshot.Doctor(id); ok {
		return doctor.Name
	}
	return scheduling.UnknownLabel
}

func resolveName(lookup func(string) (string, bool), id string) string {
	if name, ok := lookup(id); ok {
		return name
	}
	return scheduling.UnknownLabel
}
