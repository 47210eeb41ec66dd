package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/surgiplan/backend/internal/application/services"
	"github.com/surgiplan/backend/internal/domain/entities"
	"github.com/surgiplan/backend/internal/scheduling"
	apperrors "github.com/surgiplan/backend/pkg/errors"
)

// SurgeryHandler handles surgery-related HTTP requests
type SurgeryHandler struct {
	sync *services.SyncService
}

// NewSurgeryHandler creates a new surgery handler
func NewSurgeryHandler(sync *services.SyncService) *SurgeryHandler {
	return &SurgeryHandler{sync: sync}
}

// ListSurgeries handles GET /api/surgeries
func (h *SurgeryHandler) ListSurgeries(w http.ResponseWriter, r *http.Request) {
	snapshot := h.sync.Snapshot()

	doctorID := r.URL.Query().Get("doctor")
	filters := advancedFiltersFromQuery(r)

	surgeries := scheduling.Filter(snapshot.Surgeries, doctorID, filters)

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"surgeries": surgeries,
		"count":     len(surgeries),
	})
}

// GetSurgery handles GET /api/surgeries/{id}
func (h *SurgeryHandler) GetSurgery(w http.ResponseWriter, r *http.Request) {
	surgeryID := r.PathValue("id")
	if surgeryID == "" {
		respondWithError(w, http.StatusBadRequest, "surgery ID is required")
		return
	}

	surgery, ok := h.sync.Snapshot().Surgery(surgeryID)
	if !ok {
		respondWithError(w, http.StatusNotFound, "surgery not found")
		return
	}

	respondWithJSON(w, http.StatusOK, surgery)
}

// SearchSurgeries handles GET /api/surgeries/search?q=
func (h *SurgeryHandler) SearchSurgeries(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	results := scheduling.SearchByPatient(h.sync.Snapshot().Surgeries, query)

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"surgeries": results,
		"count":     len(results),
	})
}

// CreateSurgery handles POST /api/surgeries
func (h *SurgeryHandler) CreateSurgery(w http.ResponseWriter, r *http.Request) {
	var surgery entities.Surgery
	if err := json.NewDecoder(r.Body).Decode(&surgery); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	surgery.ID = ""

	if err := h.sync.SaveSurgery(r.Context(), &surgery); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, surgery)
}

// UpdateSurgery handles PUT /api/surgeries/{id}
func (h *SurgeryHandler) UpdateSurgery(w http.ResponseWriter, r *http.Request) {
	surgeryID := r.PathValue("id")
	if surgeryID == "" {
		respondWithError(w, http.StatusBadRequest, "surgery ID is required")
		return
	}

	var surgery entities.Surgery
	if err := json.NewDecoder(r.Body).Decode(&surgery); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	surgery.ID = surgeryID

	if err := h.sync.SaveSurgery(r.Context(), &surgery); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, surgery)
}

// DeleteSurgery handles DELETE /api/surgeries/{id}
func (h *SurgeryHandler) DeleteSurgery(w http.ResponseWriter, r *http.Request) {
	surgeryID := r.PathValue("id")
	if surgeryID == "" {
		respondWithError(w, http.StatusBadRequest, "surgery ID is required")
		return
	}

	if err := h.sync.DeleteSurgery(r.Context(), surgeryID); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

type rescheduleRequest struct {
	Date string `json:"date"`
	View string `json:"view"`
}

// RescheduleSurgery handles POST /api/surgeries/{id}/reschedule. The target
// day comes in as YYYY-MM-DD; the surgery keeps its clock time.
func (h *SurgeryHandler) RescheduleSurgery(w http.ResponseWriter, r *http.Request) {
	surgeryID := r.PathValue("id")
	if surgeryID == "" {
		respondWithError(w, http.StatusBadRequest, "surgery ID is required")
		return
	}

	var req rescheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	newDate, err := time.ParseInLocation(scheduling.DayKeyFormat, req.Date, time.Local)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	view := scheduling.ViewMode(req.View)
	if req.View == "" {
		view = scheduling.ViewMonth
	}

	if err := h.sync.RescheduleSurgery(r.Context(), surgeryID, newDate, view); err != nil {
		respondWithAppError(w, err)
		return
	}

	surgery, ok := h.sync.Snapshot().Surgery(surgeryID)
	if !ok {
		respondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	respondWithJSON(w, http.StatusOK, surgery)
}

func advancedFiltersFromQuery(r *http.Request) scheduling.AdvancedFilters {
	q := r.URL.Query()
	return scheduling.AdvancedFilters{
		AuthorizationStatus: q.Get("auth_status"),
		Status:              q.Get("status"),
		HospitalID:          q.Get("hospital"),
		InsurancePlanID:     q.Get("insurance"),
	}
}

// Helper functions
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

func respondWithAppError(w http.ResponseWriter, err error) {
	message := "internal server error"
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		message = appErr.Message
	}
	switch apperrors.TypeOf(err) {
	case apperrors.ErrorTypeNotFound:
		respondWithError(w, http.StatusNotFound, message)
	case apperrors.ErrorTypeValidation:
		respondWithError(w, http.StatusBadRequest, message)
	case apperrors.ErrorTypeUnauthorized:
		respondWithError(w, http.StatusUnauthorized, message)
	default:
		respondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}
