package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/surgiplan/backend/internal/application/services"
	"github.com/surgiplan/backend/internal/domain/entities"
)

// ReferenceHandler handles CRUD for the reference collections: doctors,
// hospitals and insurance plans. Mutations go through the sync service so
// every change reloads the snapshot and emits a notification.
type ReferenceHandler struct {
	sync *services.SyncService
}

// NewReferenceHandler creates a new reference data handler
func NewReferenceHandler(sync *services.SyncService) *ReferenceHandler {
	return &ReferenceHandler{sync: sync}
}

// ListDoctors handles GET /api/doctors
func (h *ReferenceHandler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	doctors := h.sync.Snapshot().Doctors
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"doctors": doctors,
		"count":   len(doctors),
	})
}

// SaveDoctor handles POST /api/doctors and PUT /api/doctors/{id}
func (h *ReferenceHandler) SaveDoctor(w http.ResponseWriter, r *http.Request) {
	var doctor entities.Doctor
	if err := json.NewDecoder(r.Body).Decode(&doctor); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	doctor.ID = r.PathValue("id")
	updating := doctor.ID != ""

	if err := h.sync.SaveDoctor(r.Context(), &doctor); err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, statusForSave(updating), doctor)
}

// DeleteDoctor handles DELETE /api/doctors/{id}
func (h *ReferenceHandler) DeleteDoctor(w http.ResponseWriter, r *http.Request) {
	h.delete(w, r, h.sync.DeleteDoctor)
}

// ListHospitals handles GET /api/hospitals
func (h *ReferenceHandler) ListHospitals(w http.ResponseWriter, r *http.Request) {
	hospitals := h.sync.Snapshot().Hospitals
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"hospitals": hospitals,
		"count":     len(hospitals),
	})
}

// SaveHospital handles POST /api/hospitals and PUT /api/hospitals/{id}
func (h *ReferenceHandler) SaveHospital(w http.ResponseWriter, r *http.Request) {
	var hospital entities.Hospital
	if err := json.NewDecoder(r.Body).Decode(&hospital); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	hospital.ID = r.PathValue("id")
	updating := hospital.ID != ""

	if err := h.sync.SaveHospital(r.Context(), &hospital); err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, statusForSave(updating), hospital)
}

// DeleteHospital handles DELETE /api/hospitals/{id}
func (h *ReferenceHandler) DeleteHospital(w http.ResponseWriter, r *http.Request) {
	h.delete(w, r, h.sync.DeleteHospital)
}

// ListInsurancePlans handles GET /api/insurance-plans
func (h *ReferenceHandler) ListInsurancePlans(w http.ResponseWriter, r *http.Request) {
	plans := h.sync.Snapshot().InsurancePlans
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"insurance_plans": plans,
		"count":           len(plans),
	})
}

// SaveInsurancePlan handles POST /api/insurance-plans and PUT /api/insurance-plans/{id}
func (h *ReferenceHandler) SaveInsurancePlan(w http.ResponseWriter, r *http.Request) {
	var plan entities.InsurancePlan
	if err := json.NewDecoder(r.Body).Decode(&plan); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	plan.ID = r.PathValue("id")
	updating := plan.ID != ""

	if err := h.sync.SaveInsurancePlan(r.Context(), &plan); err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, statusForSave(updating), plan)
}

// DeleteInsurancePlan handles DELETE /api/insurance-plans/{id}
func (h *ReferenceHandler) DeleteInsurancePlan(w http.ResponseWriter, r *http.Request) {
	h.delete(w, r, h.sync.DeleteInsurancePlan)
}

func (h *ReferenceHandler) delete(w http.ResponseWriter, r *http.Request, del func(context.Context, string) error) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "ID is required")
		return
	}
	if err := del(r.Context(), id); err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func statusForSave(hadID bool) int {
	if hadID {
		return http.StatusOK
	}
	return http.StatusCreated
}
