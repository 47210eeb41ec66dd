package handlers

import (
	"net/http"
	"time"

	"github.com/surgiplan/backend/internal/application/services"
	"github.com/surgiplan/backend/internal/scheduling"
)

// DashboardHandler serves the landing-page summary cards
type DashboardHandler struct {
	sync *services.SyncService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(sync *services.SyncService) *DashboardHandler {
	return &DashboardHandler{sync: sync}
}

// GetDashboard handles GET /api/dashboard
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	snapshot := h.sync.Snapshot()
	dashboard := scheduling.ComputeDashboard(snapshot.Surgeries, time.Now())
	respondWithJSON(w, http.StatusOK, dashboard)
}
