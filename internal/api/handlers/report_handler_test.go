package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/surgiplan/backend/internal/api/handlers"
	"github.com/surgiplan/backend/internal/scheduling"
)

func TestReportHandler_GetReport(t *testing.T) {
	svc, _ := newSyncService(t)
	handler := handlers.NewReportHandler(svc)

	t.Run("summarizes the window inclusively", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/reports?from=2024-03-01&to=2024-03-20", nil)
		w := httptest.NewRecorder()

		handler.GetReport(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var response struct {
			From   string            `json:"from"`
			To     string            `json:"to"`
			Report scheduling.Report `json:"report"`
		}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&response))

		// s3 on March 20th at 11:00 falls inside the inclusive end day.
		assert.Equal(t, 3, response.Report.TotalSurgeries)
		assert.Equal(t, 1, response.Report.RealizedSurgeries)
		assert.Equal(t, 2300.0, response.Report.TotalRevenue)
	})

	t.Run("groups by hospital descending by count", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/reports?from=2024-03-01&to=2024-03-31", nil)
		w := httptest.NewRecorder()

		handler.GetReport(w, req)

		var response struct {
			Report scheduling.Report `json:"report"`
		}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&response))

		require.Len(t, response.Report.SurgeriesByHospital, 2)
		assert.Equal(t, "Santa Casa", response.Report.SurgeriesByHospital[0].Hospital)
		assert.Equal(t, 2, response.Report.SurgeriesByHospital[0].Count)
	})

	t.Run("doctor filter narrows the report", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/reports?from=2024-03-01&to=2024-03-31&doctor=d1", nil)
		w := httptest.NewRecorder()

		handler.GetReport(w, req)

		var response struct {
			Report scheduling.Report `json:"report"`
		}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
		assert.Equal(t, 2, response.Report.TotalSurgeries)
	})

	t.Run("rejects a malformed window", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/reports?from=01-03-2024", nil)
		w := httptest.NewRecorder()

		handler.GetReport(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestReportHandler_ExportReport(t *testing.T) {
	svc, _ := newSyncService(t)
	handler := handlers.NewReportHandler(svc)

	req := httptest.NewRequest("GET", "/api/reports/export?from=2024-03-01&to=2024-03-31", nil)
	w := httptest.NewRecorder()

	handler.ExportReport(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "relatorio_2024-03-01_2024-03-31.csv")

	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "patient")
	assert.Contains(t, lines[1], "Maria Souza")
	assert.Contains(t, lines[1], "Santa Casa")
	assert.Contains(t, lines[3], "Realizada")
}
