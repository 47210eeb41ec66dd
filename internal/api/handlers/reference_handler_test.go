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
	"github.com/surgiplan/backend/internal/domain/entities"
)

func TestReferenceHandler_Doctors(t *testing.T) {
	svc, _ := newSyncService(t)
	handler := handlers.NewReferenceHandler(svc)

	t.Run("lists doctors", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/doctors", nil)
		w := httptest.NewRecorder()

		handler.ListDoctors(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var response struct {
			Count int `json:"count"`
		}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
		assert.Equal(t, 2, response.Count)
	})

	t.Run("creating a doctor returns 201 and refreshes the snapshot", func(t *testing.T) {
		body := `{"name":"Dr. Carla","color":"#e74c3c"}`
		req := httptest.NewRequest("POST", "/api/doctors", strings.NewReader(body))
		w := httptest.NewRecorder()

		handler.SaveDoctor(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Len(t, svc.Snapshot().Doctors, 3)
	})

	t.Run("updating a doctor returns 200", func(t *testing.T) {
		body := `{"name":"Dr. Ana Paula","color":"#1abc9c"}`
		req := httptest.NewRequest("PUT", "/api/doctors/d1", strings.NewReader(body))
		req.SetPathValue("id", "d1")
		w := httptest.NewRecorder()

		handler.SaveDoctor(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		doctor, ok := svc.Snapshot().Doctor("d1")
		require.True(t, ok)
		assert.Equal(t, "Dr. Ana Paula", doctor.Name)
	})

	t.Run("an empty name is rejected", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/doctors", strings.NewReader(`{"name":"  "}`))
		w := httptest.NewRecorder()

		handler.SaveDoctor(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestReferenceHandler_Hospitals(t *testing.T) {
	svc, _ := newSyncService(t)
	handler := handlers.NewReferenceHandler(svc)

	t.Run("deleting a hospital leaves its surgeries dangling", func(t *testing.T) {
		req := httptest.NewRequest("DELETE", "/api/hospitals/h2", nil)
		req.SetPathValue("id", "h2")
		w := httptest.NewRecorder()

		handler.DeleteHospital(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		_, ok := svc.Snapshot().HospitalName("h2")
		assert.False(t, ok)

		surgery, ok := svc.Snapshot().Surgery("s2")
		require.True(t, ok)
		assert.Equal(t, "h2", surgery.HospitalID)
	})

	t.Run("deleting a missing hospital is a 404", func(t *testing.T) {
		req := httptest.NewRequest("DELETE", "/api/hospitals/nope", nil)
		req.SetPathValue("id", "nope")
		w := httptest.NewRecorder()

		handler.DeleteHospital(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestReferenceHandler_InsurancePlans(t *testing.T) {
	svc, _ := newSyncService(t)
	handler := handlers.NewReferenceHandler(svc)

	body := `{"name":"Bradesco Saúde"}`
	req := httptest.NewRequest("POST", "/api/insurance-plans", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.SaveInsurancePlan(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	var created entities.InsurancePlan
	require.NoError(t, json.NewDecoder(w.Body).Decode(&created))
	assert.NotEmpty(t, created.ID)

	name, ok := svc.Snapshot().InsurancePlanName(created.ID)
	require.True(t, ok)
	assert.Equal(t, "Bradesco Saúde", name)
}
