package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/surgiplan/backend/internal/application/services"
)

// AuthHandler handles login, logout and session introspection
type AuthHandler struct {
	auth *services.AuthService
	sync *services.SyncService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth *services.AuthService, sync *services.SyncService) *AuthHandler {
	return &AuthHandler{auth: auth, sync: sync}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		respondWithError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	session, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"token":   session.Token,
		"profile": session.Profile,
		"name":    session.Profile.DisplayName(h.sync.Snapshot().Doctor),
	})
}

// Logout handles POST /api/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.Logout(r.Context(), BearerToken(r)); err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "signed out"})
}

// GetSession handles GET /api/auth/session
func (h *AuthHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	profile, err := h.auth.ProfileForToken(r.Context(), BearerToken(r))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"profile": profile,
		"name":    profile.DisplayName(h.sync.Snapshot().Doctor),
	})
}

// BearerToken extracts the session token from the Authorization header
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return token
	}
	return ""
}
