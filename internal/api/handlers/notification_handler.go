package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/surgiplan/backend/internal/application/services"
	"github.com/surgiplan/backend/internal/domain/providers"
)

// NotificationHandler serves the mutation-outcome notifications: a recent
// backlog, manual dismissal, and a Server-Sent Events stream fed by the
// event bus.
type NotificationHandler struct {
	notifications *services.NotificationService
	eventBus      providers.EventBus
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notifications *services.NotificationService, eventBus providers.EventBus) *NotificationHandler {
	return &NotificationHandler{
		notifications: notifications,
		eventBus:      eventBus,
	}
}

// ListNotifications handles GET /api/notifications
func (h *NotificationHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	recent := h.notifications.Recent()
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"notifications": recent,
		"count":         len(recent),
	})
}

// DismissNotification handles DELETE /api/notifications/{id}
func (h *NotificationHandler) DismissNotification(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "notification ID is required")
		return
	}
	if !h.notifications.Dismiss(id) {
		respondWithError(w, http.StatusNotFound, "notification not found")
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "dismissed"})
}

// StreamNotifications handles GET /api/notifications/stream as SSE
func (h *NotificationHandler) StreamNotifications(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		respondWithError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	stream, err := h.eventBus.Subscribe(r.Context(), providers.NotificationsChannel)
	if err != nil {
		log.Error().Err(err).Msg("failed to subscribe to notifications channel")
		respondWithError(w, http.StatusInternalServerError, "failed to subscribe")
		return
	}

	sendEvent(w, "connected", map[string]interface{}{"timestamp": time.Now()})
	flusher.Flush()

	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			sendEvent(w, "heartbeat", map[string]interface{}{"timestamp": time.Now()})
			flusher.Flush()
		case notification, open := <-stream:
			if !open {
				return
			}
			if notification == nil {
				continue
			}
			sendEvent(w, "notification", notification)
			flusher.Flush()
		}
	}
}

func sendEvent(w http.ResponseWriter, event string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Warn().Err(err).Str("event", event).Msg("failed to encode SSE payload")
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
}
