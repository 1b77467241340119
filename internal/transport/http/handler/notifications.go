package handler

import (
	"encoding/json"
	"net/http"

	"github.com/sent-robotics/robot-relay/internal/application/notification"
	"github.com/sent-robotics/robot-relay/internal/domain"
)

// NotificationHandler handles the notification ingestion and log endpoints.
type NotificationHandler struct {
	svc notification.Service
}

func NewNotificationHandler(svc notification.Service) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

// Receive ingests one notification. The robot firmware sends loose JSON, so
// a malformed body is treated as an empty payload and the defaults apply;
// only a failed append turns into an error response.
func (h *NotificationHandler) Receive(w http.ResponseWriter, r *http.Request) {
	var req domain.NotifyRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	if _, err := h.svc.Ingest(r.Context(), req); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to persist notification")
		return
	}
	writeJSON(w, http.StatusOK, StatusEnvelope{Status: "ok"})
}

// List returns the full log, oldest first.
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.List(r.Context()))
}

// Clear wipes the log. Admin-gated by the router.
func (h *NotificationHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Clear(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to clear notification log")
		return
	}
	writeJSON(w, http.StatusOK, StatusEnvelope{Status: "cleared"})
}
