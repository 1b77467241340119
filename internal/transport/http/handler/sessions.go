package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/sent-robotics/robot-relay/internal/application/session"
	"github.com/sent-robotics/robot-relay/internal/domain"
	"github.com/sent-robotics/robot-relay/internal/pkg/validate"
	"github.com/sent-robotics/robot-relay/internal/transport/http/middleware"
)

// SessionHandler handles login and logout.
type SessionHandler struct {
	svc session.Service
	ttl time.Duration
}

func NewSessionHandler(svc session.Service, ttl time.Duration) *SessionHandler {
	return &SessionHandler{svc: svc, ttl: ttl}
}

func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusUnauthorized, StatusEnvelope{Status: "error"})
		return
	}
	if err := validate.Struct(req); err != nil {
		writeJSON(w, http.StatusUnauthorized, StatusEnvelope{Status: "error"})
		return
	}
	role, token, err := h.svc.Login(req)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, StatusEnvelope{Status: "error"})
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, StatusEnvelope{Status: "ok", Role: role})
}

func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	http.Redirect(w, r, "/", http.StatusFound)
}
