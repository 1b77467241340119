package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/sent-robotics/robot-relay/internal/application/media"
	"github.com/sent-robotics/robot-relay/internal/domain"
)

// streamChunkSize is the forwarding unit for the live stream: small enough
// to keep frame latency low, large enough to avoid syscall churn.
const streamChunkSize = 1024

// MediaHandler handles the snapshot and stream endpoints.
type MediaHandler struct {
	svc media.Service
}

func NewMediaHandler(svc media.Service) *MediaHandler {
	return &MediaHandler{svc: svc}
}

// TakePhoto triggers a capture and email dispatch. Admin-gated by the
// router.
func (h *MediaHandler) TakePhoto(w http.ResponseWriter, r *http.Request) {
	ok, err := h.svc.TakeSnapshot(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, SnapshotEnvelope{Success: false, Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, SnapshotEnvelope{Success: ok})
}

// Stream proxies the device's live feed chunk by chunk. The transfer is
// unbounded; it ends when either side disconnects, and a dropped stream
// needs a fresh request to reconnect.
func (h *MediaHandler) Stream(w http.ResponseWriter, r *http.Request) {
	body, contentType, err := h.svc.OpenStream(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrUpstream) {
			http.Error(w, "stream error", http.StatusBadGateway)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	flusher, _ := w.(http.Flusher)

	buf := make([]byte, streamChunkSize)
	for {
		n, rerr := body.Read(buf)
		if n > 0 {
			if _, werr := w.Write(buf[:n]); werr != nil {
				// Client went away; closing the body tears down the
				// upstream connection.
				slog.Debug("stream client disconnected", "err", werr)
				return
			}
			if flusher != nil {
				flusher.Flush()
			}
		}
		if rerr != nil {
			slog.Debug("stream ended", "err", rerr)
			return
		}
	}
}
