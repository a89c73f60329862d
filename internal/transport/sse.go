package transport

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"starboard/internal/auth"
	"starboard/pkg/protocol"
)

// keepAliveEventName is emitted by the liveness probe; it carries no
// data, matching the original server's bare "event: test" frame.
const keepAliveEventName = "test"

// serveSSE opens a live event stream for (roomID, token): joins the
// room, pushes every broadcast event as it is sent, writes a keep-alive
// comment frame every 15s, and leaves on client disconnect.
func (s *Server) serveSSE(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	userID, displayName, err := auth.VerifyToken(token)
	if err != nil {
		writeJSONError(w, http.StatusUnauthorized, "invalid token")
		return
	}
	roomID := chi.URLParam(r, "roomID")
	rm, ok := s.registry.Get(roomID)
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "room not found")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeJSONError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	conn := NewConnection()
	if err := rm.Join(userID, displayName, conn); err != nil {
		writeGameError(w, err)
		return
	}
	defer func() {
		rm.Leave(userID)
		s.registry.RemoveIfEmptyAndFinished(roomID)
		conn.Close()
	}()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ctx := r.Context()
	heartbeat := time.NewTicker(15 * time.Second)
	defer heartbeat.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-heartbeat.C:
			if _, err := fmt.Fprint(w, ": keep-alive\n\n"); err != nil {
				log.Printf("sse: heartbeat to user %d failed: %v", userID, err)
				return
			}
			flusher.Flush()
		case evt, open := <-conn.Events():
			if !open {
				return
			}
			if err := writeSSEFrame(w, evt); err != nil {
				log.Printf("sse: write to user %d failed: %v", userID, err)
				return
			}
			flusher.Flush()
		}
	}
}

func writeSSEFrame(w http.ResponseWriter, evt protocol.Event) error {
	if evt.EventName() == keepAliveEventName {
		_, err := fmt.Fprintf(w, "event: %s\n\n", keepAliveEventName)
		return err
	}
	data, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "data: %s\n\n", data)
	return err
}
