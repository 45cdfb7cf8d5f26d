package users

import (
	"fmt"
	"net/http"
	"time"

	"github.com/BronksDEV/luxbrasil-sub000/realtime"
	"github.com/BronksDEV/luxbrasil-sub000/utils"
)

// GET /v1/users/events
//
// Server-sent event stream of balance snapshots. The client re-renders from
// each full snapshot, so a dropped or duplicated message costs nothing.
func EventsHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Streaming unsupported"})
		return
	}

	sub := realtime.Subscribe(r.Context(), uid)
	if sub == nil {
		utils.WriteJSON(w, http.StatusServiceUnavailable, utils.APIResponse{Success: false, Message: "Realtime unavailable"})
		return
	}
	defer sub.Close()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, ": connected\n\n")
	flusher.Flush()

	heartbeat := time.NewTicker(25 * time.Second)
	defer heartbeat.Stop()

	ch := sub.Channel()
	for {
		select {
		case <-r.Context().Done():
			return
		case <-heartbeat.C:
			// Keep intermediaries from closing an idle connection.
			fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()
		case msg, open := <-ch:
			if !open {
				return
			}
			fmt.Fprintf(w, "event: balance\ndata: %s\n\n", msg.Payload)
			flusher.Flush()
		}
	}
}
