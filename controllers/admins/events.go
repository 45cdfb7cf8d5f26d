package admins

import (
	"fmt"
	"net/http"
	"time"

	"github.com/BronksDEV/luxbrasil-sub000/realtime"
	"github.com/BronksDEV/luxbrasil-sub000/utils"
)

// GET /api/admin/events
//
// Cross-user balance event stream for the admin console live view.
func EventsHandler(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Streaming unsupported"})
		return
	}

	sub := realtime.SubscribeAdmin(r.Context())
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
