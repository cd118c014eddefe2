package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/clinicore/attendance-backend-go/internal/domain/notification"
	"github.com/clinicore/attendance-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// NotificationHandler serves the per-session notification feeds and the
// SSE stream carrying attendance broadcasts.
type NotificationHandler interface {
	Stream(w http.ResponseWriter, r *http.Request)
	Feed(w http.ResponseWriter, r *http.Request)
	UnreadCount(w http.ResponseWriter, r *http.Request)
	MarkAsRead(w http.ResponseWriter, r *http.Request)
	MarkAllAsRead(w http.ResponseWriter, r *http.Request)
	ClearAll(w http.ResponseWriter, r *http.Request)
}

type notificationHandlerImpl struct {
	notifService notification.Service
}

func NewNotificationHandler(notifService notification.Service) NotificationHandler {
	return &notificationHandlerImpl{
		notifService: notifService,
	}
}

// clientID identifies one dashboard session. Feeds are ephemeral and
// keyed by this value; a client that loses it simply starts a fresh
// feed.
func clientID(r *http.Request) string {
	if id := r.URL.Query().Get("client_id"); id != "" {
		return id
	}
	return r.Header.Get("X-Client-ID")
}

// Stream handles the SSE connection for real-time attendance events.
// The client_id query parameter is optional: without one the session
// gets a generated id, announced in the connected event.
func (h *notificationHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	id := clientID(r)
	if id == "" {
		id = uuid.New().String()
	}

	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.notifService.Subscribe(r.Context(), id)
	defer cleanup()

	// Send initial connection event
	fmt.Fprintf(w, "event: connected\ndata: {\"status\":\"connected\",\"client_id\":%q}\n\n", id)
	flusher.Flush()

	keepalive := time.NewTicker(30 * time.Second)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", notification.EventAttendanceUpdated, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}

// Feed returns the session's notification list and unread counter.
func (h *notificationHandlerImpl) Feed(w http.ResponseWriter, r *http.Request) {
	id := clientID(r)
	if id == "" {
		response.BadRequest(w, "client_id is required", nil)
		return
	}

	feed, err := h.notifService.Feed(id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, feed)
}

// UnreadCount returns just the counter for badge polling.
func (h *notificationHandlerImpl) UnreadCount(w http.ResponseWriter, r *http.Request) {
	id := clientID(r)
	if id == "" {
		response.BadRequest(w, "client_id is required", nil)
		return
	}

	feed, err := h.notifService.Feed(id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, notification.UnreadCountResponse{UnreadCount: feed.UnreadCount})
}

// MarkAsRead flips one notification's read flag.
func (h *notificationHandlerImpl) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	id := clientID(r)
	if id == "" {
		response.BadRequest(w, "client_id is required", nil)
		return
	}

	notifID := chi.URLParam(r, "id")
	if err := h.notifService.MarkAsRead(id, notifID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Notification marked as read", nil)
}

// MarkAllAsRead flips every notification and zeroes the counter.
func (h *notificationHandlerImpl) MarkAllAsRead(w http.ResponseWriter, r *http.Request) {
	id := clientID(r)
	if id == "" {
		response.BadRequest(w, "client_id is required", nil)
		return
	}

	if err := h.notifService.MarkAllAsRead(id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "All notifications marked as read", nil)
}

// ClearAll discards the session's notification list.
func (h *notificationHandlerImpl) ClearAll(w http.ResponseWriter, r *http.Request) {
	id := clientID(r)
	if id == "" {
		response.BadRequest(w, "client_id is required", nil)
		return
	}

	if err := h.notifService.ClearAll(id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Notifications cleared", nil)
}
