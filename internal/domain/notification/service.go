package notification

import (
	"context"
)

// Publisher broadcasts attendance lifecycle events to every connected
// dashboard. Attendance writes call this after persisting.
type Publisher interface {
	PublishAttendanceEvent(evt AttendanceEvent)
}

// Service is the dashboard-facing side of the fanout: per-session
// subscription plus the ephemeral feed operations.
type Service interface {
	Publisher

	// Subscribe registers a dashboard session on the attendance channel
	// and returns its event stream and a cleanup function to call on
	// disconnect. Received events are applied to the session's feed
	// before being forwarded.
	Subscribe(ctx context.Context, clientID string) (<-chan NotificationEvent, func())

	// Feed returns the session's notification list and unread counter.
	Feed(clientID string) (FeedResponse, error)

	// MarkAsRead flips one notification; the counter never goes below 0.
	MarkAsRead(clientID, notificationID string) error

	// MarkAllAsRead flips all and zeroes the counter.
	MarkAllAsRead(clientID string) error

	// ClearAll discards the session's list.
	ClearAll(clientID string) error

	// PruneIdleFeeds drops feeds idle longer than the service TTL,
	// emulating discard on session end. Returns the number pruned.
	PruneIdleFeeds() int

	// Stop detaches the service from the hub.
	Stop()
}
