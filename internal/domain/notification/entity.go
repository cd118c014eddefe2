package notification

import (
	"time"
)

// Channel and event names of the attendance fanout contract.
const (
	ChannelAttendance      = "attendance-channel"
	EventAttendanceUpdated = "attendance-updated"
)

// EventType classifies an attendance lifecycle event.
type EventType string

const (
	TypeCreated  EventType = "created"
	TypeCheckout EventType = "checkout"
	TypeUpdated  EventType = "updated"
)

// AttendanceEvent is the wire payload broadcast on the attendance
// channel whenever an attendance record changes.
type AttendanceEvent struct {
	Type         EventType `json:"type"`
	AttendanceID string    `json:"attendance_id"`
	Message      string    `json:"message"`
	Timestamp    time.Time `json:"timestamp"`
	UserID       string    `json:"user_id,omitempty"`
	Name         string    `json:"name,omitempty"`
}

// NotificationEvent is the per-client, per-session view of a received
// broadcast. It exists only in the receiving dashboard's feed: created
// on receipt, mutated on read, discarded on clear or session end. It is
// never persisted and never synchronized back.
type NotificationEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	UserID    string    `json:"user_id,omitempty"`
	Name      string    `json:"name,omitempty"`
	Read      bool      `json:"read"`
}
