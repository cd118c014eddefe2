package attendance

import (
	"time"
)

// Status is the presence status computed once at check-in.
type Status string

const (
	StatusPresent Status = "present"
	StatusLate    Status = "late"
	StatusAbsent  Status = "absent"
)

// SyncStatus tracks whether a record's local approval state has reached
// the database. Approval writes are best-effort: the local view advances
// even when the write fails, and a background job retries.
type SyncStatus string

const (
	SyncSynced  SyncStatus = "synced"
	SyncPending SyncStatus = "pending_sync"
	SyncFailed  SyncStatus = "sync_failed"
)

type Attendance struct {
	ID              string
	Name            string
	StaffID         string
	Role            string
	Organization    string // denormalized name, not a live reference
	Room            string
	Shift           string
	Date            time.Time
	CheckInTime     string  // 12-hour clock, e.g. "08:15 AM"
	CheckOutTime    *string // set at most once, only after check-in
	Status          Status
	Approval        ApprovalState
	RequestReason   *string
	Notes           *string
	RequestImageURL *string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Cache-only, never persisted
	SyncStatus SyncStatus
}
