package attendance

import (
	"context"
)

// Service defines business logic for attendance operations.
type Service interface {
	// CheckIn records a staff check-in. The check-in time is taken from
	// the server wall clock at the moment of submission and the status
	// is classified exactly once.
	CheckIn(ctx context.Context, req CheckInRequest) (AttendanceResponse, error)

	// CheckOut stamps the check-out time on an open record. It fails if
	// the record already has one.
	CheckOut(ctx context.Context, id string) (AttendanceResponse, error)

	// SubmitPermissionRequest creates a record through the alternate
	// submission path: status is always present and approval starts at
	// ask_permission.
	SubmitPermissionRequest(ctx context.Context, form PermissionRequestForm) (AttendanceResponse, error)

	// SetApproval moves a record to any approval state. Persistence is
	// best-effort: a failed write is logged and retried in the
	// background while the local view advances.
	SetApproval(ctx context.Context, req SetApprovalRequest) (AttendanceResponse, error)

	// AskPermission unconditionally resets a record's approval back to
	// pending, whatever its current state.
	AskPermission(ctx context.Context, id string) (AttendanceResponse, error)

	// Get retrieves a single record.
	Get(ctx context.Context, id string) (AttendanceResponse, error)

	// List retrieves records with filters and pagination.
	List(ctx context.Context, filter ListFilter) (ListAttendanceResponse, error)

	// Update edits a record without touching status or check-in time.
	Update(ctx context.Context, req UpdateAttendanceRequest) (AttendanceResponse, error)

	// Delete removes a record.
	Delete(ctx context.Context, id string) error

	// FlushPendingSync retries approval writes that previously failed.
	FlushPendingSync(ctx context.Context) error
}
