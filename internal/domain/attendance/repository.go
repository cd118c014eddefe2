package attendance

import (
	"context"
)

// Repository defines data access for attendance records.
type Repository interface {
	// Create persists a new attendance record and returns it with
	// generated fields filled in.
	Create(ctx context.Context, att Attendance) (Attendance, error)

	// GetByID retrieves a record by id.
	GetByID(ctx context.Context, id string) (Attendance, error)

	// Update overwrites the editable fields of an existing record.
	// Status and check-in time are never recomputed here.
	Update(ctx context.Context, att Attendance) error

	// UpdateApproval writes only the approval state.
	UpdateApproval(ctx context.Context, id string, approval ApprovalState) error

	// SetCheckOut writes the check-out time.
	SetCheckOut(ctx context.Context, id string, checkOutTime string) error

	// List retrieves records matching the filter with pagination.
	List(ctx context.Context, filter ListFilter) ([]Attendance, int64, error)

	// Delete removes a record.
	Delete(ctx context.Context, id string) error
}
