package attendance

import "errors"

// Attendance domain errors
var (
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrNotCheckedIn       = errors.New("record has no check-in time")
	ErrAlreadyCheckedOut  = errors.New("record already has a check-out time")
	ErrInvalidApproval    = errors.New("invalid approval state")
	ErrTransitionBlocked  = errors.New("approval transition not allowed")
)
