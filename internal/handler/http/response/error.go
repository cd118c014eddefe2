package response

import (
	"errors"
	"net/http"

	"github.com/clinicore/attendance-backend-go/internal/domain/attendance"
	"github.com/clinicore/attendance-backend-go/internal/domain/checkin"
	"github.com/clinicore/attendance-backend-go/internal/domain/notification"
	"github.com/clinicore/attendance-backend-go/internal/domain/organization"
	"github.com/clinicore/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// A device on the wrong network carries both IPs for the operator.
	var ipMismatch *checkin.IPMismatchError
	if errors.As(err, &ipMismatch) {
		Forbidden(w, ipMismatch.Error())
		return
	}

	switch {
	// Check-in validation errors
	case errors.Is(err, checkin.ErrInvalidPayload):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, checkin.ErrOrgOrNetworkNotFound):
		NotFound(w, err.Error())

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		BadRequest(w, "Record has no check-in time", nil)
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Record already has a check-out time")
	case errors.Is(err, attendance.ErrInvalidApproval):
		BadRequest(w, "Invalid approval state", nil)
	case errors.Is(err, attendance.ErrTransitionBlocked):
		Conflict(w, "Approval transition not allowed")

	// Organization domain errors
	case errors.Is(err, organization.ErrOrganizationNotFound):
		NotFound(w, "Organization not found")
	case errors.Is(err, organization.ErrNetworkNotFound):
		NotFound(w, "Network not found")

	// Notification domain errors
	case errors.Is(err, notification.ErrFeedNotFound):
		NotFound(w, "Notification feed not found")
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
