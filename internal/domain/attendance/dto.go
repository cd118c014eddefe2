package attendance

import (
	"mime/multipart"

	"github.com/clinicore/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type CheckInRequest struct {
	Name         string  `json:"name"`
	StaffID      string  `json:"staff_id"`
	Role         string  `json:"role"`
	Organization string  `json:"organization"`
	Room         string  `json:"room"`
	Shift        string  `json:"shift"`
	Notes        *string `json:"notes,omitempty"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	required := []struct {
		field string
		value string
	}{
		{"name", r.Name},
		{"staff_id", r.StaffID},
		{"role", r.Role},
		{"organization", r.Organization},
		{"shift", r.Shift},
	}

	for _, f := range required {
		if validator.IsEmpty(f.value) {
			errs = append(errs, validator.ValidationError{
				Field:   f.field,
				Message: f.field + " is required",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// PermissionRequestForm is the alternate submission path for staff who
// cannot complete a normal scan-based check-in. All listed fields plus
// request_reason are mandatory; the evidence image is optional.
type PermissionRequestForm struct {
	Name          string  `json:"name"`
	StaffID       string  `json:"staff_id"`
	Role          string  `json:"role"`
	Organization  string  `json:"organization"`
	Room          string  `json:"room"`
	Shift         string  `json:"shift"`
	RequestReason string  `json:"request_reason"`
	Notes         *string `json:"notes,omitempty"`

	File       multipart.File        `json:"-"`
	FileHeader *multipart.FileHeader `json:"-"`
}

func (r *PermissionRequestForm) Validate() error {
	var errs validator.ValidationErrors

	required := []struct {
		field string
		value string
	}{
		{"name", r.Name},
		{"staff_id", r.StaffID},
		{"role", r.Role},
		{"organization", r.Organization},
		{"shift", r.Shift},
		{"request_reason", r.RequestReason},
	}

	for _, f := range required {
		if validator.IsEmpty(f.value) {
			errs = append(errs, validator.ValidationError{
				Field:   f.field,
				Message: f.field + " is required",
			})
		}
	}

	if r.FileHeader != nil {
		if !validator.IsAllowedImageExt(r.FileHeader.Filename) {
			errs = append(errs, validator.ValidationError{
				Field:   "request_image",
				Message: "invalid file type: only jpg, jpeg, png allowed",
			})
		} else if r.FileHeader.Size > 10<<20 {
			errs = append(errs, validator.ValidationError{
				Field:   "request_image",
				Message: "evidence image size must not exceed 10MB",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateAttendanceRequest struct {
	ID           string  `json:"-"`
	Name         *string `json:"name,omitempty"`
	Role         *string `json:"role,omitempty"`
	Organization *string `json:"organization,omitempty"`
	Room         *string `json:"room,omitempty"`
	Shift        *string `json:"shift,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

type SetApprovalRequest struct {
	ID       string        `json:"-"`
	Approval ApprovalState `json:"approval"`
}

func (r *SetApprovalRequest) Validate() error {
	if !r.Approval.Valid() {
		return ErrInvalidApproval
	}
	return nil
}

type ListFilter struct {
	StaffID  *string
	Date     *string
	Status   *string
	Approval *string
	Page     int
	Limit    int
}

func (f *ListFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Date != nil {
		if _, ok := validator.IsValidDate(*f.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.Status != nil && !validator.IsInSlice(*f.Status, []string{
		string(StatusPresent), string(StatusLate), string(StatusAbsent),
	}) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of present, late, absent",
		})
	}

	if f.Approval != nil && !ApprovalState(*f.Approval).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "approval",
			Message: "approval must be one of pending, ask_permission, accepted, rejected",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ========================================
// RESPONSES
// ========================================

type AttendanceResponse struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	StaffID         string        `json:"staff_id"`
	Role            string        `json:"role"`
	Organization    string        `json:"organization"`
	Room            string        `json:"room,omitempty"`
	Shift           string        `json:"shift"`
	Date            string        `json:"date"`
	CheckInTime     string        `json:"check_in_time"`
	CheckOutTime    *string       `json:"check_out_time,omitempty"`
	Status          Status        `json:"status"`
	Approval        ApprovalState `json:"approval"`
	RequestReason   *string       `json:"request_reason,omitempty"`
	Notes           *string       `json:"notes,omitempty"`
	RequestImageURL *string       `json:"request_image_url,omitempty"`
	SyncStatus      SyncStatus    `json:"sync_status"`
}

type ListAttendanceResponse struct {
	Items []AttendanceResponse `json:"items"`
	Total int64                `json:"total"`
	Page  int                  `json:"page"`
	Limit int                  `json:"limit"`
}
