package checkin

import (
	"github.com/clinicore/attendance-backend-go/internal/pkg/validator"
)

type ValidatePayloadRequest struct {
	Payload  string `json:"payload"`
	DeviceIP string `json:"device_ip"`
}

func (r *ValidatePayloadRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Payload) {
		errs = append(errs, validator.ValidationError{Field: "payload", Message: "payload is required"})
	}
	if validator.IsEmpty(r.DeviceIP) {
		errs = append(errs, validator.ValidationError{Field: "device_ip", Message: "device_ip is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// OrgContext is the successful validation result. OrganizationLocked
// tells the client to make its organization field read-only so the
// operator cannot substitute a different organization after a scan.
type OrgContext struct {
	OrgID              string `json:"org_id"`
	OrgName            string `json:"org_name"`
	NetworkID          string `json:"network_id"`
	OrganizationLocked bool   `json:"organization_locked"`
}

type DeviceIPResponse struct {
	IP string `json:"ip"`
}
