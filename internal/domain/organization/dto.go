package organization

import (
	"github.com/clinicore/attendance-backend-go/internal/pkg/validator"
)

type CreateOrganizationRequest struct {
	Name       string  `json:"name"`
	Type       string  `json:"type"`
	RecordType string  `json:"record_type"`
	NetworkID  string  `json:"network_id"`
	LogoURL    *string `json:"logo_url,omitempty"`
}

func (r *CreateOrganizationRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	if validator.IsEmpty(r.NetworkID) {
		errs = append(errs, validator.ValidationError{Field: "network_id", Message: "network_id is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateOrganizationRequest struct {
	ID         string  `json:"-"`
	Name       *string `json:"name,omitempty"`
	Type       *string `json:"type,omitempty"`
	RecordType *string `json:"record_type,omitempty"`
	NetworkID  *string `json:"network_id,omitempty"`
	LogoURL    *string `json:"logo_url,omitempty"`
}

type CreateNetworkRequest struct {
	Name      string `json:"name"`
	IPAddress string `json:"ip_address"`
}

func (r *CreateNetworkRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	if validator.IsEmpty(r.IPAddress) {
		errs = append(errs, validator.ValidationError{Field: "ip_address", Message: "ip_address is required"})
	} else if !validator.IsValidIP(r.IPAddress) {
		errs = append(errs, validator.ValidationError{Field: "ip_address", Message: "ip_address must be a valid IP address"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateNetworkRequest struct {
	ID        string  `json:"-"`
	Name      *string `json:"name,omitempty"`
	IPAddress *string `json:"ip_address,omitempty"`
}

func (r *UpdateNetworkRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.IPAddress != nil && !validator.IsValidIP(*r.IPAddress) {
		errs = append(errs, validator.ValidationError{Field: "ip_address", Message: "ip_address must be a valid IP address"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type OrganizationResponse struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Type       string  `json:"type,omitempty"`
	RecordType string  `json:"record_type,omitempty"`
	NetworkID  string  `json:"network_id"`
	LogoURL    *string `json:"logo_url,omitempty"`
}

type NetworkResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	IPAddress string `json:"ip_address"`
}
