package organization

import "errors"

var (
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrNetworkNotFound      = errors.New("network not found")
)
