package checkin

import "errors"

var (
	// ErrInvalidPayload is returned for any QR payload that is not
	// "ORG|..." with at least four pipe-delimited fields.
	ErrInvalidPayload = errors.New("Invalid QR code format")

	// ErrOrgOrNetworkNotFound is returned when a token references an
	// organization or network that no longer exists.
	ErrOrgOrNetworkNotFound = errors.New("Organization or network not found")
)
