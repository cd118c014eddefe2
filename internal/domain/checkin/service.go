package checkin

import (
	"context"
)

// Service resolves scanned QR payloads against the registered
// organization and network tables.
type Service interface {
	// Validate decodes a payload, resolves its organization and
	// network, and checks the device IP against the network binding
	// with exact string equality.
	Validate(ctx context.Context, req ValidatePayloadRequest) (OrgContext, error)

	// Refresh reloads the lookup snapshot from the repositories. There
	// is no implicit background refetch; callers decide when to reload.
	Refresh(ctx context.Context) error

	// DeviceIP resolves the current device's public IP through the
	// external lookup collaborator.
	DeviceIP(ctx context.Context) (string, error)
}
