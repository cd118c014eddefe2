package organization

import (
	"context"
)

// Service defines business logic for organizations and their network
// bindings.
type Service interface {
	CreateOrganization(ctx context.Context, req CreateOrganizationRequest) (OrganizationResponse, error)
	GetOrganization(ctx context.Context, id string) (OrganizationResponse, error)
	ListOrganizations(ctx context.Context) ([]OrganizationResponse, error)
	UpdateOrganization(ctx context.Context, req UpdateOrganizationRequest) (OrganizationResponse, error)
	DeleteOrganization(ctx context.Context, id string) error

	// QRCode renders the organization's check-in QR image as a PNG.
	QRCode(ctx context.Context, id string, size int) ([]byte, error)

	CreateNetwork(ctx context.Context, req CreateNetworkRequest) (NetworkResponse, error)
	GetNetwork(ctx context.Context, id string) (NetworkResponse, error)
	ListNetworks(ctx context.Context) ([]NetworkResponse, error)
	UpdateNetwork(ctx context.Context, req UpdateNetworkRequest) (NetworkResponse, error)
	DeleteNetwork(ctx context.Context, id string) error
}
