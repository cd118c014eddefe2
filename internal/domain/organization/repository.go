package organization

import (
	"context"
)

// OrganizationRepository defines data access for organizations.
type OrganizationRepository interface {
	Create(ctx context.Context, org Organization) (Organization, error)
	GetByID(ctx context.Context, id string) (Organization, error)
	List(ctx context.Context) ([]Organization, error)
	Update(ctx context.Context, org Organization) error
	Delete(ctx context.Context, id string) error
}

// NetworkRepository defines data access for network bindings.
type NetworkRepository interface {
	Create(ctx context.Context, nw NetworkBinding) (NetworkBinding, error)
	GetByID(ctx context.Context, id string) (NetworkBinding, error)
	List(ctx context.Context) ([]NetworkBinding, error)
	Update(ctx context.Context, nw NetworkBinding) error
	Delete(ctx context.Context, id string) error
}
