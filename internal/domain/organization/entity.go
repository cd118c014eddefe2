package organization

import (
	"time"
)

// Organization is a clinic site registered for QR check-in. Deleting an
// organization never touches attendance history: records carry the
// organization name denormalized.
type Organization struct {
	ID         string
	Name       string
	Type       string
	RecordType string
	NetworkID  string
	LogoURL    *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NetworkBinding registers the single public IP expected from devices
// checking in under this network. Many organizations may reference one
// network.
type NetworkBinding struct {
	ID        string
	Name      string
	IPAddress string
	CreatedAt time.Time
	UpdatedAt time.Time
}
