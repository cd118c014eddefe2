package organization

import (
	"context"
	"fmt"

	"github.com/clinicore/attendance-backend-go/internal/domain/checkin"
	"github.com/clinicore/attendance-backend-go/internal/domain/organization"
	"github.com/clinicore/attendance-backend-go/internal/pkg/qrimg"
	"github.com/google/uuid"
)

type OrganizationServiceImpl struct {
	orgRepo organization.OrganizationRepository
	nwRepo  organization.NetworkRepository
}

func NewOrganizationService(
	orgRepo organization.OrganizationRepository,
	nwRepo organization.NetworkRepository,
) *OrganizationServiceImpl {
	return &OrganizationServiceImpl{
		orgRepo: orgRepo,
		nwRepo:  nwRepo,
	}
}

// CreateOrganization implements organization.Service. The referenced
// network must already exist: the QR payload embeds both ids and a
// dangling network would make every scan fail validation.
func (s *OrganizationServiceImpl) CreateOrganization(ctx context.Context, req organization.CreateOrganizationRequest) (organization.OrganizationResponse, error) {
	if err := req.Validate(); err != nil {
		return organization.OrganizationResponse{}, err
	}

	if _, err := s.nwRepo.GetByID(ctx, req.NetworkID); err != nil {
		return organization.OrganizationResponse{}, err
	}

	org := organization.Organization{
		ID:         uuid.New().String(),
		Name:       req.Name,
		Type:       req.Type,
		RecordType: req.RecordType,
		NetworkID:  req.NetworkID,
		LogoURL:    req.LogoURL,
	}

	created, err := s.orgRepo.Create(ctx, org)
	if err != nil {
		return organization.OrganizationResponse{}, fmt.Errorf("failed to create organization: %w", err)
	}

	return toOrganizationResponse(created), nil
}

// GetOrganization implements organization.Service.
func (s *OrganizationServiceImpl) GetOrganization(ctx context.Context, id string) (organization.OrganizationResponse, error) {
	org, err := s.orgRepo.GetByID(ctx, id)
	if err != nil {
		return organization.OrganizationResponse{}, err
	}
	return toOrganizationResponse(org), nil
}

// ListOrganizations implements organization.Service.
func (s *OrganizationServiceImpl) ListOrganizations(ctx context.Context) ([]organization.OrganizationResponse, error) {
	orgs, err := s.orgRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}

	out := make([]organization.OrganizationResponse, 0, len(orgs))
	for _, org := range orgs {
		out = append(out, toOrganizationResponse(org))
	}
	return out, nil
}

// UpdateOrganization implements organization.Service.
func (s *OrganizationServiceImpl) UpdateOrganization(ctx context.Context, req organization.UpdateOrganizationRequest) (organization.OrganizationResponse, error) {
	org, err := s.orgRepo.GetByID(ctx, req.ID)
	if err != nil {
		return organization.OrganizationResponse{}, err
	}

	if req.Name != nil {
		org.Name = *req.Name
	}
	if req.Type != nil {
		org.Type = *req.Type
	}
	if req.RecordType != nil {
		org.RecordType = *req.RecordType
	}
	if req.NetworkID != nil {
		if _, err := s.nwRepo.GetByID(ctx, *req.NetworkID); err != nil {
			return organization.OrganizationResponse{}, err
		}
		org.NetworkID = *req.NetworkID
	}
	if req.LogoURL != nil {
		org.LogoURL = req.LogoURL
	}

	if err := s.orgRepo.Update(ctx, org); err != nil {
		return organization.OrganizationResponse{}, err
	}

	return toOrganizationResponse(org), nil
}

// DeleteOrganization implements organization.Service. Attendance history
// survives the delete; records carry the organization name denormalized.
func (s *OrganizationServiceImpl) DeleteOrganization(ctx context.Context, id string) error {
	return s.orgRepo.Delete(ctx, id)
}

// QRCode implements organization.Service. The rendered payload is the
// same pipe-delimited token the validator decodes, so a printed poster
// stays valid for as long as the organization and network ids live.
func (s *OrganizationServiceImpl) QRCode(ctx context.Context, id string, size int) ([]byte, error) {
	org, err := s.orgRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	payload := checkin.EncodePayload(org.ID, org.Name, org.NetworkID)
	png, err := qrimg.Render(payload, size)
	if err != nil {
		return nil, fmt.Errorf("failed to render qr code: %w", err)
	}
	return png, nil
}

// CreateNetwork implements organization.Service.
func (s *OrganizationServiceImpl) CreateNetwork(ctx context.Context, req organization.CreateNetworkRequest) (organization.NetworkResponse, error) {
	if err := req.Validate(); err != nil {
		return organization.NetworkResponse{}, err
	}

	nw := organization.NetworkBinding{
		ID:        uuid.New().String(),
		Name:      req.Name,
		IPAddress: req.IPAddress,
	}

	created, err := s.nwRepo.Create(ctx, nw)
	if err != nil {
		return organization.NetworkResponse{}, fmt.Errorf("failed to create network: %w", err)
	}

	return toNetworkResponse(created), nil
}

// GetNetwork implements organization.Service.
func (s *OrganizationServiceImpl) GetNetwork(ctx context.Context, id string) (organization.NetworkResponse, error) {
	nw, err := s.nwRepo.GetByID(ctx, id)
	if err != nil {
		return organization.NetworkResponse{}, err
	}
	return toNetworkResponse(nw), nil
}

// ListNetworks implements organization.Service.
func (s *OrganizationServiceImpl) ListNetworks(ctx context.Context) ([]organization.NetworkResponse, error) {
	networks, err := s.nwRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list networks: %w", err)
	}

	out := make([]organization.NetworkResponse, 0, len(networks))
	for _, nw := range networks {
		out = append(out, toNetworkResponse(nw))
	}
	return out, nil
}

// UpdateNetwork implements organization.Service.
func (s *OrganizationServiceImpl) UpdateNetwork(ctx context.Context, req organization.UpdateNetworkRequest) (organization.NetworkResponse, error) {
	if err := req.Validate(); err != nil {
		return organization.NetworkResponse{}, err
	}

	nw, err := s.nwRepo.GetByID(ctx, req.ID)
	if err != nil {
		return organization.NetworkResponse{}, err
	}

	if req.Name != nil {
		nw.Name = *req.Name
	}
	if req.IPAddress != nil {
		nw.IPAddress = *req.IPAddress
	}

	if err := s.nwRepo.Update(ctx, nw); err != nil {
		return organization.NetworkResponse{}, err
	}

	return toNetworkResponse(nw), nil
}

// DeleteNetwork implements organization.Service.
func (s *OrganizationServiceImpl) DeleteNetwork(ctx context.Context, id string) error {
	return s.nwRepo.Delete(ctx, id)
}

func toOrganizationResponse(org organization.Organization) organization.OrganizationResponse {
	return organization.OrganizationResponse{
		ID:         org.ID,
		Name:       org.Name,
		Type:       org.Type,
		RecordType: org.RecordType,
		NetworkID:  org.NetworkID,
		LogoURL:    org.LogoURL,
	}
}

func toNetworkResponse(nw organization.NetworkBinding) organization.NetworkResponse {
	return organization.NetworkResponse{
		ID:        nw.ID,
		Name:      nw.Name,
		IPAddress: nw.IPAddress,
	}
}
