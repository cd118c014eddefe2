package checkin

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/clinicore/attendance-backend-go/internal/domain/checkin"
	"github.com/clinicore/attendance-backend-go/internal/domain/organization"
	"github.com/clinicore/attendance-backend-go/internal/pkg/metrics"
)

// IPResolver resolves the device's public IP through an external lookup
// service. *iplookup.Client satisfies it.
type IPResolver interface {
	Lookup(ctx context.Context) (string, error)
}

// CheckinServiceImpl validates scanned QR payloads against a snapshot of
// the organization and network tables. The snapshot is loaded on Refresh
// and read through on misses; there is no background refetch, so stale
// entries persist until a caller reloads.
type CheckinServiceImpl struct {
	orgRepo organization.OrganizationRepository
	nwRepo  organization.NetworkRepository
	ip      IPResolver
	logger  *slog.Logger

	mu       sync.RWMutex
	orgs     map[string]organization.Organization
	networks map[string]organization.NetworkBinding
}

func NewCheckinService(
	orgRepo organization.OrganizationRepository,
	nwRepo organization.NetworkRepository,
	ip IPResolver,
	logger *slog.Logger,
) *CheckinServiceImpl {
	return &CheckinServiceImpl{
		orgRepo:  orgRepo,
		nwRepo:   nwRepo,
		ip:       ip,
		logger:   logger,
		orgs:     make(map[string]organization.Organization),
		networks: make(map[string]organization.NetworkBinding),
	}
}

// Validate implements checkin.Service.
func (s *CheckinServiceImpl) Validate(ctx context.Context, req checkin.ValidatePayloadRequest) (checkin.OrgContext, error) {
	if err := req.Validate(); err != nil {
		return checkin.OrgContext{}, err
	}

	token, err := checkin.DecodePayload(req.Payload)
	if err != nil {
		metrics.ValidationFailuresTotal.WithLabelValues("invalid_payload").Inc()
		return checkin.OrgContext{}, err
	}

	org, err := s.lookupOrganization(ctx, token.OrgID)
	if err != nil {
		metrics.ValidationFailuresTotal.WithLabelValues("not_found").Inc()
		return checkin.OrgContext{}, err
	}

	nw, err := s.lookupNetwork(ctx, token.NetworkID)
	if err != nil {
		metrics.ValidationFailuresTotal.WithLabelValues("not_found").Inc()
		return checkin.OrgContext{}, err
	}

	// Exact string comparison: "192.168.1.1" and "192.168.001.001" are
	// different networks as far as this check is concerned.
	if req.DeviceIP != nw.IPAddress {
		metrics.ValidationFailuresTotal.WithLabelValues("ip_mismatch").Inc()
		s.logger.Warn("check-in rejected: device on wrong network",
			slog.String("org_id", org.ID),
			slog.String("device_ip", req.DeviceIP),
		)
		return checkin.OrgContext{}, &checkin.IPMismatchError{
			DeviceIP:   req.DeviceIP,
			RequiredIP: nw.IPAddress,
		}
	}

	return checkin.OrgContext{
		OrgID:              org.ID,
		OrgName:            org.Name,
		NetworkID:          nw.ID,
		OrganizationLocked: true,
	}, nil
}

// Refresh implements checkin.Service.
func (s *CheckinServiceImpl) Refresh(ctx context.Context) error {
	orgs, err := s.orgRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to refresh organizations: %w", err)
	}
	networks, err := s.nwRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to refresh networks: %w", err)
	}

	orgMap := make(map[string]organization.Organization, len(orgs))
	for _, o := range orgs {
		orgMap[o.ID] = o
	}
	nwMap := make(map[string]organization.NetworkBinding, len(networks))
	for _, n := range networks {
		nwMap[n.ID] = n
	}

	s.mu.Lock()
	s.orgs = orgMap
	s.networks = nwMap
	s.mu.Unlock()

	s.logger.Info("check-in lookup snapshot refreshed",
		slog.Int("organizations", len(orgMap)),
		slog.Int("networks", len(nwMap)),
	)
	return nil
}

// DeviceIP implements checkin.Service.
func (s *CheckinServiceImpl) DeviceIP(ctx context.Context) (string, error) {
	ip, err := s.ip.Lookup(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to resolve device ip: %w", err)
	}
	return ip, nil
}

func (s *CheckinServiceImpl) lookupOrganization(ctx context.Context, id string) (organization.Organization, error) {
	s.mu.RLock()
	org, ok := s.orgs[id]
	s.mu.RUnlock()
	if ok {
		return org, nil
	}

	org, err := s.orgRepo.GetByID(ctx, id)
	if err != nil {
		return organization.Organization{}, checkin.ErrOrgOrNetworkNotFound
	}

	s.mu.Lock()
	s.orgs[org.ID] = org
	s.mu.Unlock()
	return org, nil
}

func (s *CheckinServiceImpl) lookupNetwork(ctx context.Context, id string) (organization.NetworkBinding, error) {
	s.mu.RLock()
	nw, ok := s.networks[id]
	s.mu.RUnlock()
	if ok {
		return nw, nil
	}

	nw, err := s.nwRepo.GetByID(ctx, id)
	if err != nil {
		return organization.NetworkBinding{}, checkin.ErrOrgOrNetworkNotFound
	}

	s.mu.Lock()
	s.networks[nw.ID] = nw
	s.mu.Unlock()
	return nw, nil
}
