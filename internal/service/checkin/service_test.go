package checkin

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/clinicore/attendance-backend-go/internal/domain/checkin"
	"github.com/clinicore/attendance-backend-go/internal/domain/organization"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrgRepo struct {
	orgs map[string]organization.Organization
}

func (f *fakeOrgRepo) Create(_ context.Context, org organization.Organization) (organization.Organization, error) {
	f.orgs[org.ID] = org
	return org, nil
}

func (f *fakeOrgRepo) GetByID(_ context.Context, id string) (organization.Organization, error) {
	org, ok := f.orgs[id]
	if !ok {
		return organization.Organization{}, organization.ErrOrganizationNotFound
	}
	return org, nil
}

func (f *fakeOrgRepo) List(_ context.Context) ([]organization.Organization, error) {
	var out []organization.Organization
	for _, o := range f.orgs {
		out = append(out, o)
	}
	return out, nil
}

func (f *fakeOrgRepo) Update(_ context.Context, org organization.Organization) error {
	f.orgs[org.ID] = org
	return nil
}

func (f *fakeOrgRepo) Delete(_ context.Context, id string) error {
	delete(f.orgs, id)
	return nil
}

type fakeNetworkRepo struct {
	networks map[string]organization.NetworkBinding
}

func (f *fakeNetworkRepo) Create(_ context.Context, nw organization.NetworkBinding) (organization.NetworkBinding, error) {
	f.networks[nw.ID] = nw
	return nw, nil
}

func (f *fakeNetworkRepo) GetByID(_ context.Context, id string) (organization.NetworkBinding, error) {
	nw, ok := f.networks[id]
	if !ok {
		return organization.NetworkBinding{}, organization.ErrNetworkNotFound
	}
	return nw, nil
}

func (f *fakeNetworkRepo) List(_ context.Context) ([]organization.NetworkBinding, error) {
	var out []organization.NetworkBinding
	for _, n := range f.networks {
		out = append(out, n)
	}
	return out, nil
}

func (f *fakeNetworkRepo) Update(_ context.Context, nw organization.NetworkBinding) error {
	f.networks[nw.ID] = nw
	return nil
}

func (f *fakeNetworkRepo) Delete(_ context.Context, id string) error {
	delete(f.networks, id)
	return nil
}

type staticIP string

func (s staticIP) Lookup(_ context.Context) (string, error) {
	return string(s), nil
}

func newTestService() (*CheckinServiceImpl, *fakeOrgRepo, *fakeNetworkRepo) {
	orgRepo := &fakeOrgRepo{orgs: map[string]organization.Organization{
		"org-1": {ID: "org-1", Name: "North Clinic", NetworkID: "net-1"},
	}}
	nwRepo := &fakeNetworkRepo{networks: map[string]organization.NetworkBinding{
		"net-1": {ID: "net-1", Name: "North WiFi", IPAddress: "203.0.113.10"},
	}}
	svc := NewCheckinService(orgRepo, nwRepo, staticIP("203.0.113.10"), slog.Default())
	return svc, orgRepo, nwRepo
}

func TestValidate_MatchingNetwork(t *testing.T) {
	svc, _, _ := newTestService()

	payload := checkin.EncodePayload("org-1", "North Clinic", "net-1")
	got, err := svc.Validate(context.Background(), checkin.ValidatePayloadRequest{
		Payload:  payload,
		DeviceIP: "203.0.113.10",
	})

	require.NoError(t, err)
	assert.Equal(t, "org-1", got.OrgID)
	assert.Equal(t, "North Clinic", got.OrgName)
	assert.Equal(t, "net-1", got.NetworkID)
	assert.True(t, got.OrganizationLocked)
}

func TestValidate_WrongNetwork(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Validate(context.Background(), checkin.ValidatePayloadRequest{
		Payload:  checkin.EncodePayload("org-1", "North Clinic", "net-1"),
		DeviceIP: "198.51.100.7",
	})

	var mismatch *checkin.IPMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "198.51.100.7", mismatch.DeviceIP)
	assert.Equal(t, "203.0.113.10", mismatch.RequiredIP)
	assert.Contains(t, mismatch.Error(), "198.51.100.7")
	assert.Contains(t, mismatch.Error(), "203.0.113.10")
}

func TestValidate_MalformedPayload(t *testing.T) {
	svc, _, _ := newTestService()

	for _, payload := range []string{
		"hello world",
		"COMPANY|org-1|North Clinic|net-1",
		"ORG|org-1|North Clinic",
	} {
		_, err := svc.Validate(context.Background(), checkin.ValidatePayloadRequest{
			Payload:  payload,
			DeviceIP: "203.0.113.10",
		})
		assert.ErrorIs(t, err, checkin.ErrInvalidPayload, "payload %q", payload)
	}
}

func TestValidate_UnknownOrganization(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Validate(context.Background(), checkin.ValidatePayloadRequest{
		Payload:  checkin.EncodePayload("org-gone", "Ghost Clinic", "net-1"),
		DeviceIP: "203.0.113.10",
	})

	assert.ErrorIs(t, err, checkin.ErrOrgOrNetworkNotFound)
}

func TestValidate_UnknownNetwork(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Validate(context.Background(), checkin.ValidatePayloadRequest{
		Payload:  checkin.EncodePayload("org-1", "North Clinic", "net-gone"),
		DeviceIP: "203.0.113.10",
	})

	assert.ErrorIs(t, err, checkin.ErrOrgOrNetworkNotFound)
}

func TestValidate_SnapshotServesAfterRepoDelete(t *testing.T) {
	svc, orgRepo, nwRepo := newTestService()

	require.NoError(t, svc.Refresh(context.Background()))

	// Snapshot is authoritative until the next Refresh.
	require.NoError(t, orgRepo.Delete(context.Background(), "org-1"))
	require.NoError(t, nwRepo.Delete(context.Background(), "net-1"))

	_, err := svc.Validate(context.Background(), checkin.ValidatePayloadRequest{
		Payload:  checkin.EncodePayload("org-1", "North Clinic", "net-1"),
		DeviceIP: "203.0.113.10",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Refresh(context.Background()))
	_, err = svc.Validate(context.Background(), checkin.ValidatePayloadRequest{
		Payload:  checkin.EncodePayload("org-1", "North Clinic", "net-1"),
		DeviceIP: "203.0.113.10",
	})
	assert.ErrorIs(t, err, checkin.ErrOrgOrNetworkNotFound)
}

func TestDeviceIP(t *testing.T) {
	svc, _, _ := newTestService()

	ip, err := svc.DeviceIP(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "203.0.113.10", ip)
}

type failingIP struct{}

func (failingIP) Lookup(_ context.Context) (string, error) {
	return "", errors.New("lookup service unreachable")
}

func TestDeviceIP_LookupFailure(t *testing.T) {
	svc, _, _ := newTestService()
	svc.ip = failingIP{}

	_, err := svc.DeviceIP(context.Background())
	assert.Error(t, err)
}
