package attendance

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/clinicore/attendance-backend-go/internal/domain/attendance"
	"github.com/clinicore/attendance-backend-go/internal/domain/notification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryRepo is an in-memory attendance.Repository. Setting failWrites
// makes UpdateApproval fail, simulating a database outage during the
// best-effort approval path.
type memoryRepo struct {
	mu         sync.Mutex
	records    map[string]attendance.Attendance
	failWrites bool
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{records: make(map[string]attendance.Attendance)}
}

func (m *memoryRepo) Create(_ context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	att.CreatedAt = time.Now()
	att.UpdatedAt = att.CreatedAt
	att.SyncStatus = attendance.SyncSynced
	m.records[att.ID] = att
	return att, nil
}

func (m *memoryRepo) GetByID(_ context.Context, id string) (attendance.Attendance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	att, ok := m.records[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return att, nil
}

func (m *memoryRepo) Update(_ context.Context, att attendance.Attendance) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.records[att.ID]
	if !ok {
		return attendance.ErrAttendanceNotFound
	}
	att.Status = existing.Status
	att.CheckInTime = existing.CheckInTime
	m.records[att.ID] = att
	return nil
}

func (m *memoryRepo) UpdateApproval(_ context.Context, id string, approval attendance.ApprovalState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrites {
		return errors.New("connection refused")
	}
	att, ok := m.records[id]
	if !ok {
		return attendance.ErrAttendanceNotFound
	}
	att.Approval = approval
	m.records[id] = att
	return nil
}

func (m *memoryRepo) SetCheckOut(_ context.Context, id string, checkOutTime string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	att, ok := m.records[id]
	if !ok || att.CheckOutTime != nil {
		return attendance.ErrAlreadyCheckedOut
	}
	att.CheckOutTime = &checkOutTime
	m.records[id] = att
	return nil
}

func (m *memoryRepo) List(_ context.Context, _ attendance.ListFilter) ([]attendance.Attendance, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []attendance.Attendance
	for _, att := range m.records {
		out = append(out, att)
	}
	return out, int64(len(out)), nil
}

func (m *memoryRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[id]; !ok {
		return attendance.ErrAttendanceNotFound
	}
	delete(m.records, id)
	return nil
}

// capturePublisher records every broadcast event.
type capturePublisher struct {
	mu     sync.Mutex
	events []notification.AttendanceEvent
}

func (p *capturePublisher) PublishAttendanceEvent(evt notification.AttendanceEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
}

func (p *capturePublisher) all() []notification.AttendanceEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]notification.AttendanceEvent(nil), p.events...)
}

type fakeFileService struct{}

func (fakeFileService) UploadEvidenceImage(_ context.Context, staffID string, _ time.Time, _ io.Reader, _ string) (string, error) {
	return "evidence/2026-02-10/" + staffID + ".jpg", nil
}

func (fakeFileService) UploadOrganizationLogo(_ context.Context, _ string, _ io.Reader, _ string) (string, error) {
	return "", nil
}

func (fakeFileService) DeleteFile(_ context.Context, _ string) error { return nil }

func (fakeFileService) GetFileURL(_ context.Context, path string, _ time.Duration) (string, error) {
	return path, nil
}

func newTestService() (*AttendanceServiceImpl, *memoryRepo, *capturePublisher) {
	repo := newMemoryRepo()
	pub := &capturePublisher{}
	svc := NewAttendanceService(repo, fakeFileService{}, pub, slog.Default())
	return svc, repo, pub
}

func atClock(t *testing.T, svc *AttendanceServiceImpl, hour, minute int) {
	t.Helper()
	svc.now = func() time.Time {
		return time.Date(2026, 2, 10, hour, minute, 0, 0, time.UTC)
	}
}

func checkInRequest() attendance.CheckInRequest {
	return attendance.CheckInRequest{
		Name:         "Dr. Rahma",
		StaffID:      "STF-001",
		Role:         "doctor",
		Organization: "North Clinic",
		Room:         "2A",
		Shift:        "morning",
	}
}

func TestCheckIn_ClassifiesAtCutoff(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	// 8:30 exactly is still present.
	atClock(t, svc, 8, 30)
	got, err := svc.CheckIn(ctx, checkInRequest())
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPresent, got.Status)
	assert.Equal(t, "08:30 AM", got.CheckInTime)
	assert.Equal(t, attendance.ApprovalPending, got.Approval)
	assert.Equal(t, "2026-02-10", got.Date)

	atClock(t, svc, 8, 31)
	got, err = svc.CheckIn(ctx, checkInRequest())
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusLate, got.Status)
}

func TestCheckIn_RequiredFields(t *testing.T) {
	svc, _, _ := newTestService()

	req := checkInRequest()
	req.StaffID = ""
	_, err := svc.CheckIn(context.Background(), req)
	assert.Error(t, err)
}

func TestCheckIn_PublishesCreatedEvent(t *testing.T) {
	svc, _, pub := newTestService()
	atClock(t, svc, 9, 0)

	got, err := svc.CheckIn(context.Background(), checkInRequest())
	require.NoError(t, err)

	events := pub.all()
	require.Len(t, events, 1)
	assert.Equal(t, notification.TypeCreated, events[0].Type)
	assert.Equal(t, got.ID, events[0].AttendanceID)
	assert.Equal(t, "Dr. Rahma", events[0].Name)
}

func TestCheckOut_SetAtMostOnce(t *testing.T) {
	svc, _, pub := newTestService()
	ctx := context.Background()

	atClock(t, svc, 8, 0)
	created, err := svc.CheckIn(ctx, checkInRequest())
	require.NoError(t, err)

	atClock(t, svc, 17, 15)
	out, err := svc.CheckOut(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, out.CheckOutTime)
	assert.Equal(t, "05:15 PM", *out.CheckOutTime)

	// Check-in fields are untouched by checkout.
	assert.Equal(t, created.CheckInTime, out.CheckInTime)
	assert.Equal(t, created.Status, out.Status)

	_, err = svc.CheckOut(ctx, created.ID)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)

	events := pub.all()
	require.Len(t, events, 2)
	assert.Equal(t, notification.TypeCheckout, events[1].Type)
}

func TestCheckOut_UnknownRecord(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.CheckOut(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
}

func TestSubmitPermissionRequest_AlwaysPresent(t *testing.T) {
	svc, _, _ := newTestService()

	// Well past the cutoff: the alternate path never classifies late.
	atClock(t, svc, 11, 45)

	got, err := svc.SubmitPermissionRequest(context.Background(), attendance.PermissionRequestForm{
		Name:          "Dr. Rahma",
		StaffID:       "STF-001",
		Role:          "doctor",
		Organization:  "North Clinic",
		Shift:         "morning",
		RequestReason: "flat tire on the way in",
	})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPresent, got.Status)
	assert.Equal(t, attendance.ApprovalAskPermission, got.Approval)
	require.NotNil(t, got.RequestReason)
	assert.Equal(t, "flat tire on the way in", *got.RequestReason)
}

func TestSubmitPermissionRequest_ReasonRequired(t *testing.T) {
	svc, _, _ := newTestService()

	form := attendance.PermissionRequestForm{
		Name:         "Dr. Rahma",
		StaffID:      "STF-001",
		Role:         "doctor",
		Organization: "North Clinic",
		Shift:        "morning",
	}
	_, err := svc.SubmitPermissionRequest(context.Background(), form)
	assert.Error(t, err)
}

func TestSetApproval_PersistsWhenDatabaseHealthy(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	atClock(t, svc, 8, 0)
	created, err := svc.CheckIn(ctx, checkInRequest())
	require.NoError(t, err)

	got, err := svc.SetApproval(ctx, attendance.SetApprovalRequest{
		ID:       created.ID,
		Approval: attendance.ApprovalAccepted,
	})
	require.NoError(t, err)
	assert.Equal(t, attendance.ApprovalAccepted, got.Approval)
	assert.Equal(t, attendance.SyncSynced, got.SyncStatus)

	stored, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, attendance.ApprovalAccepted, stored.Approval)
}

func TestSetApproval_InvalidState(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.SetApproval(context.Background(), attendance.SetApprovalRequest{
		ID:       "any",
		Approval: attendance.ApprovalState("approved-ish"),
	})
	assert.ErrorIs(t, err, attendance.ErrInvalidApproval)
}

func TestSetApproval_BestEffortOnWriteFailure(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	atClock(t, svc, 8, 0)
	created, err := svc.CheckIn(ctx, checkInRequest())
	require.NoError(t, err)

	// Database goes away mid-session.
	repo.failWrites = true

	got, err := svc.SetApproval(ctx, attendance.SetApprovalRequest{
		ID:       created.ID,
		Approval: attendance.ApprovalRejected,
	})
	require.NoError(t, err, "a failed approval write is not an error to the caller")
	assert.Equal(t, attendance.ApprovalRejected, got.Approval)
	assert.Equal(t, attendance.SyncFailed, got.SyncStatus)

	// The local view keeps serving the chosen state.
	fetched, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, attendance.ApprovalRejected, fetched.Approval)
	assert.Equal(t, attendance.SyncFailed, fetched.SyncStatus)

	// The database still has the old state until the flush lands.
	stored, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, attendance.ApprovalPending, stored.Approval)

	// Flush after recovery reconciles and clears the overlay.
	repo.failWrites = false
	require.NoError(t, svc.FlushPendingSync(ctx))

	stored, err = repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, attendance.ApprovalRejected, stored.Approval)

	fetched, err = svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, attendance.SyncSynced, fetched.SyncStatus)
}

func TestFlushPendingSync_ReportsPersistentFailure(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	atClock(t, svc, 8, 0)
	created, err := svc.CheckIn(ctx, checkInRequest())
	require.NoError(t, err)

	repo.failWrites = true
	_, err = svc.SetApproval(ctx, attendance.SetApprovalRequest{
		ID:       created.ID,
		Approval: attendance.ApprovalAccepted,
	})
	require.NoError(t, err)

	assert.Error(t, svc.FlushPendingSync(ctx))
	assert.Equal(t, 1, svc.overlay.Len())
}

func TestFlushPendingSync_DropsDeletedRecords(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	atClock(t, svc, 8, 0)
	created, err := svc.CheckIn(ctx, checkInRequest())
	require.NoError(t, err)

	repo.failWrites = true
	_, err = svc.SetApproval(ctx, attendance.SetApprovalRequest{
		ID:       created.ID,
		Approval: attendance.ApprovalAccepted,
	})
	require.NoError(t, err)

	repo.failWrites = false
	delete(repo.records, created.ID)

	require.NoError(t, svc.FlushPendingSync(ctx))
	assert.Equal(t, 0, svc.overlay.Len())
}

func TestAskPermission_ResetsToPendingUnconditionally(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	atClock(t, svc, 8, 0)
	created, err := svc.CheckIn(ctx, checkInRequest())
	require.NoError(t, err)

	for _, state := range []attendance.ApprovalState{
		attendance.ApprovalAccepted,
		attendance.ApprovalRejected,
		attendance.ApprovalAskPermission,
	} {
		_, err := svc.SetApproval(ctx, attendance.SetApprovalRequest{ID: created.ID, Approval: state})
		require.NoError(t, err)

		got, err := svc.AskPermission(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, attendance.ApprovalPending, got.Approval, "reset from %s", state)
	}
}

func TestUpdate_NeverTouchesStatusOrCheckIn(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	atClock(t, svc, 9, 0) // late
	created, err := svc.CheckIn(ctx, checkInRequest())
	require.NoError(t, err)
	require.Equal(t, attendance.StatusLate, created.Status)

	newRoom := "3C"
	got, err := svc.Update(ctx, attendance.UpdateAttendanceRequest{
		ID:   created.ID,
		Room: &newRoom,
	})
	require.NoError(t, err)
	assert.Equal(t, "3C", got.Room)
	assert.Equal(t, attendance.StatusLate, got.Status)
	assert.Equal(t, created.CheckInTime, got.CheckInTime)
}

func TestList_AppliesOverlay(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	atClock(t, svc, 8, 0)
	created, err := svc.CheckIn(ctx, checkInRequest())
	require.NoError(t, err)

	repo.failWrites = true
	_, err = svc.SetApproval(ctx, attendance.SetApprovalRequest{
		ID:       created.ID,
		Approval: attendance.ApprovalAccepted,
	})
	require.NoError(t, err)

	list, err := svc.List(ctx, attendance.ListFilter{})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, attendance.ApprovalAccepted, list.Items[0].Approval)
	assert.Equal(t, attendance.SyncFailed, list.Items[0].SyncStatus)
}

func TestDelete(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	atClock(t, svc, 8, 0)
	created, err := svc.CheckIn(ctx, checkInRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, created.ID), attendance.ErrAttendanceNotFound)
}
