package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/clinicore/attendance-backend-go/internal/domain/attendance"
	"github.com/clinicore/attendance-backend-go/internal/domain/notification"
	"github.com/clinicore/attendance-backend-go/internal/pkg/metrics"
	"github.com/clinicore/attendance-backend-go/internal/service/file"
	"github.com/google/uuid"
)

type AttendanceServiceImpl struct {
	repo        attendance.Repository
	fileService file.FileService
	publisher   notification.Publisher
	logger      *slog.Logger

	// now is swappable so tests can pin the clock.
	now func() time.Time

	overlay *approvalOverlay
}

func NewAttendanceService(
	repo attendance.Repository,
	fileService file.FileService,
	publisher notification.Publisher,
	logger *slog.Logger,
) *AttendanceServiceImpl {
	return &AttendanceServiceImpl{
		repo:        repo,
		fileService: fileService,
		publisher:   publisher,
		logger:      logger,
		now:         time.Now,
		overlay:     newApprovalOverlay(),
	}
}

// CheckIn implements attendance.Service. The check-in time is read from
// the wall clock at submission and the status classified exactly once;
// neither is ever recomputed.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := s.now()
	checkInTime := attendance.FormatClockTime(now)
	status := attendance.ClassifyClockTime(checkInTime)

	att := attendance.Attendance{
		ID:           uuid.New().String(),
		Name:         req.Name,
		StaffID:      req.StaffID,
		Role:         req.Role,
		Organization: req.Organization,
		Room:         req.Room,
		Shift:        req.Shift,
		Date:         dateOf(now),
		CheckInTime:  checkInTime,
		Status:       status,
		Approval:     attendance.ApprovalPending,
		Notes:        req.Notes,
	}

	created, err := s.repo.Create(ctx, att)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	metrics.CheckinsTotal.WithLabelValues(string(status)).Inc()
	s.publisher.PublishAttendanceEvent(notification.AttendanceEvent{
		Type:         notification.TypeCreated,
		AttendanceID: created.ID,
		Message:      fmt.Sprintf("%s checked in at %s", created.Name, created.CheckInTime),
		Timestamp:    now,
		UserID:       created.StaffID,
		Name:         created.Name,
	})

	return toResponse(created), nil
}

// CheckOut implements attendance.Service.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	att, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if att.CheckInTime == "" {
		return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
	}
	if att.CheckOutTime != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}

	now := s.now()
	checkOutTime := attendance.FormatClockTime(now)
	if err := s.repo.SetCheckOut(ctx, id, checkOutTime); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	att.CheckOutTime = &checkOutTime

	s.publisher.PublishAttendanceEvent(notification.AttendanceEvent{
		Type:         notification.TypeCheckout,
		AttendanceID: att.ID,
		Message:      fmt.Sprintf("%s checked out at %s", att.Name, checkOutTime),
		Timestamp:    now,
		UserID:       att.StaffID,
		Name:         att.Name,
	})

	s.overlay.Apply(&att)
	return toResponse(att), nil
}

// SubmitPermissionRequest implements attendance.Service. The alternate
// path never classifies against the cutoff: the record is created
// present with approval ask_permission, whatever the clock says.
func (s *AttendanceServiceImpl) SubmitPermissionRequest(ctx context.Context, form attendance.PermissionRequestForm) (attendance.AttendanceResponse, error) {
	if err := form.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := s.now()

	var imageURL *string
	if form.File != nil && form.FileHeader != nil {
		path, err := s.fileService.UploadEvidenceImage(ctx, form.StaffID, now, form.File, form.FileHeader.Filename)
		if err != nil {
			return attendance.AttendanceResponse{}, fmt.Errorf("failed to upload evidence image: %w", err)
		}
		imageURL = &path
	}

	att := attendance.Attendance{
		ID:              uuid.New().String(),
		Name:            form.Name,
		StaffID:         form.StaffID,
		Role:            form.Role,
		Organization:    form.Organization,
		Room:            form.Room,
		Shift:           form.Shift,
		Date:            dateOf(now),
		CheckInTime:     attendance.FormatClockTime(now),
		Status:          attendance.StatusPresent,
		Approval:        attendance.ApprovalAskPermission,
		RequestReason:   &form.RequestReason,
		Notes:           form.Notes,
		RequestImageURL: imageURL,
	}

	created, err := s.repo.Create(ctx, att)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to create permission request: %w", err)
	}

	metrics.PermissionRequestsTotal.Inc()
	s.publisher.PublishAttendanceEvent(notification.AttendanceEvent{
		Type:         notification.TypeCreated,
		AttendanceID: created.ID,
		Message:      fmt.Sprintf("%s submitted a permission request", created.Name),
		Timestamp:    now,
		UserID:       created.StaffID,
		Name:         created.Name,
	})

	return toResponse(created), nil
}

// SetApproval implements attendance.Service. The write is best-effort:
// on database failure the chosen state is kept locally, flagged
// sync_failed, and retried by the background flush. The caller still
// gets a success response carrying the state they selected.
func (s *AttendanceServiceImpl) SetApproval(ctx context.Context, req attendance.SetApprovalRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	att, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	s.overlay.Apply(&att)

	if !attendance.CanTransition(att.Approval, req.Approval) {
		return attendance.AttendanceResponse{}, attendance.ErrTransitionBlocked
	}

	return s.writeApproval(ctx, att, req.Approval)
}

// AskPermission implements attendance.Service. The reset is
// unconditional: whatever the record's current approval, it goes back to
// pending through the same best-effort write path.
func (s *AttendanceServiceImpl) AskPermission(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	att, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	s.overlay.Apply(&att)

	return s.writeApproval(ctx, att, attendance.ApprovalPending)
}

func (s *AttendanceServiceImpl) writeApproval(ctx context.Context, att attendance.Attendance, approval attendance.ApprovalState) (attendance.AttendanceResponse, error) {
	att.Approval = approval
	att.SyncStatus = attendance.SyncSynced

	err := s.repo.UpdateApproval(ctx, att.ID, approval)
	switch {
	case err == nil:
		s.overlay.Delete(att.ID)
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		return attendance.AttendanceResponse{}, err
	default:
		// Local state advances anyway; the flush job retries the write.
		metrics.ApprovalSyncFailuresTotal.Inc()
		s.overlay.Set(att.ID, approval, attendance.SyncFailed)
		att.SyncStatus = attendance.SyncFailed
		s.logger.Warn("approval write failed, keeping local state",
			slog.String("attendance_id", att.ID),
			slog.String("approval", string(approval)),
			slog.Any("error", err),
		)
	}

	s.publisher.PublishAttendanceEvent(notification.AttendanceEvent{
		Type:         notification.TypeUpdated,
		AttendanceID: att.ID,
		Message:      fmt.Sprintf("%s approval set to %s", att.Name, approval),
		Timestamp:    s.now(),
		UserID:       att.StaffID,
		Name:         att.Name,
	})

	return toResponse(att), nil
}

// Get implements attendance.Service.
func (s *AttendanceServiceImpl) Get(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	att, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	s.overlay.Apply(&att)
	return toResponse(att), nil
}

// List implements attendance.Service.
func (s *AttendanceServiceImpl) List(ctx context.Context, filter attendance.ListFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}

	records, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendances: %w", err)
	}

	items := make([]attendance.AttendanceResponse, 0, len(records))
	for _, att := range records {
		s.overlay.Apply(&att)
		items = append(items, toResponse(att))
	}

	return attendance.ListAttendanceResponse{
		Items: items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// Update implements attendance.Service. Status and check-in time stay
// untouched no matter what the caller sends.
func (s *AttendanceServiceImpl) Update(ctx context.Context, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	att, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if req.Name != nil {
		att.Name = *req.Name
	}
	if req.Role != nil {
		att.Role = *req.Role
	}
	if req.Organization != nil {
		att.Organization = *req.Organization
	}
	if req.Room != nil {
		att.Room = *req.Room
	}
	if req.Shift != nil {
		att.Shift = *req.Shift
	}
	if req.Notes != nil {
		att.Notes = req.Notes
	}

	if err := s.repo.Update(ctx, att); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	s.publisher.PublishAttendanceEvent(notification.AttendanceEvent{
		Type:         notification.TypeUpdated,
		AttendanceID: att.ID,
		Message:      fmt.Sprintf("%s attendance record updated", att.Name),
		Timestamp:    s.now(),
		UserID:       att.StaffID,
		Name:         att.Name,
	})

	s.overlay.Apply(&att)
	return toResponse(att), nil
}

// Delete implements attendance.Service.
func (s *AttendanceServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.overlay.Delete(id)
	return nil
}

// FlushPendingSync implements attendance.Service. It retries every
// approval write still sitting in the overlay. Records deleted since the
// failed write are dropped from the overlay rather than retried forever.
func (s *AttendanceServiceImpl) FlushPendingSync(ctx context.Context) error {
	pending := s.overlay.Pending()
	if len(pending) == 0 {
		return nil
	}

	var failed int
	for id, approval := range pending {
		err := s.repo.UpdateApproval(ctx, id, approval)
		switch {
		case err == nil:
			s.overlay.Delete(id)
		case errors.Is(err, attendance.ErrAttendanceNotFound):
			s.overlay.Delete(id)
		default:
			failed++
			s.overlay.Set(id, approval, attendance.SyncFailed)
		}
	}

	s.logger.Info("flushed pending approval writes",
		slog.Int("attempted", len(pending)),
		slog.Int("still_failing", failed),
	)

	if failed > 0 {
		return fmt.Errorf("%d approval write(s) still failing", failed)
	}
	return nil
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func toResponse(att attendance.Attendance) attendance.AttendanceResponse {
	if att.SyncStatus == "" {
		att.SyncStatus = attendance.SyncSynced
	}
	return attendance.AttendanceResponse{
		ID:              att.ID,
		Name:            att.Name,
		StaffID:         att.StaffID,
		Role:            att.Role,
		Organization:    att.Organization,
		Room:            att.Room,
		Shift:           att.Shift,
		Date:            att.Date.Format("2006-01-02"),
		CheckInTime:     att.CheckInTime,
		CheckOutTime:    att.CheckOutTime,
		Status:          att.Status,
		Approval:        att.Approval,
		RequestReason:   att.RequestReason,
		Notes:           att.Notes,
		RequestImageURL: att.RequestImageURL,
		SyncStatus:      att.SyncStatus,
	}
}
