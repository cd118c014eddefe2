package cron

import (
	"context"
	"time"

	"github.com/clinicore/attendance-backend-go/internal/domain/attendance"
	"github.com/clinicore/attendance-backend-go/internal/domain/notification"
)

// AttendanceJobs wires the attendance background maintenance work into
// the scheduler: flushing best-effort approval writes that failed, and
// pruning notification feeds whose sessions have gone away.
type AttendanceJobs struct {
	attendanceSvc attendance.Service
	notifSvc      notification.Service
}

func NewAttendanceJobs(attendanceSvc attendance.Service, notifSvc notification.Service) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceSvc: attendanceSvc,
		notifSvc:      notifSvc,
	}
}

// Register adds the attendance jobs to the scheduler.
func (j *AttendanceJobs) Register(s *Scheduler) {
	s.AddJob("approval-sync-flush", 30*time.Second, j.flushApprovalSync)
	s.AddJob("notification-feed-prune", 10*time.Minute, j.pruneFeeds)
}

func (j *AttendanceJobs) flushApprovalSync(ctx context.Context) error {
	return j.attendanceSvc.FlushPendingSync(ctx)
}

func (j *AttendanceJobs) pruneFeeds(ctx context.Context) error {
	j.notifSvc.PruneIdleFeeds()
	return nil
}
