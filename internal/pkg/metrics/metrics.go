package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// CheckinsTotal counts check-ins by resulting status.
	CheckinsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "attendance",
		Name:      "checkins_total",
		Help:      "Attendance check-ins by classified status.",
	}, []string{"status"})

	// PermissionRequestsTotal counts alternate-path submissions.
	PermissionRequestsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "attendance",
		Name:      "permission_requests_total",
		Help:      "Permission request submissions.",
	})

	// EventsPublishedTotal counts events broadcast on the attendance channel.
	EventsPublishedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "attendance",
		Name:      "events_published_total",
		Help:      "Attendance lifecycle events published, by type.",
	}, []string{"type"})

	// ApprovalSyncFailuresTotal counts best-effort approval writes that
	// failed and were queued for retry.
	ApprovalSyncFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "attendance",
		Name:      "approval_sync_failures_total",
		Help:      "Approval persistence failures degraded to local state.",
	})

	// ValidationFailuresTotal counts QR/network validation failures by reason.
	ValidationFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "attendance",
		Name:      "checkin_validation_failures_total",
		Help:      "QR payload and network validation failures, by reason.",
	}, []string{"reason"})
)

// Handler exposes the default registry for scraping.
func Handler() http.Handler {
	return promhttp.Handler()
}
