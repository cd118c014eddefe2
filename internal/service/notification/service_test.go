package notification

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/clinicore/attendance-backend-go/internal/domain/notification"
	"github.com/clinicore/attendance-backend-go/internal/pkg/sse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestNotificationService() *NotificationServiceImpl {
	return NewNotificationService(sse.NewHub(), slog.Default(), Config{})
}

func receiveEvent(t *testing.T, ch <-chan notification.NotificationEvent) notification.NotificationEvent {
	t.Helper()
	select {
	case n, ok := <-ch:
		require.True(t, ok, "stream closed before event arrived")
		return n
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for notification event")
		return notification.NotificationEvent{}
	}
}

func TestPublish_FansOutToAllSubscribers(t *testing.T) {
	svc := newTestNotificationService()
	ctx := context.Background()

	chA, cancelA := svc.Subscribe(ctx, "dashboard-a")
	defer cancelA()
	chB, cancelB := svc.Subscribe(ctx, "dashboard-b")
	defer cancelB()

	svc.PublishAttendanceEvent(notification.AttendanceEvent{
		Type:         notification.TypeCheckout,
		AttendanceID: "att-1",
		Message:      "Dr. Rahma checked out",
		Timestamp:    time.Now(),
	})

	nA := receiveEvent(t, chA)
	nB := receiveEvent(t, chB)

	assert.Equal(t, notification.TypeCheckout, nA.Type)
	assert.Equal(t, "Dr. Rahma checked out", nA.Message)
	assert.False(t, nA.Read)
	assert.Equal(t, nA.Message, nB.Message)

	// Each session keeps its own feed and counter.
	feedA, err := svc.Feed("dashboard-a")
	require.NoError(t, err)
	assert.Len(t, feedA.Notifications, 1)
	assert.Equal(t, 1, feedA.UnreadCount)

	feedB, err := svc.Feed("dashboard-b")
	require.NoError(t, err)
	assert.Equal(t, 1, feedB.UnreadCount)
}

func TestMarkAsRead_DecrementsExactlyOnce(t *testing.T) {
	svc := newTestNotificationService()
	ctx := context.Background()

	ch, cancel := svc.Subscribe(ctx, "dashboard-a")
	defer cancel()

	svc.PublishAttendanceEvent(notification.AttendanceEvent{
		Type:         notification.TypeCheckout,
		AttendanceID: "att-1",
		Message:      "checked out",
		Timestamp:    time.Now(),
	})
	n := receiveEvent(t, ch)

	require.NoError(t, svc.MarkAsRead("dashboard-a", n.ID))

	feed, err := svc.Feed("dashboard-a")
	require.NoError(t, err)
	assert.Equal(t, 0, feed.UnreadCount)
	assert.True(t, feed.Notifications[0].Read)

	// Marking the same notification again never drives the counter
	// negative.
	require.NoError(t, svc.MarkAsRead("dashboard-a", n.ID))
	feed, err = svc.Feed("dashboard-a")
	require.NoError(t, err)
	assert.Equal(t, 0, feed.UnreadCount)
}

func TestMarkAsRead_UnknownID(t *testing.T) {
	svc := newTestNotificationService()

	_, cancel := svc.Subscribe(context.Background(), "dashboard-a")
	defer cancel()

	err := svc.MarkAsRead("dashboard-a", "no-such-id")
	assert.ErrorIs(t, err, notification.ErrNotificationNotFound)
}

func TestFeedOps_UnknownClient(t *testing.T) {
	svc := newTestNotificationService()

	_, err := svc.Feed("ghost")
	assert.ErrorIs(t, err, notification.ErrFeedNotFound)
	assert.ErrorIs(t, svc.MarkAsRead("ghost", "x"), notification.ErrFeedNotFound)
	assert.ErrorIs(t, svc.MarkAllAsRead("ghost"), notification.ErrFeedNotFound)
	assert.ErrorIs(t, svc.ClearAll("ghost"), notification.ErrFeedNotFound)
}

func TestClearAll_DiscardsFeed(t *testing.T) {
	svc := newTestNotificationService()
	ctx := context.Background()

	ch, cancel := svc.Subscribe(ctx, "dashboard-a")
	defer cancel()

	for i := 0; i < 3; i++ {
		svc.PublishAttendanceEvent(notification.AttendanceEvent{
			Type:         notification.TypeCreated,
			AttendanceID: "att-1",
			Message:      "checked in",
			Timestamp:    time.Now(),
		})
		receiveEvent(t, ch)
	}

	require.NoError(t, svc.ClearAll("dashboard-a"))

	feed, err := svc.Feed("dashboard-a")
	require.NoError(t, err)
	assert.Empty(t, feed.Notifications)
	assert.Equal(t, 0, feed.UnreadCount)
}

func TestPruneIdleFeeds(t *testing.T) {
	svc := newTestNotificationService()

	_, cancel := svc.Subscribe(context.Background(), "dashboard-a")
	cancel()

	// An idle feed past the TTL is an ended session.
	svc.now = func() time.Time { return time.Now().Add(time.Hour) }
	pruned := svc.PruneIdleFeeds()
	assert.Equal(t, 1, pruned)

	_, err := svc.Feed("dashboard-a")
	assert.ErrorIs(t, err, notification.ErrFeedNotFound)
}

func TestSubscribe_ContextCancelClosesStream(t *testing.T) {
	svc := newTestNotificationService()

	ctx, cancelCtx := context.WithCancel(context.Background())
	ch, cancel := svc.Subscribe(ctx, "dashboard-a")
	defer cancel()

	cancelCtx()

	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("stream did not close after context cancellation")
	}
}
