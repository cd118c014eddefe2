package notification

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/clinicore/attendance-backend-go/internal/domain/notification"
	"github.com/clinicore/attendance-backend-go/internal/pkg/metrics"
	"github.com/clinicore/attendance-backend-go/internal/pkg/sse"
)

// Config holds notification service configuration.
type Config struct {
	FeedTTL time.Duration // default: 30 minutes
}

// NotificationServiceImpl fans attendance events out to every connected
// dashboard through the SSE hub and keeps a per-session feed for each.
// Feeds are purely in memory: a feed's read state belongs to one session
// and dies with it.
type NotificationServiceImpl struct {
	hub    *sse.Hub
	logger *slog.Logger
	ttl    time.Duration
	now    func() time.Time

	mu    sync.Mutex
	feeds map[string]*notification.Feed
}

func NewNotificationService(hub *sse.Hub, logger *slog.Logger, cfg Config) *NotificationServiceImpl {
	if cfg.FeedTTL == 0 {
		cfg.FeedTTL = 30 * time.Minute
	}

	return &NotificationServiceImpl{
		hub:    hub,
		logger: logger,
		ttl:    cfg.FeedTTL,
		now:    time.Now,
		feeds:  make(map[string]*notification.Feed),
	}
}

// PublishAttendanceEvent implements notification.Publisher. Every
// subscriber on the attendance channel receives the event; there is no
// per-recipient routing.
func (s *NotificationServiceImpl) PublishAttendanceEvent(evt notification.AttendanceEvent) {
	s.hub.Publish(sse.Event{
		Channel: notification.ChannelAttendance,
		Event:   notification.EventAttendanceUpdated,
		Data:    evt,
	})
	metrics.EventsPublishedTotal.WithLabelValues(string(evt.Type)).Inc()
}

// Subscribe implements notification.Service. Incoming broadcasts are
// applied to the session's feed before being forwarded, so the feed and
// the stream never disagree on what the session has seen.
func (s *NotificationServiceImpl) Subscribe(ctx context.Context, clientID string) (<-chan notification.NotificationEvent, func()) {
	feed := s.feedFor(clientID)

	ch, unsubscribe := s.hub.Subscribe(notification.ChannelAttendance)
	out := make(chan notification.NotificationEvent, 16)

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-ch:
				if !ok {
					return
				}
				evt, ok := ev.Data.(notification.AttendanceEvent)
				if !ok {
					continue
				}
				n := feed.Receive(evt, s.now())
				select {
				case out <- n:
				default:
					// Drop rather than stall the fanout on a slow reader.
				}
			}
		}
	}()

	return out, unsubscribe
}

// Feed implements notification.Service.
func (s *NotificationServiceImpl) Feed(clientID string) (notification.FeedResponse, error) {
	feed, ok := s.lookup(clientID)
	if !ok {
		return notification.FeedResponse{}, notification.ErrFeedNotFound
	}

	return notification.FeedResponse{
		Notifications: feed.Events(),
		UnreadCount:   feed.UnreadCount(),
	}, nil
}

// MarkAsRead implements notification.Service.
func (s *NotificationServiceImpl) MarkAsRead(clientID, notificationID string) error {
	feed, ok := s.lookup(clientID)
	if !ok {
		return notification.ErrFeedNotFound
	}
	if !feed.MarkAsRead(notificationID) {
		return notification.ErrNotificationNotFound
	}
	return nil
}

// MarkAllAsRead implements notification.Service.
func (s *NotificationServiceImpl) MarkAllAsRead(clientID string) error {
	feed, ok := s.lookup(clientID)
	if !ok {
		return notification.ErrFeedNotFound
	}
	feed.MarkAllAsRead()
	return nil
}

// ClearAll implements notification.Service.
func (s *NotificationServiceImpl) ClearAll(clientID string) error {
	feed, ok := s.lookup(clientID)
	if !ok {
		return notification.ErrFeedNotFound
	}
	feed.ClearAll()
	return nil
}

// PruneIdleFeeds implements notification.Service. A feed past the TTL is
// treated as an ended session and dropped wholesale, read state included.
func (s *NotificationServiceImpl) PruneIdleFeeds() int {
	cutoff := s.now().Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	pruned := 0
	for clientID, feed := range s.feeds {
		if feed.IdleSince().Before(cutoff) {
			delete(s.feeds, clientID)
			pruned++
		}
	}

	if pruned > 0 {
		s.logger.Info("pruned idle notification feeds",
			slog.Int("pruned", pruned),
			slog.Int("remaining", len(s.feeds)),
		)
	}
	return pruned
}

// Stop implements notification.Service.
func (s *NotificationServiceImpl) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.feeds = make(map[string]*notification.Feed)
}

func (s *NotificationServiceImpl) feedFor(clientID string) *notification.Feed {
	s.mu.Lock()
	defer s.mu.Unlock()

	feed, ok := s.feeds[clientID]
	if !ok {
		feed = notification.NewFeed()
		s.feeds[clientID] = feed
	}
	return feed
}

func (s *NotificationServiceImpl) lookup(clientID string) (*notification.Feed, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	feed, ok := s.feeds[clientID]
	return feed, ok
}
