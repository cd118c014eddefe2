package notification

import (
	"fmt"
	"sync"
	"time"
)

// Feed holds one dashboard session's local notification list and unread
// counter. Read state is a purely per-client view; nothing here touches
// the attendance store.
type Feed struct {
	mu         sync.Mutex
	events     []NotificationEvent
	unread     int
	lastActive time.Time
}

func NewFeed() *Feed {
	return &Feed{lastActive: time.Now()}
}

// Receive synthesizes a NotificationEvent from a broadcast, prepends it
// unread, and bumps the counter. The id is generated locally from the
// event type, attendance id, and receipt timestamp.
func (f *Feed) Receive(evt AttendanceEvent, receivedAt time.Time) NotificationEvent {
	n := NotificationEvent{
		ID:        fmt.Sprintf("%s-%s-%d", evt.Type, evt.AttendanceID, receivedAt.UnixMilli()),
		Type:      evt.Type,
		Message:   evt.Message,
		Timestamp: evt.Timestamp,
		UserID:    evt.UserID,
		Name:      evt.Name,
		Read:      false,
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append([]NotificationEvent{n}, f.events...)
	f.unread++
	f.lastActive = receivedAt
	return n
}

// MarkAsRead flips exactly one notification's read flag and decrements
// the unread counter, floored at 0. It reports whether the id was found.
func (f *Feed) MarkAsRead(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastActive = time.Now()

	for i := range f.events {
		if f.events[i].ID != id {
			continue
		}
		if !f.events[i].Read {
			f.events[i].Read = true
			if f.unread > 0 {
				f.unread--
			}
		}
		return true
	}
	return false
}

// MarkAllAsRead flips every notification and zeroes the counter.
func (f *Feed) MarkAllAsRead() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastActive = time.Now()

	for i := range f.events {
		f.events[i].Read = true
	}
	f.unread = 0
}

// ClearAll discards the entire list and zeroes the counter.
func (f *Feed) ClearAll() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastActive = time.Now()

	f.events = nil
	f.unread = 0
}

// Events returns a copy of the list, newest first.
func (f *Feed) Events() []NotificationEvent {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]NotificationEvent, len(f.events))
	copy(out, f.events)
	return out
}

// UnreadCount returns the current unread counter.
func (f *Feed) UnreadCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.unread
}

// IdleSince reports the last time the feed was touched.
func (f *Feed) IdleSince() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastActive
}
