package notification

// FeedResponse is the per-session notification list plus its counter.
type FeedResponse struct {
	Notifications []NotificationEvent `json:"notifications"`
	UnreadCount   int                 `json:"unread_count"`
}

// UnreadCountResponse carries just the counter for badge polling.
type UnreadCountResponse struct {
	UnreadCount int `json:"unread_count"`
}
