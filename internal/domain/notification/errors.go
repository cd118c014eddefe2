package notification

import "errors"

var (
	ErrFeedNotFound         = errors.New("notification feed not found")
	ErrNotificationNotFound = errors.New("notification not found")
)
