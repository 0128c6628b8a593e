package notification

import "errors"

// Notification domain errors
var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrInvalidRecipient     = errors.New("recipient id is required")
	ErrInvalidCursor        = errors.New("invalid pagination cursor")
)
