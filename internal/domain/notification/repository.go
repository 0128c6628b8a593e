package notification

import (
	"context"
)

// Repository defines the notification store interface
type Repository interface {
	// Create persists a notification and returns its id.
	Create(ctx context.Context, n *Notification) (int64, error)

	// ListByRecipient returns up to limit notifications for a recipient,
	// newest first, starting strictly after the cursor position.
	ListByRecipient(ctx context.Context, recipientID int64, cursor Cursor, limit int, unreadOnly bool) ([]*Notification, error)

	// MarkRead marks one notification as read. Marking an absent or
	// already-read notification is a no-op.
	MarkRead(ctx context.Context, recipientID int64, id int64) error

	// MarkAllRead marks every unread notification for a recipient as read.
	MarkAllRead(ctx context.Context, recipientID int64) error

	// UnreadCount returns the number of unread notifications for a recipient.
	UnreadCount(ctx context.Context, recipientID int64) (int, error)
}
