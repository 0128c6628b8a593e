package notification

import (
	"context"
)

// Service defines the notification feed interface
type Service interface {
	// Append durably writes one notification and returns its id. This
	// is the fanout engine's sink.
	Append(ctx context.Context, n *Notification) (int64, error)

	// List returns one page of a recipient's feed, newest first,
	// resumable from the returned cursor.
	List(ctx context.Context, req ListRequest) (*ListResponse, error)

	// MarkRead marks one notification as read; idempotent.
	MarkRead(ctx context.Context, recipientID, id int64) error

	// MarkAllRead marks every unread notification for a recipient.
	MarkAllRead(ctx context.Context, recipientID int64) error

	// UnreadCount returns the recipient's unread notification count.
	UnreadCount(ctx context.Context, recipientID int64) (int, error)

	// Stream opens a live feed of the recipient's new notifications.
	// The returned cleanup must be called when the consumer is done.
	Stream(ctx context.Context, recipientID int64) (<-chan StreamEvent, func())
}
