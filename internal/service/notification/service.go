package notification

import (
	"context"
	"time"

	"github.com/qanda-labs/engage-backend-go/internal/domain/notification"
	"github.com/qanda-labs/engage-backend-go/internal/pkg/sse"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type service struct {
	repo notification.Repository
	hub  *sse.Hub
}

// NewNotificationService creates a new notification feed service
func NewNotificationService(repo notification.Repository, hub *sse.Hub) notification.Service {
	return &service{repo: repo, hub: hub}
}

// Append durably writes one notification and pushes it to any open
// stream connections of the recipient.
func (s *service) Append(ctx context.Context, n *notification.Notification) (int64, error) {
	if n.RecipientID == 0 {
		return 0, notification.ErrInvalidRecipient
	}

	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}

	id, err := s.repo.Create(ctx, n)
	if err != nil {
		return 0, err
	}

	// Stores return the id; they are not required to mutate n.
	n.ID = id

	s.hub.Publish(n.RecipientID, sse.Event{
		Event: "notification",
		Data:  toResponse(n),
	})

	return id, nil
}

// List returns one page of the recipient's feed, newest first. The
// returned cursor resumes after the last entry of the page and is empty
// once the feed is exhausted.
func (s *service) List(ctx context.Context, req notification.ListRequest) (*notification.ListResponse, error) {
	if req.RecipientID == 0 {
		return nil, notification.ErrInvalidRecipient
	}

	pageSize := req.PageSize
	if pageSize < 1 || pageSize > maxPageSize {
		pageSize = defaultPageSize
	}

	cursor, err := notification.DecodeCursor(req.Cursor)
	if err != nil {
		return nil, err
	}

	notifications, err := s.repo.ListByRecipient(ctx, req.RecipientID, cursor, pageSize, req.UnreadOnly)
	if err != nil {
		return nil, err
	}

	unreadCount, err := s.repo.UnreadCount(ctx, req.RecipientID)
	if err != nil {
		return nil, err
	}

	responses := make([]notification.NotificationResponse, len(notifications))
	for i, n := range notifications {
		responses[i] = toResponse(n)
	}

	nextCursor := ""
	if len(notifications) == pageSize {
		last := notifications[len(notifications)-1]
		nextCursor = notification.Cursor{CreatedAt: last.CreatedAt, ID: last.ID}.Encode()
	}

	return &notification.ListResponse{
		Notifications: responses,
		NextCursor:    nextCursor,
		UnreadCount:   unreadCount,
	}, nil
}

// MarkRead marks one notification as read. Marking an absent or
// already-read notification is a no-op.
func (s *service) MarkRead(ctx context.Context, recipientID, id int64) error {
	if recipientID == 0 {
		return notification.ErrInvalidRecipient
	}
	return s.repo.MarkRead(ctx, recipientID, id)
}

// MarkAllRead marks every unread notification for the recipient.
func (s *service) MarkAllRead(ctx context.Context, recipientID int64) error {
	if recipientID == 0 {
		return notification.ErrInvalidRecipient
	}
	return s.repo.MarkAllRead(ctx, recipientID)
}

// UnreadCount returns the recipient's unread notification count.
func (s *service) UnreadCount(ctx context.Context, recipientID int64) (int, error) {
	if recipientID == 0 {
		return 0, nil
	}
	return s.repo.UnreadCount(ctx, recipientID)
}

// Stream opens a live feed of new notifications for a recipient
func (s *service) Stream(ctx context.Context, recipientID int64) (<-chan notification.StreamEvent, func()) {
	ch, cleanup := s.hub.Subscribe(recipientID)

	out := make(chan notification.StreamEvent, 10)

	go func() {
		defer close(out)
		for {
			select {
			case event, ok := <-ch:
				if !ok {
					return
				}
				if resp, ok := event.Data.(notification.NotificationResponse); ok {
					// The consumer may be gone with a full buffer;
					// cancellation must still end this goroutine.
					select {
					case out <- notification.StreamEvent{Event: event.Event, Data: resp}:
					case <-ctx.Done():
						return
					}
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, cleanup
}

func toResponse(n *notification.Notification) notification.NotificationResponse {
	return notification.NotificationResponse{
		ID:        n.ID,
		ActorID:   n.ActorID,
		Kind:      n.Kind,
		PostID:    n.PostID,
		CommentID: n.CommentID,
		IsRead:    n.IsRead,
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
}
