package notification

import (
	"time"

	"github.com/qanda-labs/engage-backend-go/internal/domain/activity"
)

// ============= Request DTOs =============

// ListRequest represents a request to list a recipient's feed
type ListRequest struct {
	RecipientID int64
	Cursor      string
	PageSize    int
	UnreadOnly  bool
}

// ============= Response DTOs =============

// NotificationResponse represents a notification in API responses
type NotificationResponse struct {
	ID        int64         `json:"id"`
	ActorID   int64         `json:"actor_id"`
	Kind      activity.Kind `json:"kind"`
	PostID    int64         `json:"post_id"`
	CommentID int64         `json:"comment_id,omitempty"`
	IsRead    bool          `json:"is_read"`
	ReadAt    *time.Time    `json:"read_at,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

// ListResponse represents one page of a recipient's feed. NextCursor is
// empty when the feed is exhausted.
type ListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	NextCursor    string                 `json:"next_cursor,omitempty"`
	UnreadCount   int                    `json:"unread_count"`
}

// UnreadCountResponse represents unread count response
type UnreadCountResponse struct {
	UnreadCount int `json:"unread_count"`
}

// StreamTokenResponse carries a short-lived token for opening a stream
// connection. Browsers cannot set headers on EventSource requests, so
// the token travels as a query parameter instead.
type StreamTokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}

// StreamEvent is one event delivered over a live notification stream
type StreamEvent struct {
	Event string
	Data  NotificationResponse
}
