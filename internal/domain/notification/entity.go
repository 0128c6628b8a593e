package notification

import (
	"time"

	"github.com/qanda-labs/engage-backend-go/internal/domain/activity"
)

// Notification represents a notification entity. PostID and CommentID
// together form the polymorphic target reference; CommentID is 0 for
// non-comment activities.
type Notification struct {
	ID          int64
	RecipientID int64
	ActorID     int64
	Kind        activity.Kind
	PostID      int64
	CommentID   int64
	IsRead      bool
	ReadAt      *time.Time
	CreatedAt   time.Time
}
