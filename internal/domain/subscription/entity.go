package subscription

import (
	"time"

	"github.com/qanda-labs/engage-backend-go/internal/domain/activity"
)

// Subscription represents one (subscriber, target, activity) row.
// TargetID is a post id or a taxonomy term id depending on Activity.
// QuestionID carries the parent question context when the target itself
// is not the question (0 when there is none).
type Subscription struct {
	ID         int64
	UserID     int64
	TargetID   int64
	QuestionID int64
	Activity   activity.Kind
	CreatedAt  time.Time
}
