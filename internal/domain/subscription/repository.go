package subscription

import (
	"context"

	"github.com/qanda-labs/engage-backend-go/internal/domain/activity"
)

// DeleteFilter narrows an unsubscribe. TargetID is required; the other
// fields match any value when left at their zero value.
type DeleteFilter struct {
	TargetID int64
	UserID   int64
	Activity activity.Kind
}

// IDFilter selects subscriber ids. Zero-value fields match any value;
// Activities are combined with OR.
type IDFilter struct {
	TargetID   int64
	Activities []activity.Kind
	QuestionID int64
}

// Repository defines the subscription store interface
type Repository interface {
	// Create persists one subscription row and returns its id.
	// It does not check for duplicates; callers that need idempotence
	// check Exists first.
	Create(ctx context.Context, sub *Subscription) (int64, error)

	// Delete removes every row matching the filter and returns the
	// number of rows removed. Zero matches is not an error.
	Delete(ctx context.Context, filter DeleteFilter) (int64, error)

	// Exists reports whether userID is subscribed to (targetID, kind).
	Exists(ctx context.Context, targetID int64, kind activity.Kind, userID int64) (bool, error)

	// Count returns the number of subscribers for (targetID, kind).
	Count(ctx context.Context, targetID int64, kind activity.Kind) (int, error)

	// SubscriberIDs returns the distinct user ids matching the filter,
	// ordered by user id.
	SubscriberIDs(ctx context.Context, filter IDFilter) ([]int64, error)

	// List returns up to limit subscriptions for (targetID, kind),
	// most recent first.
	List(ctx context.Context, targetID int64, kind activity.Kind, limit int) ([]*Subscription, error)
}
