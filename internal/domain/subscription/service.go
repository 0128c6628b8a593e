package subscription

import (
	"context"

	"github.com/qanda-labs/engage-backend-go/internal/domain/activity"
)

// Service defines the subscription service interface
type Service interface {
	// Subscribe persists a subscription after validating identity keys.
	// It does not deduplicate; use IsSubscribed first for idempotence.
	Subscribe(ctx context.Context, req SubscribeRequest) (int64, error)

	// Unsubscribe removes matching subscriptions and returns how many
	// were removed. userID 0 and activity.Any widen the match.
	Unsubscribe(ctx context.Context, targetID, userID int64, kind activity.Kind) (int64, error)

	// IsSubscribed reports subscription state; an absent userID is
	// always false.
	IsSubscribed(ctx context.Context, targetID int64, kind activity.Kind, userID int64) (bool, error)

	// Count returns the subscriber count for (targetID, kind).
	Count(ctx context.Context, targetID int64, kind activity.Kind) (int, error)

	// Toggle flips the subscription state for the acting user and
	// returns the new state with the updated count.
	Toggle(ctx context.Context, userID int64, req ToggleRequest) (*StatusResponse, error)

	// Status returns the subscribe-button state for a target.
	Status(ctx context.Context, targetID int64, kind activity.Kind, userID int64) (*StatusResponse, error)

	// SubscriberIDs resolves the recipient set for a filter, optionally
	// excluding the acting user.
	SubscriberIDs(ctx context.Context, filter IDFilter, excludeUserID int64) ([]int64, error)

	// ListSubscribers returns up to limit recent subscribers of a target.
	ListSubscribers(ctx context.Context, targetID int64, kind activity.Kind, limit int) ([]SubscriberResponse, error)
}
