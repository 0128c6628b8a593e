package subscription

import (
	"time"

	"github.com/qanda-labs/engage-backend-go/internal/domain/activity"
)

// ============= Request DTOs =============

// SubscribeRequest represents a request to subscribe a user to a target
type SubscribeRequest struct {
	UserID     int64
	TargetID   int64
	Activity   activity.Kind
	QuestionID int64
}

// ToggleRequest represents a subscribe-button toggle
type ToggleRequest struct {
	TargetID int64         `json:"target_id"`
	Activity activity.Kind `json:"activity"`
}

// ============= Response DTOs =============

// SubscriberResponse represents a subscriber in API responses
type SubscriberResponse struct {
	UserID       int64         `json:"user_id"`
	Activity     activity.Kind `json:"activity"`
	SubscribedAt time.Time     `json:"subscribed_at"`
}

// StatusResponse represents the subscribe-button state for a target
type StatusResponse struct {
	TargetID   int64         `json:"target_id"`
	Activity   activity.Kind `json:"activity"`
	Subscribed bool          `json:"subscribed"`
	Count      int           `json:"count"`
}
