package subscription

import (
	"context"

	"github.com/qanda-labs/engage-backend-go/internal/domain/activity"
	"github.com/qanda-labs/engage-backend-go/internal/domain/subscription"
)

// DefaultSubscriberLimit bounds subscriber listings on display paths.
const DefaultSubscriberLimit = 10

type service struct {
	repo subscription.Repository
}

// NewSubscriptionService creates a new subscription service
func NewSubscriptionService(repo subscription.Repository) subscription.Service {
	return &service{repo: repo}
}

// Subscribe persists a subscription after validating identity keys.
func (s *service) Subscribe(ctx context.Context, req subscription.SubscribeRequest) (int64, error) {
	if req.UserID == 0 {
		return 0, subscription.ErrInvalidSubscriber
	}
	if req.TargetID == 0 {
		return 0, subscription.ErrInvalidTarget
	}
	if !req.Activity.Valid() {
		return 0, subscription.ErrInvalidActivity
	}

	return s.repo.Create(ctx, &subscription.Subscription{
		UserID:     req.UserID,
		TargetID:   req.TargetID,
		QuestionID: req.QuestionID,
		Activity:   req.Activity,
	})
}

// Unsubscribe removes matching subscriptions. Nothing matching is a
// zero-count success, not an error.
func (s *service) Unsubscribe(ctx context.Context, targetID, userID int64, kind activity.Kind) (int64, error) {
	if targetID == 0 {
		return 0, subscription.ErrInvalidTarget
	}

	return s.repo.Delete(ctx, subscription.DeleteFilter{
		TargetID: targetID,
		UserID:   userID,
		Activity: kind,
	})
}

// IsSubscribed reports subscription state. Unauthenticated callers
// (userID 0) are never subscribed.
func (s *service) IsSubscribed(ctx context.Context, targetID int64, kind activity.Kind, userID int64) (bool, error) {
	if userID == 0 {
		return false, nil
	}
	return s.repo.Exists(ctx, targetID, kind, userID)
}

// Count returns the subscriber count for (targetID, kind).
func (s *service) Count(ctx context.Context, targetID int64, kind activity.Kind) (int, error) {
	return s.repo.Count(ctx, targetID, kind)
}

// Toggle flips the subscription state for the acting user: subscribed
// users are unsubscribed and vice versa. Backs the subscribe button.
func (s *service) Toggle(ctx context.Context, userID int64, req subscription.ToggleRequest) (*subscription.StatusResponse, error) {
	if userID == 0 {
		return nil, subscription.ErrInvalidSubscriber
	}
	if req.TargetID == 0 {
		return nil, subscription.ErrInvalidTarget
	}

	kind := req.Activity
	if kind == activity.Any {
		kind = activity.KindQuestionAll
	}
	if !kind.Valid() {
		return nil, subscription.ErrInvalidActivity
	}

	subscribed, err := s.repo.Exists(ctx, req.TargetID, kind, userID)
	if err != nil {
		return nil, err
	}

	if subscribed {
		if _, err := s.repo.Delete(ctx, subscription.DeleteFilter{
			TargetID: req.TargetID,
			UserID:   userID,
			Activity: kind,
		}); err != nil {
			return nil, err
		}
	} else {
		questionID := int64(0)
		if kind == activity.KindQuestionAll {
			questionID = req.TargetID
		}
		if _, err := s.repo.Create(ctx, &subscription.Subscription{
			UserID:     userID,
			TargetID:   req.TargetID,
			QuestionID: questionID,
			Activity:   kind,
		}); err != nil {
			return nil, err
		}
	}

	count, err := s.repo.Count(ctx, req.TargetID, kind)
	if err != nil {
		return nil, err
	}

	return &subscription.StatusResponse{
		TargetID:   req.TargetID,
		Activity:   kind,
		Subscribed: !subscribed,
		Count:      count,
	}, nil
}

// Status returns the subscribe-button state for a target.
func (s *service) Status(ctx context.Context, targetID int64, kind activity.Kind, userID int64) (*subscription.StatusResponse, error) {
	if targetID == 0 {
		return nil, subscription.ErrInvalidTarget
	}
	if kind == activity.Any {
		kind = activity.KindQuestionAll
	}

	subscribed, err := s.IsSubscribed(ctx, targetID, kind, userID)
	if err != nil {
		return nil, err
	}

	count, err := s.repo.Count(ctx, targetID, kind)
	if err != nil {
		return nil, err
	}

	return &subscription.StatusResponse{
		TargetID:   targetID,
		Activity:   kind,
		Subscribed: subscribed,
		Count:      count,
	}, nil
}

// SubscriberIDs resolves the recipient set for a filter, optionally
// excluding the acting user so callers never notify the actor.
func (s *service) SubscriberIDs(ctx context.Context, filter subscription.IDFilter, excludeUserID int64) ([]int64, error) {
	ids, err := s.repo.SubscriberIDs(ctx, filter)
	if err != nil {
		return nil, err
	}
	if excludeUserID == 0 {
		return ids, nil
	}

	filtered := ids[:0]
	for _, id := range ids {
		if id != excludeUserID {
			filtered = append(filtered, id)
		}
	}
	return filtered, nil
}

// ListSubscribers returns up to limit recent subscribers of a target.
func (s *service) ListSubscribers(ctx context.Context, targetID int64, kind activity.Kind, limit int) ([]subscription.SubscriberResponse, error) {
	if targetID == 0 {
		return nil, subscription.ErrInvalidTarget
	}
	if limit <= 0 {
		limit = DefaultSubscriberLimit
	}
	if kind == activity.Any {
		kind = activity.KindQuestionAll
	}

	subs, err := s.repo.List(ctx, targetID, kind, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]subscription.SubscriberResponse, len(subs))
	for i, sub := range subs {
		responses[i] = subscription.SubscriberResponse{
			UserID:       sub.UserID,
			Activity:     sub.Activity,
			SubscribedAt: sub.CreatedAt,
		}
	}
	return responses, nil
}
