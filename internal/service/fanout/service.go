// Package fanout turns domain events into per-recipient notification
// records. The engine is stateless across events: all durable state
// lives in the subscription and notification stores.
package fanout

import (
	"context"
	"errors"
	"fmt"

	"github.com/qanda-labs/engage-backend-go/internal/domain/activity"
	"github.com/qanda-labs/engage-backend-go/internal/domain/notification"
	"github.com/qanda-labs/engage-backend-go/internal/domain/post"
	"github.com/qanda-labs/engage-backend-go/internal/domain/subscription"
)

// ErrUnknownEventKind is returned by Handle for events the engine has
// no resolution rule for.
var ErrUnknownEventKind = errors.New("unknown event kind")

// EventKind identifies the category of a domain event.
type EventKind string

const (
	EventNewQuestion     EventKind = "new_question"
	EventNewAnswer       EventKind = "new_answer"
	EventQuestionUpdated EventKind = "question_updated"
	EventAnswerUpdated   EventKind = "answer_updated"
	EventNewComment      EventKind = "new_comment"
)

// Event is one typed domain event. PostID is the post the event acted
// on (the answer for EventNewAnswer, the commented post for
// EventNewComment). CommentID is set only for EventNewComment.
type Event struct {
	Kind      EventKind `json:"kind"`
	ActorID   int64     `json:"actor_id"`
	PostID    int64     `json:"post_id"`
	CommentID int64     `json:"comment_id,omitempty"`
}

// FeatureChecker reports whether a host capability flag is enabled.
type FeatureChecker func(name string) bool

// Engine resolves events to recipients and emits notifications.
type Engine struct {
	posts         post.Repository
	subscriptions subscription.Service
	notifications notification.Service
	features      FeatureChecker
}

// NewEngine creates a fanout engine. All collaborators are injected;
// the engine holds no state of its own.
func NewEngine(posts post.Repository, subscriptions subscription.Service, notifications notification.Service, features FeatureChecker) *Engine {
	return &Engine{
		posts:         posts,
		subscriptions: subscriptions,
		notifications: notifications,
		features:      features,
	}
}

// Handle is the single entry point for domain events. Notifications go
// to the affected post's author only; broadcasting to the full
// subscriber set is left to callers via SubscriberIDs.
func (e *Engine) Handle(ctx context.Context, ev Event) error {
	if !e.features("profiles") {
		return nil
	}

	switch ev.Kind {
	case EventNewQuestion:
		// The asker follows their own question from the start.
		return e.SubscribeToQuestion(ctx, ev.PostID, 0)

	case EventNewAnswer:
		answer, err := e.posts.GetByID(ctx, ev.PostID)
		if err != nil {
			return err
		}
		question, err := e.posts.GetByID(ctx, answer.ParentID)
		if err != nil {
			return err
		}
		return e.notify(ctx, question.AuthorID, ev.ActorID, activity.KindNewAnswer, answer.ID, 0)

	case EventQuestionUpdated:
		target, err := e.posts.GetByID(ctx, ev.PostID)
		if err != nil {
			return err
		}
		return e.notify(ctx, target.AuthorID, ev.ActorID, activity.KindQuestionUpdate, target.ID, 0)

	case EventAnswerUpdated:
		target, err := e.posts.GetByID(ctx, ev.PostID)
		if err != nil {
			return err
		}
		return e.notify(ctx, target.AuthorID, ev.ActorID, activity.KindAnswerUpdate, target.ID, 0)

	case EventNewComment:
		target, err := e.posts.GetByID(ctx, ev.PostID)
		if err != nil {
			return err
		}
		kind := activity.KindCommentOnQuestion
		if target.Type == post.TypeAnswer {
			kind = activity.KindCommentOnAnswer
		}
		return e.notify(ctx, target.AuthorID, ev.ActorID, kind, target.ID, ev.CommentID)

	default:
		return fmt.Errorf("%w: %q", ErrUnknownEventKind, ev.Kind)
	}
}

// notify emits exactly one notification unless the recipient is absent
// or is the actor.
func (e *Engine) notify(ctx context.Context, recipientID, actorID int64, kind activity.Kind, postID, commentID int64) error {
	if recipientID == 0 || recipientID == actorID {
		return nil
	}

	_, err := e.notifications.Append(ctx, &notification.Notification{
		RecipientID: recipientID,
		ActorID:     actorID,
		Kind:        kind,
		PostID:      postID,
		CommentID:   commentID,
	})
	return err
}

// SubscribeToQuestion subscribes userID to everything happening on a
// question. userID 0 defaults to the question's author. Idempotent:
// re-invoking never creates a second row. Non-question posts are a
// no-op.
func (e *Engine) SubscribeToQuestion(ctx context.Context, questionID, userID int64) error {
	question, err := e.posts.GetByID(ctx, questionID)
	if err != nil {
		return err
	}
	if question.Type != post.TypeQuestion {
		return nil
	}

	if userID == 0 {
		userID = question.AuthorID
	}

	subscribed, err := e.subscriptions.IsSubscribed(ctx, question.ID, activity.KindQuestionAll, userID)
	if err != nil {
		return err
	}
	if subscribed {
		return nil
	}

	_, err = e.subscriptions.Subscribe(ctx, subscription.SubscribeRequest{
		UserID:     userID,
		TargetID:   question.ID,
		Activity:   activity.KindQuestionAll,
		QuestionID: question.ID,
	})
	return err
}
