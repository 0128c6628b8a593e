package response

import (
	"errors"
	"net/http"

	"github.com/qanda-labs/engage-backend-go/internal/domain/notification"
	"github.com/qanda-labs/engage-backend-go/internal/domain/post"
	"github.com/qanda-labs/engage-backend-go/internal/domain/subscription"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	switch {
	// Subscription domain errors
	case errors.Is(err, subscription.ErrInvalidSubscriber):
		Unauthorized(w, "Subscriber is required")
	case errors.Is(err, subscription.ErrInvalidTarget):
		BadRequest(w, "Target id is required", nil)
	case errors.Is(err, subscription.ErrInvalidActivity):
		BadRequest(w, "Unknown activity kind", nil)

	// Notification domain errors
	case errors.Is(err, notification.ErrInvalidRecipient):
		Unauthorized(w, "Recipient is required")
	case errors.Is(err, notification.ErrInvalidCursor):
		BadRequest(w, "Invalid pagination cursor", nil)
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")

	// Post domain errors
	case errors.Is(err, post.ErrPostNotFound):
		NotFound(w, "Post not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
