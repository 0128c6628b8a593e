package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/qanda-labs/engage-backend-go/internal/handler/http/response"
	"github.com/qanda-labs/engage-backend-go/internal/service/fanout"
)

// EventHandler maps raw platform events onto typed fanout events. It is
// the adapter between the host's dispatch layer and the engine; the
// engine itself never sees HTTP.
type EventHandler interface {
	Dispatch(w http.ResponseWriter, r *http.Request)
}

type eventHandlerImpl struct {
	engine *fanout.Engine
}

// NewEventHandler creates a new event handler
func NewEventHandler(engine *fanout.Engine) EventHandler {
	return &eventHandlerImpl{engine: engine}
}

type dispatchRequest struct {
	Kind      fanout.EventKind `json:"kind"`
	PostID    int64            `json:"post_id"`
	CommentID int64            `json:"comment_id"`
}

// Dispatch hands one domain event to the fanout engine. The actor is
// always the authenticated user, never a field of the request body.
func (h *eventHandlerImpl) Dispatch(w http.ResponseWriter, r *http.Request) {
	actorID := getActorID(r)
	if actorID == 0 {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req dispatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	if req.PostID == 0 {
		response.BadRequest(w, "post_id is required", nil)
		return
	}

	err := h.engine.Handle(r.Context(), fanout.Event{
		Kind:      req.Kind,
		ActorID:   actorID,
		PostID:    req.PostID,
		CommentID: req.CommentID,
	})
	if err != nil {
		if errors.Is(err, fanout.ErrUnknownEventKind) {
			response.BadRequest(w, "Unknown event kind", nil)
			return
		}
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Event processed", nil)
}
