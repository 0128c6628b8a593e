package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/qanda-labs/engage-backend-go/internal/domain/activity"
	"github.com/qanda-labs/engage-backend-go/internal/domain/subscription"
	"github.com/qanda-labs/engage-backend-go/internal/handler/http/response"
)

// SubscriptionHandler defines the subscription handler interface
type SubscriptionHandler interface {
	Toggle(w http.ResponseWriter, r *http.Request)
	Status(w http.ResponseWriter, r *http.Request)
	Subscribers(w http.ResponseWriter, r *http.Request)
}

type subscriptionHandlerImpl struct {
	subService subscription.Service
}

// NewSubscriptionHandler creates a new subscription handler
func NewSubscriptionHandler(subService subscription.Service) SubscriptionHandler {
	return &subscriptionHandlerImpl{subService: subService}
}

// Toggle flips the acting user's subscription to a target. Backs the
// follow/unfollow button.
func (h *subscriptionHandlerImpl) Toggle(w http.ResponseWriter, r *http.Request) {
	actorID := getActorID(r)
	if actorID == 0 {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req subscription.ToggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.subService.Toggle(r.Context(), actorID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Status returns the subscribe-button state for a question.
func (h *subscriptionHandlerImpl) Status(w http.ResponseWriter, r *http.Request) {
	targetID, ok := parseID(chi.URLParam(r, "id"))
	if !ok {
		response.BadRequest(w, "Invalid question id", nil)
		return
	}

	kind := activity.Kind(r.URL.Query().Get("activity"))

	result, err := h.subService.Status(r.Context(), targetID, kind, getActorID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Subscribers returns the recent subscribers of a question.
func (h *subscriptionHandlerImpl) Subscribers(w http.ResponseWriter, r *http.Request) {
	targetID, ok := parseID(chi.URLParam(r, "id"))
	if !ok {
		response.BadRequest(w, "Invalid question id", nil)
		return
	}

	kind := activity.Kind(r.URL.Query().Get("activity"))
	limit := getIntQueryParam(r, "limit", 0)

	subscribers, err := h.subService.ListSubscribers(r.Context(), targetID, kind, limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, subscribers)
}
