package http

import (
	"encoding/json"
	"net/http"

	"github.com/qanda-labs/engage-backend-go/internal/handler/http/response"
	"github.com/qanda-labs/engage-backend-go/internal/pkg/jwt"
)

// AuthHandler mints actor tokens for development setups. The host
// platform owns real authentication; this endpoint lets local clients
// obtain a token without a host in front. The router only mounts it
// outside production.
type AuthHandler interface {
	DevToken(w http.ResponseWriter, r *http.Request)
}

type authHandlerImpl struct {
	jwtService jwt.Service
}

func NewAuthHandler(jwtService jwt.Service) AuthHandler {
	return &authHandlerImpl{jwtService: jwtService}
}

type devTokenRequest struct {
	UserID int64 `json:"user_id"`
}

type devTokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
}

// DevToken issues an access token for the requested user id.
func (h *authHandlerImpl) DevToken(w http.ResponseWriter, r *http.Request) {
	var req devTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	if req.UserID <= 0 {
		response.BadRequest(w, "user_id must be a positive integer", nil)
		return
	}

	token, expiresAt, err := h.jwtService.GenerateAccessToken(req.UserID)
	if err != nil {
		response.InternalServerError(w, "Failed to generate token")
		return
	}

	response.Created(w, "Token issued", devTokenResponse{
		Token:     token,
		ExpiresAt: expiresAt,
	})
}
