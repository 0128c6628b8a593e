package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qanda-labs/engage-backend-go/internal/pkg/jwt"
)

func TestDevTokenIssuesUsableToken(t *testing.T) {
	jwtService := jwt.NewJWTService("test-secret-key", "1h")
	handler := NewAuthHandler(jwtService)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/dev-token", bytes.NewBufferString(`{"user_id": 42}`))
	rec := httptest.NewRecorder()
	handler.DevToken(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Token     string `json:"token"`
			ExpiresAt int64  `json:"expires_at"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	require.NotEmpty(t, body.Data.Token)
	assert.NotZero(t, body.Data.ExpiresAt)

	decoded, err := jwtService.JWTAuth().Decode(body.Data.Token)
	require.NoError(t, err)
	userID, ok := decoded.Get("user_id")
	require.True(t, ok)
	assert.EqualValues(t, 42, userID)
}

func TestDevTokenRejectsBadRequests(t *testing.T) {
	handler := NewAuthHandler(jwt.NewJWTService("test-secret-key", "1h"))

	for _, payload := range []string{`not json`, `{"user_id": 0}`, `{"user_id": -3}`} {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/dev-token", bytes.NewBufferString(payload))
		rec := httptest.NewRecorder()
		handler.DevToken(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	}
}
