package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caresync/backend/internal/application/adapter/fake"
	domainerror "github.com/caresync/backend/internal/domain/error"
	"github.com/caresync/backend/internal/integration/entrypoint/dto"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestAuthenticate(t *testing.T) {
	tokens := fake.NewTokenService()
	userID := uuid.New()
	pair, err := tokens.GenerateTokenPair(context.Background(), userID, "ana@example.com", false)
	require.NoError(t, err)

	engine := gin.New()
	engine.GET("/me", NewAuthMiddleware(tokens).Authenticate(), func(c *gin.Context) {
		id, ok := GetUserIDFromContext(c)
		require.True(t, ok)
		email, _ := GetUserEmailFromContext(c)
		c.JSON(http.StatusOK, gin.H{"id": id.String(), "email": email})
	})

	tests := []struct {
		name   string
		header string
		status int
		code   domainerror.AuthErrorCode
	}{
		{name: "missing header", header: "", status: http.StatusUnauthorized, code: domainerror.ErrCodeMissingToken},
		{name: "wrong scheme", header: "Basic abc", status: http.StatusUnauthorized, code: domainerror.ErrCodeInvalidToken},
		{name: "empty bearer", header: "Bearer ", status: http.StatusUnauthorized, code: domainerror.ErrCodeMissingToken},
		{name: "unknown token", header: "Bearer nope", status: http.StatusUnauthorized, code: domainerror.ErrCodeInvalidToken},
		{name: "valid token", header: "Bearer " + pair.AccessToken, status: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.code != "" {
				var body dto.ErrorResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, string(tt.code), body.Code)
				return
			}
			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, userID.String(), body["id"])
			assert.Equal(t, "ana@example.com", body["email"])
		})
	}
}

func TestRateLimiter_Middleware(t *testing.T) {
	limiter := NewRateLimiterWithConfig(2, time.Minute)
	now := time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	engine := gin.New()
	engine.POST("/login", limiter.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, send().Code)
	assert.Equal(t, http.StatusOK, send().Code)

	rec := send()
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))

	now = now.Add(time.Minute)
	assert.Equal(t, http.StatusOK, send().Code)
}

func TestRateLimiter_CleanupAndReset(t *testing.T) {
	limiter := NewRateLimiterWithConfig(1, time.Minute)
	now := time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	allowed, _ := limiter.allow("a")
	assert.True(t, allowed)
	allowed, retry := limiter.allow("a")
	assert.False(t, allowed)
	assert.Equal(t, time.Minute, retry)

	now = now.Add(2 * time.Minute)
	limiter.Cleanup()
	assert.Empty(t, limiter.windows)

	_, _ = limiter.allow("b")
	limiter.Reset()
	assert.Empty(t, limiter.windows)
}
