package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pantryhq/pantry/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubVerifier map[string]string

func (s stubVerifier) Verify(token string) (string, error) {
	if owner, ok := s[token]; ok {
		return owner, nil
	}
	return "", errors.New("bad token")
}

func ownerEcho() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		owner, _ := OwnerFromContext(r.Context())
		_, _ = w.Write([]byte(owner))
	})
}

func TestAuthenticate(t *testing.T) {
	handler := Authenticate(stubVerifier{"good": "owner-1"}, zap.NewNop())(ownerEcho())

	cases := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"ValidBearer_ShouldPassOwner", "Bearer good", http.StatusOK, "owner-1"},
		{"LowercaseScheme_ShouldPass", "bearer good", http.StatusOK, "owner-1"},
		{"MissingHeader_ShouldReject", "", http.StatusUnauthorized, "UNAUTHORIZED"},
		{"WrongScheme_ShouldReject", "Basic good", http.StatusUnauthorized, "Invalid authorization header format"},
		{"UnknownToken_ShouldReject", "Bearer nope", http.StatusUnauthorized, "Invalid token"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/lists/open", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tc.status, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.body)
		})
	}
}

func TestRateLimiter(t *testing.T) {
	t.Run("BurstExhausted_ShouldReturn429", func(t *testing.T) {
		// Arrange
		limiter := NewRateLimiter(config.RateLimitConfig{RequestsPerMin: 60, BurstSize: 2})
		handler := limiter.Middleware()(ownerEcho())
		call := func(owner string) *httptest.ResponseRecorder {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req = req.WithContext(WithOwner(req.Context(), owner))
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			return rec
		}

		// Act + Assert
		assert.Equal(t, http.StatusOK, call("a").Code)
		assert.Equal(t, http.StatusOK, call("a").Code)
		limited := call("a")
		assert.Equal(t, http.StatusTooManyRequests, limited.Code)
		assert.NotEmpty(t, limited.Header().Get("Retry-After"))

		assert.Equal(t, http.StatusOK, call("b").Code, "owners have separate buckets")
	})

	t.Run("IdleBuckets_ShouldBeSwept", func(t *testing.T) {
		now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		limiter := NewRateLimiter(config.RateLimitConfig{RequestsPerMin: 60, BurstSize: 1, IdleTTL: time.Minute})
		limiter.now = func() time.Time { return now }

		require.True(t, limiter.Allow("a"))
		now = now.Add(30 * time.Second)
		require.True(t, limiter.Allow("b"))

		now = now.Add(45 * time.Second)
		assert.Equal(t, 1, limiter.Sweep())
		assert.Len(t, limiter.owners, 1)
		assert.Contains(t, limiter.owners, "b")
	})
}

func TestCORS_Preflight(t *testing.T) {
	handler := CORS([]string{"https://app.example.com"})(ownerEcho())

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/items", nil)
	req.Header.Set("Origin", "https://app.example.com")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/v1/items", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestJSONOnly(t *testing.T) {
	handler := JSONOnly()(ownerEcho())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/items", strings.NewReader("name=flour"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/lists/generate", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code, "bodiless posts pass")
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}
