package ratelimit

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestLimitBlocksOverLimit(t *testing.T) {
	mw := NewMiddleware(NewInMemoryBucketStore(), 2, time.Minute, slog.Default())
	handler := mw.Limit("subscribe")(okHandler())

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/subscribe", nil)
		req.RemoteAddr = "1.2.3.4:5555"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/subscribe", nil)
	req.RemoteAddr = "1.2.3.4:5555"
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
}

func TestLimitSeparatesClientsByIP(t *testing.T) {
	mw := NewMiddleware(NewInMemoryBucketStore(), 1, time.Minute, slog.Default())
	handler := mw.Limit("subscribe")(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/subscribe", nil)
	req.RemoteAddr = "1.2.3.4:5555"
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/subscribe", nil)
	req.RemoteAddr = "5.6.7.8:5555"
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLimitUsesForwardedForHeader(t *testing.T) {
	mw := NewMiddleware(NewInMemoryBucketStore(), 1, time.Minute, slog.Default())
	handler := mw.Limit("subscribe")(okHandler())

	for i, want := range []int{http.StatusOK, http.StatusTooManyRequests} {
		req := httptest.NewRequest(http.MethodPost, "/subscribe", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, want, w.Code, "request %d", i)
	}
}

func TestLimitScopesAreIndependent(t *testing.T) {
	store := NewInMemoryBucketStore()
	mw := NewMiddleware(store, 1, time.Minute, slog.Default())

	subscribe := mw.Limit("subscribe")(okHandler())
	register := mw.Limit("event-registration")(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/subscribe", nil)
	req.RemoteAddr = "1.2.3.4:5555"
	w := httptest.NewRecorder()
	subscribe.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/event-registration", nil)
	req.RemoteAddr = "1.2.3.4:5555"
	w = httptest.NewRecorder()
	register.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLimitDisabled(t *testing.T) {
	mw := NewMiddleware(NewInMemoryBucketStore(), 1, time.Minute, slog.Default(), WithDisabled(true))
	handler := mw.Limit("subscribe")(okHandler())

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodPost, "/subscribe", nil)
		req.RemoteAddr = "1.2.3.4:5555"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
	}
}
