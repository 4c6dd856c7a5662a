package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeCache struct {
	counts map[string]int64
	err    error
}

func newFakeCache() *fakeCache {
	return &fakeCache{counts: make(map[string]int64)}
}

func (f *fakeCache) GetProjectList(int64) (string, error)              { return "", nil }
func (f *fakeCache) SetProjectList(int64, string, time.Duration) error { return nil }
func (f *fakeCache) InvalidateProjectList(int64) error                 { return nil }
func (f *fakeCache) Close() error                                      { return nil }

func (f *fakeCache) IncrWithTTL(key string, _ time.Duration) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.counts[key]++
	return f.counts[key], nil
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimitLogin_BlocksAboveLimit(t *testing.T) {
	cache := newFakeCache()
	handler := RateLimitLogin(cache)(okHandler())

	for i := 0; i < loginLimit; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/authenticateUser", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/authenticateUser", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestRateLimitLogin_SeparateClientsSeparateBuckets(t *testing.T) {
	cache := newFakeCache()
	handler := RateLimitLogin(cache)(okHandler())

	for i := 0; i < loginLimit+1; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/authenticateUser", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		handler.ServeHTTP(rec, req)
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/authenticateUser", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

// Cache trouble must never lock users out.
func TestRateLimitLogin_CacheErrorFailsOpen(t *testing.T) {
	cache := newFakeCache()
	cache.err = assert.AnError
	handler := RateLimitLogin(cache)(okHandler())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/authenticateUser", nil)
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestClientIP_PrefersForwardedFor(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")

	assert.Equal(t, "203.0.113.9", clientIP(req))
}
