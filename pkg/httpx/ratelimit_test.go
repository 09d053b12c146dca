package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Parallel()

	cfg := RateLimitConfig{RequestsPerWindow: 3, Window: time.Minute, Burst: 3}
	handler := Chain(okHandler(), RateLimitByIP(cfg))

	do := func(remoteAddr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = remoteAddr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	// The burst is admitted, then requests are rejected.
	for i := 0; i < 3; i++ {
		require.Equal(t, http.StatusOK, do("10.0.0.1:1234").Code, "request %d", i)
	}

	rec := do("10.0.0.1:1234")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.NotEmpty(t, rec.Header().Get("Retry-After"))
	require.Equal(t, "3", rec.Header().Get("X-RateLimit-Limit"))

	// A different client is unaffected.
	require.Equal(t, http.StatusOK, do("10.0.0.2:1234").Code)
}

func TestRateLimitKeyExtractors(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.1.2.3:555"
	require.Equal(t, "10.1.2.3", IPKeyExtractor(req))

	// Without an authenticated subject, user keying falls back to IP.
	require.Equal(t, "10.1.2.3", UserKeyExtractor(req))
}

func TestParseRateLimitFromEnv(t *testing.T) {
	t.Setenv("RATELIMIT_TEST_REQUESTS", "42")
	t.Setenv("RATELIMIT_TEST_WINDOW_SEC", "30")
	t.Setenv("RATELIMIT_TEST_BURST", "7")

	cfg := ParseRateLimitFromEnv("TEST", RateLimitConfig{
		RequestsPerWindow: 1, Window: time.Minute, Burst: 1,
	})
	require.Equal(t, 42, cfg.RequestsPerWindow)
	require.Equal(t, 30*time.Second, cfg.Window)
	require.Equal(t, 7, cfg.Burst)

	// Garbage values keep the defaults.
	t.Setenv("RATELIMIT_TEST_REQUESTS", "lots")
	cfg = ParseRateLimitFromEnv("TEST", RateLimitConfig{
		RequestsPerWindow: 5, Window: time.Minute, Burst: 5,
	})
	require.Equal(t, 5, cfg.RequestsPerWindow)
}
