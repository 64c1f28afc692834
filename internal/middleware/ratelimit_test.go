package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// newRateLimitedHandler wires the middleware around a trivial 200
// handler, backed by an in-process miniredis.
func newRateLimitedHandler(t *testing.T, requestsPerWindow int) (http.Handler, func()) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	logger, _ := zap.NewDevelopment()

	limited := RateLimitMiddleware(redisClient, RateLimitConfig{
		RequestsPerWindow: requestsPerWindow,
		Window:            time.Second,
		KeyPrefix:         "ratelimit",
	}, logger)

	handler := limited(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	cleanup := func() {
		redisClient.Close()
		mr.Close()
	}
	return handler, cleanup
}

func doRequest(handler http.Handler, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/businesses", nil)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

// Exactly the configured number of requests succeed per window; the
// rest get a 429.
func TestProperty_RateLimitingBlocksExcessiveRequests(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("requests beyond the window limit get 429", prop.ForAll(
		func(requestsPerWindow int, excess int) bool {
			handler, cleanup := newRateLimitedHandler(t, requestsPerWindow)
			defer cleanup()

			allowed := 0
			blocked := 0
			for i := 0; i < requestsPerWindow+excess; i++ {
				switch doRequest(handler, "10.0.0.1:4000").Code {
				case http.StatusOK:
					allowed++
				case http.StatusTooManyRequests:
					blocked++
				}
			}

			return allowed == requestsPerWindow && blocked == excess
		},
		gen.IntRange(1, 20),
		gen.IntRange(1, 10),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestRateLimitCountsClientsSeparately(t *testing.T) {
	handler, cleanup := newRateLimitedHandler(t, 1)
	defer cleanup()

	if code := doRequest(handler, "10.0.0.1:4000").Code; code != http.StatusOK {
		t.Fatalf("First client's first request got %d", code)
	}
	if code := doRequest(handler, "10.0.0.1:4000").Code; code != http.StatusTooManyRequests {
		t.Fatalf("First client's second request got %d", code)
	}
	// A different client still has a fresh counter
	if code := doRequest(handler, "10.0.0.2:4000").Code; code != http.StatusOK {
		t.Fatalf("Second client's first request got %d", code)
	}
}

func TestRateLimitHeadersAreSet(t *testing.T) {
	handler, cleanup := newRateLimitedHandler(t, 5)
	defer cleanup()

	w := doRequest(handler, "10.0.0.3:4000")

	if w.Header().Get("X-RateLimit-Limit") != "5" {
		t.Errorf("Expected limit header 5, got %q", w.Header().Get("X-RateLimit-Limit"))
	}
	if w.Header().Get("X-RateLimit-Remaining") != "4" {
		t.Errorf("Expected remaining header 4, got %q", w.Header().Get("X-RateLimit-Remaining"))
	}
}

func TestRateLimitExceededSetsRetryAfter(t *testing.T) {
	handler, cleanup := newRateLimitedHandler(t, 1)
	defer cleanup()

	doRequest(handler, "10.0.0.4:4000")
	w := doRequest(handler, "10.0.0.4:4000")

	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("Expected 429, got %d", w.Code)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Error("Expected a Retry-After header")
	}
	if w.Header().Get("X-RateLimit-Remaining") != "0" {
		t.Errorf("Expected remaining 0, got %q", w.Header().Get("X-RateLimit-Remaining"))
	}
}
