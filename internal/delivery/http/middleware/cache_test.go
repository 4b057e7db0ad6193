package middleware

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cacheFixture(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return rdb, mr
}

func TestResponseCache_MissThenHit(t *testing.T) {
	rdb, _ := cacheFixture(t)

	calls := 0
	handler := ResponseCache(rdb, time.Minute, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"data":[]}`))
	})

	first := httptest.NewRecorder()
	handler(first, httptest.NewRequest(http.MethodGet, "/events", nil))
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))
	assert.Equal(t, 1, calls)

	second := httptest.NewRecorder()
	handler(second, httptest.NewRequest(http.MethodGet, "/events", nil))
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.Equal(t, `{"data":[]}`, second.Body.String())
	assert.Equal(t, "application/json", second.Header().Get("Content-Type"))
	assert.Equal(t, 1, calls, "hit must not reach the handler")
}

func TestResponseCache_QueryStringsAreDistinct(t *testing.T) {
	rdb, _ := cacheFixture(t)

	handler := ResponseCache(rdb, time.Minute, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(r.URL.RawQuery))
	})

	a := httptest.NewRecorder()
	handler(a, httptest.NewRequest(http.MethodGet, "/events?month=2025-12", nil))
	b := httptest.NewRecorder()
	handler(b, httptest.NewRequest(http.MethodGet, "/events?month=2026-01", nil))

	assert.Equal(t, "MISS", b.Header().Get("X-Cache"))
	assert.Equal(t, "month=2026-01", b.Body.String())
}

func TestResponseCache_ErrorsAreNotCached(t *testing.T) {
	rdb, _ := cacheFixture(t)

	calls := 0
	handler := ResponseCache(rdb, time.Minute, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	})

	for i := 0; i < 2; i++ {
		rr := httptest.NewRecorder()
		handler(rr, httptest.NewRequest(http.MethodGet, "/events", nil))
	}
	assert.Equal(t, 2, calls)
}

func TestResponseCache_PostPassesThrough(t *testing.T) {
	rdb, _ := cacheFixture(t)

	calls := 0
	handler := ResponseCache(rdb, time.Minute, func(w http.ResponseWriter, r *http.Request) {
		calls++
	})

	for i := 0; i < 2; i++ {
		rr := httptest.NewRecorder()
		handler(rr, httptest.NewRequest(http.MethodPost, "/events", nil))
		assert.Empty(t, rr.Header().Get("X-Cache"))
	}
	assert.Equal(t, 2, calls)
}

func TestCacheInvalidator_PurgePath(t *testing.T) {
	rdb, _ := cacheFixture(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	handler := ResponseCache(rdb, time.Minute, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	// Warm two /events variants and one /associates entry.
	for _, target := range []string{"/events", "/events?month=2025-12", "/associates"} {
		rr := httptest.NewRecorder()
		handler(rr, httptest.NewRequest(http.MethodGet, target, nil))
	}

	NewCacheInvalidator(rdb, logger).PurgePath(context.Background(), "/events")

	rr := httptest.NewRecorder()
	handler(rr, httptest.NewRequest(http.MethodGet, "/events", nil))
	assert.Equal(t, "MISS", rr.Header().Get("X-Cache"))

	rr = httptest.NewRecorder()
	handler(rr, httptest.NewRequest(http.MethodGet, "/associates", nil))
	require.Equal(t, "HIT", rr.Header().Get("X-Cache"))
}
