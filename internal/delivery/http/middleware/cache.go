package middleware

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/gob"
	"encoding/hex"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "cache:"

type cachedBody struct {
	Status int
	Header map[string][]string
	Body   []byte
}

func sha1Hex(s string) string {
	sum := sha1.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

// cacheKey namespaces GET responses by path so the invalidator can purge a
// whole listing at once. Non-GET requests are never cached.
func cacheKey(r *http.Request) string {
	if r.Method != http.MethodGet {
		return ""
	}
	return cacheKeyPrefix + r.URL.Path + ":" + sha1Hex(r.URL.Path+"|"+r.URL.RawQuery)
}

// ResponseCache caches successful GET responses in Redis for ttl. A hit is
// replayed with an X-Cache: HIT header; misses are stored after the handler
// runs. Redis being down degrades to pass-through.
func ResponseCache(rdb *redis.Client, ttl time.Duration, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := cacheKey(r)
		if key == "" {
			next(w, r)
			return
		}

		if b, err := rdb.Get(r.Context(), key).Bytes(); err == nil && len(b) > 0 {
			var hit cachedBody
			if err := gob.NewDecoder(bytes.NewReader(b)).Decode(&hit); err == nil {
				for k, vals := range hit.Header {
					for _, v := range vals {
						w.Header().Add(k, v)
					}
				}
				w.Header().Set("X-Cache", "HIT")
				w.WriteHeader(hit.Status)
				_, _ = w.Write(hit.Body)
				return
			}
		}

		buf := &bytes.Buffer{}
		bw := &bufferedWriter{ResponseWriter: w, buf: buf, status: http.StatusOK}
		bw.Header().Set("X-Cache", "MISS")
		next(bw, r)

		// only 2xx responses are cached
		if bw.status >= 200 && bw.status < 300 {
			item := cachedBody{
				Status: bw.status,
				Header: bw.Header().Clone(),
				Body:   buf.Bytes(),
			}
			var o bytes.Buffer
			if err := gob.NewEncoder(&o).Encode(item); err == nil {
				_ = rdb.Set(context.Background(), key, o.Bytes(), ttl).Err()
			}
		}
	}
}

type bufferedWriter struct {
	http.ResponseWriter
	buf    *bytes.Buffer
	status int
}

func (w *bufferedWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *bufferedWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

// CacheInvalidator purges cached listings after mutations.
type CacheInvalidator struct {
	rdb    *redis.Client
	logger *slog.Logger
}

// NewCacheInvalidator returns an invalidator over the same Redis instance the
// ResponseCache writes to.
func NewCacheInvalidator(rdb *redis.Client, logger *slog.Logger) *CacheInvalidator {
	return &CacheInvalidator{rdb: rdb, logger: logger}
}

// PurgePath deletes every cached response under the given request path.
func (ci *CacheInvalidator) PurgePath(ctx context.Context, path string) {
	iter := ci.rdb.Scan(ctx, 0, cacheKeyPrefix+path+":*", 0).Iterator()
	for iter.Next(ctx) {
		_ = ci.rdb.Del(ctx, iter.Val()).Err()
	}
	if err := iter.Err(); err != nil {
		ci.logger.Warn("cache purge failed", "path", path, "err", err)
	}
}
