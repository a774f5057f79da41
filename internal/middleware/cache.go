package middleware

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/hotel-manager/internal/config"
)

// cachedResponse is what is stored in Redis for one cache key.
type cachedResponse struct {
	Status int         `json:"status"`
	Header http.Header `json:"header"`
	Body   []byte      `json:"body"`
}

// bodyRecorder forwards the response to the client and keeps a copy of up
// to limit bytes. overflow is set once the body outgrows the limit.
type bodyRecorder struct {
	http.ResponseWriter
	buf      bytes.Buffer
	limit    int
	overflow bool
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	if !w.overflow {
		if w.limit > 0 && w.buf.Len()+len(b) > w.limit {
			w.overflow = true
			w.buf.Reset()
		} else {
			w.buf.Write(b)
		}
	}
	return w.ResponseWriter.Write(b)
}

// ResponseCache caches successful reads of a route group in Redis under
// namespace. Any successful request with a non-cacheable method on the same
// group (a create, update or delete) drops every key of the namespace, so
// reads never outlive the write that changed them by more than one request.
func ResponseCache(cfg config.CacheConfig, rdb *redis.Client, namespace string) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return passThrough
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	index := cfg.Prefix + ":" + namespace + ":keys"

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			if !cfg.Methods[c.Request().Method] {
				if err := next(c); err != nil {
					return err
				}
				if s := c.Response().Status; s >= 200 && s < 300 {
					invalidate(ctx, rdb, index)
				}
				return nil
			}

			key := cacheKey(cfg, namespace, c.Request())
			if raw, err := rdb.Get(ctx, key).Bytes(); err == nil {
				var hit cachedResponse
				if json.Unmarshal(raw, &hit) == nil {
					return replay(c, hit)
				}
			}

			rec := &bodyRecorder{ResponseWriter: c.Response().Writer, limit: cfg.MaxBodyBytes}
			c.Response().Writer = rec
			c.Response().Header().Set("X-Cache", "MISS")
			if err := next(c); err != nil {
				return err
			}
			if c.Response().Status != http.StatusOK || rec.overflow {
				return nil
			}

			header := c.Response().Header().Clone()
			header.Del("X-Cache")
			header.Del(echo.HeaderXRequestID)
			payload, err := json.Marshal(cachedResponse{Status: http.StatusOK, Header: header, Body: rec.buf.Bytes()})
			if err != nil {
				return nil
			}
			// The request may already be cancelled once the body is written.
			store := context.WithoutCancel(ctx)
			pipe := rdb.TxPipeline()
			pipe.Set(store, key, payload, ttl)
			pipe.SAdd(store, index, key)
			pipe.Expire(store, index, ttl)
			if _, err := pipe.Exec(store); err != nil {
				log.Printf("cache: store %s failed: %v", key, err)
			}
			return nil
		}
	}
}

// InvalidateOnWrite drops the cached reads of namespaces after any
// successful non-cacheable request. It is used on groups whose writes change
// data served by another group's cache, such as bookings feeding the
// dashboard.
func InvalidateOnWrite(cfg config.CacheConfig, rdb *redis.Client, namespaces ...string) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil || len(namespaces) == 0 {
		return passThrough
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := next(c); err != nil || cfg.Methods[c.Request().Method] {
				return err
			}
			if s := c.Response().Status; s >= 200 && s < 300 {
				for _, ns := range namespaces {
					invalidate(c.Request().Context(), rdb, cfg.Prefix+":"+ns+":keys")
				}
			}
			return nil
		}
	}
}

func replay(c echo.Context, r cachedResponse) error {
	h := c.Response().Header()
	for k, vals := range r.Header {
		if strings.EqualFold(k, echo.HeaderContentLength) {
			continue
		}
		for _, v := range vals {
			h.Add(k, v)
		}
	}
	h.Set("X-Cache", "HIT")
	c.Response().WriteHeader(r.Status)
	_, err := c.Response().Write(r.Body)
	return err
}

func invalidate(ctx context.Context, rdb *redis.Client, index string) {
	ctx = context.WithoutCancel(ctx)
	keys, err := rdb.SMembers(ctx, index).Result()
	if err != nil {
		log.Printf("cache: list %s failed: %v", index, err)
		return
	}
	if err := rdb.Del(ctx, append(keys, index)...).Err(); err != nil {
		log.Printf("cache: invalidate %s failed: %v", index, err)
	}
}

// cacheKey hashes the request parts selected by cfg.KeyStrategy. The
// concrete path is used so /tariffs/1 and /tariffs/2 never share a key.
func cacheKey(cfg config.CacheConfig, namespace string, r *http.Request) string {
	var parts []string
	switch strings.ToLower(cfg.KeyStrategy) {
	case "route":
		parts = []string{r.URL.Path}
	case "method_route":
		parts = []string{r.Method, r.URL.Path}
	case "method_route_query":
		parts = []string{r.Method, r.URL.Path, r.URL.RawQuery}
	default:
		parts = []string{r.URL.Path, r.URL.RawQuery}
	}
	sum := sha1.Sum([]byte(strings.Join(parts, "\x00")))
	return cfg.Prefix + ":" + namespace + ":" + hex.EncodeToString(sum[:])
}
