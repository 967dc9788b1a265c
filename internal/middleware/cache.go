package middleware

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/venue-hall-booking/internal/config"
)

// NewRedisCache caches responses for the public venue catalogue. Only the
// catalogue is safe to cache: it is read-heavy, identical for every
// caller, and a stale entry costs nothing because the admission path
// re-checks availability at commit time. Anything per-user never enters
// the cache: authenticated requests are skipped wholesale, as is every
// path under cfg.SkipPrefixes (bookings, auth, owner views).
func NewRedisCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	maxBody := int64(cfg.MaxBodyBytes)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !cacheable(cfg, c) {
				return next(c)
			}

			ctx := c.Request().Context()
			key := cacheKey(cfg, c)

			if raw, err := rdb.Get(ctx, key).Bytes(); err == nil {
				if status, hdr, body, ok := decodeCached(raw); ok {
					return serveCached(c, status, hdr, body)
				}
			}

			rec := &bodyRecorder{ResponseWriter: c.Response().Writer, status: http.StatusOK, limit: maxBody}
			c.Response().Writer = rec
			c.Response().Header().Set("X-Cache", "MISS")

			if err := next(c); err != nil {
				return err
			}

			// Only successful, fully captured responses are stored. A body
			// that overflowed the capture limit would be served truncated.
			if rec.status == http.StatusOK && !rec.overflow {
				hdr := c.Response().Header().Clone()
				if payload, err := encodeCached(rec.status, hdr, rec.buf.Bytes()); err == nil {
					_ = rdb.SetEx(context.Background(), key, payload, ttl).Err()
				}
			}
			return nil
		}
	}
}

// cacheable reports whether the request may be answered from or stored in
// the cache. Authorization implies a per-user response.
func cacheable(cfg config.CacheConfig, c echo.Context) bool {
	r := c.Request()
	if !cfg.Methods[strings.ToUpper(r.Method)] {
		return false
	}
	if r.Header.Get("Authorization") != "" {
		return false
	}
	for _, p := range cfg.SkipPrefixes {
		if p != "" && strings.HasPrefix(r.URL.Path, p) {
			return false
		}
	}
	return true
}

// cacheKey hashes the request identity under the configured prefix. The
// key strategy decides how much of the request participates; the default
// folds in the query string so paginated venue listings cache separately.
func cacheKey(cfg config.CacheConfig, c echo.Context) string {
	r := c.Request()
	var id string
	switch strings.ToLower(cfg.KeyStrategy) {
	case "route":
		id = c.Path()
	case "method_route":
		id = r.Method + " " + c.Path()
	case "method_route_query":
		id = r.Method + " " + c.Path() + "?" + r.URL.RawQuery
	default: // route_query
		id = c.Path() + "?" + r.URL.RawQuery
	}
	sum := sha1.Sum([]byte(id))
	return cfg.Prefix + ":" + hex.EncodeToString(sum[:])
}

// bodyRecorder tees the response into a bounded buffer while writing it
// through to the client.
type bodyRecorder struct {
	http.ResponseWriter
	status   int
	buf      bytes.Buffer
	limit    int64
	overflow bool
}

func (w *bodyRecorder) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	if !w.overflow {
		if w.limit > 0 && int64(w.buf.Len()+len(b)) > w.limit {
			w.overflow = true
		} else {
			w.buf.Write(b)
		}
	}
	return w.ResponseWriter.Write(b)
}

// Cached payload layout: [4B status][4B header length][header JSON][body].
// Headers ride along so a hit serves byte-identical output, content type
// included.

func encodeCached(status int, header http.Header, body []byte) ([]byte, error) {
	hdrJSON, err := json.Marshal(header)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 8, 8+len(hdrJSON)+len(body))
	binary.BigEndian.PutUint32(out[0:4], uint32(status))
	binary.BigEndian.PutUint32(out[4:8], uint32(len(hdrJSON)))
	out = append(out, hdrJSON...)
	out = append(out, body...)
	return out, nil
}

func decodeCached(raw []byte) (status int, header http.Header, body []byte, ok bool) {
	if len(raw) < 8 {
		return 0, nil, nil, false
	}
	status = int(binary.BigEndian.Uint32(raw[0:4]))
	hlen := int(binary.BigEndian.Uint32(raw[4:8]))
	if hlen < 0 || 8+hlen > len(raw) {
		return 0, nil, nil, false
	}
	header = make(http.Header)
	if hlen > 0 {
		if err := json.Unmarshal(raw[8:8+hlen], &header); err != nil {
			return 0, nil, nil, false
		}
	}
	return status, header, raw[8+hlen:], true
}

func serveCached(c echo.Context, status int, hdr http.Header, body []byte) error {
	for k, vals := range hdr {
		if strings.EqualFold(k, "Content-Length") {
			continue
		}
		for _, v := range vals {
			c.Response().Header().Add(k, v)
		}
	}
	c.Response().Header().Set("X-Cache", "HIT")
	c.Response().WriteHeader(status)
	if len(body) > 0 {
		_, _ = c.Response().Write(body)
	}
	return nil
}
