package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hallbook/hallbook-api/internal/config"
)

func newCtx(method, target, route string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	req.RemoteAddr = "10.0.0.7:5555"
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath(route)
	return c, rec
}

// deadRedis points at a port nothing listens on.
func deadRedis() *redis.Client {
	return redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond, MaxRetries: -1})
}

func TestPayloadRoundTrip(t *testing.T) {
	hdr := http.Header{"Content-Type": {"application/json"}}
	bs, err := encodePayload(http.StatusOK, hdr, []byte(`{"items":[]}`))
	require.NoError(t, err)

	status, got, body, ok := decodePayload(bs)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "application/json", got.Get("Content-Type"))
	assert.Equal(t, `{"items":[]}`, string(body))

	_, _, _, ok = decodePayload(bs[:5])
	assert.False(t, ok)
	_, _, _, ok = decodePayload([]byte{0, 0, 0, 200, 0, 0, 1, 0})
	assert.False(t, ok)
}

func TestCacheKeyFrom(t *testing.T) {
	cfg := config.CacheConfig{Prefix: "cache", KeyStrategy: "route_query"}

	c1, _ := newCtx(http.MethodGet, "/api/halls?owner_id=1", "/api/halls")
	c2, _ := newCtx(http.MethodGet, "/api/halls?owner_id=2", "/api/halls")
	c3, _ := newCtx(http.MethodGet, "/api/halls?owner_id=1", "/api/halls")
	k1, k2, k3 := cacheKeyFrom(cfg, c1), cacheKeyFrom(cfg, c2), cacheKeyFrom(cfg, c3)
	assert.True(t, strings.HasPrefix(k1, "cache:"))
	assert.NotEqual(t, k1, k2)
	assert.Equal(t, k1, k3)

	// concrete paths differ even when the route pattern is shared
	a, _ := newCtx(http.MethodGet, "/api/halls/city/Pune", "/api/halls/city/:city")
	b, _ := newCtx(http.MethodGet, "/api/halls/city/Delhi", "/api/halls/city/:city")
	assert.NotEqual(t, cacheKeyFrom(cfg, a), cacheKeyFrom(cfg, b))

	cfg.KeyStrategy = "route"
	assert.Equal(t, cacheKeyFrom(cfg, c1), cacheKeyFrom(cfg, c2))
}

func TestCaptureWriterLimit(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := &captureWriter{ResponseWriter: rec, status: http.StatusOK, limit: 4}
	_, _ = cw.Write([]byte("abc"))
	assert.False(t, cw.overflow)
	_, _ = cw.Write([]byte("def"))
	assert.True(t, cw.overflow)
	assert.Equal(t, "abcdef", rec.Body.String())
}

func TestCachePassThrough(t *testing.T) {
	ok := func(c echo.Context) error { return c.String(http.StatusOK, "fresh") }

	for _, mw := range []echo.MiddlewareFunc{
		NewRedisCache(config.CacheConfig{Enabled: false}, deadRedis(), zerolog.Nop()),
		NewRedisCache(config.CacheConfig{Enabled: true}, nil, zerolog.Nop()),
	} {
		c, rec := newCtx(http.MethodGet, "/api/halls", "/api/halls")
		require.NoError(t, mw(ok)(c))
		assert.Equal(t, "fresh", rec.Body.String())
		assert.Empty(t, rec.Header().Get("X-Cache"))
	}
}

func TestCacheFailsOpenWhenRedisDown(t *testing.T) {
	cfg := config.CacheConfig{Enabled: true, Methods: []string{"GET"}, TTL: time.Minute, Prefix: "cache"}
	rdb := deadRedis()
	defer rdb.Close()

	calls := 0
	h := func(c echo.Context) error {
		calls++
		return c.String(http.StatusOK, "fresh")
	}
	c, rec := newCtx(http.MethodGet, "/api/halls", "/api/halls")
	require.NoError(t, NewRedisCache(cfg, rdb, zerolog.Nop())(h)(c))
	assert.Equal(t, 1, calls)
	assert.Equal(t, "fresh", rec.Body.String())
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))

	c, rec = newCtx(http.MethodPost, "/api/halls", "/api/halls")
	require.NoError(t, NewCacheInvalidator(cfg, rdb, zerolog.Nop())(h)(c))
	assert.Equal(t, 2, calls)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBuildRateKey(t *testing.T) {
	cfg := config.RateLimitConfig{Prefix: "rl"}
	c, _ := newCtx(http.MethodPost, "/api/login?email=A@B.io&password=x", "/api/login")

	cfg.KeyStrategy = "ip"
	assert.Equal(t, "rl:ip:10.0.0.7", buildRateKey(cfg, c))
	cfg.KeyStrategy = "route"
	assert.Equal(t, "rl:route:POST /api/login", buildRateKey(cfg, c))
	cfg.KeyStrategy = "ip_route"
	assert.Equal(t, "rl:ip:10.0.0.7:route:POST /api/login", buildRateKey(cfg, c))
	cfg.KeyStrategy = "ip_email"
	key := buildRateKey(cfg, c)
	assert.Equal(t, "rl:ip:10.0.0.7:route:POST /api/login:email:a@b.io", key)
	assert.NotContains(t, key, "password")
}

func TestRetryAfterSeconds(t *testing.T) {
	assert.Equal(t, 0, retryAfterSeconds(0))
	assert.Equal(t, 0, retryAfterSeconds(-5))
	assert.Equal(t, 1, retryAfterSeconds(1))
	assert.Equal(t, 6, retryAfterSeconds(5001))
}

func TestTokenBucketFailsOpen(t *testing.T) {
	ok := func(c echo.Context) error { return c.NoContent(http.StatusNoContent) }
	cfg := config.RateLimitConfig{Enabled: true, Capacity: 1, RefillTokens: 1,
		RefillInterval: time.Second, TTL: time.Minute, Prefix: "rl"}

	rdb := deadRedis()
	defer rdb.Close()
	for _, mw := range []echo.MiddlewareFunc{
		NewTokenBucket(cfg, nil, zerolog.Nop()),
		NewTokenBucket(cfg, rdb, zerolog.Nop()),
	} {
		c, rec := newCtx(http.MethodPost, "/api/signup", "/api/signup")
		require.NoError(t, mw(ok)(c))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	}
}

func TestRequestLoggerOmitsQuery(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	c, rec := newCtx(http.MethodPost, "/api/login?email=a@b.io&password=hunter2", "/api/login")
	h := func(c echo.Context) error { return echo.NewHTTPError(http.StatusBadRequest, "nope") }
	require.NoError(t, RequestLogger(log)(h)(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	line := buf.String()
	assert.Contains(t, line, `"status":400`)
	assert.Contains(t, line, `"path":"/api/login"`)
	assert.Contains(t, line, `"level":"warn"`)
	assert.NotContains(t, line, "hunter2")
}

func TestRateKeyIgnoresSpoofedForwardedFor(t *testing.T) {
	extract, err := IPExtractor(nil)
	require.NoError(t, err)
	e := echo.New()
	e.IPExtractor = extract
	cfg := config.RateLimitConfig{Prefix: "rl", KeyStrategy: "ip_route"}

	keyFor := func(xff string) string {
		req := httptest.NewRequest(http.MethodPost, "/api/login", nil)
		req.RemoteAddr = "203.0.113.9:4444"
		req.Header.Set(echo.HeaderXForwardedFor, xff)
		req.Header.Set(echo.HeaderXRealIP, xff)
		c := e.NewContext(req, httptest.NewRecorder())
		c.SetPath("/api/login")
		return buildRateKey(cfg, c)
	}

	k1, k2 := keyFor("1.1.1.1"), keyFor("2.2.2.2")
	assert.Equal(t, k1, k2)
	assert.Equal(t, "rl:ip:203.0.113.9:route:POST /api/login", k1)
}

func TestIPExtractorTrustedProxies(t *testing.T) {
	extract, err := IPExtractor([]string{"10.0.0.0/8"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.1.2.3:80"
	req.Header.Set(echo.HeaderXForwardedFor, "198.51.100.4")
	assert.Equal(t, "198.51.100.4", extract(req))

	req.RemoteAddr = "203.0.113.9:80"
	assert.Equal(t, "203.0.113.9", extract(req))

	_, err = IPExtractor([]string{"not-a-cidr"})
	require.Error(t, err)
}
