package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func serve(t *testing.T, r *gin.Engine, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, "/ping", nil)
	require.NoError(t, err)
	for k, v := range header {
		req.Header[k] = v
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.InfoLevel)

	var seen string
	r := gin.New()
	r.Use(RequestID(zap.New(core)))
	r.GET("/ping", func(c *gin.Context) {
		seen = GetRequestID(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	rr := serve(t, r, nil)
	generated := rr.Header().Get("X-Request-Id")
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, seen)

	rr = serve(t, r, http.Header{"X-Request-Id": {"abc-123"}})
	assert.Equal(t, "abc-123", rr.Header().Get("X-Request-Id"))
	assert.Equal(t, "abc-123", seen)

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 2)
	fields := entries[1].ContextMap()
	assert.Equal(t, "abc-123", fields["request_id"])
	assert.Equal(t, int64(http.StatusNoContent), fields["status"])
}

func TestGetRequestID_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, GetRequestID(req.Context()))
}

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimit(0.001, 2))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(t, r, nil).Code)
	assert.Equal(t, http.StatusOK, serve(t, r, nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(t, r, nil).Code)
}

func TestRateLimit_Disabled(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimit(0, 0))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 20; i++ {
		require.Equal(t, http.StatusOK, serve(t, r, nil).Code)
	}
}

func TestRateLimit_EvictsIdleClients(t *testing.T) {
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l := newIPLimiter(0.001, 1, 10*time.Minute, func() time.Time { return clock })

	assert.True(t, l.allow("10.0.0.1"))
	assert.False(t, l.allow("10.0.0.1"))
	assert.True(t, l.allow("10.0.0.2"))
	assert.Equal(t, 2, l.size())

	clock = clock.Add(5 * time.Minute)
	assert.True(t, l.allow("10.0.0.3"))
	assert.Equal(t, 3, l.size(), "nobody idle long enough yet")

	clock = clock.Add(6 * time.Minute)
	assert.True(t, l.allow("10.0.0.1"), "evicted client starts with a full bucket")
	assert.Equal(t, 2, l.size())
}
