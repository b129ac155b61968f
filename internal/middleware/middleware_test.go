package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestNewRateLimiter(t *testing.T) {
	rl := NewRateLimiter(rate.Limit(10), 20)

	assert.Equal(t, rate.Limit(10), rl.rate)
	assert.Equal(t, 20, rl.burst)
	assert.NotNil(t, rl.limiters)
}

func TestRateLimiter_GetLimiter(t *testing.T) {
	rl := NewRateLimiter(rate.Limit(10), 20)

	first := rl.getLimiter("192.168.1.1")
	assert.Same(t, first, rl.getLimiter("192.168.1.1"))
	assert.NotSame(t, first, rl.getLimiter("192.168.1.2"))
	assert.Len(t, rl.limiters, 2)
}

func TestRateLimiter_ResetsWhenFull(t *testing.T) {
	rl := NewRateLimiter(rate.Limit(1), 1)
	for i := 0; i < maxTrackedClients; i++ {
		rl.limiters[uuid.New().String()] = rate.NewLimiter(1, 1)
	}

	rl.getLimiter("10.0.0.1")
	assert.Len(t, rl.limiters, 1)
}

func TestRateLimitMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		burst          int
		requests       int
		expectedStatus int
	}{
		{"Within Burst", 3, 3, http.StatusOK},
		{"Exceeds Burst", 1, 2, http.StatusTooManyRequests},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(RateLimitMiddleware(NewRateLimiter(rate.Limit(0.001), tt.burst)))
			router.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

			var w *httptest.ResponseRecorder
			for i := 0; i < tt.requests; i++ {
				w = httptest.NewRecorder()
				req := httptest.NewRequest(http.MethodGet, "/", nil)
				req.RemoteAddr = "192.0.2.1:1234"
				router.ServeHTTP(w, req)
			}

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusTooManyRequests {
				assert.Contains(t, w.Body.String(), "Rate limit exceeded")
			}
		})
	}
}

func TestRateLimitMiddleware_SeparateClients(t *testing.T) {
	router := gin.New()
	router.Use(RateLimitMiddleware(NewRateLimiter(rate.Limit(0.001), 1)))
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, ip := range []string{"192.0.2.1", "192.0.2.2"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = ip + ":40000"
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, ip)
	}
}

func TestMaxBytesMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(MaxBytesMiddleware(16))
	router.POST("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"a":1}`)))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(make([]byte, 64))))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Contains(t, w.Body.String(), "Request body too large")
}

func TestMutatingOnly(t *testing.T) {
	router := gin.New()
	router.Use(MutatingOnly(func(c *gin.Context) {
		c.AbortWithStatus(http.StatusForbidden)
	}))
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.DELETE("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequestID(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(RequestIDKey))
	})

	t.Run("Generates", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		id := w.Header().Get(RequestIDHeader)
		_, err := uuid.Parse(id)
		require.NoError(t, err)
		assert.Equal(t, id, w.Body.String())
	})

	t.Run("Reuses Valid Header", func(t *testing.T) {
		incoming := uuid.New().String()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, incoming)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, incoming, w.Header().Get(RequestIDHeader))
	})

	t.Run("Replaces Garbage", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "not-a-uuid")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.NotEqual(t, "not-a-uuid", w.Header().Get(RequestIDHeader))
	})
}

func TestRequestLogger(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	router := gin.New()
	router.Use(RequestID(), RequestLogger(logger))
	router.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	router.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	cases := []struct {
		path  string
		ua    string
		level logrus.Level
	}{
		{"/ok", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) Chrome/120.0", logrus.InfoLevel},
		{"/ok", "Mozilla/5.0 (Linux; Tizen 6.0) SMART-TV Safari/537.36", logrus.DebugLevel},
		{"/missing", "", logrus.WarnLevel},
		{"/boom", "", logrus.ErrorLevel},
	}

	for _, tc := range cases {
		hook.Reset()
		req := httptest.NewRequest(http.MethodGet, tc.path, nil)
		req.Header.Set("User-Agent", tc.ua)
		router.ServeHTTP(httptest.NewRecorder(), req)

		entry := hook.LastEntry()
		require.NotNil(t, entry, tc.path)
		assert.Equal(t, tc.level, entry.Level, tc.path)
		assert.Equal(t, tc.path, entry.Data["path"])
		assert.NotEmpty(t, entry.Data["request_id"])
	}
}
