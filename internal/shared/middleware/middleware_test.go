package middleware

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unishowcase/server/internal/shared/logger"
	"github.com/unishowcase/server/internal/shared/metrics"
	"github.com/unishowcase/server/internal/shared/requestctx"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRequestID(t *testing.T) {
	t.Run("generates new request ID when not provided", func(t *testing.T) {
		router := gin.New()
		router.Use(RequestID())
		router.GET("/test", func(c *gin.Context) {
			assert.Equal(t, GetRequestID(c), requestctx.RequestID(c.Request.Context()))
			c.String(http.StatusOK, GetRequestID(c))
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/test", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		headerID := w.Header().Get(RequestIDHeader)
		assert.NotEmpty(t, headerID)
		assert.Equal(t, headerID, w.Body.String())
	})

	t.Run("uses existing request ID from header", func(t *testing.T) {
		router := gin.New()
		router.Use(RequestID())
		router.GET("/test", func(c *gin.Context) {
			c.String(http.StatusOK, GetRequestID(c))
		})

		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set(RequestIDHeader, "existing-request-id-123")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, "existing-request-id-123", w.Header().Get(RequestIDHeader))
		assert.Equal(t, "existing-request-id-123", w.Body.String())
	})

	invalid := map[string]string{
		"too long":     strings.Repeat("a", 65),
		"has spaces":   "two words",
		"non-ascii":    "id-\u00e9",
		"control char": "id\tx",
	}
	for name, bad := range invalid {
		t.Run("replaces invalid header: "+name, func(t *testing.T) {
			router := gin.New()
			router.Use(RequestID())
			router.GET("/test", func(c *gin.Context) {
				c.String(http.StatusOK, GetRequestID(c))
			})

			req := httptest.NewRequest("GET", "/test", nil)
			req.Header.Set(RequestIDHeader, bad)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			got := w.Header().Get(RequestIDHeader)
			assert.NotEqual(t, bad, got)
			_, err := uuid.Parse(got)
			assert.NoError(t, err)
			assert.Equal(t, got, w.Body.String())
		})
	}

	t.Run("accepts a 64 byte header", func(t *testing.T) {
		router := gin.New()
		router.Use(RequestID())
		router.GET("/test", func(c *gin.Context) {
			c.String(http.StatusOK, GetRequestID(c))
		})

		id := strings.Repeat("b", 64)
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set(RequestIDHeader, id)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, id, w.Header().Get(RequestIDHeader))
	})
}

func TestLogging(t *testing.T) {
	tests := []struct {
		name   string
		status int
		level  string
	}{
		{"logs successful requests as info", http.StatusOK, "INFO"},
		{"logs 4xx requests as warnings", http.StatusNotFound, "WARN"},
		{"logs 5xx requests as errors", http.StatusInternalServerError, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			log := logger.New(&logger.Config{Level: "info", Format: "json", Output: buf})

			router := gin.New()
			router.Use(RequestID(), Logging(log))
			router.GET("/test", func(c *gin.Context) {
				c.Status(tt.status)
			})

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest("GET", "/test?page=2", nil))

			out := buf.String()
			assert.Contains(t, out, "HTTP Request")
			assert.Contains(t, out, tt.level)
			assert.Contains(t, out, "page=2")
			assert.Contains(t, out, "request_id")
		})
	}
}

func TestLogging_SkipPaths(t *testing.T) {
	buf := &bytes.Buffer{}
	log := logger.New(&logger.Config{Level: "info", Format: "json", Output: buf})

	router := gin.New()
	router.Use(Logging(log, "/health"))
	router.GET("/health", func(c *gin.Context) {
		if c.Query("fail") != "" {
			c.Status(http.StatusServiceUnavailable)
			return
		}
		c.Status(http.StatusOK)
	})
	router.GET("/projects/:id", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/health", nil))
	assert.Empty(t, buf.String())

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/health?fail=1", nil))
	assert.Contains(t, buf.String(), "ERROR")

	buf.Reset()
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/projects/42", nil))
	assert.Contains(t, buf.String(), `"route":"/projects/:id"`)
}

func TestRecovery(t *testing.T) {
	t.Run("recovers from panic", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(&logger.Config{Level: "error", Format: "json", Output: buf})

		router := gin.New()
		router.Use(Recovery(log))
		router.GET("/panic", func(c *gin.Context) {
			panic("test panic")
		})

		w := httptest.NewRecorder()
		require.NotPanics(t, func() {
			router.ServeHTTP(w, httptest.NewRequest("GET", "/panic", nil))
		})

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "internal_error")
		assert.Contains(t, buf.String(), "Panic recovered")
		assert.Contains(t, buf.String(), "test panic")
	})

	t.Run("uses default logger when nil", func(t *testing.T) {
		router := gin.New()
		router.Use(Recovery(nil))
		router.GET("/panic", func(c *gin.Context) {
			panic("test panic")
		})

		w := httptest.NewRecorder()
		require.NotPanics(t, func() {
			router.ServeHTTP(w, httptest.NewRequest("GET", "/panic", nil))
		})
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestCORS(t *testing.T) {
	preflight := func(origins []string, origin string) *httptest.ResponseRecorder {
		router := gin.New()
		router.Use(CORS(origins))
		router.GET("/test", func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		req := httptest.NewRequest("OPTIONS", "/test", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", "PATCH")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("any origin without credentials", func(t *testing.T) {
		w := preflight(nil, "http://showcase.local")

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("wildcard entry allows any origin", func(t *testing.T) {
		w := preflight([]string{"*"}, "http://showcase.local")

		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("listed origin with credentials", func(t *testing.T) {
		w := preflight([]string{"https://showcase.example"}, "https://showcase.example")

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "https://showcase.example", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("unlisted origin is refused", func(t *testing.T) {
		w := preflight([]string{"https://showcase.example"}, "https://evil.example")

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})
}

type stubValidator struct {
	identity *Identity
	err      error
}

func (s *stubValidator) ValidateToken(token string) (*Identity, error) {
	return s.identity, s.err
}

func TestAuth(t *testing.T) {
	userID := uuid.New()
	valid := &stubValidator{identity: &Identity{UserID: userID, Email: "ada@uni.edu"}}
	invalid := &stubValidator{err: errors.New("expired")}

	newRouter := func(mw gin.HandlerFunc) *gin.Engine {
		router := gin.New()
		router.Use(mw)
		router.GET("/me", func(c *gin.Context) {
			id, ok := UserID(c)
			if !ok {
				c.String(http.StatusOK, "anonymous")
				return
			}
			assert.Equal(t, id, requestctx.UserID(c.Request.Context()))
			c.String(http.StatusOK, id.String())
		})
		return router
	}

	tests := []struct {
		name       string
		mw         gin.HandlerFunc
		header     string
		wantStatus int
		wantBody   string
	}{
		{"required with valid token", RequireAuth(valid), "Bearer good", http.StatusOK, userID.String()},
		{"required without token", RequireAuth(valid), "", http.StatusUnauthorized, "Authorization header required"},
		{"required with non-bearer scheme", RequireAuth(valid), "Basic abc", http.StatusUnauthorized, "unauthorized"},
		{"required with invalid token", RequireAuth(invalid), "Bearer bad", http.StatusUnauthorized, "Invalid or expired token"},
		{"optional without token", OptionalAuth(valid), "", http.StatusOK, "anonymous"},
		{"optional with invalid token", OptionalAuth(invalid), "Bearer bad", http.StatusOK, "anonymous"},
		{"optional with valid token", OptionalAuth(valid), "Bearer good", http.StatusOK, userID.String()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/me", nil)
			if tt.header != "" {
				req.Header.Set(AuthorizationHeader, tt.header)
			}
			w := httptest.NewRecorder()
			newRouter(tt.mw).ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

func TestMustUserID(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	_, ok := MustUserID(c)
	assert.False(t, ok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.True(t, c.IsAborted())
}

type countingLimiter struct {
	hits map[string]int
	err  error
}

func (l *countingLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	if l.err != nil {
		return false, l.err
	}
	l.hits[key]++
	return l.hits[key] <= limit, nil
}

func (l *countingLimiter) Remaining(ctx context.Context, key string, limit int, window time.Duration) (int, error) {
	return max(limit-l.hits[key], 0), nil
}

func TestRateLimit(t *testing.T) {
	newRouter := func(limiter *countingLimiter) *gin.Engine {
		router := gin.New()
		var mw gin.HandlerFunc
		if limiter == nil {
			mw = RateLimit(nil, RateLimitConfig{Scope: "collaborate", Limit: 2, Window: time.Minute}, nil)
		} else {
			mw = RateLimit(limiter, RateLimitConfig{Scope: "collaborate", Limit: 2, Window: time.Minute}, logger.New(&logger.Config{Output: &bytes.Buffer{}}))
		}
		router.POST("/collaborate", mw, func(c *gin.Context) {
			c.Status(http.StatusCreated)
		})
		return router
	}

	t.Run("blocks after limit", func(t *testing.T) {
		limiter := &countingLimiter{hits: map[string]int{}}
		router := newRouter(limiter)

		codes := make([]int, 0, 3)
		for i := 0; i < 3; i++ {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest("POST", "/collaborate", nil))
			codes = append(codes, w.Code)
			if i == 2 {
				assert.Equal(t, "60", w.Header().Get(RetryAfter))
				assert.Contains(t, w.Body.String(), "rate_limited")
			}
		}

		assert.Equal(t, []int{http.StatusCreated, http.StatusCreated, http.StatusTooManyRequests}, codes)
		assert.Equal(t, 3, limiter.hits["collaborate:ip:192.0.2.1"])
	})

	t.Run("fails open on limiter error", func(t *testing.T) {
		router := newRouter(&countingLimiter{hits: map[string]int{}, err: errors.New("redis down")})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("POST", "/collaborate", nil))
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("nil limiter disables limiting", func(t *testing.T) {
		router := newRouter(nil)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("POST", "/collaborate", nil))
		assert.Equal(t, http.StatusCreated, w.Code)
	})
}

func TestMetrics(t *testing.T) {
	m := metrics.New("test", prometheus.NewRegistry())

	router := gin.New()
	router.Use(Metrics(m))
	router.GET("/api/v1/projects/:id", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/projects/abc", nil))

	assert.Equal(t, float64(1), testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/api/v1/projects/:id", "200")))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.HTTPRequestsInFlight))
}
