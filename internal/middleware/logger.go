package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/volseason/internal/domain/dto"
	"github.com/guttosm/volseason/internal/logger"
)

// RequestLogger is a Gin middleware that logs method, path, status code,
// request latency, and request ID (if available).
//
// Usage:
//
//	router := gin.New()
//	router.Use(middleware.RequestID(), middleware.RequestLogger())
//
// Example log output:
//
//	{"component":"http","request_id":"123e...","method":"GET","path":"/api/v1/volume/SPY","status":200,"latency_ms":15}
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method
		path := c.Request.URL.Path

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		rid, _ := c.Get(RequestIDKey)

		log := logger.With("http")
		ev := log.Info()
		if status >= http.StatusInternalServerError {
			ev = log.Error()
		}
		ev.Str("request_id", toString(rid)).
			Str("method", method).
			Str("path", path).
			Int("status", status).
			Int64("latency_ms", latency.Milliseconds()).
			Str("client_ip", c.ClientIP()).
			Msg("http_request")
	}
}

func toString(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// client represents a rate-limited client with request count and window start.
type client struct {
	windowStart time.Time
	count       int
}

// rateLimiter is a fixed-window, in-memory, per client IP counter.
// NOTE: state is per process; multi-instance deployments need a shared store.
type rateLimiter struct {
	mu      sync.Mutex
	clients map[string]*client
	limit   int
	window  time.Duration
	now     func() time.Time
}

func (l *rateLimiter) allow(ip string) bool {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	cl, ok := l.clients[ip]
	if !ok || now.Sub(cl.windowStart) > l.window {
		l.clients[ip] = &client{windowStart: now, count: 1}
		l.sweep(now)
		return true
	}
	cl.count++
	return cl.count <= l.limit
}

// sweep drops clients whose window has long passed. Caller holds mu.
func (l *rateLimiter) sweep(now time.Time) {
	for ip, cl := range l.clients {
		if now.Sub(cl.windowStart) > 2*l.window {
			delete(l.clients, ip)
		}
	}
}

// RateLimiter limits each client IP to limit requests per window.
// A non-positive limit disables limiting.
//
// Response when limit exceeded:
//
//	HTTP/1.1 429 Too Many Requests
//	{"message": "rate limit exceeded", "timestamp": "..."}
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	if limit <= 0 || window <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	l := &rateLimiter{
		clients: make(map[string]*client),
		limit:   limit,
		window:  window,
		now:     time.Now,
	}
	return func(c *gin.Context) {
		if !l.allow(c.ClientIP()) {
			c.Header("Retry-After", retryAfter(window))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponse("rate limit exceeded", nil))
			return
		}
		c.Next()
	}
}

func retryAfter(window time.Duration) string {
	return strconv.Itoa(max(int(window.Round(time.Second)/time.Second), 1))
}
