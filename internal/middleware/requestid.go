package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RequestIDKey    = "request_id"
	RequestIDHeader = "X-Request-ID"

	maxRequestIDLen = 128
)

type requestIDCtxKey struct{}

// RequestID is a Gin middleware that tags every request with an id.
//
// Behavior:
//   - Reuses a well-formed inbound X-Request-ID (printable ASCII, at most
//     128 bytes), so ids survive proxies; otherwise generates a UUID v4.
//   - Stores it in the Gin context under "request_id" and in the request
//     context, where services read it with RequestIDFrom.
//   - Echoes it in the X-Request-ID response header.
//
// Usage:
//
//	router := gin.New()
//	router.Use(middleware.RequestID())
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if !validRequestID(id) {
			id = uuid.NewString()
		}

		c.Set(RequestIDKey, id)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), requestIDCtxKey{}, id))
		c.Writer.Header().Set(RequestIDHeader, id)

		c.Next()
	}
}

// RequestIDFrom returns the request id stored by RequestID, or "".
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDCtxKey{}).(string)
	return id
}

func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLen {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < 0x21 || id[i] > 0x7e {
			return false
		}
	}
	return true
}
