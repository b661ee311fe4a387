package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/volseason/internal/domain/dto"
	"github.com/guttosm/volseason/internal/logger"
)

// RecoveryMiddleware turns a panic in a handler into a 500 JSON
// dto.ErrorResponse. The panic value, stack, route and request id are
// logged on the "http" component; the stack never reaches the client.
//
// Example:
//
//	router := gin.New()
//	router.Use(middleware.RequestID(), middleware.RecoveryMiddleware())
func RecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			if r == http.ErrAbortHandler {
				panic(r)
			}

			logger.With("http").Error().
				Str("request_id", RequestIDFrom(c.Request.Context())).
				Str("method", c.Request.Method).
				Str("path", c.FullPath()).
				Str("panic", fmt.Sprint(r)).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")

			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse("Internal server error", nil))
		}()

		c.Next()
	}
}
