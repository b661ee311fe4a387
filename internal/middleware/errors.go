package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/volseason/internal/domain/dto"
)

// ErrorHandler turns errors attached with c.Error into a JSON
// dto.ErrorResponse once the handler chain has run. It does nothing if
// the response was already written.
//
// An attached dto.ErrorResponse is sent as is; anything else becomes a
// 500 with the error text as details.
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}

	err := c.Errors.Last().Err
	status := c.Writer.Status()
	if status < http.StatusBadRequest {
		status = http.StatusInternalServerError
	}

	var resp dto.ErrorResponse
	if !errors.As(err, &resp) {
		resp = dto.NewErrorResponse("Internal server error", err)
	}
	c.JSON(status, resp)
}

// AbortWithError stops the chain and writes a dto.ErrorResponse with the
// given status.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	resp := dto.NewErrorResponse(message, err)
	_ = c.Error(resp)
	c.AbortWithStatusJSON(status, resp)
}
