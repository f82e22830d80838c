package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const RequestIdKey = "request_id"

// RequestId tags every request with a correlation id, echoed in the
// X-Request-Id response header and available to handlers via the context.
func RequestId() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Request.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(RequestIdKey, id)
		c.Writer.Header().Set("X-Request-Id", id)
		c.Next()
	}
}
