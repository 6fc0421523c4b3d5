package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	pkgLog "voice-order-assistant/pkg/log"
)

const RequestIDHeader = "X-Request-ID"

// RequestID assigns every request an id, echoes it in the response header
// and threads it through the context for log correlation.
func (m Middleware) RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(RequestIDHeader)
		if rid == "" {
			rid = uuid.NewString()
		}

		c.Header(RequestIDHeader, rid)
		c.Request = c.Request.WithContext(pkgLog.ContextWithRequestID(c.Request.Context(), rid))

		c.Next()
	}
}
