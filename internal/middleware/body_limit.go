package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// MaxAudioBodyBytes bounds request bodies. Base64-encoded voice clips get
// large; 50 MB covers the longest clips browser clients send.
const MaxAudioBodyBytes = 50 << 20

// BodySizeLimit caps how much of a request body handlers will read.
func (m Middleware) BodySizeLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxAudioBodyBytes)
		c.Next()
	}
}
