// Package middleware contains the HTTP middleware chain: request id,
// logging, recovery, metrics, CORS, rate limiting, language negotiation
// and bearer authentication.
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader is the header carrying the request correlation id.
	RequestIDHeader = "X-Request-ID"
	// RequestIDContextKey stores the request id in the Gin context.
	RequestIDContextKey = "request_id"
)

// RequestID attaches a correlation id to every request. A client-supplied
// X-Request-ID is honored, otherwise a fresh UUID is generated. The id is
// echoed back on the response so logs can be matched to client reports.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set(RequestIDContextKey, requestID)
		c.Header(RequestIDHeader, requestID)

		c.Next()
	}
}

// GetRequestID extracts the request id from the Gin context.
func GetRequestID(c *gin.Context) string {
	if id, exists := c.Get(RequestIDContextKey); exists {
		if strID, ok := id.(string); ok {
			return strID
		}
	}
	return ""
}
