package middleware

import (
	"strconv"
	"time"

	"github.com/epeers/preflists/internal/metrics"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const (
	RequestIDHeader = "X-Request-ID"
	RequestIDKey    = "request_id"
)

// RequestID propagates the caller's X-Request-ID or assigns a new one
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(RequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// GetRequestID retrieves the request ID from the context
func GetRequestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}

// Metrics records request counts and latency by route template, so
// /lists/US and /lists/CH share one series.
func Metrics(m *metrics.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		elapsed := time.Since(start)
		m.ObserveHTTP(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), elapsed)

		log.WithFields(log.Fields{
			"request_id": GetRequestID(c),
			"method":     c.Request.Method,
			"route":      route,
			"status":     c.Writer.Status(),
			"elapsed":    elapsed,
		}).Debug("Request handled")
	}
}
