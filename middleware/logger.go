package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/gurman-mavi/Project-Voyage-AI-sub001/logcolors"
)

const (
	RequestIDHeader = "X-Request-Id"
	RequestIDKey    = "request_id"
)

// RequestID reuses an incoming X-Request-Id or mints one, and echoes it back.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(RequestIDHeader)
		if rid == "" || len(rid) > 128 {
			rid = uuid.New().String()
		}
		c.Set(RequestIDKey, rid)
		c.Header(RequestIDHeader, rid)
		c.Next()
	}
}

// RequestLogger logs one line per request once the handler chain is done.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := log.Fields{
			"request_id": c.GetString(RequestIDKey),
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     status,
			"latency_ms": time.Since(start).Milliseconds(),
			"client_ip":  c.ClientIP(),
			"bytes":      c.Writer.Size(),
		}
		entry := log.WithFields(fields)
		msg := getStatusColor(status) + c.Request.Method + " " + c.Request.URL.Path + logcolors.Reset

		switch {
		case status >= 500:
			entry.Errorf("%s %s", logcolors.LogHTTP, msg)
		case status >= 400:
			entry.Warnf("%s %s", logcolors.LogHTTP, msg)
		default:
			entry.Infof("%s %s", logcolors.LogHTTP, msg)
		}
	}
}

func getStatusColor(status int) string {
	switch {
	case status >= 500:
		return logcolors.Red
	case status >= 400:
		return logcolors.Yellow
	case status >= 300:
		return logcolors.Cyan
	case status >= 200:
		return logcolors.Green
	default:
		return logcolors.Reset
	}
}
