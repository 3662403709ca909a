package middleware

import (
	"time"

	"examwatch/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// quietPaths are polled by probes and only logged on failure.
var quietPaths = map[string]bool{
	"/health":      true,
	"/ping":        true,
	"/favicon.ico": true,
}

// GinZapLogger logs each request through the shared zap logger.
func GinZapLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.Request.URL.Path
		status := c.Writer.Status()
		if quietPaths[path] && status < 500 {
			return
		}

		fields := []zap.Field{
			zap.String("request_id", c.GetString(ContextRequestID)),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("ip", c.ClientIP()),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.Int("response_size", c.Writer.Size()),
		}
		if c.Request.URL.RawQuery != "" {
			fields = append(fields, zap.String("query", c.Request.URL.RawQuery))
		}
		if gin.Mode() == gin.DebugMode {
			fields = append(fields, zap.String("user_agent", c.Request.UserAgent()))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("error", c.Errors.String()))
		}

		switch {
		case status >= 500:
			logger.Error("Internal server error", fields...)
		case status >= 400:
			logger.Warn("Client request error", fields...)
		default:
			logger.Debug("HTTP request completed", fields...)
		}
	}
}
