package middleware

import (
	"net/http"

	"examwatch/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorHandler logs errors attached with c.Error and answers 500 when the
// handler did not write a response itself.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last()

		logger.Error("Request error",
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.Error(err.Err),
			zap.String("request_id", c.GetString(ContextRequestID)),
			zap.Int("status", c.Writer.Status()),
		)

		if c.Writer.Written() {
			return
		}
		status := c.Writer.Status()
		if status == 0 || status == http.StatusOK {
			status = http.StatusInternalServerError
		}
		c.JSON(status, gin.H{
			"error":      true,
			"message":    http.StatusText(status),
			"request_id": c.GetString(ContextRequestID),
		})
	}
}

// Recovery turns a handler panic into a logged 500.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("Panic recovered",
			zap.Any("error", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.String("request_id", c.GetString(ContextRequestID)),
			zap.Stack("stack"),
		)

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":      true,
			"message":    "Internal Server Error",
			"request_id": c.GetString(ContextRequestID),
		})
	})
}
