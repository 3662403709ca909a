package response

import (
	"examwatch/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Error response field names
const (
	FieldError     = "error"
	FieldMessage   = "message"
	FieldCode      = "code"
	FieldDetails   = "details"
	FieldRequestID = "request_id"
)

// JSON writes data with the given status code.
func JSON(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// Error writes the error envelope. err, when set, is logged and its text
// is returned as details.
func Error(c *gin.Context, statusCode int, message string, err error) {
	body := gin.H{
		FieldError:   true,
		FieldMessage: message,
		FieldCode:    statusCode,
	}
	if id := c.GetString("RequestID"); id != "" {
		body[FieldRequestID] = id
	}

	if err != nil {
		body[FieldDetails] = err.Error()
		logger.Error("API error",
			zap.String("message", message),
			zap.Error(err),
			zap.Int("status_code", statusCode))
	}

	c.AbortWithStatusJSON(statusCode, body)
}
