package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("RequestID", "req-1")

	Error(c, http.StatusServiceUnavailable, "history unavailable", errors.New("database is locked"))

	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body[FieldError])
	assert.Equal(t, "history unavailable", body[FieldMessage])
	assert.Equal(t, float64(http.StatusServiceUnavailable), body[FieldCode])
	assert.Equal(t, "database is locked", body[FieldDetails])
	assert.Equal(t, "req-1", body[FieldRequestID])
	assert.True(t, c.IsAborted())
}

func TestErrorWithoutCause(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Error(c, http.StatusBadRequest, "invalid limit", nil)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotContains(t, body, FieldDetails)
	assert.NotContains(t, body, FieldRequestID)
}
