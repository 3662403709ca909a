package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"examwatch/pkg/response"

	"github.com/gin-gonic/gin"
)

// Common error type definitions
var (
	ErrInvalidParam       = errors.New("invalid parameter")
	ErrServiceUnavailable = errors.New("service unavailable")
)

// APIError carries the status code a handler failure maps to.
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("API Error (Code: %d, Message: %s): %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("API Error (Code: %d, Message: %s)", e.Code, e.Message)
}

// Unwrap supports error wrapping
func (e *APIError) Unwrap() error {
	return e.Err
}

// NewBadRequestError creates a 400 Bad Request error
func NewBadRequestError(message string, err error) *APIError {
	return &APIError{Code: http.StatusBadRequest, Message: message, Err: err}
}

// NewServiceUnavailableError creates a 503 Service Unavailable error
func NewServiceUnavailableError(message string, err error) *APIError {
	return &APIError{Code: http.StatusServiceUnavailable, Message: message, Err: err}
}

// NewInternalServerError creates a 500 Internal Server Error
func NewInternalServerError(message string, err error) *APIError {
	return &APIError{Code: http.StatusInternalServerError, Message: message, Err: err}
}

// HandleError writes err through the shared error envelope.
func HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		response.Error(c, apiErr.Code, apiErr.Message, apiErr.Err)
		return
	}
	response.Error(c, http.StatusInternalServerError, "Internal Server Error", err)
}
