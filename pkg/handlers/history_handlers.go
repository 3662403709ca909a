package handlers

import (
	"net/http"
	"strconv"

	"examwatch/pkg/history"

	"github.com/gin-gonic/gin"
)

// GetCycles lists recent cycle outcomes, newest first.
// Query: limit (1..history.MaxLimit, default history.DefaultLimit).
func (h *HandlerService) GetCycles(c *gin.Context) {
	if !h.IsHistoryAvailable() {
		HandleError(c, NewServiceUnavailableError("Cycle history is disabled", ErrServiceUnavailable))
		return
	}

	limit := history.DefaultLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			HandleError(c, NewBadRequestError("limit must be a positive integer", ErrInvalidParam))
			return
		}
		limit = n
	}

	records, err := h.history.Recent(c.Request.Context(), limit)
	if err != nil {
		HandleError(c, NewInternalServerError("Failed to load cycle history", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cycles": records,
		"count":  len(records),
	})
}
