package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthCheck reports liveness plus the poller and history checks.
// History failures turn the answer into 503.
func (h *HandlerService) HealthCheck(c *gin.Context) {
	checks := map[string]interface{}{
		"poller":  h.checkPollerHealth(),
		"history": h.checkHistoryHealth(c),
	}

	health := map[string]interface{}{
		"status":    "healthy",
		"service":   ServiceName,
		"timestamp": getCurrentTimestamp(),
		"checks":    checks,
	}

	for _, check := range checks {
		if checkMap, ok := check.(map[string]interface{}); ok && checkMap["status"] == "unhealthy" {
			health["status"] = "unhealthy"
			c.JSON(http.StatusServiceUnavailable, health)
			return
		}
	}

	c.JSON(http.StatusOK, health)
}

// GetStatus returns the poller status and the history summary.
func (h *HandlerService) GetStatus(c *gin.Context) {
	status := map[string]interface{}{
		"service":   ServiceName,
		"version":   ServiceVersion,
		"status":    "running",
		"timestamp": getCurrentTimestamp(),
		"uptime":    time.Since(h.startedAt).Round(time.Second).String(),
	}

	if h.poller != nil {
		status["poller"] = h.poller.Status()
	}
	if h.history != nil {
		summary, err := h.history.Summarize(c.Request.Context())
		if err != nil {
			HandleError(c, NewServiceUnavailableError("Failed to summarize history", err))
			return
		}
		status["history"] = summary
	}

	c.JSON(http.StatusOK, status)
}

// GetAppConfig returns the running configuration with secrets removed.
func (h *HandlerService) GetAppConfig(c *gin.Context) {
	c.JSON(http.StatusOK, h.sanitizeConfig())
}

func (h *HandlerService) checkPollerHealth() map[string]interface{} {
	if h.poller == nil {
		return map[string]interface{}{
			"status": "unavailable",
			"error":  "poller not attached",
		}
	}

	st := h.poller.Status()
	return map[string]interface{}{
		"status":     "healthy",
		"state":      st.State,
		"runs":       st.Runs,
		"failures":   st.Failures,
		"last_error": st.LastError,
	}
}

func (h *HandlerService) checkHistoryHealth(c *gin.Context) map[string]interface{} {
	if h.history == nil {
		return map[string]interface{}{
			"status": "unavailable",
			"error":  "history disabled",
		}
	}

	summary, err := h.history.Summarize(c.Request.Context())
	if err != nil {
		return map[string]interface{}{
			"status": "unhealthy",
			"error":  err.Error(),
		}
	}
	return map[string]interface{}{
		"status":  "healthy",
		"records": summary.Total,
	}
}

// sanitizeConfig drops credentials and the bot token.
func (h *HandlerService) sanitizeConfig() map[string]interface{} {
	cfg := h.config
	if cfg == nil {
		return map[string]interface{}{}
	}

	sanitized := map[string]interface{}{}
	if cfg.Site != nil {
		sanitized["site"] = map[string]interface{}{
			"base_url":      cfg.Site.BaseURL,
			"login_enabled": cfg.Site.LoginEnabled,
			"country_id":    cfg.Site.CountryID,
			"location":      cfg.Site.Location,
			"test_type":     cfg.Site.TestType,
			"venue_name":    cfg.Site.VenueName,
			"venue_id":      cfg.Site.VenueID,
		}
	}
	if cfg.Target != nil {
		sanitized["target"] = cfg.Target
	}
	if cfg.Monitor != nil {
		sanitized["monitor"] = cfg.Monitor
	}
	if cfg.Browser != nil {
		sanitized["browser"] = map[string]interface{}{
			"headless":      cfg.Browser.Headless,
			"implicit_wait": cfg.Browser.ImplicitWait,
		}
	}
	if cfg.Telegram != nil {
		sanitized["telegram"] = map[string]interface{}{
			"enabled":    cfg.Telegram.Enabled,
			"configured": cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != "",
		}
	}
	return sanitized
}
