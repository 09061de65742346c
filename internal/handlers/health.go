package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"lookout/internal/logic"
	"lookout/pkg/logging"
)

// Health serves the aggregated health report over HTTP.
type Health struct {
	checker *logic.Checker
	logger  logging.Logger
}

func NewHealth(checker *logic.Checker, logger logging.Logger) *Health {
	return &Health{checker: checker, logger: logger}
}

// GetHealth runs the full probe set and writes the report: 200 when
// healthy, 503 when any check failed, 500 when aggregation itself
// fails.
func (h *Health) GetHealth(c *gin.Context) {
	report, err := h.report(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("Health report aggregation failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": "error",
			"error":  "failed to run health checks",
		})
		return
	}

	code := http.StatusOK
	if report.Status == logic.StatusUnhealthy {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, report)
}

// PostHealth rejects single-service check requests and otherwise
// behaves like GetHealth.
func (h *Health) PostHealth(c *gin.Context) {
	var req struct {
		Service string `json:"service"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
	}
	if req.Service != "" {
		c.JSON(http.StatusNotImplemented, gin.H{
			"error": "single service health checks are not implemented",
		})
		return
	}

	h.GetHealth(c)
}

// report shields the transport from a hard fault inside the engine; a
// per-probe failure is an ordinary Report, this catches the engine
// itself blowing up.
func (h *Health) report(ctx context.Context) (report logic.Report, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("health check aggregation panicked: %v", r)
		}
	}()
	return h.checker.Report(ctx), nil
}
