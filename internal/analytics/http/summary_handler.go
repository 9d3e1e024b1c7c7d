// Package http provides HTTP handlers for analytics reads.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tehnczon/projectecho/internal/analytics/http/dto"
	"github.com/tehnczon/projectecho/internal/analytics/usecase"
	"github.com/tehnczon/projectecho/internal/httputil"
)

// SummaryHandler handles analytics summary HTTP requests
type SummaryHandler struct {
	analyticsUseCase usecase.UseCase
	logger           *slog.Logger
}

// NewSummaryHandler creates a new SummaryHandler
func NewSummaryHandler(analyticsUseCase usecase.UseCase, logger *slog.Logger) *SummaryHandler {
	return &SummaryHandler{
		analyticsUseCase: analyticsUseCase,
		logger:           logger,
	}
}

// GetHandler returns the current aggregate counters.
// GET /v1/analytics/summary - Returns 200 OK with the summary.
func (h *SummaryHandler) GetHandler(c *gin.Context) {
	summary, err := h.analyticsUseCase.GetSummary(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToSummaryResponse(summary))
}
