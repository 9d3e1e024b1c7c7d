// Package http provides HTTP handlers for survey record ingestion.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tehnczon/projectecho/internal/httputil"
	"github.com/tehnczon/projectecho/internal/survey/http/dto"
	"github.com/tehnczon/projectecho/internal/survey/usecase"
)

// RecordHandler handles survey record HTTP requests
type RecordHandler struct {
	surveyUseCase usecase.UseCase
	logger        *slog.Logger
}

// NewRecordHandler creates a new RecordHandler
func NewRecordHandler(surveyUseCase usecase.UseCase, logger *slog.Logger) *RecordHandler {
	return &RecordHandler{
		surveyUseCase: surveyUseCase,
		logger:        logger,
	}
}

// CreateHandler ingests a raw survey record.
// POST /v1/survey-records - Returns 201 Created with the stored record.
func (h *RecordHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateRecordRequest

	// Parse and bind JSON
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	// Call use case
	record, err := h.surveyUseCase.CreateRecord(c.Request.Context(), dto.ToCreateRecordInput(req))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.ToRecordResponse(record))
}

// GetHandler retrieves a survey record by ID.
// GET /v1/survey-records/:id - Returns 200 OK with the record.
func (h *RecordHandler) GetHandler(c *gin.Context) {
	recordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid record ID format: must be a valid UUID"),
			h.logger)
		return
	}

	record, err := h.surveyUseCase.GetRecord(c.Request.Context(), recordID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToRecordResponse(record))
}
