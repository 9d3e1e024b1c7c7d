// Package http provides HTTP handlers for identity submission.
package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tehnczon/projectecho/internal/httputil"
	"github.com/tehnczon/projectecho/internal/identity/domain"
	"github.com/tehnczon/projectecho/internal/identity/http/dto"
	"github.com/tehnczon/projectecho/internal/identity/usecase"
)

// IdentityHandler handles identity submission HTTP requests
type IdentityHandler struct {
	identityUseCase usecase.UseCase
	logger          *slog.Logger
}

// NewIdentityHandler creates a new IdentityHandler
func NewIdentityHandler(identityUseCase usecase.UseCase, logger *slog.Logger) *IdentityHandler {
	return &IdentityHandler{
		identityUseCase: identityUseCase,
		logger:          logger,
	}
}

// SubmitHandler encrypts and stores a submitted phone number.
// POST /v1/identities - Returns 200 OK with {success, encrypted, phoneHmac}.
func (h *IdentityHandler) SubmitHandler(c *gin.Context) {
	var req dto.SubmitIdentityRequest

	// Parse and bind JSON. An empty body is treated as a missing phone
	// number, not a malformed request.
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httputil.HandleValidationErrorGin(c, err, h.logger)
			return
		}
	}

	// Validate request
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	// Call use case
	identity, err := h.identityUseCase.Submit(c.Request.Context(), req.PhoneNumber)
	if err != nil {
		// Contract body for a missing phone number
		if errors.Is(err, domain.ErrMissingPhoneNumber) {
			c.JSON(http.StatusBadRequest, httputil.ErrorResponse{Error: "Missing phone number"})
			return
		}
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToSubmitIdentityResponse(identity))
}
