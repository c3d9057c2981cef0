package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quote-digest/internal/adapters/http/dto"
	"github.com/jsamuelsen/quote-digest/internal/ports"
)

// SubmissionHandler handles quote submission endpoints.
type SubmissionHandler struct {
	service ports.SubmissionService
}

// NewSubmissionHandler creates a new submission handler.
func NewSubmissionHandler(service ports.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{service: service}
}

// Submit handles POST /api/v1/submissions.
// Accepts either manually entered quotes or an uploaded file and stores them
// for the user identified by email.
//
// @Summary Submit quotes
// @Tags submissions
// @Accept json
// @Produce json
// @Param body body dto.SubmissionRequest true "quotes or file"
// @Success 200 {object} dto.SubmissionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/v1/submissions [post]
func (h *SubmissionHandler) Submit(c *gin.Context) {
	var req dto.SubmissionRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		_ = c.Error(dto.BindingError(err))
		return
	}

	sub, err := req.ToDomain()
	if err != nil {
		_ = c.Error(err)
		return
	}

	res, err := h.service.Submit(c.Request.Context(), sub)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSubmissionResponse(res))
}

// RegisterSubmissionRoutes registers submission routes on the given router group.
func (h *SubmissionHandler) RegisterSubmissionRoutes(rg *gin.RouterGroup) {
	rg.POST("/submissions", h.Submit)
}
