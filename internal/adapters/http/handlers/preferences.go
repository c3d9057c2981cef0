package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quote-digest/internal/adapters/http/dto"
	"github.com/jsamuelsen/quote-digest/internal/ports"
)

// PreferencesHandler handles digest delivery preference endpoints.
type PreferencesHandler struct {
	service ports.PreferencesService
}

// NewPreferencesHandler creates a new preferences handler.
func NewPreferencesHandler(service ports.PreferencesService) *PreferencesHandler {
	return &PreferencesHandler{service: service}
}

// Save handles PUT /api/v1/preferences.
//
// @Summary Save delivery preferences
// @Tags preferences
// @Accept json
// @Produce json
// @Param body body dto.PreferencesRequest true "preferences"
// @Success 200 {object} dto.PreferencesResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/v1/preferences [put]
func (h *PreferencesHandler) Save(c *gin.Context) {
	var req dto.PreferencesRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		_ = c.Error(dto.BindingError(err))
		return
	}

	prefs, err := h.service.SavePreferences(c.Request.Context(), req.Email, req.ToDomain())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPreferencesResponse(prefs))
}

// RegisterPreferencesRoutes registers preferences routes on the given router group.
func (h *PreferencesHandler) RegisterPreferencesRoutes(rg *gin.RouterGroup) {
	rg.PUT("/preferences", h.Save)
}
