package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/monitoring-admin-api/internal/access"
	"github.com/noah-isme/monitoring-admin-api/internal/models"
	appErrors "github.com/noah-isme/monitoring-admin-api/pkg/errors"
	"github.com/noah-isme/monitoring-admin-api/pkg/response"
)

type settingsService interface {
	Get(ctx context.Context) (models.GlobalSettings, error)
	Invalidate(ctx context.Context) error
}

// SettingsHandler exposes the global settings the list pages use.
type SettingsHandler struct {
	settings settingsService
}

// NewSettingsHandler constructs a SettingsHandler.
func NewSettingsHandler(settings settingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// Refresh godoc
// @Summary Reload global settings
// @Description Drop the cached settings and return the values read from the settings table
// @Tags Settings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /settings/refresh [post]
func (h *SettingsHandler) Refresh(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	if !guard.CheckPermission(subjectFromClaims(claims), access.UIAdministrationGeneral) {
		response.Error(c, appErrors.Clone(appErrors.ErrForbidden, ""))
		return
	}

	ctx := c.Request.Context()
	if err := h.settings.Invalidate(ctx); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "settings cache unavailable"))
		return
	}
	settings, err := h.settings.Get(ctx)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, settings, nil)
}
