package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/model"
	"backend/internal/service"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type SettingsHandler struct {
	settingsService service.SettingsService
}

func NewSettingsHandler(settingsService service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

func (h *SettingsHandler) RegisterRoutes(router *gin.RouterGroup) {
	settings := router.Group("/api/settings", middleware.RequireRole(model.RoleAdmin))
	{
		settings.GET("/email", h.GetEmailSettings)
		settings.PUT("/email", h.UpdateEmailSettings)
		settings.POST("/email/test", h.SendTestEmail)
	}
}

// GetEmailSettings returns the stored SMTP configuration (password redacted)
// @Summary      Get email settings
// @Tags         settings
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=model.EmailSettings}
// @Failure      404  {object}  response.Response
// @Router       /api/settings/email [get]
func (h *SettingsHandler) GetEmailSettings(c *gin.Context) {
	settings, err := h.settingsService.GetEmailSettings(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, settings))
}

// UpdateEmailSettings replaces the SMTP configuration
// @Summary      Update email settings
// @Description  Saves the SMTP configuration used for allocation notices. An empty password keeps the stored one.
// @Tags         settings
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.EmailSettingsRequest  true  "Email Settings Payload"
// @Success      200      {object}  response.Response{data=model.EmailSettings}
// @Failure      400      {object}  response.Response
// @Router       /api/settings/email [put]
func (h *SettingsHandler) UpdateEmailSettings(c *gin.Context) {
	var req service.EmailSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	settings, err := h.settingsService.UpdateEmailSettings(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, settings))
}

// SendTestEmail sends a test message with the stored SMTP settings
// @Summary      Send test email
// @Tags         settings
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      object{to=string}  true  "Recipient"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Router       /api/settings/email/test [post]
func (h *SettingsHandler) SendTestEmail(c *gin.Context) {
	var req struct {
		To string `json:"to" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	if err := h.settingsService.SendTestEmail(c.Request.Context(), req.To); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "test email sent"}))
}
