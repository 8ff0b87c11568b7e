package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/model"
	"backend/internal/service"
	"backend/pkg/pagination"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type VerificationHandler struct {
	verificationService service.VerificationService
}

func NewVerificationHandler(verificationService service.VerificationService) *VerificationHandler {
	return &VerificationHandler{verificationService: verificationService}
}

func (h *VerificationHandler) RegisterRoutes(router *gin.RouterGroup) {
	verifications := router.Group("/api/verifications")
	{
		verifications.GET("", middleware.RequireAuth(), h.ListVerifications)
		verifications.POST("", middleware.RequireRole(model.RoleAdmin, model.RoleVerifier), h.CreateVerification)
	}
}

// ListVerifications returns verification records, newest first
// @Summary      List verifications
// @Tags         verifications
// @Security     BearerAuth
// @Produce      json
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Items per page (default 20)"
// @Success      200    {object}  response.Response{data=object}
// @Failure      500    {object}  response.Response
// @Router       /api/verifications [get]
func (h *VerificationHandler) ListVerifications(c *gin.Context) {
	params := pagination.Parse(c)

	verifications, total, err := h.verificationService.ListVerifications(c.Request.Context(), params.Page, params.Limit)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"verifications": verifications,
		"total":         total,
		"page":          params.Page,
		"limit":         params.Limit,
	}))
}

// CreateVerification records a physical check of an asset
// @Summary      Verify asset
// @Tags         verifications
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.VerificationRequest  true  "Verification Payload"
// @Success      201      {object}  response.Response{data=model.Verification}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/verifications [post]
func (h *VerificationHandler) CreateVerification(c *gin.Context) {
	var req service.VerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	verification, err := h.verificationService.CreateVerification(c.Request.Context(), c.GetString("userID"), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, verification))
}
