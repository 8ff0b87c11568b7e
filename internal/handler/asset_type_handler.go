package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/model"
	"backend/internal/service"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type AssetTypeHandler struct {
	assetTypeService service.AssetTypeService
}

func NewAssetTypeHandler(assetTypeService service.AssetTypeService) *AssetTypeHandler {
	return &AssetTypeHandler{assetTypeService: assetTypeService}
}

func (h *AssetTypeHandler) RegisterRoutes(router *gin.RouterGroup) {
	types := router.Group("/api/asset-types")
	{
		types.GET("", middleware.RequireAuth(), h.ListAssetTypes)
		types.POST("", middleware.RequireRole(model.RoleAdmin), h.CreateAssetType)
		types.PUT("/:id", middleware.RequireRole(model.RoleAdmin), h.UpdateAssetType)
		types.POST("/import", middleware.RequireRole(model.RoleAdmin), h.ImportAssetTypes)
	}
}

// ListAssetTypes returns all asset types with their schemas
// @Summary      List asset types
// @Tags         asset-types
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]model.AssetType}
// @Failure      500  {object}  response.Response
// @Router       /api/asset-types [get]
func (h *AssetTypeHandler) ListAssetTypes(c *gin.Context) {
	types, err := h.assetTypeService.ListAssetTypes(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, types))
}

// CreateAssetType creates a category with a user-defined attribute schema
// @Summary      Create asset type
// @Tags         asset-types
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.AssetTypeRequest  true  "Create Asset Type Payload"
// @Success      201      {object}  response.Response{data=model.AssetType}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/asset-types [post]
func (h *AssetTypeHandler) CreateAssetType(c *gin.Context) {
	var req service.AssetTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	assetType, err := h.assetTypeService.CreateAssetType(c.Request.Context(), c.GetString("userID"), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, assetType))
}

// UpdateAssetType updates an asset type's name, description, or schema
// @Summary      Update asset type
// @Tags         asset-types
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                    true  "Asset Type ID"
// @Param        payload  body      service.AssetTypeRequest  true  "Update Asset Type Payload"
// @Success      200      {object}  response.Response{data=model.AssetType}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/asset-types/{id} [put]
func (h *AssetTypeHandler) UpdateAssetType(c *gin.Context) {
	var req service.AssetTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	assetType, err := h.assetTypeService.UpdateAssetType(c.Request.Context(), c.GetString("userID"), c.Param("id"), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, assetType))
}

// ImportAssetTypes bulk-creates asset types, skipping bad rows
// @Summary      Import asset types
// @Tags         asset-types
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      []service.AssetTypeRequest  true  "Asset Type Rows"
// @Success      200      {object}  response.Response{data=service.ImportResult}
// @Failure      400      {object}  response.Response
// @Router       /api/asset-types/import [post]
func (h *AssetTypeHandler) ImportAssetTypes(c *gin.Context) {
	var rows []service.AssetTypeRequest
	if err := c.ShouldBindJSON(&rows); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	result, err := h.assetTypeService.ImportAssetTypes(c.Request.Context(), c.GetString("userID"), rows)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}
