package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/model"
	"backend/internal/repository"
	"backend/internal/service"
	"backend/pkg/pagination"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AssetHandler struct {
	assetService service.AssetService
}

func NewAssetHandler(assetService service.AssetService) *AssetHandler {
	return &AssetHandler{assetService: assetService}
}

func (h *AssetHandler) RegisterRoutes(router *gin.RouterGroup) {
	assets := router.Group("/api/assets")
	{
		assets.GET("", middleware.RequireAuth(), h.ListAssets)
		assets.GET("/:id", middleware.RequireAuth(), h.GetAsset)
		assets.POST("", middleware.RequireRole(model.RoleAdmin), h.CreateAsset)
		assets.PUT("/:id", middleware.RequireRole(model.RoleAdmin), h.UpdateAsset)
		assets.DELETE("/:id", middleware.RequireRole(model.RoleAdmin), h.DeleteAsset)
		assets.POST("/import", middleware.RequireRole(model.RoleAdmin), h.ImportAssets)
	}
}

// ListAssets returns a filtered, paginated asset list
// @Summary      List assets
// @Tags         assets
// @Security     BearerAuth
// @Produce      json
// @Param        page     query     int     false  "Page number (default 1)"
// @Param        limit    query     int     false  "Items per page (default 20)"
// @Param        search   query     string  false  "Search by serial number"
// @Param        type_id  query     string  false  "Filter by asset type id"
// @Param        status   query     string  false  "Filter by status"
// @Success      200      {object}  response.Response{data=object}
// @Failure      400      {object}  response.Response
// @Router       /api/assets [get]
func (h *AssetHandler) ListAssets(c *gin.Context) {
	params := pagination.Parse(c)
	query := repository.AssetQuery{
		Search: c.Query("search"),
		Status: c.Query("status"),
	}
	if raw := c.Query("type_id"); raw != "" {
		typeID, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid type_id: "+raw))
			return
		}
		query.TypeID = &typeID
	}

	assets, total, err := h.assetService.ListAssets(c.Request.Context(), query, params.Page, params.Limit)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"assets": assets,
		"total":  total,
		"page":   params.Page,
		"limit":  params.Limit,
	}))
}

// GetAsset returns one asset with its type preloaded
// @Summary      Get asset
// @Tags         assets
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Asset ID"
// @Success      200  {object}  response.Response{data=model.Asset}
// @Failure      404  {object}  response.Response
// @Router       /api/assets/{id} [get]
func (h *AssetHandler) GetAsset(c *gin.Context) {
	asset, err := h.assetService.GetAsset(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, asset))
}

// CreateAsset registers a new serial-numbered asset
// @Summary      Create asset
// @Tags         assets
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.AssetRequest  true  "Create Asset Payload"
// @Success      201      {object}  response.Response{data=model.Asset}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/assets [post]
func (h *AssetHandler) CreateAsset(c *gin.Context) {
	var req service.AssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	asset, err := h.assetService.CreateAsset(c.Request.Context(), c.GetString("userID"), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, asset))
}

// UpdateAsset updates an asset's metadata (status changes go through allocations)
// @Summary      Update asset
// @Tags         assets
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                true  "Asset ID"
// @Param        payload  body      service.AssetRequest  true  "Update Asset Payload"
// @Success      200      {object}  response.Response{data=model.Asset}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/assets/{id} [put]
func (h *AssetHandler) UpdateAsset(c *gin.Context) {
	var req service.AssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	asset, err := h.assetService.UpdateAsset(c.Request.Context(), c.GetString("userID"), c.Param("id"), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, asset))
}

// DeleteAsset removes an asset that has no active allocation
// @Summary      Delete asset
// @Tags         assets
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Asset ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /api/assets/{id} [delete]
func (h *AssetHandler) DeleteAsset(c *gin.Context) {
	if err := h.assetService.DeleteAsset(c.Request.Context(), c.GetString("userID"), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "asset deleted"}))
}

// ImportAssets bulk-creates assets, skipping bad rows
// @Summary      Import assets
// @Tags         assets
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      []service.AssetRequest  true  "Asset Rows"
// @Success      200      {object}  response.Response{data=service.ImportResult}
// @Failure      400      {object}  response.Response
// @Router       /api/assets/import [post]
func (h *AssetHandler) ImportAssets(c *gin.Context) {
	var rows []service.AssetRequest
	if err := c.ShouldBindJSON(&rows); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	result, err := h.assetService.ImportAssets(c.Request.Context(), c.GetString("userID"), rows)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}
