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

type AllocationHandler struct {
	allocationService service.AllocationService
	importService     service.ImportService
}

func NewAllocationHandler(allocationService service.AllocationService, importService service.ImportService) *AllocationHandler {
	return &AllocationHandler{
		allocationService: allocationService,
		importService:     importService,
	}
}

func (h *AllocationHandler) RegisterRoutes(router *gin.RouterGroup) {
	allocations := router.Group("/api/allocations")
	{
		allocations.GET("", middleware.RequireAuth(), h.ListAllocations)
		allocations.POST("", middleware.RequireRole(model.RoleAdmin), h.Allocate)
		allocations.POST("/:id/return", middleware.RequireRole(model.RoleAdmin), h.Return)
		allocations.POST("/import", middleware.RequireRole(model.RoleAdmin), h.Import)
		allocations.POST("/bulk-import", middleware.RequireRole(model.RoleAdmin), h.BulkImport)
	}
}

// ListAllocations returns the allocation history, newest first
// @Summary      List allocations
// @Tags         allocations
// @Security     BearerAuth
// @Produce      json
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Items per page (default 20)"
// @Success      200    {object}  response.Response{data=object}
// @Failure      500    {object}  response.Response
// @Router       /api/allocations [get]
func (h *AllocationHandler) ListAllocations(c *gin.Context) {
	params := pagination.Parse(c)

	allocations, total, err := h.allocationService.ListAllocations(c.Request.Context(), params.Page, params.Limit)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"allocations": allocations,
		"total":       total,
		"page":        params.Page,
		"limit":       params.Limit,
	}))
}

// Allocate hands an available asset to an employee
// @Summary      Allocate asset
// @Description  Transitions the asset Available -> Allocated and opens an active allocation. References may carry inline data for auto-creation.
// @Tags         allocations
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.AllocateRequest  true  "Allocate Payload"
// @Success      201      {object}  response.Response{data=model.Allocation}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/allocations [post]
func (h *AllocationHandler) Allocate(c *gin.Context) {
	var req service.AllocateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	allocation, err := h.allocationService.Allocate(c.Request.Context(), c.GetString("userID"), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, allocation))
}

// Return closes an active allocation
// @Summary      Return asset
// @Description  Closes the allocation and moves the asset to the requested post-return status (Available, Damaged, or Scrapped)
// @Tags         allocations
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                 true  "Allocation ID"
// @Param        payload  body      service.ReturnRequest  true  "Return Payload"
// @Success      200      {object}  response.Response{data=model.Allocation}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/allocations/{id}/return [post]
func (h *AllocationHandler) Return(c *gin.Context) {
	var req service.ReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	allocation, err := h.allocationService.Return(c.Request.Context(), c.GetString("userID"), c.Param("id"), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, allocation))
}

// Import processes allocation rows that reference existing entities by id
// @Summary      Import allocations
// @Description  Processes spreadsheet rows in order; each row is allocated or returned independently and bad rows are reported per row
// @Tags         allocations
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      []service.Row  true  "Allocation Rows"
// @Success      200      {object}  response.Response{data=service.ImportResult}
// @Failure      400      {object}  response.Response
// @Router       /api/allocations/import [post]
func (h *AllocationHandler) Import(c *gin.Context) {
	h.runImport(c, false)
}

// BulkImport processes rows keyed by business identifiers, auto-creating
// unknown employees, asset types, and assets along the way
// @Summary      Bulk import allocations
// @Description  Like import, but rows reference employees by emp_id and assets by serial number; missing entities are created on the fly
// @Tags         allocations
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      []service.Row  true  "Allocation Rows"
// @Success      200      {object}  response.Response{data=service.ImportResult}
// @Failure      400      {object}  response.Response
// @Router       /api/allocations/bulk-import [post]
func (h *AllocationHandler) BulkImport(c *gin.Context) {
	h.runImport(c, true)
}

func (h *AllocationHandler) runImport(c *gin.Context, autoCreate bool) {
	var rows []service.Row
	if err := c.ShouldBindJSON(&rows); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	result, err := h.importService.ImportAllocations(c.Request.Context(), c.GetString("userID"), rows, autoCreate)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}
