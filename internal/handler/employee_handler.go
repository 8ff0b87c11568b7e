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
)

type EmployeeHandler struct {
	employeeService service.EmployeeService
}

func NewEmployeeHandler(employeeService service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeService: employeeService}
}

func (h *EmployeeHandler) RegisterRoutes(router *gin.RouterGroup) {
	employees := router.Group("/api/employees")
	{
		employees.GET("", middleware.RequireAuth(), h.ListEmployees)
		employees.POST("", middleware.RequireRole(model.RoleAdmin), h.CreateEmployee)
		employees.PUT("/:id", middleware.RequireRole(model.RoleAdmin), h.UpdateEmployee)
		employees.POST("/import", middleware.RequireRole(model.RoleAdmin), h.ImportEmployees)
	}
}

// ListEmployees returns a filtered, paginated employee list
// @Summary      List employees
// @Tags         employees
// @Security     BearerAuth
// @Produce      json
// @Param        page        query     int     false  "Page number (default 1)"
// @Param        limit       query     int     false  "Items per page (default 20)"
// @Param        search      query     string  false  "Search emp_id, name, or email"
// @Param        branch      query     string  false  "Filter by branch"
// @Param        department  query     string  false  "Filter by department"
// @Success      200         {object}  response.Response{data=object}
// @Failure      500         {object}  response.Response
// @Router       /api/employees [get]
func (h *EmployeeHandler) ListEmployees(c *gin.Context) {
	params := pagination.Parse(c)
	query := repository.EmployeeQuery{
		Search:     c.Query("search"),
		Branch:     c.Query("branch"),
		Department: c.Query("department"),
	}

	employees, total, err := h.employeeService.ListEmployees(c.Request.Context(), query, params.Page, params.Limit)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"employees": employees,
		"total":     total,
		"page":      params.Page,
		"limit":     params.Limit,
	}))
}

// CreateEmployee registers a new employee
// @Summary      Create employee
// @Tags         employees
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.EmployeeRequest  true  "Create Employee Payload"
// @Success      201      {object}  response.Response{data=model.Employee}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/employees [post]
func (h *EmployeeHandler) CreateEmployee(c *gin.Context) {
	var req service.EmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	employee, err := h.employeeService.CreateEmployee(c.Request.Context(), c.GetString("userID"), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, employee))
}

// UpdateEmployee updates an existing employee
// @Summary      Update employee
// @Tags         employees
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                    true  "Employee ID"
// @Param        payload  body      service.EmployeeRequest   true  "Update Employee Payload"
// @Success      200      {object}  response.Response{data=model.Employee}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/employees/{id} [put]
func (h *EmployeeHandler) UpdateEmployee(c *gin.Context) {
	var req service.EmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	employee, err := h.employeeService.UpdateEmployee(c.Request.Context(), c.GetString("userID"), c.Param("id"), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, employee))
}

// ImportEmployees bulk-creates employees, skipping bad rows
// @Summary      Import employees
// @Description  Creates employees row by row; rows that fail validation or collide on emp_id are reported, not fatal
// @Tags         employees
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      []service.EmployeeRequest  true  "Employee Rows"
// @Success      200      {object}  response.Response{data=service.ImportResult}
// @Failure      400      {object}  response.Response
// @Router       /api/employees/import [post]
func (h *EmployeeHandler) ImportEmployees(c *gin.Context) {
	var rows []service.EmployeeRequest
	if err := c.ShouldBindJSON(&rows); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	result, err := h.employeeService.ImportEmployees(c.Request.Context(), c.GetString("userID"), rows)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}
