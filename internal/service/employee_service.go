package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"backend/internal/model"
	"backend/internal/repository"
	"backend/pkg/apperror"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DTOs
type EmployeeRequest struct {
	EmpID         string `json:"emp_id" binding:"required"`
	Name          string `json:"name" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Branch        string `json:"branch"`
	Department    string `json:"department"`
	Designation   string `json:"designation"`
	Mobile        string `json:"mobile"`
	Status        string `json:"status"`
	DateOfJoining string `json:"date_of_joining"` // YYYY-MM-DD
}

type EmployeeService interface {
	ListEmployees(ctx context.Context, query repository.EmployeeQuery, page, limit int) ([]model.Employee, int64, error)
	CreateEmployee(ctx context.Context, userID string, req EmployeeRequest) (*model.Employee, error)
	UpdateEmployee(ctx context.Context, userID string, id string, req EmployeeRequest) (*model.Employee, error)
	ImportEmployees(ctx context.Context, userID string, rows []EmployeeRequest) (ImportResult, error)
}

type employeeService struct {
	employeeRepo repository.EmployeeRepository
	auditRepo    repository.AuditRepository
	txManager    repository.TransactionManager
}

func NewEmployeeService(
	employeeRepo repository.EmployeeRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
) EmployeeService {
	return &employeeService{
		employeeRepo: employeeRepo,
		auditRepo:    auditRepo,
		txManager:    txManager,
	}
}

func (s *employeeService) ListEmployees(ctx context.Context, query repository.EmployeeQuery, page, limit int) ([]model.Employee, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	return s.employeeRepo.List(ctx, query, page, limit)
}

func (s *employeeService) CreateEmployee(ctx context.Context, userID string, req EmployeeRequest) (*model.Employee, error) {
	employee, err := employeeFromRequest(req)
	if err != nil {
		return nil, err
	}

	if _, lookupErr := s.employeeRepo.FindByEmpID(ctx, req.EmpID); lookupErr == nil {
		return nil, apperror.Conflict("employee with emp_id %s already exists", req.EmpID)
	} else if !errors.Is(lookupErr, gorm.ErrRecordNotFound) {
		return nil, apperror.Persistence(lookupErr, "failed to check emp_id uniqueness")
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if createErr := s.employeeRepo.Create(txCtx, employee); createErr != nil {
			return apperror.Persistence(createErr, "failed to create employee")
		}
		return s.audit(txCtx, userID, model.ActionCreateEmployee, employee.ID.String(), map[string]interface{}{
			"emp_id": employee.EmpID,
			"name":   employee.Name,
		})
	})
	if err != nil {
		return nil, err
	}

	return employee, nil
}

func (s *employeeService) UpdateEmployee(ctx context.Context, userID string, id string, req EmployeeRequest) (*model.Employee, error) {
	employeeID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperror.Validation("invalid employee id: %s", id)
	}

	employee, err := s.employeeRepo.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("employee not found: %s", id)
		}
		return nil, apperror.Persistence(err, "failed to load employee")
	}

	updated, err := employeeFromRequest(req)
	if err != nil {
		return nil, err
	}
	updated.ID = employee.ID
	updated.CreatedAt = employee.CreatedAt

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if saveErr := s.employeeRepo.Update(txCtx, updated); saveErr != nil {
			return apperror.Persistence(saveErr, "failed to update employee")
		}
		return s.audit(txCtx, userID, model.ActionUpdateEmployee, updated.ID.String(), map[string]interface{}{
			"emp_id": updated.EmpID,
		})
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// ImportEmployees creates employees row by row, skipping rows that fail
// validation or collide on emp_id, and reports the aggregate tally.
func (s *employeeService) ImportEmployees(ctx context.Context, userID string, rows []EmployeeRequest) (ImportResult, error) {
	result := ImportResult{}
	for i, row := range rows {
		if _, err := s.CreateEmployee(ctx, userID, row); err != nil {
			log.Printf("employee import row %d skipped: %v", i, err)
			result.Errors = append(result.Errors, RowError{Row: i, Message: err.Error()})
			continue
		}
		result.Count++
	}

	details, _ := json.Marshal(map[string]interface{}{"count": result.Count, "failed": len(result.Errors)})
	var uid *uuid.UUID
	if parsed, err := uuid.Parse(userID); err == nil {
		uid = &parsed
	}
	if err := s.auditRepo.Log(ctx, &model.AuditLog{
		UserID:     uid,
		Action:     model.ActionImportEmployees,
		EntityType: "Employee",
		Details:    datatypes.JSON(details),
	}); err != nil {
		log.Printf("failed to write employee import audit log: %v", err)
	}

	return result, nil
}

func (s *employeeService) audit(ctx context.Context, userID, action, entityID string, detail map[string]interface{}) error {
	var uid *uuid.UUID
	if parsed, err := uuid.Parse(userID); err == nil {
		uid = &parsed
	}
	details, _ := json.Marshal(detail)
	if err := s.auditRepo.Log(ctx, &model.AuditLog{
		UserID:     uid,
		Action:     action,
		EntityType: "Employee",
		EntityID:   entityID,
		Details:    datatypes.JSON(details),
	}); err != nil {
		return apperror.Persistence(err, "failed to write audit log")
	}
	return nil
}

func employeeFromRequest(req EmployeeRequest) (*model.Employee, error) {
	if req.EmpID == "" || req.Name == "" {
		return nil, apperror.Validation("emp_id and name are required")
	}

	status := req.Status
	if status == "" {
		status = model.EmployeeActive
	}

	employee := &model.Employee{
		EmpID:       req.EmpID,
		Name:        req.Name,
		Email:       req.Email,
		Branch:      req.Branch,
		Department:  req.Department,
		Designation: req.Designation,
		Mobile:      req.Mobile,
		Status:      status,
	}

	if req.DateOfJoining != "" {
		joined, err := time.Parse("2006-01-02", req.DateOfJoining)
		if err != nil {
			return nil, apperror.Validation("invalid date_of_joining %q, expected YYYY-MM-DD", req.DateOfJoining)
		}
		employee.DateOfJoining = &joined
	}

	return employee, nil
}
