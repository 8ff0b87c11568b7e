package repository

import (
	"context"

	"backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EmployeeQuery carries optional list filters
type EmployeeQuery struct {
	Search     string
	Branch     string
	Department string
}

type EmployeeRepository interface {
	Create(ctx context.Context, employee *model.Employee) error
	Update(ctx context.Context, employee *model.Employee) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Employee, error)
	FindByEmpID(ctx context.Context, empID string) (*model.Employee, error)
	List(ctx context.Context, query EmployeeQuery, page, limit int) ([]model.Employee, int64, error)
	Count(ctx context.Context) (int64, error)
}

type employeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) Create(ctx context.Context, employee *model.Employee) error {
	return GetDB(ctx, r.db).Create(employee).Error
}

func (r *employeeRepository) Update(ctx context.Context, employee *model.Employee) error {
	return GetDB(ctx, r.db).Save(employee).Error
}

func (r *employeeRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Employee, error) {
	var employee model.Employee
	if err := GetDB(ctx, r.db).First(&employee, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepository) FindByEmpID(ctx context.Context, empID string) (*model.Employee, error) {
	var employee model.Employee
	if err := GetDB(ctx, r.db).Where("emp_id = ?", empID).First(&employee).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepository) List(ctx context.Context, query EmployeeQuery, page, limit int) ([]model.Employee, int64, error) {
	var employees []model.Employee
	var total int64

	db := GetDB(ctx, r.db).Model(&model.Employee{})
	if query.Search != "" {
		pattern := "%" + query.Search + "%"
		db = db.Where("name LIKE ? OR emp_id LIKE ? OR email LIKE ?", pattern, pattern, pattern)
	}
	if query.Branch != "" {
		db = db.Where("branch = ?", query.Branch)
	}
	if query.Department != "" {
		db = db.Where("department = ?", query.Department)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("created_at desc").Offset(offset).Limit(limit).Find(&employees).Error; err != nil {
		return nil, 0, err
	}

	return employees, total, nil
}

func (r *employeeRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := GetDB(ctx, r.db).Model(&model.Employee{}).Count(&total).Error
	return total, err
}
