package service

import (
	"context"
	"testing"

	"backend/internal/model"
	"backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEmployeeService(env *testEnv) EmployeeService {
	return NewEmployeeService(env.employees, env.audits, env.tx)
}

func TestCreateEmployeeWritesAudit(t *testing.T) {
	env := newTestEnv(t)
	svc := newEmployeeService(env)

	employee, err := svc.CreateEmployee(context.Background(), "", EmployeeRequest{
		EmpID:         "E300",
		Name:          "Alice",
		Email:         "alice@example.com",
		Department:    "IT",
		DateOfJoining: "2024-03-01",
	})
	require.NoError(t, err)

	assert.Equal(t, model.EmployeeActive, employee.Status)
	require.NotNil(t, employee.DateOfJoining)
	assert.Equal(t, "2024-03-01", employee.DateOfJoining.Format("2006-01-02"))
	assert.Contains(t, env.auditActions(t), model.ActionCreateEmployee)
}

func TestCreateEmployeeDuplicateEmpIDIsConflict(t *testing.T) {
	env := newTestEnv(t)
	svc := newEmployeeService(env)
	env.seedEmployee(t, "E301", "Bob")

	_, err := svc.CreateEmployee(context.Background(), "", EmployeeRequest{
		EmpID: "E301",
		Name:  "Impostor",
		Email: "other@example.com",
	})
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))
}

func TestCreateEmployeeRejectsBadJoiningDate(t *testing.T) {
	env := newTestEnv(t)
	svc := newEmployeeService(env)

	_, err := svc.CreateEmployee(context.Background(), "", EmployeeRequest{
		EmpID:         "E302",
		Name:          "Cara",
		Email:         "cara@example.com",
		DateOfJoining: "01/03/2024",
	})
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestImportEmployeesSkipsDuplicates(t *testing.T) {
	env := newTestEnv(t)
	svc := newEmployeeService(env)
	ctx := context.Background()

	result, err := svc.ImportEmployees(ctx, "", []EmployeeRequest{
		{EmpID: "E303", Name: "Dan", Email: "dan@example.com"},
		{EmpID: "E303", Name: "Dan Again", Email: "dan2@example.com"},
		{EmpID: "E304", Name: "Eve", Email: "eve@example.com"},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Count)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 1, result.Errors[0].Row)

	var count int64
	require.NoError(t, env.db.Model(&model.Employee{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
	assert.Contains(t, env.auditActions(t), model.ActionImportEmployees)
}
