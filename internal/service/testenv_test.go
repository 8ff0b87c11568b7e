package service

import (
	"context"
	"testing"

	"backend/internal/model"
	"backend/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	db          *gorm.DB
	employees   repository.EmployeeRepository
	assets      repository.AssetRepository
	assetTypes  repository.AssetTypeRepository
	allocations repository.AllocationRepository
	audits      repository.AuditRepository
	tx          repository.TransactionManager
	resolver    ResolverService
	allocation  AllocationService
	importer    ImportService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Employee{},
		&model.AssetType{},
		&model.Asset{},
		&model.Allocation{},
		&model.Verification{},
		&model.AuditLog{},
		&model.EmailSettings{},
	))

	env := &testEnv{
		db:          db,
		employees:   repository.NewEmployeeRepository(db),
		assets:      repository.NewAssetRepository(db),
		assetTypes:  repository.NewAssetTypeRepository(db),
		allocations: repository.NewAllocationRepository(db),
		audits:      repository.NewAuditRepository(db),
		tx:          repository.NewTransactionManager(db),
	}
	env.resolver = NewResolverService(env.employees, env.assets, env.assetTypes, env.audits)
	env.allocation = NewAllocationService(env.allocations, env.assets, env.employees, env.audits, env.resolver, env.tx, nil, nil)
	env.importer = NewImportService(env.resolver, env.allocation, env.allocations, env.assets, env.audits)
	return env
}

func (e *testEnv) seedEmployee(t *testing.T, empID, name string) *model.Employee {
	t.Helper()
	employee := &model.Employee{
		EmpID:  empID,
		Name:   name,
		Email:  empID + "@example.com",
		Status: model.EmployeeActive,
	}
	require.NoError(t, e.employees.Create(context.Background(), employee))
	return employee
}

func (e *testEnv) seedAssetType(t *testing.T, name string) *model.AssetType {
	t.Helper()
	assetType := &model.AssetType{Name: name}
	require.NoError(t, e.assetTypes.Create(context.Background(), assetType))
	return assetType
}

func (e *testEnv) seedAsset(t *testing.T, typeID uuid.UUID, serial, status string) *model.Asset {
	t.Helper()
	asset := &model.Asset{
		AssetTypeID:  typeID,
		SerialNumber: NormalizeSerial(serial),
		Status:       status,
	}
	require.NoError(t, e.assets.Create(context.Background(), asset))
	return asset
}

func (e *testEnv) assetStatus(t *testing.T, id uuid.UUID) string {
	t.Helper()
	asset, err := e.assets.FindByID(context.Background(), id)
	require.NoError(t, err)
	return asset.Status
}

func (e *testEnv) auditActions(t *testing.T) []string {
	t.Helper()
	var actions []string
	require.NoError(t, e.db.Model(&model.AuditLog{}).Order("created_at").Pluck("action", &actions).Error)
	return actions
}
