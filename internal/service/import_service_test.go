package service

import (
	"context"
	"testing"

	"backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportAllocationsWithEntityIDs(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	assetType := env.seedAssetType(t, "Laptop")
	assetA := env.seedAsset(t, assetType.ID, "SN-A", model.AssetAvailable)
	assetB := env.seedAsset(t, assetType.ID, "SN-B", model.AssetAvailable)
	alice := env.seedEmployee(t, "E200", "Alice")
	bob := env.seedEmployee(t, "E201", "Bob")

	result, err := env.importer.ImportAllocations(ctx, "", []Row{
		{"employeeId": alice.ID.String(), "assetId": assetA.ID.String()},
		{"employeeId": bob.ID.String(), "assetId": assetB.ID.String()},
	}, false)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Count)
	assert.Empty(t, result.Errors)
	assert.Equal(t, model.AssetAllocated, env.assetStatus(t, assetA.ID))
	assert.Equal(t, model.AssetAllocated, env.assetStatus(t, assetB.ID))
	assert.Contains(t, env.auditActions(t), model.ActionImportAllocations)
}

func TestImportSkipsBadRowsAndContinues(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	assetType := env.seedAssetType(t, "Laptop")
	assetA := env.seedAsset(t, assetType.ID, "SN-C", model.AssetAvailable)
	assetB := env.seedAsset(t, assetType.ID, "SN-D", model.AssetAvailable)
	alice := env.seedEmployee(t, "E202", "Alice")

	result, err := env.importer.ImportAllocations(ctx, "", []Row{
		{"employeeId": alice.ID.String(), "assetId": assetA.ID.String()},
		{"assetId": assetB.ID.String()}, // missing employee reference
		{"employeeId": alice.ID.String(), "assetId": assetB.ID.String()},
	}, false)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Count)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 1, result.Errors[0].Row)
	assert.Equal(t, model.AssetAllocated, env.assetStatus(t, assetB.ID))
}

func TestBulkImportAutoCreatesEntities(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	result, err := env.importer.ImportAllocations(ctx, "", []Row{
		{
			"empId":        "E203",
			"name":         "Cara",
			"serialNumber": "sn-bulk-1",
			"assetType":    "Laptop",
		},
	}, true)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Count)
	assert.Empty(t, result.Errors)

	employee, err := env.employees.FindByEmpID(ctx, "E203")
	require.NoError(t, err)
	assert.Equal(t, "Cara", employee.Name)

	asset, err := env.assets.FindBySerial(ctx, "SN-BULK-1")
	require.NoError(t, err)
	assert.Equal(t, model.AssetAllocated, asset.Status)

	actions := env.auditActions(t)
	assert.Contains(t, actions, model.ActionAutoCreateEmployee)
	assert.Contains(t, actions, model.ActionAutoCreateAssetType)
	assert.Contains(t, actions, model.ActionAutoCreateAsset)
	assert.Contains(t, actions, model.ActionAllocateAsset)
}

func TestBulkImportDuplicateSerialSecondRowFails(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	result, err := env.importer.ImportAllocations(ctx, "", []Row{
		{"empId": "E204", "name": "Dan", "serialNumber": "SN-DUP", "assetType": "Laptop"},
		{"empId": "E205", "name": "Eve", "serialNumber": "SN-DUP", "assetType": "Laptop"},
	}, true)
	require.NoError(t, err)

	// row two resolves to the same asset, which row one already allocated
	assert.Equal(t, 1, result.Count)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 1, result.Errors[0].Row)
	assert.Contains(t, result.Errors[0].Message, "not available")

	// the second employee was still created before the row failed
	_, err = env.employees.FindByEmpID(ctx, "E205")
	require.NoError(t, err)
}

func TestImportReturnRowClosesActiveAllocation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	assetType := env.seedAssetType(t, "Laptop")
	asset := env.seedAsset(t, assetType.ID, "SN-RET", model.AssetAvailable)
	employee := env.seedEmployee(t, "E206", "Finn")

	_, err := env.allocation.Allocate(ctx, "", AllocateRequest{
		AssetID:    asset.ID.String(),
		EmployeeID: employee.ID.String(),
	})
	require.NoError(t, err)

	result, err := env.importer.ImportAllocations(ctx, "", []Row{
		{"serialNumber": "SN-RET", "status": "Returned", "returnReason": "upgrade"},
	}, true)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Count)
	assert.Empty(t, result.Errors)
	// post-return status defaults to Available when the row carries none
	assert.Equal(t, model.AssetAvailable, env.assetStatus(t, asset.ID))

	active, err := env.allocations.CountActiveByAssetID(ctx, asset.ID)
	require.NoError(t, err)
	assert.Zero(t, active)
}

func TestImportReturnRowWithExplicitPostStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	assetType := env.seedAssetType(t, "Laptop")
	asset := env.seedAsset(t, assetType.ID, "SN-RET2", model.AssetAvailable)
	employee := env.seedEmployee(t, "E207", "Gina")

	_, err := env.allocation.Allocate(ctx, "", AllocateRequest{
		AssetID:    asset.ID.String(),
		EmployeeID: employee.ID.String(),
	})
	require.NoError(t, err)

	result, err := env.importer.ImportAllocations(ctx, "", []Row{
		{"serialNumber": "SN-RET2", "status": "Returned", "returnReason": "broken", "assetStatus": model.AssetDamaged},
	}, true)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Count)
	assert.Equal(t, model.AssetDamaged, env.assetStatus(t, asset.ID))
}

func TestImportReturnWithoutActiveAllocationFails(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	assetType := env.seedAssetType(t, "Laptop")
	env.seedAsset(t, assetType.ID, "SN-IDLE", model.AssetAvailable)

	result, err := env.importer.ImportAllocations(ctx, "", []Row{
		{"serialNumber": "SN-IDLE", "status": "Returned"},
	}, true)
	require.NoError(t, err)

	assert.Zero(t, result.Count)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0].Message, "no active allocation")
}

func TestImportToleratesHeaderAliases(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	result, err := env.importer.ImportAllocations(ctx, "", []Row{
		{
			"Employee ID":   "E208",
			"Employee Name": "Hana",
			"Serial Number": "SN-ALIAS",
			"Asset Type":    "Tablet",
		},
	}, true)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Count)
	assert.Empty(t, result.Errors)

	asset, err := env.assets.FindBySerial(ctx, "SN-ALIAS")
	require.NoError(t, err)
	assert.Equal(t, model.AssetAllocated, asset.Status)
}
