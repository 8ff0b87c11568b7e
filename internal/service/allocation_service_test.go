package service

import (
	"context"
	"testing"

	"backend/internal/model"
	"backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocateTransitionsAssetAndOpensAllocation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	assetType := env.seedAssetType(t, "Laptop")
	asset := env.seedAsset(t, assetType.ID, "SN-001", model.AssetAvailable)
	employee := env.seedEmployee(t, "E001", "Alice")

	allocation, err := env.allocation.Allocate(ctx, "", AllocateRequest{
		AssetID:    asset.ID.String(),
		EmployeeID: employee.ID.String(),
		Remarks:    "new hire kit",
	})
	require.NoError(t, err)

	assert.Equal(t, model.AllocationActive, allocation.Status)
	assert.Equal(t, asset.ID, allocation.AssetID)
	assert.Equal(t, employee.ID, allocation.EmployeeID)
	assert.Nil(t, allocation.ReturnDate)

	assert.Equal(t, model.AssetAllocated, env.assetStatus(t, asset.ID))
	assert.Contains(t, env.auditActions(t), model.ActionAllocateAsset)
}

func TestAllocateRejectsUnavailableAsset(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	assetType := env.seedAssetType(t, "Laptop")
	asset := env.seedAsset(t, assetType.ID, "SN-002", model.AssetAllocated)
	employee := env.seedEmployee(t, "E002", "Bob")

	_, err := env.allocation.Allocate(ctx, "", AllocateRequest{
		AssetID:    asset.ID.String(),
		EmployeeID: employee.ID.String(),
	})
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))

	// no allocation row leaked out of the failed attempt
	var count int64
	require.NoError(t, env.db.Model(&model.Allocation{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestAllocateUnknownEmployeeLeavesAssetUntouched(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	assetType := env.seedAssetType(t, "Laptop")
	asset := env.seedAsset(t, assetType.ID, "SN-003", model.AssetAvailable)

	_, err := env.allocation.Allocate(ctx, "", AllocateRequest{
		AssetID:    asset.ID.String(),
		EmployeeID: "2f0d8f6e-0000-0000-0000-000000000000",
	})
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
	assert.Equal(t, model.AssetAvailable, env.assetStatus(t, asset.ID))
}

func TestReturnClosesAllocationAndAppliesPostStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	assetType := env.seedAssetType(t, "Laptop")
	asset := env.seedAsset(t, assetType.ID, "SN-004", model.AssetAvailable)
	employee := env.seedEmployee(t, "E004", "Cara")

	allocation, err := env.allocation.Allocate(ctx, "", AllocateRequest{
		AssetID:    asset.ID.String(),
		EmployeeID: employee.ID.String(),
	})
	require.NoError(t, err)

	returned, err := env.allocation.Return(ctx, "", allocation.ID.String(), ReturnRequest{
		ReturnReason: "screen cracked",
		Status:       model.AssetDamaged,
	})
	require.NoError(t, err)

	assert.Equal(t, model.AllocationReturned, returned.Status)
	require.NotNil(t, returned.ReturnDate)
	assert.Equal(t, "screen cracked", returned.ReturnReason)
	assert.Equal(t, model.AssetDamaged, env.assetStatus(t, asset.ID))
	assert.Contains(t, env.auditActions(t), model.ActionReturnAsset)
}

func TestReturnTwiceIsConflict(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	assetType := env.seedAssetType(t, "Laptop")
	asset := env.seedAsset(t, assetType.ID, "SN-005", model.AssetAvailable)
	employee := env.seedEmployee(t, "E005", "Dan")

	allocation, err := env.allocation.Allocate(ctx, "", AllocateRequest{
		AssetID:    asset.ID.String(),
		EmployeeID: employee.ID.String(),
	})
	require.NoError(t, err)

	_, err = env.allocation.Return(ctx, "", allocation.ID.String(), ReturnRequest{
		ReturnReason: "done",
		Status:       model.AssetAvailable,
	})
	require.NoError(t, err)

	_, err = env.allocation.Return(ctx, "", allocation.ID.String(), ReturnRequest{
		ReturnReason: "again",
		Status:       model.AssetAvailable,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))
}

func TestReturnRejectsDisallowedPostStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	assetType := env.seedAssetType(t, "Laptop")
	asset := env.seedAsset(t, assetType.ID, "SN-006", model.AssetAvailable)
	employee := env.seedEmployee(t, "E006", "Eve")

	allocation, err := env.allocation.Allocate(ctx, "", AllocateRequest{
		AssetID:    asset.ID.String(),
		EmployeeID: employee.ID.String(),
	})
	require.NoError(t, err)

	for _, status := range []string{model.AssetAllocated, model.AssetLost, "Broken", ""} {
		_, err = env.allocation.Return(ctx, "", allocation.ID.String(), ReturnRequest{
			ReturnReason: "bad status",
			Status:       status,
		})
		require.Error(t, err, "status %q must be rejected", status)
		assert.True(t, apperror.IsValidation(err))
	}
}

func TestAssetCanBeReallocatedAfterReturn(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	assetType := env.seedAssetType(t, "Laptop")
	asset := env.seedAsset(t, assetType.ID, "SN-007", model.AssetAvailable)
	first := env.seedEmployee(t, "E007", "Finn")
	second := env.seedEmployee(t, "E008", "Gina")

	allocation, err := env.allocation.Allocate(ctx, "", AllocateRequest{
		AssetID:    asset.ID.String(),
		EmployeeID: first.ID.String(),
	})
	require.NoError(t, err)

	_, err = env.allocation.Return(ctx, "", allocation.ID.String(), ReturnRequest{
		ReturnReason: "left team",
		Status:       model.AssetAvailable,
	})
	require.NoError(t, err)

	again, err := env.allocation.Allocate(ctx, "", AllocateRequest{
		AssetID:    asset.ID.String(),
		EmployeeID: second.ID.String(),
	})
	require.NoError(t, err)
	assert.Equal(t, second.ID, again.EmployeeID)
	assert.Equal(t, model.AssetAllocated, env.assetStatus(t, asset.ID))
}
