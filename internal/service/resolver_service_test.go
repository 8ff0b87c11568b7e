package service

import (
	"context"
	"testing"

	"backend/internal/model"
	"backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveEmployeeFindsExistingByEmpID(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	existing := env.seedEmployee(t, "E100", "Alice")

	id, err := env.resolver.ResolveEmployee(ctx, "", EmployeeRef{EmpID: "E100", Name: "Someone Else"})
	require.NoError(t, err)
	assert.Equal(t, existing.ID, id)

	// nothing was created and no auto-create audit was written
	var count int64
	require.NoError(t, env.db.Model(&model.Employee{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
	assert.NotContains(t, env.auditActions(t), model.ActionAutoCreateEmployee)
}

func TestResolveEmployeeAutoCreatesAndIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ref := EmployeeRef{EmpID: "E101", Name: "Bob", Department: "IT"}

	first, err := env.resolver.ResolveEmployee(ctx, "", ref)
	require.NoError(t, err)

	created, err := env.employees.FindByEmpID(ctx, "E101")
	require.NoError(t, err)
	assert.Equal(t, first, created.ID)
	assert.Equal(t, "Bob", created.Name)
	assert.Equal(t, model.EmployeeActive, created.Status)
	assert.Contains(t, env.auditActions(t), model.ActionAutoCreateEmployee)

	// second resolution finds the row instead of duplicating it
	second, err := env.resolver.ResolveEmployee(ctx, "", ref)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	var count int64
	require.NoError(t, env.db.Model(&model.Employee{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestResolveEmployeeRequiresNameToAutoCreate(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.resolver.ResolveEmployee(context.Background(), "", EmployeeRef{EmpID: "E102"})
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))

	_, err = env.resolver.ResolveEmployee(context.Background(), "", EmployeeRef{})
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestResolveAssetAutoCreatesWithTypeName(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	id, err := env.resolver.ResolveAsset(ctx, "", AssetRef{
		SerialNumber:  "sn-abc-1",
		AssetTypeName: "Monitor",
	})
	require.NoError(t, err)

	asset, err := env.assets.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "SN-ABC-1", asset.SerialNumber)
	assert.Equal(t, model.AssetAvailable, asset.Status)

	assetType, err := env.assetTypes.FindByName(ctx, "Monitor")
	require.NoError(t, err)
	assert.Equal(t, assetType.ID, asset.AssetTypeID)

	actions := env.auditActions(t)
	assert.Contains(t, actions, model.ActionAutoCreateAsset)
	assert.Contains(t, actions, model.ActionAutoCreateAssetType)
}

func TestResolveAssetFindsExistingBySerialCaseInsensitive(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	assetType := env.seedAssetType(t, "Laptop")
	existing := env.seedAsset(t, assetType.ID, "SN-XYZ", model.AssetAllocated)

	// lower-cased input matches the canonical serial, existing status untouched
	id, err := env.resolver.ResolveAsset(ctx, "", AssetRef{SerialNumber: "sn-xyz"})
	require.NoError(t, err)
	assert.Equal(t, existing.ID, id)
	assert.Equal(t, model.AssetAllocated, env.assetStatus(t, id))
}

func TestResolveAssetWithoutTypeIsRejected(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.resolver.ResolveAsset(context.Background(), "", AssetRef{SerialNumber: "SN-NEW"})
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestResolveAssetTypeMatchesNameCaseInsensitive(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	existing := env.seedAssetType(t, "Laptop")

	id, err := env.resolver.ResolveAssetType(ctx, "", "laptop")
	require.NoError(t, err)
	assert.Equal(t, existing.ID, id)

	var count int64
	require.NoError(t, env.db.Model(&model.AssetType{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestResolveAssetTypeAutoCreates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	id, err := env.resolver.ResolveAssetType(ctx, "", "  Keyboard  ")
	require.NoError(t, err)

	created, err := env.assetTypes.FindByName(ctx, "Keyboard")
	require.NoError(t, err)
	assert.Equal(t, id, created.ID)
	assert.Contains(t, env.auditActions(t), model.ActionAutoCreateAssetType)
}
