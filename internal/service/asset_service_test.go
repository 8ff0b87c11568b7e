package service

import (
	"context"
	"testing"

	"backend/internal/model"
	"backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func newAssetService(env *testEnv) AssetService {
	return NewAssetService(env.assets, env.assetTypes, env.allocations, env.audits, env.tx)
}

func (e *testEnv) seedAssetTypeWithSchema(t *testing.T, name string, schema []model.SchemaField) *model.AssetType {
	t.Helper()
	assetType := &model.AssetType{
		Name:   name,
		Schema: datatypes.NewJSONSlice(schema),
	}
	require.NoError(t, e.assetTypes.Create(context.Background(), assetType))
	return assetType
}

func TestCreateAssetNormalizesSerial(t *testing.T) {
	env := newTestEnv(t)
	svc := newAssetService(env)
	assetType := env.seedAssetType(t, "Laptop")

	asset, err := svc.CreateAsset(context.Background(), "", AssetRequest{
		AssetTypeID:  assetType.ID.String(),
		SerialNumber: "  sn-lower-1 ",
		PurchaseCost: "1299.99",
	})
	require.NoError(t, err)

	assert.Equal(t, "SN-LOWER-1", asset.SerialNumber)
	assert.Equal(t, model.AssetAvailable, asset.Status)
	assert.Equal(t, "1299.99", asset.PurchaseCost.StringFixed(2))
	assert.Contains(t, env.auditActions(t), model.ActionCreateAsset)
}

func TestCreateAssetDuplicateSerialIsConflict(t *testing.T) {
	env := newTestEnv(t)
	svc := newAssetService(env)
	assetType := env.seedAssetType(t, "Laptop")
	env.seedAsset(t, assetType.ID, "SN-TAKEN", model.AssetAvailable)

	// differing case still collides on the canonical serial
	_, err := svc.CreateAsset(context.Background(), "", AssetRequest{
		AssetTypeID:  assetType.ID.String(),
		SerialNumber: "sn-taken",
	})
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))
}

func TestCreateAssetValidatesRequiredSpecifications(t *testing.T) {
	env := newTestEnv(t)
	svc := newAssetService(env)
	assetType := env.seedAssetTypeWithSchema(t, "Laptop", []model.SchemaField{
		{Name: "ram", Type: "text", Required: true},
		{Name: "color", Type: "text"},
	})

	_, err := svc.CreateAsset(context.Background(), "", AssetRequest{
		AssetTypeID:  assetType.ID.String(),
		SerialNumber: "SN-SPEC-1",
		Specifications: map[string]interface{}{
			"color": "grey",
		},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
	assert.Contains(t, err.Error(), "ram")

	asset, err := svc.CreateAsset(context.Background(), "", AssetRequest{
		AssetTypeID:  assetType.ID.String(),
		SerialNumber: "SN-SPEC-1",
		Specifications: map[string]interface{}{
			"ram": "16GB",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "16GB", asset.Specifications["ram"])
}

func TestCreateAssetRejectsNegativeCost(t *testing.T) {
	env := newTestEnv(t)
	svc := newAssetService(env)
	assetType := env.seedAssetType(t, "Laptop")

	_, err := svc.CreateAsset(context.Background(), "", AssetRequest{
		AssetTypeID:  assetType.ID.String(),
		SerialNumber: "SN-NEG",
		PurchaseCost: "-10",
	})
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestDeleteAssetBlockedWhileAllocated(t *testing.T) {
	env := newTestEnv(t)
	svc := newAssetService(env)
	ctx := context.Background()

	assetType := env.seedAssetType(t, "Laptop")
	asset := env.seedAsset(t, assetType.ID, "SN-DEL", model.AssetAvailable)
	employee := env.seedEmployee(t, "E400", "Alice")

	allocation, err := env.allocation.Allocate(ctx, "", AllocateRequest{
		AssetID:    asset.ID.String(),
		EmployeeID: employee.ID.String(),
	})
	require.NoError(t, err)

	err = svc.DeleteAsset(ctx, "", asset.ID.String())
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))

	_, err = env.allocation.Return(ctx, "", allocation.ID.String(), ReturnRequest{
		ReturnReason: "done",
		Status:       model.AssetAvailable,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAsset(ctx, "", asset.ID.String()))
	assert.Contains(t, env.auditActions(t), model.ActionDeleteAsset)
}

func TestUpdateAssetKeepsLifecycleStatus(t *testing.T) {
	env := newTestEnv(t)
	svc := newAssetService(env)
	ctx := context.Background()

	assetType := env.seedAssetType(t, "Laptop")
	asset := env.seedAsset(t, assetType.ID, "SN-UPD", model.AssetAllocated)

	updated, err := svc.UpdateAsset(ctx, "", asset.ID.String(), AssetRequest{
		AssetTypeID:  assetType.ID.String(),
		SerialNumber: "SN-UPD",
		Status:       model.AssetAvailable, // ignored, transitions go through returns
	})
	require.NoError(t, err)
	assert.Equal(t, model.AssetAllocated, updated.Status)
}
