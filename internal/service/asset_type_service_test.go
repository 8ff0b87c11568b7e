package service

import (
	"context"
	"testing"

	"backend/internal/model"
	"backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAssetTypeService(env *testEnv) AssetTypeService {
	return NewAssetTypeService(env.assetTypes, env.audits)
}

func TestCreateAssetTypeRejectsBadSchema(t *testing.T) {
	env := newTestEnv(t)
	svc := newAssetTypeService(env)
	ctx := context.Background()

	_, err := svc.CreateAssetType(ctx, "", AssetTypeRequest{
		Name:   "Laptop",
		Schema: []model.SchemaField{{Name: "ram", Type: "megabytes"}},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))

	_, err = svc.CreateAssetType(ctx, "", AssetTypeRequest{
		Name: "Laptop",
		Schema: []model.SchemaField{
			{Name: "ram", Type: "text"},
			{Name: "ram", Type: "text"},
		},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestCreateAssetTypeNameConflictIsCaseInsensitive(t *testing.T) {
	env := newTestEnv(t)
	svc := newAssetTypeService(env)
	ctx := context.Background()

	_, err := svc.CreateAssetType(ctx, "", AssetTypeRequest{Name: "Laptop"})
	require.NoError(t, err)
	assert.Contains(t, env.auditActions(t), model.ActionCreateAssetType)

	_, err = svc.CreateAssetType(ctx, "", AssetTypeRequest{Name: "LAPTOP"})
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))
}

func TestImportAssetTypesSkipsDuplicates(t *testing.T) {
	env := newTestEnv(t)
	svc := newAssetTypeService(env)

	result, err := svc.ImportAssetTypes(context.Background(), "", []AssetTypeRequest{
		{Name: "Laptop"},
		{Name: "laptop"},
		{Name: "Monitor"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Count)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 1, result.Errors[0].Row)
	assert.Contains(t, env.auditActions(t), model.ActionImportAssetTypes)
}
