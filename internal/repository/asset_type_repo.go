package repository

import (
	"context"

	"backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AssetTypeRepository interface {
	Create(ctx context.Context, assetType *model.AssetType) error
	Update(ctx context.Context, assetType *model.AssetType) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.AssetType, error)
	FindByName(ctx context.Context, name string) (*model.AssetType, error)
	List(ctx context.Context) ([]model.AssetType, error)
}

type assetTypeRepository struct {
	db *gorm.DB
}

func NewAssetTypeRepository(db *gorm.DB) AssetTypeRepository {
	return &assetTypeRepository{db: db}
}

func (r *assetTypeRepository) Create(ctx context.Context, assetType *model.AssetType) error {
	return GetDB(ctx, r.db).Create(assetType).Error
}

func (r *assetTypeRepository) Update(ctx context.Context, assetType *model.AssetType) error {
	return GetDB(ctx, r.db).Save(assetType).Error
}

func (r *assetTypeRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.AssetType, error) {
	var assetType model.AssetType
	if err := GetDB(ctx, r.db).First(&assetType, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &assetType, nil
}

// FindByName matches the type name case-insensitively
func (r *assetTypeRepository) FindByName(ctx context.Context, name string) (*model.AssetType, error) {
	var assetType model.AssetType
	if err := GetDB(ctx, r.db).Where("LOWER(name) = LOWER(?)", name).First(&assetType).Error; err != nil {
		return nil, err
	}
	return &assetType, nil
}

func (r *assetTypeRepository) List(ctx context.Context) ([]model.AssetType, error) {
	var types []model.AssetType
	if err := GetDB(ctx, r.db).Order("name asc").Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}
