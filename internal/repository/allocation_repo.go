package repository

import (
	"context"

	"backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AllocationRepository interface {
	Create(ctx context.Context, allocation *model.Allocation) error
	Update(ctx context.Context, allocation *model.Allocation) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Allocation, error)
	FindActiveByAssetID(ctx context.Context, assetID uuid.UUID) (*model.Allocation, error)
	CountActiveByAssetID(ctx context.Context, assetID uuid.UUID) (int64, error)
	List(ctx context.Context, page, limit int) ([]model.Allocation, int64, error)
}

type allocationRepository struct {
	db *gorm.DB
}

func NewAllocationRepository(db *gorm.DB) AllocationRepository {
	return &allocationRepository{db: db}
}

func (r *allocationRepository) Create(ctx context.Context, allocation *model.Allocation) error {
	return GetDB(ctx, r.db).Create(allocation).Error
}

func (r *allocationRepository) Update(ctx context.Context, allocation *model.Allocation) error {
	return GetDB(ctx, r.db).Save(allocation).Error
}

func (r *allocationRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Allocation, error) {
	var allocation model.Allocation
	if err := GetDB(ctx, r.db).First(&allocation, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &allocation, nil
}

func (r *allocationRepository) FindActiveByAssetID(ctx context.Context, assetID uuid.UUID) (*model.Allocation, error) {
	var allocation model.Allocation
	if err := GetDB(ctx, r.db).
		Where("asset_id = ? AND status = ?", assetID, model.AllocationActive).
		First(&allocation).Error; err != nil {
		return nil, err
	}
	return &allocation, nil
}

func (r *allocationRepository) CountActiveByAssetID(ctx context.Context, assetID uuid.UUID) (int64, error) {
	var total int64
	err := GetDB(ctx, r.db).Model(&model.Allocation{}).
		Where("asset_id = ? AND status = ?", assetID, model.AllocationActive).
		Count(&total).Error
	return total, err
}

func (r *allocationRepository) List(ctx context.Context, page, limit int) ([]model.Allocation, int64, error) {
	var allocations []model.Allocation
	var total int64

	db := GetDB(ctx, r.db).Model(&model.Allocation{})
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := GetDB(ctx, r.db).
		Preload("Asset").
		Preload("Asset.Type").
		Preload("Employee").
		Order("allocated_at desc").
		Offset(offset).
		Limit(limit).
		Find(&allocations).Error; err != nil {
		return nil, 0, err
	}

	return allocations, total, nil
}
