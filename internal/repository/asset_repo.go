package repository

import (
	"context"
	"strings"

	"backend/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AssetQuery carries optional list filters
type AssetQuery struct {
	Search string
	TypeID *uuid.UUID
	Status string
}

type AssetRepository interface {
	Create(ctx context.Context, asset *model.Asset) error
	Update(ctx context.Context, asset *model.Asset) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Asset, error)
	FindBySerial(ctx context.Context, serial string) (*model.Asset, error)
	List(ctx context.Context, query AssetQuery, page, limit int) ([]model.Asset, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	UpdateStatusIf(ctx context.Context, id uuid.UUID, fromStatus, toStatus string) (bool, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
	CountByType(ctx context.Context) ([]model.TypeCount, error)
	SumPurchaseCost(ctx context.Context) (decimal.Decimal, error)
}

type assetRepository struct {
	db *gorm.DB
}

func NewAssetRepository(db *gorm.DB) AssetRepository {
	return &assetRepository{db: db}
}

func (r *assetRepository) Create(ctx context.Context, asset *model.Asset) error {
	return GetDB(ctx, r.db).Create(asset).Error
}

func (r *assetRepository) Update(ctx context.Context, asset *model.Asset) error {
	return GetDB(ctx, r.db).Save(asset).Error
}

func (r *assetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Asset{}).Error
}

func (r *assetRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Asset, error) {
	var asset model.Asset
	if err := GetDB(ctx, r.db).Preload("Type").First(&asset, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &asset, nil
}

// FindBySerial looks up by the canonical upper-cased serial number
func (r *assetRepository) FindBySerial(ctx context.Context, serial string) (*model.Asset, error) {
	var asset model.Asset
	canonical := strings.ToUpper(strings.TrimSpace(serial))
	if err := GetDB(ctx, r.db).Where("serial_number = ?", canonical).First(&asset).Error; err != nil {
		return nil, err
	}
	return &asset, nil
}

func (r *assetRepository) List(ctx context.Context, query AssetQuery, page, limit int) ([]model.Asset, int64, error) {
	var assets []model.Asset
	var total int64

	db := GetDB(ctx, r.db).Model(&model.Asset{})
	if query.Search != "" {
		db = db.Where("serial_number LIKE ?", "%"+strings.ToUpper(query.Search)+"%")
	}
	if query.TypeID != nil {
		db = db.Where("asset_type_id = ?", *query.TypeID)
	}
	if query.Status != "" {
		db = db.Where("status = ?", query.Status)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Preload("Type").Order("created_at desc").Offset(offset).Limit(limit).Find(&assets).Error; err != nil {
		return nil, 0, err
	}

	return assets, total, nil
}

func (r *assetRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	return GetDB(ctx, r.db).Model(&model.Asset{}).Where("id = ?", id).Update("status", status).Error
}

// UpdateStatusIf flips status only when the current status matches fromStatus.
// The affected-row count makes the transition check atomic against concurrent
// writers; returns false when the asset was not in fromStatus.
func (r *assetRepository) UpdateStatusIf(ctx context.Context, id uuid.UUID, fromStatus, toStatus string) (bool, error) {
	res := GetDB(ctx, r.db).Model(&model.Asset{}).
		Where("id = ? AND status = ?", id, fromStatus).
		Update("status", toStatus)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *assetRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	if err := GetDB(ctx, r.db).Model(&model.Asset{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *assetRepository) CountByType(ctx context.Context) ([]model.TypeCount, error) {
	var rows []model.TypeCount
	if err := GetDB(ctx, r.db).Table("assets").
		Select("asset_types.name as name, count(*) as count").
		Joins("JOIN asset_types ON asset_types.id = assets.asset_type_id").
		Group("asset_types.name").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *assetRepository) SumPurchaseCost(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := GetDB(ctx, r.db).Model(&model.Asset{}).
		Select("COALESCE(SUM(purchase_cost), 0)").
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}
