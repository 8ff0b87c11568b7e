package repository

import (
	"context"

	"backend/internal/model"

	"gorm.io/gorm"
)

type VerificationRepository interface {
	Create(ctx context.Context, verification *model.Verification) error
	List(ctx context.Context, page, limit int) ([]model.Verification, int64, error)
}

type verificationRepository struct {
	db *gorm.DB
}

func NewVerificationRepository(db *gorm.DB) VerificationRepository {
	return &verificationRepository{db: db}
}

func (r *verificationRepository) Create(ctx context.Context, verification *model.Verification) error {
	return GetDB(ctx, r.db).Create(verification).Error
}

func (r *verificationRepository) List(ctx context.Context, page, limit int) ([]model.Verification, int64, error) {
	var verifications []model.Verification
	var total int64

	if err := GetDB(ctx, r.db).Model(&model.Verification{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := GetDB(ctx, r.db).
		Preload("Asset").
		Preload("Verifier").
		Order("verified_at desc").
		Offset(offset).
		Limit(limit).
		Find(&verifications).Error; err != nil {
		return nil, 0, err
	}

	return verifications, total, nil
}
