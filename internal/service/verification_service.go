package service

import (
	"context"
	"encoding/json"
	"errors"

	"backend/internal/model"
	"backend/internal/repository"
	"backend/pkg/apperror"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type VerificationRequest struct {
	AssetID string   `json:"asset_id" binding:"required"`
	Status  string   `json:"status" binding:"required"`
	Remarks string   `json:"remarks"`
	Images  []string `json:"images"`
}

type VerificationService interface {
	ListVerifications(ctx context.Context, page, limit int) ([]model.Verification, int64, error)
	CreateVerification(ctx context.Context, verifierID string, req VerificationRequest) (*model.Verification, error)
}

type verificationService struct {
	verificationRepo repository.VerificationRepository
	assetRepo        repository.AssetRepository
	auditRepo        repository.AuditRepository
	txManager        repository.TransactionManager
}

func NewVerificationService(
	verificationRepo repository.VerificationRepository,
	assetRepo repository.AssetRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
) VerificationService {
	return &verificationService{
		verificationRepo: verificationRepo,
		assetRepo:        assetRepo,
		auditRepo:        auditRepo,
		txManager:        txManager,
	}
}

func (s *verificationService) ListVerifications(ctx context.Context, page, limit int) ([]model.Verification, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	return s.verificationRepo.List(ctx, page, limit)
}

func (s *verificationService) CreateVerification(ctx context.Context, verifierID string, req VerificationRequest) (*model.Verification, error) {
	vid, err := uuid.Parse(verifierID)
	if err != nil {
		return nil, apperror.Validation("invalid verifier id: %s", verifierID)
	}
	assetID, err := uuid.Parse(req.AssetID)
	if err != nil {
		return nil, apperror.Validation("invalid asset id: %s", req.AssetID)
	}

	switch req.Status {
	case model.VerificationApproved, model.VerificationRejected, model.VerificationPending:
	default:
		return nil, apperror.Validation("invalid verification status: %s", req.Status)
	}

	asset, err := s.assetRepo.FindByID(ctx, assetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("asset not found: %s", req.AssetID)
		}
		return nil, apperror.Persistence(err, "failed to load asset")
	}

	verification := &model.Verification{
		AssetID:    assetID,
		VerifierID: vid,
		Status:     req.Status,
		Remarks:    req.Remarks,
		Images:     datatypes.NewJSONSlice(req.Images),
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if createErr := s.verificationRepo.Create(txCtx, verification); createErr != nil {
			return apperror.Persistence(createErr, "failed to create verification")
		}

		details, _ := json.Marshal(map[string]interface{}{
			"serial_number": asset.SerialNumber,
			"status":        verification.Status,
		})
		if auditErr := s.auditRepo.Log(txCtx, &model.AuditLog{
			UserID:     &vid,
			Action:     model.ActionVerifyAsset,
			EntityType: "Asset",
			EntityID:   assetID.String(),
			Details:    datatypes.JSON(details),
		}); auditErr != nil {
			return apperror.Persistence(auditErr, "failed to write audit log")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return verification, nil
}
