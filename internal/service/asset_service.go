package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"backend/internal/model"
	"backend/internal/repository"
	"backend/pkg/apperror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DTOs
type AssetRequest struct {
	AssetTypeID    string                 `json:"asset_type_id" binding:"required"`
	SerialNumber   string                 `json:"serial_number" binding:"required"`
	Status         string                 `json:"status"`
	Specifications map[string]interface{} `json:"specifications"`
	Images         []string               `json:"images"`
	PurchaseCost   string                 `json:"purchase_cost"`
}

type AssetService interface {
	ListAssets(ctx context.Context, query repository.AssetQuery, page, limit int) ([]model.Asset, int64, error)
	GetAsset(ctx context.Context, id string) (*model.Asset, error)
	CreateAsset(ctx context.Context, userID string, req AssetRequest) (*model.Asset, error)
	UpdateAsset(ctx context.Context, userID string, id string, req AssetRequest) (*model.Asset, error)
	DeleteAsset(ctx context.Context, userID string, id string) error
	ImportAssets(ctx context.Context, userID string, rows []AssetRequest) (ImportResult, error)
}

type assetService struct {
	assetRepo      repository.AssetRepository
	assetTypeRepo  repository.AssetTypeRepository
	allocationRepo repository.AllocationRepository
	auditRepo      repository.AuditRepository
	txManager      repository.TransactionManager
}

func NewAssetService(
	assetRepo repository.AssetRepository,
	assetTypeRepo repository.AssetTypeRepository,
	allocationRepo repository.AllocationRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
) AssetService {
	return &assetService{
		assetRepo:      assetRepo,
		assetTypeRepo:  assetTypeRepo,
		allocationRepo: allocationRepo,
		auditRepo:      auditRepo,
		txManager:      txManager,
	}
}

func (s *assetService) ListAssets(ctx context.Context, query repository.AssetQuery, page, limit int) ([]model.Asset, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	return s.assetRepo.List(ctx, query, page, limit)
}

func (s *assetService) GetAsset(ctx context.Context, id string) (*model.Asset, error) {
	assetID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperror.Validation("invalid asset id: %s", id)
	}
	asset, err := s.assetRepo.FindByID(ctx, assetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("asset not found: %s", id)
		}
		return nil, apperror.Persistence(err, "failed to load asset")
	}
	return asset, nil
}

func (s *assetService) CreateAsset(ctx context.Context, userID string, req AssetRequest) (*model.Asset, error) {
	asset, err := s.assetFromRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	if _, lookupErr := s.assetRepo.FindBySerial(ctx, asset.SerialNumber); lookupErr == nil {
		return nil, apperror.Conflict("asset with serial number %s already exists", asset.SerialNumber)
	} else if !errors.Is(lookupErr, gorm.ErrRecordNotFound) {
		return nil, apperror.Persistence(lookupErr, "failed to check serial number uniqueness")
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if createErr := s.assetRepo.Create(txCtx, asset); createErr != nil {
			return apperror.Persistence(createErr, "failed to create asset")
		}
		return s.audit(txCtx, userID, model.ActionCreateAsset, asset.ID.String(), map[string]interface{}{
			"serial_number": asset.SerialNumber,
			"asset_type_id": asset.AssetTypeID.String(),
		})
	})
	if err != nil {
		return nil, err
	}

	return asset, nil
}

func (s *assetService) UpdateAsset(ctx context.Context, userID string, id string, req AssetRequest) (*model.Asset, error) {
	assetID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperror.Validation("invalid asset id: %s", id)
	}

	asset, err := s.assetRepo.FindByID(ctx, assetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("asset not found: %s", id)
		}
		return nil, apperror.Persistence(err, "failed to load asset")
	}

	updated, err := s.assetFromRequest(ctx, req)
	if err != nil {
		return nil, err
	}
	if updated.SerialNumber != asset.SerialNumber {
		if _, lookupErr := s.assetRepo.FindBySerial(ctx, updated.SerialNumber); lookupErr == nil {
			return nil, apperror.Conflict("asset with serial number %s already exists", updated.SerialNumber)
		} else if !errors.Is(lookupErr, gorm.ErrRecordNotFound) {
			return nil, apperror.Persistence(lookupErr, "failed to check serial number uniqueness")
		}
	}
	// Status transitions go through the allocation and return flows, not here
	updated.ID = asset.ID
	updated.Status = asset.Status
	updated.CreatedAt = asset.CreatedAt
	updated.Type = nil

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if saveErr := s.assetRepo.Update(txCtx, updated); saveErr != nil {
			return apperror.Persistence(saveErr, "failed to update asset")
		}
		return s.audit(txCtx, userID, model.ActionUpdateAsset, updated.ID.String(), map[string]interface{}{
			"serial_number": updated.SerialNumber,
		})
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// DeleteAsset removes an asset that has no active allocation
func (s *assetService) DeleteAsset(ctx context.Context, userID string, id string) error {
	assetID, err := uuid.Parse(id)
	if err != nil {
		return apperror.Validation("invalid asset id: %s", id)
	}

	asset, err := s.assetRepo.FindByID(ctx, assetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("asset not found: %s", id)
		}
		return apperror.Persistence(err, "failed to load asset")
	}

	active, err := s.allocationRepo.CountActiveByAssetID(ctx, assetID)
	if err != nil {
		return apperror.Persistence(err, "failed to check active allocations")
	}
	if active > 0 {
		return apperror.Conflict("asset %s has an active allocation", asset.SerialNumber)
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if delErr := s.assetRepo.Delete(txCtx, assetID); delErr != nil {
			return apperror.Persistence(delErr, "failed to delete asset")
		}
		return s.audit(txCtx, userID, model.ActionDeleteAsset, assetID.String(), map[string]interface{}{
			"serial_number": asset.SerialNumber,
		})
	})
}

// ImportAssets creates assets row by row, skipping rows that fail validation
// or collide on serial number, and reports the aggregate tally.
func (s *assetService) ImportAssets(ctx context.Context, userID string, rows []AssetRequest) (ImportResult, error) {
	result := ImportResult{}
	for i, row := range rows {
		if _, err := s.CreateAsset(ctx, userID, row); err != nil {
			log.Printf("asset import row %d skipped: %v", i, err)
			result.Errors = append(result.Errors, RowError{Row: i, Message: err.Error()})
			continue
		}
		result.Count++
	}

	var uid *uuid.UUID
	if parsed, err := uuid.Parse(userID); err == nil {
		uid = &parsed
	}
	if err := s.auditRepo.Log(ctx, &model.AuditLog{
		UserID:     uid,
		Action:     model.ActionImportAssets,
		EntityType: "Asset",
		Details:    importSummaryDetails(result),
	}); err != nil {
		log.Printf("failed to write asset import audit log: %v", err)
	}

	return result, nil
}

func (s *assetService) audit(ctx context.Context, userID, action, entityID string, detail map[string]interface{}) error {
	var uid *uuid.UUID
	if parsed, err := uuid.Parse(userID); err == nil {
		uid = &parsed
	}
	details, _ := json.Marshal(detail)
	if err := s.auditRepo.Log(ctx, &model.AuditLog{
		UserID:     uid,
		Action:     action,
		EntityType: "Asset",
		EntityID:   entityID,
		Details:    datatypes.JSON(details),
	}); err != nil {
		return apperror.Persistence(err, "failed to write audit log")
	}
	return nil
}

// assetFromRequest builds and validates an Asset against its type's schema
func (s *assetService) assetFromRequest(ctx context.Context, req AssetRequest) (*model.Asset, error) {
	if req.SerialNumber == "" {
		return nil, apperror.Validation("serial_number is required")
	}

	typeID, err := uuid.Parse(req.AssetTypeID)
	if err != nil {
		return nil, apperror.Validation("invalid asset_type_id: %s", req.AssetTypeID)
	}
	assetType, err := s.assetTypeRepo.FindByID(ctx, typeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("asset type not found: %s", req.AssetTypeID)
		}
		return nil, apperror.Persistence(err, "failed to load asset type")
	}

	specs := req.Specifications
	if specs == nil {
		specs = map[string]interface{}{}
	}
	if err := assetType.ValidateSpecifications(specs); err != nil {
		return nil, apperror.Validation("%v", err)
	}

	status := req.Status
	if status == "" {
		status = model.AssetAvailable
	}
	if !model.ValidAssetStatus(status) {
		return nil, apperror.Validation("invalid asset status: %s", status)
	}

	cost := decimal.Zero
	if req.PurchaseCost != "" {
		cost, err = decimal.NewFromString(req.PurchaseCost)
		if err != nil {
			return nil, apperror.Validation("invalid purchase_cost: %s", req.PurchaseCost)
		}
		if cost.IsNegative() {
			return nil, apperror.Validation("purchase_cost must not be negative")
		}
	}

	return &model.Asset{
		AssetTypeID:    typeID,
		SerialNumber:   NormalizeSerial(req.SerialNumber),
		Status:         status,
		Specifications: datatypes.JSONMap(specs),
		Images:         datatypes.NewJSONSlice(req.Images),
		PurchaseCost:   cost,
	}, nil
}
