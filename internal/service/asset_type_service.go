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
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DTOs
type AssetTypeRequest struct {
	Name        string              `json:"name" binding:"required"`
	Description string              `json:"description"`
	Schema      []model.SchemaField `json:"schema"`
}

type AssetTypeService interface {
	ListAssetTypes(ctx context.Context) ([]model.AssetType, error)
	CreateAssetType(ctx context.Context, userID string, req AssetTypeRequest) (*model.AssetType, error)
	UpdateAssetType(ctx context.Context, userID string, id string, req AssetTypeRequest) (*model.AssetType, error)
	ImportAssetTypes(ctx context.Context, userID string, rows []AssetTypeRequest) (ImportResult, error)
}

type assetTypeService struct {
	assetTypeRepo repository.AssetTypeRepository
	auditRepo     repository.AuditRepository
}

func NewAssetTypeService(assetTypeRepo repository.AssetTypeRepository, auditRepo repository.AuditRepository) AssetTypeService {
	return &assetTypeService{assetTypeRepo: assetTypeRepo, auditRepo: auditRepo}
}

func (s *assetTypeService) ListAssetTypes(ctx context.Context) ([]model.AssetType, error) {
	return s.assetTypeRepo.List(ctx)
}

func (s *assetTypeService) CreateAssetType(ctx context.Context, userID string, req AssetTypeRequest) (*model.AssetType, error) {
	if err := validateSchemaFields(req.Schema); err != nil {
		return nil, err
	}

	// Name equality is case-insensitive
	if _, err := s.assetTypeRepo.FindByName(ctx, req.Name); err == nil {
		return nil, apperror.Conflict("asset type %q already exists", req.Name)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.Persistence(err, "failed to check asset type name")
	}

	assetType := &model.AssetType{
		Name:        req.Name,
		Description: req.Description,
		Schema:      datatypes.NewJSONSlice(req.Schema),
	}
	if err := s.assetTypeRepo.Create(ctx, assetType); err != nil {
		return nil, apperror.Persistence(err, "failed to create asset type")
	}
	s.audit(ctx, userID, model.ActionCreateAssetType, assetType)

	return assetType, nil
}

func (s *assetTypeService) UpdateAssetType(ctx context.Context, userID string, id string, req AssetTypeRequest) (*model.AssetType, error) {
	typeID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperror.Validation("invalid asset type id: %s", id)
	}
	if err := validateSchemaFields(req.Schema); err != nil {
		return nil, err
	}

	assetType, err := s.assetTypeRepo.FindByID(ctx, typeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("asset type not found: %s", id)
		}
		return nil, apperror.Persistence(err, "failed to load asset type")
	}

	assetType.Name = req.Name
	assetType.Description = req.Description
	assetType.Schema = datatypes.NewJSONSlice(req.Schema)
	if err := s.assetTypeRepo.Update(ctx, assetType); err != nil {
		return nil, apperror.Persistence(err, "failed to update asset type")
	}
	s.audit(ctx, userID, model.ActionUpdateAssetType, assetType)

	return assetType, nil
}

func (s *assetTypeService) ImportAssetTypes(ctx context.Context, userID string, rows []AssetTypeRequest) (ImportResult, error) {
	result := ImportResult{}
	for i, row := range rows {
		if _, err := s.CreateAssetType(ctx, userID, row); err != nil {
			log.Printf("asset type import row %d skipped: %v", i, err)
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
		Action:     model.ActionImportAssetTypes,
		EntityType: "AssetType",
		Details:    importSummaryDetails(result),
	}); err != nil {
		log.Printf("failed to write asset type import audit log: %v", err)
	}

	return result, nil
}

func (s *assetTypeService) audit(ctx context.Context, userID, action string, assetType *model.AssetType) {
	var uid *uuid.UUID
	if parsed, err := uuid.Parse(userID); err == nil {
		uid = &parsed
	}
	details, _ := json.Marshal(map[string]interface{}{"name": assetType.Name})
	if err := s.auditRepo.Log(ctx, &model.AuditLog{
		UserID:     uid,
		Action:     action,
		EntityType: "AssetType",
		EntityID:   assetType.ID.String(),
		Details:    datatypes.JSON(details),
	}); err != nil {
		log.Printf("failed to write asset type audit log: %v", err)
	}
}

func validateSchemaFields(schema []model.SchemaField) error {
	seen := make(map[string]bool, len(schema))
	for _, field := range schema {
		if field.Name == "" {
			return apperror.Validation("schema field name is required")
		}
		if seen[field.Name] {
			return apperror.Validation("duplicate schema field %q", field.Name)
		}
		seen[field.Name] = true
		switch field.Type {
		case "text", "number", "boolean", "select":
		default:
			return apperror.Validation("schema field %q has unknown type %q", field.Name, field.Type)
		}
	}
	return nil
}
