package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"backend/internal/model"
	"backend/internal/repository"
	"backend/pkg/apperror"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// EmployeeRef is a loose reference to an employee: either an id, or a bundle
// keyed by the EmpID business key with enough detail to auto-create.
type EmployeeRef struct {
	ID          string `json:"id"`
	EmpID       string `json:"emp_id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Branch      string `json:"branch"`
	Department  string `json:"department"`
	Designation string `json:"designation"`
	Mobile      string `json:"mobile"`
}

// AssetRef is a loose reference to an asset: either an id, or a bundle keyed
// by serial number with a type reference for auto-creation.
type AssetRef struct {
	ID             string                 `json:"id"`
	SerialNumber   string                 `json:"serial_number"`
	AssetTypeID    string                 `json:"asset_type_id"`
	AssetTypeName  string                 `json:"asset_type_name"`
	Specifications map[string]interface{} `json:"specifications"`
}

// ResolverService translates loose, human-entered references into entity ids,
// creating entities when no match exists. Every auto-creation writes an audit row.
type ResolverService interface {
	ResolveEmployee(ctx context.Context, actorID string, ref EmployeeRef) (uuid.UUID, error)
	ResolveAsset(ctx context.Context, actorID string, ref AssetRef) (uuid.UUID, error)
	ResolveAssetType(ctx context.Context, actorID string, name string) (uuid.UUID, error)
}

type resolverService struct {
	employeeRepo  repository.EmployeeRepository
	assetRepo     repository.AssetRepository
	assetTypeRepo repository.AssetTypeRepository
	auditRepo     repository.AuditRepository
}

func NewResolverService(
	employeeRepo repository.EmployeeRepository,
	assetRepo repository.AssetRepository,
	assetTypeRepo repository.AssetTypeRepository,
	auditRepo repository.AuditRepository,
) ResolverService {
	return &resolverService{
		employeeRepo:  employeeRepo,
		assetRepo:     assetRepo,
		assetTypeRepo: assetTypeRepo,
		auditRepo:     auditRepo,
	}
}

// NormalizeSerial canonicalizes a serial number for storage and lookup
func NormalizeSerial(serial string) string {
	return strings.ToUpper(strings.TrimSpace(serial))
}

func (s *resolverService) ResolveEmployee(ctx context.Context, actorID string, ref EmployeeRef) (uuid.UUID, error) {
	if ref.ID != "" {
		id, err := uuid.Parse(ref.ID)
		if err != nil {
			return uuid.Nil, apperror.Validation("invalid employee id: %s", ref.ID)
		}
		if _, err := s.employeeRepo.FindByID(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return uuid.Nil, apperror.NotFound("employee not found: %s", ref.ID)
			}
			return uuid.Nil, apperror.Persistence(err, "failed to look up employee")
		}
		return id, nil
	}

	if ref.EmpID != "" {
		existing, err := s.employeeRepo.FindByEmpID(ctx, ref.EmpID)
		if err == nil {
			return existing.ID, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, apperror.Persistence(err, "failed to look up employee by emp id")
		}
	}

	if ref.EmpID == "" || ref.Name == "" {
		return uuid.Nil, apperror.Validation("employee reference requires an id, or an emp_id with a name")
	}

	employee := &model.Employee{
		EmpID:       ref.EmpID,
		Name:        ref.Name,
		Email:       ref.Email,
		Branch:      ref.Branch,
		Department:  ref.Department,
		Designation: ref.Designation,
		Mobile:      ref.Mobile,
		Status:      model.EmployeeActive,
	}
	if err := s.employeeRepo.Create(ctx, employee); err != nil {
		return uuid.Nil, apperror.Persistence(err, "failed to auto-create employee")
	}

	if err := s.logAutoCreate(ctx, actorID, model.ActionAutoCreateEmployee, "Employee", employee.ID, map[string]interface{}{
		"emp_id": employee.EmpID,
		"name":   employee.Name,
	}); err != nil {
		return uuid.Nil, err
	}

	return employee.ID, nil
}

func (s *resolverService) ResolveAsset(ctx context.Context, actorID string, ref AssetRef) (uuid.UUID, error) {
	if ref.ID != "" {
		id, err := uuid.Parse(ref.ID)
		if err != nil {
			return uuid.Nil, apperror.Validation("invalid asset id: %s", ref.ID)
		}
		if _, err := s.assetRepo.FindByID(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return uuid.Nil, apperror.NotFound("asset not found: %s", ref.ID)
			}
			return uuid.Nil, apperror.Persistence(err, "failed to look up asset")
		}
		return id, nil
	}

	if ref.SerialNumber == "" {
		return uuid.Nil, apperror.Validation("asset reference requires an id or a serial number")
	}

	// Existing asset wins; its status is not touched here
	existing, err := s.assetRepo.FindBySerial(ctx, ref.SerialNumber)
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return uuid.Nil, apperror.Persistence(err, "failed to look up asset by serial")
	}

	var typeID uuid.UUID
	switch {
	case ref.AssetTypeID != "":
		typeID, err = uuid.Parse(ref.AssetTypeID)
		if err != nil {
			return uuid.Nil, apperror.Validation("invalid asset type id: %s", ref.AssetTypeID)
		}
		if _, err := s.assetTypeRepo.FindByID(ctx, typeID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return uuid.Nil, apperror.NotFound("asset type not found: %s", ref.AssetTypeID)
			}
			return uuid.Nil, apperror.Persistence(err, "failed to look up asset type")
		}
	case ref.AssetTypeName != "":
		typeID, err = s.ResolveAssetType(ctx, actorID, ref.AssetTypeName)
		if err != nil {
			return uuid.Nil, err
		}
	default:
		return uuid.Nil, apperror.Validation("asset %s does not exist and no asset type was given", ref.SerialNumber)
	}

	specs := ref.Specifications
	if specs == nil {
		specs = map[string]interface{}{}
	}
	asset := &model.Asset{
		AssetTypeID:    typeID,
		SerialNumber:   NormalizeSerial(ref.SerialNumber),
		Status:         model.AssetAvailable,
		Specifications: specs,
	}
	if err := s.assetRepo.Create(ctx, asset); err != nil {
		return uuid.Nil, apperror.Persistence(err, "failed to auto-create asset")
	}

	if err := s.logAutoCreate(ctx, actorID, model.ActionAutoCreateAsset, "Asset", asset.ID, map[string]interface{}{
		"serial_number": asset.SerialNumber,
	}); err != nil {
		return uuid.Nil, err
	}

	return asset.ID, nil
}

// ResolveAssetType finds a type by name (case-insensitive) or creates it with
// an empty schema. Repeated calls with the same name are idempotent.
func (s *resolverService) ResolveAssetType(ctx context.Context, actorID string, name string) (uuid.UUID, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return uuid.Nil, apperror.Validation("asset type name is required")
	}

	existing, err := s.assetTypeRepo.FindByName(ctx, name)
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return uuid.Nil, apperror.Persistence(err, "failed to look up asset type")
	}

	assetType := &model.AssetType{
		Name:        name,
		Description: "Auto-created during allocation/import",
	}
	if err := s.assetTypeRepo.Create(ctx, assetType); err != nil {
		return uuid.Nil, apperror.Persistence(err, "failed to auto-create asset type")
	}

	if err := s.logAutoCreate(ctx, actorID, model.ActionAutoCreateAssetType, "AssetType", assetType.ID, map[string]interface{}{
		"name": assetType.Name,
	}); err != nil {
		return uuid.Nil, err
	}

	return assetType.ID, nil
}

func (s *resolverService) logAutoCreate(ctx context.Context, actorID, action, entityType string, entityID uuid.UUID, detail map[string]interface{}) error {
	var uid *uuid.UUID
	if parsed, err := uuid.Parse(actorID); err == nil {
		uid = &parsed
	}

	details, _ := json.Marshal(detail)
	entry := &model.AuditLog{
		UserID:     uid,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID.String(),
		Details:    datatypes.JSON(details),
	}
	if err := s.auditRepo.Log(ctx, entry); err != nil {
		return apperror.Persistence(err, "failed to write audit log")
	}
	return nil
}
