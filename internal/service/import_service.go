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

// RowError reports why one import row was skipped. Row is the zero-based
// index in the submitted batch.
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportResult is the aggregate outcome of one batch
type ImportResult struct {
	Count  int        `json:"count"`
	Errors []RowError `json:"errors,omitempty"`
}

// ImportService drives the resolver and the allocation state machine over a
// batch of heterogeneous spreadsheet rows. Rows are processed strictly in
// order; one bad row never aborts the batch.
type ImportService interface {
	// ImportAllocations processes allocation rows. With autoCreate, rows
	// reference employees/assets by business key and missing entities are
	// created on the fly; without it, rows must carry entity ids.
	ImportAllocations(ctx context.Context, userID string, rows []Row, autoCreate bool) (ImportResult, error)
}

type importService struct {
	resolver       ResolverService
	allocations    AllocationService
	allocationRepo repository.AllocationRepository
	assetRepo      repository.AssetRepository
	auditRepo      repository.AuditRepository
}

func NewImportService(
	resolver ResolverService,
	allocations AllocationService,
	allocationRepo repository.AllocationRepository,
	assetRepo repository.AssetRepository,
	auditRepo repository.AuditRepository,
) ImportService {
	return &importService{
		resolver:       resolver,
		allocations:    allocations,
		allocationRepo: allocationRepo,
		assetRepo:      assetRepo,
		auditRepo:      auditRepo,
	}
}

func (s *importService) ImportAllocations(ctx context.Context, userID string, rows []Row, autoCreate bool) (ImportResult, error) {
	result := ImportResult{}
	for i, row := range rows {
		if err := s.importRow(ctx, userID, row, autoCreate); err != nil {
			log.Printf("allocation import row %d skipped: %v (row=%v)", i, err, row)
			result.Errors = append(result.Errors, RowError{Row: i, Message: err.Error()})
			continue
		}
		result.Count++
	}

	s.auditSummary(ctx, userID, result)
	return result, nil
}

// importRow applies resolution plus one state-machine transition for a single
// row. Side effects that succeed before a later failure in the same row (an
// auto-created employee, say) are not rolled back; a corrected re-import then
// finds them instead of duplicating them.
func (s *importService) importRow(ctx context.Context, userID string, row Row, autoCreate bool) error {
	var employeeRef EmployeeRef
	var assetRef AssetRef

	if autoCreate {
		employeeRef = EmployeeRef{
			EmpID:       fieldValue(row, aliasEmpID),
			Name:        fieldValue(row, aliasName),
			Email:       fieldValue(row, aliasEmail),
			Branch:      fieldValue(row, aliasBranch),
			Department:  fieldValue(row, aliasDepartment),
			Designation: fieldValue(row, aliasDesignation),
			Mobile:      fieldValue(row, aliasMobile),
		}
		assetRef = AssetRef{
			SerialNumber:  fieldValue(row, aliasSerial),
			AssetTypeName: fieldValue(row, aliasAssetType),
		}
	} else {
		employeeRef = EmployeeRef{ID: fieldValue(row, aliasEmployeeID)}
		assetRef = AssetRef{ID: fieldValue(row, aliasAssetID)}
		if employeeRef.ID == "" || assetRef.ID == "" {
			return apperror.Validation("row requires employeeId and assetId")
		}
	}

	status := fieldValue(row, aliasStatus)
	if status == model.AllocationReturned {
		return s.importReturn(ctx, userID, row, assetRef)
	}

	employeeID, err := s.resolver.ResolveEmployee(ctx, userID, employeeRef)
	if err != nil {
		return err
	}
	assetID, err := s.resolver.ResolveAsset(ctx, userID, assetRef)
	if err != nil {
		return err
	}

	_, err = s.allocations.Allocate(ctx, userID, AllocateRequest{
		AssetID:    assetID.String(),
		EmployeeID: employeeID.String(),
		Remarks:    fieldValue(row, aliasRemarks),
	})
	return err
}

// importReturn locates the asset's active allocation and runs the return
// transition with the row's reason and post-return status.
func (s *importService) importReturn(ctx context.Context, userID string, row Row, assetRef AssetRef) error {
	assetID, err := s.resolveReturnAsset(ctx, assetRef)
	if err != nil {
		return err
	}

	active, err := s.allocationRepo.FindActiveByAssetID(ctx, assetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.Conflict("asset has no active allocation to return")
		}
		return apperror.Persistence(err, "failed to look up active allocation")
	}

	postStatus := fieldValue(row, aliasAssetStatus)
	if postStatus == "" {
		postStatus = model.AssetAvailable
	}

	_, err = s.allocations.Return(ctx, userID, active.ID.String(), ReturnRequest{
		ReturnReason: fieldValue(row, aliasReturnReason),
		Status:       postStatus,
	})
	return err
}

// resolveReturnAsset never auto-creates: returning an unknown asset is an error
func (s *importService) resolveReturnAsset(ctx context.Context, ref AssetRef) (uuid.UUID, error) {
	if ref.ID != "" {
		id, err := uuid.Parse(ref.ID)
		if err != nil {
			return uuid.Nil, apperror.Validation("invalid asset id: %s", ref.ID)
		}
		return id, nil
	}
	if ref.SerialNumber == "" {
		return uuid.Nil, apperror.Validation("return row requires an asset id or serial number")
	}
	asset, err := s.assetRepo.FindBySerial(ctx, ref.SerialNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, apperror.NotFound("asset not found: %s", ref.SerialNumber)
		}
		return uuid.Nil, apperror.Persistence(err, "failed to look up asset by serial")
	}
	return asset.ID, nil
}

func (s *importService) auditSummary(ctx context.Context, userID string, result ImportResult) {
	var uid *uuid.UUID
	if parsed, err := uuid.Parse(userID); err == nil {
		uid = &parsed
	}

	details, _ := json.Marshal(map[string]interface{}{
		"count":  result.Count,
		"failed": len(result.Errors),
	})
	entry := &model.AuditLog{
		UserID:     uid,
		Action:     model.ActionImportAllocations,
		EntityType: "Allocation",
		Details:    datatypes.JSON(details),
	}
	if err := s.auditRepo.Log(ctx, entry); err != nil {
		log.Printf("failed to write import summary audit log: %v", err)
	}
}

func importSummaryDetails(result ImportResult) datatypes.JSON {
	details, _ := json.Marshal(map[string]interface{}{
		"count":  result.Count,
		"failed": len(result.Errors),
	})
	return datatypes.JSON(details)
}
