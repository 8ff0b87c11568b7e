package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"backend/internal/model"
	"backend/internal/repository"
	ws "backend/internal/websocket"
	"backend/pkg/apperror"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AllocationNotifier sends the best-effort allocation email. Implementations
// must never block the allocation itself; callers swallow all errors.
type AllocationNotifier interface {
	SendAllocationNotice(ctx context.Context, employee *model.Employee, asset *model.Asset) error
}

// --- DTOs ---

type AllocateRequest struct {
	AssetID      string                 `json:"asset_id"`
	EmployeeID   string                 `json:"employee_id"`
	AssetData    *AssetRef              `json:"asset_data,omitempty"`
	EmployeeData *EmployeeRef           `json:"employee_data,omitempty"`
	Remarks      string                 `json:"remarks"`
	PDFURL       string                 `json:"pdf_url"`
	Details      map[string]interface{} `json:"details,omitempty"`
}

type ReturnRequest struct {
	ReturnReason string                 `json:"return_reason" binding:"required"`
	Status       string                 `json:"status" binding:"required"`
	Details      map[string]interface{} `json:"details,omitempty"`
}

// AllocationService enforces the asset allocation state machine:
// Available -> Allocated on Allocate, Allocated -> {Available, Damaged,
// Scrapped} on Return, in lockstep with the Allocation row lifecycle.
type AllocationService interface {
	ListAllocations(ctx context.Context, page, limit int) ([]model.Allocation, int64, error)
	Allocate(ctx context.Context, userID string, req AllocateRequest) (*model.Allocation, error)
	Return(ctx context.Context, userID string, allocationID string, req ReturnRequest) (*model.Allocation, error)
}

type allocationService struct {
	allocationRepo repository.AllocationRepository
	assetRepo      repository.AssetRepository
	employeeRepo   repository.EmployeeRepository
	auditRepo      repository.AuditRepository
	resolver       ResolverService
	txManager      repository.TransactionManager
	notifier       AllocationNotifier
	hub            *ws.Hub
}

func NewAllocationService(
	allocationRepo repository.AllocationRepository,
	assetRepo repository.AssetRepository,
	employeeRepo repository.EmployeeRepository,
	auditRepo repository.AuditRepository,
	resolver ResolverService,
	txManager repository.TransactionManager,
	notifier AllocationNotifier,
	hub *ws.Hub,
) AllocationService {
	return &allocationService{
		allocationRepo: allocationRepo,
		assetRepo:      assetRepo,
		employeeRepo:   employeeRepo,
		auditRepo:      auditRepo,
		resolver:       resolver,
		txManager:      txManager,
		notifier:       notifier,
		hub:            hub,
	}
}

func (s *allocationService) ListAllocations(ctx context.Context, page, limit int) ([]model.Allocation, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	return s.allocationRepo.List(ctx, page, limit)
}

func (s *allocationService) Allocate(ctx context.Context, userID string, req AllocateRequest) (*model.Allocation, error) {
	// Resolution happens before the transition check: an auto-created asset
	// is guaranteed Available and will pass the precondition.
	employeeRef := EmployeeRef{ID: req.EmployeeID}
	if req.EmployeeID == "" && req.EmployeeData != nil {
		employeeRef = *req.EmployeeData
	}
	employeeID, err := s.resolver.ResolveEmployee(ctx, userID, employeeRef)
	if err != nil {
		return nil, err
	}

	assetRef := AssetRef{ID: req.AssetID}
	if req.AssetID == "" && req.AssetData != nil {
		assetRef = *req.AssetData
	}
	assetID, err := s.resolver.ResolveAsset(ctx, userID, assetRef)
	if err != nil {
		return nil, err
	}

	allocation := &model.Allocation{
		AssetID:    assetID,
		EmployeeID: employeeID,
		Status:     model.AllocationActive,
		Remarks:    req.Remarks,
		PDFURL:     req.PDFURL,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		// Conditional update enforces the Available precondition atomically:
		// a concurrent allocate for the same asset flips zero rows and fails.
		ok, casErr := s.assetRepo.UpdateStatusIf(txCtx, assetID, model.AssetAvailable, model.AssetAllocated)
		if casErr != nil {
			return apperror.Persistence(casErr, "failed to update asset status")
		}
		if !ok {
			return apperror.Conflict("asset not available")
		}

		if createErr := s.allocationRepo.Create(txCtx, allocation); createErr != nil {
			return apperror.Persistence(createErr, "failed to create allocation")
		}

		details := map[string]interface{}{"remarks": req.Remarks}
		for k, v := range req.Details {
			details[k] = v
		}
		return s.audit(txCtx, userID, model.ActionAllocateAsset, "Allocation", allocation.ID.String(), details)
	})
	if err != nil {
		return nil, err
	}

	s.notifyAllocation(employeeID, assetID)
	s.broadcast("allocation_created", map[string]interface{}{
		"allocation_id": allocation.ID.String(),
		"asset_id":      assetID.String(),
		"employee_id":   employeeID.String(),
	})

	return allocation, nil
}

func (s *allocationService) Return(ctx context.Context, userID string, allocationID string, req ReturnRequest) (*model.Allocation, error) {
	id, err := uuid.Parse(allocationID)
	if err != nil {
		return nil, apperror.Validation("invalid allocation id: %s", allocationID)
	}

	// The asset's post-return fate is caller-supplied, never inferred
	switch req.Status {
	case model.AssetAvailable, model.AssetDamaged, model.AssetScrapped:
	default:
		return nil, apperror.Validation("post-return status must be Available, Damaged or Scrapped")
	}

	var allocation *model.Allocation
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		found, findErr := s.allocationRepo.FindByID(txCtx, id)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return apperror.NotFound("allocation not found: %s", allocationID)
			}
			return apperror.Persistence(findErr, "failed to load allocation")
		}
		if found.Status != model.AllocationActive {
			return apperror.Conflict("allocation is already returned")
		}

		now := time.Now()
		found.Status = model.AllocationReturned
		found.ReturnDate = &now
		found.ReturnReason = req.ReturnReason
		if saveErr := s.allocationRepo.Update(txCtx, found); saveErr != nil {
			return apperror.Persistence(saveErr, "failed to update allocation")
		}

		if statusErr := s.assetRepo.UpdateStatus(txCtx, found.AssetID, req.Status); statusErr != nil {
			return apperror.Persistence(statusErr, "failed to update asset status")
		}

		details := map[string]interface{}{
			"return_reason": req.ReturnReason,
			"status":        req.Status,
		}
		for k, v := range req.Details {
			details[k] = v
		}
		if auditErr := s.audit(txCtx, userID, model.ActionReturnAsset, "Allocation", found.ID.String(), details); auditErr != nil {
			return auditErr
		}

		allocation = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.broadcast("allocation_returned", map[string]interface{}{
		"allocation_id": allocation.ID.String(),
		"asset_id":      allocation.AssetID.String(),
		"asset_status":  req.Status,
	})

	return allocation, nil
}

func (s *allocationService) audit(ctx context.Context, userID, action, entityType, entityID string, detail map[string]interface{}) error {
	var uid *uuid.UUID
	if parsed, err := uuid.Parse(userID); err == nil {
		uid = &parsed
	}

	details, _ := json.Marshal(detail)
	entry := &model.AuditLog{
		UserID:     uid,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    datatypes.JSON(details),
	}
	if err := s.auditRepo.Log(ctx, entry); err != nil {
		return apperror.Persistence(err, "failed to write audit log")
	}
	return nil
}

// notifyAllocation fires the allocation email in the background. Failures are
// logged and swallowed: notification must never fail the allocation.
func (s *allocationService) notifyAllocation(employeeID, assetID uuid.UUID) {
	if s.notifier == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		employee, err := s.employeeRepo.FindByID(ctx, employeeID)
		if err != nil {
			log.Printf("allocation notice skipped, employee lookup failed: %v", err)
			return
		}
		asset, err := s.assetRepo.FindByID(ctx, assetID)
		if err != nil {
			log.Printf("allocation notice skipped, asset lookup failed: %v", err)
			return
		}
		if err := s.notifier.SendAllocationNotice(ctx, employee, asset); err != nil {
			log.Printf("failed to send allocation notice: %v", err)
		}
	}()
}

func (s *allocationService) broadcast(event string, data map[string]interface{}) {
	if s.hub == nil {
		return
	}
	payload, _ := json.Marshal(map[string]interface{}{"event": event, "data": data})
	s.hub.Broadcast <- payload
}
