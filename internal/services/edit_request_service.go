package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jasperjas06/live-sub000/internal/models"
	"github.com/jasperjas06/live-sub000/internal/repository"
	"github.com/jasperjas06/live-sub000/internal/statemachine"
)

// EditRequestService routes staff edits through an admin approval queue.
// Approved data is never modified directly by staff.
type EditRequestService struct {
	repo            repository.EditRequestRepository
	customerRepo    repository.CustomerRepository
	saleRepo        repository.SaleRecordRepository
	modRepo         repository.MODRepository
	notificationSvc *NotificationService
	auditSvc        *AuditService
}

// NewEditRequestService creates a new edit request service
func NewEditRequestService(
	repo repository.EditRequestRepository,
	customerRepo repository.CustomerRepository,
	saleRepo repository.SaleRecordRepository,
	modRepo repository.MODRepository,
	notificationSvc *NotificationService,
	auditSvc *AuditService,
) *EditRequestService {
	return &EditRequestService{
		repo:            repo,
		customerRepo:    customerRepo,
		saleRepo:        saleRepo,
		modRepo:         modRepo,
		notificationSvc: notificationSvc,
		auditSvc:        auditSvc,
	}
}

func (s *EditRequestService) FindByID(ctx context.Context, id uint) (*models.EditRequest, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *EditRequestService) List(ctx context.Context, filter repository.ListFilter) ([]models.EditRequest, error) {
	return s.repo.List(ctx, filter)
}

// Submit raises a pending edit against an existing entity. Changes carries
// the proposed field values as a JSON object.
func (s *EditRequestService) Submit(ctx context.Context, entity string, entityID uint, changes map[string]any, reason *string, requestedBy uint) (*models.EditRequest, error) {
	if err := s.verifyEntity(ctx, entity, entityID); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(changes)
	if err != nil {
		return nil, err
	}

	request := &models.EditRequest{
		ReferenceID:   fmt.Sprintf("ER-%s", uuid.NewString()[:8]),
		Entity:        entity,
		EntityID:      entityID,
		RequestedByID: requestedBy,
		Changes:       string(payload),
		Reason:        reason,
		Status:        models.EditRequestStatusPending,
	}

	if err := s.repo.Create(ctx, request); err != nil {
		return nil, err
	}

	s.notificationSvc.NotifyAdmins(ctx,
		"Edit request raised",
		fmt.Sprintf("%s awaits review for %s #%d", request.ReferenceID, entity, entityID),
		"edit_request_raised")
	return request, nil
}

func (s *EditRequestService) verifyEntity(ctx context.Context, entity string, entityID uint) error {
	switch entity {
	case "customer":
		_, err := s.customerRepo.FindByID(ctx, entityID)
		if err != nil {
			return ErrNotFound
		}
	case "sale_record":
		_, err := s.saleRepo.FindByID(ctx, entityID)
		if err != nil {
			return ErrNotFound
		}
	case "mod_record":
		_, err := s.modRepo.FindByID(ctx, entityID)
		if err != nil {
			return ErrNotFound
		}
	default:
		return fmt.Errorf("unknown entity %q", entity)
	}
	return nil
}

// Approve accepts a pending request and notifies the requester
func (s *EditRequestService) Approve(ctx context.Context, id uint, actorID uint) (*models.EditRequest, error) {
	request, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}

	machine := statemachine.NewEditRequestFSM(request)
	if err := machine.Approve(ctx); err != nil {
		return nil, ErrInvalidState
	}

	now := time.Now()
	request.DecidedByUserID = &actorID
	request.DecidedAt = &now

	if err := s.repo.Update(ctx, request); err != nil {
		return nil, err
	}

	s.notificationSvc.NotifyUser(ctx, request.RequestedByID,
		"Edit request approved",
		fmt.Sprintf("%s was approved; apply the change to %s #%d", request.ReferenceID, request.Entity, request.EntityID),
		models.NotificationTypeEditApproved)
	s.auditSvc.Log(ctx, actorID, "APPROVE", "EditRequest", request.ID, request.ReferenceID, "", "")
	return request, nil
}

// Reject declines a pending request with a reason
func (s *EditRequestService) Reject(ctx context.Context, id uint, reason string, actorID uint) (*models.EditRequest, error) {
	request, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}

	machine := statemachine.NewEditRequestFSM(request)
	if err := machine.Reject(ctx); err != nil {
		return nil, ErrInvalidState
	}

	now := time.Now()
	request.DecidedByUserID = &actorID
	request.DecidedAt = &now
	if reason != "" {
		request.RejectionReason = &reason
	}

	if err := s.repo.Update(ctx, request); err != nil {
		return nil, err
	}

	s.notificationSvc.NotifyUser(ctx, request.RequestedByID,
		"Edit request rejected",
		fmt.Sprintf("%s was rejected", request.ReferenceID),
		models.NotificationTypeEditRejected)
	s.auditSvc.Log(ctx, actorID, "REJECT", "EditRequest", request.ID, request.ReferenceID, "", "")
	return request, nil
}
