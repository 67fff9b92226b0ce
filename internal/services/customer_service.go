package services

import (
	"context"
	"fmt"

	"github.com/jasperjas06/live-sub000/internal/models"
	"github.com/jasperjas06/live-sub000/internal/repository"
)

// CustomerService handles customer enrollment and lifecycle
type CustomerService struct {
	repo            repository.CustomerRepository
	saleRepo        repository.SaleRecordRepository
	notificationSvc *NotificationService
	auditSvc        *AuditService
}

// NewCustomerService creates a new customer service
func NewCustomerService(repo repository.CustomerRepository, saleRepo repository.SaleRecordRepository, notificationSvc *NotificationService, auditSvc *AuditService) *CustomerService {
	return &CustomerService{
		repo:            repo,
		saleRepo:        saleRepo,
		notificationSvc: notificationSvc,
		auditSvc:        auditSvc,
	}
}

func (s *CustomerService) FindByID(ctx context.Context, id uint) (*models.Customer, error) {
	return s.repo.FindByID(ctx, id)
}

// FindByIDWithDetails loads the customer with project, attribution and sales
func (s *CustomerService) FindByIDWithDetails(ctx context.Context, id uint) (*models.Customer, error) {
	return s.repo.FindByIDWithDetails(ctx, id)
}

func (s *CustomerService) List(ctx context.Context, filter repository.ListFilter) ([]models.Customer, error) {
	return s.repo.List(ctx, filter)
}

// Create enrolls a new customer and notifies admins
func (s *CustomerService) Create(ctx context.Context, customer *models.Customer, actorID uint) error {
	if err := s.repo.Create(ctx, customer); err != nil {
		return err
	}

	s.notificationSvc.NotifyAdmins(ctx,
		"New customer enrolled",
		fmt.Sprintf("%s was enrolled by staff", customer.Name),
		models.NotificationTypeNewCustomer)

	s.auditSvc.Log(ctx, actorID, "CREATE", "Customer", customer.ID, customer.Name, "", "")
	return nil
}

func (s *CustomerService) Update(ctx context.Context, customer *models.Customer, actorID uint) error {
	if err := s.repo.Update(ctx, customer); err != nil {
		return err
	}
	s.auditSvc.Log(ctx, actorID, "UPDATE", "Customer", customer.ID, customer.Name, "", "")
	return nil
}

// SoftDelete marks the customer discarded. Billing history is retained and
// the row can be restored by an admin.
func (s *CustomerService) SoftDelete(ctx context.Context, id uint, actorID uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return ErrNotFound
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.auditSvc.Log(ctx, actorID, "DELETE", "Customer", id, "", "", "")
	return nil
}

func (s *CustomerService) Restore(ctx context.Context, id uint, actorID uint) error {
	if err := s.repo.Restore(ctx, id); err != nil {
		return err
	}
	s.auditSvc.Log(ctx, actorID, "RESTORE", "Customer", id, "", "", "")
	return nil
}

func (s *CustomerService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}
