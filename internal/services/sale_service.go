package services

import (
	"context"
	"fmt"
	"time"

	"github.com/jasperjas06/live-sub000/internal/models"
	"github.com/jasperjas06/live-sub000/internal/repository"
)

// SaleService handles sale records and their EMI schedules
type SaleService struct {
	repo            repository.SaleRecordRepository
	installmentRepo repository.InstallmentRepository
	customerRepo    repository.CustomerRepository
	notificationSvc *NotificationService
	auditSvc        *AuditService
}

// NewSaleService creates a new sale service
func NewSaleService(repo repository.SaleRecordRepository, installmentRepo repository.InstallmentRepository, customerRepo repository.CustomerRepository, notificationSvc *NotificationService, auditSvc *AuditService) *SaleService {
	return &SaleService{
		repo:            repo,
		installmentRepo: installmentRepo,
		customerRepo:    customerRepo,
		notificationSvc: notificationSvc,
		auditSvc:        auditSvc,
	}
}

func (s *SaleService) FindByID(ctx context.Context, id uint) (*models.SaleRecord, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *SaleService) FindByIDWithDetails(ctx context.Context, id uint) (*models.SaleRecord, error) {
	return s.repo.FindByIDWithDetails(ctx, id)
}

func (s *SaleService) FindByCustomer(ctx context.Context, customerID uint) ([]models.SaleRecord, error) {
	return s.repo.FindByCustomer(ctx, customerID)
}

func (s *SaleService) List(ctx context.Context, filter repository.ListFilter) ([]models.SaleRecord, error) {
	return s.repo.List(ctx, filter)
}

// Create opens a sale record and generates its EMI schedule. Installments
// fall due monthly from the EMI start date (or next month when unset).
func (s *SaleService) Create(ctx context.Context, sale *models.SaleRecord, actorID uint) error {
	if _, err := s.customerRepo.FindByID(ctx, sale.CustomerID); err != nil {
		return ErrNotFound
	}
	if sale.RecordType == "" {
		sale.RecordType = models.RecordTypeGeneral
	}
	if sale.Status == "" {
		sale.Status = models.SaleStatusEnquired
	}

	if err := s.repo.Create(ctx, sale); err != nil {
		return err
	}

	if err := s.installmentRepo.CreateBatch(ctx, buildSchedule(sale)); err != nil {
		return err
	}

	s.auditSvc.Log(ctx, actorID, "CREATE", "SaleRecord", sale.ID,
		fmt.Sprintf("customer %d, %d x %.2f", sale.CustomerID, sale.NoOfInstallments, sale.EMIAmount), "", "")
	return nil
}

// buildSchedule lays out one installment per month
func buildSchedule(sale *models.SaleRecord) []models.EMIInstallment {
	if sale.NoOfInstallments <= 0 || sale.EMIAmount <= 0 {
		return nil
	}

	start := time.Now().AddDate(0, 1, 0)
	if sale.EMIStartDate != nil {
		start = *sale.EMIStartDate
	}

	installments := make([]models.EMIInstallment, 0, sale.NoOfInstallments)
	for i := 0; i < sale.NoOfInstallments; i++ {
		installments = append(installments, models.EMIInstallment{
			SaleRecordID:  sale.ID,
			InstallmentNo: i + 1,
			Amount:        sale.EMIAmount,
			DueDate:       start.AddDate(0, i, 0),
		})
	}
	return installments
}

func (s *SaleService) Update(ctx context.Context, sale *models.SaleRecord, actorID uint) error {
	if err := s.repo.Update(ctx, sale); err != nil {
		return err
	}
	s.auditSvc.Log(ctx, actorID, "UPDATE", "SaleRecord", sale.ID, "", "", "")
	return nil
}

// Block freezes a sale record; no further payments are accepted against it
func (s *SaleService) Block(ctx context.Context, id uint, actorID uint) error {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ErrNotFound
	}
	if !sale.MayBlock() {
		return ErrInvalidState
	}
	sale.Status = models.SaleStatusBlocked
	if err := s.repo.Update(ctx, sale); err != nil {
		return err
	}
	s.auditSvc.Log(ctx, actorID, "BLOCK", "SaleRecord", sale.ID, "", "", "")
	return nil
}

// Complete closes a fully settled sale record
func (s *SaleService) Complete(ctx context.Context, id uint, actorID uint) error {
	sale, err := s.repo.FindByIDWithDetails(ctx, id)
	if err != nil {
		return ErrNotFound
	}
	if !sale.MayComplete() {
		return ErrInvalidState
	}
	sale.Status = models.SaleStatusCompleted
	if err := s.repo.Update(ctx, sale); err != nil {
		return err
	}

	s.notificationSvc.NotifyAdmins(ctx,
		"Sale completed",
		fmt.Sprintf("Sale record #%d for %s is fully settled", sale.ID, sale.Customer.Name),
		models.NotificationTypeSaleCompleted)
	s.auditSvc.Log(ctx, actorID, "COMPLETE", "SaleRecord", sale.ID, "", "", "")
	return nil
}
