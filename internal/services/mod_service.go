package services

import (
	"context"
	"fmt"

	"github.com/jasperjas06/live-sub000/internal/models"
	"github.com/jasperjas06/live-sub000/internal/repository"
)

// MODService handles MOD registration records
type MODService struct {
	repo         repository.MODRepository
	customerRepo repository.CustomerRepository
	auditSvc     *AuditService
}

// NewMODService creates a new MOD service
func NewMODService(repo repository.MODRepository, customerRepo repository.CustomerRepository, auditSvc *AuditService) *MODService {
	return &MODService{repo: repo, customerRepo: customerRepo, auditSvc: auditSvc}
}

func (s *MODService) FindByID(ctx context.Context, id uint) (*models.MODRecord, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *MODService) List(ctx context.Context, filter repository.ListFilter) ([]models.MODRecord, error) {
	return s.repo.List(ctx, filter)
}

func (s *MODService) Create(ctx context.Context, record *models.MODRecord, actorID uint) error {
	if _, err := s.customerRepo.FindByID(ctx, record.CustomerID); err != nil {
		return ErrNotFound
	}
	if record.Status == "" {
		record.Status = models.SaleStatusEnquired
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return err
	}
	s.auditSvc.Log(ctx, actorID, "CREATE", "MODRecord", record.ID,
		fmt.Sprintf("customer %d, %.2f", record.CustomerID, record.Amount), "", "")
	return nil
}

func (s *MODService) Update(ctx context.Context, record *models.MODRecord, actorID uint) error {
	if err := s.repo.Update(ctx, record); err != nil {
		return err
	}
	s.auditSvc.Log(ctx, actorID, "UPDATE", "MODRecord", record.ID, "", "", "")
	return nil
}
