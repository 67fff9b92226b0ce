package services

import (
	"context"

	"github.com/jasperjas06/live-sub000/internal/models"
	"github.com/jasperjas06/live-sub000/internal/repository"
)

// CommissionService derives commission statements for marketers and
// directors from approved billing totals. Commissions are never stored;
// they are recomputed from the ledger on every request.
type CommissionService struct {
	billingRepo  repository.BillingRepository
	marketerRepo repository.MarketerRepository
	directorRepo repository.DirectorRepository
}

// NewCommissionService creates a new commission service
func NewCommissionService(billingRepo repository.BillingRepository, marketerRepo repository.MarketerRepository, directorRepo repository.DirectorRepository) *CommissionService {
	return &CommissionService{
		billingRepo:  billingRepo,
		marketerRepo: marketerRepo,
		directorRepo: directorRepo,
	}
}

// MarketerStatement computes one marketer's commission from approved billing
func (s *CommissionService) MarketerStatement(ctx context.Context, marketerID uint) (*models.CommissionStatement, error) {
	marketer, err := s.marketerRepo.FindByID(ctx, marketerID)
	if err != nil {
		return nil, ErrNotFound
	}

	base, customers, err := s.billingRepo.SumApprovedByMarketer(ctx, marketerID)
	if err != nil {
		return nil, err
	}

	return &models.CommissionStatement{
		EarnerID:      marketer.ID,
		EarnerName:    marketer.Name,
		Role:          "marketer",
		CommissionPct: marketer.CommissionPct,
		BaseAmount:    base,
		Commission:    models.Commission(base, marketer.CommissionPct),
		CustomerCount: customers,
	}, nil
}

// DirectorStatement computes one director's commission from approved billing
func (s *CommissionService) DirectorStatement(ctx context.Context, directorID uint) (*models.CommissionStatement, error) {
	director, err := s.directorRepo.FindByID(ctx, directorID)
	if err != nil {
		return nil, ErrNotFound
	}

	base, customers, err := s.billingRepo.SumApprovedByDirector(ctx, directorID)
	if err != nil {
		return nil, err
	}

	return &models.CommissionStatement{
		EarnerID:      director.ID,
		EarnerName:    director.Name,
		Role:          director.Designation,
		CommissionPct: director.CommissionPct,
		BaseAmount:    base,
		Commission:    models.Commission(base, director.CommissionPct),
		CustomerCount: customers,
	}, nil
}

// AllStatements lists statements for every active marketer and director
func (s *CommissionService) AllStatements(ctx context.Context) ([]models.CommissionStatement, error) {
	var statements []models.CommissionStatement

	marketers, err := s.marketerRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range marketers {
		if !marketers[i].Active {
			continue
		}
		stmt, err := s.MarketerStatement(ctx, marketers[i].ID)
		if err != nil {
			return nil, err
		}
		statements = append(statements, *stmt)
	}

	directors, err := s.directorRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range directors {
		if !directors[i].Active {
			continue
		}
		stmt, err := s.DirectorStatement(ctx, directors[i].ID)
		if err != nil {
			return nil, err
		}
		statements = append(statements, *stmt)
	}

	return statements, nil
}
