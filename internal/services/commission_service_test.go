package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jasperjas06/live-sub000/internal/models"
	"github.com/jasperjas06/live-sub000/internal/repository"
)

type mockCommissionBillingRepo struct {
	repository.BillingRepository
	marketerTotal float64
	directorTotal float64
	customers     int
}

func (m *mockCommissionBillingRepo) SumApprovedByMarketer(ctx context.Context, marketerID uint) (float64, int, error) {
	return m.marketerTotal, m.customers, nil
}

func (m *mockCommissionBillingRepo) SumApprovedByDirector(ctx context.Context, directorID uint) (float64, int, error) {
	return m.directorTotal, m.customers, nil
}

type mockMarketerRepo struct {
	repository.MarketerRepository
	marketer *models.Marketer
}

func (m *mockMarketerRepo) FindByID(ctx context.Context, id uint) (*models.Marketer, error) {
	return m.marketer, nil
}

type mockDirectorRepo struct {
	repository.DirectorRepository
	director *models.Director
}

func (m *mockDirectorRepo) FindByID(ctx context.Context, id uint) (*models.Director, error) {
	return m.director, nil
}

func TestMarketerStatement(t *testing.T) {
	billing := &mockCommissionBillingRepo{marketerTotal: 250000, customers: 3}
	marketers := &mockMarketerRepo{marketer: &models.Marketer{ID: 1, Name: "R Sharma", CommissionPct: 2.5}}

	svc := NewCommissionService(billing, marketers, &mockDirectorRepo{})
	stmt, err := svc.MarketerStatement(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, "marketer", stmt.Role)
	assert.InDelta(t, 6250.0, stmt.Commission, 0.001)
	assert.Equal(t, 3, stmt.CustomerCount)
}

func TestDirectorStatementUsesDesignationAsRole(t *testing.T) {
	billing := &mockCommissionBillingRepo{directorTotal: 1000000}
	directors := &mockDirectorRepo{director: &models.Director{ID: 2, Name: "S Rao", Designation: models.DesignationCED, CommissionPct: 1}}

	svc := NewCommissionService(billing, &mockMarketerRepo{}, directors)
	stmt, err := svc.DirectorStatement(context.Background(), 2)
	require.NoError(t, err)

	assert.Equal(t, models.DesignationCED, stmt.Role)
	assert.InDelta(t, 10000.0, stmt.Commission, 0.001)
}

func TestCommissionOfZeroBase(t *testing.T) {
	assert.Zero(t, models.Commission(0, 5))
	assert.Zero(t, models.Commission(100000, 0))
}
