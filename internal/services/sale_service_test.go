package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jasperjas06/live-sub000/internal/models"
)

func TestBuildScheduleMonthlyFromStartDate(t *testing.T) {
	start := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	sale := &models.SaleRecord{
		ID:               4,
		EMIAmount:        5000,
		NoOfInstallments: 12,
		EMIStartDate:     &start,
	}

	schedule := buildSchedule(sale)
	require.Len(t, schedule, 12)

	for i, inst := range schedule {
		assert.Equal(t, sale.ID, inst.SaleRecordID)
		assert.Equal(t, i+1, inst.InstallmentNo)
		assert.Equal(t, 5000.0, inst.Amount)
		assert.Equal(t, start.AddDate(0, i, 0), inst.DueDate)
		assert.False(t, inst.IsPaid())
	}
}

func TestBuildScheduleEmptyWithoutTerms(t *testing.T) {
	assert.Empty(t, buildSchedule(&models.SaleRecord{ID: 1, EMIAmount: 5000}))
	assert.Empty(t, buildSchedule(&models.SaleRecord{ID: 2, NoOfInstallments: 10}))
}
