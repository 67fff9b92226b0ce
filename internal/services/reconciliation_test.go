package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jasperjas06/live-sub000/internal/models"
)

func saleWithTotal(total float64) *models.SaleRecord {
	return &models.SaleRecord{
		ID:               1,
		TotalAmount:      &total,
		EMIAmount:        total / 10,
		NoOfInstallments: 10,
	}
}

func TestReconcileIdentity(t *testing.T) {
	tests := []struct {
		name       string
		total      float64
		previously float64
		toDate     float64
	}{
		{name: "mid-plan payment", total: 500000, previously: 150000, toDate: 200000},
		{name: "first payment", total: 120000, previously: 0, toDate: 10000},
		{name: "final payment", total: 75000, previously: 70000, toDate: 75000},
		{name: "fractional paise", total: 99999.99, previously: 33333.33, toDate: 66666.66},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sale := saleWithTotal(tt.total)
			prev := decimal.NewFromFloat(tt.previously)
			toDate := decimal.NewFromFloat(tt.toDate)

			result := Reconcile(sale, prev, toDate)
			require.True(t, result.Known)

			assert.True(t, result.CurrentPaymentAmount.Equal(toDate.Sub(prev)),
				"current = toDate - previously")
			assert.True(t, result.OutstandingBalance.Equal(decimal.NewFromFloat(tt.total).Sub(toDate)),
				"balance = total - toDate")

			// Repeated calls with the same input drift by nothing
			again := Reconcile(sale, prev, toDate)
			assert.True(t, result.CurrentPaymentAmount.Equal(again.CurrentPaymentAmount))
			assert.True(t, result.OutstandingBalance.Equal(again.OutstandingBalance))
		})
	}
}

func TestReconcileEndToEndScenario(t *testing.T) {
	// Sale of 500000; EMIs 1-3 paid totalling 150000; a new payment of 50000.
	sale := saleWithTotal(500000)
	result := Reconcile(sale, decimal.NewFromInt(150000), decimal.NewFromInt(200000))

	require.True(t, result.Known)
	assert.True(t, result.CurrentPaymentAmount.Equal(decimal.NewFromInt(50000)))
	assert.True(t, result.OutstandingBalance.Equal(decimal.NewFromInt(300000)))
}

func TestReconcileDegradesWithoutSale(t *testing.T) {
	result := Reconcile(nil, decimal.NewFromInt(100), decimal.NewFromInt(200))
	assert.False(t, result.Known)
	assert.True(t, result.TotalAmount.IsZero())
	assert.True(t, result.OutstandingBalance.IsZero())
	assert.Equal(t, "N/A", result.CurrencyOrNA(result.TotalAmount))
}

func TestReconcileDegradesOnZeroTotal(t *testing.T) {
	sale := &models.SaleRecord{ID: 2} // no total, no EMI terms
	result := Reconcile(sale, decimal.Zero, decimal.NewFromInt(5000))
	assert.False(t, result.Known)
	assert.True(t, result.CurrentPaymentAmount.IsZero())
}

func TestReconcileDerivesTotalFromEMITerms(t *testing.T) {
	sale := &models.SaleRecord{ID: 3, EMIAmount: 5000, NoOfInstallments: 24}
	result := Reconcile(sale, decimal.Zero, decimal.NewFromInt(5000))
	require.True(t, result.Known)
	assert.True(t, result.TotalAmount.Equal(decimal.NewFromInt(120000)))
	assert.True(t, result.OutstandingBalance.Equal(decimal.NewFromInt(115000)))
}

func TestReconcileTransactionRunningSums(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC)
	}

	history := []models.BillingTransaction{
		{ID: 1, AmountPaid: 50000, PaymentDate: day(1), Status: models.BillingStatusApproved},
		{ID: 2, AmountPaid: 50000, PaymentDate: day(10), Status: models.BillingStatusApproved},
		{ID: 3, AmountPaid: 50000, PaymentDate: day(20), Status: models.BillingStatusApproved},
		{ID: 4, AmountPaid: 50000, PaymentDate: day(25), Status: models.BillingStatusEnquired},
	}
	current := &models.BillingTransaction{ID: 4, AmountPaid: 50000, PaymentDate: day(25)}

	sale := saleWithTotal(500000)
	result := ReconcileTransaction(sale, history, current)

	require.True(t, result.Known)
	assert.True(t, result.TotalPreviouslyPaid.Equal(decimal.NewFromInt(150000)))
	assert.True(t, result.TotalPaidToDate.Equal(decimal.NewFromInt(200000)))
	assert.True(t, result.CurrentPaymentAmount.Equal(decimal.NewFromInt(50000)))
	assert.True(t, result.OutstandingBalance.Equal(decimal.NewFromInt(300000)))
}

func TestReconcileTransactionSkipsUnapprovedHistory(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2026, 4, d, 0, 0, 0, 0, time.UTC)
	}

	history := []models.BillingTransaction{
		{ID: 1, AmountPaid: 10000, PaymentDate: day(1), Status: models.BillingStatusApproved},
		{ID: 2, AmountPaid: 99999, PaymentDate: day(2), Status: models.BillingStatusBlocked},
		{ID: 3, AmountPaid: 5000, PaymentDate: day(5), Status: models.BillingStatusEnquired},
	}
	current := &models.BillingTransaction{ID: 3, AmountPaid: 5000, PaymentDate: day(5)}

	result := ReconcileTransaction(saleWithTotal(100000), history, current)
	require.True(t, result.Known)
	assert.True(t, result.TotalPreviouslyPaid.Equal(decimal.NewFromInt(10000)))
	assert.True(t, result.TotalPaidToDate.Equal(decimal.NewFromInt(15000)))
}
