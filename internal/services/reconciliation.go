package services

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jasperjas06/live-sub000/internal/models"
)

// ReconciliationResult carries the four figures shown on receipts and
// billing-detail views. Known is false when no usable sale record backs the
// customer; the figures then degrade to zero and render as N/A.
type ReconciliationResult struct {
	TotalAmount          decimal.Decimal `json:"total_amount"`
	TotalPreviouslyPaid  decimal.Decimal `json:"total_previously_paid"`
	TotalPaidToDate      decimal.Decimal `json:"total_paid_to_date"`
	CurrentPaymentAmount decimal.Decimal `json:"current_payment_amount"`
	OutstandingBalance   decimal.Decimal `json:"outstanding_balance"`
	Known                bool            `json:"known"`
}

// Reconcile derives the receipt figures for one customer purchase. The only
// operation is subtraction, on exact decimals; display rounding is the
// caller's currency formatter's job. Inputs with a missing or zero contract
// value degrade to zero sentinels instead of failing: upstream data quality
// is validated before this point, not here.
func Reconcile(sale *models.SaleRecord, previouslyPaid, paidToDate decimal.Decimal) ReconciliationResult {
	if sale == nil {
		return ReconciliationResult{}
	}
	total := decimal.NewFromFloat(sale.ContractedAmount())
	if total.IsZero() {
		return ReconciliationResult{}
	}

	return ReconciliationResult{
		TotalAmount:          total,
		TotalPreviouslyPaid:  previouslyPaid,
		TotalPaidToDate:      paidToDate,
		CurrentPaymentAmount: paidToDate.Sub(previouslyPaid),
		OutstandingBalance:   total.Sub(paidToDate),
		Known:                true,
	}
}

// ReconcileTransaction computes the receipt figures for one displayed billing
// transaction against the customer's full transaction history. Previously
// paid is the sum of approved transactions that settled strictly before the
// displayed one; paid to date additionally includes the displayed transaction
// itself.
func ReconcileTransaction(sale *models.SaleRecord, history []models.BillingTransaction, current *models.BillingTransaction) ReconciliationResult {
	if current == nil {
		return Reconcile(sale, decimal.Zero, decimal.Zero)
	}

	ordered := make([]models.BillingTransaction, len(history))
	copy(ordered, history)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].PaymentDate.Equal(ordered[j].PaymentDate) {
			return ordered[i].ID < ordered[j].ID
		}
		return ordered[i].PaymentDate.Before(ordered[j].PaymentDate)
	})

	previously := decimal.Zero
	for _, txn := range ordered {
		if txn.ID == current.ID {
			break
		}
		if txn.IsApproved() {
			previously = previously.Add(decimal.NewFromFloat(txn.AmountPaid))
		}
	}

	toDate := previously.Add(decimal.NewFromFloat(current.AmountPaid))
	return Reconcile(sale, previously, toDate)
}

// CurrencyOrNA formats a figure for display, honoring the N/A degradation.
func (r ReconciliationResult) CurrencyOrNA(d decimal.Decimal) string {
	if !r.Known {
		return "N/A"
	}
	return d.StringFixed(2)
}
