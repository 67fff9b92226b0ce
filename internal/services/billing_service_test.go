package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jasperjas06/live-sub000/internal/jobs"
	"github.com/jasperjas06/live-sub000/internal/models"
	"github.com/jasperjas06/live-sub000/internal/repository"
)

type mockBillingRepo struct {
	repository.BillingRepository
	mockFindByIDWithDetails func(ctx context.Context, id uint) (*models.BillingTransaction, error)
	mockFindByCustomer      func(ctx context.Context, customerID uint) ([]models.BillingTransaction, error)
	mockCreate              func(ctx context.Context, txn *models.BillingTransaction) error
	mockUpdate              func(ctx context.Context, txn *models.BillingTransaction) error
}

func (m *mockBillingRepo) FindByIDWithDetails(ctx context.Context, id uint) (*models.BillingTransaction, error) {
	return m.mockFindByIDWithDetails(ctx, id)
}

func (m *mockBillingRepo) FindByCustomer(ctx context.Context, customerID uint) ([]models.BillingTransaction, error) {
	return m.mockFindByCustomer(ctx, customerID)
}

func (m *mockBillingRepo) Create(ctx context.Context, txn *models.BillingTransaction) error {
	if m.mockCreate != nil {
		return m.mockCreate(ctx, txn)
	}
	return nil
}

func (m *mockBillingRepo) Update(ctx context.Context, txn *models.BillingTransaction) error {
	if m.mockUpdate != nil {
		return m.mockUpdate(ctx, txn)
	}
	return nil
}

type mockCustomerRepo struct {
	repository.CustomerRepository
	mockFindByID func(ctx context.Context, id uint) (*models.Customer, error)
}

func (m *mockCustomerRepo) FindByID(ctx context.Context, id uint) (*models.Customer, error) {
	return m.mockFindByID(ctx, id)
}

type mockSaleRepo struct {
	repository.SaleRecordRepository
	mockFindByID             func(ctx context.Context, id uint) (*models.SaleRecord, error)
	mockFindActiveByCustomer func(ctx context.Context, customerID uint) (*models.SaleRecord, error)
}

func (m *mockSaleRepo) FindByID(ctx context.Context, id uint) (*models.SaleRecord, error) {
	return m.mockFindByID(ctx, id)
}

func (m *mockSaleRepo) FindActiveByCustomer(ctx context.Context, customerID uint) (*models.SaleRecord, error) {
	return m.mockFindActiveByCustomer(ctx, customerID)
}

type mockInstallmentRepo struct {
	repository.InstallmentRepository
	mockFindBySale func(ctx context.Context, saleRecordID uint) ([]models.EMIInstallment, error)
	mockUpdate     func(ctx context.Context, installment *models.EMIInstallment) error
}

func (m *mockInstallmentRepo) FindBySale(ctx context.Context, saleRecordID uint) ([]models.EMIInstallment, error) {
	return m.mockFindBySale(ctx, saleRecordID)
}

func (m *mockInstallmentRepo) Update(ctx context.Context, installment *models.EMIInstallment) error {
	if m.mockUpdate != nil {
		return m.mockUpdate(ctx, installment)
	}
	return nil
}

type mockNotificationRepo struct {
	repository.NotificationRepository
}

func (m *mockNotificationRepo) Create(ctx context.Context, n *models.Notification) error { return nil }

type mockAdminUserRepo struct {
	repository.UserRepository
}

func (m *mockAdminUserRepo) FindAdmins(ctx context.Context) ([]models.User, error) {
	return nil, nil
}

func newTestBillingService(billing *mockBillingRepo, sales *mockSaleRepo, installments *mockInstallmentRepo, customers *mockCustomerRepo) (*BillingService, *jobs.Worker) {
	worker := jobs.NewWorker(1)
	notificationSvc := NewNotificationService(&mockNotificationRepo{}, &mockAdminUserRepo{})
	auditSvc := NewAuditService(nil)
	svc := NewBillingService(billing, sales, installments, customers, notificationSvc, auditSvc, nil, worker)
	return svc, worker
}

func TestRecordPaymentRejectsUnknownMode(t *testing.T) {
	svc, worker := newTestBillingService(&mockBillingRepo{}, &mockSaleRepo{}, &mockInstallmentRepo{}, &mockCustomerRepo{})
	defer worker.Shutdown()

	txn := &models.BillingTransaction{CustomerID: 1, AmountPaid: 100, Mode: "cheque"}
	err := svc.RecordPayment(context.Background(), txn, 1)
	assert.Error(t, err)
}

func TestRecordPaymentRequiresReferenceForCardAndOnline(t *testing.T) {
	svc, worker := newTestBillingService(&mockBillingRepo{}, &mockSaleRepo{}, &mockInstallmentRepo{}, &mockCustomerRepo{})
	defer worker.Shutdown()

	for _, mode := range []string{models.PaymentModeCard, models.PaymentModeOnline} {
		txn := &models.BillingTransaction{CustomerID: 1, AmountPaid: 100, Mode: mode}
		err := svc.RecordPayment(context.Background(), txn, 1)
		assert.ErrorIs(t, err, ErrInvalidReference, mode)
	}
}

func TestRecordPaymentCardNeedsCardDetails(t *testing.T) {
	svc, worker := newTestBillingService(&mockBillingRepo{}, &mockSaleRepo{}, &mockInstallmentRepo{}, &mockCustomerRepo{})
	defer worker.Shutdown()

	ref := "AUTH-4421"
	number := "4111111111111111"
	holder := "A Kumar"

	// Reference alone is not enough for card mode
	txn := &models.BillingTransaction{CustomerID: 1, AmountPaid: 100, Mode: models.PaymentModeCard, Reference: &ref}
	assert.ErrorIs(t, svc.RecordPayment(context.Background(), txn, 1), ErrCardDetails)

	// Number without holder is still incomplete
	txn = &models.BillingTransaction{CustomerID: 1, AmountPaid: 100, Mode: models.PaymentModeCard, Reference: &ref, CardNumber: &number}
	assert.ErrorIs(t, svc.RecordPayment(context.Background(), txn, 1), ErrCardDetails)

	// Online payments carry no card and must not be held to the card rule
	customers := &mockCustomerRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.Customer, error) {
			return &models.Customer{ID: id}, nil
		},
	}
	sales := &mockSaleRepo{
		mockFindActiveByCustomer: func(ctx context.Context, customerID uint) (*models.SaleRecord, error) {
			return nil, ErrNotFound
		},
	}
	svc2, worker2 := newTestBillingService(&mockBillingRepo{}, sales, &mockInstallmentRepo{}, customers)
	defer worker2.Shutdown()

	txn = &models.BillingTransaction{CustomerID: 1, AmountPaid: 100, Mode: models.PaymentModeOnline, Reference: &ref}
	require.NoError(t, svc2.RecordPayment(context.Background(), txn, 1))

	// Complete card details pass
	txn = &models.BillingTransaction{CustomerID: 1, AmountPaid: 100, Mode: models.PaymentModeCard, Reference: &ref, CardNumber: &number, CardHolder: &holder}
	require.NoError(t, svc2.RecordPayment(context.Background(), txn, 1))
}

func TestRecordPaymentCashNeedsNoReference(t *testing.T) {
	saleID := uint(7)
	billing := &mockBillingRepo{}
	sales := &mockSaleRepo{
		mockFindActiveByCustomer: func(ctx context.Context, customerID uint) (*models.SaleRecord, error) {
			return &models.SaleRecord{ID: saleID, CustomerID: customerID, Status: models.SaleStatusEnquired}, nil
		},
	}
	customers := &mockCustomerRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.Customer, error) {
			return &models.Customer{ID: id, Name: "A Kumar"}, nil
		},
	}
	svc, worker := newTestBillingService(billing, sales, &mockInstallmentRepo{}, customers)
	defer worker.Shutdown()

	txn := &models.BillingTransaction{CustomerID: 1, AmountPaid: 5000, Mode: models.PaymentModeCash}
	require.NoError(t, svc.RecordPayment(context.Background(), txn, 1))

	assert.Equal(t, models.BillingStatusEnquired, txn.Status)
	require.NotNil(t, txn.SaleRecordID)
	assert.Equal(t, saleID, *txn.SaleRecordID)
	assert.False(t, txn.PaymentDate.IsZero())
}

func TestRecordPaymentRejectsInactiveSale(t *testing.T) {
	saleID := uint(3)
	sales := &mockSaleRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.SaleRecord, error) {
			return &models.SaleRecord{ID: id, Status: models.SaleStatusBlocked}, nil
		},
	}
	customers := &mockCustomerRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.Customer, error) {
			return &models.Customer{ID: id}, nil
		},
	}
	svc, worker := newTestBillingService(&mockBillingRepo{}, sales, &mockInstallmentRepo{}, customers)
	defer worker.Shutdown()

	txn := &models.BillingTransaction{CustomerID: 1, AmountPaid: 100, Mode: models.PaymentModeCash, SaleRecordID: &saleID}
	err := svc.RecordPayment(context.Background(), txn, 1)
	assert.ErrorIs(t, err, ErrSaleInactive)
}

func TestApproveSettlesEarliestUnpaidInstallment(t *testing.T) {
	saleID := uint(5)
	paidAmount := 5000.0
	paidDate := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	txn := &models.BillingTransaction{
		ID:           10,
		CustomerID:   1,
		SaleRecordID: &saleID,
		AmountPaid:   5000,
		PaymentDate:  time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC),
		Mode:         models.PaymentModeCash,
		Status:       models.BillingStatusEnquired,
		Customer:     models.Customer{ID: 1, Name: "A Kumar"},
	}

	var settled *models.EMIInstallment
	billing := &mockBillingRepo{
		mockFindByIDWithDetails: func(ctx context.Context, id uint) (*models.BillingTransaction, error) {
			return txn, nil
		},
	}
	installments := &mockInstallmentRepo{
		mockFindBySale: func(ctx context.Context, id uint) ([]models.EMIInstallment, error) {
			return []models.EMIInstallment{
				{ID: 1, SaleRecordID: saleID, InstallmentNo: 1, Amount: 5000, PaidDate: &paidDate, PaidAmount: &paidAmount},
				{ID: 2, SaleRecordID: saleID, InstallmentNo: 2, Amount: 5000, DueDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
				{ID: 3, SaleRecordID: saleID, InstallmentNo: 3, Amount: 5000, DueDate: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)},
			}, nil
		},
		mockUpdate: func(ctx context.Context, installment *models.EMIInstallment) error {
			settled = installment
			return nil
		},
	}
	svc, worker := newTestBillingService(billing, &mockSaleRepo{}, installments, &mockCustomerRepo{})
	defer worker.Shutdown()

	approved, err := svc.Approve(context.Background(), txn.ID, 99)
	require.NoError(t, err)

	assert.Equal(t, models.BillingStatusApproved, approved.Status)
	require.NotNil(t, approved.ReceiptNo)
	assert.NotEmpty(t, *approved.ReceiptNo)
	require.NotNil(t, approved.ApprovedByUserID)
	assert.Equal(t, uint(99), *approved.ApprovedByUserID)

	// Installment 1 was already paid; the payment lands on number 2
	require.NotNil(t, settled)
	assert.Equal(t, 2, settled.InstallmentNo)
	assert.True(t, settled.IsPaid())

	// A settled transaction cannot be approved twice
	_, err = svc.Approve(context.Background(), txn.ID, 99)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestBlockRecordsReason(t *testing.T) {
	txn := &models.BillingTransaction{
		ID:         12,
		CustomerID: 1,
		AmountPaid: 2500,
		Mode:       models.PaymentModeCash,
		Status:     models.BillingStatusEnquired,
		Customer:   models.Customer{ID: 1, Name: "A Kumar"},
	}

	var updated *models.BillingTransaction
	billing := &mockBillingRepo{
		mockFindByIDWithDetails: func(ctx context.Context, id uint) (*models.BillingTransaction, error) {
			return txn, nil
		},
		mockUpdate: func(ctx context.Context, t *models.BillingTransaction) error {
			updated = t
			return nil
		},
	}
	svc, worker := newTestBillingService(billing, &mockSaleRepo{}, &mockInstallmentRepo{}, &mockCustomerRepo{})
	defer worker.Shutdown()

	blocked, err := svc.Block(context.Background(), txn.ID, "duplicate entry of receipt RCP-20260105", 99)
	require.NoError(t, err)

	assert.Equal(t, models.BillingStatusBlocked, blocked.Status)
	require.NotNil(t, blocked.BlockReason)
	assert.Equal(t, "duplicate entry of receipt RCP-20260105", *blocked.BlockReason)
	require.NotNil(t, updated)

	// Blocking without a reason leaves the field empty
	txn2 := &models.BillingTransaction{ID: 13, CustomerID: 1, Status: models.BillingStatusEnquired}
	billing.mockFindByIDWithDetails = func(ctx context.Context, id uint) (*models.BillingTransaction, error) {
		return txn2, nil
	}
	blocked2, err := svc.Block(context.Background(), txn2.ID, "", 99)
	require.NoError(t, err)
	assert.Nil(t, blocked2.BlockReason)
}

func TestBlockedTransactionStaysOutOfReconciliation(t *testing.T) {
	saleID := uint(5)
	total := 100000.0
	sale := &models.SaleRecord{ID: saleID, TotalAmount: &total}

	history := []models.BillingTransaction{
		{ID: 1, CustomerID: 1, AmountPaid: 10000, PaymentDate: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), Status: models.BillingStatusApproved},
		{ID: 2, CustomerID: 1, AmountPaid: 40000, PaymentDate: time.Date(2026, 2, 5, 0, 0, 0, 0, time.UTC), Status: models.BillingStatusBlocked},
		{ID: 3, CustomerID: 1, AmountPaid: 5000, PaymentDate: time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC), Status: models.BillingStatusEnquired},
	}

	billing := &mockBillingRepo{
		mockFindByCustomer: func(ctx context.Context, customerID uint) ([]models.BillingTransaction, error) {
			return history, nil
		},
	}
	sales := &mockSaleRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.SaleRecord, error) {
			return sale, nil
		},
	}
	svc, worker := newTestBillingService(billing, sales, &mockInstallmentRepo{}, &mockCustomerRepo{})
	defer worker.Shutdown()

	current := &history[2]
	current.SaleRecordID = &saleID
	result, err := svc.Reconciliation(context.Background(), current)
	require.NoError(t, err)
	require.True(t, result.Known)

	// The blocked 40000 never counts
	assert.Equal(t, "10000.00", result.TotalPreviouslyPaid.StringFixed(2))
	assert.Equal(t, "15000.00", result.TotalPaidToDate.StringFixed(2))
	assert.Equal(t, "85000.00", result.OutstandingBalance.StringFixed(2))
}
