package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jasperjas06/live-sub000/internal/jobs"
	"github.com/jasperjas06/live-sub000/internal/models"
	"github.com/jasperjas06/live-sub000/internal/repository"
	"github.com/jasperjas06/live-sub000/internal/statemachine"
	"github.com/jasperjas06/live-sub000/internal/storage"
)

// BillingService handles billing transactions: collection, approval and the
// reconciliation figures shown on receipts.
type BillingService struct {
	repo            repository.BillingRepository
	saleRepo        repository.SaleRecordRepository
	installmentRepo repository.InstallmentRepository
	customerRepo    repository.CustomerRepository
	notificationSvc *NotificationService
	auditSvc        *AuditService
	storage         *storage.LocalStorage
	worker          *jobs.Worker
}

// NewBillingService creates a new billing service
func NewBillingService(
	repo repository.BillingRepository,
	saleRepo repository.SaleRecordRepository,
	installmentRepo repository.InstallmentRepository,
	customerRepo repository.CustomerRepository,
	notificationSvc *NotificationService,
	auditSvc *AuditService,
	store *storage.LocalStorage,
	worker *jobs.Worker,
) *BillingService {
	return &BillingService{
		repo:            repo,
		saleRepo:        saleRepo,
		installmentRepo: installmentRepo,
		customerRepo:    customerRepo,
		notificationSvc: notificationSvc,
		auditSvc:        auditSvc,
		storage:         store,
		worker:          worker,
	}
}

func (s *BillingService) FindByID(ctx context.Context, id uint) (*models.BillingTransaction, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *BillingService) FindByIDWithDetails(ctx context.Context, id uint) (*models.BillingTransaction, error) {
	return s.repo.FindByIDWithDetails(ctx, id)
}

func (s *BillingService) List(ctx context.Context, filter repository.ListFilter) ([]models.BillingTransaction, error) {
	return s.repo.List(ctx, filter)
}

func (s *BillingService) Stats(ctx context.Context) (*repository.BillingStats, error) {
	return s.repo.GetStats(ctx)
}

// RecordPayment registers an incoming payment as an enquired transaction.
// Card and online payments must carry an external reference; the payment is
// bound to the customer's active sale record when one exists.
func (s *BillingService) RecordPayment(ctx context.Context, txn *models.BillingTransaction, actorID uint) error {
	if !models.ValidPaymentMode(txn.Mode) {
		return fmt.Errorf("unknown payment mode %q", txn.Mode)
	}
	if models.RequiresReference(txn.Mode) && (txn.Reference == nil || strings.TrimSpace(*txn.Reference) == "") {
		return ErrInvalidReference
	}
	if txn.Mode == models.PaymentModeCard && !txn.HasCardDetails() {
		return ErrCardDetails
	}

	if _, err := s.customerRepo.FindByID(ctx, txn.CustomerID); err != nil {
		return ErrNotFound
	}

	if txn.SaleRecordID == nil {
		if sale, err := s.saleRepo.FindActiveByCustomer(ctx, txn.CustomerID); err == nil {
			txn.SaleRecordID = &sale.ID
		}
	} else {
		sale, err := s.saleRepo.FindByID(ctx, *txn.SaleRecordID)
		if err != nil {
			return ErrNotFound
		}
		if !sale.IsActive() {
			return ErrSaleInactive
		}
	}

	txn.Status = models.BillingStatusEnquired
	if txn.PaymentDate.IsZero() {
		txn.PaymentDate = time.Now()
	}

	if err := s.repo.Create(ctx, txn); err != nil {
		return err
	}

	s.auditSvc.Log(ctx, actorID, "CREATE", "BillingTransaction", txn.ID,
		fmt.Sprintf("%.2f via %s", txn.AmountPaid, txn.Mode), "", "")
	return nil
}

// Approve confirms a payment. The transaction gets a receipt number, the
// matching EMI installment is marked paid, and admins are notified off the
// request path.
func (s *BillingService) Approve(ctx context.Context, id uint, actorID uint) (*models.BillingTransaction, error) {
	txn, err := s.repo.FindByIDWithDetails(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}

	machine := statemachine.NewBillingFSM(txn)
	if err := machine.Approve(ctx); err != nil {
		return nil, ErrInvalidState
	}

	now := time.Now()
	receiptNo := generateReceiptNo()
	txn.ApprovedAt = &now
	txn.ApprovedByUserID = &actorID
	txn.ReceiptNo = &receiptNo

	if err := s.settleInstallment(ctx, txn); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, txn); err != nil {
		return nil, err
	}

	customerName := txn.Customer.Name
	amount := txn.AmountPaid
	s.worker.EnqueueAsync(func(jobCtx context.Context) error {
		return s.notificationSvc.NotifyAdmins(jobCtx,
			"Payment approved",
			fmt.Sprintf("Receipt %s: %.2f from %s", receiptNo, amount, customerName),
			models.NotificationTypeBillingApproved)
	})

	s.auditSvc.Log(ctx, actorID, "APPROVE", "BillingTransaction", txn.ID, receiptNo, "", "")
	return txn, nil
}

// settleInstallment marks the targeted installment paid, or the earliest
// unpaid one when the payment wasn't recorded against a specific number
func (s *BillingService) settleInstallment(ctx context.Context, txn *models.BillingTransaction) error {
	if txn.SaleRecordID == nil {
		return nil
	}

	var installment *models.EMIInstallment
	var err error
	if txn.InstallmentNo != nil {
		installment, err = s.installmentRepo.FindBySaleAndNumber(ctx, *txn.SaleRecordID, *txn.InstallmentNo)
		if err != nil {
			return ErrNotFound
		}
	} else {
		installments, err := s.installmentRepo.FindBySale(ctx, *txn.SaleRecordID)
		if err != nil {
			return err
		}
		for i := range installments {
			if !installments[i].IsPaid() {
				installment = &installments[i]
				break
			}
		}
	}

	if installment == nil || installment.IsPaid() {
		// Ad-hoc payment outside the schedule; nothing to settle
		return nil
	}

	installment.MarkPaid(txn.AmountPaid, txn.PaymentDate)
	return s.installmentRepo.Update(ctx, installment)
}

// Block rejects a payment, recording why. Blocked amounts never count
// toward paid-to-date.
func (s *BillingService) Block(ctx context.Context, id uint, reason string, actorID uint) (*models.BillingTransaction, error) {
	txn, err := s.repo.FindByIDWithDetails(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}

	machine := statemachine.NewBillingFSM(txn)
	if err := machine.Block(ctx); err != nil {
		return nil, ErrInvalidState
	}
	if reason != "" {
		txn.BlockReason = &reason
	}

	if err := s.repo.Update(ctx, txn); err != nil {
		return nil, err
	}

	s.worker.Enqueue(func(jobCtx context.Context) error {
		return s.notificationSvc.NotifyAdmins(jobCtx,
			"Payment blocked",
			fmt.Sprintf("Transaction #%d for %s was blocked", txn.ID, txn.Customer.Name),
			models.NotificationTypeBillingBlocked)
	})

	s.auditSvc.Log(ctx, actorID, "BLOCK", "BillingTransaction", txn.ID, reason, "", "")
	return txn, nil
}

// Reconciliation derives the receipt figures for one transaction against the
// customer's full history.
func (s *BillingService) Reconciliation(ctx context.Context, txn *models.BillingTransaction) (ReconciliationResult, error) {
	history, err := s.repo.FindByCustomer(ctx, txn.CustomerID)
	if err != nil {
		return ReconciliationResult{}, err
	}

	var sale *models.SaleRecord
	if txn.SaleRecordID != nil {
		sale, _ = s.saleRepo.FindByID(ctx, *txn.SaleRecordID)
	}
	if sale == nil {
		sale, _ = s.saleRepo.FindActiveByCustomer(ctx, txn.CustomerID)
	}

	return ReconcileTransaction(sale, history, txn), nil
}

// CustomerBalance returns the outstanding figure for a customer's active sale
func (s *BillingService) CustomerBalance(ctx context.Context, customerID uint) (ReconciliationResult, error) {
	sale, err := s.saleRepo.FindActiveByCustomer(ctx, customerID)
	if err != nil {
		return ReconciliationResult{}, nil
	}

	paid, err := s.repo.SumApprovedByCustomer(ctx, customerID)
	if err != nil {
		return ReconciliationResult{}, err
	}

	toDate := decimal.NewFromFloat(paid)
	return Reconcile(sale, toDate, toDate), nil
}

// AttachReceipt stores an uploaded receipt image against the transaction
func (s *BillingService) AttachReceipt(ctx context.Context, id uint, file multipart.File, header *multipart.FileHeader) error {
	txn, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ErrNotFound
	}

	if !storage.IsValidReceiptType(header.Header.Get("Content-Type")) {
		return fmt.Errorf("unsupported receipt content type")
	}
	if header.Size > storage.MaxReceiptSize() {
		return fmt.Errorf("receipt file exceeds the size limit")
	}

	path, err := s.storage.Upload(file, header, "receipts")
	if err != nil {
		return err
	}

	txn.ReceiptPath = &path
	return s.repo.Update(ctx, txn)
}

// ReceiptFilePath resolves the stored receipt file for download
func (s *BillingService) ReceiptFilePath(ctx context.Context, id uint) (string, error) {
	txn, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", ErrNotFound
	}
	if !txn.HasReceipt() {
		return "", ErrNotFound
	}
	return s.storage.GetFullPath(*txn.ReceiptPath), nil
}

// generateReceiptNo produces a short, unique receipt number
func generateReceiptNo() string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return fmt.Sprintf("RCP-%s-%s", time.Now().Format("20060102"), id[:8])
}
