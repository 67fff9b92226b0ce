package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/jasperjas06/live-sub000/internal/models"
)

// BillingRepository defines the interface for billing transaction data access
type BillingRepository interface {
	FindByID(ctx context.Context, id uint) (*models.BillingTransaction, error)
	FindByIDWithDetails(ctx context.Context, id uint) (*models.BillingTransaction, error)
	FindByCustomer(ctx context.Context, customerID uint) ([]models.BillingTransaction, error)
	Create(ctx context.Context, txn *models.BillingTransaction) error
	Update(ctx context.Context, txn *models.BillingTransaction) error
	List(ctx context.Context, filter ListFilter) ([]models.BillingTransaction, error)
	SumApprovedByCustomer(ctx context.Context, customerID uint) (float64, error)
	SumApprovedByMarketer(ctx context.Context, marketerID uint) (float64, int, error)
	SumApprovedByDirector(ctx context.Context, directorID uint) (float64, int, error)
	GetStats(ctx context.Context) (*BillingStats, error)
}

// BillingStats holds the count of billing transactions by status
type BillingStats struct {
	Total    int64 `json:"total"`
	Enquired int64 `json:"enquired"`
	Approved int64 `json:"approved"`
	Blocked  int64 `json:"blocked"`
}

type billingRepository struct {
	db *gorm.DB
}

// NewBillingRepository creates a new billing repository
func NewBillingRepository(db *gorm.DB) BillingRepository {
	return &billingRepository{db: db}
}

func (r *billingRepository) FindByID(ctx context.Context, id uint) (*models.BillingTransaction, error) {
	var txn models.BillingTransaction
	err := r.db.WithContext(ctx).First(&txn, id).Error
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

func (r *billingRepository) FindByIDWithDetails(ctx context.Context, id uint) (*models.BillingTransaction, error) {
	var txn models.BillingTransaction
	err := r.db.WithContext(ctx).
		Joins("Customer").
		Joins("Customer.Project").
		Joins("ApprovedByUser").
		Preload("SaleRecord.Installments").
		First(&txn, id).Error
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

func (r *billingRepository) FindByCustomer(ctx context.Context, customerID uint) ([]models.BillingTransaction, error) {
	var txns []models.BillingTransaction
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("payment_date ASC, id ASC").
		Find(&txns).Error
	return txns, err
}

func (r *billingRepository) Create(ctx context.Context, txn *models.BillingTransaction) error {
	return r.db.WithContext(ctx).Create(txn).Error
}

func (r *billingRepository) Update(ctx context.Context, txn *models.BillingTransaction) error {
	return r.db.WithContext(ctx).Save(txn).Error
}

func (r *billingRepository) List(ctx context.Context, filter ListFilter) ([]models.BillingTransaction, error) {
	var txns []models.BillingTransaction

	db := r.db.WithContext(ctx).Model(&models.BillingTransaction{})

	if filter.Status != "" {
		db = db.Where("billing_transactions.status = ?", filter.Status)
	}
	if filter.CustomerID > 0 {
		db = db.Where("billing_transactions.customer_id = ?", filter.CustomerID)
	}
	if filter.ProjectID > 0 {
		db = db.Joins("LEFT JOIN customers ON customers.id = billing_transactions.customer_id").
			Where("customers.project_id = ?", filter.ProjectID)
	}
	db = applyDateRange(db, filter)

	err := db.
		Preload("Customer.Project").
		Preload("ApprovedByUser").
		Order("billing_transactions.created_at DESC").
		Find(&txns).Error
	return txns, err
}

func (r *billingRepository) SumApprovedByCustomer(ctx context.Context, customerID uint) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).
		Model(&models.BillingTransaction{}).
		Select("COALESCE(SUM(amount_paid), 0)").
		Where("customer_id = ? AND status = ?", customerID, models.BillingStatusApproved).
		Scan(&total).Error
	return total, err
}

func (r *billingRepository) SumApprovedByMarketer(ctx context.Context, marketerID uint) (float64, int, error) {
	return r.sumApprovedByAttribution(ctx, "customers.marketer_id", marketerID)
}

func (r *billingRepository) SumApprovedByDirector(ctx context.Context, directorID uint) (float64, int, error) {
	return r.sumApprovedByAttribution(ctx, "customers.director_id", directorID)
}

func (r *billingRepository) sumApprovedByAttribution(ctx context.Context, column string, id uint) (float64, int, error) {
	type result struct {
		Total     float64
		Customers int
	}
	var res result
	err := r.db.WithContext(ctx).
		Model(&models.BillingTransaction{}).
		Select("COALESCE(SUM(billing_transactions.amount_paid), 0) AS total, COUNT(DISTINCT billing_transactions.customer_id) AS customers").
		Joins("LEFT JOIN customers ON customers.id = billing_transactions.customer_id").
		Where(column+" = ? AND billing_transactions.status = ?", id, models.BillingStatusApproved).
		Scan(&res).Error
	return res.Total, res.Customers, err
}

func (r *billingRepository) GetStats(ctx context.Context) (*BillingStats, error) {
	stats := &BillingStats{}

	rows, err := r.db.WithContext(ctx).
		Model(&models.BillingTransaction{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats.Total += count
		switch status {
		case models.BillingStatusEnquired:
			stats.Enquired = count
		case models.BillingStatusApproved:
			stats.Approved = count
		case models.BillingStatusBlocked:
			stats.Blocked = count
		}
	}

	return stats, rows.Err()
}
