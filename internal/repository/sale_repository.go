package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/jasperjas06/live-sub000/internal/models"
)

// SaleRecordRepository defines the interface for sale record data access
type SaleRecordRepository interface {
	FindByID(ctx context.Context, id uint) (*models.SaleRecord, error)
	FindByIDWithDetails(ctx context.Context, id uint) (*models.SaleRecord, error)
	FindByCustomer(ctx context.Context, customerID uint) ([]models.SaleRecord, error)
	FindActiveByCustomer(ctx context.Context, customerID uint) (*models.SaleRecord, error)
	Create(ctx context.Context, sale *models.SaleRecord) error
	Update(ctx context.Context, sale *models.SaleRecord) error
	List(ctx context.Context, filter ListFilter) ([]models.SaleRecord, error)
}

type saleRecordRepository struct {
	db *gorm.DB
}

// NewSaleRecordRepository creates a new sale record repository
func NewSaleRecordRepository(db *gorm.DB) SaleRecordRepository {
	return &saleRecordRepository{db: db}
}

func (r *saleRecordRepository) FindByID(ctx context.Context, id uint) (*models.SaleRecord, error) {
	var sale models.SaleRecord
	err := r.db.WithContext(ctx).First(&sale, id).Error
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *saleRecordRepository) FindByIDWithDetails(ctx context.Context, id uint) (*models.SaleRecord, error) {
	var sale models.SaleRecord
	// Customer and Project come in one joined query; installments and
	// transactions are one-to-many so they stay as Preloads.
	err := r.db.WithContext(ctx).
		Joins("Customer").
		Joins("Customer.Project").
		Preload("Installments", func(db *gorm.DB) *gorm.DB {
			return db.Order("installment_no ASC")
		}).
		Preload("Transactions", func(db *gorm.DB) *gorm.DB {
			return db.Order("payment_date ASC, id ASC")
		}).
		First(&sale, id).Error
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *saleRecordRepository) FindByCustomer(ctx context.Context, customerID uint) ([]models.SaleRecord, error) {
	var sales []models.SaleRecord
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Preload("Installments", func(db *gorm.DB) *gorm.DB {
			return db.Order("installment_no ASC")
		}).
		Order("created_at ASC").
		Find(&sales).Error
	return sales, err
}

func (r *saleRecordRepository) FindActiveByCustomer(ctx context.Context, customerID uint) (*models.SaleRecord, error) {
	var sale models.SaleRecord
	err := r.db.WithContext(ctx).
		Where("customer_id = ? AND status NOT IN ?", customerID,
			[]string{models.SaleStatusBlocked, models.SaleStatusCompleted}).
		Preload("Installments", func(db *gorm.DB) *gorm.DB {
			return db.Order("installment_no ASC")
		}).
		Order("created_at DESC").
		First(&sale).Error
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *saleRecordRepository) Create(ctx context.Context, sale *models.SaleRecord) error {
	return r.db.WithContext(ctx).Create(sale).Error
}

func (r *saleRecordRepository) Update(ctx context.Context, sale *models.SaleRecord) error {
	return r.db.WithContext(ctx).Save(sale).Error
}

func (r *saleRecordRepository) List(ctx context.Context, filter ListFilter) ([]models.SaleRecord, error) {
	var sales []models.SaleRecord

	db := r.db.WithContext(ctx).Model(&models.SaleRecord{})

	if filter.RecordType != "" {
		db = db.Where("sale_records.record_type = ?", filter.RecordType)
	}
	if filter.Status != "" {
		db = db.Where("sale_records.status = ?", filter.Status)
	}
	if filter.CustomerID > 0 {
		db = db.Where("sale_records.customer_id = ?", filter.CustomerID)
	}
	if filter.ProjectID > 0 {
		db = db.Joins("LEFT JOIN customers ON customers.id = sale_records.customer_id").
			Where("customers.project_id = ?", filter.ProjectID)
	}
	db = applyDateRange(db, filter)

	err := db.
		Preload("Customer.Project").
		Preload("Installments").
		Order("sale_records.created_at DESC").
		Find(&sales).Error
	return sales, err
}

// InstallmentRepository defines the interface for EMI installment data access
type InstallmentRepository interface {
	FindByID(ctx context.Context, id uint) (*models.EMIInstallment, error)
	FindBySale(ctx context.Context, saleRecordID uint) ([]models.EMIInstallment, error)
	FindBySaleAndNumber(ctx context.Context, saleRecordID uint, installmentNo int) (*models.EMIInstallment, error)
	FindOverdue(ctx context.Context) ([]models.EMIInstallment, error)
	CreateBatch(ctx context.Context, installments []models.EMIInstallment) error
	Update(ctx context.Context, installment *models.EMIInstallment) error
}

type installmentRepository struct {
	db *gorm.DB
}

// NewInstallmentRepository creates a new installment repository
func NewInstallmentRepository(db *gorm.DB) InstallmentRepository {
	return &installmentRepository{db: db}
}

func (r *installmentRepository) FindByID(ctx context.Context, id uint) (*models.EMIInstallment, error) {
	var installment models.EMIInstallment
	err := r.db.WithContext(ctx).First(&installment, id).Error
	if err != nil {
		return nil, err
	}
	return &installment, nil
}

func (r *installmentRepository) FindBySale(ctx context.Context, saleRecordID uint) ([]models.EMIInstallment, error) {
	var installments []models.EMIInstallment
	err := r.db.WithContext(ctx).
		Where("sale_record_id = ?", saleRecordID).
		Order("installment_no ASC").
		Find(&installments).Error
	return installments, err
}

func (r *installmentRepository) FindBySaleAndNumber(ctx context.Context, saleRecordID uint, installmentNo int) (*models.EMIInstallment, error) {
	var installment models.EMIInstallment
	err := r.db.WithContext(ctx).
		Where("sale_record_id = ? AND installment_no = ?", saleRecordID, installmentNo).
		First(&installment).Error
	if err != nil {
		return nil, err
	}
	return &installment, nil
}

func (r *installmentRepository) FindOverdue(ctx context.Context) ([]models.EMIInstallment, error) {
	var installments []models.EMIInstallment
	err := r.db.WithContext(ctx).
		Where("paid_date IS NULL AND due_date < NOW()").
		Preload("SaleRecord.Customer").
		Order("due_date ASC").
		Find(&installments).Error
	return installments, err
}

func (r *installmentRepository) CreateBatch(ctx context.Context, installments []models.EMIInstallment) error {
	if len(installments) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&installments).Error
}

func (r *installmentRepository) Update(ctx context.Context, installment *models.EMIInstallment) error {
	return r.db.WithContext(ctx).Save(installment).Error
}
