package repository

import (
	"gorm.io/gorm"
)

// Repositories holds all repository instances
type Repositories struct {
	User         UserRepository
	Project      ProjectRepository
	Customer     CustomerRepository
	Sale         SaleRecordRepository
	Installment  InstallmentRepository
	Billing      BillingRepository
	MOD          MODRepository
	Marketer     MarketerRepository
	Director     DirectorRepository
	EditRequest  EditRequestRepository
	Notification NotificationRepository
	RefreshToken RefreshTokenRepository
}

// NewRepositories creates all repository instances
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Project:      NewProjectRepository(db),
		Customer:     NewCustomerRepository(db),
		Sale:         NewSaleRecordRepository(db),
		Installment:  NewInstallmentRepository(db),
		Billing:      NewBillingRepository(db),
		MOD:          NewMODRepository(db),
		Marketer:     NewMarketerRepository(db),
		Director:     NewDirectorRepository(db),
		EditRequest:  NewEditRequestRepository(db),
		Notification: NewNotificationRepository(db),
		RefreshToken: NewRefreshTokenRepository(db),
	}
}

// ListFilter carries the coarse SQL-level filters for list queries. Search,
// sort and pagination happen in memory in the datatable engine, so the
// repositories only narrow by ownership and status here.
type ListFilter struct {
	Status     string
	RecordType string
	ProjectID  uint
	CustomerID uint
	StartDate  string // YYYY-MM-DD, inclusive
	EndDate    string // YYYY-MM-DD, inclusive
}

// applyDateRange narrows a query on created_at by the filter's date bounds
func applyDateRange(db *gorm.DB, f ListFilter) *gorm.DB {
	if f.StartDate != "" {
		db = db.Where("created_at >= ?", f.StartDate)
	}
	if f.EndDate != "" {
		end := f.EndDate
		if len(end) == 10 { // bare date: include the whole day
			end += " 23:59:59"
		}
		db = db.Where("created_at <= ?", end)
	}
	return db
}
