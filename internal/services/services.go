package services

import (
	"gorm.io/gorm"

	"github.com/jasperjas06/live-sub000/internal/config"
	"github.com/jasperjas06/live-sub000/internal/jobs"
	"github.com/jasperjas06/live-sub000/internal/repository"
	"github.com/jasperjas06/live-sub000/internal/storage"
)

// Services holds all service instances
type Services struct {
	Auth         *AuthService
	User         *UserService
	Customer     *CustomerService
	Sale         *SaleService
	Billing      *BillingService
	MOD          *MODService
	Commission   *CommissionService
	EditRequest  *EditRequestService
	Notification *NotificationService
	Audit        *AuditService
	Export       *ExportService
	Report       *ReportService
}

// NewServices creates all service instances
func NewServices(repos *repository.Repositories, worker *jobs.Worker, store *storage.LocalStorage, cfg *config.Config, db *gorm.DB) *Services {
	notificationSvc := NewNotificationService(repos.Notification, repos.User)
	auditSvc := NewAuditService(db)

	return &Services{
		Auth:         NewAuthService(repos.User, repos.RefreshToken, cfg),
		User:         NewUserService(repos.User, auditSvc),
		Customer:     NewCustomerService(repos.Customer, repos.Sale, notificationSvc, auditSvc),
		Sale:         NewSaleService(repos.Sale, repos.Installment, repos.Customer, notificationSvc, auditSvc),
		Billing:      NewBillingService(repos.Billing, repos.Sale, repos.Installment, repos.Customer, notificationSvc, auditSvc, store, worker),
		MOD:          NewMODService(repos.MOD, repos.Customer, auditSvc),
		Commission:   NewCommissionService(repos.Billing, repos.Marketer, repos.Director),
		EditRequest:  NewEditRequestService(repos.EditRequest, repos.Customer, repos.Sale, repos.MOD, notificationSvc, auditSvc),
		Notification: notificationSvc,
		Audit:        auditSvc,
		Export:       NewExportService(),
		Report:       NewReportService(repos.Billing, repos.Sale, repos.Customer, cfg),
	}
}
