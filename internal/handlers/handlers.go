package handlers

import (
	"github.com/jasperjas06/live-sub000/internal/jobs"
	"github.com/jasperjas06/live-sub000/internal/repository"
	"github.com/jasperjas06/live-sub000/internal/services"
)

// Handlers holds all HTTP handler instances
type Handlers struct {
	Health       *HealthHandler
	Auth         *AuthHandler
	User         *UserHandler
	Customer     *CustomerHandler
	Sale         *SaleHandler
	Billing      *BillingHandler
	MOD          *MODHandler
	Project      *ProjectHandler
	Marketer     *MarketerHandler
	Director     *DirectorHandler
	Commission   *CommissionHandler
	EditRequest  *EditRequestHandler
	Notification *NotificationHandler
	Audit        *AuditHandler
	Report       *ReportHandler
}

// NewHandlers creates all handler instances
func NewHandlers(svcs *services.Services, repos *repository.Repositories, worker *jobs.Worker) *Handlers {
	return &Handlers{
		Health:       NewHealthHandler(worker),
		Auth:         NewAuthHandler(svcs.Auth, svcs.User),
		User:         NewUserHandler(svcs.User),
		Customer:     NewCustomerHandler(svcs.Customer, svcs.Export),
		Sale:         NewSaleHandler(svcs.Sale, svcs.Export),
		Billing:      NewBillingHandler(svcs.Billing, svcs.Report, svcs.Export),
		MOD:          NewMODHandler(svcs.MOD, svcs.Export),
		Project:      NewProjectHandler(repos.Project),
		Marketer:     NewMarketerHandler(repos.Marketer),
		Director:     NewDirectorHandler(repos.Director),
		Commission:   NewCommissionHandler(svcs.Commission),
		EditRequest:  NewEditRequestHandler(svcs.EditRequest),
		Notification: NewNotificationHandler(svcs.Notification),
		Audit:        NewAuditHandler(svcs.Audit),
		Report:       NewReportHandler(svcs.Report, svcs.Billing),
	}
}
