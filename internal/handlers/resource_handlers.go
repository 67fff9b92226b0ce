package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jasperjas06/live-sub000/internal/jobs"
	"github.com/jasperjas06/live-sub000/internal/middleware"
	"github.com/jasperjas06/live-sub000/internal/models"
	"github.com/jasperjas06/live-sub000/internal/repository"
	"github.com/jasperjas06/live-sub000/internal/services"
)

// HealthHandler reports service liveness plus background worker stats.
type HealthHandler struct {
	worker *jobs.Worker
}

func NewHealthHandler(worker *jobs.Worker) *HealthHandler {
	return &HealthHandler{worker: worker}
}

// @Summary Health Check
// @Tags Health
// @Produce json
// @Success 200 {object} Envelope
// @Router /health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	respondOK(c, gin.H{
		"status": "ok",
		"time":   time.Now().UTC(),
		"worker": h.worker.GetStats(),
	}, "")
}

// ProjectHandler manages the project catalogue.
type ProjectHandler struct {
	projects repository.ProjectRepository
}

func NewProjectHandler(projects repository.ProjectRepository) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

// @Summary List Projects
// @Tags Projects
// @Produce json
// @Success 200 {object} Envelope
// @Security BearerAuth
// @Router /projects [get]
func (h *ProjectHandler) Index(c *gin.Context) {
	projects, err := h.projects.List(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	rows := make([]models.ProjectResponse, 0, len(projects))
	for i := range projects {
		rows = append(rows, projects[i].ToResponse())
	}
	respondOK(c, rows, "")
}

// @Summary Get Project
// @Tags Projects
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {object} Envelope
// @Failure 404 {object} Envelope
// @Security BearerAuth
// @Router /projects/{id} [get]
func (h *ProjectHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	project, err := h.projects.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, http.StatusNotFound, "project not found")
		return
	}
	respondOK(c, project.ToResponse(), "")
}

type ProjectRequest struct {
	Name        string  `json:"name" binding:"required"`
	Location    string  `json:"location" binding:"required"`
	Description *string `json:"description"`
	TotalUnits  int     `json:"total_units"`
	Active      *bool   `json:"active"`
}

// @Summary Create Project
// @Tags Projects
// @Accept json
// @Produce json
// @Param project body ProjectRequest true "Project"
// @Success 201 {object} Envelope
// @Security BearerAuth
// @Router /projects [post]
func (h *ProjectHandler) Create(c *gin.Context) {
	var req ProjectRequest
	if err := BindNestedOrFlat(c, "project", &req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if req.Name == "" || req.Location == "" {
		respondError(c, http.StatusBadRequest, "name and location are required")
		return
	}

	project := &models.Project{
		Name:        req.Name,
		Location:    req.Location,
		Description: req.Description,
		TotalUnits:  req.TotalUnits,
		Active:      true,
	}
	if err := h.projects.Create(c.Request.Context(), project); err != nil {
		respondError(c, http.StatusUnprocessableEntity, err.Error())
		return
	}
	respondCreated(c, project.ToResponse(), "project created")
}

// @Summary Update Project
// @Tags Projects
// @Accept json
// @Produce json
// @Param id path int true "Project ID"
// @Param project body ProjectRequest true "Project"
// @Success 200 {object} Envelope
// @Failure 404 {object} Envelope
// @Security BearerAuth
// @Router /projects/{id} [put]
func (h *ProjectHandler) Update(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	project, err := h.projects.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, http.StatusNotFound, "project not found")
		return
	}

	var req ProjectRequest
	if err := BindNestedOrFlat(c, "project", &req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if req.Name != "" {
		project.Name = req.Name
	}
	if req.Location != "" {
		project.Location = req.Location
	}
	if req.Description != nil {
		project.Description = req.Description
	}
	if req.TotalUnits > 0 {
		project.TotalUnits = req.TotalUnits
	}
	if req.Active != nil {
		project.Active = *req.Active
	}

	if err := h.projects.Update(c.Request.Context(), project); err != nil {
		respondError(c, http.StatusUnprocessableEntity, err.Error())
		return
	}
	respondOK(c, project.ToResponse(), "project updated")
}

// MarketerHandler manages sales agents in the commission hierarchy.
type MarketerHandler struct {
	marketers repository.MarketerRepository
}

func NewMarketerHandler(marketers repository.MarketerRepository) *MarketerHandler {
	return &MarketerHandler{marketers: marketers}
}

// @Summary List Marketers
// @Tags Commissions
// @Produce json
// @Success 200 {object} Envelope
// @Security BearerAuth
// @Router /marketers [get]
func (h *MarketerHandler) Index(c *gin.Context) {
	marketers, err := h.marketers.List(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	respondOK(c, marketers, "")
}

type MarketerRequest struct {
	Name          string  `json:"name" binding:"required"`
	Phone         string  `json:"phone" binding:"required"`
	Email         *string `json:"email"`
	CommissionPct float64 `json:"commission_pct"`
	DirectorID    *uint   `json:"director_id"`
	Active        *bool   `json:"active"`
}

// @Summary Create Marketer
// @Tags Commissions
// @Accept json
// @Produce json
// @Param marketer body MarketerRequest true "Marketer"
// @Success 201 {object} Envelope
// @Security BearerAuth
// @Router /marketers [post]
func (h *MarketerHandler) Create(c *gin.Context) {
	var req MarketerRequest
	if err := BindNestedOrFlat(c, "marketer", &req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if req.Name == "" || req.Phone == "" {
		respondError(c, http.StatusBadRequest, "name and phone are required")
		return
	}

	marketer := &models.Marketer{
		Name:          req.Name,
		Phone:         req.Phone,
		Email:         req.Email,
		CommissionPct: req.CommissionPct,
		DirectorID:    req.DirectorID,
		Active:        true,
	}
	if err := h.marketers.Create(c.Request.Context(), marketer); err != nil {
		respondError(c, http.StatusUnprocessableEntity, err.Error())
		return
	}
	respondCreated(c, marketer, "marketer created")
}

// @Summary Update Marketer
// @Tags Commissions
// @Accept json
// @Produce json
// @Param id path int true "Marketer ID"
// @Param marketer body MarketerRequest true "Marketer"
// @Success 200 {object} Envelope
// @Failure 404 {object} Envelope
// @Security BearerAuth
// @Router /marketers/{id} [put]
func (h *MarketerHandler) Update(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	marketer, err := h.marketers.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, http.StatusNotFound, "marketer not found")
		return
	}

	var req MarketerRequest
	if err := BindNestedOrFlat(c, "marketer", &req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if req.Name != "" {
		marketer.Name = req.Name
	}
	if req.Phone != "" {
		marketer.Phone = req.Phone
	}
	if req.Email != nil {
		marketer.Email = req.Email
	}
	if req.CommissionPct > 0 {
		marketer.CommissionPct = req.CommissionPct
	}
	if req.DirectorID != nil {
		marketer.DirectorID = req.DirectorID
	}
	if req.Active != nil {
		marketer.Active = *req.Active
	}

	if err := h.marketers.Update(c.Request.Context(), marketer); err != nil {
		respondError(c, http.StatusUnprocessableEntity, err.Error())
		return
	}
	respondOK(c, marketer, "marketer updated")
}

// DirectorHandler manages DD/CED entries.
type DirectorHandler struct {
	directors repository.DirectorRepository
}

func NewDirectorHandler(directors repository.DirectorRepository) *DirectorHandler {
	return &DirectorHandler{directors: directors}
}

// @Summary List Directors
// @Tags Commissions
// @Produce json
// @Success 200 {object} Envelope
// @Security BearerAuth
// @Router /directors [get]
func (h *DirectorHandler) Index(c *gin.Context) {
	directors, err := h.directors.List(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	respondOK(c, directors, "")
}

type DirectorRequest struct {
	Name          string  `json:"name" binding:"required"`
	Designation   string  `json:"designation"`
	Phone         string  `json:"phone" binding:"required"`
	Email         *string `json:"email"`
	CommissionPct float64 `json:"commission_pct"`
	Active        *bool   `json:"active"`
}

// @Summary Create Director
// @Tags Commissions
// @Accept json
// @Produce json
// @Param director body DirectorRequest true "Director"
// @Success 201 {object} Envelope
// @Security BearerAuth
// @Router /directors [post]
func (h *DirectorHandler) Create(c *gin.Context) {
	var req DirectorRequest
	if err := BindNestedOrFlat(c, "director", &req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if req.Name == "" || req.Phone == "" {
		respondError(c, http.StatusBadRequest, "name and phone are required")
		return
	}
	if req.Designation == "" {
		req.Designation = models.DesignationDD
	}

	director := &models.Director{
		Name:          req.Name,
		Designation:   req.Designation,
		Phone:         req.Phone,
		Email:         req.Email,
		CommissionPct: req.CommissionPct,
		Active:        true,
	}
	if err := h.directors.Create(c.Request.Context(), director); err != nil {
		respondError(c, http.StatusUnprocessableEntity, err.Error())
		return
	}
	respondCreated(c, director, "director created")
}

// @Summary Update Director
// @Tags Commissions
// @Accept json
// @Produce json
// @Param id path int true "Director ID"
// @Param director body DirectorRequest true "Director"
// @Success 200 {object} Envelope
// @Failure 404 {object} Envelope
// @Security BearerAuth
// @Router /directors/{id} [put]
func (h *DirectorHandler) Update(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	director, err := h.directors.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, http.StatusNotFound, "director not found")
		return
	}

	var req DirectorRequest
	if err := BindNestedOrFlat(c, "director", &req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if req.Name != "" {
		director.Name = req.Name
	}
	if req.Designation != "" {
		director.Designation = req.Designation
	}
	if req.Phone != "" {
		director.Phone = req.Phone
	}
	if req.Email != nil {
		director.Email = req.Email
	}
	if req.CommissionPct > 0 {
		director.CommissionPct = req.CommissionPct
	}
	if req.Active != nil {
		director.Active = *req.Active
	}

	if err := h.directors.Update(c.Request.Context(), director); err != nil {
		respondError(c, http.StatusUnprocessableEntity, err.Error())
		return
	}
	respondOK(c, director, "director updated")
}

// CommissionHandler serves derived commission statements.
type CommissionHandler struct {
	commissionService *services.CommissionService
}

func NewCommissionHandler(commissionService *services.CommissionService) *CommissionHandler {
	return &CommissionHandler{commissionService: commissionService}
}

// @Summary All Commission Statements
// @Description Commission summary per active marketer and director, derived from approved billing
// @Tags Commissions
// @Produce json
// @Success 200 {object} Envelope
// @Security BearerAuth
// @Router /commissions [get]
func (h *CommissionHandler) Index(c *gin.Context) {
	statements, err := h.commissionService.AllStatements(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	respondOK(c, statements, "")
}

// @Summary Marketer Statement
// @Tags Commissions
// @Produce json
// @Param id path int true "Marketer ID"
// @Success 200 {object} Envelope
// @Failure 404 {object} Envelope
// @Security BearerAuth
// @Router /commissions/marketers/{id} [get]
func (h *CommissionHandler) MarketerStatement(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	statement, err := h.commissionService.MarketerStatement(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, http.StatusNotFound, "marketer not found")
		return
	}
	respondOK(c, statement, "")
}

// @Summary Director Statement
// @Tags Commissions
// @Produce json
// @Param id path int true "Director ID"
// @Success 200 {object} Envelope
// @Failure 404 {object} Envelope
// @Security BearerAuth
// @Router /commissions/directors/{id} [get]
func (h *CommissionHandler) DirectorStatement(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	statement, err := h.commissionService.DirectorStatement(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, http.StatusNotFound, "director not found")
		return
	}
	respondOK(c, statement, "")
}

// EditRequestHandler manages the change-approval workflow.
type EditRequestHandler struct {
	editRequestService *services.EditRequestService
}

func NewEditRequestHandler(editRequestService *services.EditRequestService) *EditRequestHandler {
	return &EditRequestHandler{editRequestService: editRequestService}
}

// @Summary List Edit Requests
// @Tags EditRequests
// @Produce json
// @Param tab query string false "Status tab (pending, approved, rejected)"
// @Success 200 {object} Envelope
// @Security BearerAuth
// @Router /edit-requests [get]
func (h *EditRequestHandler) Index(c *gin.Context) {
	requests, err := h.editRequestService.List(c.Request.Context(), listFilter(c))
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	rows := make([]models.EditRequestResponse, 0, len(requests))
	for i := range requests {
		rows = append(rows, requests[i].ToResponse())
	}
	respondOK(c, rows, "")
}

// @Summary Get Edit Request
// @Tags EditRequests
// @Produce json
// @Param id path int true "Edit request ID"
// @Success 200 {object} Envelope
// @Failure 404 {object} Envelope
// @Security BearerAuth
// @Router /edit-requests/{id} [get]
func (h *EditRequestHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	request, err := h.editRequestService.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, http.StatusNotFound, "edit request not found")
		return
	}
	respondOK(c, request.ToResponse(), "")
}

type EditRequestSubmission struct {
	Entity   string         `json:"entity" binding:"required"`
	EntityID uint           `json:"entity_id" binding:"required"`
	Changes  map[string]any `json:"changes" binding:"required"`
	Reason   *string        `json:"reason"`
}

// @Summary Submit Edit Request
// @Description Request a change to a customer, sale or MOD record for admin review
// @Tags EditRequests
// @Accept json
// @Produce json
// @Param request body EditRequestSubmission true "Requested changes"
// @Success 201 {object} Envelope
// @Failure 422 {object} Envelope
// @Security BearerAuth
// @Router /edit-requests [post]
func (h *EditRequestHandler) Submit(c *gin.Context) {
	var req EditRequestSubmission
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	request, err := h.editRequestService.Submit(c.Request.Context(), req.Entity, req.EntityID, req.Changes, req.Reason, middleware.GetUserID(c))
	if err != nil {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, services.ErrNotFound) {
			status = http.StatusNotFound
		}
		respondError(c, status, err.Error())
		return
	}
	respondCreated(c, request.ToResponse(), "edit request submitted")
}

// @Summary Approve Edit Request
// @Tags EditRequests
// @Produce json
// @Param id path int true "Edit request ID"
// @Success 200 {object} Envelope
// @Failure 422 {object} Envelope
// @Security BearerAuth
// @Router /edit-requests/{id}/approve [post]
func (h *EditRequestHandler) Approve(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	request, err := h.editRequestService.Approve(c.Request.Context(), uint(id), middleware.GetUserID(c))
	if err != nil {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, services.ErrNotFound) {
			status = http.StatusNotFound
		}
		respondError(c, status, err.Error())
		return
	}
	respondOK(c, request.ToResponse(), "edit request approved")
}

type RejectRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// @Summary Reject Edit Request
// @Tags EditRequests
// @Accept json
// @Produce json
// @Param id path int true "Edit request ID"
// @Param rejection body RejectRequest true "Rejection reason"
// @Success 200 {object} Envelope
// @Failure 422 {object} Envelope
// @Security BearerAuth
// @Router /edit-requests/{id}/reject [post]
func (h *EditRequestHandler) Reject(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)

	var req RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "reason is required")
		return
	}

	request, err := h.editRequestService.Reject(c.Request.Context(), uint(id), req.Reason, middleware.GetUserID(c))
	if err != nil {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, services.ErrNotFound) {
			status = http.StatusNotFound
		}
		respondError(c, status, err.Error())
		return
	}
	respondOK(c, request.ToResponse(), "edit request rejected")
}

// NotificationHandler serves the authenticated user's notifications.
type NotificationHandler struct {
	notificationService *services.NotificationService
}

func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// @Summary List Notifications
// @Tags Notifications
// @Produce json
// @Success 200 {object} Envelope
// @Security BearerAuth
// @Router /notifications [get]
func (h *NotificationHandler) Index(c *gin.Context) {
	notifications, err := h.notificationService.FindByUser(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	rows := make([]models.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		rows = append(rows, notifications[i].ToResponse())
	}
	respondOK(c, rows, "")
}

// @Summary Mark Notification Read
// @Tags Notifications
// @Produce json
// @Param id path int true "Notification ID"
// @Success 200 {object} Envelope
// @Security BearerAuth
// @Router /notifications/{id}/read [post]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	if err := h.notificationService.MarkAsRead(c.Request.Context(), uint(id)); err != nil {
		respondError(c, http.StatusNotFound, "notification not found")
		return
	}
	respondOK(c, nil, "notification marked as read")
}

// @Summary Mark All Notifications Read
// @Tags Notifications
// @Produce json
// @Success 200 {object} Envelope
// @Security BearerAuth
// @Router /notifications/read-all [post]
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	if err := h.notificationService.MarkAllAsRead(c.Request.Context(), middleware.GetUserID(c)); err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	respondOK(c, nil, "all notifications marked as read")
}

// @Summary Delete Notification
// @Tags Notifications
// @Produce json
// @Param id path int true "Notification ID"
// @Success 200 {object} Envelope
// @Security BearerAuth
// @Router /notifications/{id} [delete]
func (h *NotificationHandler) Destroy(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	if err := h.notificationService.Delete(c.Request.Context(), uint(id)); err != nil {
		respondError(c, http.StatusNotFound, "notification not found")
		return
	}
	respondOK(c, nil, "notification deleted")
}

// AuditHandler exposes the audit trail to admins.
type AuditHandler struct {
	auditService *services.AuditService
}

func NewAuditHandler(auditService *services.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// @Summary List Audit Logs
// @Tags Audit
// @Produce json
// @Param limit query int false "Max entries" default(50)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} Envelope
// @Security BearerAuth
// @Router /audit-logs [get]
func (h *AuditHandler) Index(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	logs, total, err := h.auditService.List(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	respondOK(c, gin.H{"logs": logs, "total": total}, "")
}
