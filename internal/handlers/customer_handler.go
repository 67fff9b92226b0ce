package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jasperjas06/live-sub000/internal/datatable"
	"github.com/jasperjas06/live-sub000/internal/middleware"
	"github.com/jasperjas06/live-sub000/internal/models"
	"github.com/jasperjas06/live-sub000/internal/services"
)

type CustomerHandler struct {
	customerService *services.CustomerService
	exportService   *services.ExportService
	actions         *datatable.Actions
}

func NewCustomerHandler(customerService *services.CustomerService, exportService *services.ExportService) *CustomerHandler {
	h := &CustomerHandler{
		customerService: customerService,
		exportService:   exportService,
	}

	// Delete is soft and guarded per row: a second delete for the same
	// customer is rejected while the first is still in flight.
	h.actions = datatable.NewActions(true, true, true)
	h.actions.OnDelete = func(ctx context.Context, id string) error {
		customerID, err := strconv.ParseUint(id, 10, 32)
		if err != nil {
			return err
		}
		actorID, _ := ctx.Value(actorKey{}).(uint)
		return customerService.SoftDelete(ctx, uint(customerID), actorID)
	}
	return h
}

// actorKey carries the acting user through action contexts
type actorKey struct{}

// customerTableOptions defines the customer list screen: searchable by name,
// sortable on the core columns.
func customerTableOptions() datatable.Options[models.CustomerResponse] {
	return datatable.Options[models.CustomerResponse]{
		Columns: []datatable.Column[models.CustomerResponse]{
			{Key: "name", Label: "Name", Sortable: true, Value: func(r models.CustomerResponse) any { return r.Name }},
			{Key: "phone", Label: "Phone", Value: func(r models.CustomerResponse) any { return r.Phone }},
			{Key: "project", Label: "Project", Sortable: true, Value: func(r models.CustomerResponse) any { return r.ProjectName }},
			{Key: "marketer", Label: "Marketer", Sortable: true, Value: func(r models.CustomerResponse) any { return r.MarketerName }},
			{Key: "created_at", Label: "Enrolled", Sortable: true, Value: func(r models.CustomerResponse) any { return r.CreatedAt.Unix() }},
		},
		SearchBy: func(r models.CustomerResponse) any { return r.Name },
	}
}

// @Summary List Customers
// @Description Get the customer list with search, sort and pagination
// @Tags Customers
// @Produce json
// @Param page query int false "Zero-indexed page" default(0)
// @Param limit query int false "Page size (5, 10 or 25)"
// @Param search query string false "Name search term"
// @Param sort query string false "Sort column key"
// @Param dir query string false "Sort direction (asc or desc)"
// @Success 200 {object} Envelope
// @Security BearerAuth
// @Router /customers [get]
func (h *CustomerHandler) Index(c *gin.Context) {
	customers, err := h.customerService.List(c.Request.Context(), listFilter(c))
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	rows := make([]models.CustomerResponse, 0, len(customers))
	for i := range customers {
		rows = append(rows, customers[i].ToResponse())
	}

	page := runTable(rows, customerTableOptions(), parseTableQuery(c))
	respondOK(c, tablePayload(page), "")
}

// @Summary Export Customers
// @Description Download the filtered customer list as CSV or XLSX
// @Tags Customers
// @Produce octet-stream
// @Param format query string false "csv or xlsx" default(csv)
// @Success 200 {file} binary
// @Security BearerAuth
// @Router /customers/export [get]
func (h *CustomerHandler) Export(c *gin.Context) {
	customers, err := h.customerService.List(c.Request.Context(), listFilter(c))
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	rows := make([]models.CustomerResponse, 0, len(customers))
	for i := range customers {
		rows = append(rows, customers[i].ToResponse())
	}

	headers, cells := exportCells(rows, customerTableOptions(), parseTableQuery(c))
	serveExport(c, h.exportService, "customers", headers, cells)
}

// @Summary Get Customer
// @Description Get a customer with project, attribution and sale records
// @Tags Customers
// @Produce json
// @Param id path int true "Customer ID"
// @Success 200 {object} Envelope
// @Failure 404 {object} Envelope
// @Security BearerAuth
// @Router /customers/{id} [get]
func (h *CustomerHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	customer, err := h.customerService.FindByIDWithDetails(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, http.StatusNotFound, "customer not found")
		return
	}

	sales := make([]models.SaleRecordResponse, 0, len(customer.Sales))
	for i := range customer.Sales {
		sales = append(sales, customer.Sales[i].ToResponse())
	}

	respondOK(c, gin.H{
		"customer": customer.ToResponse(),
		"sales":    sales,
	}, "")
}

type CustomerRequest struct {
	Name       string  `json:"name" binding:"required"`
	Phone      string  `json:"phone" binding:"required"`
	Email      *string `json:"email"`
	Identity   string  `json:"identity" binding:"required"`
	Address    *string `json:"address"`
	UnitNo     *string `json:"unit_no"`
	ProjectID  *uint   `json:"project_id"`
	MarketerID *uint   `json:"marketer_id"`
	DirectorID *uint   `json:"director_id"`
}

// @Summary Create Customer
// @Description Enroll a new customer
// @Tags Customers
// @Accept json
// @Produce json
// @Param customer body CustomerRequest true "Customer"
// @Success 201 {object} Envelope
// @Failure 422 {object} Envelope
// @Security BearerAuth
// @Router /customers [post]
func (h *CustomerHandler) Create(c *gin.Context) {
	var req CustomerRequest
	if err := BindNestedOrFlat(c, "customer", &req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if req.Name == "" || req.Phone == "" || req.Identity == "" {
		respondError(c, http.StatusBadRequest, "name, phone and identity are required")
		return
	}

	customer := &models.Customer{
		Name:       req.Name,
		Phone:      req.Phone,
		Email:      req.Email,
		Identity:   req.Identity,
		Address:    req.Address,
		UnitNo:     req.UnitNo,
		ProjectID:  req.ProjectID,
		MarketerID: req.MarketerID,
		DirectorID: req.DirectorID,
	}

	if err := h.customerService.Create(c.Request.Context(), customer, middleware.GetUserID(c)); err != nil {
		respondError(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	respondCreated(c, customer.ToResponse(), "customer enrolled")
}

// @Summary Update Customer
// @Description Update a customer's details
// @Tags Customers
// @Accept json
// @Produce json
// @Param id path int true "Customer ID"
// @Param customer body CustomerRequest true "Customer"
// @Success 200 {object} Envelope
// @Failure 404 {object} Envelope
// @Security BearerAuth
// @Router /customers/{id} [put]
func (h *CustomerHandler) Update(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	customer, err := h.customerService.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, http.StatusNotFound, "customer not found")
		return
	}

	var req CustomerRequest
	if err := BindNestedOrFlat(c, "customer", &req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if req.Name != "" {
		customer.Name = req.Name
	}
	if req.Phone != "" {
		customer.Phone = req.Phone
	}
	if req.Email != nil {
		customer.Email = req.Email
	}
	if req.Address != nil {
		customer.Address = req.Address
	}
	if req.UnitNo != nil {
		customer.UnitNo = req.UnitNo
	}
	if req.ProjectID != nil {
		customer.ProjectID = req.ProjectID
	}
	if req.MarketerID != nil {
		customer.MarketerID = req.MarketerID
	}
	if req.DirectorID != nil {
		customer.DirectorID = req.DirectorID
	}

	if err := h.customerService.Update(c.Request.Context(), customer, middleware.GetUserID(c)); err != nil {
		respondError(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	respondOK(c, customer.ToResponse(), "customer updated")
}

// @Summary Delete Customer
// @Description Soft delete a customer; repeated deletes for the same row are rejected while one is in flight
// @Tags Customers
// @Produce json
// @Param id path int true "Customer ID"
// @Success 200 {object} Envelope
// @Failure 409 {object} Envelope
// @Security BearerAuth
// @Router /customers/{id} [delete]
func (h *CustomerHandler) Destroy(c *gin.Context) {
	id := c.Param("id")
	ctx := context.WithValue(c.Request.Context(), actorKey{}, middleware.GetUserID(c))

	if err := h.actions.Delete(ctx, id); err != nil {
		if errors.Is(err, datatable.ErrDeleteInFlight) {
			respondError(c, http.StatusConflict, "delete already in progress for this customer")
			return
		}
		if errors.Is(err, services.ErrNotFound) {
			respondError(c, http.StatusNotFound, "customer not found")
			return
		}
		respondError(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	respondOK(c, nil, "customer deleted")
}

// @Summary Restore Customer
// @Description Restore a soft-deleted customer
// @Tags Customers
// @Produce json
// @Param id path int true "Customer ID"
// @Success 200 {object} Envelope
// @Security BearerAuth
// @Router /customers/{id}/restore [post]
func (h *CustomerHandler) Restore(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	if err := h.customerService.Restore(c.Request.Context(), uint(id), middleware.GetUserID(c)); err != nil {
		respondError(c, http.StatusUnprocessableEntity, err.Error())
		return
	}
	respondOK(c, nil, "customer restored")
}
