package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jasperjas06/live-sub000/internal/datatable"
	"github.com/jasperjas06/live-sub000/internal/middleware"
	"github.com/jasperjas06/live-sub000/internal/models"
	"github.com/jasperjas06/live-sub000/internal/services"
)

type SaleHandler struct {
	saleService   *services.SaleService
	exportService *services.ExportService
}

func NewSaleHandler(saleService *services.SaleService, exportService *services.ExportService) *SaleHandler {
	return &SaleHandler{saleService: saleService, exportService: exportService}
}

// saleTableOptions defines the sale list screen, searchable by customer name
func saleTableOptions() datatable.Options[models.SaleRecordResponse] {
	return datatable.Options[models.SaleRecordResponse]{
		Columns: []datatable.Column[models.SaleRecordResponse]{
			{Key: "customer", Label: "Customer", Sortable: true, Value: func(r models.SaleRecordResponse) any { return r.CustomerName }},
			{Key: "type", Label: "Type", Sortable: true, Value: func(r models.SaleRecordResponse) any { return r.RecordType }},
			{Key: "status", Label: "Status", Sortable: true, Value: func(r models.SaleRecordResponse) any { return r.Status }},
			{Key: "total", Label: "Total", Sortable: true, Value: func(r models.SaleRecordResponse) any { return r.TotalAmount }},
			{Key: "emi", Label: "EMI", Sortable: true, Value: func(r models.SaleRecordResponse) any { return r.EMIAmount }},
			{Key: "paid", Label: "Paid", Sortable: true, Value: func(r models.SaleRecordResponse) any { return r.TotalPaid }},
		},
		SearchBy: func(r models.SaleRecordResponse) any { return r.CustomerName },
	}
}

// @Summary List Sale Records
// @Description Get sale records with search, sort and pagination; tab filters by status, type filters general/lfc/nvt
// @Tags Sales
// @Produce json
// @Param page query int false "Zero-indexed page" default(0)
// @Param limit query int false "Page size (5, 10 or 25)"
// @Param search query string false "Customer name search term"
// @Param sort query string false "Sort column key"
// @Param tab query string false "Status tab"
// @Param type query string false "Record type (general, lfc, nvt)"
// @Success 200 {object} Envelope
// @Security BearerAuth
// @Router /sales [get]
func (h *SaleHandler) Index(c *gin.Context) {
	sales, err := h.saleService.List(c.Request.Context(), listFilter(c))
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	rows := make([]models.SaleRecordResponse, 0, len(sales))
	for i := range sales {
		rows = append(rows, sales[i].ToResponse())
	}

	page := runTable(rows, saleTableOptions(), parseTableQuery(c))
	respondOK(c, tablePayload(page), "")
}

// @Summary Export Sale Records
// @Description Download the filtered sale list as CSV or XLSX
// @Tags Sales
// @Produce octet-stream
// @Param format query string false "csv or xlsx" default(csv)
// @Success 200 {file} binary
// @Security BearerAuth
// @Router /sales/export [get]
func (h *SaleHandler) Export(c *gin.Context) {
	sales, err := h.saleService.List(c.Request.Context(), listFilter(c))
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	rows := make([]models.SaleRecordResponse, 0, len(sales))
	for i := range sales {
		rows = append(rows, sales[i].ToResponse())
	}

	headers, cells := exportCells(rows, saleTableOptions(), parseTableQuery(c))
	serveExport(c, h.exportService, "sale_records", headers, cells)
}

// @Summary Get Sale Record
// @Description Get a sale record with its EMI schedule and transactions
// @Tags Sales
// @Produce json
// @Param id path int true "Sale record ID"
// @Success 200 {object} Envelope
// @Failure 404 {object} Envelope
// @Security BearerAuth
// @Router /sales/{id} [get]
func (h *SaleHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	sale, err := h.saleService.FindByIDWithDetails(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, http.StatusNotFound, "sale record not found")
		return
	}

	installments := make([]models.EMIInstallmentResponse, 0, len(sale.Installments))
	for i := range sale.Installments {
		installments = append(installments, sale.Installments[i].ToResponse())
	}
	transactions := make([]models.BillingTransactionResponse, 0, len(sale.Transactions))
	for i := range sale.Transactions {
		transactions = append(transactions, sale.Transactions[i].ToResponse())
	}

	respondOK(c, gin.H{
		"sale":         sale.ToResponse(),
		"installments": installments,
		"transactions": transactions,
	}, "")
}

type SaleRequest struct {
	CustomerID       uint       `json:"customer_id" binding:"required"`
	RecordType       string     `json:"record_type"`
	TotalAmount      *float64   `json:"total_amount"`
	EMIAmount        float64    `json:"emi_amount"`
	NoOfInstallments int        `json:"no_of_installments"`
	EMIStartDate     *time.Time `json:"emi_start_date"`
	Remarks          *string    `json:"remarks"`
}

// @Summary Create Sale Record
// @Description Open a sale record; the EMI schedule is generated from the terms
// @Tags Sales
// @Accept json
// @Produce json
// @Param sale body SaleRequest true "Sale record"
// @Success 201 {object} Envelope
// @Failure 422 {object} Envelope
// @Security BearerAuth
// @Router /sales [post]
func (h *SaleHandler) Create(c *gin.Context) {
	var req SaleRequest
	if err := BindNestedOrFlat(c, "sale", &req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if req.CustomerID == 0 {
		respondError(c, http.StatusBadRequest, "customer_id is required")
		return
	}

	sale := &models.SaleRecord{
		CustomerID:       req.CustomerID,
		RecordType:       req.RecordType,
		TotalAmount:      req.TotalAmount,
		EMIAmount:        req.EMIAmount,
		NoOfInstallments: req.NoOfInstallments,
		EMIStartDate:     req.EMIStartDate,
		Remarks:          req.Remarks,
	}

	if err := h.saleService.Create(c.Request.Context(), sale, middleware.GetUserID(c)); err != nil {
		respondError(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	respondCreated(c, sale.ToResponse(), "sale record created")
}

// @Summary Update Sale Record
// @Description Update a sale record's terms and remarks
// @Tags Sales
// @Accept json
// @Produce json
// @Param id path int true "Sale record ID"
// @Param sale body SaleRequest true "Sale record"
// @Success 200 {object} Envelope
// @Failure 404 {object} Envelope
// @Security BearerAuth
// @Router /sales/{id} [put]
func (h *SaleHandler) Update(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	sale, err := h.saleService.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, http.StatusNotFound, "sale record not found")
		return
	}

	var req SaleRequest
	if err := BindNestedOrFlat(c, "sale", &req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if req.RecordType != "" {
		sale.RecordType = req.RecordType
	}
	if req.TotalAmount != nil {
		sale.TotalAmount = req.TotalAmount
	}
	if req.EMIAmount > 0 {
		sale.EMIAmount = req.EMIAmount
	}
	if req.NoOfInstallments > 0 {
		sale.NoOfInstallments = req.NoOfInstallments
	}
	if req.Remarks != nil {
		sale.Remarks = req.Remarks
	}

	if err := h.saleService.Update(c.Request.Context(), sale, middleware.GetUserID(c)); err != nil {
		respondError(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	respondOK(c, sale.ToResponse(), "sale record updated")
}

// @Summary Block Sale Record
// @Description Freeze a sale record so no further payments are accepted
// @Tags Sales
// @Produce json
// @Param id path int true "Sale record ID"
// @Success 200 {object} Envelope
// @Failure 422 {object} Envelope
// @Security BearerAuth
// @Router /sales/{id}/block [post]
func (h *SaleHandler) Block(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	if err := h.saleService.Block(c.Request.Context(), uint(id), middleware.GetUserID(c)); err != nil {
		respondError(c, http.StatusUnprocessableEntity, err.Error())
		return
	}
	respondOK(c, nil, "sale record blocked")
}

// @Summary Complete Sale Record
// @Description Close a fully settled sale record
// @Tags Sales
// @Produce json
// @Param id path int true "Sale record ID"
// @Success 200 {object} Envelope
// @Failure 422 {object} Envelope
// @Security BearerAuth
// @Router /sales/{id}/complete [post]
func (h *SaleHandler) Complete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	if err := h.saleService.Complete(c.Request.Context(), uint(id), middleware.GetUserID(c)); err != nil {
		respondError(c, http.StatusUnprocessableEntity, err.Error())
		return
	}
	respondOK(c, nil, "sale record completed")
}
