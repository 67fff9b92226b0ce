package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jasperjas06/live-sub000/internal/datatable"
	"github.com/jasperjas06/live-sub000/internal/middleware"
	"github.com/jasperjas06/live-sub000/internal/models"
	"github.com/jasperjas06/live-sub000/internal/services"
)

type BillingHandler struct {
	billingService *services.BillingService
	reportService  *services.ReportService
	exportService  *services.ExportService
}

func NewBillingHandler(billingService *services.BillingService, reportService *services.ReportService, exportService *services.ExportService) *BillingHandler {
	return &BillingHandler{
		billingService: billingService,
		reportService:  reportService,
		exportService:  exportService,
	}
}

// billingTableOptions defines the billing list screen, searchable by
// customer name; money columns sort numerically.
func billingTableOptions() datatable.Options[models.BillingTransactionResponse] {
	return datatable.Options[models.BillingTransactionResponse]{
		Columns: []datatable.Column[models.BillingTransactionResponse]{
			{Key: "customer", Label: "Customer", Sortable: true, Value: func(r models.BillingTransactionResponse) any { return r.CustomerName }},
			{Key: "amount", Label: "Amount", Sortable: true, Value: func(r models.BillingTransactionResponse) any { return r.AmountPaid }},
			{Key: "date", Label: "Date", Sortable: true, Value: func(r models.BillingTransactionResponse) any { return r.PaymentDate.Unix() }},
			{Key: "mode", Label: "Mode", Sortable: true, Value: func(r models.BillingTransactionResponse) any { return r.Mode }},
			{Key: "status", Label: "Status", Sortable: true, Value: func(r models.BillingTransactionResponse) any { return r.Status }},
			{Key: "receipt", Label: "Receipt No", Value: func(r models.BillingTransactionResponse) any {
				if r.ReceiptNo == nil {
					return ""
				}
				return *r.ReceiptNo
			}},
		},
		SearchBy: func(r models.BillingTransactionResponse) any { return r.CustomerName },
	}
}

// @Summary List Billing Transactions
// @Description Get billing transactions with search, sort and pagination; tab filters by status
// @Tags Billing
// @Produce json
// @Param page query int false "Zero-indexed page" default(0)
// @Param limit query int false "Page size (5, 10 or 25)"
// @Param search query string false "Customer name search term"
// @Param sort query string false "Sort column key"
// @Param tab query string false "Status tab (enquired, approved, blocked)"
// @Success 200 {object} Envelope
// @Security BearerAuth
// @Router /billing [get]
func (h *BillingHandler) Index(c *gin.Context) {
	transactions, err := h.billingService.List(c.Request.Context(), listFilter(c))
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	rows := make([]models.BillingTransactionResponse, 0, len(transactions))
	for i := range transactions {
		rows = append(rows, transactions[i].ToResponse())
	}

	page := runTable(rows, billingTableOptions(), parseTableQuery(c))
	respondOK(c, tablePayload(page), "")
}

// @Summary Export Billing Transactions
// @Description Download the filtered billing list as CSV or XLSX
// @Tags Billing
// @Produce octet-stream
// @Param format query string false "csv or xlsx" default(csv)
// @Success 200 {file} binary
// @Security BearerAuth
// @Router /billing/export [get]
func (h *BillingHandler) Export(c *gin.Context) {
	transactions, err := h.billingService.List(c.Request.Context(), listFilter(c))
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	rows := make([]models.BillingTransactionResponse, 0, len(transactions))
	for i := range transactions {
		rows = append(rows, transactions[i].ToResponse())
	}

	headers, cells := exportCells(rows, billingTableOptions(), parseTableQuery(c))
	serveExport(c, h.exportService, "billing_transactions", headers, cells)
}

// @Summary Billing Stats
// @Description Get transaction counts by status
// @Tags Billing
// @Produce json
// @Success 200 {object} Envelope
// @Security BearerAuth
// @Router /billing/stats [get]
func (h *BillingHandler) Stats(c *gin.Context) {
	stats, err := h.billingService.Stats(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	respondOK(c, stats, "")
}

// @Summary Get Billing Transaction
// @Description Get a transaction with its reconciliation figures
// @Tags Billing
// @Produce json
// @Param id path int true "Transaction ID"
// @Success 200 {object} Envelope
// @Failure 404 {object} Envelope
// @Security BearerAuth
// @Router /billing/{id} [get]
func (h *BillingHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	txn, err := h.billingService.FindByIDWithDetails(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, http.StatusNotFound, "transaction not found")
		return
	}

	figures, err := h.billingService.Reconciliation(c.Request.Context(), txn)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	respondOK(c, gin.H{
		"transaction":    txn.ToResponse(),
		"reconciliation": figures,
	}, "")
}

type PaymentRequest struct {
	CustomerID    uint       `json:"customer_id" binding:"required"`
	SaleRecordID  *uint      `json:"sale_record_id"`
	InstallmentNo *int       `json:"installment_no"`
	AmountPaid    float64    `json:"amount_paid" binding:"required,gt=0"`
	PaymentDate   *time.Time `json:"payment_date"`
	Mode          string     `json:"mode" binding:"required"`
	Reference     *string    `json:"reference"`
	CardNumber    *string    `json:"card_number"`
	CardHolder    *string    `json:"card_holder"`
	Remarks       *string    `json:"remarks"`
}

// @Summary Record Payment
// @Description Register an incoming payment; card and online modes require a reference
// @Tags Billing
// @Accept json
// @Produce json
// @Param payment body PaymentRequest true "Payment"
// @Success 201 {object} Envelope
// @Failure 422 {object} Envelope
// @Security BearerAuth
// @Router /billing [post]
func (h *BillingHandler) Create(c *gin.Context) {
	var req PaymentRequest
	if err := BindNestedOrFlat(c, "payment", &req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if req.CustomerID == 0 || req.AmountPaid <= 0 || req.Mode == "" {
		respondError(c, http.StatusBadRequest, "customer_id, amount_paid and mode are required")
		return
	}

	txn := &models.BillingTransaction{
		CustomerID:    req.CustomerID,
		SaleRecordID:  req.SaleRecordID,
		InstallmentNo: req.InstallmentNo,
		AmountPaid:    req.AmountPaid,
		Mode:          req.Mode,
		Reference:     req.Reference,
		CardNumber:    req.CardNumber,
		CardHolder:    req.CardHolder,
		Remarks:       req.Remarks,
	}
	if req.PaymentDate != nil {
		txn.PaymentDate = *req.PaymentDate
	}

	if err := h.billingService.RecordPayment(c.Request.Context(), txn, middleware.GetUserID(c)); err != nil {
		respondError(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	respondCreated(c, txn.ToResponse(), "payment recorded")
}

// @Summary Approve Payment
// @Description Approve an enquired payment; assigns a receipt number and settles the matching installment
// @Tags Billing
// @Produce json
// @Param id path int true "Transaction ID"
// @Success 200 {object} Envelope
// @Failure 422 {object} Envelope
// @Security BearerAuth
// @Router /billing/{id}/approve [post]
func (h *BillingHandler) Approve(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	txn, err := h.billingService.Approve(c.Request.Context(), uint(id), middleware.GetUserID(c))
	if err != nil {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, services.ErrNotFound) {
			status = http.StatusNotFound
		}
		respondError(c, status, err.Error())
		return
	}
	respondOK(c, txn.ToResponse(), "payment approved")
}

type BlockRequest struct {
	Reason string `json:"reason"`
}

// @Summary Block Payment
// @Description Block an enquired payment with an optional reason; blocked amounts never count toward paid-to-date
// @Tags Billing
// @Accept json
// @Produce json
// @Param id path int true "Transaction ID"
// @Param block body BlockRequest false "Block reason"
// @Success 200 {object} Envelope
// @Failure 422 {object} Envelope
// @Security BearerAuth
// @Router /billing/{id}/block [post]
func (h *BillingHandler) Block(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)

	// Reason body is optional; a bare POST still blocks
	var req BlockRequest
	_ = c.ShouldBindJSON(&req)

	txn, err := h.billingService.Block(c.Request.Context(), uint(id), req.Reason, middleware.GetUserID(c))
	if err != nil {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, services.ErrNotFound) {
			status = http.StatusNotFound
		}
		respondError(c, status, err.Error())
		return
	}
	respondOK(c, txn.ToResponse(), "payment blocked")
}

// @Summary Upload Receipt
// @Description Attach a receipt image or PDF to a transaction
// @Tags Billing
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Transaction ID"
// @Param receipt formData file true "Receipt file"
// @Success 200 {object} Envelope
// @Failure 422 {object} Envelope
// @Security BearerAuth
// @Router /billing/{id}/receipt [post]
func (h *BillingHandler) UploadReceipt(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)

	file, header, err := c.Request.FormFile("receipt")
	if err != nil {
		respondError(c, http.StatusBadRequest, "receipt file is required")
		return
	}
	defer file.Close()

	if err := h.billingService.AttachReceipt(c.Request.Context(), uint(id), file, header); err != nil {
		respondError(c, http.StatusUnprocessableEntity, err.Error())
		return
	}
	respondOK(c, nil, "receipt attached")
}

// @Summary Download Receipt
// @Description Download the attached receipt file
// @Tags Billing
// @Produce octet-stream
// @Param id path int true "Transaction ID"
// @Success 200 {file} binary
// @Failure 404 {object} Envelope
// @Security BearerAuth
// @Router /billing/{id}/receipt [get]
func (h *BillingHandler) DownloadReceipt(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	path, err := h.billingService.ReceiptFilePath(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, http.StatusNotFound, "receipt not found")
		return
	}
	c.File(path)
}

// @Summary Receipt PDF
// @Description Render the printable receipt with reconciliation figures and the amount in words
// @Tags Billing
// @Produce application/pdf
// @Param id path int true "Transaction ID"
// @Success 200 {file} binary
// @Failure 422 {object} Envelope
// @Security BearerAuth
// @Router /billing/{id}/receipt.pdf [get]
func (h *BillingHandler) ReceiptPDF(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	buf, err := h.reportService.GenerateReceiptPDF(c.Request.Context(), uint(id))
	if err != nil {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, services.ErrNotFound) {
			status = http.StatusNotFound
		}
		respondError(c, status, err.Error())
		return
	}

	c.Header("Content-Disposition", `attachment; filename="receipt.pdf"`)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
