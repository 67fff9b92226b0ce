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

type MODHandler struct {
	modService    *services.MODService
	exportService *services.ExportService
}

func NewMODHandler(modService *services.MODService, exportService *services.ExportService) *MODHandler {
	return &MODHandler{modService: modService, exportService: exportService}
}

func modTableOptions() datatable.Options[models.MODRecordResponse] {
	return datatable.Options[models.MODRecordResponse]{
		Columns: []datatable.Column[models.MODRecordResponse]{
			{Key: "customer", Label: "Customer", Sortable: true, Value: func(r models.MODRecordResponse) any { return r.CustomerName }},
			{Key: "registration_no", Label: "Registration No", Value: func(r models.MODRecordResponse) any {
				if r.RegistrationNo == nil {
					return ""
				}
				return *r.RegistrationNo
			}},
			{Key: "amount", Label: "Amount", Sortable: true, Value: func(r models.MODRecordResponse) any { return r.Amount }},
			{Key: "status", Label: "Status", Sortable: true, Value: func(r models.MODRecordResponse) any { return r.Status }},
			{Key: "created_at", Label: "Created", Sortable: true, Value: func(r models.MODRecordResponse) any { return r.CreatedAt.Unix() }},
		},
		SearchBy: func(r models.MODRecordResponse) any { return r.CustomerName },
	}
}

// @Summary List MOD Records
// @Description Get MOD records with search, sort and pagination
// @Tags MOD
// @Produce json
// @Param page query int false "Zero-indexed page" default(0)
// @Param search query string false "Customer name search term"
// @Success 200 {object} Envelope
// @Security BearerAuth
// @Router /mod-records [get]
func (h *MODHandler) Index(c *gin.Context) {
	records, err := h.modService.List(c.Request.Context(), listFilter(c))
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	rows := make([]models.MODRecordResponse, 0, len(records))
	for i := range records {
		rows = append(rows, records[i].ToResponse())
	}

	page := runTable(rows, modTableOptions(), parseTableQuery(c))
	respondOK(c, tablePayload(page), "")
}

// @Summary Export MOD Records
// @Description Download the filtered MOD list as CSV or XLSX
// @Tags MOD
// @Produce octet-stream
// @Param format query string false "csv or xlsx" default(csv)
// @Success 200 {file} binary
// @Security BearerAuth
// @Router /mod-records/export [get]
func (h *MODHandler) Export(c *gin.Context) {
	records, err := h.modService.List(c.Request.Context(), listFilter(c))
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	rows := make([]models.MODRecordResponse, 0, len(records))
	for i := range records {
		rows = append(rows, records[i].ToResponse())
	}

	headers, cells := exportCells(rows, modTableOptions(), parseTableQuery(c))
	serveExport(c, h.exportService, "mod_records", headers, cells)
}

// @Summary Get MOD Record
// @Tags MOD
// @Produce json
// @Param id path int true "Record ID"
// @Success 200 {object} Envelope
// @Failure 404 {object} Envelope
// @Security BearerAuth
// @Router /mod-records/{id} [get]
func (h *MODHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	record, err := h.modService.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, http.StatusNotFound, "record not found")
		return
	}
	respondOK(c, record.ToResponse(), "")
}

type MODRequest struct {
	CustomerID       uint       `json:"customer_id" binding:"required"`
	RegistrationNo   *string    `json:"registration_no"`
	Amount           float64    `json:"amount" binding:"required,gt=0"`
	RegistrationDate *time.Time `json:"registration_date"`
	Status           string     `json:"status"`
	Remarks          *string    `json:"remarks"`
}

// @Summary Create MOD Record
// @Tags MOD
// @Accept json
// @Produce json
// @Param record body MODRequest true "MOD record"
// @Success 201 {object} Envelope
// @Failure 422 {object} Envelope
// @Security BearerAuth
// @Router /mod-records [post]
func (h *MODHandler) Create(c *gin.Context) {
	var req MODRequest
	if err := BindNestedOrFlat(c, "mod_record", &req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if req.CustomerID == 0 || req.Amount <= 0 {
		respondError(c, http.StatusBadRequest, "customer_id and amount are required")
		return
	}

	record := &models.MODRecord{
		CustomerID:       req.CustomerID,
		RegistrationNo:   req.RegistrationNo,
		Amount:           req.Amount,
		RegistrationDate: req.RegistrationDate,
		Status:           req.Status,
		Remarks:          req.Remarks,
	}

	if err := h.modService.Create(c.Request.Context(), record, middleware.GetUserID(c)); err != nil {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, services.ErrNotFound) {
			status = http.StatusNotFound
		}
		respondError(c, status, err.Error())
		return
	}
	respondCreated(c, record.ToResponse(), "record created")
}

// @Summary Update MOD Record
// @Tags MOD
// @Accept json
// @Produce json
// @Param id path int true "Record ID"
// @Param record body MODRequest true "MOD record"
// @Success 200 {object} Envelope
// @Failure 404 {object} Envelope
// @Security BearerAuth
// @Router /mod-records/{id} [put]
func (h *MODHandler) Update(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	record, err := h.modService.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, http.StatusNotFound, "record not found")
		return
	}

	var req MODRequest
	if err := BindNestedOrFlat(c, "mod_record", &req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	record.RegistrationNo = req.RegistrationNo
	record.RegistrationDate = req.RegistrationDate
	record.Remarks = req.Remarks
	if req.Amount > 0 {
		record.Amount = req.Amount
	}
	if req.Status != "" {
		record.Status = req.Status
	}

	if err := h.modService.Update(c.Request.Context(), record, middleware.GetUserID(c)); err != nil {
		respondError(c, http.StatusUnprocessableEntity, err.Error())
		return
	}
	respondOK(c, record.ToResponse(), "record updated")
}
