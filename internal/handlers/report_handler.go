package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jasperjas06/live-sub000/internal/services"
)

type ReportHandler struct {
	reportService  *services.ReportService
	billingService *services.BillingService
}

func NewReportHandler(reportService *services.ReportService, billingService *services.BillingService) *ReportHandler {
	return &ReportHandler{reportService: reportService, billingService: billingService}
}

// @Summary Customer Statement PDF
// @Description Render the customer's full statement (sales, schedules, transactions) as PDF
// @Tags Reports
// @Produce application/pdf
// @Param id path int true "Customer ID"
// @Success 200 {file} binary
// @Failure 404 {object} Envelope
// @Security BearerAuth
// @Router /reports/customers/{id}/statement [get]
func (h *ReportHandler) CustomerStatement(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	buf, err := h.reportService.GenerateStatementPDF(c.Request.Context(), uint(id))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, services.ErrNotFound) {
			status = http.StatusNotFound
		}
		respondError(c, status, err.Error())
		return
	}

	c.Header("Content-Disposition", `attachment; filename="statement.pdf"`)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// @Summary Customer Balance
// @Description Running reconciliation figures for a customer's active sale
// @Tags Reports
// @Produce json
// @Param id path int true "Customer ID"
// @Success 200 {object} Envelope
// @Security BearerAuth
// @Router /reports/customers/{id}/balance [get]
func (h *ReportHandler) CustomerBalance(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	result, err := h.billingService.CustomerBalance(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	respondOK(c, result, "")
}
