package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"math"
	"os"
	"time"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/jung-kurt/gofpdf"

	"github.com/jasperjas06/live-sub000/internal/config"
	"github.com/jasperjas06/live-sub000/internal/models"
	"github.com/jasperjas06/live-sub000/internal/repository"
)

// ReportService renders printable documents: payment receipts and customer
// account statements.
type ReportService struct {
	billingRepo  repository.BillingRepository
	saleRepo     repository.SaleRecordRepository
	customerRepo repository.CustomerRepository
	cfg          *config.Config
}

// NewReportService creates a new report service
func NewReportService(billingRepo repository.BillingRepository, saleRepo repository.SaleRecordRepository, customerRepo repository.CustomerRepository, cfg *config.Config) *ReportService {
	return &ReportService{
		billingRepo:  billingRepo,
		saleRepo:     saleRepo,
		customerRepo: customerRepo,
		cfg:          cfg,
	}
}

// GenerateReceiptPDF renders the receipt for an approved transaction. The
// receipt carries the reconciliation figures and the amount in words.
func (s *ReportService) GenerateReceiptPDF(ctx context.Context, txnID uint) (*bytes.Buffer, error) {
	txn, err := s.billingRepo.FindByIDWithDetails(ctx, txnID)
	if err != nil {
		return nil, ErrNotFound
	}
	if !txn.IsApproved() {
		return nil, ErrInvalidState
	}

	history, err := s.billingRepo.FindByCustomer(ctx, txn.CustomerID)
	if err != nil {
		return nil, err
	}

	var sale *models.SaleRecord
	if txn.SaleRecordID != nil {
		sale, _ = s.saleRepo.FindByID(ctx, *txn.SaleRecordID)
	}
	figures := ReconcileTransaction(sale, history, txn)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, s.cfg.CompanyName, "", 1, "C", false, 0, "")
	if s.cfg.CompanyAddress != "" {
		pdf.SetFont("Arial", "", 9)
		pdf.CellFormat(0, 5, s.cfg.CompanyAddress, "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 13)
	pdf.CellFormat(0, 8, "PAYMENT RECEIPT", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "", 10)
	receiptNo := ""
	if txn.ReceiptNo != nil {
		receiptNo = *txn.ReceiptNo
	}
	pdf.Cell(50, 7, "Receipt No:")
	pdf.Cell(80, 7, receiptNo)
	pdf.Ln(6)
	pdf.Cell(50, 7, "Date:")
	pdf.Cell(80, 7, txn.PaymentDate.Format("02/01/2006"))
	pdf.Ln(6)
	pdf.Cell(50, 7, "Received From:")
	pdf.Cell(80, 7, txn.Customer.Name)
	pdf.Ln(6)
	pdf.Cell(50, 7, "Payment Mode:")
	mode := txn.Mode
	if txn.Reference != nil {
		mode = fmt.Sprintf("%s (ref %s)", mode, *txn.Reference)
	}
	pdf.Cell(80, 7, mode)
	pdf.Ln(10)

	rows := []struct {
		label string
		value string
	}{
		{"Total Amount", figures.CurrencyOrNA(figures.TotalAmount)},
		{"Previously Paid", figures.CurrencyOrNA(figures.TotalPreviouslyPaid)},
		{"Current Payment", figures.CurrencyOrNA(figures.CurrentPaymentAmount)},
		{"Total Paid To Date", figures.CurrencyOrNA(figures.TotalPaidToDate)},
		{"Outstanding Balance", figures.CurrencyOrNA(figures.OutstandingBalance)},
	}
	pdf.SetFont("Arial", "B", 10)
	for _, row := range rows {
		pdf.CellFormat(90, 8, row.label, "1", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(60, 8, row.value, "1", 1, "R", false, 0, "")
		pdf.SetFont("Arial", "B", 10)
	}
	pdf.Ln(6)

	words := AmountInWords(int64(math.Round(txn.AmountPaid)))
	if words != "" {
		pdf.SetFont("Arial", "I", 10)
		pdf.MultiCell(0, 6, fmt.Sprintf("Amount in words: %s rupees only", words), "", "L", false)
	}

	pdf.Ln(12)
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(0, 6, "This is a computer generated receipt.", "", 1, "C", false, 0, "")

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// GenerateStatementPDF renders a full account statement for a customer:
// every sale record with its EMI schedule and transaction history.
func (s *ReportService) GenerateStatementPDF(ctx context.Context, customerID uint) (*bytes.Buffer, error) {
	customer, err := s.customerRepo.FindByIDWithDetails(ctx, customerID)
	if err != nil {
		return nil, ErrNotFound
	}

	transactions, err := s.billingRepo.FindByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	type installmentData struct {
		No      int
		Amount  string
		DueDate string
		Status  string
	}
	type saleData struct {
		ID           uint
		RecordType   string
		Status       string
		Total        string
		Installments []installmentData
	}
	type txnData struct {
		Date      string
		Amount    string
		Mode      string
		Status    string
		ReceiptNo string
	}
	type statementData struct {
		Company      string
		Customer     *models.Customer
		Date         string
		Sales        []saleData
		Transactions []txnData
	}

	data := statementData{
		Company:  s.cfg.CompanyName,
		Customer: customer,
		Date:     time.Now().Format("02/01/2006"),
	}

	for _, sale := range customer.Sales {
		sd := saleData{
			ID:         sale.ID,
			RecordType: sale.RecordType,
			Status:     sale.Status,
			Total:      fmt.Sprintf("%.2f", sale.ContractedAmount()),
		}
		for _, inst := range sale.Installments {
			status := "due"
			if inst.IsPaid() {
				status = "paid"
			} else if inst.IsOverdue() {
				status = fmt.Sprintf("overdue %dd", inst.OverdueDays())
			}
			sd.Installments = append(sd.Installments, installmentData{
				No:      inst.InstallmentNo,
				Amount:  fmt.Sprintf("%.2f", inst.Amount),
				DueDate: inst.DueDate.Format("02/01/2006"),
				Status:  status,
			})
		}
		data.Sales = append(data.Sales, sd)
	}

	for _, txn := range transactions {
		receiptNo := ""
		if txn.ReceiptNo != nil {
			receiptNo = *txn.ReceiptNo
		}
		data.Transactions = append(data.Transactions, txnData{
			Date:      txn.PaymentDate.Format("02/01/2006"),
			Amount:    fmt.Sprintf("%.2f", txn.AmountPaid),
			Mode:      txn.Mode,
			Status:    txn.Status,
			ReceiptNo: receiptNo,
		})
	}

	return s.generatePDF("customer_statement.html", data)
}

// generatePDF renders an HTML template and converts it with wkhtmltopdf
func (s *ReportService) generatePDF(templateName string, data interface{}) (*bytes.Buffer, error) {
	tmplPath := fmt.Sprintf("internal/services/templates/reports/%s", templateName)
	if _, err := os.Stat(tmplPath); os.IsNotExist(err) {
		tmplPath = fmt.Sprintf("templates/reports/%s", templateName)
	}

	tmpl, err := template.ParseFiles(tmplPath)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", templateName, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create pdf generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader(buf.Bytes()))
	page.EnableLocalFileAccess.Set(true)
	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create pdf: %w", err)
	}

	return pdfg.Buffer(), nil
}
