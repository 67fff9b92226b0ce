package models

import (
	"time"
)

// EMIInstallment is one scheduled payment on a sale record. An installment
// counts as paid only when both PaidDate and PaidAmount are set.
type EMIInstallment struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	SaleRecordID  uint       `gorm:"not null;index" json:"sale_record_id"`
	InstallmentNo int        `gorm:"column:installment_no;not null" json:"installment_no"`
	Amount        float64    `gorm:"type:decimal(15,2);not null" json:"amount"`
	DueDate       time.Time  `gorm:"type:date;not null;index" json:"due_date"`
	PaidDate      *time.Time `gorm:"type:date" json:"paid_date"`
	PaidAmount    *float64   `gorm:"type:decimal(15,2)" json:"paid_amount"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	// Associations
	SaleRecord SaleRecord `gorm:"foreignKey:SaleRecordID" json:"sale_record,omitempty"`
}

// TableName specifies the table name for EMIInstallment
func (EMIInstallment) TableName() string {
	return "emi_installments"
}

// IsPaid returns true if the installment has been settled
func (e *EMIInstallment) IsPaid() bool {
	return e.PaidDate != nil && e.PaidAmount != nil
}

// IsOverdue returns true if the installment is unpaid past its due date
func (e *EMIInstallment) IsOverdue() bool {
	return !e.IsPaid() && time.Now().After(e.DueDate)
}

// OverdueDays returns the number of days overdue
func (e *EMIInstallment) OverdueDays() int {
	if !e.IsOverdue() {
		return 0
	}
	return int(time.Since(e.DueDate).Hours() / 24)
}

// MarkPaid records a settlement against the installment
func (e *EMIInstallment) MarkPaid(amount float64, date time.Time) {
	e.PaidAmount = &amount
	e.PaidDate = &date
}

// EMIInstallmentResponse is the JSON response format for installments
type EMIInstallmentResponse struct {
	ID            uint       `json:"id"`
	SaleRecordID  uint       `json:"sale_record_id"`
	InstallmentNo int        `json:"installment_no"`
	Amount        float64    `json:"amount"`
	DueDate       time.Time  `json:"due_date"`
	PaidDate      *time.Time `json:"paid_date"`
	PaidAmount    *float64   `json:"paid_amount"`
	Paid          bool       `json:"paid"`
	OverdueDays   int        `json:"overdue_days"`
}

// ToResponse converts EMIInstallment to EMIInstallmentResponse
func (e *EMIInstallment) ToResponse() EMIInstallmentResponse {
	return EMIInstallmentResponse{
		ID:            e.ID,
		SaleRecordID:  e.SaleRecordID,
		InstallmentNo: e.InstallmentNo,
		Amount:        e.Amount,
		DueDate:       e.DueDate,
		PaidDate:      e.PaidDate,
		PaidAmount:    e.PaidAmount,
		Paid:          e.IsPaid(),
		OverdueDays:   e.OverdueDays(),
	}
}
