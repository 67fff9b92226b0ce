package models

import (
	"time"
)

// SaleRecord is a customer's purchase with its EMI terms. One customer may
// hold several records over time but at most one active one.
type SaleRecord struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	CustomerID       uint       `gorm:"not null;index" json:"customer_id"`
	RecordType       string     `gorm:"default:general;not null;index" json:"record_type"`
	Status           string     `gorm:"default:enquired;not null;index" json:"status"`
	TotalAmount      *float64   `gorm:"type:decimal(15,2)" json:"total_amount"`
	EMIAmount        float64    `gorm:"type:decimal(15,2);default:0" json:"emi_amount"`
	NoOfInstallments int        `gorm:"default:0" json:"no_of_installments"`
	EMIStartDate     *time.Time `gorm:"type:date" json:"emi_start_date"`
	Remarks          *string    `gorm:"type:text" json:"remarks"`
	CreatedAt        time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`

	// Associations
	Customer     Customer             `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Installments []EMIInstallment     `gorm:"foreignKey:SaleRecordID" json:"installments,omitempty"`
	Transactions []BillingTransaction `gorm:"foreignKey:SaleRecordID" json:"transactions,omitempty"`
}

// TableName specifies the table name for SaleRecord
func (SaleRecord) TableName() string {
	return "sale_records"
}

// Record type constants
const (
	RecordTypeGeneral = "general"
	RecordTypeLFC     = "lfc"
	RecordTypeNVT     = "nvt"
)

// Sale status constants
const (
	SaleStatusEnquired  = "enquired"
	SaleStatusBlocked   = "blocked"
	SaleStatusVacant    = "vacant"
	SaleStatusCompleted = "completed"
)

// ContractedAmount returns the contract value. Records created before total
// amounts were captured derive it from the EMI terms instead.
func (s *SaleRecord) ContractedAmount() float64 {
	if s.TotalAmount != nil && *s.TotalAmount > 0 {
		return *s.TotalAmount
	}
	return s.EMIAmount * float64(s.NoOfInstallments)
}

// TotalPaid sums the settled installments on this record
func (s *SaleRecord) TotalPaid() float64 {
	var total float64
	for i := range s.Installments {
		if s.Installments[i].IsPaid() {
			total += *s.Installments[i].PaidAmount
		}
	}
	return total
}

// IsActive returns true if the record still accepts payments
func (s *SaleRecord) IsActive() bool {
	return s.Status != SaleStatusBlocked && s.Status != SaleStatusCompleted
}

// MayBlock returns true if the record can be blocked
func (s *SaleRecord) MayBlock() bool {
	return s.Status == SaleStatusEnquired || s.Status == SaleStatusVacant
}

// MayComplete returns true if the record can move to completed
func (s *SaleRecord) MayComplete() bool {
	return s.Status == SaleStatusEnquired
}

// SaleRecordResponse is the JSON response format for sale records
type SaleRecordResponse struct {
	ID               uint       `json:"id"`
	CustomerID       uint       `json:"customer_id"`
	CustomerName     string     `json:"customer_name,omitempty"`
	ProjectName      string     `json:"project_name,omitempty"`
	RecordType       string     `json:"record_type"`
	Status           string     `json:"status"`
	TotalAmount      float64    `json:"total_amount"`
	EMIAmount        float64    `json:"emi_amount"`
	NoOfInstallments int        `json:"no_of_installments"`
	EMIStartDate     *time.Time `json:"emi_start_date"`
	TotalPaid        float64    `json:"total_paid"`
	Remarks          *string    `json:"remarks"`
	CreatedAt        time.Time  `json:"created_at"`
}

// ToResponse converts SaleRecord to SaleRecordResponse
func (s *SaleRecord) ToResponse() SaleRecordResponse {
	resp := SaleRecordResponse{
		ID:               s.ID,
		CustomerID:       s.CustomerID,
		RecordType:       s.RecordType,
		Status:           s.Status,
		TotalAmount:      s.ContractedAmount(),
		EMIAmount:        s.EMIAmount,
		NoOfInstallments: s.NoOfInstallments,
		EMIStartDate:     s.EMIStartDate,
		TotalPaid:        s.TotalPaid(),
		Remarks:          s.Remarks,
		CreatedAt:        s.CreatedAt,
	}
	if s.Customer.ID != 0 {
		resp.CustomerName = s.Customer.Name
		if s.Customer.Project != nil {
			resp.ProjectName = s.Customer.Project.Name
		}
	}
	return resp
}
