package models

import (
	"time"
)

// MODRecord is a side payment/registration record tracked independently of
// the EMI schedule. It follows the same list/view/edit pattern as sales.
type MODRecord struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	CustomerID       uint       `gorm:"not null;index" json:"customer_id"`
	RegistrationNo   *string    `gorm:"index" json:"registration_no"`
	Amount           float64    `gorm:"type:decimal(15,2);not null" json:"amount"`
	RegistrationDate *time.Time `gorm:"type:date" json:"registration_date"`
	Status           string     `gorm:"default:enquired;not null;index" json:"status"`
	Remarks          *string    `gorm:"type:text" json:"remarks"`
	CreatedAt        time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`

	// Associations
	Customer Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
}

// TableName specifies the table name for MODRecord
func (MODRecord) TableName() string {
	return "mod_records"
}

// MODRecordResponse is the JSON response format for MOD records
type MODRecordResponse struct {
	ID               uint       `json:"id"`
	CustomerID       uint       `json:"customer_id"`
	CustomerName     string     `json:"customer_name,omitempty"`
	RegistrationNo   *string    `json:"registration_no"`
	Amount           float64    `json:"amount"`
	RegistrationDate *time.Time `json:"registration_date"`
	Status           string     `json:"status"`
	Remarks          *string    `json:"remarks"`
	CreatedAt        time.Time  `json:"created_at"`
}

// ToResponse converts MODRecord to MODRecordResponse
func (m *MODRecord) ToResponse() MODRecordResponse {
	resp := MODRecordResponse{
		ID:               m.ID,
		CustomerID:       m.CustomerID,
		RegistrationNo:   m.RegistrationNo,
		Amount:           m.Amount,
		RegistrationDate: m.RegistrationDate,
		Status:           m.Status,
		Remarks:          m.Remarks,
		CreatedAt:        m.CreatedAt,
	}
	if m.Customer.ID != 0 {
		resp.CustomerName = m.Customer.Name
	}
	return resp
}
