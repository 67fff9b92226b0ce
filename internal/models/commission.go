package models

import (
	"time"
)

// Marketer is a sales agent attributed to customers for commission
type Marketer struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"not null" json:"name"`
	Phone         string    `gorm:"not null" json:"phone"`
	Email         *string   `json:"email"`
	CommissionPct float64   `gorm:"type:decimal(5,2);default:0" json:"commission_pct"`
	DirectorID    *uint     `gorm:"index" json:"director_id"`
	Active        bool      `gorm:"default:true;index" json:"active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Associations
	Director *Director `gorm:"foreignKey:DirectorID" json:"director,omitempty"`
}

// TableName specifies the table name for Marketer
func (Marketer) TableName() string {
	return "marketers"
}

// Director is a commission-hierarchy entity above marketers (DD/CED)
type Director struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"not null" json:"name"`
	Designation   string    `gorm:"default:dd;not null" json:"designation"`
	Phone         string    `gorm:"not null" json:"phone"`
	Email         *string   `json:"email"`
	CommissionPct float64   `gorm:"type:decimal(5,2);default:0" json:"commission_pct"`
	Active        bool      `gorm:"default:true;index" json:"active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName specifies the table name for Director
func (Director) TableName() string {
	return "directors"
}

// Director designation constants
const (
	DesignationDD  = "dd"
	DesignationCED = "ced"
)

// Commission computes the flat percentage cut of an approved billing total
func Commission(total, pct float64) float64 {
	return total * pct / 100
}

// CommissionStatement is the derived commission summary for one earner
type CommissionStatement struct {
	EarnerID      uint    `json:"earner_id"`
	EarnerName    string  `json:"earner_name"`
	Role          string  `json:"role"` // marketer, dd, ced
	CommissionPct float64 `json:"commission_pct"`
	BaseAmount    float64 `json:"base_amount"`
	Commission    float64 `json:"commission"`
	CustomerCount int     `json:"customer_count"`
}
