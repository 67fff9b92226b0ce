package models

import (
	"strings"
	"time"
)

// Customer is a buyer enrolled against a project. Customers are never hard
// deleted; DiscardedAt marks them removed while keeping billing history intact.
type Customer struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"not null;index" json:"name"`
	Phone       string     `gorm:"not null" json:"phone"`
	Email       *string    `json:"email"`
	Identity    string     `gorm:"uniqueIndex:customers_identity_key;not null" json:"identity"`
	Address     *string    `gorm:"type:text" json:"address"`
	UnitNo      *string    `json:"unit_no"`
	ProjectID   *uint      `gorm:"index" json:"project_id"`
	MarketerID  *uint      `gorm:"index" json:"marketer_id"`
	DirectorID  *uint      `gorm:"index" json:"director_id"`
	DiscardedAt *time.Time `gorm:"index" json:"-"`
	CreatedAt   time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Associations
	Project  *Project     `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Marketer *Marketer    `gorm:"foreignKey:MarketerID" json:"marketer,omitempty"`
	Director *Director    `gorm:"foreignKey:DirectorID" json:"director,omitempty"`
	Sales    []SaleRecord `gorm:"foreignKey:CustomerID" json:"sales,omitempty"`
}

// TableName specifies the table name for Customer
func (Customer) TableName() string {
	return "customers"
}

// IsDiscarded returns true if the customer has been soft deleted
func (c *Customer) IsDiscarded() bool {
	return c.DiscardedAt != nil
}

// maskIdentity hides all but the last four characters of an identity document
func maskIdentity(identity string) string {
	if len(identity) <= 4 {
		return identity
	}
	return strings.Repeat("*", len(identity)-4) + identity[len(identity)-4:]
}

// CustomerResponse is the JSON response format for customers
type CustomerResponse struct {
	ID             uint      `json:"id"`
	Name           string    `json:"name"`
	Phone          string    `json:"phone"`
	Email          *string   `json:"email"`
	MaskedIdentity string    `json:"identity"`
	Address        *string   `json:"address"`
	UnitNo         *string   `json:"unit_no"`
	ProjectID      *uint     `json:"project_id"`
	ProjectName    string    `json:"project_name,omitempty"`
	MarketerName   string    `json:"marketer_name,omitempty"`
	DirectorName   string    `json:"director_name,omitempty"`
	Discarded      bool      `json:"discarded"`
	CreatedAt      time.Time `json:"created_at"`
}

// ToResponse converts Customer to CustomerResponse
func (c *Customer) ToResponse() CustomerResponse {
	resp := CustomerResponse{
		ID:             c.ID,
		Name:           c.Name,
		Phone:          c.Phone,
		Email:          c.Email,
		MaskedIdentity: maskIdentity(c.Identity),
		Address:        c.Address,
		UnitNo:         c.UnitNo,
		ProjectID:      c.ProjectID,
		Discarded:      c.IsDiscarded(),
		CreatedAt:      c.CreatedAt,
	}
	if c.Project != nil {
		resp.ProjectName = c.Project.Name
	}
	if c.Marketer != nil {
		resp.MarketerName = c.Marketer.Name
	}
	if c.Director != nil {
		resp.DirectorName = c.Director.Name
	}
	return resp
}
