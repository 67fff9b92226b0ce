package models

import (
	"time"
)

// Project is a site or venture that customers and sales attach to
type Project struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null;uniqueIndex" json:"name"`
	Location    string    `gorm:"not null" json:"location"`
	Description *string   `gorm:"type:text" json:"description"`
	TotalUnits  int       `gorm:"default:0" json:"total_units"`
	Active      bool      `gorm:"default:true;index" json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Associations
	Customers []Customer `gorm:"foreignKey:ProjectID" json:"customers,omitempty"`
}

// TableName specifies the table name for Project
func (Project) TableName() string {
	return "projects"
}

// ProjectResponse is the JSON response format for projects
type ProjectResponse struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Location    string  `json:"location"`
	Description *string `json:"description"`
	TotalUnits  int     `json:"total_units"`
	Active      bool    `json:"active"`
}

// ToResponse converts Project to ProjectResponse
func (p *Project) ToResponse() ProjectResponse {
	return ProjectResponse{
		ID:          p.ID,
		Name:        p.Name,
		Location:    p.Location,
		Description: p.Description,
		TotalUnits:  p.TotalUnits,
		Active:      p.Active,
	}
}
