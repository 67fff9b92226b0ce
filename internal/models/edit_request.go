package models

import (
	"time"
)

// EditRequest is a pending change to an existing record. Staff cannot edit
// approved data directly; they raise a request carrying the proposed field
// values as JSON, and an admin approves or rejects it.
type EditRequest struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	ReferenceID     string     `gorm:"uniqueIndex;not null" json:"reference_id"`
	Entity          string     `gorm:"size:50;not null;index" json:"entity"` // customer, sale_record, mod_record
	EntityID        uint       `gorm:"not null;index" json:"entity_id"`
	RequestedByID   uint       `gorm:"not null;index" json:"requested_by_id"`
	Changes         string     `gorm:"type:text;not null" json:"changes"` // JSON of proposed field values
	Reason          *string    `gorm:"type:text" json:"reason"`
	Status          string     `gorm:"default:pending;not null;index" json:"status"`
	DecidedByUserID *uint      `gorm:"index" json:"decided_by_user_id"`
	DecidedAt       *time.Time `json:"decided_at"`
	RejectionReason *string    `gorm:"type:text" json:"rejection_reason"`
	CreatedAt       time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	// Associations
	RequestedBy   User  `gorm:"foreignKey:RequestedByID" json:"requested_by,omitempty"`
	DecidedByUser *User `gorm:"foreignKey:DecidedByUserID" json:"decided_by_user,omitempty"`
}

// TableName specifies the table name for EditRequest
func (EditRequest) TableName() string {
	return "edit_requests"
}

// Edit request status constants
const (
	EditRequestStatusPending  = "pending"
	EditRequestStatusApproved = "approved"
	EditRequestStatusRejected = "rejected"
)

// MayDecide returns true while the request is still open
func (e *EditRequest) MayDecide() bool {
	return e.Status == EditRequestStatusPending
}

// EditRequestResponse is the JSON response format for edit requests
type EditRequestResponse struct {
	ID              uint       `json:"id"`
	ReferenceID     string     `json:"reference_id"`
	Entity          string     `json:"entity"`
	EntityID        uint       `json:"entity_id"`
	RequestedBy     string     `json:"requested_by"`
	Changes         string     `json:"changes"`
	Reason          *string    `json:"reason"`
	Status          string     `json:"status"`
	DecidedBy       string     `json:"decided_by,omitempty"`
	DecidedAt       *time.Time `json:"decided_at"`
	RejectionReason *string    `json:"rejection_reason"`
	CreatedAt       time.Time  `json:"created_at"`
}

// ToResponse converts EditRequest to EditRequestResponse
func (e *EditRequest) ToResponse() EditRequestResponse {
	resp := EditRequestResponse{
		ID:              e.ID,
		ReferenceID:     e.ReferenceID,
		Entity:          e.Entity,
		EntityID:        e.EntityID,
		Changes:         e.Changes,
		Reason:          e.Reason,
		Status:          e.Status,
		DecidedAt:       e.DecidedAt,
		RejectionReason: e.RejectionReason,
		CreatedAt:       e.CreatedAt,
	}
	if e.RequestedBy.ID != 0 {
		resp.RequestedBy = e.RequestedBy.FullName
	}
	if e.DecidedByUser != nil && e.DecidedByUser.ID != 0 {
		resp.DecidedBy = e.DecidedByUser.FullName
	}
	return resp
}
