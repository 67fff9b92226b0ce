package models

import (
	"time"
)

// BillingTransaction is a payment received from a customer. Transactions
// enter as enquired and are approved or blocked by an admin; only approved
// amounts count toward the customer's paid-to-date figure.
type BillingTransaction struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	CustomerID       uint       `gorm:"not null;index" json:"customer_id"`
	SaleRecordID     *uint      `gorm:"index" json:"sale_record_id"`
	InstallmentNo    *int       `json:"installment_no"`
	AmountPaid       float64    `gorm:"type:decimal(15,2);not null" json:"amount_paid"`
	PaymentDate      time.Time  `gorm:"type:date;not null;index" json:"payment_date"`
	Mode             string     `gorm:"default:cash;not null" json:"mode"`
	Reference        *string    `json:"reference"`
	CardNumber       *string    `json:"-"`
	CardHolder       *string    `json:"card_holder"`
	Status           string     `gorm:"default:enquired;not null;index" json:"status"`
	BlockReason      *string    `gorm:"type:text" json:"block_reason"`
	ReceiptNo        *string    `gorm:"index" json:"receipt_no"`
	ReceiptPath      *string    `json:"-"`
	Remarks          *string    `gorm:"type:text" json:"remarks"`
	ApprovedAt       *time.Time `gorm:"index" json:"approved_at"`
	ApprovedByUserID *uint      `gorm:"index" json:"approved_by_user_id"`
	CreatedAt        time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`

	// Associations
	Customer       Customer    `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	SaleRecord     *SaleRecord `gorm:"foreignKey:SaleRecordID" json:"sale_record,omitempty"`
	ApprovedByUser User        `gorm:"foreignKey:ApprovedByUserID" json:"approved_by_user,omitempty"`
}

// TableName specifies the table name for BillingTransaction
func (BillingTransaction) TableName() string {
	return "billing_transactions"
}

// Billing status constants
const (
	BillingStatusEnquired = "enquired"
	BillingStatusApproved = "approved"
	BillingStatusBlocked  = "blocked"
)

// Payment mode constants
const (
	PaymentModeCash   = "cash"
	PaymentModeCard   = "card"
	PaymentModeOnline = "online"
)

// ValidPaymentMode reports whether mode is one of the accepted payment modes
func ValidPaymentMode(mode string) bool {
	return mode == PaymentModeCash || mode == PaymentModeCard || mode == PaymentModeOnline
}

// RequiresReference reports whether the mode needs an external reference
// number (card and online settlements do, cash does not).
func RequiresReference(mode string) bool {
	return mode == PaymentModeCard || mode == PaymentModeOnline
}

// HasCardDetails reports whether the card number and holder name are both
// present. Card-mode payments must carry both.
func (b *BillingTransaction) HasCardDetails() bool {
	return b.CardNumber != nil && *b.CardNumber != "" &&
		b.CardHolder != nil && *b.CardHolder != ""
}

// MayApprove returns true if the transaction can be approved
func (b *BillingTransaction) MayApprove() bool {
	return b.Status == BillingStatusEnquired
}

// MayBlock returns true if the transaction can be blocked
func (b *BillingTransaction) MayBlock() bool {
	return b.Status == BillingStatusEnquired
}

// IsApproved returns true if the transaction has been approved
func (b *BillingTransaction) IsApproved() bool {
	return b.Status == BillingStatusApproved
}

// HasReceipt returns true if a receipt file is attached
func (b *BillingTransaction) HasReceipt() bool {
	return b.ReceiptPath != nil && *b.ReceiptPath != ""
}

// BillingTransactionResponse is the JSON response format for transactions
type BillingTransactionResponse struct {
	ID            uint       `json:"id"`
	CustomerID    uint       `json:"customer_id"`
	CustomerName  string     `json:"customer_name,omitempty"`
	ProjectName   string     `json:"project_name,omitempty"`
	SaleRecordID  *uint      `json:"sale_record_id"`
	InstallmentNo *int       `json:"installment_no"`
	AmountPaid    float64    `json:"amount_paid"`
	PaymentDate   time.Time  `json:"payment_date"`
	Mode          string     `json:"mode"`
	Reference     *string    `json:"reference"`
	CardHolder    *string    `json:"card_holder,omitempty"`
	MaskedCard    string     `json:"masked_card,omitempty"`
	Status        string     `json:"status"`
	BlockReason   *string    `json:"block_reason,omitempty"`
	ReceiptNo     *string    `json:"receipt_no"`
	HasReceipt    bool       `json:"has_receipt"`
	Remarks       *string    `json:"remarks"`
	ApprovedAt    *time.Time `json:"approved_at"`
	Approver      string     `json:"approver,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// ToResponse converts BillingTransaction to BillingTransactionResponse
func (b *BillingTransaction) ToResponse() BillingTransactionResponse {
	resp := BillingTransactionResponse{
		ID:            b.ID,
		CustomerID:    b.CustomerID,
		SaleRecordID:  b.SaleRecordID,
		InstallmentNo: b.InstallmentNo,
		AmountPaid:    b.AmountPaid,
		PaymentDate:   b.PaymentDate,
		Mode:          b.Mode,
		Reference:     b.Reference,
		Status:        b.Status,
		BlockReason:   b.BlockReason,
		ReceiptNo:     b.ReceiptNo,
		HasReceipt:    b.HasReceipt(),
		Remarks:       b.Remarks,
		ApprovedAt:    b.ApprovedAt,
		CreatedAt:     b.CreatedAt,
	}
	if b.Customer.ID != 0 {
		resp.CustomerName = b.Customer.Name
		if b.Customer.Project != nil {
			resp.ProjectName = b.Customer.Project.Name
		}
	}
	if b.ApprovedByUser.ID != 0 {
		resp.Approver = b.ApprovedByUser.FullName
	}
	if b.CardNumber != nil {
		resp.CardHolder = b.CardHolder
		resp.MaskedCard = maskIdentity(*b.CardNumber)
	}
	return resp
}
