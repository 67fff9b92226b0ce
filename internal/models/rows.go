package models

import "strconv"

// RowID implementations let the response DTOs feed the datatable engine,
// which addresses rows by a stable string identifier.

func rowID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func (c CustomerResponse) RowID() string           { return rowID(c.ID) }
func (s SaleRecordResponse) RowID() string         { return rowID(s.ID) }
func (e EMIInstallmentResponse) RowID() string     { return rowID(e.ID) }
func (b BillingTransactionResponse) RowID() string { return rowID(b.ID) }
func (m MODRecordResponse) RowID() string          { return rowID(m.ID) }
func (e EditRequestResponse) RowID() string        { return rowID(e.ID) }
func (u UserResponse) RowID() string               { return rowID(u.ID) }
func (p ProjectResponse) RowID() string            { return rowID(p.ID) }
func (n NotificationResponse) RowID() string       { return rowID(n.ID) }
