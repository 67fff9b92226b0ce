package services

import "errors"

// Common service errors
var (
	ErrNotFound         = errors.New("record not found")
	ErrInvalidPassword  = errors.New("invalid password")
	ErrUnauthorized     = errors.New("not authorized")
	ErrInvalidState     = errors.New("invalid state transition")
	ErrDuplicate        = errors.New("duplicate record")
	ErrInvalidReference = errors.New("payment reference required for this mode")
	ErrCardDetails      = errors.New("card number and holder name required for card payments")
	ErrSaleInactive     = errors.New("sale record is not active")
	ErrTokenExpired     = errors.New("token expired or revoked")
)
