package domain

import "errors"

// Recoverable domain failures. Callers branch on these with errors.Is;
// none of them should ever abort the process.
var (
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrInvalidQuantity    = errors.New("quantity must be positive")
	ErrEmptyCart          = errors.New("cannot place an order with an empty cart")
	ErrDiscountOutOfRange = errors.New("discount rate must be between 0 and 1")
	ErrNegativeCredit     = errors.New("credit cannot be negative")
	ErrNotFound           = errors.New("not found")
	ErrInvalidTransition  = errors.New("invalid order status transition")
)
