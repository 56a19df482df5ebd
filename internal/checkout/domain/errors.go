package domain

import "errors"

var (
	// ErrEmptyCart is returned when paying or holding a bill with no line items.
	ErrEmptyCart = errors.New("checkout: cart is empty")
	// ErrInvalidState signals a lifecycle transition the current state does not permit.
	// Callers should treat it as a programming error, not a business condition.
	ErrInvalidState = errors.New("checkout: invalid state transition")
	// ErrInsufficientTender is returned when cash tendered is below the due amount.
	ErrInsufficientTender = errors.New("checkout: insufficient tender")

	ErrProductNotFound    = errors.New("checkout: product not found")
	ErrInvalidProduct     = errors.New("checkout: invalid product")
	ErrDiscountOutOfRange = errors.New("checkout: discount percent must be between 0 and 100")
	ErrInvalidTender      = errors.New("checkout: invalid tender amount")
	ErrInvalidMethod      = errors.New("checkout: unknown payment method")
	ErrHoldNotFound       = errors.New("checkout: held bill not found")
)
