package domain

import "errors"

var (
	ErrNotFound = errors.New("record not found")

	ErrFieldRequired     = errors.New("field is required")
	ErrNegativeAmount    = errors.New("amount must not be negative")
	ErrNegativeStock     = errors.New("stock values must not be negative")
	ErrDuplicateBarcode  = errors.New("barcode already exists")
	ErrPriceBelowMinimum = errors.New("sale price is below the minimum price")

	ErrEmptyCart            = errors.New("cart is empty")
	ErrInvalidQuantity      = errors.New("quantity must be positive")
	ErrOutOfStock           = errors.New("product is out of stock")
	ErrInsufficientStock    = errors.New("insufficient stock")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")

	ErrInvalidAmount         = errors.New("amount must be positive")
	ErrPaymentExceedsBalance = errors.New("payment exceeds remaining balance")
	ErrDueDateRequired       = errors.New("due date is required")

	ErrInvalidJobStatus = errors.New("invalid maintenance job status")
)

// IsValidation reports whether err is a caller-side validation failure,
// as opposed to a missing record or an internal error.
func IsValidation(err error) bool {
	for _, target := range []error{
		ErrFieldRequired, ErrNegativeAmount, ErrNegativeStock, ErrDuplicateBarcode, ErrPriceBelowMinimum,
		ErrEmptyCart, ErrInvalidQuantity, ErrOutOfStock, ErrInsufficientStock, ErrInvalidPaymentMethod,
		ErrInvalidAmount, ErrPaymentExceedsBalance, ErrDueDateRequired, ErrInvalidJobStatus,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
