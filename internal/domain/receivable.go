package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceivableStatus payment state of a customer debt
type ReceivableStatus string

const (
	ReceivableUnpaid        ReceivableStatus = "Unpaid"
	ReceivablePartiallyPaid ReceivableStatus = "Partially Paid"
	ReceivablePaid          ReceivableStatus = "Paid"
)

// ReceivableStatusOf derives the status from the paid and total amounts.
// It is the only place a status is decided.
func ReceivableStatusOf(paid, total decimal.Decimal) ReceivableStatus {
	switch {
	case paid.GreaterThanOrEqual(total):
		return ReceivablePaid
	case paid.IsPositive():
		return ReceivablePartiallyPaid
	default:
		return ReceivableUnpaid
	}
}

// Receivable money owed by a customer after a store-credit sale
type Receivable struct {
	ID           string           `json:"id"`
	CustomerName string           `json:"customer_name"`
	TotalAmount  decimal.Decimal  `json:"total_amount"`
	AmountPaid   decimal.Decimal  `json:"amount_paid"`
	IssueDate    time.Time        `json:"issue_date"`
	DueDate      time.Time        `json:"due_date"`
	Status       ReceivableStatus `json:"status"`
}

// Balance amount still owed
func (r Receivable) Balance() decimal.Decimal {
	return r.TotalAmount.Sub(r.AmountPaid)
}

// IsOverdue due date passed and not fully paid; never persisted
func (r Receivable) IsOverdue(now time.Time) bool {
	return r.DueDate.Before(now) && r.Status != ReceivablePaid
}

// Normalize recomputes the status from the amounts
func (r Receivable) Normalize() Receivable {
	r.Status = ReceivableStatusOf(r.AmountPaid, r.TotalAmount)
	return r
}

// ApplyPayment returns r with amount added to the paid total.
// amount must be positive and no larger than the balance.
func (r Receivable) ApplyPayment(amount decimal.Decimal) (Receivable, error) {
	if !amount.IsPositive() {
		return r, ErrInvalidAmount
	}
	if amount.GreaterThan(r.Balance()) {
		return r, ErrPaymentExceedsBalance
	}
	r.AmountPaid = r.AmountPaid.Add(amount)
	return r.Normalize(), nil
}
