package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// WalkInCustomer is the customer name recorded when a cash or card sale names nobody
const WalkInCustomer = "Walk-in Customer"

// PaymentMethod how a sale was settled
type PaymentMethod string

const (
	PaymentCash       PaymentMethod = "cash"
	PaymentCard       PaymentMethod = "card"
	PaymentReceivable PaymentMethod = "receivable" // store credit, settled later through a Receivable
)

// Valid reports whether m is one of the supported payment methods
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentReceivable:
		return true
	}
	return false
}

// CartLine is a product snapshot with the quantity and unit price agreed at the till
type CartLine struct {
	Product  Product         `json:"product"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"` // may differ from Product.Price, never below Product.MinimumPrice once finalized
}

// LineTotal price * quantity
func (l CartLine) LineTotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// LineCost snapshot cost * quantity
func (l CartLine) LineCost() decimal.Decimal {
	return l.Product.Cost.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Sale is an immutable committed transaction
type Sale struct {
	ID            string          `json:"id"`
	CustomerName  string          `json:"customer_name"`
	Items         []CartLine      `json:"items"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Tax           decimal.Decimal `json:"tax"`
	Total         decimal.Decimal `json:"total"`
	Date          time.Time       `json:"date"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
}

// Clone returns a copy that shares no slices with s
func (s Sale) Clone() Sale {
	items := make([]CartLine, len(s.Items))
	copy(items, s.Items)
	s.Items = items
	return s
}

// Quantity total units across all lines
func (s Sale) Quantity() int {
	n := 0
	for _, item := range s.Items {
		n += item.Quantity
	}
	return n
}
