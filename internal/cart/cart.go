// Package cart holds the transient checkout cart of one till.
// It enforces the cashier-side rules before anything reaches the store.
package cart

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/talkincode/toughpos/internal/domain"
	"go.uber.org/zap"
)

// Catalog the product lookups a cart needs
type Catalog interface {
	Product(id string) (domain.Product, bool)
}

// Ledger commits a checkout
type Ledger interface {
	AddSale(lines []domain.CartLine, total decimal.Decimal, method domain.PaymentMethod, customerName string) (domain.Sale, error)
	AddReceivable(customerName string, totalAmount decimal.Decimal, dueDate time.Time) (domain.Receivable, error)
}

// PriceNotice reports a line price that was raised to the product's minimum
type PriceNotice struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Requested   decimal.Decimal `json:"requested"`
	Minimum     decimal.Decimal `json:"minimum"`
}

func (n PriceNotice) String() string {
	return fmt.Sprintf("price of %q reset to the minimum allowed %s", n.ProductName, n.Minimum.StringFixed(2))
}

// Cart is not safe for concurrent use; each till owns one.
type Cart struct {
	catalog Catalog
	lines   []domain.CartLine
}

func New(catalog Catalog) *Cart {
	return &Cart{catalog: catalog}
}

func (c *Cart) lineIndex(productID string) int {
	for i := range c.lines {
		if c.lines[i].Product.ID == productID {
			return i
		}
	}
	return -1
}

func (c *Cart) product(id string) (domain.Product, error) {
	p, ok := c.catalog.Product(id)
	if !ok {
		return domain.Product{}, errors.Wrapf(domain.ErrNotFound, "product %s", id)
	}
	return p, nil
}

// Add puts one unit of the product in the cart, or one more unit when it
// is already there. The cart never holds more than the current stock.
func (c *Cart) Add(productID string) (domain.CartLine, error) {
	p, err := c.product(productID)
	if err != nil {
		return domain.CartLine{}, err
	}
	if p.Stock <= 0 {
		return domain.CartLine{}, errors.Wrapf(domain.ErrOutOfStock, "%s", p.Name)
	}
	if i := c.lineIndex(productID); i >= 0 {
		if c.lines[i].Quantity+1 > p.Stock {
			return domain.CartLine{}, errors.Wrapf(domain.ErrInsufficientStock, "%s: %d left", p.Name, p.Stock)
		}
		c.lines[i].Quantity++
		c.lines[i].Product = p
		return c.lines[i], nil
	}
	l := domain.CartLine{Product: p, Quantity: 1, Price: p.Price}
	c.lines = append(c.lines, l)
	return l, nil
}

// SetQuantity changes a line's quantity. Zero or less removes the line;
// more than the current stock is rejected and the cart is left unchanged.
func (c *Cart) SetQuantity(productID string, qty int) error {
	i := c.lineIndex(productID)
	if i < 0 {
		return errors.Wrapf(domain.ErrNotFound, "cart line %s", productID)
	}
	if qty <= 0 {
		c.removeAt(i)
		return nil
	}
	p, err := c.product(productID)
	if err != nil {
		return err
	}
	if qty > p.Stock {
		return errors.Wrapf(domain.ErrInsufficientStock, "%s: requested %d, %d left", p.Name, qty, p.Stock)
	}
	c.lines[i].Quantity = qty
	c.lines[i].Product = p
	return nil
}

// SetPrice stores a price as typed. The minimum is enforced by FinalizePrice.
func (c *Cart) SetPrice(productID string, price decimal.Decimal) error {
	i := c.lineIndex(productID)
	if i < 0 {
		return errors.Wrapf(domain.ErrNotFound, "cart line %s", productID)
	}
	if price.IsNegative() {
		return domain.ErrNegativeAmount
	}
	c.lines[i].Price = price
	return nil
}

// FinalizePrice resets a line priced below the product minimum to that
// minimum and returns a notice describing the change, or nil.
func (c *Cart) FinalizePrice(productID string) (*PriceNotice, error) {
	i := c.lineIndex(productID)
	if i < 0 {
		return nil, errors.Wrapf(domain.ErrNotFound, "cart line %s", productID)
	}
	return c.finalizeAt(i), nil
}

func (c *Cart) finalizeAt(i int) *PriceNotice {
	l := &c.lines[i]
	if !l.Price.LessThan(l.Product.MinimumPrice) {
		return nil
	}
	n := &PriceNotice{
		ProductID:   l.Product.ID,
		ProductName: l.Product.Name,
		Requested:   l.Price,
		Minimum:     l.Product.MinimumPrice,
	}
	l.Price = l.Product.MinimumPrice
	return n
}

// Remove drops a line; unknown ids are ignored
func (c *Cart) Remove(productID string) {
	if i := c.lineIndex(productID); i >= 0 {
		c.removeAt(i)
	}
}

func (c *Cart) removeAt(i int) {
	c.lines = append(c.lines[:i:i], c.lines[i+1:]...)
}

func (c *Cart) Clear() {
	c.lines = nil
}

// Lines returns a copy of the cart lines in the order they were added
func (c *Cart) Lines() []domain.CartLine {
	return append([]domain.CartLine{}, c.lines...)
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Subtotal sum of price * quantity. There is no tax, so it is also the total.
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.LineTotal())
	}
	return total
}

// CheckoutRequest how the customer pays
type CheckoutRequest struct {
	Method       domain.PaymentMethod
	CustomerName string
	DueDate      time.Time // store credit only
}

// Receipt the result of a successful checkout
type Receipt struct {
	Sale       domain.Sale        `json:"sale"`
	Receivable *domain.Receivable `json:"receivable,omitempty"`
	Notices    []PriceNotice      `json:"notices,omitempty"`
}

// Checkout finalizes every price, commits the sale and, for store credit,
// opens the matching receivable. The cart is cleared only on success.
func (c *Cart) Checkout(ledger Ledger, req CheckoutRequest) (Receipt, error) {
	if c.IsEmpty() {
		return Receipt{}, domain.ErrEmptyCart
	}
	if !req.Method.Valid() {
		return Receipt{}, errors.Wrapf(domain.ErrInvalidPaymentMethod, "%q", req.Method)
	}
	name := strings.TrimSpace(req.CustomerName)
	if req.Method == domain.PaymentReceivable {
		if name == "" {
			return Receipt{}, errors.Wrap(domain.ErrFieldRequired, "customer_name")
		}
		if req.DueDate.IsZero() {
			return Receipt{}, domain.ErrDueDateRequired
		}
	}

	// the catalog may have changed since the lines were added
	for i := range c.lines {
		p, err := c.product(c.lines[i].Product.ID)
		if err != nil {
			return Receipt{}, err
		}
		c.lines[i].Product = p
	}

	var receipt Receipt
	for i := range c.lines {
		if n := c.finalizeAt(i); n != nil {
			receipt.Notices = append(receipt.Notices, *n)
		}
	}
	total := c.Subtotal()
	if req.Method == domain.PaymentReceivable && !total.IsPositive() {
		return receipt, domain.ErrInvalidAmount
	}

	sale, err := ledger.AddSale(c.Lines(), total, req.Method, name)
	if err != nil {
		return receipt, err
	}
	receipt.Sale = sale

	if req.Method == domain.PaymentReceivable {
		r, err := ledger.AddReceivable(name, sale.Total, req.DueDate)
		if err != nil {
			// inputs were checked above, so this only happens on a store bug
			zap.L().Error("sale committed without its receivable", zap.String("sale_id", sale.ID), zap.Error(err))
			c.Clear()
			return receipt, errors.Wrapf(err, "sale %s", sale.ID)
		}
		receipt.Receivable = &r
	}
	c.Clear()
	return receipt, nil
}
