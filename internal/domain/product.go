package domain

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// PlaceholderImage is used when a product is saved without an image reference
const PlaceholderImage = "https://placehold.co/300x300.png"

// Product represents a catalog item
type Product struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Barcode           string          `json:"barcode"`             // unique across the catalog, case-sensitive
	Cost              decimal.Decimal `json:"cost"`                // purchase cost per unit
	Price             decimal.Decimal `json:"price"`               // default sale price
	MinimumPrice      decimal.Decimal `json:"minimum_price"`       // lowest price a cashier may sell at
	Stock             int             `json:"stock"`               // units on hand
	LowStockThreshold int             `json:"low_stock_threshold"` // flagged when stock <= threshold
	Category          string          `json:"category"`
	Supplier          string          `json:"supplier"`
	Image             string          `json:"image"`         // URL or data URI
	PurchaseDate      string          `json:"purchase_date"` // yyyy-mm-dd
}

// IsLowStock reports whether the product has reached its low-stock threshold
func (p Product) IsLowStock() bool {
	return p.Stock <= p.LowStockThreshold
}

// Validate checks the field-level invariants of a product.
// Barcode uniqueness needs the whole catalog and is checked by the store.
func (p Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.Wrap(ErrFieldRequired, "name")
	}
	if strings.TrimSpace(p.Barcode) == "" {
		return errors.Wrap(ErrFieldRequired, "barcode")
	}
	if p.Cost.IsNegative() || p.Price.IsNegative() || p.MinimumPrice.IsNegative() {
		return ErrNegativeAmount
	}
	if p.Stock < 0 || p.LowStockThreshold < 0 {
		return ErrNegativeStock
	}
	if p.Price.LessThan(p.MinimumPrice) {
		return errors.Wrapf(ErrPriceBelowMinimum, "price %s < minimum %s", p.Price, p.MinimumPrice)
	}
	return nil
}

// ProductInput carries the fields a caller supplies when creating a product
type ProductInput struct {
	Name              string          `json:"name"`
	Barcode           string          `json:"barcode"`
	Cost              decimal.Decimal `json:"cost"`
	Price             decimal.Decimal `json:"price"`
	MinimumPrice      decimal.Decimal `json:"minimum_price"`
	Stock             int             `json:"stock"`
	LowStockThreshold int             `json:"low_stock_threshold"`
	Category          string          `json:"category"`
	Supplier          string          `json:"supplier"`
	Image             string          `json:"image"`
}

// ProductPatch holds a partial product update, nil fields are left untouched
type ProductPatch struct {
	Name              *string          `json:"name"`
	Barcode           *string          `json:"barcode"`
	Cost              *decimal.Decimal `json:"cost"`
	Price             *decimal.Decimal `json:"price"`
	MinimumPrice      *decimal.Decimal `json:"minimum_price"`
	Stock             *int             `json:"stock"`
	LowStockThreshold *int             `json:"low_stock_threshold"`
	Category          *string          `json:"category"`
	Supplier          *string          `json:"supplier"`
	Image             *string          `json:"image"`
}

// Apply returns a copy of p with the patch merged in
func (pp ProductPatch) Apply(p Product) Product {
	if pp.Name != nil {
		p.Name = strings.TrimSpace(*pp.Name)
	}
	if pp.Barcode != nil {
		p.Barcode = strings.TrimSpace(*pp.Barcode)
	}
	if pp.Cost != nil {
		p.Cost = *pp.Cost
	}
	if pp.Price != nil {
		p.Price = *pp.Price
	}
	if pp.MinimumPrice != nil {
		p.MinimumPrice = *pp.MinimumPrice
	}
	if pp.Stock != nil {
		p.Stock = *pp.Stock
	}
	if pp.LowStockThreshold != nil {
		p.LowStockThreshold = *pp.LowStockThreshold
	}
	if pp.Category != nil {
		p.Category = strings.TrimSpace(*pp.Category)
	}
	if pp.Supplier != nil {
		p.Supplier = strings.TrimSpace(*pp.Supplier)
	}
	if pp.Image != nil {
		p.Image = strings.TrimSpace(*pp.Image)
		if p.Image == "" {
			p.Image = PlaceholderImage
		}
	}
	return p
}
