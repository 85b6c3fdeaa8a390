// Package query derives read-only views from store snapshots.
// Nothing here mutates its input.
package query

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/talkincode/toughpos/internal/domain"
	"golang.org/x/text/cases"
)

// AllCategories matches any category in a filter
const AllCategories = "all"

// fold case-folds s. A fresh Caser per call, Casers are not goroutine safe.
func fold(s string) string {
	return cases.Fold().String(s)
}

func containsFold(s, sub string) bool {
	return strings.Contains(fold(s), fold(sub))
}

// LowStock products whose stock is at or below their threshold
func LowStock(products []domain.Product) []domain.Product {
	var out []domain.Product
	for _, p := range products {
		if p.IsLowStock() {
			out = append(out, p)
		}
	}
	return out
}

// Categories distinct non-empty categories in first-seen order
func Categories(products []domain.Product) []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range products {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		out = append(out, p.Category)
	}
	return out
}

// ProductFilter zero fields match everything
type ProductFilter struct {
	Term         string // name (case-insensitive) or barcode substring
	Category     string // exact, or AllCategories
	Supplier     string // case-insensitive substring
	PurchaseDate string // yyyy-mm-dd
}

func (f ProductFilter) match(p domain.Product) bool {
	if f.Term != "" && !containsFold(p.Name, f.Term) && !strings.Contains(p.Barcode, f.Term) {
		return false
	}
	if f.Category != "" && f.Category != AllCategories && p.Category != f.Category {
		return false
	}
	if f.Supplier != "" && !containsFold(p.Supplier, f.Supplier) {
		return false
	}
	if f.PurchaseDate != "" && p.PurchaseDate != f.PurchaseDate {
		return false
	}
	return true
}

// SearchProducts keeps catalog order
func SearchProducts(products []domain.Product, f ProductFilter) []domain.Product {
	var out []domain.Product
	for _, p := range products {
		if f.match(p) {
			out = append(out, p)
		}
	}
	return out
}

// Valuation stock on hand valued three ways
type Valuation struct {
	Products  int             `json:"products"`
	Units     int             `json:"units"`
	LowStock  int             `json:"low_stock"`
	AtPrice   decimal.Decimal `json:"at_price"`
	AtCost    decimal.Decimal `json:"at_cost"`
	AtMinimum decimal.Decimal `json:"at_minimum"`
}

// InventoryValuation sums price, cost and minimum price times stock
func InventoryValuation(products []domain.Product) Valuation {
	v := Valuation{AtPrice: decimal.Zero, AtCost: decimal.Zero, AtMinimum: decimal.Zero}
	for _, p := range products {
		qty := decimal.NewFromInt(int64(p.Stock))
		v.Products++
		v.Units += p.Stock
		v.AtPrice = v.AtPrice.Add(p.Price.Mul(qty))
		v.AtCost = v.AtCost.Add(p.Cost.Mul(qty))
		v.AtMinimum = v.AtMinimum.Add(p.MinimumPrice.Mul(qty))
		if p.IsLowStock() {
			v.LowStock++
		}
	}
	return v
}
