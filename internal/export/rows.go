package export

import (
	"time"

	"github.com/talkincode/toughpos/internal/domain"
)

type productRow struct {
	ID                string `csv:"id"`
	Name              string `csv:"name"`
	Barcode           string `csv:"barcode"`
	Category          string `csv:"category"`
	Supplier          string `csv:"supplier"`
	Cost              string `csv:"cost"`
	Price             string `csv:"price"`
	MinimumPrice      string `csv:"minimum_price"`
	Stock             int    `csv:"stock"`
	LowStockThreshold int    `csv:"low_stock_threshold"`
	PurchaseDate      string `csv:"purchase_date"`
}

var productHeader = []string{
	"id", "name", "barcode", "category", "supplier", "cost", "price",
	"minimum_price", "stock", "low_stock_threshold", "purchase_date",
}

func (r productRow) cells() []interface{} {
	return []interface{}{
		r.ID, r.Name, r.Barcode, r.Category, r.Supplier, r.Cost, r.Price,
		r.MinimumPrice, r.Stock, r.LowStockThreshold, r.PurchaseDate,
	}
}

func productRows(products []domain.Product) []*productRow {
	rows := make([]*productRow, 0, len(products))
	for _, p := range products {
		rows = append(rows, &productRow{
			ID:                p.ID,
			Name:              p.Name,
			Barcode:           p.Barcode,
			Category:          p.Category,
			Supplier:          p.Supplier,
			Cost:              p.Cost.StringFixed(2),
			Price:             p.Price.StringFixed(2),
			MinimumPrice:      p.MinimumPrice.StringFixed(2),
			Stock:             p.Stock,
			LowStockThreshold: p.LowStockThreshold,
			PurchaseDate:      p.PurchaseDate,
		})
	}
	return rows
}

// saleLineRow one row per sale line; sale columns repeat
type saleLineRow struct {
	SaleID        string `csv:"sale_id"`
	Date          string `csv:"date"`
	CustomerName  string `csv:"customer_name"`
	PaymentMethod string `csv:"payment_method"`
	ProductID     string `csv:"product_id"`
	ProductName   string `csv:"product_name"`
	Barcode       string `csv:"barcode"`
	Category      string `csv:"category"`
	Quantity      int    `csv:"quantity"`
	UnitPrice     string `csv:"unit_price"`
	LineTotal     string `csv:"line_total"`
	SaleTotal     string `csv:"sale_total"`
}

var saleLineHeader = []string{
	"sale_id", "date", "customer_name", "payment_method", "product_id", "product_name",
	"barcode", "category", "quantity", "unit_price", "line_total", "sale_total",
}

func (r saleLineRow) cells() []interface{} {
	return []interface{}{
		r.SaleID, r.Date, r.CustomerName, r.PaymentMethod, r.ProductID, r.ProductName,
		r.Barcode, r.Category, r.Quantity, r.UnitPrice, r.LineTotal, r.SaleTotal,
	}
}

func saleLineRows(sales []domain.Sale) []*saleLineRow {
	var rows []*saleLineRow
	for _, s := range sales {
		for _, item := range s.Items {
			rows = append(rows, &saleLineRow{
				SaleID:        s.ID,
				Date:          s.Date.Format(time.RFC3339),
				CustomerName:  s.CustomerName,
				PaymentMethod: string(s.PaymentMethod),
				ProductID:     item.Product.ID,
				ProductName:   item.Product.Name,
				Barcode:       item.Product.Barcode,
				Category:      item.Product.Category,
				Quantity:      item.Quantity,
				UnitPrice:     item.Price.StringFixed(2),
				LineTotal:     item.LineTotal().StringFixed(2),
				SaleTotal:     s.Total.StringFixed(2),
			})
		}
	}
	return rows
}

var saleHeader = []string{"sale_id", "date", "customer_name", "payment_method", "items", "subtotal", "tax", "total"}

func saleCells(s domain.Sale) []interface{} {
	return []interface{}{
		s.ID, s.Date.Format(time.RFC3339), s.CustomerName, string(s.PaymentMethod),
		s.Quantity(), s.Subtotal.StringFixed(2), s.Tax.StringFixed(2), s.Total.StringFixed(2),
	}
}
