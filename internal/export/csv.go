package export

import (
	"io"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"
	"github.com/talkincode/toughpos/internal/domain"
)

// ProductsCSV writes one row per product with a header line
func ProductsCSV(w io.Writer, products []domain.Product) error {
	return errors.Wrap(gocsv.Marshal(productRows(products), w), "export products csv")
}

// SalesCSV writes one row per sale line
func SalesCSV(w io.Writer, sales []domain.Sale) error {
	rows := saleLineRows(sales)
	if rows == nil {
		rows = []*saleLineRow{}
	}
	return errors.Wrap(gocsv.Marshal(rows, w), "export sales csv")
}
