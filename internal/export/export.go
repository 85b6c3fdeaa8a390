// Package export writes catalog and sales data as CSV or XLSX files.
package export

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/talkincode/toughpos/internal/domain"
)

// Kind dataset to export
type Kind string

const (
	KindProducts Kind = "products"
	KindSales    Kind = "sales"
)

// Format file format
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

var ErrUnsupported = errors.New("unsupported export")

// ParseKind accepts the kind name case-insensitively
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindProducts, KindSales:
		return k, nil
	}
	return "", errors.Wrapf(ErrUnsupported, "kind %q", s)
}

// ParseFormat accepts the format name case-insensitively
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatXLSX:
		return f, nil
	}
	return "", errors.Wrapf(ErrUnsupported, "format %q", s)
}

// ContentType MIME type of f
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// Source the collections an export reads
type Source struct {
	Products []domain.Product
	Sales    []domain.Sale
}

// Write renders kind from src in format f
func Write(w io.Writer, kind Kind, f Format, src Source) error {
	switch {
	case kind == KindProducts && f == FormatCSV:
		return ProductsCSV(w, src.Products)
	case kind == KindProducts && f == FormatXLSX:
		return ProductsXLSX(w, src.Products)
	case kind == KindSales && f == FormatCSV:
		return SalesCSV(w, src.Sales)
	case kind == KindSales && f == FormatXLSX:
		return SalesXLSX(w, src.Sales)
	}
	return errors.Wrapf(ErrUnsupported, "%s as %s", kind, f)
}

// Filename suggested download name
func Filename(kind Kind, f Format) string {
	return string(kind) + "." + string(f)
}
