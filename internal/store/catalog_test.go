package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talkincode/toughpos/internal/domain"
	"github.com/talkincode/toughpos/internal/storage"
)

func validInput(barcode string) domain.ProductInput {
	return domain.ProductInput{
		Name:              "USB cable",
		Barcode:           barcode,
		Cost:              dec("1.5"),
		Price:             dec("4"),
		MinimumPrice:      dec("3"),
		Stock:             10,
		LowStockThreshold: 3,
		Category:          "Accessories",
	}
}

func TestAddProduct(t *testing.T) {
	s, _ := newTestStore(t, storage.NewMemory())

	p, err := s.AddProduct(validInput("333"))
	require.NoError(t, err)
	assert.Contains(t, p.ID, domain.ProductIDPrefix)
	assert.Equal(t, "2026-10-17", p.PurchaseDate)
	assert.Equal(t, domain.PlaceholderImage, p.Image)

	got, ok := s.ProductByBarcode("333")
	require.True(t, ok)
	assert.Equal(t, p.ID, got.ID)
	assert.Len(t, s.Products(), 3)
}

func TestAddProductRejectsDuplicateBarcode(t *testing.T) {
	s, _ := newTestStore(t, storage.NewMemory())

	_, err := s.AddProduct(validInput("111"))
	assert.ErrorIs(t, err, domain.ErrDuplicateBarcode)
	assert.Len(t, s.Products(), 2)

	// barcodes compare case-sensitively
	_, err = s.AddProduct(validInput("abc"))
	require.NoError(t, err)
	_, err = s.AddProduct(validInput("ABC"))
	require.NoError(t, err)
}

func TestAddProductRejectsPriceBelowMinimum(t *testing.T) {
	s, _ := newTestStore(t, storage.NewMemory())

	in := validInput("444")
	in.Price = dec("2.99")
	_, err := s.AddProduct(in)
	assert.ErrorIs(t, err, domain.ErrPriceBelowMinimum)

	in = validInput("")
	_, err = s.AddProduct(in)
	assert.ErrorIs(t, err, domain.ErrFieldRequired)

	in = validInput("555")
	in.Stock = -1
	_, err = s.AddProduct(in)
	assert.ErrorIs(t, err, domain.ErrNegativeStock)

	assert.Len(t, s.Products(), 2)
}

func TestUpdateProduct(t *testing.T) {
	s, _ := newTestStore(t, storage.NewMemory())

	name := "Renamed"
	barcode := "999"
	p, err := s.UpdateProduct("prod-p", domain.ProductPatch{Name: &name, Barcode: &barcode})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", p.Name)
	assert.Equal(t, 5, p.Stock)

	_, ok := s.ProductByBarcode("111")
	assert.False(t, ok)
	got, ok := s.ProductByBarcode("999")
	require.True(t, ok)
	assert.Equal(t, "prod-p", got.ID)

	// keeping its own barcode is not a collision
	_, err = s.UpdateProduct("prod-p", domain.ProductPatch{Barcode: &barcode})
	require.NoError(t, err)
}

func TestUpdateProductRechecksInvariants(t *testing.T) {
	s, _ := newTestStore(t, storage.NewMemory())

	taken := "222"
	_, err := s.UpdateProduct("prod-p", domain.ProductPatch{Barcode: &taken})
	assert.ErrorIs(t, err, domain.ErrDuplicateBarcode)

	low := dec("7.99")
	_, err = s.UpdateProduct("prod-p", domain.ProductPatch{Price: &low})
	assert.ErrorIs(t, err, domain.ErrPriceBelowMinimum)

	raisedFloor := dec("11")
	_, err = s.UpdateProduct("prod-p", domain.ProductPatch{MinimumPrice: &raisedFloor})
	assert.ErrorIs(t, err, domain.ErrPriceBelowMinimum)

	p, ok := s.Product("prod-p")
	require.True(t, ok)
	assert.Equal(t, "111", p.Barcode)
	assert.True(t, p.Price.Equal(dec("10")))

	_, err = s.UpdateProduct("prod-missing", domain.ProductPatch{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteProduct(t *testing.T) {
	s, _ := newTestStore(t, storage.NewMemory())

	require.NoError(t, s.DeleteProduct("prod-p"))
	_, ok := s.Product("prod-p")
	assert.False(t, ok)
	_, ok = s.ProductByBarcode("111")
	assert.False(t, ok)

	assert.ErrorIs(t, s.DeleteProduct("prod-p"), domain.ErrNotFound)
	assert.Len(t, s.Products(), 1)

	// the freed barcode can be reused
	_, err := s.AddProduct(validInput("111"))
	require.NoError(t, err)
}

func TestProductsByBarcodeAndGenerate(t *testing.T) {
	s, _ := newTestStore(t, storage.NewMemory())
	_, err := s.AddProduct(validInput("000"))
	require.NoError(t, err)

	var codes []string
	for _, p := range s.ProductsByBarcode() {
		codes = append(codes, p.Barcode)
	}
	assert.Equal(t, []string{"000", "111", "222"}, codes)

	code := s.GenerateBarcode()
	assert.Len(t, code, 12)
	_, taken := s.ProductByBarcode(code)
	assert.False(t, taken)
}

func TestStoredDuplicateBarcodeStaysClaimed(t *testing.T) {
	for _, moved := range []string{"prod-a", "prod-b"} {
		t.Run(moved, func(t *testing.T) {
			backend := storage.NewMemory()
			data, err := storage.Marshal([]domain.Product{
				testProduct("prod-a", "111", 3, "10", "8"),
				testProduct("prod-b", "111", 3, "10", "8"),
			})
			require.NoError(t, err)
			backend.Put(storage.KeyProducts, data)
			s, _ := newTestStore(t, backend)

			code := "222"
			_, err = s.UpdateProduct(moved, domain.ProductPatch{Barcode: &code})
			require.NoError(t, err)

			_, err = s.AddProduct(validInput("111"))
			assert.ErrorIs(t, err, domain.ErrDuplicateBarcode)
			got, ok := s.ProductByBarcode("111")
			require.True(t, ok)
			assert.NotEqual(t, moved, got.ID)

			require.NoError(t, s.DeleteProduct(got.ID))
			_, err = s.AddProduct(validInput("111"))
			assert.NoError(t, err)
		})
	}
}
