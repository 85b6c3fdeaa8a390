package store_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/talkincode/toughpos/internal/domain"
	"github.com/talkincode/toughpos/internal/storage"
	"github.com/talkincode/toughpos/internal/store"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testProduct(id, barcode string, stock int, price, minimum string) domain.Product {
	return domain.Product{
		ID:                id,
		Name:              "Product " + id,
		Barcode:           barcode,
		Cost:              dec("5"),
		Price:             dec(price),
		MinimumPrice:      dec(minimum),
		Stock:             stock,
		LowStockThreshold: 2,
		Category:          "Accessories",
		PurchaseDate:      "2026-01-01",
	}
}

func testDataset() store.Dataset {
	return store.Dataset{
		Products: []domain.Product{
			testProduct("prod-p", "111", 5, "10", "8"),
			testProduct("prod-q", "222", 0, "20", "15"),
		},
		Sales:       []domain.Sale{},
		Receivables: []domain.Receivable{},
		MaintenanceJobs: []domain.MaintenanceJob{{
			ID:               "M-1",
			CustomerName:     "Sara",
			ProductName:      "Laptop",
			IssueDescription: "No power",
			Status:           domain.JobReceived,
			DateReceived:     "2026-01-02",
			Cost:             decimal.Zero,
		}},
	}
}

func newTestStore(t *testing.T, backend storage.Backend, opts ...store.Option) (*store.Store, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2026, 10, 17, 10, 0, 0, 0, time.Local)}
	all := append([]store.Option{
		store.WithDefaults(testDataset()),
		store.WithClock(clock.Now),
	}, opts...)
	s, err := store.New(backend, all...)
	require.NoError(t, err)
	return s, clock
}

func line(p domain.Product, qty int, price string) domain.CartLine {
	return domain.CartLine{Product: p, Quantity: qty, Price: dec(price)}
}
