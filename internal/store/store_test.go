package store_test

import (
	"testing"

	"github.com/asaskevich/EventBus"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talkincode/toughpos/internal/domain"
	"github.com/talkincode/toughpos/internal/storage"
	"github.com/talkincode/toughpos/internal/store"
)

func TestNewRejectsNilBackend(t *testing.T) {
	_, err := store.New(nil)
	assert.Error(t, err)
}

func TestLoadFallsBackToDefaults(t *testing.T) {
	backend := storage.NewMemory()
	s, _ := newTestStore(t, backend)

	assert.Len(t, s.Products(), 2)
	assert.Len(t, s.MaintenanceJobs(), 1)
	assert.Empty(t, s.Sales())
	// defaults are not written until something changes
	assert.Equal(t, 0, backend.Saves())
	assert.False(t, backend.Has(storage.KeyProducts))
}

func TestWriteThroughSurvivesReload(t *testing.T) {
	backend := storage.NewMemory()
	s, clock := newTestStore(t, backend)

	p, _ := s.Product("prod-p")
	sale, err := s.AddSale([]domain.CartLine{line(p, 2, "9.50")}, dec("19"), domain.PaymentCard, "Rami")
	require.NoError(t, err)
	r, err := s.AddReceivable("Rami", dec("19"), clock.t.AddDate(0, 0, 14))
	require.NoError(t, err)
	_, err = s.AddPayment(r.ID, dec("5"))
	require.NoError(t, err)

	reloaded, _ := newTestStore(t, backend)
	after, ok := reloaded.Product("prod-p")
	require.True(t, ok)
	assert.Equal(t, 3, after.Stock)

	loadedSale, ok := reloaded.Sale(sale.ID)
	require.True(t, ok)
	assert.True(t, loadedSale.Total.Equal(dec("19")))
	assert.True(t, loadedSale.Date.Equal(sale.Date))
	assert.Equal(t, "Rami", loadedSale.CustomerName)

	loadedReceivable, ok := reloaded.Receivable(r.ID)
	require.True(t, ok)
	assert.Equal(t, domain.ReceivablePartiallyPaid, loadedReceivable.Status)
	assert.True(t, loadedReceivable.AmountPaid.Equal(dec("5")))

	got, ok := reloaded.ProductByBarcode("111")
	require.True(t, ok)
	assert.Equal(t, "prod-p", got.ID)
}

func TestCorruptCollectionFallsBack(t *testing.T) {
	backend := storage.NewMemory()
	backend.Put(storage.KeyProducts, []byte("{not json"))
	backend.Put(storage.KeySales, []byte("null"))

	s, _ := newTestStore(t, backend)
	assert.Len(t, s.Products(), 2)
	assert.NotNil(t, s.Sales())
	assert.Empty(t, s.Sales())
}

func TestLoadNormalizesReceivableStatus(t *testing.T) {
	backend := storage.NewMemory()
	backend.Put(storage.KeyReceivables, []byte(`[{"id":"R-1","customer_name":"Ali","total_amount":"50","amount_paid":"50","issue_date":"2026-09-01T00:00:00Z","due_date":"2026-10-01T00:00:00Z","status":"Unpaid"}]`))

	s, _ := newTestStore(t, backend)
	r, ok := s.Receivable("R-1")
	require.True(t, ok)
	assert.Equal(t, domain.ReceivablePaid, r.Status)
}

func TestPersistFailureKeepsMemory(t *testing.T) {
	backend := storage.NewMemory()
	backend.SaveErr = errors.New("disk full")
	s, _ := newTestStore(t, backend)

	p, err := s.AddProduct(validInput("777"))
	require.NoError(t, err)
	_, ok := s.Product(p.ID)
	assert.True(t, ok)
	assert.Equal(t, 1, backend.Saves())
	assert.False(t, backend.Has(storage.KeyProducts))
}

func TestResetAllRestoresDefaults(t *testing.T) {
	bus := EventBus.New()
	backend := storage.NewMemory()
	s, clock := newTestStore(t, backend, store.WithEventBus(bus))

	resets := 0
	require.NoError(t, bus.Subscribe(store.TopicDataReset, func() { resets++ }))

	_, err := s.AddProduct(validInput("888"))
	require.NoError(t, err)
	_, err = s.AddReceivable("Ali", dec("10"), clock.t.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.True(t, backend.Has(storage.KeyProducts))

	require.NoError(t, s.ResetAll())
	assert.Equal(t, 1, resets)
	for _, key := range storage.AllKeys {
		assert.False(t, backend.Has(key), key)
	}
	assert.Len(t, s.Products(), 2)
	assert.Empty(t, s.Receivables())
	_, ok := s.ProductByBarcode("888")
	assert.False(t, ok)
	_, ok = s.ProductByBarcode("111")
	assert.True(t, ok)
}

func TestSnapshotIsACopy(t *testing.T) {
	s, _ := newTestStore(t, storage.NewMemory())
	snap := s.Snapshot()
	snap.Products[0].Stock = 1000
	p, _ := s.Product(snap.Products[0].ID)
	assert.NotEqual(t, 1000, p.Stock)
}

func TestWalkInCustomerOption(t *testing.T) {
	s, _ := newTestStore(t, storage.NewMemory(), store.WithWalkInCustomer("Guest"))
	p, _ := s.Product("prod-p")
	sale, err := s.AddSale([]domain.CartLine{line(p, 1, "10")}, dec("10"), domain.PaymentCash, "  ")
	require.NoError(t, err)
	assert.Equal(t, "Guest", sale.CustomerName)
	assert.Equal(t, "Guest", s.WalkInCustomer())
}
