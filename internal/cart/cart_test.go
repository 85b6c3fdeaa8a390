package cart

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talkincode/toughpos/internal/domain"
	"github.com/talkincode/toughpos/internal/storage"
	"github.com/talkincode/toughpos/internal/store"
)

type mapCatalog map[string]domain.Product

func (m mapCatalog) Product(id string) (domain.Product, bool) {
	p, ok := m[id]
	return p, ok
}

type failingLedger struct {
	saleErr error
	sales   int
}

func (f *failingLedger) AddSale(lines []domain.CartLine, total decimal.Decimal, method domain.PaymentMethod, customerName string) (domain.Sale, error) {
	f.sales++
	return domain.Sale{}, f.saleErr
}

func (f *failingLedger) AddReceivable(string, decimal.Decimal, time.Time) (domain.Receivable, error) {
	return domain.Receivable{}, errors.New("unexpected")
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func testCatalog() mapCatalog {
	return mapCatalog{
		"p": {ID: "p", Name: "Charger", Barcode: "111", Cost: dec("4"), Price: dec("10"), MinimumPrice: dec("8"), Stock: 2},
		"q": {ID: "q", Name: "Case", Barcode: "222", Cost: dec("1"), Price: dec("3"), MinimumPrice: dec("2"), Stock: 0},
	}
}

func TestAddIsStockGuarded(t *testing.T) {
	c := New(testCatalog())

	l, err := c.Add("p")
	require.NoError(t, err)
	assert.Equal(t, 1, l.Quantity)
	assert.True(t, l.Price.Equal(dec("10")))

	l, err = c.Add("p")
	require.NoError(t, err)
	assert.Equal(t, 2, l.Quantity)

	_, err = c.Add("p")
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 2, c.Lines()[0].Quantity)

	_, err = c.Add("q")
	assert.ErrorIs(t, err, domain.ErrOutOfStock)
	_, err = c.Add("missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Len(t, c.Lines(), 1)
}

func TestSetQuantity(t *testing.T) {
	c := New(testCatalog())
	_, err := c.Add("p")
	require.NoError(t, err)

	assert.ErrorIs(t, c.SetQuantity("p", 3), domain.ErrInsufficientStock)
	assert.Equal(t, 1, c.Lines()[0].Quantity)

	require.NoError(t, c.SetQuantity("p", 2))
	assert.Equal(t, 2, c.Lines()[0].Quantity)

	require.NoError(t, c.SetQuantity("p", 0))
	assert.True(t, c.IsEmpty())

	assert.ErrorIs(t, c.SetQuantity("p", 1), domain.ErrNotFound)
}

func TestNegativeQuantityRemovesLine(t *testing.T) {
	c := New(testCatalog())
	_, err := c.Add("p")
	require.NoError(t, err)
	require.NoError(t, c.SetQuantity("p", -4))
	assert.True(t, c.IsEmpty())
}

func TestFinalizePriceResetsToMinimum(t *testing.T) {
	c := New(testCatalog())
	_, err := c.Add("p")
	require.NoError(t, err)

	require.NoError(t, c.SetPrice("p", dec("5")))
	assert.True(t, c.Lines()[0].Price.Equal(dec("5")))

	n, err := c.FinalizePrice("p")
	require.NoError(t, err)
	require.NotNil(t, n)
	assert.True(t, n.Requested.Equal(dec("5")))
	assert.True(t, n.Minimum.Equal(dec("8")))
	assert.Contains(t, n.String(), "8.00")
	assert.True(t, c.Lines()[0].Price.Equal(dec("8")))

	require.NoError(t, c.SetPrice("p", dec("9")))
	n, err = c.FinalizePrice("p")
	require.NoError(t, err)
	assert.Nil(t, n)
	assert.True(t, c.Lines()[0].Price.Equal(dec("9")))

	assert.ErrorIs(t, c.SetPrice("p", dec("-1")), domain.ErrNegativeAmount)
}

func TestSubtotalAndRemove(t *testing.T) {
	cat := testCatalog()
	cat["r"] = domain.Product{ID: "r", Name: "Cable", Price: dec("2.50"), MinimumPrice: dec("2"), Stock: 10}
	c := New(cat)
	_, _ = c.Add("p")
	_, _ = c.Add("r")
	_, _ = c.Add("r")

	assert.Equal(t, "15", c.Subtotal().String())
	c.Remove("p")
	c.Remove("unknown")
	assert.Equal(t, "5", c.Subtotal().String())
	c.Clear()
	assert.True(t, c.Subtotal().IsZero())
}

func newStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.New(storage.NewMemory(), store.WithDefaults(store.Dataset{
		Products: []domain.Product{
			{ID: "p", Name: "Charger", Barcode: "111", Cost: dec("4"), Price: dec("10"), MinimumPrice: dec("8"), Stock: 5},
		},
	}))
	require.NoError(t, err)
	return s
}

func TestCheckoutCash(t *testing.T) {
	s := newStore(t)
	c := New(s)
	_, err := c.Add("p")
	require.NoError(t, err)
	require.NoError(t, c.SetQuantity("p", 3))
	require.NoError(t, c.SetPrice("p", dec("7")))

	receipt, err := c.Checkout(s, CheckoutRequest{Method: domain.PaymentCash})
	require.NoError(t, err)
	require.Len(t, receipt.Notices, 1)
	assert.Nil(t, receipt.Receivable)
	assert.Equal(t, "24", receipt.Sale.Total.String())
	assert.Equal(t, domain.WalkInCustomer, receipt.Sale.CustomerName)
	assert.True(t, c.IsEmpty())

	p, _ := s.Product("p")
	assert.Equal(t, 2, p.Stock)
}

func TestCheckoutStoreCredit(t *testing.T) {
	s := newStore(t)
	c := New(s)
	_, err := c.Add("p")
	require.NoError(t, err)
	due := time.Now().AddDate(0, 0, 30)

	_, err = c.Checkout(s, CheckoutRequest{Method: domain.PaymentReceivable, DueDate: due})
	assert.ErrorIs(t, err, domain.ErrFieldRequired)
	_, err = c.Checkout(s, CheckoutRequest{Method: domain.PaymentReceivable, CustomerName: "Huda"})
	assert.ErrorIs(t, err, domain.ErrDueDateRequired)
	assert.Empty(t, s.Sales())
	assert.False(t, c.IsEmpty())

	receipt, err := c.Checkout(s, CheckoutRequest{Method: domain.PaymentReceivable, CustomerName: " Huda ", DueDate: due})
	require.NoError(t, err)
	require.NotNil(t, receipt.Receivable)
	assert.Equal(t, "Huda", receipt.Sale.CustomerName)
	assert.Equal(t, domain.PaymentReceivable, receipt.Sale.PaymentMethod)
	assert.True(t, receipt.Receivable.TotalAmount.Equal(dec("10")))
	assert.Equal(t, domain.ReceivableUnpaid, receipt.Receivable.Status)
	assert.Len(t, s.Receivables(), 1)
}

func TestCheckoutFailureKeepsCart(t *testing.T) {
	c := New(testCatalog())
	_, err := c.Add("p")
	require.NoError(t, err)

	ledger := &failingLedger{saleErr: domain.ErrInsufficientStock}
	_, err = c.Checkout(ledger, CheckoutRequest{Method: domain.PaymentCard})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 1, ledger.sales)
	assert.False(t, c.IsEmpty())

	_, err = c.Checkout(ledger, CheckoutRequest{Method: "bitcoin"})
	assert.ErrorIs(t, err, domain.ErrInvalidPaymentMethod)

	c.Clear()
	_, err = c.Checkout(ledger, CheckoutRequest{Method: domain.PaymentCash})
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
	assert.Equal(t, 1, ledger.sales)
}

func TestCheckoutUsesCurrentMinimum(t *testing.T) {
	s := newStore(t)
	c := New(s)
	_, err := c.Add("p")
	require.NoError(t, err)
	require.NoError(t, c.SetPrice("p", dec("8")))

	price, minimum := dec("20"), dec("15")
	_, err = s.UpdateProduct("p", domain.ProductPatch{Price: &price, MinimumPrice: &minimum})
	require.NoError(t, err)

	receipt, err := c.Checkout(s, CheckoutRequest{Method: domain.PaymentCash})
	require.NoError(t, err)
	require.Len(t, receipt.Notices, 1)
	assert.True(t, receipt.Notices[0].Requested.Equal(dec("8")))
	assert.True(t, receipt.Notices[0].Minimum.Equal(dec("15")))
	require.Len(t, receipt.Sale.Items, 1)
	assert.True(t, receipt.Sale.Items[0].Price.Equal(dec("15")))
	assert.True(t, receipt.Sale.Items[0].Product.MinimumPrice.Equal(dec("15")))
	assert.Equal(t, "15", receipt.Sale.Total.String())
}

func TestCheckoutRejectsRemovedProduct(t *testing.T) {
	s := newStore(t)
	c := New(s)
	_, err := c.Add("p")
	require.NoError(t, err)
	require.NoError(t, s.DeleteProduct("p"))

	_, err = c.Checkout(s, CheckoutRequest{Method: domain.PaymentCash})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.False(t, c.IsEmpty())
	assert.Empty(t, s.Sales())
}
