package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestReceivableStatusOf(t *testing.T) {
	assert.Equal(t, ReceivableUnpaid, ReceivableStatusOf(decimal.Zero, d("100")))
	assert.Equal(t, ReceivablePartiallyPaid, ReceivableStatusOf(d("0.01"), d("100")))
	assert.Equal(t, ReceivablePaid, ReceivableStatusOf(d("100"), d("100")))
	assert.Equal(t, ReceivablePaid, ReceivableStatusOf(d("120"), d("100")))
}

func TestReceivableOverdue(t *testing.T) {
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	r := Receivable{TotalAmount: d("10"), AmountPaid: decimal.Zero, DueDate: now.Add(-time.Hour)}.Normalize()
	assert.True(t, r.IsOverdue(now))

	r.DueDate = now.Add(time.Hour)
	assert.False(t, r.IsOverdue(now))

	r.DueDate = now.Add(-time.Hour)
	r, err := r.ApplyPayment(d("10"))
	require.NoError(t, err)
	assert.False(t, r.IsOverdue(now))
}

func TestApplyPaymentLeavesOriginal(t *testing.T) {
	r := Receivable{TotalAmount: d("10"), AmountPaid: d("4")}.Normalize()
	_, err := r.ApplyPayment(d("6.01"))
	assert.ErrorIs(t, err, ErrPaymentExceedsBalance)
	assert.True(t, r.AmountPaid.Equal(d("4")))
	assert.Equal(t, ReceivablePartiallyPaid, r.Status)
}

func TestProductValidate(t *testing.T) {
	base := Product{Name: "Mouse", Barcode: "1", Cost: d("2"), Price: d("5"), MinimumPrice: d("4")}
	require.NoError(t, base.Validate())

	equal := base
	equal.Price = d("4")
	assert.NoError(t, equal.Validate())

	cheap := base
	cheap.Price = d("3.99")
	assert.ErrorIs(t, cheap.Validate(), ErrPriceBelowMinimum)

	blank := base
	blank.Name = "  "
	assert.ErrorIs(t, blank.Validate(), ErrFieldRequired)

	neg := base
	neg.Cost = d("-1")
	assert.ErrorIs(t, neg.Validate(), ErrNegativeAmount)

	assert.True(t, IsValidation(cheap.Validate()))
	assert.False(t, IsValidation(ErrNotFound))
}

func TestProductLowStock(t *testing.T) {
	p := Product{Stock: 3, LowStockThreshold: 3}
	assert.True(t, p.IsLowStock())
	p.Stock = 4
	assert.False(t, p.IsLowStock())
}

func TestProductPatchImage(t *testing.T) {
	empty := ""
	p := ProductPatch{Image: &empty}.Apply(Product{Image: "data:image/png;base64,AAA"})
	assert.Equal(t, PlaceholderImage, p.Image)

	p = ProductPatch{}.Apply(Product{Image: "x.png"})
	assert.Equal(t, "x.png", p.Image)
}

func TestJobPatchCompletionStampedOnce(t *testing.T) {
	done := JobCompleted
	job := JobPatch{Status: &done}.Apply(MaintenanceJob{Status: JobReceived}, "2026-10-01")
	assert.Equal(t, "2026-10-01", job.CompletionDate)

	awaiting := JobAwaitingCollection
	job = JobPatch{Status: &awaiting}.Apply(job, "2026-10-05")
	assert.Equal(t, "2026-10-01", job.CompletionDate)

	bad := JobStatus("Shipped")
	assert.ErrorIs(t, JobPatch{Status: &bad}.Validate(), ErrInvalidJobStatus)
}

func TestCartLineAmounts(t *testing.T) {
	l := CartLine{Product: Product{Cost: d("2.5")}, Quantity: 3, Price: d("4.10")}
	assert.Equal(t, "12.3", l.LineTotal().String())
	assert.Equal(t, "7.5", l.LineCost().String())

	s := Sale{Items: []CartLine{l, {Quantity: 2}}}
	assert.Equal(t, 5, s.Quantity())
	c := s.Clone()
	c.Items[0].Quantity = 9
	assert.Equal(t, 3, s.Items[0].Quantity)
}

func TestIDGenerator(t *testing.T) {
	g, err := NewIDGenerator(3)
	require.NoError(t, err)
	a, b := g.Next(SaleIDPrefix), g.Next(SaleIDPrefix)
	assert.True(t, strings.HasPrefix(a, SaleIDPrefix))
	assert.NotEqual(t, a, b)

	_, err = NewIDGenerator(5000)
	assert.Error(t, err)
}
