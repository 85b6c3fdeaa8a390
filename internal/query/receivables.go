package query

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/talkincode/toughpos/internal/domain"
)

// Overdue receivables past their due date and not fully paid
func Overdue(receivables []domain.Receivable, now time.Time) []domain.Receivable {
	var out []domain.Receivable
	for _, r := range receivables {
		if r.IsOverdue(now) {
			out = append(out, r)
		}
	}
	return out
}

// ReceivablesTotals ledger-wide figures
type ReceivablesTotals struct {
	Count         int             `json:"count"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	TotalPaid     decimal.Decimal `json:"total_paid"`
	Outstanding   decimal.Decimal `json:"outstanding"`
	OverdueCount  int             `json:"overdue_count"`
	OverdueAmount decimal.Decimal `json:"overdue_amount"`
}

// ReceivablesSummary totals over every receivable
func ReceivablesSummary(receivables []domain.Receivable, now time.Time) ReceivablesTotals {
	t := ReceivablesTotals{
		TotalAmount:   decimal.Zero,
		TotalPaid:     decimal.Zero,
		OverdueAmount: decimal.Zero,
	}
	for _, r := range receivables {
		t.Count++
		t.TotalAmount = t.TotalAmount.Add(r.TotalAmount)
		t.TotalPaid = t.TotalPaid.Add(r.AmountPaid)
		if r.IsOverdue(now) {
			t.OverdueCount++
			t.OverdueAmount = t.OverdueAmount.Add(r.Balance())
		}
	}
	t.Outstanding = t.TotalAmount.Sub(t.TotalPaid)
	return t
}

// Receivable list tabs
const (
	TabAll    = "all"
	TabPaid   = "paid"
	TabUnpaid = "unpaid" // Unpaid and Partially Paid
)

// FilterReceivables by tab and case-insensitive customer name
func FilterReceivables(receivables []domain.Receivable, tab, name string) []domain.Receivable {
	var out []domain.Receivable
	for _, r := range receivables {
		switch tab {
		case TabPaid:
			if r.Status != domain.ReceivablePaid {
				continue
			}
		case TabUnpaid:
			if r.Status == domain.ReceivablePaid {
				continue
			}
		}
		if name != "" && !containsFold(r.CustomerName, name) {
			continue
		}
		out = append(out, r)
	}
	return out
}
