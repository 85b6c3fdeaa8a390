package store

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/talkincode/toughpos/internal/domain"
	"github.com/talkincode/toughpos/internal/storage"
	"go.uber.org/zap"
)

// Receivables returns the ledger, newest first
func (s *Store) Receivables() []domain.Receivable {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Receivable{}, s.receivables...)
}

// Receivable looks an entry up by id
func (s *Store) Receivable(id string) (domain.Receivable, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.receivableIndex(id); i >= 0 {
		return s.receivables[i], true
	}
	return domain.Receivable{}, false
}

func (s *Store) receivableIndex(id string) int {
	for i := range s.receivables {
		if s.receivables[i].ID == id {
			return i
		}
	}
	return -1
}

// AddReceivable opens a debt with nothing paid
func (s *Store) AddReceivable(customerName string, totalAmount decimal.Decimal, dueDate time.Time) (domain.Receivable, error) {
	customerName = strings.TrimSpace(customerName)
	if customerName == "" {
		return domain.Receivable{}, errors.Wrap(domain.ErrFieldRequired, "customer_name")
	}
	if !totalAmount.IsPositive() {
		return domain.Receivable{}, domain.ErrInvalidAmount
	}
	if dueDate.IsZero() {
		return domain.Receivable{}, domain.ErrDueDateRequired
	}

	r := domain.Receivable{
		ID:           s.ids.Next(domain.ReceivableIDPrefix),
		CustomerName: customerName,
		TotalAmount:  totalAmount,
		AmountPaid:   decimal.Zero,
		IssueDate:    s.now(),
		DueDate:      dueDate,
	}.Normalize()

	s.mu.Lock()
	s.receivables = append([]domain.Receivable{r}, s.receivables...)
	s.persist(storage.KeyReceivables, s.receivables)
	s.mu.Unlock()

	zap.L().Info("receivable opened",
		zap.String("id", r.ID),
		zap.String("customer", r.CustomerName),
		zap.String("total", r.TotalAmount.StringFixed(2)),
		zap.Time("due", r.DueDate))
	return r, nil
}

// AddPayment records a payment against a receivable. The amount must be
// positive and at most the remaining balance; anything else is rejected
// and the entry is left unchanged.
func (s *Store) AddPayment(receivableID string, amount decimal.Decimal) (domain.Receivable, error) {
	s.mu.Lock()
	i := s.receivableIndex(receivableID)
	if i < 0 {
		s.mu.Unlock()
		return domain.Receivable{}, errors.Wrapf(domain.ErrNotFound, "receivable %s", receivableID)
	}
	updated, err := s.receivables[i].ApplyPayment(amount)
	if err != nil {
		balance := s.receivables[i].Balance()
		s.mu.Unlock()
		return domain.Receivable{}, errors.Wrapf(err, "amount %s, balance %s", amount, balance)
	}
	s.receivables[i] = updated
	s.persist(storage.KeyReceivables, s.receivables)
	s.mu.Unlock()

	zap.L().Info("receivable payment recorded",
		zap.String("id", updated.ID),
		zap.String("amount", amount.StringFixed(2)),
		zap.String("status", string(updated.Status)))
	s.publish(TopicReceivablePaid, updated, amount)
	return updated, nil
}
