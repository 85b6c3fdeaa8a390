package store

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/talkincode/toughpos/internal/domain"
	"github.com/talkincode/toughpos/internal/storage"
	"go.uber.org/zap"
)

// Sales returns committed sales, newest first
func (s *Store) Sales() []domain.Sale {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Sale, len(s.sales))
	for i, sale := range s.sales {
		out[i] = sale.Clone()
	}
	return out
}

// Sale looks a sale up by id
func (s *Store) Sale(id string) (domain.Sale, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sale := range s.sales {
		if sale.ID == id {
			return sale.Clone(), true
		}
	}
	return domain.Sale{}, false
}

// AddSale commits the cart lines as a sale and deducts stock.
//
// The whole sale is rejected when a line asks for more units than are on
// hand (lines for the same product are summed), so stock never goes
// negative. A receivable sale does not open the Receivable itself; the
// caller issues AddReceivable as part of the same checkout.
func (s *Store) AddSale(lines []domain.CartLine, total decimal.Decimal, method domain.PaymentMethod, customerName string) (domain.Sale, error) {
	if !method.Valid() {
		return domain.Sale{}, errors.Wrapf(domain.ErrInvalidPaymentMethod, "%q", method)
	}
	if len(lines) == 0 {
		return domain.Sale{}, domain.ErrEmptyCart
	}
	if total.IsNegative() {
		return domain.Sale{}, domain.ErrNegativeAmount
	}
	customerName = strings.TrimSpace(customerName)
	if customerName == "" {
		customerName = s.walkIn
	}

	s.mu.Lock()
	sale, err := s.commitSale(lines, total, method, customerName)
	s.mu.Unlock()
	if err != nil {
		return domain.Sale{}, err
	}

	zap.L().Info("sale committed",
		zap.String("id", sale.ID),
		zap.String("customer", sale.CustomerName),
		zap.String("method", string(sale.PaymentMethod)),
		zap.String("total", sale.Total.StringFixed(2)))
	s.publish(TopicSaleCommitted, sale.Clone())
	return sale, nil
}

func (s *Store) commitSale(lines []domain.CartLine, total decimal.Decimal, method domain.PaymentMethod, customerName string) (domain.Sale, error) {
	requested := make(map[string]int)
	var order []string
	for _, line := range lines {
		if line.Quantity <= 0 {
			return domain.Sale{}, errors.Wrapf(domain.ErrInvalidQuantity, "product %s", line.Product.ID)
		}
		if _, seen := requested[line.Product.ID]; !seen {
			order = append(order, line.Product.ID)
		}
		requested[line.Product.ID] += line.Quantity
	}

	indexes := make(map[string]int, len(order))
	for _, id := range order {
		i := s.productIndex(id)
		if i < 0 {
			return domain.Sale{}, errors.Wrapf(domain.ErrNotFound, "product %s", id)
		}
		p := s.products[i]
		if p.Stock <= 0 {
			return domain.Sale{}, errors.Wrapf(domain.ErrOutOfStock, "%s", p.Name)
		}
		if requested[id] > p.Stock {
			return domain.Sale{}, errors.Wrapf(domain.ErrInsufficientStock,
				"%s: requested %d, available %d", p.Name, requested[id], p.Stock)
		}
		indexes[id] = i
	}

	sale := domain.Sale{
		ID:            s.ids.Next(domain.SaleIDPrefix),
		CustomerName:  customerName,
		Items:         append([]domain.CartLine{}, lines...),
		Subtotal:      total,
		Tax:           decimal.Zero,
		Total:         total,
		Date:          s.now(),
		PaymentMethod: method,
	}
	for _, id := range order {
		s.products[indexes[id]].Stock -= requested[id]
	}
	s.sales = append([]domain.Sale{sale}, s.sales...)

	s.persist(storage.KeySales, s.sales)
	s.persist(storage.KeyProducts, s.products)
	return sale.Clone(), nil
}
