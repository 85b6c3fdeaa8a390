package store

import (
	"strings"

	"github.com/google/btree"
	"github.com/labstack/gommon/random"
	"github.com/pkg/errors"
	"github.com/talkincode/toughpos/internal/domain"
	"github.com/talkincode/toughpos/internal/storage"
	"go.uber.org/zap"
)

type barcodeEntry struct {
	barcode   string
	productID string
}

func barcodeLess(a, b barcodeEntry) bool {
	return a.barcode < b.barcode
}

func (s *Store) rebuildIndex() {
	s.barcodes = btree.NewG[barcodeEntry](16, barcodeLess)
	for _, p := range s.products {
		if prev, ok := s.barcodes.ReplaceOrInsert(barcodeEntry{barcode: p.Barcode, productID: p.ID}); ok {
			zap.L().Warn("duplicate barcode in stored catalog",
				zap.String("barcode", p.Barcode),
				zap.String("product_id", p.ID),
				zap.String("previous_id", prev.productID))
		}
	}
}

func (s *Store) barcodeOwner(code string) (string, bool) {
	e, ok := s.barcodes.Get(barcodeEntry{barcode: code})
	return e.productID, ok
}

// releaseBarcode drops id's claim on code. A stored catalog may hold
// duplicates, so another product carrying code takes the index entry over.
func (s *Store) releaseBarcode(code, id string) {
	if owner, ok := s.barcodeOwner(code); !ok || owner != id {
		return
	}
	s.barcodes.Delete(barcodeEntry{barcode: code})
	for _, p := range s.products {
		if p.ID != id && p.Barcode == code {
			s.barcodes.ReplaceOrInsert(barcodeEntry{barcode: code, productID: p.ID})
			return
		}
	}
}

func (s *Store) productIndex(id string) int {
	for i := range s.products {
		if s.products[i].ID == id {
			return i
		}
	}
	return -1
}

// Products returns a copy of the catalog
func (s *Store) Products() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Product{}, s.products...)
}

// Product looks a product up by id
func (s *Store) Product(id string) (domain.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.productIndex(id); i >= 0 {
		return s.products[i], true
	}
	return domain.Product{}, false
}

// ProductByBarcode looks a product up by exact barcode
func (s *Store) ProductByBarcode(code string) (domain.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.barcodeOwner(code)
	if !ok {
		return domain.Product{}, false
	}
	if i := s.productIndex(id); i >= 0 {
		return s.products[i], true
	}
	return domain.Product{}, false
}

// ProductsByBarcode returns the catalog ordered by barcode
func (s *Store) ProductsByBarcode() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Product, 0, s.barcodes.Len())
	s.barcodes.Ascend(func(e barcodeEntry) bool {
		if i := s.productIndex(e.productID); i >= 0 {
			out = append(out, s.products[i])
		}
		return true
	})
	return out
}

// GenerateBarcode returns a random 12-digit barcode not used by any product
func (s *Store) GenerateBarcode() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for {
		code := random.String(12, random.Numeric)
		if _, taken := s.barcodeOwner(code); !taken {
			return code
		}
	}
}

// AddProduct creates a product with a new id and today's purchase date
func (s *Store) AddProduct(in domain.ProductInput) (domain.Product, error) {
	p := domain.Product{
		ID:                s.ids.Next(domain.ProductIDPrefix),
		Name:              strings.TrimSpace(in.Name),
		Barcode:           strings.TrimSpace(in.Barcode),
		Cost:              in.Cost,
		Price:             in.Price,
		MinimumPrice:      in.MinimumPrice,
		Stock:             in.Stock,
		LowStockThreshold: in.LowStockThreshold,
		Category:          strings.TrimSpace(in.Category),
		Supplier:          strings.TrimSpace(in.Supplier),
		Image:             strings.TrimSpace(in.Image),
		PurchaseDate:      s.today(),
	}
	if p.Image == "" {
		p.Image = domain.PlaceholderImage
	}
	if err := p.Validate(); err != nil {
		return domain.Product{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if owner, taken := s.barcodeOwner(p.Barcode); taken {
		return domain.Product{}, errors.Wrapf(domain.ErrDuplicateBarcode, "%s is used by %s", p.Barcode, owner)
	}
	s.products = append([]domain.Product{p}, s.products...)
	s.barcodes.ReplaceOrInsert(barcodeEntry{barcode: p.Barcode, productID: p.ID})
	s.persist(storage.KeyProducts, s.products)

	zap.L().Info("product created", zap.String("id", p.ID), zap.String("barcode", p.Barcode))
	return p, nil
}

// UpdateProduct merges patch into the product and re-checks its invariants
func (s *Store) UpdateProduct(id string, patch domain.ProductPatch) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.productIndex(id)
	if i < 0 {
		return domain.Product{}, errors.Wrapf(domain.ErrNotFound, "product %s", id)
	}
	old := s.products[i]
	updated := patch.Apply(old)
	updated.ID = old.ID
	if err := updated.Validate(); err != nil {
		return domain.Product{}, err
	}
	if updated.Barcode != old.Barcode {
		if owner, taken := s.barcodeOwner(updated.Barcode); taken && owner != id {
			return domain.Product{}, errors.Wrapf(domain.ErrDuplicateBarcode, "%s is used by %s", updated.Barcode, owner)
		}
		s.releaseBarcode(old.Barcode, id)
		s.barcodes.ReplaceOrInsert(barcodeEntry{barcode: updated.Barcode, productID: id})
	}
	s.products[i] = updated
	s.persist(storage.KeyProducts, s.products)
	return updated, nil
}

// DeleteProduct removes the product. Historical sales keep their own copies.
func (s *Store) DeleteProduct(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.productIndex(id)
	if i < 0 {
		return errors.Wrapf(domain.ErrNotFound, "product %s", id)
	}
	removed := s.products[i]
	s.products = append(s.products[:i:i], s.products[i+1:]...)
	s.releaseBarcode(removed.Barcode, id)
	s.persist(storage.KeyProducts, s.products)

	zap.L().Info("product deleted", zap.String("id", id), zap.String("barcode", removed.Barcode))
	return nil
}
