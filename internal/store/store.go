// Package store owns the four shop collections and keeps them consistent.
// Every mutation updates memory first and then writes the affected
// collections through to the storage backend.
package store

import (
	"sync"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/google/btree"
	"github.com/pkg/errors"
	"github.com/talkincode/toughpos/internal/domain"
	"github.com/talkincode/toughpos/internal/storage"
	"go.uber.org/zap"
)

// Dataset a full copy of the four collections
type Dataset struct {
	Products        []domain.Product        `json:"products"`
	Sales           []domain.Sale           `json:"sales"`
	Receivables     []domain.Receivable     `json:"receivables"`
	MaintenanceJobs []domain.MaintenanceJob `json:"maintenance_jobs"`
}

// Clone deep-copies the dataset
func (d Dataset) Clone() Dataset {
	out := Dataset{
		Products:        append([]domain.Product{}, d.Products...),
		Sales:           make([]domain.Sale, len(d.Sales)),
		Receivables:     append([]domain.Receivable{}, d.Receivables...),
		MaintenanceJobs: append([]domain.MaintenanceJob{}, d.MaintenanceJobs...),
	}
	for i, sale := range d.Sales {
		out.Sales[i] = sale.Clone()
	}
	return out
}

// Store is constructed once at startup and handed to every consumer
type Store struct {
	mu       sync.RWMutex
	backend  storage.Backend
	ids      *domain.IDGenerator
	bus      EventBus.Bus
	now      func() time.Time
	walkIn   string
	defaults Dataset

	products    []domain.Product
	barcodes    *btree.BTreeG[barcodeEntry]
	sales       []domain.Sale
	receivables []domain.Receivable
	jobs        []domain.MaintenanceJob
}

// Option configures a Store
type Option func(*Store)

// WithDefaults sets the built-in dataset used on first start, on corrupt data and on reset
func WithDefaults(d Dataset) Option {
	return func(s *Store) { s.defaults = d.Clone() }
}

// WithClock overrides time.Now
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithEventBus publishes domain events on bus
func WithEventBus(bus EventBus.Bus) Option {
	return func(s *Store) { s.bus = bus }
}

// WithIDGenerator overrides the default snowflake node 1 generator
func WithIDGenerator(g *domain.IDGenerator) Option {
	return func(s *Store) { s.ids = g }
}

// WithWalkInCustomer sets the customer name used for anonymous sales
func WithWalkInCustomer(name string) Option {
	return func(s *Store) {
		if name != "" {
			s.walkIn = name
		}
	}
}

// New builds a store and loads every collection from backend
func New(backend storage.Backend, opts ...Option) (*Store, error) {
	if backend == nil {
		return nil, errors.New("store: nil storage backend")
	}
	s := &Store{
		backend: backend,
		now:     time.Now,
		walkIn:  domain.WalkInCustomer,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.ids == nil {
		ids, err := domain.NewIDGenerator(1)
		if err != nil {
			return nil, errors.Wrap(err, "store: id generator")
		}
		s.ids = ids
	}
	s.load()
	return s, nil
}

func (s *Store) load() {
	d := s.defaults.Clone()
	s.products = loadCollection(s.backend, storage.KeyProducts, d.Products)
	s.sales = loadCollection(s.backend, storage.KeySales, d.Sales)
	s.receivables = loadCollection(s.backend, storage.KeyReceivables, d.Receivables)
	s.jobs = loadCollection(s.backend, storage.KeyMaintenanceJobs, d.MaintenanceJobs)
	for i := range s.receivables {
		s.receivables[i] = s.receivables[i].Normalize()
	}
	s.rebuildIndex()

	zap.L().Info("store loaded",
		zap.Int("products", len(s.products)),
		zap.Int("sales", len(s.sales)),
		zap.Int("receivables", len(s.receivables)),
		zap.Int("maintenance_jobs", len(s.jobs)))
}

func loadCollection[T any](backend storage.Backend, key string, fallback []T) []T {
	data, err := backend.Load(key)
	if errors.Is(err, storage.ErrKeyNotFound) {
		zap.L().Info("no stored collection, using defaults", zap.String("key", key))
		return fallback
	}
	if err != nil {
		zap.L().Warn("failed to read stored collection, using defaults", zap.String("key", key), zap.Error(err))
		return fallback
	}
	var items []T
	if err := storage.Unmarshal(data, &items); err != nil {
		zap.L().Warn("stored collection is corrupt, using defaults", zap.String("key", key), zap.Error(err))
		return fallback
	}
	if items == nil {
		items = []T{}
	}
	return items
}

// persist writes a whole collection. Failures are logged and swallowed;
// memory stays the source of truth for the rest of the session.
func (s *Store) persist(key string, v interface{}) {
	data, err := storage.Marshal(v)
	if err == nil {
		err = s.backend.Save(key, data)
	}
	if err != nil {
		zap.L().Error("failed to persist collection", zap.String("key", key), zap.Error(err))
	}
}

func (s *Store) publish(topic string, args ...interface{}) {
	if s.bus != nil {
		s.bus.Publish(topic, args...)
	}
}

func (s *Store) today() string {
	return domain.FormatDate(s.now())
}

// Now the store clock
func (s *Store) Now() time.Time {
	return s.now()
}

// WalkInCustomer the name recorded for anonymous sales
func (s *Store) WalkInCustomer() string {
	return s.walkIn
}

// Snapshot copies all four collections
func (s *Store) Snapshot() Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Dataset{
		Products:        s.products,
		Sales:           s.sales,
		Receivables:     s.receivables,
		MaintenanceJobs: s.jobs,
	}.Clone()
}

// ResetAll deletes every stored key and restores the built-in defaults.
// Memory is reset even when the delete fails; the error is returned.
func (s *Store) ResetAll() error {
	s.mu.Lock()
	err := s.backend.Delete(storage.AllKeys...)
	if err != nil {
		zap.L().Error("failed to clear stored collections", zap.Error(err))
	}
	d := s.defaults.Clone()
	s.products = d.Products
	s.sales = d.Sales
	s.receivables = d.Receivables
	s.jobs = d.MaintenanceJobs
	s.rebuildIndex()
	s.mu.Unlock()

	zap.L().Warn("all shop data reset to defaults")
	s.publish(TopicDataReset)
	return errors.Wrap(err, "store: reset")
}
