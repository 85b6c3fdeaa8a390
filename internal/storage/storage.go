// Package storage persists whole collections as JSON blobs under fixed keys.
package storage

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/talkincode/toughpos/config"
)

// Collection keys
const (
	KeyProducts        = "app_products"
	KeySales           = "app_sales"
	KeyReceivables     = "app_receivables"
	KeyMaintenanceJobs = "app_maintenance_jobs"
)

// AllKeys every key the application writes
var AllKeys = []string{KeyProducts, KeySales, KeyReceivables, KeyMaintenanceJobs}

// ErrKeyNotFound is returned by Load when nothing is stored under the key
var ErrKeyNotFound = errors.New("storage: key not found")

// Backend is a durable key-value store holding one blob per key.
// Save replaces the whole value; there are no partial writes.
type Backend interface {
	Load(key string) ([]byte, error)
	Save(key string, data []byte) error
	Delete(keys ...string) error
	Close() error
}

// Open creates the backend selected by cfg.Type
func Open(cfg config.StorageConfig, workdir string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Type)) {
	case "", "bolt", "bbolt":
		return OpenBolt(resolvePath(cfg.Path, workdir, "toughpos.db"))
	case "sqlite", "sqlite3":
		return OpenGorm("sqlite", resolvePath(cfg.Path, workdir, "toughpos.sqlite"), cfg.Debug)
	case "postgres", "postgresql":
		if cfg.DSN == "" {
			return nil, errors.New("storage: postgres requires a dsn")
		}
		return OpenGorm("postgres", cfg.DSN, cfg.Debug)
	case "memory":
		return NewMemory(), nil
	default:
		return nil, errors.Errorf("storage: unsupported type %q", cfg.Type)
	}
}

func resolvePath(path, workdir, fallback string) string {
	if path == "" {
		path = fallback
	}
	if filepath.IsAbs(path) || workdir == "" {
		return path
	}
	return filepath.Join(workdir, "data", path)
}
