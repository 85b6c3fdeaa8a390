package storage

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/talkincode/toughpos/internal/domain"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// GormBackend stores blobs in the kv_blob table of a SQL database
type GormBackend struct {
	db *gorm.DB
}

// OpenGorm connects to sqlite (dsn is a file path) or postgres and migrates kv_blob
func OpenGorm(dialect, dsn string, debug bool) (*GormBackend, error) {
	var dialector gorm.Dialector
	switch dialect {
	case "sqlite":
		if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
			return nil, errors.Wrap(err, "storage: create data dir")
		}
		dialector = sqlite.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		return nil, errors.Errorf("storage: unsupported dialect %q", dialect)
	}

	logLevel := logger.Silent
	if debug {
		logLevel = logger.Info
	}
	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logLevel)})
	if err != nil {
		return nil, errors.Wrapf(err, "storage: open %s", dialect)
	}
	if err := db.AutoMigrate(domain.Tables...); err != nil {
		return nil, errors.Wrap(err, "storage: migrate")
	}
	return NewGormBackend(db), nil
}

// NewGormBackend wraps an existing, migrated connection
func NewGormBackend(db *gorm.DB) *GormBackend {
	return &GormBackend{db: db}
}

func (g *GormBackend) Load(key string) ([]byte, error) {
	var blob domain.KVBlob
	err := g.db.Where("blob_key = ?", key).First(&blob).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "storage: load %s", key)
	}
	return blob.Value, nil
}

func (g *GormBackend) Save(key string, data []byte) error {
	blob := domain.KVBlob{BlobKey: key, Value: data, UpdatedAt: time.Now()}
	err := g.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "blob_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&blob).Error
	return errors.Wrapf(err, "storage: save %s", key)
}

func (g *GormBackend) Delete(keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	err := g.db.Where("blob_key IN ?", keys).Delete(&domain.KVBlob{}).Error
	return errors.Wrap(err, "storage: delete")
}

func (g *GormBackend) Close() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
