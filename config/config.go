package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// SysConfig system settings
type SysConfig struct {
	Appid    string `yaml:"appid"`
	Location string `yaml:"location"` // time zone used for "today" and daily jobs
	Workdir  string `yaml:"workdir"`
	NodeID   int64  `yaml:"node_id"` // snowflake node for record ids
	Debug    bool   `yaml:"debug"`
}

// WebConfig admin API listener
type WebConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// StorageConfig durable key-value storage
type StorageConfig struct {
	Type  string `yaml:"type"` // bolt, sqlite, postgres, memory
	Path  string `yaml:"path"` // file name for bolt/sqlite, relative to workdir/data
	DSN   string `yaml:"dsn"`  // postgres connection string
	Debug bool   `yaml:"debug"`
}

// LogConfig logging
type LogConfig struct {
	Mode       string `yaml:"mode"` // development or production
	FileEnable bool   `yaml:"file_enable"`
	Filename   string `yaml:"filename"`
}

// ShopConfig shop-level defaults
type ShopConfig struct {
	WalkInCustomer string `yaml:"walk_in_customer"`
	Currency       string `yaml:"currency"`
}

// AppConfig application configuration
type AppConfig struct {
	System  SysConfig     `yaml:"system"`
	Web     WebConfig     `yaml:"web"`
	Storage StorageConfig `yaml:"storage"`
	Logger  LogConfig     `yaml:"logger"`
	Shop    ShopConfig    `yaml:"shop"`
}

// GetLogDir directory for rotated log files
func (c *AppConfig) GetLogDir() string {
	return filepath.Join(c.System.Workdir, "logs")
}

// GetDataDir directory for storage files
func (c *AppConfig) GetDataDir() string {
	return filepath.Join(c.System.Workdir, "data")
}

// DefaultAppConfig configuration used when no file is given
func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		System: SysConfig{
			Appid:    "ToughPOS",
			Location: "Local",
			Workdir:  "/var/toughpos",
			NodeID:   1,
		},
		Web: WebConfig{
			Host: "0.0.0.0",
			Port: 1816,
		},
		Storage: StorageConfig{
			Type: "bolt",
			Path: "toughpos.db",
		},
		Logger: LogConfig{
			Mode:       "development",
			FileEnable: false,
			Filename:   "/var/toughpos/logs/toughpos.log",
		},
		Shop: ShopConfig{
			WalkInCustomer: "Walk-in Customer",
			Currency:       "JOD",
		},
	}
}

// LoadConfig reads the YAML file at path (when it exists) over the defaults,
// then applies TOUGHPOS_* environment overrides.
func LoadConfig(path string) (*AppConfig, error) {
	cfg := DefaultAppConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, errors.Wrapf(err, "read config %s", path)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, errors.Wrapf(err, "parse config %s", path)
			}
		}
	}

	setEnvValue("TOUGHPOS_WORKDIR", &cfg.System.Workdir)
	setEnvValue("TOUGHPOS_LOCATION", &cfg.System.Location)
	setEnvInt64Value("TOUGHPOS_NODE_ID", &cfg.System.NodeID)
	setEnvBoolValue("TOUGHPOS_DEBUG", &cfg.System.Debug)
	setEnvValue("TOUGHPOS_WEB_HOST", &cfg.Web.Host)
	setEnvIntValue("TOUGHPOS_WEB_PORT", &cfg.Web.Port)
	setEnvValue("TOUGHPOS_STORAGE_TYPE", &cfg.Storage.Type)
	setEnvValue("TOUGHPOS_STORAGE_PATH", &cfg.Storage.Path)
	setEnvValue("TOUGHPOS_STORAGE_DSN", &cfg.Storage.DSN)
	setEnvValue("TOUGHPOS_LOGGER_MODE", &cfg.Logger.Mode)
	setEnvBoolValue("TOUGHPOS_LOGGER_FILE_ENABLE", &cfg.Logger.FileEnable)
	setEnvValue("TOUGHPOS_WALK_IN_CUSTOMER", &cfg.Shop.WalkInCustomer)
	return cfg, nil
}

func setEnvValue(name string, val *string) {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		*val = v
	}
}

func setEnvBoolValue(name string, val *bool) {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		*val = cast.ToBool(v)
	}
}

func setEnvIntValue(name string, val *int) {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		*val = cast.ToInt(v)
	}
}

func setEnvInt64Value(name string, val *int64) {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		*val = cast.ToInt64(v)
	}
}
