package app

import (
	"os"
	"sync"
	"time"
	_ "time/tzdata"

	"github.com/asaskevich/EventBus"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
	"github.com/talkincode/toughpos/config"
	"github.com/talkincode/toughpos/internal/domain"
	"github.com/talkincode/toughpos/internal/query"
	"github.com/talkincode/toughpos/internal/storage"
	"github.com/talkincode/toughpos/internal/store"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Application struct {
	appConfig *config.AppConfig
	backend   storage.Backend
	store     *store.Store
	bus       EventBus.Bus
	sched     *cron.Cron
	now       func() time.Time

	todayMu    sync.RWMutex
	todayDate  string
	todayTotal decimal.Decimal
}

// Ensure Application implements all interfaces
var (
	_ StoreProvider     = (*Application)(nil)
	_ ConfigProvider    = (*Application)(nil)
	_ SchedulerProvider = (*Application)(nil)
	_ EventProvider     = (*Application)(nil)
	_ AppContext        = (*Application)(nil)
)

func NewApplication(appConfig *config.AppConfig) *Application {
	return &Application{appConfig: appConfig, now: time.Now, todayTotal: decimal.Zero}
}

func (a *Application) Config() *config.AppConfig {
	return a.appConfig
}

func (a *Application) Store() *store.Store {
	return a.store
}

func (a *Application) Bus() EventBus.Bus {
	return a.bus
}

// Scheduler returns the cron scheduler
func (a *Application) Scheduler() *cron.Cron {
	return a.sched
}

// Init sets the time zone and logger, opens the configured storage backend
// and starts the daily jobs.
func (a *Application) Init(cfg *config.AppConfig) error {
	a.appConfig = cfg
	loc, err := time.LoadLocation(cfg.System.Location)
	if err != nil {
		zap.S().Error("timezone config error")
	} else {
		time.Local = loc
	}

	initLogger(cfg)

	backend, err := storage.Open(cfg.Storage, cfg.System.Workdir)
	if err != nil {
		return errors.Wrap(err, "open storage")
	}
	zap.S().Infof("Storage opened, type: %s", cfg.Storage.Type)

	if err := a.Open(backend); err != nil {
		_ = backend.Close()
		return err
	}
	a.initJob()
	return nil
}

func initLogger(cfg *config.AppConfig) {
	var zapConfig zap.Config
	if cfg.Logger.Mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}
	zapConfig.OutputPaths = []string{"stdout"}

	var logger *zap.Logger
	if cfg.Logger.FileEnable {
		lumberJackLogger := &lumberjack.Logger{
			Filename:   cfg.Logger.Filename,
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     7,
			Compress:   false,
		}

		core := zapcore.NewTee(
			zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(lumberJackLogger),
				zapConfig.Level,
			),
			zapcore.NewCore(
				zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
				zapcore.AddSync(os.Stdout),
				zapConfig.Level,
			),
		)
		logger = zap.New(core, zap.AddCaller())
	} else {
		var err error
		logger, err = zapConfig.Build(zap.AddCaller())
		if err != nil {
			panic(err)
		}
	}

	zap.ReplaceGlobals(logger)
}

// Open builds the store over backend and subscribes the application's
// event handlers. Tests call it directly with a memory backend.
func (a *Application) Open(backend storage.Backend) error {
	defaults, err := DefaultDataset()
	if err != nil {
		return err
	}
	ids, err := domain.NewIDGenerator(a.appConfig.System.NodeID)
	if err != nil {
		return errors.Wrap(err, "snowflake node")
	}

	a.bus = EventBus.New()
	s, err := store.New(backend,
		store.WithDefaults(defaults),
		store.WithEventBus(a.bus),
		store.WithIDGenerator(ids),
		store.WithWalkInCustomer(a.appConfig.Shop.WalkInCustomer),
		store.WithClock(func() time.Time { return a.now() }),
	)
	if err != nil {
		return err
	}
	a.backend = backend
	a.store = s
	a.subscribe()
	a.RefreshTodaySales()
	return nil
}

func (a *Application) subscribe() {
	handlers := map[string]interface{}{
		store.TopicSaleCommitted: a.onSaleCommitted,
		store.TopicDataReset:     a.RefreshTodaySales,
		store.TopicJobCompleted: func(job domain.MaintenanceJob) {
			zap.L().Info("maintenance job ready",
				zap.String("id", job.ID),
				zap.String("customer", job.CustomerName),
				zap.String("product", job.ProductName))
		},
		store.TopicReceivablePaid: func(r domain.Receivable, amount decimal.Decimal) {
			if r.Status == domain.ReceivablePaid {
				zap.L().Info("receivable settled", zap.String("id", r.ID), zap.String("customer", r.CustomerName))
			}
		},
	}
	for topic, fn := range handlers {
		if err := a.bus.Subscribe(topic, fn); err != nil {
			zap.L().Error("event subscribe failed", zap.String("topic", topic), zap.Error(err))
		}
	}
}

func (a *Application) onSaleCommitted(sale domain.Sale) {
	a.todayMu.Lock()
	defer a.todayMu.Unlock()
	now := a.now()
	if a.todayDate != domain.FormatDate(now) {
		a.todayDate = domain.FormatDate(now)
		a.todayTotal = query.TodaysSalesTotal(a.store.Sales(), now)
		return
	}
	if domain.FormatDate(sale.Date.In(now.Location())) == a.todayDate {
		a.todayTotal = a.todayTotal.Add(sale.Total)
	}
}

// RefreshTodaySales recomputes the cached total of today's sales
func (a *Application) RefreshTodaySales() {
	now := a.now()
	total := query.TodaysSalesTotal(a.store.Sales(), now)
	a.todayMu.Lock()
	a.todayDate = domain.FormatDate(now)
	a.todayTotal = total
	a.todayMu.Unlock()
}

// TodaySales cached total of today's sales and the day it belongs to
func (a *Application) TodaySales() (string, decimal.Decimal) {
	a.todayMu.RLock()
	date, total := a.todayDate, a.todayTotal
	a.todayMu.RUnlock()
	if date != domain.FormatDate(a.now()) {
		a.RefreshTodaySales()
		a.todayMu.RLock()
		defer a.todayMu.RUnlock()
		return a.todayDate, a.todayTotal
	}
	return date, total
}

// ResetAll wipes the stored shop data and restores the built-in defaults
func (a *Application) ResetAll() error {
	return a.store.ResetAll()
}

// Release releases application resources
func (a *Application) Release() {
	if a.sched != nil {
		a.sched.Stop()
	}
	if a.backend != nil {
		if err := a.backend.Close(); err != nil {
			zap.L().Error("close storage", zap.Error(err))
		}
	}
	_ = zap.L().Sync()
}
