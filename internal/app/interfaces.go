package app

import (
	"github.com/asaskevich/EventBus"
	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
	"github.com/talkincode/toughpos/config"
	"github.com/talkincode/toughpos/internal/store"
)

// StoreProvider provides the shop data store
type StoreProvider interface {
	Store() *store.Store
}

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// SchedulerProvider provides task scheduling capability
type SchedulerProvider interface {
	Scheduler() *cron.Cron
}

// EventProvider provides the domain event bus
type EventProvider interface {
	Bus() EventBus.Bus
}

// AppContext combines all provider interfaces for full application context
// Handlers should depend on specific providers or this combined interface
type AppContext interface {
	StoreProvider
	ConfigProvider
	SchedulerProvider
	EventProvider

	// TodaySales returns the cached date and total of today's sales
	TodaySales() (string, decimal.Decimal)
	// ResetAll restores the built-in dataset and clears stored data
	ResetAll() error
}
