package store

// Event topics published on the optional EventBus.
// Handlers receive the arguments listed next to each topic.
const (
	TopicSaleCommitted  = "sale:committed"  // func(domain.Sale)
	TopicReceivablePaid = "receivable:paid" // func(domain.Receivable, decimal.Decimal)
	TopicJobCompleted   = "job:completed"   // func(domain.MaintenanceJob)
	TopicDataReset      = "data:reset"      // func()
)
