package app

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/talkincode/toughpos/internal/query"
	"go.uber.org/zap"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func (a *Application) initJob() {
	loc, err := time.LoadLocation(a.appConfig.System.Location)
	if err != nil {
		loc = time.Local
	}
	a.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	_, err = a.sched.AddFunc("@daily", func() {
		a.SchedDailyTask()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	a.sched.Start()
}

// SchedDailyTask runs at midnight: rolls the today's-sales figure over
// and reports receivables that became overdue
func (a *Application) SchedDailyTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	a.RefreshTodaySales()

	now := a.now()
	overdue := query.Overdue(a.store.Receivables(), now)
	for _, r := range overdue {
		zap.L().Warn("receivable overdue",
			zap.String("id", r.ID),
			zap.String("customer", r.CustomerName),
			zap.String("balance", r.Balance().StringFixed(2)),
			zap.Time("due", r.DueDate))
	}
	summary := query.ReceivablesSummary(a.store.Receivables(), now)
	zap.L().Info("daily receivables check",
		zap.Int("overdue", summary.OverdueCount),
		zap.String("outstanding", summary.Outstanding.StringFixed(2)))
}
