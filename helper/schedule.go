package helper

import (
	"context"
	"time"

	"restaurant_ordering/model"
	"restaurant_ordering/ordering"

	"github.com/go-co-op/gocron/v2"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// StalePendingAge is how long an unpaid Pending order may wait before it
// is reported.
const StalePendingAge = 30 * time.Minute

// Schedulers runs the background reports.
type Schedulers struct {
	svc    *ordering.Service
	logger *zap.Logger
	daily  gocron.Scheduler
	cron   *cron.Cron
}

func StartSchedulers(svc *ordering.Service, loc *time.Location, logger *zap.Logger) (*Schedulers, error) {
	s := &Schedulers{svc: svc, logger: logger}

	daily, err := gocron.NewScheduler(gocron.WithLocation(loc))
	if err != nil {
		return nil, err
	}
	_, err = daily.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(23, 55, 0))),
		gocron.NewTask(s.DailySummary),
	)
	if err != nil {
		return nil, err
	}
	s.daily = daily

	s.cron = cron.New(cron.WithLocation(loc), cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	if _, err := s.cron.AddFunc("*/10 * * * *", s.ReportStalePending); err != nil {
		daily.Shutdown()
		return nil, err
	}

	daily.Start()
	s.cron.Start()
	logger.Info("schedulers started", zap.String("daily_summary", "23:55"), zap.String("stale_pending", "every 10m"))
	return s, nil
}

func (s *Schedulers) DailySummary() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	summary, _, err := s.svc.Dashboard(ctx, model.OrderFilter{})
	if err != nil {
		s.logger.Error("daily summary failed", zap.Error(err))
		return
	}
	s.logger.Info("daily summary",
		zap.Int("total_orders", summary.TotalOrders),
		zap.Int("pending_orders", summary.PendingOrders),
		zap.String("total_revenue", summary.TotalRevenue.StringFixed(2)),
		zap.Int("today_reservations", summary.TodayReservations))
}

func (s *Schedulers) ReportStalePending() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	orders, err := s.svc.ListOrders(ctx, ordering.AllOrders(), model.OrderFilter{
		Status:        model.OrderPending,
		PaymentStatus: ordering.PaymentUnconfirmed,
	})
	if err != nil {
		s.logger.Error("stale pending scan failed", zap.Error(err))
		return
	}
	stale := StalePending(orders, s.svc.Now(), StalePendingAge)
	for _, o := range stale {
		s.logger.Warn("order awaiting payment",
			zap.String("order_no", o.OrderNo),
			zap.Uint("order_id", o.ID),
			zap.Duration("waiting", s.svc.Now().Sub(o.OrderedAt).Round(time.Minute)))
	}
}

// StalePending keeps the orders placed at least age before now.
func StalePending(orders []model.Order, now time.Time, age time.Duration) []model.Order {
	var out []model.Order
	for _, o := range orders {
		if o.Status == model.OrderPending && !o.PaymentConfirmed && now.Sub(o.OrderedAt) >= age {
			out = append(out, o)
		}
	}
	return out
}

func (s *Schedulers) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
	if s.daily != nil {
		if err := s.daily.Shutdown(); err != nil {
			s.logger.Warn("daily scheduler shutdown", zap.Error(err))
		}
	}
	s.logger.Info("schedulers stopped")
}
