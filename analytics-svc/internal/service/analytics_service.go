package service

import (
	"context"
	"log/slog"
	"time"

	"cloud-kitchen/analytics-svc/internal/domain"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

type AnalyticsService struct {
	repo  Repository
	cache SnapshotCache
	now   func() time.Time
}

func NewAnalyticsService(repo Repository) *AnalyticsService {
	return &AnalyticsService{repo: repo, now: time.Now}
}

// WithCache serves reports from cache when a snapshot of the current
// generation exists. Only enable it together with the order-event consumer.
func (s *AnalyticsService) WithCache(cache SnapshotCache) *AnalyticsService {
	s.cache = cache
	return s
}

// WithClock replaces the wall clock the reporting windows are measured from.
func (s *AnalyticsService) WithClock(now func() time.Time) *AnalyticsService {
	s.now = now
	return s
}

// Dashboard compares the last 30 days against the 30 days before them.
func (s *AnalyticsService) Dashboard(ctx context.Context) (*domain.DashboardStats, error) {
	return cached(ctx, s.cache, domain.ReportDashboard, s.dashboard)
}

func (s *AnalyticsService) dashboard(ctx context.Context) (*domain.DashboardStats, error) {
	now := s.now().UTC()
	window := domain.WindowDays * 24 * time.Hour
	currentFrom := now.Add(-window)

	totals, err := s.repo.DashboardTotals(ctx, currentFrom.Add(-window), currentFrom)
	if err != nil {
		return nil, err
	}
	return &domain.DashboardStats{
		TotalRevenue:    domain.NewMoney(totals.CurrentRevenue),
		TotalOrders:     totals.CurrentOrders,
		PendingOrders:   totals.PendingOrders,
		CompletedOrders: totals.CompletedOrders,
		RevenueGrowth:   growth(totals.CurrentRevenue, totals.PreviousRevenue),
		OrdersGrowth:    growth(decimal.NewFromInt(int64(totals.CurrentOrders)), decimal.NewFromInt(int64(totals.PreviousOrders))),
	}, nil
}

// growth is the percentage change from previous to current, rounded to two
// places. It is 0 when previous is 0.
func growth(current, previous decimal.Decimal) float64 {
	if previous.IsZero() {
		return 0
	}
	return current.Sub(previous).Div(previous).Mul(hundred).Round(2).InexactFloat64()
}

// Orders reports all-time totals plus revenue for the trailing six months.
func (s *AnalyticsService) Orders(ctx context.Context) (*domain.OrdersAnalytics, error) {
	return cached(ctx, s.cache, domain.ReportOrders, s.orders)
}

func (s *AnalyticsService) orders(ctx context.Context) (*domain.OrdersAnalytics, error) {
	revenue, count, err := s.repo.OrderTotals(ctx)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.repo.OrdersByStatus(ctx)
	if err != nil {
		return nil, err
	}
	months, err := s.repo.RevenueByMonth(ctx, revenueSince(s.now().UTC()))
	if err != nil {
		return nil, err
	}

	ordersByStatus := make(map[string]int, len(domain.OrderStatuses))
	for _, status := range domain.OrderStatuses {
		ordersByStatus[status] = 0
	}
	for status, n := range byStatus {
		ordersByStatus[status] = n
	}

	return &domain.OrdersAnalytics{
		TotalRevenue:      domain.NewMoney(revenue),
		TotalOrders:       count,
		AverageOrderValue: average(revenue, count),
		OrdersByStatus:    ordersByStatus,
		RevenueByMonth:    months,
	}, nil
}

// revenueSince is the first instant of the month RevenueMonths-1 months
// before the one containing now.
func revenueSince(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month()-(domain.RevenueMonths-1), 1, 0, 0, 0, 0, time.UTC)
}

func average(total decimal.Decimal, count int) domain.Money {
	if count == 0 {
		return domain.NewMoney(decimal.Zero)
	}
	return domain.NewMoney(total.Div(decimal.NewFromInt(int64(count))))
}

// Customers derives one insight per normalized phone number.
func (s *AnalyticsService) Customers(ctx context.Context) (*domain.CustomerAnalytics, error) {
	return cached(ctx, s.cache, domain.ReportCustomers, s.customers)
}

func (s *AnalyticsService) customers(ctx context.Context) (*domain.CustomerAnalytics, error) {
	aggregates, err := s.repo.CustomerAggregates(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	result := &domain.CustomerAnalytics{
		TotalCustomers: len(aggregates),
		Customers:      make([]domain.CustomerInsight, 0, len(aggregates)),
	}
	for _, a := range aggregates {
		days := int(now.Sub(a.LastOrderDate) / (24 * time.Hour))
		if days < 0 {
			days = 0
		}
		insight := domain.CustomerInsight{
			CustomerPhone:      a.Phone,
			CustomerName:       a.Name,
			CustomerEmail:      a.Email,
			TotalOrders:        a.TotalOrders,
			TotalSpent:         domain.NewMoney(a.TotalSpent),
			LastOrderDate:      a.LastOrderDate.UTC(),
			DaysSinceLastOrder: days,
			AverageOrderValue:  average(a.TotalSpent, a.TotalOrders),
			IsInactive:         days >= domain.InactiveAfterDays,
		}
		if insight.IsInactive {
			result.InactiveCustomers++
		} else {
			result.ActiveCustomers++
		}
		result.Customers = append(result.Customers, insight)
	}
	return result, nil
}

// cached returns the stored snapshot for report when there is one, otherwise
// computes it and stores the result under the generation read up front.
// Cache failures only cost a recompute.
func cached[T any](ctx context.Context, cache SnapshotCache, report string, compute func(context.Context) (*T, error)) (*T, error) {
	if cache == nil {
		return compute(ctx)
	}
	generation, err := cache.Generation(ctx)
	if err != nil {
		slog.WarnContext(ctx, "analytics cache read failed", "report", report, "error", err)
		return compute(ctx)
	}

	var snapshot T
	hit, err := cache.Get(ctx, report, generation, &snapshot)
	if err != nil {
		slog.WarnContext(ctx, "analytics cache read failed", "report", report, "error", err)
	} else if hit {
		return &snapshot, nil
	}

	v, err := compute(ctx)
	if err != nil {
		return nil, err
	}
	if err := cache.Set(ctx, report, generation, v); err != nil {
		slog.WarnContext(ctx, "analytics cache write failed", "report", report, "error", err)
	}
	return v, nil
}
