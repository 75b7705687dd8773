package service

import (
	"context"
	"time"

	"cloud-kitchen/analytics-svc/internal/domain"
	"cloud-kitchen/analytics-svc/internal/storage"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

type Repository interface {
	DashboardTotals(ctx context.Context, previousFrom, currentFrom time.Time) (*domain.WindowTotals, error)
	OrderTotals(ctx context.Context) (decimal.Decimal, int, error)
	OrdersByStatus(ctx context.Context) (map[string]int, error)
	RevenueByMonth(ctx context.Context, since time.Time) ([]domain.MonthlyRevenue, error)
	CustomerAggregates(ctx context.Context) ([]domain.CustomerAggregate, error)
}

// SnapshotCache stores reports per generation. Invalidate starts a new
// generation, so a snapshot computed before it can never be served after it.
type SnapshotCache interface {
	Generation(ctx context.Context) (int64, error)
	Get(ctx context.Context, report string, generation int64, dst interface{}) (bool, error)
	Set(ctx context.Context, report string, generation int64, v interface{}) error
	Invalidate(ctx context.Context) error
}

type AnalyticsInterface interface {
	Dashboard(ctx context.Context) (*domain.DashboardStats, error)
	Orders(ctx context.Context) (*domain.OrdersAnalytics, error)
	Customers(ctx context.Context) (*domain.CustomerAnalytics, error)
	ExportCustomers(ctx context.Context, format domain.ExportFormat) ([]byte, error)
}

// MessageReader is the part of *kafka.Reader the consumer uses.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type ConsumerInterface interface {
	Start(ctx context.Context)
	ProcessEvent(ctx context.Context, event domain.OrderEvent)
}

var (
	_ Repository         = (*storage.PostgresRepository)(nil)
	_ SnapshotCache      = (*storage.RedisSnapshotCache)(nil)
	_ AnalyticsInterface = (*AnalyticsService)(nil)
	_ MessageReader      = (*kafka.Reader)(nil)
	_ ConsumerInterface  = (*Consumer)(nil)
)
