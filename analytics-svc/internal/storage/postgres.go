package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"cloud-kitchen/analytics-svc/internal/domain"

	"github.com/shopspring/decimal"
)

// PostgresRepository reads the orders table owned by kitchen-svc. It never
// writes.
type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

// DashboardTotals sums the current window (everything since currentFrom) and
// the previous window [previousFrom, currentFrom) in one pass. The current
// window has no upper bound so rows stamped by a clock ahead of ours count.
func (r *PostgresRepository) DashboardTotals(ctx context.Context, previousFrom, currentFrom time.Time) (*domain.WindowTotals, error) {
	var t domain.WindowTotals
	err := r.DB.QueryRowContext(ctx, `
		SELECT
			COALESCE(SUM(total_amount) FILTER (WHERE created_at >= $2), 0),
			COUNT(*) FILTER (WHERE created_at >= $2),
			COUNT(*) FILTER (WHERE created_at >= $2 AND status IN ('pending', 'confirmed')),
			COUNT(*) FILTER (WHERE created_at >= $2 AND status = 'delivered'),
			COALESCE(SUM(total_amount) FILTER (WHERE created_at < $2), 0),
			COUNT(*) FILTER (WHERE created_at < $2)
		FROM orders
		WHERE created_at >= $1
	`, previousFrom, currentFrom).Scan(
		&t.CurrentRevenue, &t.CurrentOrders, &t.PendingOrders, &t.CompletedOrders,
		&t.PreviousRevenue, &t.PreviousOrders,
	)
	if err != nil {
		return nil, fmt.Errorf("query dashboard totals: %w", err)
	}
	return &t, nil
}

func (r *PostgresRepository) OrderTotals(ctx context.Context) (decimal.Decimal, int, error) {
	var (
		revenue decimal.Decimal
		count   int
	)
	err := r.DB.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(total_amount), 0), COUNT(*) FROM orders",
	).Scan(&revenue, &count)
	if err != nil {
		return decimal.Zero, 0, fmt.Errorf("query order totals: %w", err)
	}
	return revenue, count, nil
}

func (r *PostgresRepository) OrdersByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT status, COUNT(*) FROM orders GROUP BY status")
	if err != nil {
		return nil, fmt.Errorf("query orders by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			status string
			count  int
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

// RevenueByMonth returns one entry per month that has orders since the given
// instant, oldest first. Months without orders are absent.
func (r *PostgresRepository) RevenueByMonth(ctx context.Context, since time.Time) ([]domain.MonthlyRevenue, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT TO_CHAR(created_at, 'YYYY-MM') AS month, COALESCE(SUM(total_amount), 0)
		FROM orders
		WHERE created_at >= $1
		GROUP BY month
		ORDER BY month
	`, since)
	if err != nil {
		return nil, fmt.Errorf("query revenue by month: %w", err)
	}
	defer rows.Close()

	months := []domain.MonthlyRevenue{}
	for rows.Next() {
		var (
			m       domain.MonthlyRevenue
			revenue decimal.Decimal
		)
		if err := rows.Scan(&m.Month, &revenue); err != nil {
			return nil, err
		}
		m.Revenue = domain.NewMoney(revenue)
		months = append(months, m)
	}
	return months, rows.Err()
}

// CustomerAggregates groups orders by normalized phone, most recent
// customer first.
func (r *PostgresRepository) CustomerAggregates(ctx context.Context) ([]domain.CustomerAggregate, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT
			customer_phone_normalized,
			(ARRAY_AGG(customer_name ORDER BY created_at DESC, id DESC))[1],
			(ARRAY_AGG(customer_email ORDER BY created_at DESC, id DESC) FILTER (WHERE customer_email IS NOT NULL))[1],
			COUNT(*),
			COALESCE(SUM(total_amount), 0),
			MAX(created_at)
		FROM orders
		GROUP BY customer_phone_normalized
		ORDER BY MAX(created_at) DESC, customer_phone_normalized
	`)
	if err != nil {
		return nil, fmt.Errorf("query customers: %w", err)
	}
	defer rows.Close()

	var customers []domain.CustomerAggregate
	for rows.Next() {
		var (
			c     domain.CustomerAggregate
			email sql.NullString
		)
		if err := rows.Scan(&c.Phone, &c.Name, &email, &c.TotalOrders, &c.TotalSpent, &c.LastOrderDate); err != nil {
			return nil, err
		}
		if email.Valid {
			c.Email = &email.String
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}
