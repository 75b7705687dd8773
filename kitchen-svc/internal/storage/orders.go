package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"cloud-kitchen/kitchen-svc/internal/domain"

	"github.com/lib/pq"
)

const orderColumns = `id, customer_name, customer_phone, customer_email, customer_address,
	total_amount, status, payment_status, cookie_consent, created_at, updated_at`

func scanOrder(row rowScanner) (*domain.Order, error) {
	var o domain.Order
	if err := row.Scan(&o.ID, &o.CustomerName, &o.CustomerPhone, &o.CustomerEmail, &o.CustomerAddress,
		&o.TotalAmount, &o.Status, &o.PaymentStatus, &o.CookieConsent, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	return &o, nil
}

// CreateOrder inserts the order row and all of its items in one transaction.
// IDs and timestamps are written back into order and items.
func (r *PostgresRepository) CreateOrder(ctx context.Context, order *domain.Order, items []domain.OrderItem) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin order tx: %w", err)
	}
	defer tx.Rollback()

	if err := tx.QueryRowContext(ctx, `
		INSERT INTO orders (customer_name, customer_phone, customer_phone_normalized, customer_email,
			customer_address, total_amount, status, payment_status, cookie_consent)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at`,
		order.CustomerName, order.CustomerPhone, order.CustomerKey, order.CustomerEmail,
		order.CustomerAddress, order.TotalAmount, order.Status, order.PaymentStatus, order.CookieConsent,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for i := range items {
		items[i].OrderID = order.ID
		if err := tx.QueryRowContext(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity, price_at_time, selected_size)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id`,
			order.ID, items[i].ProductID, items[i].Quantity, items[i].PriceAtTime, items[i].SelectedSize,
		).Scan(&items[i].ID); err != nil {
			return fmt.Errorf("insert order item %d: %w", items[i].ProductID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit order: %w", err)
	}
	return nil
}

// FindOrder returns the order row without its items.
func (r *PostgresRepository) FindOrder(ctx context.Context, id int) (*domain.Order, error) {
	order, err := scanOrder(r.DB.QueryRowContext(ctx,
		"SELECT "+orderColumns+" FROM orders WHERE id = $1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get order %d: %w", id, err)
	}
	return order, nil
}

func (r *PostgresRepository) GetOrder(ctx context.Context, id int) (*domain.OrderResponse, error) {
	order, err := r.FindOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	responses, err := r.attachItems(ctx, []domain.Order{*order})
	if err != nil {
		return nil, err
	}
	return &responses[0], nil
}

// ListOrders applies the filters as AND-combined predicates, newest first.
// Filters are expected to be normalised by the caller.
func (r *PostgresRepository) ListOrders(ctx context.Context, filters domain.OrderFilters) ([]domain.OrderResponse, error) {
	where, args := orderFilterClause(filters)
	args = append(args, filters.Limit, filters.Offset)
	query := "SELECT " + orderColumns + " FROM orders" + where +
		" ORDER BY created_at DESC, id DESC" +
		" LIMIT $" + strconv.Itoa(len(args)-1) + " OFFSET $" + strconv.Itoa(len(args))

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	return r.attachItems(ctx, orders)
}

func orderFilterClause(f domain.OrderFilters) (string, []interface{}) {
	var (
		conds []string
		args  []interface{}
	)
	add := func(cond string, arg interface{}) {
		args = append(args, arg)
		conds = append(conds, strings.Replace(cond, "?", "$"+strconv.Itoa(len(args)), 1))
	}

	if f.Status != "" {
		add("status = ?", f.Status)
	}
	if f.PaymentStatus != "" {
		add("payment_status = ?", f.PaymentStatus)
	}
	if name := strings.TrimSpace(f.CustomerName); name != "" {
		add("customer_name ILIKE ?", "%"+escapeLike(name)+"%")
	}
	if f.DateFrom != nil {
		add("created_at >= ?", *f.DateFrom)
	}
	if f.DateTo != nil {
		add("created_at <= ?", *f.DateTo)
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// attachItems loads the items of every order with one query and enriches
// them with one product lookup. Items whose product was deleted are kept
// and flagged as missing.
func (r *PostgresRepository) attachItems(ctx context.Context, orders []domain.Order) ([]domain.OrderResponse, error) {
	responses := make([]domain.OrderResponse, len(orders))
	if len(orders) == 0 {
		return responses, nil
	}

	index := make(map[int]int, len(orders))
	orderIDs := make([]int64, len(orders))
	for i, o := range orders {
		responses[i] = domain.OrderResponse{Order: o, Items: []domain.OrderItem{}}
		index[o.ID] = i
		orderIDs[i] = int64(o.ID)
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, order_id, product_id, quantity, price_at_time, selected_size
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY order_id, id`, pq.Array(orderIDs))
	if err != nil {
		return nil, fmt.Errorf("load order items: %w", err)
	}
	defer rows.Close()

	var (
		items      []domain.OrderItem
		productIDs []int
		seen       = map[int]bool{}
	)
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity,
			&item.PriceAtTime, &item.SelectedSize); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, item)
		if !seen[item.ProductID] {
			seen[item.ProductID] = true
			productIDs = append(productIDs, item.ProductID)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load order items: %w", err)
	}

	products, err := r.GetProductsByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	for _, item := range items {
		if p, ok := products[item.ProductID]; ok {
			item.Product = &p
		} else {
			item.ProductMissing = true
		}
		i := index[item.OrderID]
		responses[i].Items = append(responses[i].Items, item)
	}
	return responses, nil
}

// UpdateOrderStatus locks the order row, checks the lifecycle allows the
// move and writes the new status.
func (r *PostgresRepository) UpdateOrderStatus(ctx context.Context, id int, next domain.OrderStatus) (*domain.Order, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin status tx: %w", err)
	}
	defer tx.Rollback()

	var current domain.OrderStatus
	err = tx.QueryRowContext(ctx, "SELECT status FROM orders WHERE id = $1 FOR UPDATE", id).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lock order %d: %w", id, err)
	}

	if !current.CanTransitionTo(next) {
		return nil, &domain.TransitionError{From: current, To: next}
	}

	order, err := scanOrder(tx.QueryRowContext(ctx, `
		UPDATE orders SET status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING `+orderColumns, next, id))
	if err != nil {
		return nil, fmt.Errorf("update order %d status: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit order status: %w", err)
	}
	return order, nil
}

func (r *PostgresRepository) UpdateOrderPayment(ctx context.Context, id int, status domain.PaymentStatus) (*domain.Order, error) {
	order, err := scanOrder(r.DB.QueryRowContext(ctx, `
		UPDATE orders SET payment_status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING `+orderColumns, status, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update order %d payment: %w", id, err)
	}
	return order, nil
}
