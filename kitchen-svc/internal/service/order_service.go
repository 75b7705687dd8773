package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"cloud-kitchen/kitchen-svc/internal/domain"

	"github.com/shopspring/decimal"
)

const publishTimeout = 2 * time.Second

type OrderService struct {
	orders      OrderRepository
	products    ProductRepository
	qrEncoder   QRGenerator
	idempotency IdempotencyStore
	publisher   OrderPublisher
	phoneRegion string
	posSystemID string
	now         func() time.Time
}

func NewOrderService(orders OrderRepository, products ProductRepository, qr QRGenerator, phoneRegion string) *OrderService {
	return &OrderService{
		orders:      orders,
		products:    products,
		qrEncoder:   qr,
		phoneRegion: phoneRegion,
		now:         time.Now,
	}
}

// WithIdempotency enables Idempotency-Key handling on Create.
func (s *OrderService) WithIdempotency(store IdempotencyStore) *OrderService {
	s.idempotency = store
	return s
}

// WithPublisher enables order event notifications.
func (s *OrderService) WithPublisher(publisher OrderPublisher) *OrderService {
	s.publisher = publisher
	return s
}

func (s *OrderService) WithPOSSystemID(id string) *OrderService {
	s.posSystemID = id
	return s
}

// Create validates the request, prices every line from the catalog and
// stores the order with its items atomically. The second return value
// reports whether the order was replayed for a known idempotency key.
func (s *OrderService) Create(ctx context.Context, idempotencyKey string, in domain.CreateOrderInput) (*domain.OrderResponse, bool, error) {
	in.CustomerName = strings.TrimSpace(in.CustomerName)
	in.CustomerPhone = strings.TrimSpace(in.CustomerPhone)
	in.CustomerEmail = strings.TrimSpace(in.CustomerEmail)
	in.CustomerAddress = strings.TrimSpace(in.CustomerAddress)
	if err := validateInput(in); err != nil {
		return nil, false, err
	}

	customerKey := domain.NormalizePhone(in.CustomerPhone, s.phoneRegion)
	if customerKey == "" {
		return nil, false, domain.NewValidationError("customerPhone", "customerPhone must contain digits")
	}

	claimed := false
	if s.idempotency != nil && idempotencyKey != "" {
		orderID, ok, err := s.idempotency.Claim(ctx, idempotencyKey)
		switch {
		case err != nil:
			slog.WarnContext(ctx, "idempotency claim failed", "error", err)
		case ok:
			claimed = true
		case orderID == 0:
			return nil, false, domain.ErrRequestInProgress
		default:
			existing, err := s.orders.GetOrder(ctx, orderID)
			if err != nil {
				return nil, false, fmt.Errorf("load order %d for idempotency key: %w", orderID, err)
			}
			return existing, true, nil
		}
	}

	created, err := s.insert(ctx, in, customerKey)
	if err != nil {
		if claimed {
			if relErr := s.idempotency.Release(ctx, idempotencyKey); relErr != nil {
				slog.WarnContext(ctx, "failed to release idempotency key", "error", relErr)
			}
		}
		return nil, false, err
	}
	if claimed {
		if err := s.idempotency.Complete(ctx, idempotencyKey, created.ID); err != nil {
			slog.WarnContext(ctx, "failed to store idempotency key", "order_id", created.ID, "error", err)
		}
	}
	s.publish(ctx, domain.EventOrderCreated, &created.Order)

	return created, false, nil
}

func (s *OrderService) insert(ctx context.Context, in domain.CreateOrderInput, customerKey string) (*domain.OrderResponse, error) {
	items, total, err := s.priceItems(ctx, in.Items)
	if err != nil {
		return nil, err
	}

	order := domain.Order{
		CustomerName:    in.CustomerName,
		CustomerPhone:   in.CustomerPhone,
		CustomerAddress: in.CustomerAddress,
		TotalAmount:     total,
		Status:          domain.StatusPending,
		PaymentStatus:   domain.PaymentUnpaid,
		CookieConsent:   in.CookieConsent,
		CustomerKey:     customerKey,
	}
	if in.CustomerEmail != "" {
		email := strings.ToLower(in.CustomerEmail)
		order.CustomerEmail = &email
	}

	if err := s.orders.CreateOrder(ctx, &order, items); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	slog.InfoContext(ctx, "order created", "order_id", order.ID, "items", len(items), "total", order.TotalAmount.String())
	return &domain.OrderResponse{Order: order, Items: items}, nil
}

// priceItems resolves every product with one lookup before anything is
// written. Any unknown product aborts the whole order.
func (s *OrderService) priceItems(ctx context.Context, lines []domain.OrderLineInput) ([]domain.OrderItem, decimal.Decimal, error) {
	ids := make([]int, 0, len(lines))
	seen := make(map[int]bool, len(lines))
	for _, line := range lines {
		if !seen[line.ProductID] {
			seen[line.ProductID] = true
			ids = append(ids, line.ProductID)
		}
	}

	products, err := s.products.GetProductsByIDs(ctx, ids)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("load order products: %w", err)
	}

	var missing []int
	for _, id := range ids {
		if _, ok := products[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return nil, decimal.Zero, &domain.MissingProductsError{IDs: missing}
	}

	total := decimal.Zero
	items := make([]domain.OrderItem, 0, len(lines))
	for i, line := range lines {
		product := products[line.ProductID]
		if !product.Available {
			field := fmt.Sprintf("items[%d].productId", i)
			return nil, decimal.Zero, domain.NewValidationError(field, product.Name+" is currently unavailable")
		}

		size := strings.TrimSpace(line.SelectedSize)
		unitPrice, err := product.UnitPrice(size)
		if err != nil {
			return nil, decimal.Zero, domain.NewValidationError(fmt.Sprintf("items[%d].selectedSize", i), err.Error())
		}

		// priceAtTime is stored with two places; the total is summed from
		// the stored value.
		item := domain.OrderItem{
			ProductID:   line.ProductID,
			Quantity:    line.Quantity,
			PriceAtTime: unitPrice.Round(2),
			Product:     &product,
		}
		if size != "" {
			item.SelectedSize = &size
		}
		total = total.Add(item.LineTotal())
		items = append(items, item)
	}
	return items, total, nil
}

func (s *OrderService) Get(ctx context.Context, id int) (*domain.OrderResponse, error) {
	return s.orders.GetOrder(ctx, id)
}

func (s *OrderService) List(ctx context.Context, filters domain.OrderFilters) ([]domain.OrderResponse, error) {
	filters.Normalize()
	return s.orders.ListOrders(ctx, filters)
}

// UpdateStatus moves the order along its lifecycle. Illegal moves fail with
// *domain.TransitionError.
func (s *OrderService) UpdateStatus(ctx context.Context, id int, status string) (*domain.Order, error) {
	next, err := domain.ParseOrderStatus(status)
	if err != nil {
		return nil, err
	}
	order, err := s.orders.UpdateOrderStatus(ctx, id, next)
	if err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "order status changed", "order_id", id, "status", next)
	s.publish(ctx, domain.EventOrderStatusChanged, order)
	return order, nil
}

func (s *OrderService) UpdatePayment(ctx context.Context, id int, status string) (*domain.Order, error) {
	next, err := domain.ParsePaymentStatus(status)
	if err != nil {
		return nil, err
	}
	order, err := s.orders.UpdateOrderPayment(ctx, id, next)
	if err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "order payment changed", "order_id", id, "payment_status", next)
	s.publish(ctx, domain.EventOrderPaymentChanged, order)
	return order, nil
}

func (s *OrderService) Tracking(ctx context.Context, id int) (*domain.OrderTracking, error) {
	order, err := s.orders.FindOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	tracking := &domain.OrderTracking{
		ID:            order.ID,
		Status:        order.Status,
		EstimatedTime: order.Status.EstimatedMinutes(),
		CurrentStep:   string(order.Status),
		UpdatedAt:     order.UpdatedAt,
	}
	if s.posSystemID != "" {
		pos := s.posSystemID
		tracking.PosSystemID = &pos
	}
	return tracking, nil
}

// QRCode renders a PNG that links to the public tracking page of the order.
func (s *OrderService) QRCode(ctx context.Context, id int) ([]byte, error) {
	if _, err := s.orders.FindOrder(ctx, id); err != nil {
		return nil, err
	}
	png, err := s.qrEncoder.Generate(id)
	if err != nil {
		return nil, fmt.Errorf("generate qr code for order %d: %w", id, err)
	}
	return png, nil
}

// publish is best-effort: failures are logged and never fail the request.
func (s *OrderService) publish(ctx context.Context, eventType string, order *domain.Order) {
	if s.publisher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	event := domain.OrderEvent{
		Type:          eventType,
		OrderID:       order.ID,
		Status:        order.Status,
		PaymentStatus: order.PaymentStatus,
		TotalAmount:   order.TotalAmount,
		Timestamp:     s.now().UTC(),
	}
	if err := s.publisher.PublishOrderEvent(ctx, event); err != nil {
		slog.WarnContext(ctx, "failed to publish order event", "type", eventType, "order_id", order.ID, "error", err)
	}
}
