package service

import (
	"context"

	"cloud-kitchen/kitchen-svc/internal/domain"

	"github.com/shopspring/decimal"
)

type ProductRepository interface {
	ListProducts(ctx context.Context, category string, availableOnly bool) ([]domain.Product, error)
	GetProduct(ctx context.Context, id int) (*domain.Product, error)
	GetProductsByIDs(ctx context.Context, ids []int) (map[int]domain.Product, error)
	CreateProduct(ctx context.Context, p *domain.Product) error
	UpdateProduct(ctx context.Context, id int, patch domain.ProductPatch) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id int) error
	CountProducts(ctx context.Context) (int, error)
}

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *domain.Order, items []domain.OrderItem) error
	FindOrder(ctx context.Context, id int) (*domain.Order, error)
	GetOrder(ctx context.Context, id int) (*domain.OrderResponse, error)
	ListOrders(ctx context.Context, filters domain.OrderFilters) ([]domain.OrderResponse, error)
	UpdateOrderStatus(ctx context.Context, id int, next domain.OrderStatus) (*domain.Order, error)
	UpdateOrderPayment(ctx context.Context, id int, status domain.PaymentStatus) (*domain.Order, error)
}

type UserRepository interface {
	CreateUser(ctx context.Context, u *domain.User) error
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByID(ctx context.Context, id int) (*domain.User, error)
}

// IdempotencyStore maps client Idempotency-Key values to created orders.
// Claim reserves a key atomically; when the key is already taken it returns
// the stored order id, or 0 while the first request is still running.
type IdempotencyStore interface {
	Claim(ctx context.Context, key string) (orderID int, claimed bool, err error)
	Complete(ctx context.Context, key string, orderID int) error
	Release(ctx context.Context, key string) error
}

type OrderPublisher interface {
	PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error
}

type CatalogServiceInterface interface {
	List(ctx context.Context, category string, availableOnly bool) ([]domain.Product, error)
	Get(ctx context.Context, id int) (*domain.Product, error)
	Create(ctx context.Context, in domain.ProductInput) (*domain.Product, error)
	Update(ctx context.Context, id int, patch domain.ProductPatch) (*domain.Product, error)
	Delete(ctx context.Context, id int) error
	SeedMenu(ctx context.Context) (int, error)
}

type OrderServiceInterface interface {
	Create(ctx context.Context, idempotencyKey string, in domain.CreateOrderInput) (*domain.OrderResponse, bool, error)
	Get(ctx context.Context, id int) (*domain.OrderResponse, error)
	List(ctx context.Context, filters domain.OrderFilters) ([]domain.OrderResponse, error)
	UpdateStatus(ctx context.Context, id int, status string) (*domain.Order, error)
	UpdatePayment(ctx context.Context, id int, status string) (*domain.Order, error)
	Tracking(ctx context.Context, id int) (*domain.OrderTracking, error)
	QRCode(ctx context.Context, id int) ([]byte, error)
	Export(ctx context.Context, format domain.ExportFormat, filters domain.OrderFilters) ([]byte, error)
}

type AuthServiceInterface interface {
	Register(ctx context.Context, in domain.RegisterInput) (*domain.User, error)
	Login(ctx context.Context, in domain.LoginInput) (*domain.User, error)
	Me(ctx context.Context, userID int) (*domain.User, error)
	EnsureAdmin(ctx context.Context, email, password string) error
}

type PromoServiceInterface interface {
	Validate(code string, subtotal *decimal.Decimal) (*PromoResult, error)
}

var (
	_ CatalogServiceInterface = (*CatalogService)(nil)
	_ OrderServiceInterface   = (*OrderService)(nil)
	_ AuthServiceInterface    = (*AuthService)(nil)
	_ PromoServiceInterface   = (*PromoService)(nil)
)
