package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type SizeVariant struct {
	Label string          `json:"label" validate:"required"`
	Price decimal.Decimal `json:"price"`
}

// SizeVariants is stored as nullable jsonb.
type SizeVariants []SizeVariant

func (s SizeVariants) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return jsonValue([]SizeVariant(s))
}

func (s *SizeVariants) Scan(src interface{}) error {
	return scanJSON(src, s)
}

// Badges is stored as jsonb and never NULL.
type Badges []string

func (b Badges) Value() (driver.Value, error) {
	if b == nil {
		return "[]", nil
	}
	return jsonValue([]string(b))
}

func (b *Badges) Scan(src interface{}) error {
	return scanJSON(src, b)
}

type Product struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	ImageURL    string          `json:"imageUrl"`
	Available   bool            `json:"available"`
	Sizes       SizeVariants    `json:"sizes"`
	Badges      Badges          `json:"badges"`
}

// UnitPrice resolves the price charged for one unit. A named size overrides
// the base price; an unknown size label is rejected.
func (p Product) UnitPrice(size string) (decimal.Decimal, error) {
	if size == "" {
		return p.Price, nil
	}
	for _, variant := range p.Sizes {
		if strings.EqualFold(variant.Label, size) {
			return variant.Price, nil
		}
	}
	return decimal.Zero, fmt.Errorf("product %d has no size %q", p.ID, size)
}

type ProductInput struct {
	Name        string           `json:"name" validate:"required,max=200"`
	Description string           `json:"description" validate:"required"`
	Price       *decimal.Decimal `json:"price" validate:"required"`
	Category    string           `json:"category" validate:"required,max=100"`
	ImageURL    string           `json:"imageUrl" validate:"required"`
	Available   *bool            `json:"available"`
	Sizes       SizeVariants     `json:"sizes" validate:"omitempty,dive"`
	Badges      Badges           `json:"badges"`
}

// ProductPatch carries a partial update; nil fields are left unchanged.
type ProductPatch struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string          `json:"description" validate:"omitempty,min=1"`
	Price       *decimal.Decimal `json:"price"`
	Category    *string          `json:"category" validate:"omitempty,min=1,max=100"`
	ImageURL    *string          `json:"imageUrl" validate:"omitempty,min=1"`
	Available   *bool            `json:"available"`
	Sizes       *SizeVariants    `json:"sizes" validate:"omitempty,dive"`
	Badges      *Badges          `json:"badges"`
}

type User struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         *string   `json:"name"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

type RegisterInput struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8,max=72"`
	Name     *string `json:"name" validate:"omitempty,max=200"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// CookieConsent is the customer's tracking opt-in recorded with the order.
type CookieConsent struct {
	Marketing bool  `json:"marketing"`
	Analytics bool  `json:"analytics"`
	Timestamp int64 `json:"timestamp"`
}

func (c CookieConsent) Value() (driver.Value, error) {
	return jsonValue(c)
}

func (c *CookieConsent) Scan(src interface{}) error {
	return scanJSON(src, c)
}

type Order struct {
	ID              int             `json:"id"`
	CustomerName    string          `json:"customerName"`
	CustomerPhone   string          `json:"customerPhone"`
	CustomerEmail   *string         `json:"customerEmail"`
	CustomerAddress string          `json:"customerAddress"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	Status          OrderStatus     `json:"status"`
	PaymentStatus   PaymentStatus   `json:"paymentStatus"`
	CookieConsent   *CookieConsent  `json:"cookieConsent"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`

	// CustomerKey is the normalised phone used to group orders per customer.
	CustomerKey string `json:"-"`
}

type OrderItem struct {
	ID           int             `json:"id"`
	OrderID      int             `json:"orderId"`
	ProductID    int             `json:"productId"`
	Quantity     int             `json:"quantity"`
	PriceAtTime  decimal.Decimal `json:"priceAtTime"`
	SelectedSize *string         `json:"selectedSize"`

	// Product is nil and ProductMissing set when the product has since been
	// deleted from the catalog.
	Product        *Product `json:"product"`
	ProductMissing bool     `json:"productMissing"`
}

func (i OrderItem) LineTotal() decimal.Decimal {
	return i.PriceAtTime.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// DisplayName is used in exports and falls back to the product id for
// deleted products.
func (i OrderItem) DisplayName() string {
	if i.Product != nil {
		return i.Product.Name
	}
	return fmt.Sprintf("product #%d (removed)", i.ProductID)
}

type OrderResponse struct {
	Order
	Items []OrderItem `json:"items"`
}

type OrderLineInput struct {
	ProductID    int    `json:"productId" validate:"required,gt=0"`
	Quantity     int    `json:"quantity" validate:"required,min=1,max=100"`
	SelectedSize string `json:"selectedSize" validate:"max=50"`
}

// CreateOrderInput carries no prices: totals are always computed from the
// catalog.
type CreateOrderInput struct {
	CustomerName    string           `json:"customerName" validate:"required,max=200"`
	CustomerPhone   string           `json:"customerPhone" validate:"required,max=32"`
	CustomerEmail   string           `json:"customerEmail" validate:"omitempty,email"`
	CustomerAddress string           `json:"customerAddress" validate:"required,max=1000"`
	Items           []OrderLineInput `json:"items" validate:"required,min=1,dive"`
	CookieConsent   *CookieConsent   `json:"cookieConsent"`
}

const (
	DefaultOrderLimit = 50
	MaxOrderLimit     = 500
)

type OrderFilters struct {
	Status        OrderStatus
	PaymentStatus PaymentStatus
	CustomerName  string
	DateFrom      *time.Time
	DateTo        *time.Time
	Limit         int
	Offset        int
}

// Normalize applies the pagination defaults and bounds.
func (f *OrderFilters) Normalize() {
	if f.Limit <= 0 {
		f.Limit = DefaultOrderLimit
	}
	if f.Limit > MaxOrderLimit {
		f.Limit = MaxOrderLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
}

type OrderTracking struct {
	ID            int         `json:"id"`
	Status        OrderStatus `json:"status"`
	EstimatedTime int         `json:"estimatedTime"`
	CurrentStep   string      `json:"currentStep"`
	PosSystemID   *string     `json:"posSystemId"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

const (
	EventOrderCreated        = "order_created"
	EventOrderStatusChanged  = "order_status_changed"
	EventOrderPaymentChanged = "order_payment_changed"
)

type OrderEvent struct {
	Type          string          `json:"type"`
	OrderID       int             `json:"orderId"`
	Status        OrderStatus     `json:"status"`
	PaymentStatus PaymentStatus   `json:"paymentStatus"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	Timestamp     time.Time       `json:"timestamp"`
}

type Promo struct {
	Code         string          `json:"code"`
	Discount     decimal.Decimal `json:"discount"`
	IsPercentage bool            `json:"isPercentage"`
}

type ExportFormat string

const (
	ExportCSV  ExportFormat = "csv"
	ExportJSON ExportFormat = "json"
)

func ParseExportFormat(raw string) (ExportFormat, error) {
	switch f := ExportFormat(strings.ToLower(raw)); f {
	case ExportCSV, ExportJSON:
		return f, nil
	}
	return "", NewValidationError("format", "format must be csv or json")
}

// jsonValue encodes v as text so the driver sends it as json rather than bytea.
func jsonValue(v interface{}) (driver.Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func scanJSON(src interface{}, dest interface{}) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return fmt.Errorf("cannot scan %T as json", src)
	}
}
