package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// WindowDays is the length of the dashboard comparison windows.
	WindowDays = 30
	// InactiveAfterDays marks a customer inactive once this many whole days
	// have passed since their last order.
	InactiveAfterDays = 30
	// RevenueMonths is the number of calendar months in revenueByMonth,
	// the current one included.
	RevenueMonths = 6
)

// OrderStatuses lists every status an order row can carry.
var OrderStatuses = []string{
	"pending", "confirmed", "preparing", "ready", "out_for_delivery", "delivered", "cancelled",
}

// Cached report names.
const (
	ReportDashboard = "dashboard"
	ReportOrders    = "orders"
	ReportCustomers = "customers"
)

var ErrUnknownFormat = errors.New("format must be csv or json")

// Money is a decimal amount that renders as a JSON number with two places.
type Money struct {
	decimal.Decimal
}

func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d.Round(2)}
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.StringFixed(2)), nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	return m.Decimal.UnmarshalJSON(data)
}

type DashboardStats struct {
	TotalRevenue    Money   `json:"totalRevenue"`
	TotalOrders     int     `json:"totalOrders"`
	PendingOrders   int     `json:"pendingOrders"`
	CompletedOrders int     `json:"completedOrders"`
	RevenueGrowth   float64 `json:"revenueGrowth"`
	OrdersGrowth    float64 `json:"ordersGrowth"`
}

// WindowTotals are the raw sums the dashboard is computed from.
type WindowTotals struct {
	CurrentRevenue  decimal.Decimal
	CurrentOrders   int
	PendingOrders   int
	CompletedOrders int
	PreviousRevenue decimal.Decimal
	PreviousOrders  int
}

type MonthlyRevenue struct {
	Month   string `json:"month"`
	Revenue Money  `json:"revenue"`
}

type OrdersAnalytics struct {
	TotalRevenue      Money            `json:"totalRevenue"`
	TotalOrders       int              `json:"totalOrders"`
	AverageOrderValue Money            `json:"averageOrderValue"`
	OrdersByStatus    map[string]int   `json:"ordersByStatus"`
	RevenueByMonth    []MonthlyRevenue `json:"revenueByMonth"`
}

// CustomerAggregate is one customer's orders grouped by normalized phone.
type CustomerAggregate struct {
	Phone         string
	Name          string
	Email         *string
	TotalOrders   int
	TotalSpent    decimal.Decimal
	LastOrderDate time.Time
}

type CustomerInsight struct {
	CustomerPhone      string    `json:"customerPhone"`
	CustomerName       string    `json:"customerName"`
	CustomerEmail      *string   `json:"customerEmail"`
	TotalOrders        int       `json:"totalOrders"`
	TotalSpent         Money     `json:"totalSpent"`
	LastOrderDate      time.Time `json:"lastOrderDate"`
	DaysSinceLastOrder int       `json:"daysSinceLastOrder"`
	AverageOrderValue  Money     `json:"averageOrderValue"`
	IsInactive         bool      `json:"isInactive"`
}

type CustomerAnalytics struct {
	TotalCustomers    int               `json:"totalCustomers"`
	ActiveCustomers   int               `json:"activeCustomers"`
	InactiveCustomers int               `json:"inactiveCustomers"`
	Customers         []CustomerInsight `json:"customers"`
}

// Event types published by kitchen-svc on the order topic.
const (
	EventOrderCreated        = "order_created"
	EventOrderStatusChanged  = "order_status_changed"
	EventOrderPaymentChanged = "order_payment_changed"
)

// OrderEvent is the subset of the kitchen order event analytics reads.
type OrderEvent struct {
	Type      string    `json:"type"`
	OrderID   int       `json:"orderId"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

func (e OrderEvent) AffectsReports() bool {
	switch e.Type {
	case EventOrderCreated, EventOrderStatusChanged, EventOrderPaymentChanged:
		return true
	}
	return false
}

type ExportFormat string

const (
	ExportCSV  ExportFormat = "csv"
	ExportJSON ExportFormat = "json"
)

func ParseExportFormat(raw string) (ExportFormat, error) {
	switch f := ExportFormat(strings.ToLower(strings.TrimSpace(raw))); f {
	case ExportCSV, ExportJSON:
		return f, nil
	}
	return "", ErrUnknownFormat
}
