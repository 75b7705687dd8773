package domain

import "strings"

type OrderStatus string

const (
	StatusPending        OrderStatus = "pending"
	StatusConfirmed      OrderStatus = "confirmed"
	StatusPreparing      OrderStatus = "preparing"
	StatusReady          OrderStatus = "ready"
	StatusOutForDelivery OrderStatus = "out_for_delivery"
	StatusDelivered      OrderStatus = "delivered"
	StatusCancelled      OrderStatus = "cancelled"
)

// AllOrderStatuses lists the lifecycle in forward order.
var AllOrderStatuses = []OrderStatus{
	StatusPending,
	StatusConfirmed,
	StatusPreparing,
	StatusReady,
	StatusOutForDelivery,
	StatusDelivered,
	StatusCancelled,
}

var orderTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:        {StatusConfirmed, StatusCancelled},
	StatusConfirmed:      {StatusPreparing, StatusCancelled},
	StatusPreparing:      {StatusReady, StatusCancelled},
	StatusReady:          {StatusOutForDelivery, StatusCancelled},
	StatusOutForDelivery: {StatusDelivered, StatusCancelled},
}

var estimatedMinutes = map[OrderStatus]int{
	StatusPending:        25,
	StatusConfirmed:      20,
	StatusPreparing:      15,
	StatusReady:          5,
	StatusOutForDelivery: 10,
}

func (s OrderStatus) Valid() bool {
	for _, known := range AllOrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

func (s OrderStatus) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransitionTo reports whether the lifecycle allows moving from s to next.
// Re-applying the current status is not a transition.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// EstimatedMinutes is the remaining time shown on the tracking page.
func (s OrderStatus) EstimatedMinutes() int {
	return estimatedMinutes[s]
}

func ParseOrderStatus(raw string) (OrderStatus, error) {
	s := OrderStatus(strings.ToLower(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", NewValidationError("status", "unknown order status "+raw)
	}
	return s, nil
}

type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "unpaid"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

func (p PaymentStatus) Valid() bool {
	switch p {
	case PaymentUnpaid, PaymentPaid, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

func ParsePaymentStatus(raw string) (PaymentStatus, error) {
	p := PaymentStatus(strings.ToLower(strings.TrimSpace(raw)))
	if !p.Valid() {
		return "", NewValidationError("paymentStatus", "unknown payment status "+raw)
	}
	return p, nil
}
