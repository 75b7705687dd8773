package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrProductNotFound    = errors.New("product not found")
	ErrOrderNotFound      = errors.New("order not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrPromoNotFound      = errors.New("invalid promo code")
	ErrRequestInProgress  = errors.New("a request with this Idempotency-Key is still being processed")
)

// ValidationError is a client input problem tied to one request field.
type ValidationError struct {
	Field   string
	Message string
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// MissingProductsError names every product id in an order that the catalog
// does not know. It matches ErrProductNotFound.
type MissingProductsError struct {
	IDs []int
}

func (e *MissingProductsError) Error() string {
	ids := make([]string, len(e.IDs))
	for i, id := range e.IDs {
		ids[i] = strconv.Itoa(id)
	}
	if len(ids) == 1 {
		return "product " + ids[0] + " not found"
	}
	return "products " + strings.Join(ids, ", ") + " not found"
}

func (e *MissingProductsError) Is(target error) bool {
	return target == ErrProductNotFound
}

type TransitionError struct {
	From OrderStatus
	To   OrderStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot move order from %s to %s", e.From, e.To)
}
