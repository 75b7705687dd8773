package service

import (
	"strings"

	"cloud-kitchen/kitchen-svc/internal/domain"

	"github.com/shopspring/decimal"
)

var defaultPromos = []domain.Promo{
	{Code: "SAVE50", Discount: decimal.NewFromInt(50)},
	{Code: "SAVE100", Discount: decimal.NewFromInt(100)},
	{Code: "WELCOME", Discount: decimal.NewFromInt(75)},
	{Code: "FIRST20", Discount: decimal.NewFromInt(20), IsPercentage: true},
}

type PromoResult struct {
	domain.Promo
	Valid bool `json:"valid"`
	// DiscountAmount is only set when the caller sent a subtotal.
	DiscountAmount *decimal.Decimal `json:"discountAmount,omitempty"`
}

type PromoService struct {
	promos map[string]domain.Promo
}

func NewPromoService() *PromoService {
	promos := make(map[string]domain.Promo, len(defaultPromos))
	for _, p := range defaultPromos {
		promos[p.Code] = p
	}
	return &PromoService{promos: promos}
}

// Validate looks the code up case-insensitively. A flat discount never
// exceeds the subtotal.
func (s *PromoService) Validate(code string, subtotal *decimal.Decimal) (*PromoResult, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, domain.NewValidationError("code", "code is required")
	}
	promo, ok := s.promos[code]
	if !ok {
		return nil, domain.ErrPromoNotFound
	}

	result := &PromoResult{Promo: promo, Valid: true}
	if subtotal != nil {
		if subtotal.IsNegative() {
			return nil, domain.NewValidationError("subtotal", "subtotal must not be negative")
		}
		amount := promo.Discount
		if promo.IsPercentage {
			amount = subtotal.Mul(promo.Discount).Div(decimal.NewFromInt(100)).Round(2)
		}
		if amount.GreaterThan(*subtotal) {
			amount = *subtotal
		}
		result.DiscountAmount = &amount
	}
	return result, nil
}
