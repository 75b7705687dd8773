package service

import (
	"context"
	"fmt"
	"strings"

	"cloud-kitchen/kitchen-svc/internal/domain"

	"github.com/shopspring/decimal"
)

type CatalogService struct {
	repo ProductRepository
}

func NewCatalogService(repo ProductRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

func (s *CatalogService) List(ctx context.Context, category string, availableOnly bool) ([]domain.Product, error) {
	return s.repo.ListProducts(ctx, strings.TrimSpace(category), availableOnly)
}

func (s *CatalogService) Get(ctx context.Context, id int) (*domain.Product, error) {
	return s.repo.GetProduct(ctx, id)
}

func (s *CatalogService) Create(ctx context.Context, in domain.ProductInput) (*domain.Product, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(in.Category)
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if err := checkPrices(in.Price, in.Sizes); err != nil {
		return nil, err
	}

	p := &domain.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       *in.Price,
		Category:    in.Category,
		ImageURL:    in.ImageURL,
		Available:   true,
		Sizes:       in.Sizes,
		Badges:      in.Badges,
	}
	if in.Available != nil {
		p.Available = *in.Available
	}
	if err := s.repo.CreateProduct(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *CatalogService) Update(ctx context.Context, id int, patch domain.ProductPatch) (*domain.Product, error) {
	if err := validateInput(patch); err != nil {
		return nil, err
	}
	var sizes domain.SizeVariants
	if patch.Sizes != nil {
		sizes = *patch.Sizes
	}
	if err := checkPrices(patch.Price, sizes); err != nil {
		return nil, err
	}
	return s.repo.UpdateProduct(ctx, id, patch)
}

// Delete removes the product for good. Past order lines keep their price
// snapshot and are reported as referring to a missing product.
func (s *CatalogService) Delete(ctx context.Context, id int) error {
	return s.repo.DeleteProduct(ctx, id)
}

func checkPrices(price *decimal.Decimal, sizes domain.SizeVariants) error {
	if price != nil {
		if err := checkPrice("price", *price); err != nil {
			return err
		}
	}
	for i, size := range sizes {
		if err := checkPrice(fmt.Sprintf("sizes[%d].price", i), size.Price); err != nil {
			return err
		}
	}
	return nil
}

// checkPrice accepts non-negative amounts with at most two decimal places,
// matching the NUMERIC(10,2) columns orders are stored in.
func checkPrice(field string, price decimal.Decimal) error {
	if price.IsNegative() {
		return domain.NewValidationError(field, field+" must not be negative")
	}
	if !price.Equal(price.Round(2)) {
		return domain.NewValidationError(field, field+" must have at most two decimal places")
	}
	return nil
}
