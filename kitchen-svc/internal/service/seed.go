package service

import (
	"context"
	"fmt"

	"cloud-kitchen/kitchen-svc/internal/domain"

	"github.com/shopspring/decimal"
)

func price(rupees int64) decimal.Decimal {
	return decimal.NewFromInt(rupees)
}

var seedMenu = []domain.Product{
	{
		Name:        "Paneer Tikka",
		Description: "Cottage cheese cubes marinated in spiced yoghurt and chargrilled in the tandoor.",
		Price:       price(280),
		Category:    "Starters",
		ImageURL:    "/images/paneer-tikka.jpg",
		Sizes: domain.SizeVariants{
			{Label: "Half", Price: price(180)},
			{Label: "Full", Price: price(280)},
		},
		Badges: domain.Badges{"Bestseller", "Veg"},
	},
	{
		Name:        "Chicken 65",
		Description: "Crisp fried chicken tossed with curry leaves and red chillies.",
		Price:       price(320),
		Category:    "Starters",
		ImageURL:    "/images/chicken-65.jpg",
		Badges:      domain.Badges{"Spicy"},
	},
	{
		Name:        "Butter Chicken",
		Description: "Tandoori chicken simmered in a silky tomato, butter and cream gravy.",
		Price:       price(380),
		Category:    "Mains",
		ImageURL:    "/images/butter-chicken.jpg",
		Sizes: domain.SizeVariants{
			{Label: "Regular", Price: price(380)},
			{Label: "Large", Price: price(520)},
		},
		Badges: domain.Badges{"Bestseller"},
	},
	{
		Name:        "Dal Makhani",
		Description: "Black lentils slow cooked overnight with butter and cream.",
		Price:       price(260),
		Category:    "Mains",
		ImageURL:    "/images/dal-makhani.jpg",
		Badges:      domain.Badges{"Veg"},
	},
	{
		Name:        "Hyderabadi Chicken Biryani",
		Description: "Dum-cooked basmati rice layered with marinated chicken, served with raita.",
		Price:       price(350),
		Category:    "Biryani",
		ImageURL:    "/images/chicken-biryani.jpg",
		Sizes: domain.SizeVariants{
			{Label: "Regular", Price: price(350)},
			{Label: "Family", Price: price(890)},
		},
		Badges: domain.Badges{"Chef's Special"},
	},
	{
		Name:        "Butter Naan",
		Description: "Leavened flatbread from the tandoor brushed with butter.",
		Price:       price(60),
		Category:    "Breads",
		ImageURL:    "/images/butter-naan.jpg",
		Badges:      domain.Badges{"Veg"},
	},
	{
		Name:        "Gulab Jamun",
		Description: "Two warm milk dumplings soaked in cardamom syrup.",
		Price:       price(120),
		Category:    "Desserts",
		ImageURL:    "/images/gulab-jamun.jpg",
		Badges:      domain.Badges{"Veg"},
	},
	{
		Name:        "Masala Chaas",
		Description: "Spiced buttermilk with roasted cumin and fresh coriander.",
		Price:       price(80),
		Category:    "Beverages",
		ImageURL:    "/images/masala-chaas.jpg",
		Badges:      domain.Badges{"Veg"},
	},
}

// SeedMenu fills an empty catalog with the starter menu and returns how many
// products were added.
func (s *CatalogService) SeedMenu(ctx context.Context) (int, error) {
	count, err := s.repo.CountProducts(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	for i := range seedMenu {
		p := seedMenu[i]
		p.Available = true
		if err := s.repo.CreateProduct(ctx, &p); err != nil {
			return i, fmt.Errorf("seed %q: %w", p.Name, err)
		}
	}
	return len(seedMenu), nil
}
