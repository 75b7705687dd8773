package tests

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"cloud-kitchen/kitchen-svc/internal/domain"
	"cloud-kitchen/kitchen-svc/internal/mocks"
	"cloud-kitchen/kitchen-svc/internal/service"
	"cloud-kitchen/kitchen-svc/internal/storage"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func menu() map[int]domain.Product {
	return map[int]domain.Product{
		1: {ID: 1, Name: "Veg Thali", Price: decimal.NewFromInt(100), Available: true},
		2: {ID: 2, Name: "Chicken Biryani", Price: decimal.NewFromInt(150), Available: true,
			Sizes: domain.SizeVariants{
				{Label: "Regular", Price: decimal.NewFromInt(150)},
				{Label: "Family", Price: decimal.NewFromInt(400)},
			}},
		3: {ID: 3, Name: "Seasonal Kulfi", Price: decimal.NewFromInt(90), Available: false},
	}
}

func validOrderInput(items ...domain.OrderLineInput) domain.CreateOrderInput {
	return domain.CreateOrderInput{
		CustomerName:    "  Asha Rao ",
		CustomerPhone:   "+91 98765 43210",
		CustomerAddress: "12, MG Road, Bengaluru",
		Items:           items,
	}
}

func newOrderService(t *testing.T) (*service.OrderService, *mocks.OrderRepository, *mocks.ProductRepository) {
	orders := mocks.NewOrderRepository(t)
	products := mocks.NewProductRepository(t)
	return service.NewOrderService(orders, products, mocks.NewQRGenerator(t), "IN"), orders, products
}

func TestOrderService_CreateComputesTotalFromCatalog(t *testing.T) {
	svc, orders, products := newOrderService(t)

	products.On("GetProductsByIDs", mock.Anything, []int{1, 2}).Return(menu(), nil).Once()
	orders.On("CreateOrder", mock.Anything,
		mock.MatchedBy(func(o *domain.Order) bool {
			return o.TotalAmount.Equal(decimal.NewFromInt(350)) &&
				o.Status == domain.StatusPending &&
				o.PaymentStatus == domain.PaymentUnpaid &&
				o.CustomerName == "Asha Rao" &&
				o.CustomerKey == "+919876543210"
		}),
		mock.AnythingOfType("[]domain.OrderItem"),
	).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Order).ID = 11
	}).Return(nil).Once()

	resp, replayed, err := svc.Create(context.Background(), "", validOrderInput(
		domain.OrderLineInput{ProductID: 1, Quantity: 2},
		domain.OrderLineInput{ProductID: 2, Quantity: 1},
	))
	require.NoError(t, err)
	assert.False(t, replayed)
	assert.Equal(t, 11, resp.ID)
	assert.Equal(t, "350", resp.TotalAmount.String())
	assert.Equal(t, domain.StatusPending, resp.Status)
	assert.Equal(t, domain.PaymentUnpaid, resp.PaymentStatus)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "100", resp.Items[0].PriceAtTime.String())
	assert.Equal(t, "Veg Thali", resp.Items[0].Product.Name)
}

func TestOrderService_CreateUsesSizePrice(t *testing.T) {
	tests := []struct {
		name      string
		size      string
		wantTotal string
		wantField string
	}{
		{name: "size overrides base price", size: "Family", wantTotal: "800"},
		{name: "no size uses base price", size: "", wantTotal: "300"},
		{name: "unknown size is rejected", size: "Jumbo", wantField: "items[0].selectedSize"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			svc, orders, products := newOrderService(t)
			products.On("GetProductsByIDs", mock.Anything, []int{2}).Return(menu(), nil).Once()
			if testCase.wantField == "" {
				orders.On("CreateOrder", mock.Anything, mock.AnythingOfType("*domain.Order"), mock.Anything).Return(nil).Once()
			}

			resp, _, err := svc.Create(context.Background(), "", validOrderInput(
				domain.OrderLineInput{ProductID: 2, Quantity: 2, SelectedSize: testCase.size},
			))
			if testCase.wantField != "" {
				var validationErr *domain.ValidationError
				require.ErrorAs(t, err, &validationErr)
				assert.Equal(t, testCase.wantField, validationErr.Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.wantTotal, resp.TotalAmount.String())
		})
	}
}

func TestOrderService_CreateFailsFastOnUnknownProduct(t *testing.T) {
	svc, orders, products := newOrderService(t)
	products.On("GetProductsByIDs", mock.Anything, []int{1, 99999}).Return(menu(), nil).Once()

	_, _, err := svc.Create(context.Background(), "", validOrderInput(
		domain.OrderLineInput{ProductID: 1, Quantity: 1},
		domain.OrderLineInput{ProductID: 99999, Quantity: 1},
	))

	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	var missing *domain.MissingProductsError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []int{99999}, missing.IDs)
	orders.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderService_CreateValidation(t *testing.T) {
	tests := []struct {
		name      string
		input     domain.CreateOrderInput
		wantField string
	}{
		{
			name:      "no items",
			input:     validOrderInput(),
			wantField: "items",
		},
		{
			name: "blank name",
			input: domain.CreateOrderInput{
				CustomerName: "   ", CustomerPhone: "9876543210", CustomerAddress: "x",
				Items: []domain.OrderLineInput{{ProductID: 1, Quantity: 1}},
			},
			wantField: "customerName",
		},
		{
			name:      "zero quantity",
			input:     validOrderInput(domain.OrderLineInput{ProductID: 1, Quantity: 0}),
			wantField: "items[0].quantity",
		},
		{
			name: "bad email",
			input: domain.CreateOrderInput{
				CustomerName: "A", CustomerPhone: "9876543210", CustomerAddress: "x", CustomerEmail: "nope",
				Items: []domain.OrderLineInput{{ProductID: 1, Quantity: 1}},
			},
			wantField: "customerEmail",
		},
		{
			name: "phone without digits",
			input: domain.CreateOrderInput{
				CustomerName: "A", CustomerPhone: "call me", CustomerAddress: "x",
				Items: []domain.OrderLineInput{{ProductID: 1, Quantity: 1}},
			},
			wantField: "customerPhone",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			svc, _, _ := newOrderService(t)
			_, _, err := svc.Create(context.Background(), "", testCase.input)

			var validationErr *domain.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, testCase.wantField, validationErr.Field)
		})
	}
}

func TestOrderService_CreateRejectsUnavailableProduct(t *testing.T) {
	svc, _, products := newOrderService(t)
	products.On("GetProductsByIDs", mock.Anything, []int{3}).Return(menu(), nil).Once()

	_, _, err := svc.Create(context.Background(), "", validOrderInput(domain.OrderLineInput{ProductID: 3, Quantity: 1}))

	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "items[0].productId", validationErr.Field)
}

func TestOrderService_CreateIdempotent(t *testing.T) {
	t.Run("replays a known key", func(t *testing.T) {
		svc, orders, _ := newOrderService(t)
		store := mocks.NewIdempotencyStore(t)
		svc.WithIdempotency(store)

		store.On("Claim", mock.Anything, "key-1").Return(21, false, nil).Once()
		orders.On("GetOrder", mock.Anything, 21).Return(&domain.OrderResponse{Order: domain.Order{ID: 21}}, nil).Once()

		resp, replayed, err := svc.Create(context.Background(), "key-1", validOrderInput(domain.OrderLineInput{ProductID: 1, Quantity: 1}))
		require.NoError(t, err)
		assert.True(t, replayed)
		assert.Equal(t, 21, resp.ID)
	})

	t.Run("rejects a key still in flight", func(t *testing.T) {
		svc, _, _ := newOrderService(t)
		store := mocks.NewIdempotencyStore(t)
		svc.WithIdempotency(store)

		store.On("Claim", mock.Anything, "key-1").Return(0, false, nil).Once()

		_, _, err := svc.Create(context.Background(), "key-1", validOrderInput(domain.OrderLineInput{ProductID: 1, Quantity: 1}))
		assert.ErrorIs(t, err, domain.ErrRequestInProgress)
	})

	t.Run("completes a new key and publishes", func(t *testing.T) {
		svc, orders, products := newOrderService(t)
		store := mocks.NewIdempotencyStore(t)
		publisher := mocks.NewOrderPublisher(t)
		svc.WithIdempotency(store).WithPublisher(publisher)

		store.On("Claim", mock.Anything, "key-2").Return(0, true, nil).Once()
		products.On("GetProductsByIDs", mock.Anything, []int{1}).Return(menu(), nil).Once()
		orders.On("CreateOrder", mock.Anything, mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Order).ID = 22
		}).Return(nil).Once()
		store.On("Complete", mock.Anything, "key-2", 22).Return(nil).Once()
		publisher.On("PublishOrderEvent", mock.Anything, mock.MatchedBy(func(e domain.OrderEvent) bool {
			return e.Type == domain.EventOrderCreated && e.OrderID == 22
		})).Return(assert.AnError).Once()

		resp, replayed, err := svc.Create(context.Background(), "key-2", validOrderInput(domain.OrderLineInput{ProductID: 1, Quantity: 1}))
		require.NoError(t, err, "publish failures must not fail the order")
		assert.False(t, replayed)
		assert.Equal(t, 22, resp.ID)
	})

	t.Run("releases the key when creation fails", func(t *testing.T) {
		svc, _, products := newOrderService(t)
		store := mocks.NewIdempotencyStore(t)
		svc.WithIdempotency(store)

		store.On("Claim", mock.Anything, "key-3").Return(0, true, nil).Once()
		products.On("GetProductsByIDs", mock.Anything, []int{99999}).Return(map[int]domain.Product{}, nil).Once()
		store.On("Release", mock.Anything, "key-3").Return(nil).Once()

		_, _, err := svc.Create(context.Background(), "key-3", validOrderInput(domain.OrderLineInput{ProductID: 99999, Quantity: 1}))
		assert.ErrorIs(t, err, domain.ErrProductNotFound)
	})

	t.Run("creates the order when the store is down", func(t *testing.T) {
		svc, orders, products := newOrderService(t)
		store := mocks.NewIdempotencyStore(t)
		svc.WithIdempotency(store)

		store.On("Claim", mock.Anything, "key-4").Return(0, false, assert.AnError).Once()
		products.On("GetProductsByIDs", mock.Anything, []int{1}).Return(menu(), nil).Once()
		orders.On("CreateOrder", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

		_, replayed, err := svc.Create(context.Background(), "key-4", validOrderInput(domain.OrderLineInput{ProductID: 1, Quantity: 1}))
		require.NoError(t, err)
		assert.False(t, replayed)
	})
}

func TestOrderService_CreateConcurrentSameKey(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	svc, orders, products := newOrderService(t)
	svc.WithIdempotency(storage.NewRedisIdempotencyStore(client, storage.IdempotencyTTL))

	var created atomic.Int32
	products.On("GetProductsByIDs", mock.Anything, []int{1}).Return(menu(), nil)
	orders.On("CreateOrder", mock.Anything, mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		time.Sleep(50 * time.Millisecond)
		args.Get(1).(*domain.Order).ID = int(created.Add(1))
	}).Return(nil)
	orders.On("GetOrder", mock.Anything, 1).Return(&domain.OrderResponse{Order: domain.Order{ID: 1}}, nil)

	type result struct {
		resp     *domain.OrderResponse
		replayed bool
		err      error
	}
	results := make(chan result, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, replayed, err := svc.Create(context.Background(), "same-key",
				validOrderInput(domain.OrderLineInput{ProductID: 1, Quantity: 1}))
			results <- result{resp, replayed, err}
		}()
	}
	wg.Wait()
	close(results)

	fresh := 0
	for r := range results {
		if r.err != nil {
			assert.ErrorIs(t, r.err, domain.ErrRequestInProgress)
			continue
		}
		assert.Equal(t, 1, r.resp.ID)
		if !r.replayed {
			fresh++
		}
	}
	assert.Equal(t, 1, fresh)
	assert.Equal(t, int32(1), created.Load())

	resp, replayed, err := svc.Create(context.Background(), "same-key",
		validOrderInput(domain.OrderLineInput{ProductID: 1, Quantity: 1}))
	require.NoError(t, err)
	assert.True(t, replayed)
	assert.Equal(t, 1, resp.ID)
}

func TestOrderService_CreateRoundsLegacySizePrices(t *testing.T) {
	svc, orders, products := newOrderService(t)

	// Stored before prices were limited to two places.
	catalog := map[int]domain.Product{
		5: {ID: 5, Name: "Gulab Jamun", Price: decimal.NewFromInt(60), Available: true,
			Sizes: domain.SizeVariants{{Label: "Half", Price: decimal.RequireFromString("0.125")}}},
	}
	products.On("GetProductsByIDs", mock.Anything, []int{5}).Return(catalog, nil).Once()
	orders.On("CreateOrder", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	resp, _, err := svc.Create(context.Background(), "", validOrderInput(
		domain.OrderLineInput{ProductID: 5, Quantity: 4, SelectedSize: "Half"},
	))
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	assert.Equal(t, "0.13", resp.Items[0].PriceAtTime.StringFixed(2))
	assert.True(t, resp.Items[0].PriceAtTime.Equal(resp.Items[0].PriceAtTime.Round(2)))

	sum := decimal.Zero
	for _, item := range resp.Items {
		sum = sum.Add(item.PriceAtTime.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	assert.True(t, resp.TotalAmount.Equal(sum), "total %s != sum of lines %s", resp.TotalAmount, sum)
	assert.Equal(t, "0.52", resp.TotalAmount.StringFixed(2))
}

func TestOrderService_UpdateStatus(t *testing.T) {
	tests := []struct {
		name     string
		status   string
		repoErr  error
		wantErr  bool
		callRepo bool
	}{
		{name: "valid", status: "confirmed", callRepo: true},
		{name: "unknown status", status: "shipped", wantErr: true},
		{name: "illegal transition", status: "pending", callRepo: true,
			repoErr: &domain.TransitionError{From: domain.StatusDelivered, To: domain.StatusPending}, wantErr: true},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			svc, orders, _ := newOrderService(t)
			if testCase.callRepo {
				next := domain.OrderStatus(testCase.status)
				if testCase.repoErr != nil {
					orders.On("UpdateOrderStatus", mock.Anything, 4, next).Return(nil, testCase.repoErr).Once()
				} else {
					orders.On("UpdateOrderStatus", mock.Anything, 4, next).Return(&domain.Order{ID: 4, Status: next}, nil).Once()
				}
			}

			order, err := svc.UpdateStatus(context.Background(), 4, testCase.status)
			if testCase.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, domain.StatusConfirmed, order.Status)
		})
	}
}

func TestOrderService_UpdatePayment(t *testing.T) {
	svc, orders, _ := newOrderService(t)
	orders.On("UpdateOrderPayment", mock.Anything, 6, domain.PaymentRefunded).
		Return(&domain.Order{ID: 6, PaymentStatus: domain.PaymentRefunded}, nil).Once()

	order, err := svc.UpdatePayment(context.Background(), 6, "Refunded")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentRefunded, order.PaymentStatus)

	_, err = svc.UpdatePayment(context.Background(), 6, "pending")
	var validationErr *domain.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestOrderService_Tracking(t *testing.T) {
	orders := mocks.NewOrderRepository(t)
	svc := service.NewOrderService(orders, mocks.NewProductRepository(t), mocks.NewQRGenerator(t), "IN").
		WithPOSSystemID("PP-01")
	updated := time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)

	orders.On("FindOrder", mock.Anything, 9).
		Return(&domain.Order{ID: 9, Status: domain.StatusPreparing, UpdatedAt: updated}, nil).Once()

	tracking, err := svc.Tracking(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, 15, tracking.EstimatedTime)
	assert.Equal(t, "preparing", tracking.CurrentStep)
	assert.Equal(t, "PP-01", *tracking.PosSystemID)
	assert.Equal(t, updated, tracking.UpdatedAt)
}

func TestOrderService_QRCode(t *testing.T) {
	orders := mocks.NewOrderRepository(t)
	qr := mocks.NewQRGenerator(t)
	svc := service.NewOrderService(orders, mocks.NewProductRepository(t), qr, "IN")

	orders.On("FindOrder", mock.Anything, 5).Return(&domain.Order{ID: 5}, nil).Once()
	qr.On("Generate", 5).Return([]byte("png"), nil).Once()
	orders.On("FindOrder", mock.Anything, 6).Return(nil, domain.ErrOrderNotFound).Once()

	png, err := svc.QRCode(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), png)

	_, err = svc.QRCode(context.Background(), 6)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestTrackingQRGenerator(t *testing.T) {
	gen := service.TrackingQRGenerator{BaseURL: "https://kitchen.example"}
	assert.Equal(t, "https://kitchen.example/track/12", gen.TrackingURL(12))

	png, err := gen.Generate(12)
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), png[:4])
}

func TestOrderService_ExportCSVRoundTrip(t *testing.T) {
	svc, orders, _ := newOrderService(t)
	email := "asha@example.com"
	size := "Family"
	created := time.Date(2026, 10, 1, 9, 30, 0, 0, time.UTC)

	listed := []domain.OrderResponse{{
		Order: domain.Order{
			ID:              1,
			CustomerName:    `Rao, "Asha"`,
			CustomerPhone:   "+919876543210",
			CustomerEmail:   &email,
			CustomerAddress: "Flat 4, \"Lake View\"\nIndiranagar",
			TotalAmount:     decimal.NewFromInt(560),
			Status:          domain.StatusDelivered,
			PaymentStatus:   domain.PaymentPaid,
			CreatedAt:       created,
		},
		Items: []domain.OrderItem{
			{ProductID: 2, Quantity: 1, PriceAtTime: decimal.NewFromInt(400), SelectedSize: &size,
				Product: &domain.Product{Name: "Chicken Biryani"}},
			{ProductID: 8, Quantity: 2, PriceAtTime: decimal.NewFromInt(80), ProductMissing: true},
		},
	}}
	orders.On("ListOrders", mock.Anything, mock.MatchedBy(func(f domain.OrderFilters) bool {
		return f.Limit == domain.DefaultOrderLimit
	})).Return(listed, nil).Once()

	body, err := svc.Export(context.Background(), domain.ExportCSV, domain.OrderFilters{})
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(body))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Order ID", records[0][0])

	row := records[1]
	assert.Equal(t, `Rao, "Asha"`, row[1])
	assert.Equal(t, "Flat 4, \"Lake View\"\nIndiranagar", row[4])
	assert.Equal(t, "Chicken Biryani (Family) x1; product #8 (removed) x2", row[5])
	assert.Equal(t, "560.00", row[6])
	assert.Equal(t, "2026-10-01T09:30:00Z", row[9])
}

func TestOrderService_ExportJSON(t *testing.T) {
	svc, orders, _ := newOrderService(t)
	orders.On("ListOrders", mock.Anything, mock.Anything).
		Return([]domain.OrderResponse{{Order: domain.Order{ID: 3, TotalAmount: decimal.NewFromInt(350)}, Items: []domain.OrderItem{}}}, nil).Once()

	body, err := svc.Export(context.Background(), domain.ExportJSON, domain.OrderFilters{})
	require.NoError(t, err)
	assert.Contains(t, string(body), "\n  {")

	var decoded []map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, "350", decoded[0]["totalAmount"])
}

func TestCatalogService_Create(t *testing.T) {
	negative := decimal.NewFromInt(-1)
	positive := decimal.NewFromInt(250)
	thousandths := decimal.RequireFromString("9.999")

	tests := []struct {
		name      string
		input     domain.ProductInput
		wantField string
	}{
		{
			name:  "valid product",
			input: domain.ProductInput{Name: "Kadai Paneer", Description: "d", Price: &positive, Category: "Mains", ImageURL: "/k.jpg"},
		},
		{
			name:      "missing price",
			input:     domain.ProductInput{Name: "Kadai Paneer", Description: "d", Category: "Mains", ImageURL: "/k.jpg"},
			wantField: "price",
		},
		{
			name:      "negative price",
			input:     domain.ProductInput{Name: "Kadai Paneer", Description: "d", Price: &negative, Category: "Mains", ImageURL: "/k.jpg"},
			wantField: "price",
		},
		{
			name:      "price with three decimal places",
			input:     domain.ProductInput{Name: "Kadai Paneer", Description: "d", Price: &thousandths, Category: "Mains", ImageURL: "/k.jpg"},
			wantField: "price",
		},
		{
			name: "size price with three decimal places",
			input: domain.ProductInput{Name: "Kadai Paneer", Description: "d", Price: &positive, Category: "Mains", ImageURL: "/k.jpg",
				Sizes: domain.SizeVariants{{Label: "Half", Price: decimal.RequireFromString("0.125")}}},
			wantField: "sizes[0].price",
		},
		{
			name: "size without label",
			input: domain.ProductInput{Name: "Kadai Paneer", Description: "d", Price: &positive, Category: "Mains", ImageURL: "/k.jpg",
				Sizes: domain.SizeVariants{{Price: positive}}},
			wantField: "sizes[0].label",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			repo := mocks.NewProductRepository(t)
			svc := service.NewCatalogService(repo)
			if testCase.wantField == "" {
				repo.On("CreateProduct", mock.Anything, mock.MatchedBy(func(p *domain.Product) bool {
					return p.Available && p.Price.Equal(positive)
				})).Run(func(args mock.Arguments) {
					args.Get(1).(*domain.Product).ID = 30
				}).Return(nil).Once()
			}

			product, err := svc.Create(context.Background(), testCase.input)
			if testCase.wantField != "" {
				var validationErr *domain.ValidationError
				require.ErrorAs(t, err, &validationErr)
				assert.Equal(t, testCase.wantField, validationErr.Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 30, product.ID)
		})
	}
}

func TestCatalogService_SeedMenu(t *testing.T) {
	t.Run("skips a populated catalog", func(t *testing.T) {
		repo := mocks.NewProductRepository(t)
		repo.On("CountProducts", mock.Anything).Return(4, nil).Once()

		n, err := service.NewCatalogService(repo).SeedMenu(context.Background())
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("fills an empty catalog", func(t *testing.T) {
		repo := mocks.NewProductRepository(t)
		repo.On("CountProducts", mock.Anything).Return(0, nil).Once()
		repo.On("CreateProduct", mock.Anything, mock.AnythingOfType("*domain.Product")).Return(nil)

		n, err := service.NewCatalogService(repo).SeedMenu(context.Background())
		require.NoError(t, err)
		assert.Positive(t, n)
		repo.AssertNumberOfCalls(t, "CreateProduct", n)
	})
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	repo := mocks.NewUserRepository(t)
	svc := service.NewAuthService(repo)
	ctx := context.Background()

	var stored *domain.User
	repo.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Email == "asha@example.com" && u.Role == "customer" && u.PasswordHash != "s3cret-pass"
	})).Run(func(args mock.Arguments) {
		stored = args.Get(1).(*domain.User)
		stored.ID = 1
	}).Return(nil).Once()

	user, err := svc.Register(ctx, domain.RegisterInput{Email: " Asha@Example.com ", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.Equal(t, 1, user.ID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret-pass")))

	repo.On("GetUserByEmail", mock.Anything, "asha@example.com").Return(stored, nil)
	repo.On("GetUserByEmail", mock.Anything, "ghost@example.com").Return(nil, domain.ErrUserNotFound)

	tests := []struct {
		name    string
		email   string
		pass    string
		wantErr error
	}{
		{name: "correct password", email: "ASHA@example.com", pass: "s3cret-pass"},
		{name: "wrong password", email: "asha@example.com", pass: "wrong-pass", wantErr: domain.ErrInvalidCredentials},
		{name: "unknown email", email: "ghost@example.com", pass: "whatever", wantErr: domain.ErrInvalidCredentials},
	}
	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			got, err := svc.Login(ctx, domain.LoginInput{Email: testCase.email, Password: testCase.pass})
			if testCase.wantErr != nil {
				assert.ErrorIs(t, err, testCase.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 1, got.ID)
		})
	}
}

func TestAuthService_RegisterValidation(t *testing.T) {
	svc := service.NewAuthService(mocks.NewUserRepository(t))

	tests := []struct {
		name     string
		password string
	}{
		{name: "too short", password: "short"},
		{name: "over 72 bytes in 40 runes", password: strings.Repeat("é", 40)},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), domain.RegisterInput{Email: "asha@example.com", Password: testCase.password})
			var validationErr *domain.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, "password", validationErr.Field)
		})
	}
}

func TestAuthService_EnsureAdmin(t *testing.T) {
	t.Run("creates a missing admin", func(t *testing.T) {
		repo := mocks.NewUserRepository(t)
		repo.On("GetUserByEmail", mock.Anything, "admin@kitchen.test").Return(nil, domain.ErrUserNotFound).Once()
		repo.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
			return u.Role == "admin"
		})).Return(nil).Once()

		require.NoError(t, service.NewAuthService(repo).EnsureAdmin(context.Background(), "Admin@Kitchen.test", "admin-pass"))
	})

	t.Run("keeps an existing admin", func(t *testing.T) {
		repo := mocks.NewUserRepository(t)
		repo.On("GetUserByEmail", mock.Anything, "admin@kitchen.test").Return(&domain.User{ID: 1, Role: "admin"}, nil).Once()

		require.NoError(t, service.NewAuthService(repo).EnsureAdmin(context.Background(), "admin@kitchen.test", "admin-pass"))
	})

	t.Run("does nothing without credentials", func(t *testing.T) {
		require.NoError(t, service.NewAuthService(mocks.NewUserRepository(t)).EnsureAdmin(context.Background(), "", ""))
	})
}

func TestPromoService_Validate(t *testing.T) {
	svc := service.NewPromoService()
	subtotal := decimal.NewFromInt(400)
	small := decimal.NewFromInt(30)

	tests := []struct {
		name       string
		code       string
		subtotal   *decimal.Decimal
		wantErr    error
		wantAmount string
	}{
		{name: "flat code", code: "save50", subtotal: &subtotal, wantAmount: "50"},
		{name: "percentage code", code: "FIRST20", subtotal: &subtotal, wantAmount: "80"},
		{name: "flat capped at subtotal", code: "SAVE100", subtotal: &small, wantAmount: "30"},
		{name: "no subtotal", code: "WELCOME"},
		{name: "unknown code", code: "FREEFOOD", wantErr: domain.ErrPromoNotFound},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			result, err := svc.Validate(testCase.code, testCase.subtotal)
			if testCase.wantErr != nil {
				assert.ErrorIs(t, err, testCase.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, result.Valid)
			if testCase.wantAmount == "" {
				assert.Nil(t, result.DiscountAmount)
				return
			}
			assert.Equal(t, testCase.wantAmount, result.DiscountAmount.String())
		})
	}
}
