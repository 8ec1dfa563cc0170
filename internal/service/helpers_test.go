package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/RoyceAzure/lab/storeadmin/internal/infra/docstore/memory"
	"github.com/RoyceAzure/lab/storeadmin/internal/infra/repository"
	"github.com/RoyceAzure/lab/storeadmin/internal/model"
	er "github.com/RoyceAzure/rj/util/rj_error"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func testClock() time.Time { return testNow }

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Publish(ctx context.Context, event model.MutationEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockNotifier) Close() error {
	return m.Called().Error(0)
}

// failingOrders 指定使用者的訂單讀取失敗
type failingOrders struct {
	OrderLister
	failFor map[string]bool
}

func (f failingOrders) ListOrders(ctx context.Context, userID string) ([]model.Order, error) {
	if f.failFor[userID] {
		return nil, errors.New("permission denied")
	}
	return f.OrderLister.ListOrders(ctx, userID)
}

type failingCustomers struct {
	CustomerLister
}

func (f failingCustomers) ListCustomers(ctx context.Context) ([]model.Customer, error) {
	return nil, errors.New("unavailable")
}

// failingOrderStore 寫入一律失敗
type failingOrderStore struct {
	OrderStore
}

func (f failingOrderStore) UpdateOrder(ctx context.Context, userID, orderID string, fields map[string]any) error {
	return errors.New("deadline exceeded")
}

type fixture struct {
	store     *memory.Store
	customers *repository.CustomerRepo
	orders    *repository.OrderRepo
	products  *repository.ProductRepo
}

// newFixture 準備測試資料
// u1: 兩筆訂單(一筆已付款今天、一筆已付款十天前) u2: 一筆四十天前未付款 u3: 沒有 createdAt 的訂單
func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore(memory.WithClock(testClock))
	seed := func(path string, fields map[string]any) {
		require.NoError(t, store.Seed(path, fields))
	}

	seed("users/u1", map[string]any{
		"displayName": "Amy Chen",
		"email":       "amy@gmail.com",
		"phoneNumber": "+234 801 555 0101",
		"photoURL":    "https://img/amy.png",
		"createdAt":   testNow.Add(-5 * 24 * time.Hour),
	})
	seed("users/u2", map[string]any{
		"displayName": "Ben Okafor",
		"email":       "ben@yahoo.com",
		"phoneNumber": "+234 802 555 0202",
		"status":      "blocked",
		"createdAt":   testNow.Add(-45 * 24 * time.Hour),
	})
	seed("users/u3", map[string]any{
		"displayName": "Cara Obi",
		"email":       "cara@outlook.com",
		"photoURL":    "https://img/cara.png",
		"authMethod":  "email",
		"createdAt":   testNow.Add(-50 * 24 * time.Hour),
	})
	seed("users/u1/addresses/a1", map[string]any{"label": "Home", "address": "1 Marina", "city": "Lagos", "isDefault": true})

	seed("users/u1/orders/o1", map[string]any{
		"orderNumber":    "KID-1001",
		"createdAt":      testNow.Add(-1 * time.Hour),
		"status":         "pending",
		"paymentStatus":  "paid",
		"shippingMethod": "express",
		"total":          100.0,
		"shippingAddress": map[string]any{
			"firstName": "Amy", "lastName": "Chen", "email": "amy@gmail.com", "phone": "+234 801 555 0101",
		},
		"items": []map[string]any{
			{"name": "Pink Dress", "image": "dress.png", "price": 40.0, "quantity": 2},
			{"name": "Sun Hat", "image": "hat.png", "price": 20.0, "quantity": 1},
		},
	})
	seed("users/u1/orders/o2", map[string]any{
		"orderNumber":    "KID-1002",
		"createdAt":      testNow.Add(-10 * 24 * time.Hour),
		"status":         "shipped",
		"paymentStatus":  "paid",
		"shippingMethod": "standard",
		"trackingNumber": "TRK-9",
		"total":          50.0,
		"shippingAddress": map[string]any{
			"firstName": "Amy", "lastName": "Chen", "email": "amy@gmail.com", "phone": "+234 801 555 0101",
		},
		"items": []map[string]any{{"name": "Pink Dress", "price": 50.0, "quantity": 1}},
	})
	seed("users/u2/orders/o3", map[string]any{
		"orderNumber":    "KID-2001",
		"createdAt":      testNow.Add(-40 * 24 * time.Hour),
		"status":         "delivered",
		"paymentStatus":  "pending",
		"shippingMethod": "standard",
		"total":          75.0,
		"shippingAddress": map[string]any{
			"firstName": "Ben", "lastName": "Okafor", "email": "ben@yahoo.com", "phone": "+234 802 555 0202",
		},
		"items": []map[string]any{{"name": "Denim Shorts", "price": 25.0, "quantity": 3}},
	})
	seed("users/u3/orders/o4", map[string]any{
		"orderNumber":   "KID-3001",
		"status":        "processing",
		"paymentStatus": "failed",
		"total":         30.0,
	})

	return &fixture{
		store:     store,
		customers: repository.NewCustomerRepo(store),
		orders:    repository.NewOrderRepo(store),
		products:  repository.NewProductRepo(store),
	}
}

func orderIDs(orders []model.Order) []string {
	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}
	return ids
}

func requireCode(t *testing.T, err error, code any) {
	t.Helper()
	var anaErr *er.AnaError
	require.ErrorAs(t, err, &anaErr)
	require.EqualValues(t, code, anaErr.Code)
}
