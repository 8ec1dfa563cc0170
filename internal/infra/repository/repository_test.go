package repository

import (
	"context"
	"testing"
	"time"

	"github.com/RoyceAzure/lab/storeadmin/internal/infra/docstore"
	"github.com/RoyceAzure/lab/storeadmin/internal/infra/docstore/memory"
	"github.com/RoyceAzure/lab/storeadmin/internal/model"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type RepositoryTestSuite struct {
	suite.Suite
	ctx          context.Context
	store        *memory.Store
	customerRepo *CustomerRepo
	orderRepo    *OrderRepo
	productRepo  *ProductRepo
	now          time.Time
}

func (suite *RepositoryTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.now = time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	suite.store = memory.NewStore(memory.WithClock(func() time.Time { return suite.now }))
	suite.customerRepo = NewCustomerRepo(suite.store)
	suite.orderRepo = NewOrderRepo(suite.store)
	suite.productRepo = NewProductRepo(suite.store)

	// 準備測試資料
	require.NoError(suite.T(), suite.store.Seed("users/u1", map[string]any{
		"displayName": "Amy Chen",
		"email":       "amy@gmail.com",
		"phoneNumber": "0911",
		"createdAt":   "2025-01-01T00:00:00Z",
	}))
	require.NoError(suite.T(), suite.store.Seed("users/u1/addresses/a1", map[string]any{
		"label":     "Home",
		"address":   "1 Main St",
		"isDefault": true,
	}))
	require.NoError(suite.T(), suite.store.Seed("users/u1/orders/o1", map[string]any{
		"orderNumber":   "ORD-1",
		"status":        "pending",
		"paymentStatus": "paid",
		"total":         99.5,
		"items":         []map[string]any{{"name": "Dress", "price": 99.5, "quantity": 1}},
	}))
}

func (suite *RepositoryTestSuite) TestCustomerReads() {
	customers, err := suite.customerRepo.ListCustomers(suite.ctx)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), customers, 1)
	require.Equal(suite.T(), "u1", customers[0].ID)
	require.Equal(suite.T(), "Amy Chen", customers[0].DisplayName)

	c, err := suite.customerRepo.GetCustomer(suite.ctx, "u1")
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), "0911", c.PhoneNumber)

	_, err = suite.customerRepo.GetCustomer(suite.ctx, "missing")
	require.ErrorIs(suite.T(), err, ErrNotFound)
	require.ErrorIs(suite.T(), err, docstore.ErrNotFound)

	addrs, err := suite.customerRepo.ListAddresses(suite.ctx, "u1")
	require.NoError(suite.T(), err)
	require.Len(suite.T(), addrs, 1)
	require.Equal(suite.T(), "a1", addrs[0].ID)
	require.True(suite.T(), addrs[0].IsDefault)
}

func (suite *RepositoryTestSuite) TestCustomerUpdateAndDelete() {
	require.NoError(suite.T(), suite.customerRepo.UpdateCustomer(suite.ctx, "u1", map[string]any{"status": "blocked"}))
	c, err := suite.customerRepo.GetCustomer(suite.ctx, "u1")
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), model.CustomerStatusBlocked, c.Status)

	err = suite.customerRepo.UpdateCustomer(suite.ctx, "missing", map[string]any{"status": "blocked"})
	require.ErrorIs(suite.T(), err, ErrNotFound)

	require.NoError(suite.T(), suite.customerRepo.DeleteCustomer(suite.ctx, "u1"))
	_, err = suite.customerRepo.GetCustomer(suite.ctx, "u1")
	require.ErrorIs(suite.T(), err, ErrNotFound)
}

func (suite *RepositoryTestSuite) TestInvalidIDs() {
	_, err := suite.customerRepo.GetCustomer(suite.ctx, "")
	require.ErrorIs(suite.T(), err, docstore.ErrInvalidPath)

	_, err = suite.orderRepo.GetOrder(suite.ctx, "u1", "a/b")
	require.ErrorIs(suite.T(), err, docstore.ErrInvalidPath)
}

func (suite *RepositoryTestSuite) TestOrders() {
	orders, err := suite.orderRepo.ListOrders(suite.ctx, "u1")
	require.NoError(suite.T(), err)
	require.Len(suite.T(), orders, 1)
	require.Equal(suite.T(), "o1", orders[0].ID)
	require.Equal(suite.T(), "u1", orders[0].UserID)
	require.Equal(suite.T(), model.OrderStatusPending, orders[0].Status)
	require.Len(suite.T(), orders[0].Items, 1)

	id, err := suite.orderRepo.CreateOrder(suite.ctx, "u1", map[string]any{"orderNumber": "ORD-2", "status": "processing"})
	require.NoError(suite.T(), err)

	o, err := suite.orderRepo.GetOrder(suite.ctx, "u1", id)
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), "u1", o.UserID)
	require.True(suite.T(), suite.now.Equal(o.CreatedAt))
	require.True(suite.T(), suite.now.Equal(o.UpdatedAt))

	require.NoError(suite.T(), suite.orderRepo.UpdateOrder(suite.ctx, "u1", id, map[string]any{"status": "shipped"}))
	o, err = suite.orderRepo.GetOrder(suite.ctx, "u1", id)
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), model.OrderStatusShipped, o.Status)
	require.Equal(suite.T(), "ORD-2", o.OrderNumber)

	require.NoError(suite.T(), suite.orderRepo.DeleteOrder(suite.ctx, "u1", id))
	_, err = suite.orderRepo.GetOrder(suite.ctx, "u1", id)
	require.ErrorIs(suite.T(), err, ErrNotFound)

	err = suite.orderRepo.UpdateOrder(suite.ctx, "u1", "gone", map[string]any{"status": "shipped"})
	require.ErrorIs(suite.T(), err, ErrNotFound)
}

func (suite *RepositoryTestSuite) TestProducts() {
	for _, p := range []map[string]any{
		{"name": "Jeans", "category": "GIRLS", "subcategory": "JEANS"},
		{"name": "Shorts", "category": "GIRLS", "subcategory": "SHORTS"},
		{"name": "Shirt", "category": "BOYS", "subcategory": "SHIRTS"},
	} {
		_, err := suite.productRepo.CreateProduct(suite.ctx, p)
		require.NoError(suite.T(), err)
	}

	all, err := suite.productRepo.ListProducts(suite.ctx)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), all, 3)

	girls, err := suite.productRepo.ListByCategory(suite.ctx, "GIRLS")
	require.NoError(suite.T(), err)
	require.Len(suite.T(), girls, 2)

	jeans, err := suite.productRepo.ListBySubcategory(suite.ctx, "GIRLS", "JEANS")
	require.NoError(suite.T(), err)
	require.Len(suite.T(), jeans, 1)
	require.Equal(suite.T(), "Jeans", jeans[0].Name)

	id := jeans[0].ID
	require.NoError(suite.T(), suite.productRepo.UpdateProduct(suite.ctx, id, map[string]any{"stock": 4}))
	p, err := suite.productRepo.GetProduct(suite.ctx, id)
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), 4, p.Stock)
	require.Equal(suite.T(), id, p.ID)

	require.NoError(suite.T(), suite.productRepo.DeleteProduct(suite.ctx, id))
	_, err = suite.productRepo.GetProduct(suite.ctx, id)
	require.ErrorIs(suite.T(), err, ErrNotFound)
}

func TestRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}
