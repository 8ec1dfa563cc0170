package service

import (
	"context"
	"testing"

	er "github.com/RoyceAzure/rj/util/rj_error"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type AggregatorTestSuite struct {
	suite.Suite
	fx  *fixture
	ctx context.Context
}

func (suite *AggregatorTestSuite) SetupTest() {
	suite.fx = newFixture(suite.T())
	suite.ctx = context.Background()
}

func (suite *AggregatorTestSuite) TestAllOrdersSortedNewestFirst() {
	agg := NewAggregator(suite.fx.customers, suite.fx.orders, 4, nil, testClock)

	orders, err := agg.AllOrders(suite.ctx)
	require.NoError(suite.T(), err)

	// o4 沒有 createdAt，以現在時間補上後排在最前面
	require.Equal(suite.T(), []string{"o4", "o1", "o2", "o3"}, orderIDs(orders))
	require.True(suite.T(), orders[0].CreatedAt.Equal(testNow))
	for i := 1; i < len(orders); i++ {
		require.False(suite.T(), orders[i].CreatedAt.After(orders[i-1].CreatedAt))
	}

	// 每筆訂單都帶上所屬客戶
	owners := map[string]string{"o1": "u1", "o2": "u1", "o3": "u2", "o4": "u3"}
	for _, o := range orders {
		require.Equal(suite.T(), owners[o.ID], o.UserID)
	}
}

func (suite *AggregatorTestSuite) TestAllOrdersIdempotentAcrossConcurrency() {
	sequential := NewAggregator(suite.fx.customers, suite.fx.orders, 1, nil, testClock)
	parallel := NewAggregator(suite.fx.customers, suite.fx.orders, 8, nil, testClock)

	first, err := sequential.AllOrders(suite.ctx)
	require.NoError(suite.T(), err)
	second, err := parallel.AllOrders(suite.ctx)
	require.NoError(suite.T(), err)
	third, err := parallel.AllOrders(suite.ctx)
	require.NoError(suite.T(), err)

	require.ElementsMatch(suite.T(), orderIDs(first), orderIDs(second))
	require.Equal(suite.T(), orderIDs(second), orderIDs(third))
}

func (suite *AggregatorTestSuite) TestPartialFailureIsolation() {
	orders := failingOrders{OrderLister: suite.fx.orders, failFor: map[string]bool{"u1": true}}
	agg := NewAggregator(suite.fx.customers, orders, 2, nil, testClock)

	result, err := agg.AllOrders(suite.ctx)
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), []string{"o4", "o3"}, orderIDs(result))
}

func (suite *AggregatorTestSuite) TestTopLevelFailureAborts() {
	agg := NewAggregator(failingCustomers{CustomerLister: suite.fx.customers}, suite.fx.orders, 2, nil, testClock)

	_, err := agg.AllOrders(suite.ctx)
	require.Error(suite.T(), err)
	requireCode(suite.T(), err, er.InternalErrorCode)

	_, err = agg.AllCustomers(suite.ctx)
	requireCode(suite.T(), err, er.InternalErrorCode)
}

func (suite *AggregatorTestSuite) TestCancelledContextDiscardsResult() {
	ctx, cancel := context.WithCancel(suite.ctx)
	cancel()
	agg := NewAggregator(suite.fx.customers, suite.fx.orders, 2, nil, testClock)

	orders, err := agg.AllOrders(ctx)
	require.Error(suite.T(), err)
	require.Nil(suite.T(), orders)
}

func (suite *AggregatorTestSuite) TestAllShipments() {
	agg := NewAggregator(suite.fx.customers, suite.fx.orders, 2, nil, testClock)

	shipments, err := agg.AllShipments(suite.ctx)
	require.NoError(suite.T(), err)
	// o1 還是 pending，不在出貨清單
	require.Equal(suite.T(), []string{"o4", "o2", "o3"}, orderIDs(shipments))
}

func (suite *AggregatorTestSuite) TestAllCustomers() {
	agg := NewAggregator(suite.fx.customers, suite.fx.orders, 2, nil, testClock)

	customers, err := agg.AllCustomers(suite.ctx)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), customers, 3)

	// 依註冊時間新到舊
	require.Equal(suite.T(), "u1", customers[0].ID)
	require.Equal(suite.T(), "u2", customers[1].ID)
	require.Equal(suite.T(), "u3", customers[2].ID)

	amy := customers[0]
	require.Equal(suite.T(), 2, amy.OrderCount)
	require.Equal(suite.T(), 150.0, amy.TotalSpent)
	require.Len(suite.T(), amy.Addresses, 1)
	require.Equal(suite.T(), "google", string(amy.AuthMethod))
	require.Equal(suite.T(), "active", string(amy.Status))

	ben := customers[1]
	// 未付款的訂單不算消費
	require.Equal(suite.T(), 1, ben.OrderCount)
	require.Equal(suite.T(), 0.0, ben.TotalSpent)
	require.Equal(suite.T(), "blocked", string(ben.Status))
	require.Equal(suite.T(), "email", string(ben.AuthMethod))
	require.NotNil(suite.T(), ben.Addresses)

	// 有存 authMethod 的以存的為準
	require.Equal(suite.T(), "email", string(customers[2].AuthMethod))
}

func (suite *AggregatorTestSuite) TestAllCustomersKeepsFailedCustomer() {
	orders := failingOrders{OrderLister: suite.fx.orders, failFor: map[string]bool{"u1": true}}
	agg := NewAggregator(suite.fx.customers, orders, 2, nil, testClock)

	customers, err := agg.AllCustomers(suite.ctx)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), customers, 3)
	require.Equal(suite.T(), "u1", customers[0].ID)
	require.Equal(suite.T(), 0, customers[0].OrderCount)
	require.Equal(suite.T(), 0.0, customers[0].TotalSpent)
}

func TestAggregatorTestSuite(t *testing.T) {
	suite.Run(t, new(AggregatorTestSuite))
}
