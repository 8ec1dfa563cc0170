package router

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/RoyceAzure/lab/storeadmin/internal/api"
	"github.com/RoyceAzure/lab/storeadmin/internal/api/handler"
	m "github.com/RoyceAzure/lab/storeadmin/internal/api/middleware"
	"github.com/RoyceAzure/lab/storeadmin/internal/infra/docstore/memory"
	"github.com/RoyceAzure/lab/storeadmin/internal/infra/notifier"
	"github.com/RoyceAzure/lab/storeadmin/internal/infra/repository"
	"github.com/RoyceAzure/lab/storeadmin/internal/pkg/imaging"
	"github.com/RoyceAzure/lab/storeadmin/internal/service"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type RouterTestSuite struct {
	suite.Suite
	server *httptest.Server
}

func (suite *RouterTestSuite) SetupTest() {
	// 準備測試資料
	store := memory.NewStore()
	now := time.Now()
	seed := func(path string, fields map[string]any) {
		require.NoError(suite.T(), store.Seed(path, fields))
	}
	seed("users/u1", map[string]any{
		"displayName": "Amy Chen",
		"email":       "amy@gmail.com",
		"photoURL":    "https://img/amy.png",
		"createdAt":   now.Add(-48 * time.Hour),
	})
	seed("users/u1/orders/o1", map[string]any{
		"orderNumber":   "KID-1001",
		"createdAt":     now.Add(-time.Hour),
		"status":        "pending",
		"paymentStatus": "paid",
		"total":         100.0,
		"items":         []map[string]any{{"name": "Pink Dress", "price": 50.0, "quantity": 2}},
	})
	seed("users/u1/orders/o2", map[string]any{
		"orderNumber":    "KID-1002",
		"createdAt":      now.Add(-72 * time.Hour),
		"status":         "shipped",
		"paymentStatus":  "paid",
		"shippingMethod": "express",
		"total":          40.0,
	})

	customers := repository.NewCustomerRepo(store)
	orders := repository.NewOrderRepo(store)
	products := repository.NewProductRepo(store)
	n := notifier.NewNopNotifier()

	aggregator := service.NewAggregator(customers, orders, 2, nil, nil)
	server := api.NewServer(
		handler.NewOrderHandler(aggregator, service.NewOrderService(orders, n, nil, nil)),
		handler.NewCustomerHandler(aggregator, service.NewCustomerService(customers, orders, n, nil, nil)),
		handler.NewProductHandler(service.NewProductService(products, imaging.NewNormalizer(imaging.DefaultMaxWidth, imaging.DefaultQuality), n, nil, nil)),
		handler.NewDashboardHandler(service.NewDashboardService(aggregator, customers, products, nil)),
	)
	suite.server = httptest.NewServer(SetupRouter(server, nil, nil))
}

func (suite *RouterTestSuite) TearDownTest() {
	suite.server.Close()
}

func (suite *RouterTestSuite) do(method, path, body string) (int, string) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, suite.server.URL+path, reader)
	require.NoError(suite.T(), err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(suite.T(), err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(suite.T(), err)
	return resp.StatusCode, string(raw)
}

func (suite *RouterTestSuite) TestHealthz() {
	status, _ := suite.do(http.MethodGet, "/healthz", "")
	require.Equal(suite.T(), http.StatusOK, status)
}

func (suite *RouterTestSuite) TestListOrders() {
	status, body := suite.do(http.MethodGet, "/api/v1/orders", "")
	require.Equal(suite.T(), http.StatusOK, status)
	require.Contains(suite.T(), body, "KID-1001")
	require.Contains(suite.T(), body, "KID-1002")

	status, body = suite.do(http.MethodGet, "/api/v1/orders?status=shipped", "")
	require.Equal(suite.T(), http.StatusOK, status)
	require.Contains(suite.T(), body, "KID-1002")
	require.NotContains(suite.T(), body, "KID-1001")

	status, _ = suite.do(http.MethodGet, "/api/v1/orders?status=lost", "")
	require.NotEqual(suite.T(), http.StatusOK, status)
}

func (suite *RouterTestSuite) TestUpdateOrderStatus() {
	status, body := suite.do(http.MethodPatch, "/api/v1/orders/u1/o1/status", `{"status":"processing"}`)
	require.Equal(suite.T(), http.StatusOK, status)
	require.Contains(suite.T(), body, "processing")

	status, _ = suite.do(http.MethodPatch, "/api/v1/orders/u1/o1/status", `{"status":`)
	require.NotEqual(suite.T(), http.StatusOK, status)

	status, _ = suite.do(http.MethodPatch, "/api/v1/orders/u1/o1/status", `{"status":"lost"}`)
	require.NotEqual(suite.T(), http.StatusOK, status)

	status, _ = suite.do(http.MethodGet, "/api/v1/orders/u1/missing", "")
	require.NotEqual(suite.T(), http.StatusOK, status)
}

func (suite *RouterTestSuite) TestShipments() {
	status, body := suite.do(http.MethodGet, "/api/v1/shipments?method=express", "")
	require.Equal(suite.T(), http.StatusOK, status)
	require.Contains(suite.T(), body, "KID-1002")
	require.NotContains(suite.T(), body, "KID-1001")

	status, body = suite.do(http.MethodPatch, "/api/v1/shipments/u1/o2/tracking", `{"trackingNumber":"TRK-55"}`)
	require.Equal(suite.T(), http.StatusOK, status)
	require.Contains(suite.T(), body, "TRK-55")

	status, body = suite.do(http.MethodPatch, "/api/v1/shipments/u1/o2/status", `{"status":"delivered"}`)
	require.Equal(suite.T(), http.StatusOK, status)
	require.Contains(suite.T(), body, "deliveredAt")
}

func (suite *RouterTestSuite) TestCustomers() {
	status, body := suite.do(http.MethodGet, "/api/v1/customers?auth=google", "")
	require.Equal(suite.T(), http.StatusOK, status)
	require.Contains(suite.T(), body, "Amy Chen")

	status, body = suite.do(http.MethodGet, "/api/v1/customers/u1", "")
	require.Equal(suite.T(), http.StatusOK, status)
	require.Contains(suite.T(), body, "KID-1001")

	status, body = suite.do(http.MethodPatch, "/api/v1/customers/u1/status", "")
	require.Equal(suite.T(), http.StatusOK, status)
	require.Contains(suite.T(), body, "blocked")

	status, _ = suite.do(http.MethodGet, "/api/v1/customers?auth=line", "")
	require.NotEqual(suite.T(), http.StatusOK, status)
}

func (suite *RouterTestSuite) TestProducts() {
	create := `{"name":"Denim Jacket","category":"BOYS","collection":"TOPS","subcategory":"JACKETS",
		"price":25000,"originalPrice":30000,"stock":4,"sizes":["6-8 YEARS"],"colors":["Blue"],
		"images":["data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNk+M9QDwADhgGAWjR9awAAAABJRU5ErkJggg=="]}`
	status, body := suite.do(http.MethodPost, "/api/v1/products", create)
	require.Equal(suite.T(), http.StatusOK, status)
	require.Contains(suite.T(), body, "denim-jacket")

	status, body = suite.do(http.MethodGet, "/api/v1/products?category=BOYS&subcategory=JACKETS", "")
	require.Equal(suite.T(), http.StatusOK, status)
	require.Contains(suite.T(), body, "Denim Jacket")

	status, _ = suite.do(http.MethodPost, "/api/v1/products", `{"name":"No Images","category":"BOYS"}`)
	require.NotEqual(suite.T(), http.StatusOK, status)

	status, body = suite.do(http.MethodGet, "/api/v1/taxonomy", "")
	require.Equal(suite.T(), http.StatusOK, status)
	require.Contains(suite.T(), body, "NEW ARRIVALS")
}

func (suite *RouterTestSuite) TestDashboard() {
	status, body := suite.do(http.MethodGet, "/api/v1/dashboard", "")
	require.Equal(suite.T(), http.StatusOK, status)
	require.Contains(suite.T(), body, "revenueTrend")
	require.Contains(suite.T(), body, "Pink Dress")
}

func (suite *RouterTestSuite) TestAggregationLimit() {
	server := api.NewServer(
		handler.NewOrderHandler(service.NewAggregator(repository.NewCustomerRepo(memory.NewStore()), repository.NewOrderRepo(memory.NewStore()), 1, nil, nil),
			service.NewOrderService(repository.NewOrderRepo(memory.NewStore()), nil, nil, nil)),
		&handler.CustomerHandler{},
		&handler.ProductHandler{},
		&handler.DashboardHandler{},
	)
	limited := httptest.NewServer(SetupRouter(server, m.NewRateLimitMiddleware(0.01, 1), nil))
	defer limited.Close()

	get := func(path string) int {
		resp, err := http.Get(limited.URL + path)
		require.NoError(suite.T(), err)
		resp.Body.Close()
		return resp.StatusCode
	}
	require.Equal(suite.T(), http.StatusOK, get("/api/v1/orders"))
	require.Equal(suite.T(), http.StatusTooManyRequests, get("/api/v1/shipments"))
	// 非彙整的路由不受影響
	require.Equal(suite.T(), http.StatusOK, get("/healthz"))
	require.Equal(suite.T(), http.StatusOK, get("/api/v1/taxonomy"))
}

func TestRouterTestSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}
