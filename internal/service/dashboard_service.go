package service

import (
	"context"
	"sort"
	"time"

	"github.com/RoyceAzure/lab/storeadmin/internal/model"
	er "github.com/RoyceAzure/rj/util/rj_error"
	"github.com/shopspring/decimal"
)

const (
	recentOrdersSize = 5
	topProductsSize  = 5
	trendDays        = 7
	lowStockLimit    = 5
	changeWindow     = 30 * 24 * time.Hour
)

type DashboardStats struct {
	TotalRevenue     float64 `json:"totalRevenue"`
	TotalOrders      int     `json:"totalOrders"`
	TotalCustomers   int     `json:"totalCustomers"`
	TotalProducts    int     `json:"totalProducts"`
	PendingOrders    int     `json:"pendingOrders"`
	ProcessingOrders int     `json:"processingOrders"`
	ShippedOrders    int     `json:"shippedOrders"`
	DeliveredOrders  int     `json:"deliveredOrders"`
	LowStockProducts int     `json:"lowStockProducts"`
	RevenueChange    float64 `json:"revenueChange"`
	OrdersChange     float64 `json:"ordersChange"`
	CustomersChange  float64 `json:"customersChange"`
}

type TopProduct struct {
	Name     string  `json:"name"`
	Image    string  `json:"image"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

type RevenuePoint struct {
	Date    time.Time `json:"date"`
	Day     string    `json:"day"`
	Revenue float64   `json:"revenue"`
	Orders  int       `json:"orders"`
}

type Dashboard struct {
	Stats        DashboardStats `json:"stats"`
	RecentOrders []model.Order  `json:"recentOrders"`
	TopProducts  []TopProduct   `json:"topProducts"`
	RevenueTrend []RevenuePoint `json:"revenueTrend"`
}

type IDashboardService interface {
	Build(ctx context.Context) (*Dashboard, error)
}

type DashboardService struct {
	aggregator IAggregator
	customers  CustomerLister
	products   ProductStore
	now        Clock
}

func NewDashboardService(aggregator IAggregator, customers CustomerLister, products ProductStore, now Clock) IDashboardService {
	return &DashboardService{
		aggregator: aggregator,
		customers:  customers,
		products:   products,
		now:        defaultClock(now),
	}
}

func (s *DashboardService) Build(ctx context.Context) (*Dashboard, error) {
	orders, err := s.aggregator.AllOrders(ctx)
	if err != nil {
		return nil, err
	}
	customers, err := s.customers.ListCustomers(ctx)
	if err != nil {
		return nil, er.New(er.InternalErrorCode, "list customers: "+err.Error())
	}
	products, err := s.products.ListProducts(ctx)
	if err != nil {
		return nil, storeError(err, "list products")
	}
	d := ComputeDashboard(orders, customers, products, s.now())
	return &d, nil
}

// ComputeDashboard orders 需已依 createdAt 新到舊排序
func ComputeDashboard(orders []model.Order, customers []model.Customer, products []model.Product, now time.Time) Dashboard {
	recent := orders
	if len(recent) > recentOrdersSize {
		recent = recent[:recentOrdersSize]
	}
	return Dashboard{
		Stats:        computeDashboardStats(orders, customers, products, now),
		RecentOrders: recent,
		TopProducts:  computeTopProducts(orders),
		RevenueTrend: computeRevenueTrend(orders, now),
	}
}

func computeDashboardStats(orders []model.Order, customers []model.Customer, products []model.Product, now time.Time) DashboardStats {
	currentStart := now.Add(-changeWindow)
	previousStart := now.Add(-2 * changeWindow)
	inCurrent := func(t time.Time) bool { return !t.Before(currentStart) }
	inPrevious := func(t time.Time) bool { return !t.Before(previousStart) && t.Before(currentStart) }

	stats := DashboardStats{
		TotalOrders:    len(orders),
		TotalCustomers: len(customers),
		TotalProducts:  len(products),
	}

	revenue, currentRevenue, previousRevenue := decimal.Zero, decimal.Zero, decimal.Zero
	currentOrders, previousOrders := 0, 0
	for _, o := range orders {
		switch o.Status {
		case model.OrderStatusPending:
			stats.PendingOrders++
		case model.OrderStatusProcessing:
			stats.ProcessingOrders++
		case model.OrderStatusShipped:
			stats.ShippedOrders++
		case model.OrderStatusDelivered:
			stats.DeliveredOrders++
		}

		total := decimal.NewFromFloat(o.Total)
		switch {
		case inCurrent(o.CreatedAt):
			currentOrders++
			if o.IsPaid() {
				currentRevenue = currentRevenue.Add(total)
			}
		case inPrevious(o.CreatedAt):
			previousOrders++
			if o.IsPaid() {
				previousRevenue = previousRevenue.Add(total)
			}
		}
		if o.IsPaid() {
			revenue = revenue.Add(total)
		}
	}

	currentCustomers, previousCustomers := 0, 0
	for _, c := range customers {
		switch {
		case inCurrent(c.CreatedAt):
			currentCustomers++
		case inPrevious(c.CreatedAt):
			previousCustomers++
		}
	}

	for _, p := range products {
		if p.Stock > 0 && p.Stock <= lowStockLimit {
			stats.LowStockProducts++
		}
	}

	stats.TotalRevenue = revenue.InexactFloat64()
	stats.RevenueChange = percentChange(currentRevenue, previousRevenue)
	stats.OrdersChange = percentChange(decimal.NewFromInt(int64(currentOrders)), decimal.NewFromInt(int64(previousOrders)))
	stats.CustomersChange = percentChange(decimal.NewFromInt(int64(currentCustomers)), decimal.NewFromInt(int64(previousCustomers)))
	return stats
}

// percentChange 前期為 0 時回傳 0
func percentChange(current, previous decimal.Decimal) float64 {
	if !previous.IsPositive() {
		return 0
	}
	return current.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100)).Round(2).InexactFloat64()
}

// computeTopProducts 以商品名稱分組，營收 = 單價 x 數量
func computeTopProducts(orders []model.Order) []TopProduct {
	type acc struct {
		TopProduct
		revenue decimal.Decimal
	}
	byName := make(map[string]*acc)
	names := make([]string, 0)
	for _, o := range orders {
		for _, item := range o.Items {
			a, ok := byName[item.Name]
			if !ok {
				a = &acc{TopProduct: TopProduct{Name: item.Name, Image: item.Image}, revenue: decimal.Zero}
				byName[item.Name] = a
				names = append(names, item.Name)
			}
			a.Quantity += item.Quantity
			a.revenue = a.revenue.Add(decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity))))
		}
	}

	sort.SliceStable(names, func(i, j int) bool {
		return byName[names[i]].revenue.GreaterThan(byName[names[j]].revenue)
	})
	if len(names) > topProductsSize {
		names = names[:topProductsSize]
	}

	top := make([]TopProduct, 0, len(names))
	for _, name := range names {
		a := byName[name]
		a.Revenue = a.revenue.InexactFloat64()
		top = append(top, a.TopProduct)
	}
	return top
}

// computeRevenueTrend 含今天往前 7 天，以 now 所在時區的午夜切日，只算已付款訂單
func computeRevenueTrend(orders []model.Order, now time.Time) []RevenuePoint {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())

	points := make([]RevenuePoint, 0, trendDays)
	for i := trendDays - 1; i >= 0; i-- {
		dayStart := today.AddDate(0, 0, -i)
		dayEnd := dayStart.AddDate(0, 0, 1)
		revenue := decimal.Zero
		count := 0
		for _, o := range orders {
			if !o.IsPaid() || o.CreatedAt.Before(dayStart) || !o.CreatedAt.Before(dayEnd) {
				continue
			}
			revenue = revenue.Add(decimal.NewFromFloat(o.Total))
			count++
		}
		points = append(points, RevenuePoint{
			Date:    dayStart,
			Day:     dayStart.Format("Mon"),
			Revenue: revenue.InexactFloat64(),
			Orders:  count,
		})
	}
	return points
}
