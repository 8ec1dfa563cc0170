package service

import (
	"context"
	"sort"
	"time"

	"github.com/RoyceAzure/lab/storeadmin/internal/model"
	er "github.com/RoyceAzure/rj/util/rj_error"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const DefaultAggregationConcurrency = 8

type CustomerLister interface {
	ListCustomers(ctx context.Context) ([]model.Customer, error)
	ListAddresses(ctx context.Context, userID string) ([]model.Address, error)
}

type OrderLister interface {
	ListOrders(ctx context.Context, userID string) ([]model.Order, error)
}

type IAggregator interface {
	AllOrders(ctx context.Context) ([]model.Order, error)
	AllShipments(ctx context.Context) ([]model.Order, error)
	AllCustomers(ctx context.Context) ([]model.CustomerView, error)
}

/*
Aggregator 把分散在 users/{uid}/orders 底下的訂單攤平成一份清單
每個客戶一次子集合查詢，某個客戶查詢失敗只記 log 並略過，
只有 users 集合本身讀取失敗才整個回傳錯誤
*/
type Aggregator struct {
	customers   CustomerLister
	orders      OrderLister
	concurrency int
	logger      *zerolog.Logger
	now         Clock
}

// NewAggregator concurrency 為 1 時等同逐一查詢
func NewAggregator(customers CustomerLister, orders OrderLister, concurrency int, logger *zerolog.Logger, now Clock) *Aggregator {
	if concurrency <= 0 {
		concurrency = DefaultAggregationConcurrency
	}
	return &Aggregator{
		customers:   customers,
		orders:      orders,
		concurrency: concurrency,
		logger:      nopLogger(logger),
		now:         defaultClock(now),
	}
}

func (a *Aggregator) AllOrders(ctx context.Context) ([]model.Order, error) {
	customers, err := a.customers.ListCustomers(ctx)
	if err != nil {
		return nil, er.New(er.InternalErrorCode, "list customers: "+err.Error())
	}

	perCustomer := make([][]model.Order, len(customers))
	err = a.forEachCustomer(ctx, customers, func(ctx context.Context, i int, c model.Customer) {
		orders, err := a.orders.ListOrders(ctx, c.ID)
		if err != nil {
			a.logger.Error().Err(err).Str("user_id", c.ID).Msg("skip customer orders")
			return
		}
		perCustomer[i] = orders
	})
	if err != nil {
		return nil, err
	}

	all := make([]model.Order, 0)
	for _, orders := range perCustomer {
		all = append(all, orders...)
	}
	return a.sortOrders(all), nil
}

// AllShipments 只保留已進入物流流程的訂單
func (a *Aggregator) AllShipments(ctx context.Context) ([]model.Order, error) {
	orders, err := a.AllOrders(ctx)
	if err != nil {
		return nil, err
	}
	shipments := make([]model.Order, 0, len(orders))
	for _, o := range orders {
		if o.Status.IsShipment() {
			shipments = append(shipments, o)
		}
	}
	return shipments, nil
}

// AllCustomers 子集合讀取失敗的客戶仍保留，訂單數與地址為空
func (a *Aggregator) AllCustomers(ctx context.Context) ([]model.CustomerView, error) {
	customers, err := a.customers.ListCustomers(ctx)
	if err != nil {
		return nil, er.New(er.InternalErrorCode, "list customers: "+err.Error())
	}

	views := make([]model.CustomerView, len(customers))
	err = a.forEachCustomer(ctx, customers, func(ctx context.Context, i int, c model.Customer) {
		orders, err := a.orders.ListOrders(ctx, c.ID)
		if err != nil {
			a.logger.Error().Err(err).Str("user_id", c.ID).Msg("skip customer orders")
			orders = nil
		}
		addresses, err := a.customers.ListAddresses(ctx, c.ID)
		if err != nil {
			a.logger.Error().Err(err).Str("user_id", c.ID).Msg("skip customer addresses")
			addresses = nil
		}
		views[i] = buildCustomerView(c, orders, addresses)
	})
	if err != nil {
		return nil, err
	}

	for i := range views {
		if views[i].CreatedAt.IsZero() {
			views[i].CreatedAt = a.now()
		}
	}
	sort.SliceStable(views, func(i, j int) bool {
		return views[i].CreatedAt.After(views[j].CreatedAt)
	})
	return views, nil
}

// forEachCustomer 以 errgroup 控制同時查詢數量，callback 自行處理錯誤
// ctx 被取消時丟棄部分結果並回傳 ctx.Err()
func (a *Aggregator) forEachCustomer(ctx context.Context, customers []model.Customer, fn func(ctx context.Context, i int, c model.Customer)) error {
	var g errgroup.Group
	g.SetLimit(a.concurrency)
	for i, c := range customers {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			fn(ctx, i, c)
			return nil
		})
	}
	g.Wait()
	return ctx.Err()
}

func (a *Aggregator) sortOrders(orders []model.Order) []model.Order {
	return sortOrdersByCreatedDesc(orders, a.now())
}

// sortOrdersByCreatedDesc 沒有 createdAt 的訂單以 now 補上，依 createdAt 新到舊穩定排序
func sortOrdersByCreatedDesc(orders []model.Order, now time.Time) []model.Order {
	for i := range orders {
		if orders[i].CreatedAt.IsZero() {
			orders[i].CreatedAt = now
		}
	}
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders
}

func buildCustomerView(c model.Customer, orders []model.Order, addresses []model.Address) model.CustomerView {
	spent := decimal.Zero
	for _, o := range orders {
		if o.IsPaid() {
			spent = spent.Add(decimal.NewFromFloat(o.Total))
		}
	}
	if addresses == nil {
		addresses = []model.Address{}
	}
	return model.CustomerView{
		Customer:   c,
		AuthMethod: c.ResolveAuthMethod(),
		Status:     c.EffectiveStatus(),
		OrderCount: len(orders),
		TotalSpent: spent.InexactFloat64(),
		Addresses:  addresses,
	}
}
