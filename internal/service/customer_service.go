package service

import (
	"context"

	"github.com/RoyceAzure/lab/storeadmin/internal/infra/docstore"
	"github.com/RoyceAzure/lab/storeadmin/internal/infra/notifier"
	"github.com/RoyceAzure/lab/storeadmin/internal/model"
	"github.com/rs/zerolog"
)

type ICustomerService interface {
	Detail(ctx context.Context, userID string) (*model.CustomerView, error)
	ToggleStatus(ctx context.Context, userID string) (model.CustomerStatus, error)
	DeleteCustomer(ctx context.Context, userID string) error
}

type CustomerService struct {
	customers CustomerStore
	orders    OrderStore
	publisher
}

func NewCustomerService(customers CustomerStore, orders OrderStore, n notifier.Notifier, logger *zerolog.Logger, now Clock) ICustomerService {
	return &CustomerService{
		customers: customers,
		orders:    orders,
		publisher: publisher{
			notifier: n,
			logger:   nopLogger(logger),
			now:      defaultClock(now),
		},
	}
}

// Detail 客戶資料加上訂單(新到舊)與地址
func (s *CustomerService) Detail(ctx context.Context, userID string) (*model.CustomerView, error) {
	if err := requireID("userId", userID); err != nil {
		return nil, err
	}
	customer, err := s.customers.GetCustomer(ctx, userID)
	if err != nil {
		return nil, storeError(err, "get customer")
	}
	orders, err := s.orders.ListOrders(ctx, userID)
	if err != nil {
		return nil, storeError(err, "list customer orders")
	}
	orders = sortOrdersByCreatedDesc(orders, s.now())
	addresses, err := s.customers.ListAddresses(ctx, userID)
	if err != nil {
		return nil, storeError(err, "list addresses")
	}

	view := buildCustomerView(*customer, orders, addresses)
	view.Orders = orders
	return &view, nil
}

// ToggleStatus active <-> blocked，回傳新的狀態
func (s *CustomerService) ToggleStatus(ctx context.Context, userID string) (model.CustomerStatus, error) {
	if err := requireID("userId", userID); err != nil {
		return "", err
	}
	customer, err := s.customers.GetCustomer(ctx, userID)
	if err != nil {
		return "", storeError(err, "get customer")
	}

	next := model.CustomerStatusBlocked
	if customer.EffectiveStatus() == model.CustomerStatusBlocked {
		next = model.CustomerStatusActive
	}
	fields := map[string]any{
		"status":    string(next),
		"updatedAt": docstore.ServerTimestamp,
	}
	if err := s.customers.UpdateCustomer(ctx, userID, fields); err != nil {
		return "", storeError(err, "update customer")
	}
	s.publish(ctx, model.MutationEvent{Type: model.CustomerStatusUpdated, UserID: userID, Fields: fields})
	return next, nil
}

func (s *CustomerService) DeleteCustomer(ctx context.Context, userID string) error {
	if err := requireID("userId", userID); err != nil {
		return err
	}
	if err := s.customers.DeleteCustomer(ctx, userID); err != nil {
		return storeError(err, "delete customer")
	}
	s.publish(ctx, model.MutationEvent{Type: model.CustomerDeleted, UserID: userID})
	return nil
}
