package repository

import (
	"context"
	"fmt"

	"github.com/RoyceAzure/lab/storeadmin/internal/infra/docstore"
	"github.com/RoyceAzure/lab/storeadmin/internal/model"
)

type OrderRepo struct {
	store docstore.Gateway
}

func NewOrderRepo(store docstore.Gateway) *OrderRepo {
	return &OrderRepo{store: store}
}

// ListOrders userId 一律以路徑上的使用者為準
func (r *OrderRepo) ListOrders(ctx context.Context, userID string) ([]model.Order, error) {
	path, err := ordersPath(userID)
	if err != nil {
		return nil, err
	}
	docs, err := r.store.List(ctx, path)
	if err != nil {
		return nil, err
	}
	return decodeAll(docs, func(o *model.Order, id string) {
		o.ID = id
		o.UserID = userID
	})
}

func (r *OrderRepo) GetOrder(ctx context.Context, userID, orderID string) (*model.Order, error) {
	path, err := orderPath(userID, orderID)
	if err != nil {
		return nil, err
	}
	doc, err := r.store.Get(ctx, path)
	if err != nil {
		return nil, mapNotFound(err)
	}
	var o model.Order
	if err := doc.DataTo(&o); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	o.ID = doc.ID
	o.UserID = userID
	return &o, nil
}

// CreateOrder 前台的下單寫入，後台只用在初始資料與測試
func (r *OrderRepo) CreateOrder(ctx context.Context, userID string, data map[string]any) (string, error) {
	path, err := ordersPath(userID)
	if err != nil {
		return "", err
	}
	fields := make(map[string]any, len(data)+3)
	for k, v := range data {
		fields[k] = v
	}
	fields["userId"] = userID
	if _, ok := fields["createdAt"]; !ok {
		fields["createdAt"] = docstore.ServerTimestamp
	}
	fields["updatedAt"] = docstore.ServerTimestamp
	return r.store.Add(ctx, path, fields)
}

func (r *OrderRepo) UpdateOrder(ctx context.Context, userID, orderID string, fields map[string]any) error {
	path, err := orderPath(userID, orderID)
	if err != nil {
		return err
	}
	return mapNotFound(r.store.Update(ctx, path, fields))
}

func (r *OrderRepo) DeleteOrder(ctx context.Context, userID, orderID string) error {
	path, err := orderPath(userID, orderID)
	if err != nil {
		return err
	}
	return r.store.Delete(ctx, path)
}
