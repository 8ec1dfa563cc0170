package repository

import (
	"context"
	"fmt"

	"github.com/RoyceAzure/lab/storeadmin/internal/infra/docstore"
	"github.com/RoyceAzure/lab/storeadmin/internal/model"
)

// CustomerRepo users 集合由前台寫入，後台只讀取、改狀態與刪除
type CustomerRepo struct {
	store docstore.Gateway
}

func NewCustomerRepo(store docstore.Gateway) *CustomerRepo {
	return &CustomerRepo{store: store}
}

func (r *CustomerRepo) ListCustomers(ctx context.Context) ([]model.Customer, error) {
	docs, err := r.store.List(ctx, UsersCollection)
	if err != nil {
		return nil, err
	}
	return decodeAll(docs, func(c *model.Customer, id string) { c.ID = id })
}

func (r *CustomerRepo) GetCustomer(ctx context.Context, userID string) (*model.Customer, error) {
	path, err := customerPath(userID)
	if err != nil {
		return nil, err
	}
	doc, err := r.store.Get(ctx, path)
	if err != nil {
		return nil, mapNotFound(err)
	}
	var c model.Customer
	if err := doc.DataTo(&c); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	c.ID = doc.ID
	return &c, nil
}

func (r *CustomerRepo) ListAddresses(ctx context.Context, userID string) ([]model.Address, error) {
	path, err := addressesPath(userID)
	if err != nil {
		return nil, err
	}
	docs, err := r.store.List(ctx, path)
	if err != nil {
		return nil, err
	}
	return decodeAll(docs, func(a *model.Address, id string) { a.ID = id })
}

func (r *CustomerRepo) UpdateCustomer(ctx context.Context, userID string, fields map[string]any) error {
	path, err := customerPath(userID)
	if err != nil {
		return err
	}
	return mapNotFound(r.store.Update(ctx, path, fields))
}

// DeleteCustomer 只刪除 users/{id} 文件，orders 與 addresses 子集合保留
func (r *CustomerRepo) DeleteCustomer(ctx context.Context, userID string) error {
	path, err := customerPath(userID)
	if err != nil {
		return err
	}
	return r.store.Delete(ctx, path)
}
