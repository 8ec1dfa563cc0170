package repository

import (
	"context"
	"fmt"

	"github.com/RoyceAzure/lab/storeadmin/internal/infra/docstore"
	"github.com/RoyceAzure/lab/storeadmin/internal/model"
)

type ProductRepo struct {
	store docstore.Gateway
}

func NewProductRepo(store docstore.Gateway) *ProductRepo {
	return &ProductRepo{store: store}
}

func (r *ProductRepo) CreateProduct(ctx context.Context, fields map[string]any) (string, error) {
	return r.store.Add(ctx, ProductsCollection, fields)
}

func (r *ProductRepo) GetProduct(ctx context.Context, productID string) (*model.Product, error) {
	path, err := productPath(productID)
	if err != nil {
		return nil, err
	}
	doc, err := r.store.Get(ctx, path)
	if err != nil {
		return nil, mapNotFound(err)
	}
	var p model.Product
	if err := doc.DataTo(&p); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	p.ID = doc.ID
	return &p, nil
}

func (r *ProductRepo) ListProducts(ctx context.Context) ([]model.Product, error) {
	return r.query(ctx)
}

func (r *ProductRepo) ListByCategory(ctx context.Context, category string) ([]model.Product, error) {
	return r.query(ctx, docstore.Eq("category", category))
}

func (r *ProductRepo) ListBySubcategory(ctx context.Context, category, subcategory string) ([]model.Product, error) {
	return r.query(ctx, docstore.Eq("category", category), docstore.Eq("subcategory", subcategory))
}

func (r *ProductRepo) UpdateProduct(ctx context.Context, productID string, fields map[string]any) error {
	path, err := productPath(productID)
	if err != nil {
		return err
	}
	return mapNotFound(r.store.Update(ctx, path, fields))
}

func (r *ProductRepo) DeleteProduct(ctx context.Context, productID string) error {
	path, err := productPath(productID)
	if err != nil {
		return err
	}
	return r.store.Delete(ctx, path)
}

func (r *ProductRepo) query(ctx context.Context, preds ...docstore.Predicate) ([]model.Product, error) {
	docs, err := r.store.Query(ctx, ProductsCollection, preds...)
	if err != nil {
		return nil, err
	}
	return decodeAll(docs, func(p *model.Product, id string) { p.ID = id })
}
