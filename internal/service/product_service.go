package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/RoyceAzure/lab/storeadmin/internal/infra/docstore"
	"github.com/RoyceAzure/lab/storeadmin/internal/infra/notifier"
	"github.com/RoyceAzure/lab/storeadmin/internal/model"
	"github.com/RoyceAzure/lab/storeadmin/internal/pkg/util"
	"github.com/rs/zerolog"
)

type ImageNormalizer interface {
	Normalize(input string) (string, error)
}

type IProductService interface {
	Create(ctx context.Context, input model.ProductInput) (*model.Product, error)
	Update(ctx context.Context, productID string, upd model.ProductUpdate) (*model.Product, error)
	Delete(ctx context.Context, productID string) error
	ToggleActive(ctx context.Context, productID string) (*model.Product, error)
	UpdateStock(ctx context.Context, productID string, stock int) (*model.Product, error)
	Get(ctx context.Context, productID string) (*model.Product, error)
	List(ctx context.Context, f ProductFilter) ([]model.Product, error)
}

// ProductService 商品完全由後台管理
// slug、discount、inStock、variants 每次寫入時重新計算
type ProductService struct {
	products ProductStore
	images   ImageNormalizer
	publisher
}

func NewProductService(products ProductStore, images ImageNormalizer, n notifier.Notifier, logger *zerolog.Logger, now Clock) IProductService {
	return &ProductService{
		products: products,
		images:   images,
		publisher: publisher{
			notifier: n,
			logger:   nopLogger(logger),
			now:      defaultClock(now),
		},
	}
}

func (s *ProductService) Create(ctx context.Context, input model.ProductInput) (*model.Product, error) {
	p := &model.Product{
		Name:          strings.TrimSpace(input.Name),
		Brand:         input.Brand,
		Model:         input.Model,
		SKU:           input.SKU,
		Category:      input.Category,
		Collection:    input.Collection,
		Subcategory:   input.Subcategory,
		Price:         input.Price,
		OriginalPrice: input.OriginalPrice,
		Stock:         input.Stock,
		Rating:        input.Rating,
		Reviews:       input.Reviews,
		Description:   input.Description,
		Material:      input.Material,
		Pattern:       input.Pattern,
		Care:          input.Care,
		Fit:           input.Fit,
		Sizes:         input.Sizes,
		Colors:        input.Colors,
		Images:        input.Images,
		IsActive:      true,
	}
	if p.OriginalPrice <= 0 {
		p.OriginalPrice = p.Price
	}
	if err := validateProduct(p); err != nil {
		return nil, err
	}
	images, err := s.normalizeImages(input.Images)
	if err != nil {
		return nil, err
	}
	p.Images = images
	derive(p)

	fields := productFields(p)
	fields["isActive"] = true
	fields["createdAt"] = docstore.ServerTimestamp
	fields["updatedAt"] = docstore.ServerTimestamp

	id, err := s.products.CreateProduct(ctx, fields)
	if err != nil {
		return nil, storeError(err, "create product")
	}
	s.publish(ctx, model.MutationEvent{Type: model.ProductCreated, ProductID: id, Fields: summaryFields(p)})
	return s.Get(ctx, id)
}

// Update 沒有提供新圖片時保留原本的圖片
func (s *ProductService) Update(ctx context.Context, productID string, upd model.ProductUpdate) (*model.Product, error) {
	if err := requireID("productId", productID); err != nil {
		return nil, err
	}
	p, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return nil, storeError(err, "get product")
	}

	applyUpdate(p, upd)
	if p.OriginalPrice <= 0 {
		p.OriginalPrice = p.Price
	}
	if len(upd.Images) > 0 {
		p.Images = upd.Images
	}
	if err := validateProduct(p); err != nil {
		return nil, err
	}
	if len(upd.Images) > 0 {
		images, err := s.normalizeImages(upd.Images)
		if err != nil {
			return nil, err
		}
		p.Images = images
	}
	derive(p)

	fields := productFields(p)
	fields["updatedAt"] = docstore.ServerTimestamp
	if err := s.products.UpdateProduct(ctx, productID, fields); err != nil {
		return nil, storeError(err, "update product")
	}
	s.publish(ctx, model.MutationEvent{Type: model.ProductUpdated, ProductID: productID, Fields: summaryFields(p)})
	return s.Get(ctx, productID)
}

// Delete 直接刪除文件，跟 isActive 下架不同
func (s *ProductService) Delete(ctx context.Context, productID string) error {
	if err := requireID("productId", productID); err != nil {
		return err
	}
	if err := s.products.DeleteProduct(ctx, productID); err != nil {
		return storeError(err, "delete product")
	}
	s.publish(ctx, model.MutationEvent{Type: model.ProductDeleted, ProductID: productID})
	return nil
}

func (s *ProductService) ToggleActive(ctx context.Context, productID string) (*model.Product, error) {
	if err := requireID("productId", productID); err != nil {
		return nil, err
	}
	p, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return nil, storeError(err, "get product")
	}
	fields := map[string]any{
		"isActive":  !p.IsActive,
		"updatedAt": docstore.ServerTimestamp,
	}
	if err := s.products.UpdateProduct(ctx, productID, fields); err != nil {
		return nil, storeError(err, "update product")
	}
	s.publish(ctx, model.MutationEvent{Type: model.ProductActiveToggled, ProductID: productID, Fields: fields})
	return s.Get(ctx, productID)
}

func (s *ProductService) UpdateStock(ctx context.Context, productID string, stock int) (*model.Product, error) {
	if err := requireID("productId", productID); err != nil {
		return nil, err
	}
	if stock < 0 {
		return nil, invalid("stock must not be negative")
	}
	fields := map[string]any{
		"stock":     stock,
		"inStock":   stock > 0,
		"updatedAt": docstore.ServerTimestamp,
	}
	if err := s.products.UpdateProduct(ctx, productID, fields); err != nil {
		return nil, storeError(err, "update product stock")
	}
	s.publish(ctx, model.MutationEvent{Type: model.ProductStockUpdated, ProductID: productID, Fields: fields})
	return s.Get(ctx, productID)
}

func (s *ProductService) Get(ctx context.Context, productID string) (*model.Product, error) {
	if err := requireID("productId", productID); err != nil {
		return nil, err
	}
	p, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return nil, storeError(err, "get product")
	}
	return p, nil
}

// List category / subcategory 交給資料庫等值查詢，關鍵字搜尋在記憶體內做
func (s *ProductService) List(ctx context.Context, f ProductFilter) ([]model.Product, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	var (
		products []model.Product
		err      error
	)
	switch {
	case isAllCategory(f.Category):
		products, err = s.products.ListProducts(ctx)
	case f.Subcategory != "":
		products, err = s.products.ListBySubcategory(ctx, f.Category, f.Subcategory)
	default:
		products, err = s.products.ListByCategory(ctx, f.Category)
	}
	if err != nil {
		return nil, storeError(err, "list products")
	}
	return FilterProducts(products, f), nil
}

func (s *ProductService) normalizeImages(inputs []string) ([]string, error) {
	out := make([]string, 0, len(inputs))
	for i, img := range inputs {
		normalized, err := s.images.Normalize(img)
		if err != nil {
			return nil, invalid("image %d: %v", i+1, err)
		}
		out = append(out, normalized)
	}
	return out, nil
}

func validateProduct(p *model.Product) error {
	switch {
	case strings.TrimSpace(p.Name) == "":
		return invalid("name is required")
	case p.Price <= 0:
		return invalid("price must be greater than 0")
	case p.OriginalPrice < 0:
		return invalid("original price must not be negative")
	case p.Stock < 0:
		return invalid("stock must not be negative")
	case p.Category == "":
		return invalid("category is required")
	case !model.IsValidCategory(p.Category):
		return invalid("unknown category %q", p.Category)
	case p.Collection == "":
		return invalid("collection is required")
	case !model.IsValidCollection(p.Category, p.Collection):
		return invalid("collection %q does not belong to category %q", p.Collection, p.Category)
	case !model.IsValidSubcategory(p.Collection, p.Subcategory):
		return invalid("subcategory %q does not belong to collection %q", p.Subcategory, p.Collection)
	case len(p.Sizes) == 0:
		return invalid("at least one size is required")
	case len(p.Colors) == 0:
		return invalid("at least one color is required")
	case len(p.Images) == 0:
		return invalid("at least one image is required")
	}
	for _, size := range p.Sizes {
		if !slices.Contains(model.SizeOptions, size) {
			return invalid("unknown size %q", size)
		}
	}
	for _, color := range p.Colors {
		if !slices.Contains(model.ColorOptions, color) {
			return invalid("unknown color %q", color)
		}
	}
	return nil
}

func derive(p *model.Product) {
	p.Slug = util.ComputeSlug(p.Name)
	p.Discount = util.ComputeDiscount(p.Price, p.OriginalPrice)
	p.InStock = p.Stock > 0
	p.Variants = fmt.Sprintf("%d colors", len(p.Colors))
}

func applyUpdate(p *model.Product, upd model.ProductUpdate) {
	setString := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	setString(&p.Name, upd.Name)
	setString(&p.Brand, upd.Brand)
	setString(&p.Model, upd.Model)
	setString(&p.SKU, upd.SKU)
	setString(&p.Category, upd.Category)
	setString(&p.Collection, upd.Collection)
	setString(&p.Subcategory, upd.Subcategory)
	setString(&p.Description, upd.Description)
	setString(&p.Material, upd.Material)
	setString(&p.Pattern, upd.Pattern)
	setString(&p.Care, upd.Care)
	setString(&p.Fit, upd.Fit)
	if upd.Price != nil {
		p.Price = *upd.Price
	}
	if upd.OriginalPrice != nil {
		p.OriginalPrice = *upd.OriginalPrice
	}
	if upd.Stock != nil {
		p.Stock = *upd.Stock
	}
	if upd.Rating != nil {
		p.Rating = *upd.Rating
	}
	if upd.Reviews != nil {
		p.Reviews = *upd.Reviews
	}
	if upd.Sizes != nil {
		p.Sizes = upd.Sizes
	}
	if upd.Colors != nil {
		p.Colors = upd.Colors
	}
	p.Name = strings.TrimSpace(p.Name)
}

// productFields 可編輯欄位，isActive 與 createdAt 另外處理
func productFields(p *model.Product) map[string]any {
	return map[string]any{
		"name":          p.Name,
		"brand":         p.Brand,
		"model":         p.Model,
		"sku":           p.SKU,
		"category":      p.Category,
		"collection":    p.Collection,
		"subcategory":   p.Subcategory,
		"price":         p.Price,
		"originalPrice": p.OriginalPrice,
		"discount":      p.Discount,
		"stock":         p.Stock,
		"inStock":       p.InStock,
		"rating":        p.Rating,
		"reviews":       p.Reviews,
		"variants":      p.Variants,
		"description":   p.Description,
		"material":      p.Material,
		"pattern":       p.Pattern,
		"care":          p.Care,
		"fit":           p.Fit,
		"images":        p.Images,
		"sizes":         p.Sizes,
		"colors":        p.Colors,
		"slug":          p.Slug,
	}
}

// summaryFields 通知內容不帶圖片
func summaryFields(p *model.Product) map[string]any {
	return map[string]any{
		"name":     p.Name,
		"sku":      p.SKU,
		"category": p.Category,
		"price":    p.Price,
		"discount": p.Discount,
		"stock":    p.Stock,
		"slug":     p.Slug,
	}
}
