package handler

import (
	"net/http"

	"github.com/RoyceAzure/lab/storeadmin/internal/api/dto"
	"github.com/RoyceAzure/lab/storeadmin/internal/model"
	"github.com/RoyceAzure/lab/storeadmin/internal/service"
	"github.com/RoyceAzure/rj/api"
	er "github.com/RoyceAzure/rj/util/rj_error"
	"github.com/go-chi/chi/v5"
)

type ProductHandler struct {
	productService service.IProductService
}

func NewProductHandler(productService service.IProductService) *ProductHandler {
	if productService == nil {
		panic("productService cannot be nil")
	}
	return &ProductHandler{
		productService: productService,
	}
}

// @Summary list products
// @use category / subcategory are equality queries, search matches name, brand or sku
// @Tags products
// @Produce json
// @Param search query string false "name, brand or sku"
// @Param category query string false "category or ALL"
// @Param subcategory query string false "subcategory, requires category"
// @Success 200 {object} api.Response{data=dto.ProductListResponse} "success"
// @Failure 400 {object} api.ResponseError{data=string} "InvalidArgumentCode"
// @Router /products [get]
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	products, err := h.productService.List(r.Context(), service.ProductFilter{
		Search:      q.Get("search"),
		Category:    q.Get("category"),
		Subcategory: q.Get("subcategory"),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	api.SuccessJSON(w, dto.ProductListResponse{Products: products, Total: len(products)}, nil)
}

// @Summary get product
// @Tags products
// @Produce json
// @Param id path string true "product id"
// @Success 200 {object} api.Response{data=model.Product} "success"
// @Failure 404 {object} api.ResponseError{data=string} "DataNotExistsCode"
// @Router /products/{id} [get]
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.productService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	api.SuccessJSON(w, p, nil)
}

// @Summary create product
// @use images can be data URIs or base64 encoded files, files are compressed to jpeg
// @Tags products
// @Accept json
// @Produce json
// @Param product body model.ProductInput true "product"
// @Success 200 {object} api.Response{data=model.Product} "success"
// @Failure 400 {object} api.ResponseError{data=string} "InvalidArgumentCode"
// @Router /products [post]
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var input model.ProductInput
	if !decodeBody(w, r, &input) {
		return
	}
	p, err := h.productService.Create(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	api.SuccessJSON(w, p, nil)
}

// @Summary update product
// @use omitted fields are kept, omitted images keep the stored images
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "product id"
// @Param product body model.ProductUpdate true "changed fields"
// @Success 200 {object} api.Response{data=model.Product} "success"
// @Router /products/{id} [put]
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var upd model.ProductUpdate
	if !decodeBody(w, r, &upd) {
		return
	}
	p, err := h.productService.Update(r.Context(), chi.URLParam(r, "id"), upd)
	if err != nil {
		writeError(w, err)
		return
	}
	api.SuccessJSON(w, p, nil)
}

// @Summary toggle product active
// @Tags products
// @Produce json
// @Success 200 {object} api.Response{data=model.Product} "success"
// @Router /products/{id}/active [patch]
func (h *ProductHandler) ToggleActive(w http.ResponseWriter, r *http.Request) {
	p, err := h.productService.ToggleActive(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	api.SuccessJSON(w, p, nil)
}

// @Summary update stock
// @Tags products
// @Accept json
// @Produce json
// @Param stock body dto.StockDTO true "stock"
// @Success 200 {object} api.Response{data=model.Product} "success"
// @Router /products/{id}/stock [patch]
func (h *ProductHandler) UpdateStock(w http.ResponseWriter, r *http.Request) {
	var req dto.StockDTO
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Stock == nil {
		api.ErrorJSON(w, int(er.BadRequestCode), nil, er.ErrStrMap[er.BadRequestCode])
		return
	}
	p, err := h.productService.UpdateStock(r.Context(), chi.URLParam(r, "id"), *req.Stock)
	if err != nil {
		writeError(w, err)
		return
	}
	api.SuccessJSON(w, p, nil)
}

// @Summary delete product
// @Tags products
// @Produce json
// @Success 200 {object} api.Response{data=string} "success"
// @Router /products/{id} [delete]
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.productService.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	api.SuccessJSON(w, id, nil)
}

// @Summary product taxonomy
// @Tags products
// @Produce json
// @Success 200 {object} api.Response{data=dto.TaxonomyResponse} "success"
// @Router /taxonomy [get]
func (h *ProductHandler) Taxonomy(w http.ResponseWriter, r *http.Request) {
	api.SuccessJSON(w, dto.NewTaxonomyResponse(), nil)
}
