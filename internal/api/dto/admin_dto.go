package dto

import (
	"github.com/RoyceAzure/lab/storeadmin/internal/model"
	"github.com/RoyceAzure/lab/storeadmin/internal/service"
)

type OrderStatusDTO struct {
	Status string `json:"status"`
}

type PaymentStatusDTO struct {
	PaymentStatus    string `json:"paymentStatus"`
	PaymentReference string `json:"paymentReference"` //選填，空字串不覆寫
}

type OrderOTPDTO struct {
	OrderOTP string `json:"orderOtp"`
}

type TrackingNumberDTO struct {
	TrackingNumber string `json:"trackingNumber"`
}

type StockDTO struct {
	Stock *int `json:"stock"`
}

type OrderListResponse struct {
	Orders []model.Order      `json:"orders"`
	Stats  service.OrderStats `json:"stats"`
}

type ShipmentListResponse struct {
	Shipments []model.Order         `json:"shipments"`
	Stats     service.ShipmentStats `json:"stats"`
}

type CustomerListResponse struct {
	Customers []model.CustomerView  `json:"customers"`
	Stats     service.CustomerStats `json:"stats"`
}

type CustomerStatusResponse struct {
	UserID string               `json:"userId"`
	Status model.CustomerStatus `json:"status"`
}

type ProductListResponse struct {
	Products []model.Product `json:"products"`
	Total    int             `json:"total"`
}

// TaxonomyResponse 商品表單的下拉選單
type TaxonomyResponse struct {
	Categories    []string            `json:"categories"`
	Collections   map[string][]string `json:"collections"`
	Subcategories map[string][]string `json:"subcategories"`
	Sizes         []string            `json:"sizes"`
	Colors        []string            `json:"colors"`
}

func NewTaxonomyResponse() TaxonomyResponse {
	return TaxonomyResponse{
		Categories:    model.Categories,
		Collections:   model.CollectionsByCategory,
		Subcategories: model.SubcategoriesByCollection,
		Sizes:         model.SizeOptions,
		Colors:        model.ColorOptions,
	}
}
