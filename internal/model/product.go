package model

import "time"

// Product 存放於 products/{productId}，由後台完整管理
type Product struct {
	ID            string    `json:"id" firestore:"-"`
	Name          string    `json:"name" firestore:"name"`
	Brand         string    `json:"brand" firestore:"brand"`
	Model         string    `json:"model" firestore:"model"`
	SKU           string    `json:"sku" firestore:"sku"`
	Category      string    `json:"category" firestore:"category"`
	Collection    string    `json:"collection" firestore:"collection"`
	Subcategory   string    `json:"subcategory" firestore:"subcategory"`
	Price         float64   `json:"price" firestore:"price"`
	OriginalPrice float64   `json:"originalPrice" firestore:"originalPrice"`
	Discount      int       `json:"discount" firestore:"discount"`
	Stock         int       `json:"stock" firestore:"stock"`
	InStock       bool      `json:"inStock" firestore:"inStock"`
	IsActive      bool      `json:"isActive" firestore:"isActive"`
	Rating        float64   `json:"rating" firestore:"rating"`
	Reviews       int       `json:"reviews" firestore:"reviews"`
	Variants      string    `json:"variants" firestore:"variants"`
	Description   string    `json:"description" firestore:"description"`
	Material      string    `json:"material" firestore:"material"`
	Pattern       string    `json:"pattern" firestore:"pattern"`
	Care          string    `json:"care" firestore:"care"`
	Fit           string    `json:"fit" firestore:"fit"`
	Images        []string  `json:"images" firestore:"images"`
	Sizes         []string  `json:"sizes" firestore:"sizes"`
	Colors        []string  `json:"colors" firestore:"colors"`
	Slug          string    `json:"slug" firestore:"slug"`
	CreatedAt     time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt" firestore:"updatedAt"`
}

// ProductInput 新增商品的表單內容
// Images 每一筆可以是 data URI，或是圖片原始檔的 base64
type ProductInput struct {
	Name          string   `json:"name"`
	Brand         string   `json:"brand"`
	Model         string   `json:"model"`
	SKU           string   `json:"sku"`
	Category      string   `json:"category"`
	Collection    string   `json:"collection"`
	Subcategory   string   `json:"subcategory"`
	Price         float64  `json:"price"`
	OriginalPrice float64  `json:"originalPrice"`
	Stock         int      `json:"stock"`
	Rating        float64  `json:"rating"`
	Reviews       int      `json:"reviews"`
	Description   string   `json:"description"`
	Material      string   `json:"material"`
	Pattern       string   `json:"pattern"`
	Care          string   `json:"care"`
	Fit           string   `json:"fit"`
	Sizes         []string `json:"sizes"`
	Colors        []string `json:"colors"`
	Images        []string `json:"images"`
}

// ProductUpdate nil 代表不修改該欄位
type ProductUpdate struct {
	Name          *string   `json:"name,omitempty"`
	Brand         *string   `json:"brand,omitempty"`
	Model         *string   `json:"model,omitempty"`
	SKU           *string   `json:"sku,omitempty"`
	Category      *string   `json:"category,omitempty"`
	Collection    *string   `json:"collection,omitempty"`
	Subcategory   *string   `json:"subcategory,omitempty"`
	Price         *float64  `json:"price,omitempty"`
	OriginalPrice *float64  `json:"originalPrice,omitempty"`
	Stock         *int      `json:"stock,omitempty"`
	Rating        *float64  `json:"rating,omitempty"`
	Reviews       *int      `json:"reviews,omitempty"`
	Description   *string   `json:"description,omitempty"`
	Material      *string   `json:"material,omitempty"`
	Pattern       *string   `json:"pattern,omitempty"`
	Care          *string   `json:"care,omitempty"`
	Fit           *string   `json:"fit,omitempty"`
	Sizes         []string  `json:"sizes,omitempty"`
	Colors        []string  `json:"colors,omitempty"`
	Images        []string  `json:"images,omitempty"`
}
