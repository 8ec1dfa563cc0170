package service

import (
	"math"
	"strings"
	"time"

	"github.com/RoyceAzure/lab/storeadmin/internal/model"
)

const FilterAll = "all"

type DateWindow string

const (
	DateWindowAll   DateWindow = "all"
	DateWindowToday DateWindow = "today"
	DateWindowWeek  DateWindow = "week"
	DateWindowMonth DateWindow = "month"
)

func (w DateWindow) IsValid() bool {
	switch w {
	case "", DateWindowAll, DateWindowToday, DateWindowWeek, DateWindowMonth:
		return true
	default:
		return false
	}
}

// Contains 以整天數(無條件捨去)判斷，today = 0 天，week <= 7 天，month <= 30 天
func (w DateWindow) Contains(created, now time.Time) bool {
	days := math.Floor(now.Sub(created).Hours() / 24)
	switch w {
	case DateWindowToday:
		return days == 0
	case DateWindowWeek:
		return days <= 7
	case DateWindowMonth:
		return days <= 30
	default:
		return true
	}
}

func isAll(v string) bool {
	return v == "" || v == FilterAll
}

func containsFold(s, term string) bool {
	return strings.Contains(strings.ToLower(s), term)
}

type OrderFilter struct {
	Search  string
	Status  string
	Payment string
	Date    DateWindow
}

func (f OrderFilter) Validate() error {
	if !isAll(f.Status) && !model.OrderStatus(f.Status).IsValid() {
		return invalid("unknown order status %q", f.Status)
	}
	if !isAll(f.Payment) && !model.PaymentStatus(f.Payment).IsValid() {
		return invalid("unknown payment status %q", f.Payment)
	}
	if !f.Date.IsValid() {
		return invalid("unknown date window %q", f.Date)
	}
	return nil
}

// FilterOrders 所有條件 AND，不改變輸入順序
// 搜尋: 訂單編號、email、電話(原字串比對)、收件人姓名
func FilterOrders(orders []model.Order, f OrderFilter, now time.Time) []model.Order {
	term := strings.ToLower(f.Search)
	out := make([]model.Order, 0, len(orders))
	for _, o := range orders {
		if f.Search != "" &&
			!containsFold(o.OrderNumber, term) &&
			!containsFold(o.ShippingAddress.Email, term) &&
			!strings.Contains(o.ShippingAddress.Phone, f.Search) &&
			!containsFold(o.ShippingAddress.FullName(), term) {
			continue
		}
		if !isAll(f.Status) && string(o.Status) != f.Status {
			continue
		}
		if !isAll(f.Payment) && string(o.PaymentStatus) != f.Payment {
			continue
		}
		if !f.Date.Contains(o.CreatedAt, now) {
			continue
		}
		out = append(out, o)
	}
	return out
}

type ShipmentFilter struct {
	Search string
	Status string
	Method string
}

func (f ShipmentFilter) Validate() error {
	if !isAll(f.Status) && !model.OrderStatus(f.Status).IsShipment() {
		return invalid("unknown shipment status %q", f.Status)
	}
	return nil
}

// FilterShipments 搜尋: 訂單編號、物流單號、email、收件人姓名
func FilterShipments(shipments []model.Order, f ShipmentFilter) []model.Order {
	term := strings.ToLower(f.Search)
	out := make([]model.Order, 0, len(shipments))
	for _, s := range shipments {
		if f.Search != "" &&
			!containsFold(s.OrderNumber, term) &&
			!containsFold(s.TrackingNumber, term) &&
			!containsFold(s.ShippingAddress.Email, term) &&
			!containsFold(s.ShippingAddress.FullName(), term) {
			continue
		}
		if !isAll(f.Status) && string(s.Status) != f.Status {
			continue
		}
		if !isAll(f.Method) && s.ShippingMethod != f.Method {
			continue
		}
		out = append(out, s)
	}
	return out
}

type CustomerFilter struct {
	Search string
	Status string
	Auth   string
}

func (f CustomerFilter) Validate() error {
	if !isAll(f.Status) && !model.CustomerStatus(f.Status).IsValid() {
		return invalid("unknown customer status %q", f.Status)
	}
	if !isAll(f.Auth) && !model.AuthMethod(f.Auth).IsValid() {
		return invalid("unknown auth method %q", f.Auth)
	}
	return nil
}

// FilterCustomers 搜尋: 名稱、email、電話(原字串比對)
// 沒有 status 的客戶視為 active
func FilterCustomers(customers []model.CustomerView, f CustomerFilter) []model.CustomerView {
	term := strings.ToLower(f.Search)
	out := make([]model.CustomerView, 0, len(customers))
	for _, c := range customers {
		if f.Search != "" &&
			!containsFold(c.DisplayName, term) &&
			!containsFold(c.Email, term) &&
			!strings.Contains(c.PhoneNumber, f.Search) {
			continue
		}
		if !isAll(f.Status) && string(c.Customer.EffectiveStatus()) != f.Status {
			continue
		}
		if !isAll(f.Auth) && string(c.Customer.ResolveAuthMethod()) != f.Auth {
			continue
		}
		out = append(out, c)
	}
	return out
}

type ProductFilter struct {
	Search      string
	Category    string
	Subcategory string
}

func (f ProductFilter) Validate() error {
	if !isAllCategory(f.Category) && !model.IsValidCategory(f.Category) {
		return invalid("unknown category %q", f.Category)
	}
	if f.Subcategory != "" && isAllCategory(f.Category) {
		return invalid("subcategory %q requires a category", f.Subcategory)
	}
	return nil
}

// isAllCategory 商品頁的分類選單用 "ALL"
func isAllCategory(v string) bool {
	return isAll(v) || strings.EqualFold(v, FilterAll)
}

// FilterProducts 搜尋: 名稱、品牌、SKU
func FilterProducts(products []model.Product, f ProductFilter) []model.Product {
	term := strings.ToLower(f.Search)
	out := make([]model.Product, 0, len(products))
	for _, p := range products {
		if f.Search != "" &&
			!containsFold(p.Name, term) &&
			!containsFold(p.Brand, term) &&
			!containsFold(p.SKU, term) {
			continue
		}
		if !isAllCategory(f.Category) && p.Category != f.Category {
			continue
		}
		if f.Subcategory != "" && p.Subcategory != f.Subcategory {
			continue
		}
		out = append(out, p)
	}
	return out
}
