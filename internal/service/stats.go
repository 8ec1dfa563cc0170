package service

import (
	"github.com/RoyceAzure/lab/storeadmin/internal/model"
	"github.com/shopspring/decimal"
)

// OrderStats 訂單頁上方統計，營收為所有訂單 total 加總(含未付款)
type OrderStats struct {
	Total        int     `json:"total"`
	Pending      int     `json:"pending"`
	Processing   int     `json:"processing"`
	Shipped      int     `json:"shipped"`
	Delivered    int     `json:"delivered"`
	Cancelled    int     `json:"cancelled"`
	TotalRevenue float64 `json:"totalRevenue"`
	PaidOrders   int     `json:"paidOrders"`
}

func ComputeOrderStats(orders []model.Order) OrderStats {
	stats := OrderStats{Total: len(orders)}
	revenue := decimal.Zero
	for _, o := range orders {
		switch o.Status {
		case model.OrderStatusPending:
			stats.Pending++
		case model.OrderStatusProcessing:
			stats.Processing++
		case model.OrderStatusShipped:
			stats.Shipped++
		case model.OrderStatusDelivered:
			stats.Delivered++
		case model.OrderStatusCancelled:
			stats.Cancelled++
		}
		if o.IsPaid() {
			stats.PaidOrders++
		}
		revenue = revenue.Add(decimal.NewFromFloat(o.Total))
	}
	stats.TotalRevenue = revenue.InexactFloat64()
	return stats
}

type ShipmentStats struct {
	Total         int `json:"total"`
	Processing    int `json:"processing"`
	Shipped       int `json:"shipped"`
	Delivered     int `json:"delivered"`
	NeedsTracking int `json:"needsTracking"`
}

// ComputeShipmentStats needsTracking: 已出貨但沒有物流單號
func ComputeShipmentStats(shipments []model.Order) ShipmentStats {
	stats := ShipmentStats{Total: len(shipments)}
	for _, s := range shipments {
		switch s.Status {
		case model.OrderStatusProcessing:
			stats.Processing++
		case model.OrderStatusShipped:
			stats.Shipped++
			if s.TrackingNumber == "" {
				stats.NeedsTracking++
			}
		case model.OrderStatusDelivered:
			stats.Delivered++
		}
	}
	return stats
}

type CustomerStats struct {
	Total           int     `json:"total"`
	Active          int     `json:"active"`
	Blocked         int     `json:"blocked"`
	WithOrders      int     `json:"withOrders"`
	TotalRevenue    float64 `json:"totalRevenue"`
	AvgOrderValue   float64 `json:"avgOrderValue"`
	EmailSignups    int     `json:"emailSignups"`
	GoogleSignups   int     `json:"googleSignups"`
	FacebookSignups int     `json:"facebookSignups"`
}

// ComputeCustomerStats 平均客單價 = 總消費 / 有下單客戶的訂單總數
func ComputeCustomerStats(customers []model.CustomerView) CustomerStats {
	stats := CustomerStats{Total: len(customers)}
	revenue := decimal.Zero
	orderCount := 0
	for _, c := range customers {
		switch c.Status {
		case model.CustomerStatusBlocked:
			stats.Blocked++
		default:
			stats.Active++
		}
		if c.OrderCount > 0 {
			stats.WithOrders++
			orderCount += c.OrderCount
		}
		revenue = revenue.Add(decimal.NewFromFloat(c.TotalSpent))
		switch c.AuthMethod {
		case model.AuthMethodEmail:
			stats.EmailSignups++
		case model.AuthMethodGoogle:
			stats.GoogleSignups++
		case model.AuthMethodFacebook:
			stats.FacebookSignups++
		}
	}
	stats.TotalRevenue = revenue.InexactFloat64()
	if orderCount > 0 {
		stats.AvgOrderValue = revenue.Div(decimal.NewFromInt(int64(orderCount))).Round(2).InexactFloat64()
	}
	return stats
}
