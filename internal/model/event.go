package model

import "time"

type MutationType string

const (
	OrderStatusUpdated    MutationType = "order.status_updated"
	OrderPaymentUpdated   MutationType = "order.payment_updated"
	OrderOTPUpdated       MutationType = "order.otp_updated"
	OrderTrackingUpdated  MutationType = "order.tracking_updated"
	OrderDeleted          MutationType = "order.deleted"
	CustomerStatusUpdated MutationType = "customer.status_updated"
	CustomerDeleted       MutationType = "customer.deleted"
	ProductCreated        MutationType = "product.created"
	ProductUpdated        MutationType = "product.updated"
	ProductActiveToggled  MutationType = "product.active_toggled"
	ProductStockUpdated   MutationType = "product.stock_updated"
	ProductDeleted        MutationType = "product.deleted"
)

// MutationEvent 後台每次寫入成功後對外發送的稽核訊息
type MutationEvent struct {
	Type      MutationType   `json:"type"`
	UserID    string         `json:"userId,omitempty"`
	OrderID   string         `json:"orderId,omitempty"`
	ProductID string         `json:"productId,omitempty"`
	Fields    map[string]any `json:"fields,omitempty"`
	At        time.Time      `json:"at"`
}

// Key 訊息分區用，同一份文件的事件落在同一個 partition
func (e MutationEvent) Key() string {
	switch {
	case e.ProductID != "":
		return "products/" + e.ProductID
	case e.OrderID != "":
		return "users/" + e.UserID + "/orders/" + e.OrderID
	default:
		return "users/" + e.UserID
	}
}
