package model

import (
	"math"
	"time"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// IsShipment 出貨頁只處理已進入物流流程的訂單
func (s OrderStatus) IsShipment() bool {
	switch s {
	case OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered:
		return true
	default:
		return false
	}
}

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	default:
		return false
	}
}

// ShippingAddress 下單當下的地址快照，之後地址簿異動不影響訂單
type ShippingAddress struct {
	FirstName string `json:"firstName" firestore:"firstName"`
	LastName  string `json:"lastName" firestore:"lastName"`
	Email     string `json:"email" firestore:"email"`
	Phone     string `json:"phone" firestore:"phone"`
	Label     string `json:"label,omitempty" firestore:"label,omitempty"`
	Address   string `json:"address" firestore:"address"`
	City      string `json:"city" firestore:"city"`
	State     string `json:"state" firestore:"state"`
	Country   string `json:"country" firestore:"country"`
}

func (a ShippingAddress) FullName() string {
	return a.FirstName + " " + a.LastName
}

type LineItem struct {
	ProductID string  `json:"productId,omitempty" firestore:"productId,omitempty"`
	Name      string  `json:"name" firestore:"name"`
	Image     string  `json:"image" firestore:"image"`
	Price     float64 `json:"price" firestore:"price"`
	Quantity  int     `json:"quantity" firestore:"quantity"`
	Size      string  `json:"size" firestore:"size"`
	Color     string  `json:"color,omitempty" firestore:"color,omitempty"`
}

// Order 存放於 users/{userId}/orders/{orderId}
type Order struct {
	ID               string          `json:"id" firestore:"-"`
	UserID           string          `json:"userId" firestore:"userId"`
	OrderNumber      string          `json:"orderNumber" firestore:"orderNumber"`
	CreatedAt        time.Time       `json:"createdAt" firestore:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt" firestore:"updatedAt"`
	Status           OrderStatus     `json:"status" firestore:"status"`
	PaymentStatus    PaymentStatus   `json:"paymentStatus" firestore:"paymentStatus"`
	PaymentMethod    string          `json:"paymentMethod" firestore:"paymentMethod"`
	PaymentReference string          `json:"paymentReference,omitempty" firestore:"paymentReference,omitempty"`
	OrderOTP         string          `json:"orderOtp,omitempty" firestore:"orderOtp,omitempty"`
	OTPGeneratedAt   *time.Time      `json:"otpGeneratedAt,omitempty" firestore:"otpGeneratedAt,omitempty"`
	ShippingMethod   string          `json:"shippingMethod" firestore:"shippingMethod"`
	ShippingCost     float64         `json:"shippingCost" firestore:"shippingCost"`
	Subtotal         float64         `json:"subtotal" firestore:"subtotal"`
	Tax              float64         `json:"tax" firestore:"tax"`
	Total            float64         `json:"total" firestore:"total"`
	ShippingAddress  ShippingAddress `json:"shippingAddress" firestore:"shippingAddress"`
	Items            []LineItem      `json:"items" firestore:"items"`
	TrackingNumber   string          `json:"trackingNumber,omitempty" firestore:"trackingNumber,omitempty"`
	ShippedAt        *time.Time      `json:"shippedAt,omitempty" firestore:"shippedAt,omitempty"`
	DeliveredAt      *time.Time      `json:"deliveredAt,omitempty" firestore:"deliveredAt,omitempty"`
}

func (o *Order) IsPaid() bool {
	return o.PaymentStatus == PaymentStatusPaid
}

// TotalConsistent 只做報表檢查用，寫入時不強制 total = subtotal + shipping + tax
func (o *Order) TotalConsistent() bool {
	return math.Abs(o.Subtotal+o.ShippingCost+o.Tax-o.Total) < 0.005
}
