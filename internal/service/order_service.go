package service

import (
	"context"

	"github.com/RoyceAzure/lab/storeadmin/internal/infra/docstore"
	"github.com/RoyceAzure/lab/storeadmin/internal/infra/notifier"
	"github.com/RoyceAzure/lab/storeadmin/internal/model"
	"github.com/rs/zerolog"
)

type IOrderService interface {
	GetOrder(ctx context.Context, userID, orderID string) (*model.Order, error)
	UpdateStatus(ctx context.Context, userID, orderID string, status model.OrderStatus) error
	UpdatePaymentStatus(ctx context.Context, userID, orderID string, status model.PaymentStatus, reference string) error
	UpdateOTP(ctx context.Context, userID, orderID, otp string) error
	UpdateShipmentStatus(ctx context.Context, userID, orderID string, status model.OrderStatus) error
	SetTrackingNumber(ctx context.Context, userID, orderID, trackingNumber string) error
	DeleteOrder(ctx context.Context, userID, orderID string) error
}

/*
OrderService 只做單一欄位的部分更新，並蓋上 updatedAt
狀態之間沒有轉換限制，任何合法值都可以寫入
同一筆訂單同時更新時以最後寫入為準
*/
type OrderService struct {
	orders OrderStore
	publisher
}

func NewOrderService(orders OrderStore, n notifier.Notifier, logger *zerolog.Logger, now Clock) IOrderService {
	return &OrderService{
		orders: orders,
		publisher: publisher{
			notifier: n,
			logger:   nopLogger(logger),
			now:      defaultClock(now),
		},
	}
}

func validateOrderKey(userID, orderID string) error {
	if err := requireID("userId", userID); err != nil {
		return err
	}
	return requireID("orderId", orderID)
}

func (s *OrderService) GetOrder(ctx context.Context, userID, orderID string) (*model.Order, error) {
	if err := validateOrderKey(userID, orderID); err != nil {
		return nil, err
	}
	order, err := s.orders.GetOrder(ctx, userID, orderID)
	if err != nil {
		return nil, storeError(err, "get order")
	}
	return order, nil
}

func (s *OrderService) UpdateStatus(ctx context.Context, userID, orderID string, status model.OrderStatus) error {
	if err := validateOrderKey(userID, orderID); err != nil {
		return err
	}
	if !status.IsValid() {
		return invalid("unknown order status %q", status)
	}
	return s.update(ctx, model.OrderStatusUpdated, userID, orderID, map[string]any{
		"status": string(status),
	})
}

// UpdatePaymentStatus reference 為空時不覆寫原本的付款參考號
func (s *OrderService) UpdatePaymentStatus(ctx context.Context, userID, orderID string, status model.PaymentStatus, reference string) error {
	if err := validateOrderKey(userID, orderID); err != nil {
		return err
	}
	if !status.IsValid() {
		return invalid("unknown payment status %q", status)
	}
	fields := map[string]any{
		"paymentStatus": string(status),
	}
	if reference != "" {
		fields["paymentReference"] = reference
	}
	return s.update(ctx, model.OrderPaymentUpdated, userID, orderID, fields)
}

func (s *OrderService) UpdateOTP(ctx context.Context, userID, orderID, otp string) error {
	if err := validateOrderKey(userID, orderID); err != nil {
		return err
	}
	if otp == "" {
		return invalid("otp is required")
	}
	return s.update(ctx, model.OrderOTPUpdated, userID, orderID, map[string]any{
		"orderOtp":       otp,
		"otpGeneratedAt": docstore.ServerTimestamp,
	})
}

// UpdateShipmentStatus 第一次進入 shipped / delivered 時才蓋 shippedAt / deliveredAt
func (s *OrderService) UpdateShipmentStatus(ctx context.Context, userID, orderID string, status model.OrderStatus) error {
	if err := validateOrderKey(userID, orderID); err != nil {
		return err
	}
	if !status.IsShipment() {
		return invalid("unknown shipment status %q", status)
	}

	order, err := s.orders.GetOrder(ctx, userID, orderID)
	if err != nil {
		return storeError(err, "get order")
	}

	fields := map[string]any{
		"status": string(status),
	}
	if status == model.OrderStatusShipped && order.ShippedAt == nil {
		fields["shippedAt"] = docstore.ServerTimestamp
	}
	if status == model.OrderStatusDelivered && order.DeliveredAt == nil {
		fields["deliveredAt"] = docstore.ServerTimestamp
	}
	return s.update(ctx, model.OrderStatusUpdated, userID, orderID, fields)
}

func (s *OrderService) SetTrackingNumber(ctx context.Context, userID, orderID, trackingNumber string) error {
	if err := validateOrderKey(userID, orderID); err != nil {
		return err
	}
	if trackingNumber == "" {
		return invalid("tracking number is required")
	}
	return s.update(ctx, model.OrderTrackingUpdated, userID, orderID, map[string]any{
		"trackingNumber": trackingNumber,
	})
}

func (s *OrderService) DeleteOrder(ctx context.Context, userID, orderID string) error {
	if err := validateOrderKey(userID, orderID); err != nil {
		return err
	}
	if err := s.orders.DeleteOrder(ctx, userID, orderID); err != nil {
		return storeError(err, "delete order")
	}
	s.publish(ctx, model.MutationEvent{Type: model.OrderDeleted, UserID: userID, OrderID: orderID})
	return nil
}

func (s *OrderService) update(ctx context.Context, t model.MutationType, userID, orderID string, fields map[string]any) error {
	fields["updatedAt"] = docstore.ServerTimestamp
	if err := s.orders.UpdateOrder(ctx, userID, orderID, fields); err != nil {
		return storeError(err, "update order")
	}
	s.publish(ctx, model.MutationEvent{Type: t, UserID: userID, OrderID: orderID, Fields: fields})
	return nil
}
