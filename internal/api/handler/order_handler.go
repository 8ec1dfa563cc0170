package handler

import (
	"net/http"
	"time"

	"github.com/RoyceAzure/lab/storeadmin/internal/api/dto"
	"github.com/RoyceAzure/lab/storeadmin/internal/model"
	"github.com/RoyceAzure/lab/storeadmin/internal/service"
	"github.com/RoyceAzure/rj/api"
	"github.com/go-chi/chi/v5"
)

// OrderHandler 訂單頁與出貨頁，每次請求都重新彙整全部訂單
type OrderHandler struct {
	aggregator   service.IAggregator
	orderService service.IOrderService
	now          func() time.Time
}

func NewOrderHandler(aggregator service.IAggregator, orderService service.IOrderService) *OrderHandler {
	if aggregator == nil {
		panic("aggregator cannot be nil")
	}
	if orderService == nil {
		panic("orderService cannot be nil")
	}
	return &OrderHandler{
		aggregator:   aggregator,
		orderService: orderService,
		now:          time.Now,
	}
}

func orderKey(r *http.Request) (string, string) {
	return chi.URLParam(r, "userId"), chi.URLParam(r, "orderId")
}

// @Summary list orders
// @use aggregate every customer's orders, newest first, then filter
// @Tags orders
// @Produce json
// @Param search query string false "order number, email, phone or name"
// @Param status query string false "order status or all"
// @Param payment query string false "payment status or all"
// @Param date query string false "all, today, week or month"
// @Success 200 {object} api.Response{data=dto.OrderListResponse} "success"
// @Failure 400 {object} api.ResponseError{data=string} "InvalidArgumentCode"
// @Failure 500 {object} api.ResponseError{data=string} "Internal server error"
// @Router /orders [get]
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := service.OrderFilter{
		Search:  q.Get("search"),
		Status:  q.Get("status"),
		Payment: q.Get("payment"),
		Date:    service.DateWindow(q.Get("date")),
	}
	if err := filter.Validate(); err != nil {
		writeError(w, err)
		return
	}

	orders, err := h.aggregator.AllOrders(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	api.SuccessJSON(w, dto.OrderListResponse{
		Orders: service.FilterOrders(orders, filter, h.now()),
		Stats:  service.ComputeOrderStats(orders),
	}, nil)
}

// @Summary get order
// @Tags orders
// @Produce json
// @Param userId path string true "customer id"
// @Param orderId path string true "order id"
// @Success 200 {object} api.Response{data=model.Order} "success"
// @Failure 404 {object} api.ResponseError{data=string} "DataNotExistsCode"
// @Router /orders/{userId}/{orderId} [get]
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	userID, orderID := orderKey(r)
	order, err := h.orderService.GetOrder(r.Context(), userID, orderID)
	if err != nil {
		writeError(w, err)
		return
	}
	api.SuccessJSON(w, order, nil)
}

// @Summary update order status
// @Tags orders
// @Accept json
// @Produce json
// @Param userId path string true "customer id"
// @Param orderId path string true "order id"
// @Param status body dto.OrderStatusDTO true "new status"
// @Success 200 {object} api.Response{data=model.Order} "success"
// @Failure 400 {object} api.ResponseError{data=string} "InvalidArgumentCode"
// @Failure 404 {object} api.ResponseError{data=string} "DataNotExistsCode"
// @Router /orders/{userId}/{orderId}/status [patch]
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req dto.OrderStatusDTO
	if !decodeBody(w, r, &req) {
		return
	}
	userID, orderID := orderKey(r)
	if err := h.orderService.UpdateStatus(r.Context(), userID, orderID, model.OrderStatus(req.Status)); err != nil {
		writeError(w, err)
		return
	}
	h.respondOrder(w, r, userID, orderID)
}

// @Summary update payment status
// @Tags orders
// @Accept json
// @Produce json
// @Param payment body dto.PaymentStatusDTO true "payment status and optional reference"
// @Success 200 {object} api.Response{data=model.Order} "success"
// @Router /orders/{userId}/{orderId}/payment [patch]
func (h *OrderHandler) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	var req dto.PaymentStatusDTO
	if !decodeBody(w, r, &req) {
		return
	}
	userID, orderID := orderKey(r)
	err := h.orderService.UpdatePaymentStatus(r.Context(), userID, orderID, model.PaymentStatus(req.PaymentStatus), req.PaymentReference)
	if err != nil {
		writeError(w, err)
		return
	}
	h.respondOrder(w, r, userID, orderID)
}

// @Summary update delivery otp
// @Tags orders
// @Accept json
// @Produce json
// @Param otp body dto.OrderOTPDTO true "one time passcode"
// @Success 200 {object} api.Response{data=model.Order} "success"
// @Router /orders/{userId}/{orderId}/otp [patch]
func (h *OrderHandler) UpdateOTP(w http.ResponseWriter, r *http.Request) {
	var req dto.OrderOTPDTO
	if !decodeBody(w, r, &req) {
		return
	}
	userID, orderID := orderKey(r)
	if err := h.orderService.UpdateOTP(r.Context(), userID, orderID, req.OrderOTP); err != nil {
		writeError(w, err)
		return
	}
	h.respondOrder(w, r, userID, orderID)
}

// @Summary delete order
// @Tags orders
// @Produce json
// @Success 200 {object} api.Response{data=string} "success"
// @Router /orders/{userId}/{orderId} [delete]
func (h *OrderHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	userID, orderID := orderKey(r)
	if err := h.orderService.DeleteOrder(r.Context(), userID, orderID); err != nil {
		writeError(w, err)
		return
	}
	api.SuccessJSON(w, orderID, nil)
}

// @Summary list shipments
// @use orders in processing, shipped or delivered
// @Tags shipments
// @Produce json
// @Param search query string false "order number, tracking number, email or name"
// @Param status query string false "processing, shipped, delivered or all"
// @Param method query string false "shipping method or all"
// @Success 200 {object} api.Response{data=dto.ShipmentListResponse} "success"
// @Router /shipments [get]
func (h *OrderHandler) ListShipments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := service.ShipmentFilter{
		Search: q.Get("search"),
		Status: q.Get("status"),
		Method: q.Get("method"),
	}
	if err := filter.Validate(); err != nil {
		writeError(w, err)
		return
	}

	shipments, err := h.aggregator.AllShipments(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	api.SuccessJSON(w, dto.ShipmentListResponse{
		Shipments: service.FilterShipments(shipments, filter),
		Stats:     service.ComputeShipmentStats(shipments),
	}, nil)
}

// @Summary update shipment status
// @Tags shipments
// @Accept json
// @Produce json
// @Param status body dto.OrderStatusDTO true "processing, shipped or delivered"
// @Success 200 {object} api.Response{data=model.Order} "success"
// @Router /shipments/{userId}/{orderId}/status [patch]
func (h *OrderHandler) UpdateShipmentStatus(w http.ResponseWriter, r *http.Request) {
	var req dto.OrderStatusDTO
	if !decodeBody(w, r, &req) {
		return
	}
	userID, orderID := orderKey(r)
	if err := h.orderService.UpdateShipmentStatus(r.Context(), userID, orderID, model.OrderStatus(req.Status)); err != nil {
		writeError(w, err)
		return
	}
	h.respondOrder(w, r, userID, orderID)
}

// @Summary set tracking number
// @Tags shipments
// @Accept json
// @Produce json
// @Param tracking body dto.TrackingNumberDTO true "tracking number"
// @Success 200 {object} api.Response{data=model.Order} "success"
// @Router /shipments/{userId}/{orderId}/tracking [patch]
func (h *OrderHandler) SetTrackingNumber(w http.ResponseWriter, r *http.Request) {
	var req dto.TrackingNumberDTO
	if !decodeBody(w, r, &req) {
		return
	}
	userID, orderID := orderKey(r)
	if err := h.orderService.SetTrackingNumber(r.Context(), userID, orderID, req.TrackingNumber); err != nil {
		writeError(w, err)
		return
	}
	h.respondOrder(w, r, userID, orderID)
}

// respondOrder 寫入後回傳最新的訂單內容
func (h *OrderHandler) respondOrder(w http.ResponseWriter, r *http.Request, userID, orderID string) {
	order, err := h.orderService.GetOrder(r.Context(), userID, orderID)
	if err != nil {
		writeError(w, err)
		return
	}
	api.SuccessJSON(w, order, nil)
}
