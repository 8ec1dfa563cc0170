package handler

import (
	"net/http"

	"github.com/RoyceAzure/lab/storeadmin/internal/api/dto"
	"github.com/RoyceAzure/lab/storeadmin/internal/service"
	"github.com/RoyceAzure/rj/api"
	"github.com/go-chi/chi/v5"
)

type CustomerHandler struct {
	aggregator      service.IAggregator
	customerService service.ICustomerService
}

func NewCustomerHandler(aggregator service.IAggregator, customerService service.ICustomerService) *CustomerHandler {
	if aggregator == nil {
		panic("aggregator cannot be nil")
	}
	if customerService == nil {
		panic("customerService cannot be nil")
	}
	return &CustomerHandler{
		aggregator:      aggregator,
		customerService: customerService,
	}
}

// @Summary list customers
// @use every customer with order count, total spent and addresses
// @Tags customers
// @Produce json
// @Param search query string false "name, email or phone"
// @Param status query string false "active, blocked or all"
// @Param auth query string false "email, google, facebook or all"
// @Success 200 {object} api.Response{data=dto.CustomerListResponse} "success"
// @Failure 400 {object} api.ResponseError{data=string} "InvalidArgumentCode"
// @Router /customers [get]
func (h *CustomerHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := service.CustomerFilter{
		Search: q.Get("search"),
		Status: q.Get("status"),
		Auth:   q.Get("auth"),
	}
	if err := filter.Validate(); err != nil {
		writeError(w, err)
		return
	}

	customers, err := h.aggregator.AllCustomers(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	api.SuccessJSON(w, dto.CustomerListResponse{
		Customers: service.FilterCustomers(customers, filter),
		Stats:     service.ComputeCustomerStats(customers),
	}, nil)
}

// @Summary customer detail
// @Tags customers
// @Produce json
// @Param userId path string true "customer id"
// @Success 200 {object} api.Response{data=model.CustomerView} "success"
// @Failure 404 {object} api.ResponseError{data=string} "DataNotExistsCode"
// @Router /customers/{userId} [get]
func (h *CustomerHandler) Detail(w http.ResponseWriter, r *http.Request) {
	view, err := h.customerService.Detail(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		writeError(w, err)
		return
	}
	api.SuccessJSON(w, view, nil)
}

// @Summary toggle customer status
// @use active <-> blocked
// @Tags customers
// @Produce json
// @Success 200 {object} api.Response{data=dto.CustomerStatusResponse} "success"
// @Router /customers/{userId}/status [patch]
func (h *CustomerHandler) ToggleStatus(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	status, err := h.customerService.ToggleStatus(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	api.SuccessJSON(w, dto.CustomerStatusResponse{UserID: userID, Status: status}, nil)
}

// @Summary delete customer
// @use only users/{userId}, orders and addresses are kept
// @Tags customers
// @Produce json
// @Success 200 {object} api.Response{data=string} "success"
// @Router /customers/{userId} [delete]
func (h *CustomerHandler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	if err := h.customerService.DeleteCustomer(r.Context(), userID); err != nil {
		writeError(w, err)
		return
	}
	api.SuccessJSON(w, userID, nil)
}
