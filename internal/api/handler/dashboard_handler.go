package handler

import (
	"net/http"

	"github.com/RoyceAzure/lab/storeadmin/internal/service"
	"github.com/RoyceAzure/rj/api"
)

type DashboardHandler struct {
	dashboardService service.IDashboardService
}

func NewDashboardHandler(dashboardService service.IDashboardService) *DashboardHandler {
	if dashboardService == nil {
		panic("dashboardService cannot be nil")
	}
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// @Summary dashboard
// @use revenue, order and customer trends, recent orders, top products
// @Tags dashboard
// @Produce json
// @Success 200 {object} api.Response{data=service.Dashboard} "success"
// @Failure 500 {object} api.ResponseError{data=string} "Internal server error"
// @Router /dashboard [get]
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.dashboardService.Build(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	api.SuccessJSON(w, d, nil)
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	api.SuccessJSON(w, "ok", nil)
}
