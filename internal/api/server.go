package api

import "github.com/RoyceAzure/lab/storeadmin/internal/api/handler"

type Server struct {
	OrderHandler     *handler.OrderHandler
	CustomerHandler  *handler.CustomerHandler
	ProductHandler   *handler.ProductHandler
	DashboardHandler *handler.DashboardHandler
}

func NewServer(
	orderHandler *handler.OrderHandler,
	customerHandler *handler.CustomerHandler,
	productHandler *handler.ProductHandler,
	dashboardHandler *handler.DashboardHandler,
) *Server {
	return &Server{
		OrderHandler:     orderHandler,
		CustomerHandler:  customerHandler,
		ProductHandler:   productHandler,
		DashboardHandler: dashboardHandler,
	}
}
