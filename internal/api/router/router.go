package router

import (
	"net/http"

	"github.com/RoyceAzure/lab/storeadmin/internal/api"
	"github.com/RoyceAzure/lab/storeadmin/internal/api/handler"
	m "github.com/RoyceAzure/lab/storeadmin/internal/api/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// SetupRouter aggregationLimit 套用在需要彙整全部客戶資料的 GET，nil 表示不限流
func SetupRouter(server *api.Server, aggregationLimit func(http.Handler) http.Handler, logger *zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()
	if aggregationLimit == nil {
		aggregationLimit = func(next http.Handler) http.Handler { return next }
	}

	// 全局中間件
	r.Use(m.RequestIdMiddleware)
	r.Use(middleware.RealIP)
	r.Use(m.LoggerMiddleware(logger))
	r.Use(m.RecoverMiddleware(logger))

	r.Get("/healthz", handler.Healthz)

	// API 路由
	r.Route("/api/v1", func(r chi.Router) {
		r.With(aggregationLimit).Get("/dashboard", server.DashboardHandler.Dashboard)

		r.Route("/orders", func(r chi.Router) {
			r.With(aggregationLimit).Get("/", server.OrderHandler.ListOrders)
			r.Route("/{userId}/{orderId}", func(r chi.Router) {
				r.Get("/", server.OrderHandler.GetOrder)
				r.Delete("/", server.OrderHandler.DeleteOrder)
				r.Patch("/status", server.OrderHandler.UpdateStatus)
				r.Patch("/payment", server.OrderHandler.UpdatePayment)
				r.Patch("/otp", server.OrderHandler.UpdateOTP)
			})
		})

		r.Route("/shipments", func(r chi.Router) {
			r.With(aggregationLimit).Get("/", server.OrderHandler.ListShipments)
			r.Patch("/{userId}/{orderId}/status", server.OrderHandler.UpdateShipmentStatus)
			r.Patch("/{userId}/{orderId}/tracking", server.OrderHandler.SetTrackingNumber)
		})

		r.Route("/customers", func(r chi.Router) {
			r.With(aggregationLimit).Get("/", server.CustomerHandler.ListCustomers)
			r.Get("/{userId}", server.CustomerHandler.Detail)
			r.Delete("/{userId}", server.CustomerHandler.DeleteCustomer)
			r.Patch("/{userId}/status", server.CustomerHandler.ToggleStatus)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", server.ProductHandler.ListProducts)
			r.Post("/", server.ProductHandler.CreateProduct)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", server.ProductHandler.GetProduct)
				r.Put("/", server.ProductHandler.UpdateProduct)
				r.Delete("/", server.ProductHandler.DeleteProduct)
				r.Patch("/active", server.ProductHandler.ToggleActive)
				r.Patch("/stock", server.ProductHandler.UpdateStock)
			})
		})

		r.Get("/taxonomy", server.ProductHandler.Taxonomy)
	})

	// 在設置完所有路由後打印路由樹
	if logger != nil {
		chi.Walk(r, func(method string, route string, handler http.Handler, middlewares ...func(http.Handler) http.Handler) error {
			logger.Debug().Msgf("%s %s", method, route)
			return nil
		})
	}
	return r
}
