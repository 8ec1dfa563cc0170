package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/RoyceAzure/lab/storeadmin/internal/api"
	"github.com/RoyceAzure/lab/storeadmin/internal/api/handler"
	m "github.com/RoyceAzure/lab/storeadmin/internal/api/middleware"
	"github.com/RoyceAzure/lab/storeadmin/internal/api/router"
	"github.com/RoyceAzure/lab/storeadmin/internal/appcontext"
	"github.com/RoyceAzure/lab/storeadmin/internal/config"
	"github.com/RoyceAzure/lab/storeadmin/internal/constants"
)

// @title storeadmin
// @version 1.0
// @description 童裝電商後台管理 API
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /api/v1

func main() {
	envFile := flag.String("config", constants.DefaultEnvFile, "path of the .env file")
	flag.Parse()

	loader := config.NewLoader(*envFile)
	cf, err := loader.Load()
	if err != nil {
		log.Fatal(err)
		return
	}

	app, err := appcontext.NewApplicationContext(cf)
	if err != nil {
		log.Fatal(err)
		return
	}
	logger := app.Logger

	loader.Watch(func(cf *config.Config, err error) {
		if err != nil {
			logger.Error().Err(err).Msg("failed to reload config file")
			return
		}
		app.ApplyConfig(cf)
	})

	// 初始化 handler
	server := api.NewServer(
		handler.NewOrderHandler(app.Aggregator, app.OrderService),
		handler.NewCustomerHandler(app.Aggregator, app.CustomerService),
		handler.NewProductHandler(app.ProductService),
		handler.NewDashboardHandler(app.DashboardService),
	)

	// 設置路由
	r := router.SetupRouter(server, m.NewRateLimitMiddleware(cf.RateLimitRPS, cf.RateLimitBurst), logger)

	// 設定服務器參數
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cf.ServerPort),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 設置訊號監聽
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	shutDownCompleted := make(chan struct{}, 1)
	// 監聽退出訊號
	go func() {
		<-sigChan
		logger.Info().Msg("Received shutdown signal")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cf.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("Server shutdown error")
		}

		if err := app.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("Application shutdown error")
		}

		shutDownCompleted <- struct{}{}
	}()

	// 啟動服務
	logger.Info().Str("addr", srv.Addr).Msg("Server starting")
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		logger.Fatal().Err(err).Msg("Server stopped unexpectedly")
	}
	<-shutDownCompleted
	logger.Info().Msg("closed completed")
}
