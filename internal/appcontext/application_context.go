package appcontext

import (
	"context"
	"fmt"
	"os"

	"github.com/RoyceAzure/lab/storeadmin/internal/config"
	"github.com/RoyceAzure/lab/storeadmin/internal/constants"
	"github.com/RoyceAzure/lab/storeadmin/internal/infra/docstore"
	"github.com/RoyceAzure/lab/storeadmin/internal/infra/docstore/firestoredb"
	"github.com/RoyceAzure/lab/storeadmin/internal/infra/docstore/memory"
	"github.com/RoyceAzure/lab/storeadmin/internal/infra/notifier"
	"github.com/RoyceAzure/lab/storeadmin/internal/infra/repository"
	"github.com/RoyceAzure/lab/storeadmin/internal/logger"
	"github.com/RoyceAzure/lab/storeadmin/internal/pkg/imaging"
	"github.com/RoyceAzure/lab/storeadmin/internal/service"
	"github.com/rs/zerolog"
)

type ApplicationContext struct {
	Cf               *config.Config
	Logger           *zerolog.Logger
	Gateway          docstore.Gateway
	CustomerRepo     *repository.CustomerRepo
	OrderRepo        *repository.OrderRepo
	ProductRepo      *repository.ProductRepo
	Notifier         notifier.Notifier
	ImageNormalizer  *imaging.Normalizer
	Aggregator       service.IAggregator
	OrderService     service.IOrderService
	CustomerService  service.ICustomerService
	ProductService   service.IProductService
	DashboardService service.IDashboardService
}

func NewApplicationContext(cf *config.Config) (*ApplicationContext, error) {
	app := ApplicationContext{
		Cf: cf,
	}
	err := app.Init()
	if err != nil {
		app.Shutdown(context.Background())
		return nil, err
	}
	return &app, nil
}

func (app *ApplicationContext) Init() error {
	err := app.setUpLogger()
	if err != nil {
		return err
	}
	err = app.setUpGateway()
	if err != nil {
		return err
	}
	err = app.setUpRepositories()
	if err != nil {
		return err
	}
	err = app.setUpNotifier()
	if err != nil {
		return err
	}
	err = app.setUpImageNormalizer()
	if err != nil {
		return err
	}
	return app.setUpServices()
}

func (app *ApplicationContext) setUpLogger() error {
	l, err := logger.New(app.Cf.Env, app.Cf.LogLevel, os.Stdout)
	if err != nil {
		return fmt.Errorf("setup logger: %w", err)
	}
	app.Logger = l
	app.Logger.Info().
		Str("env", string(app.Cf.Env)).
		Str("store_backend", string(app.Cf.StoreBackend)).
		Str("notifier", string(app.Cf.Notifier)).
		Int("aggregation_concurrency", app.Cf.AggregationConcurrency).
		Msg("Finish setup logger")
	return nil
}

func (app *ApplicationContext) setUpGateway() error {
	app.Logger.Info().Msg("Start setup record store")
	switch app.Cf.StoreBackend {
	case constants.StoreFirestore:
		store, err := firestoredb.NewStore(context.Background(), app.Cf.FirestoreProjectID, app.Cf.FirestoreCredentialsFile)
		if err != nil {
			return fmt.Errorf("setup firestore: %w", err)
		}
		app.Gateway = store
	case constants.StoreMemory, "":
		store := memory.NewStore()
		if app.Cf.FixtureFile != "" {
			if err := store.LoadFixture(app.Cf.FixtureFile); err != nil {
				return fmt.Errorf("load fixture %s: %w", app.Cf.FixtureFile, err)
			}
		}
		app.Gateway = store
	default:
		return fmt.Errorf("unknown store backend %q", app.Cf.StoreBackend)
	}
	app.Logger.Info().Msg("Finish setup record store")
	return nil
}

func (app *ApplicationContext) setUpRepositories() error {
	app.Logger.Info().Msg("Start setup repositories")
	app.CustomerRepo = repository.NewCustomerRepo(app.Gateway)
	app.OrderRepo = repository.NewOrderRepo(app.Gateway)
	app.ProductRepo = repository.NewProductRepo(app.Gateway)
	app.Logger.Info().Msg("Finish setup repositories")
	return nil
}

func (app *ApplicationContext) setUpNotifier() error {
	app.Logger.Info().Msg("Start setup notifier")
	switch app.Cf.Notifier {
	case constants.NotifierKafka:
		n, err := notifier.NewKafkaNotifier(app.Cf.Brokers(), app.Cf.KafkaTopic, app.Logger)
		if err != nil {
			return fmt.Errorf("setup kafka notifier: %w", err)
		}
		app.Notifier = n
	case constants.NotifierRedis:
		n, err := notifier.NewRedisNotifier(app.Cf.RedisAddress, app.Cf.RedisChannel,
			notifier.WithPassword(app.Cf.RedisPassword),
			notifier.WithDB(app.Cf.RedisDB),
		)
		if err != nil {
			return fmt.Errorf("setup redis notifier: %w", err)
		}
		app.Notifier = n
	case constants.NotifierNop, "":
		app.Notifier = notifier.NewNopNotifier()
	default:
		return fmt.Errorf("unknown notifier %q", app.Cf.Notifier)
	}
	app.Logger.Info().Msg("Finish setup notifier")
	return nil
}

func (app *ApplicationContext) setUpImageNormalizer() error {
	app.Logger.Info().Msg("Start setup image normalizer")
	app.ImageNormalizer = imaging.NewNormalizer(app.Cf.ImageMaxWidth, app.Cf.ImageQuality)
	app.Logger.Info().Msg("Finish setup image normalizer")
	return nil
}

func (app *ApplicationContext) setUpServices() error {
	app.Logger.Info().Msg("Start setup services")
	app.Aggregator = service.NewAggregator(app.CustomerRepo, app.OrderRepo, app.Cf.AggregationConcurrency, app.Logger, nil)
	app.OrderService = service.NewOrderService(app.OrderRepo, app.Notifier, app.Logger, nil)
	app.CustomerService = service.NewCustomerService(app.CustomerRepo, app.OrderRepo, app.Notifier, app.Logger, nil)
	app.ProductService = service.NewProductService(app.ProductRepo, app.ImageNormalizer, app.Notifier, app.Logger, nil)
	app.DashboardService = service.NewDashboardService(app.Aggregator, app.CustomerRepo, app.ProductRepo, nil)
	app.Logger.Info().Msg("Finish setup services")
	return nil
}

// ApplyConfig 設定檔變動時只套用 log level，其餘設定需要重啟
func (app *ApplicationContext) ApplyConfig(cf *config.Config) {
	if err := logger.SetLevel(cf.LogLevel); err != nil {
		app.Logger.Error().Err(err).Str("log_level", cf.LogLevel).Msg("ignore invalid log level")
		return
	}
	app.Logger.Info().Str("log_level", cf.LogLevel).Msg("log level reloaded")
}

func (app *ApplicationContext) Shutdown(ctx context.Context) error {
	done := make(chan error, 1)
	go func() {
		var firstErr error
		// notifier 先關，確保送出最後的異動事件
		if app.Notifier != nil {
			if err := app.Notifier.Close(); err != nil {
				app.logError(err, "notifier shutdown error")
				firstErr = err
			}
		}
		if app.Gateway != nil {
			if err := app.Gateway.Close(); err != nil {
				app.logError(err, "record store shutdown error")
				if firstErr == nil {
					firstErr = err
				}
			}
		}
		done <- firstErr
	}()

	select {
	case err := <-done:
		if app.Logger != nil {
			app.Logger.Info().Msg("Application shutdown complete")
		}
		return err
	case <-ctx.Done():
		return fmt.Errorf("shutdown timeout: %v", ctx.Err())
	}
}

func (app *ApplicationContext) logError(err error, msg string) {
	if app.Logger != nil {
		app.Logger.Error().Err(err).Msg(msg)
	}
}
