package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/RoyceAzure/lab/storeadmin/internal/infra/docstore"
	"github.com/RoyceAzure/lab/storeadmin/internal/infra/notifier"
	"github.com/RoyceAzure/lab/storeadmin/internal/infra/repository"
	"github.com/RoyceAzure/lab/storeadmin/internal/model"
	er "github.com/RoyceAzure/rj/util/rj_error"
	"github.com/rs/zerolog"
)

type Clock func() time.Time

type CustomerStore interface {
	ListCustomers(ctx context.Context) ([]model.Customer, error)
	GetCustomer(ctx context.Context, userID string) (*model.Customer, error)
	ListAddresses(ctx context.Context, userID string) ([]model.Address, error)
	UpdateCustomer(ctx context.Context, userID string, fields map[string]any) error
	DeleteCustomer(ctx context.Context, userID string) error
}

type OrderStore interface {
	ListOrders(ctx context.Context, userID string) ([]model.Order, error)
	GetOrder(ctx context.Context, userID, orderID string) (*model.Order, error)
	UpdateOrder(ctx context.Context, userID, orderID string, fields map[string]any) error
	DeleteOrder(ctx context.Context, userID, orderID string) error
}

type ProductStore interface {
	CreateProduct(ctx context.Context, fields map[string]any) (string, error)
	GetProduct(ctx context.Context, productID string) (*model.Product, error)
	ListProducts(ctx context.Context) ([]model.Product, error)
	ListByCategory(ctx context.Context, category string) ([]model.Product, error)
	ListBySubcategory(ctx context.Context, category, subcategory string) ([]model.Product, error)
	UpdateProduct(ctx context.Context, productID string, fields map[string]any) error
	DeleteProduct(ctx context.Context, productID string) error
}

// storeError 把資料層錯誤轉成 rj_error，handler 只需要看 code
func storeError(err error, action string) error {
	msg := fmt.Sprintf("%s: %v", action, err)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return er.New(er.DataNotExistsCode, msg)
	case errors.Is(err, docstore.ErrInvalidPath):
		return er.New(er.InvalidArgumentCode, msg)
	default:
		return er.New(er.InternalErrorCode, msg)
	}
}

func invalid(format string, args ...any) error {
	return er.New(er.InvalidArgumentCode, fmt.Sprintf(format, args...))
}

func requireID(name, value string) error {
	if value == "" {
		return invalid("%s is required", name)
	}
	return nil
}

// PublishTimeout broker 掛掉時最多讓寫入的回應多等這麼久
const PublishTimeout = 2 * time.Second

// publisher 寫入成功後通知，失敗只記 log 不影響呼叫端
type publisher struct {
	notifier notifier.Notifier
	logger   *zerolog.Logger
	now      Clock
	timeout  time.Duration
}

func (p publisher) publish(ctx context.Context, event model.MutationEvent) {
	if p.notifier == nil {
		return
	}
	timeout := p.timeout
	if timeout <= 0 {
		timeout = PublishTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	event.At = p.now()
	event.Fields = eventFields(event.Fields)
	if err := p.notifier.Publish(ctx, event); err != nil {
		p.logger.Warn().
			Err(err).
			Str("event", string(event.Type)).
			Str("key", event.Key()).
			Msg("failed to publish mutation event")
	}
}

// eventFields 去掉 server timestamp 這類只對資料庫有意義的值
func eventFields(fields map[string]any) map[string]any {
	if len(fields) == 0 {
		return nil
	}
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		if v == docstore.ServerTimestamp {
			continue
		}
		out[k] = v
	}
	return out
}

func nopLogger(logger *zerolog.Logger) *zerolog.Logger {
	if logger == nil {
		l := zerolog.Nop()
		return &l
	}
	return logger
}

func defaultClock(now Clock) Clock {
	if now == nil {
		return time.Now
	}
	return now
}
