package notifier

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/RoyceAzure/lab/storeadmin/internal/model"
	"github.com/redis/go-redis/v9"
)

type publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
	Close() error
}

type Option func(*redis.Options)

func WithPassword(password string) Option {
	return func(o *redis.Options) {
		o.Password = password
	}
}

func WithDB(db int) Option {
	return func(o *redis.Options) {
		o.DB = db
	}
}

// RedisNotifier 用 PUBLISH 發送，沒有訂閱者時訊息直接丟棄
type RedisNotifier struct {
	client  publisher
	channel string
	closed  atomic.Bool
}

func NewRedisNotifier(address, channel string, options ...Option) (*RedisNotifier, error) {
	if address == "" {
		return nil, errors.New("redis address is required")
	}
	if channel == "" {
		return nil, errors.New("redis channel is required")
	}
	opts := &redis.Options{
		Addr: address,
	}
	for _, option := range options {
		option(opts)
	}
	return newRedisNotifier(redis.NewClient(opts), channel), nil
}

func newRedisNotifier(client publisher, channel string) *RedisNotifier {
	return &RedisNotifier{client: client, channel: channel}
}

func (n *RedisNotifier) Publish(ctx context.Context, event model.MutationEvent) error {
	if n.closed.Load() {
		return ErrNotifierClosed
	}
	payload, err := encode(event)
	if err != nil {
		return err
	}
	if err := n.client.Publish(ctx, n.channel, payload).Err(); err != nil {
		return fmt.Errorf("redis publish: %w", err)
	}
	return nil
}

func (n *RedisNotifier) Close() error {
	if !n.closed.CompareAndSwap(false, true) {
		return nil
	}
	return n.client.Close()
}
