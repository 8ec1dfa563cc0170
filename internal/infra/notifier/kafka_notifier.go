package notifier

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/RoyceAzure/lab/storeadmin/internal/model"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaNotifier struct {
	writer messageWriter
	closed atomic.Bool
}

// NewKafkaNotifier 同步寫入，同一份文件的事件用 key 落在同一個 partition
func NewKafkaNotifier(brokers []string, topic string, logger *zerolog.Logger) (*KafkaNotifier, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka brokers are required")
	}
	if topic == "" {
		return nil, errors.New("kafka topic is required")
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 10 * time.Millisecond,
		Async:        false,
		MaxAttempts:  3,
	}
	if logger != nil {
		writer.ErrorLogger = kafka.LoggerFunc(func(msg string, args ...interface{}) {
			logger.Error().Msgf("kafka notifier error: "+msg, args...)
		})
	}
	return newKafkaNotifier(writer), nil
}

func newKafkaNotifier(writer messageWriter) *KafkaNotifier {
	return &KafkaNotifier{writer: writer}
}

func (n *KafkaNotifier) Publish(ctx context.Context, event model.MutationEvent) error {
	if n.closed.Load() {
		return ErrNotifierClosed
	}
	payload, err := encode(event)
	if err != nil {
		return err
	}
	err = n.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Key()),
		Value: payload,
		Time:  event.At,
	})
	if err != nil {
		return fmt.Errorf("write kafka message: %w", err)
	}
	return nil
}

func (n *KafkaNotifier) Close() error {
	if !n.closed.CompareAndSwap(false, true) {
		return nil
	}
	return n.writer.Close()
}
