package notifier

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/RoyceAzure/lab/storeadmin/internal/model"
)

var ErrNotifierClosed = errors.New("notifier is closed")

// Notifier 後台寫入成功後的對外通知，只做稽核用途
type Notifier interface {
	Publish(ctx context.Context, event model.MutationEvent) error
	Close() error
}

type NopNotifier struct{}

func NewNopNotifier() *NopNotifier {
	return &NopNotifier{}
}

func (n *NopNotifier) Publish(ctx context.Context, event model.MutationEvent) error {
	return nil
}

func (n *NopNotifier) Close() error {
	return nil
}

func encode(event model.MutationEvent) ([]byte, error) {
	return json.Marshal(event)
}
