package repository

import (
	"errors"
	"fmt"

	"github.com/RoyceAzure/lab/storeadmin/internal/infra/docstore"
)

const (
	UsersCollection     = "users"
	ProductsCollection  = "products"
	ordersSubCollection = "orders"
	addrSubCollection   = "addresses"
)

var (
	// ErrNotFound 文件不存在
	ErrNotFound = fmt.Errorf("record not found: %w", docstore.ErrNotFound)
)

func mapNotFound(err error) error {
	if errors.Is(err, docstore.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func customerPath(userID string) (string, error) {
	return docstore.Join(UsersCollection, userID)
}

func ordersPath(userID string) (string, error) {
	return docstore.Join(UsersCollection, userID, ordersSubCollection)
}

func orderPath(userID, orderID string) (string, error) {
	return docstore.Join(UsersCollection, userID, ordersSubCollection, orderID)
}

func addressesPath(userID string) (string, error) {
	return docstore.Join(UsersCollection, userID, addrSubCollection)
}

func productPath(productID string) (string, error) {
	return docstore.Join(ProductsCollection, productID)
}

// decodeAll 逐筆解碼，任何一筆失敗整批回傳錯誤
func decodeAll[T any](docs []docstore.Document, setID func(*T, string)) ([]T, error) {
	out := make([]T, 0, len(docs))
	for _, doc := range docs {
		var v T
		if err := doc.DataTo(&v); err != nil {
			return nil, fmt.Errorf("decode %s: %w", doc.Path, err)
		}
		setID(&v, doc.ID)
		out = append(out, v)
	}
	return out, nil
}
