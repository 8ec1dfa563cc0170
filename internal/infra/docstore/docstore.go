package docstore

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrNotFound    = errors.New("document not found")
	ErrInvalidPath = errors.New("invalid document path")
)

type sentinel int

// ServerTimestamp 寫入時由後端換成伺服器時間
const ServerTimestamp sentinel = 1

// Predicate 只支援等值比對，多個 predicate 之間為 AND
type Predicate struct {
	Field string
	Value any
}

func Eq(field string, value any) Predicate {
	return Predicate{Field: field, Value: value}
}

type Document struct {
	ID     string
	Path   string
	decode func(dst any) error
}

func NewDocument(id, path string, decode func(dst any) error) Document {
	return Document{ID: id, Path: path, decode: decode}
}

// DataTo 將文件內容解到 dst
func (d Document) DataTo(dst any) error {
	if d.decode == nil {
		return ErrNotFound
	}
	return d.decode(dst)
}

// Gateway 文件資料庫的最小操作集合
// 路徑以 "/" 分隔，例如 users/{uid}/orders
type Gateway interface {
	Add(ctx context.Context, collection string, data map[string]any) (string, error)
	Get(ctx context.Context, docPath string) (Document, error)
	List(ctx context.Context, collection string) ([]Document, error)
	Query(ctx context.Context, collection string, preds ...Predicate) ([]Document, error)
	Update(ctx context.Context, docPath string, fields map[string]any) error
	Delete(ctx context.Context, docPath string) error
	Close() error
}

// Join 組合路徑片段，任何片段為空或含有 "/" 都視為不合法
func Join(segments ...string) (string, error) {
	for _, s := range segments {
		if s == "" || strings.Contains(s, "/") {
			return "", ErrInvalidPath
		}
	}
	return strings.Join(segments, "/"), nil
}

// IsCollectionPath collection 路徑有奇數個片段
func IsCollectionPath(path string) bool {
	parts := strings.Split(path, "/")
	for _, p := range parts {
		if p == "" {
			return false
		}
	}
	return len(parts)%2 == 1
}

// IsDocumentPath document 路徑有偶數個片段
func IsDocumentPath(path string) bool {
	parts := strings.Split(path, "/")
	for _, p := range parts {
		if p == "" {
			return false
		}
	}
	return len(parts)%2 == 0
}
