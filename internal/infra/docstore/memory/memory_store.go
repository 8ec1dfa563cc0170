package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/RoyceAzure/lab/storeadmin/internal/infra/docstore"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Store 程序內的文件資料庫，測試與離線展示用
// 內容一律以 JSON 正規化後保存，讀出時再解到呼叫端的 struct
type Store struct {
	mu   sync.RWMutex
	docs map[string]map[string]any
	now  func() time.Time
}

type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		docs: make(map[string]map[string]any),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ docstore.Gateway = (*Store)(nil)

type fixture struct {
	Documents map[string]map[string]any `yaml:"documents"`
}

// LoadFixture 讀取 yaml 格式的初始資料
//
//	documents:
//	  users/u1:
//	    displayName: Amy
//	  users/u1/orders/o1:
//	    orderNumber: ORD-1
func (s *Store) LoadFixture(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	f := fixture{}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parse fixture %s: %w", path, err)
	}
	for docPath, fields := range f.Documents {
		if err := s.Seed(docPath, fields); err != nil {
			return err
		}
	}
	return nil
}

// Seed 直接寫入指定路徑的文件，已存在則覆蓋
func (s *Store) Seed(docPath string, fields map[string]any) error {
	if !docstore.IsDocumentPath(docPath) {
		return fmt.Errorf("%w: %s", docstore.ErrInvalidPath, docPath)
	}
	normalized, err := s.normalize(fields)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[docPath] = normalized
	return nil
}

func (s *Store) Add(ctx context.Context, collection string, data map[string]any) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !docstore.IsCollectionPath(collection) {
		return "", fmt.Errorf("%w: %s", docstore.ErrInvalidPath, collection)
	}
	normalized, err := s.normalize(data)
	if err != nil {
		return "", err
	}
	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[collection+"/"+id] = normalized
	return id, nil
}

func (s *Store) Get(ctx context.Context, docPath string) (docstore.Document, error) {
	if err := ctx.Err(); err != nil {
		return docstore.Document{}, err
	}
	if !docstore.IsDocumentPath(docPath) {
		return docstore.Document{}, fmt.Errorf("%w: %s", docstore.ErrInvalidPath, docPath)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	fields, ok := s.docs[docPath]
	if !ok {
		return docstore.Document{}, docstore.ErrNotFound
	}
	return snapshot(docPath, fields)
}

func (s *Store) List(ctx context.Context, collection string) ([]docstore.Document, error) {
	return s.Query(ctx, collection)
}

func (s *Store) Query(ctx context.Context, collection string, preds ...docstore.Predicate) ([]docstore.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !docstore.IsCollectionPath(collection) {
		return nil, fmt.Errorf("%w: %s", docstore.ErrInvalidPath, collection)
	}

	wanted := make([]any, len(preds))
	for i, p := range preds {
		v, err := normalizeValue(p.Value)
		if err != nil {
			return nil, err
		}
		wanted[i] = v
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	prefix := collection + "/"
	paths := make([]string, 0)
	for docPath, fields := range s.docs {
		id, ok := strings.CutPrefix(docPath, prefix)
		// 只取直接子文件
		if !ok || strings.Contains(id, "/") {
			continue
		}
		if matchAll(fields, preds, wanted) {
			paths = append(paths, docPath)
		}
	}
	sort.Strings(paths)

	docs := make([]docstore.Document, 0, len(paths))
	for _, docPath := range paths {
		doc, err := snapshot(docPath, s.docs[docPath])
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (s *Store) Update(ctx context.Context, docPath string, fields map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !docstore.IsDocumentPath(docPath) {
		return fmt.Errorf("%w: %s", docstore.ErrInvalidPath, docPath)
	}
	normalized, err := s.normalize(fields)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.docs[docPath]
	if !ok {
		return docstore.ErrNotFound
	}
	for k, v := range normalized {
		current[k] = v
	}
	return nil
}

// Delete 跟 Firestore 一樣不會連帶刪除子集合，刪除不存在的文件不算錯誤
func (s *Store) Delete(ctx context.Context, docPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !docstore.IsDocumentPath(docPath) {
		return fmt.Errorf("%w: %s", docstore.ErrInvalidPath, docPath)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, docPath)
	return nil
}

func (s *Store) Close() error {
	return nil
}

func (s *Store) normalize(fields map[string]any) (map[string]any, error) {
	now := s.now()
	replaced := make(map[string]any, len(fields))
	for k, v := range fields {
		if v == docstore.ServerTimestamp {
			v = now
		}
		replaced[k] = v
	}
	b, err := json.Marshal(replaced)
	if err != nil {
		return nil, err
	}
	out := make(map[string]any, len(replaced))
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func normalizeValue(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func matchAll(fields map[string]any, preds []docstore.Predicate, wanted []any) bool {
	for i, p := range preds {
		got, ok := lookup(fields, p.Field)
		if !ok || !reflect.DeepEqual(got, wanted[i]) {
			return false
		}
	}
	return true
}

// lookup 支援 "shippingAddress.email" 這種巢狀欄位
func lookup(fields map[string]any, field string) (any, bool) {
	var cur any = fields
	for _, part := range strings.Split(field, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

func snapshot(docPath string, fields map[string]any) (docstore.Document, error) {
	b, err := json.Marshal(fields)
	if err != nil {
		return docstore.Document{}, err
	}
	id := docPath[strings.LastIndex(docPath, "/")+1:]
	return docstore.NewDocument(id, docPath, func(dst any) error {
		return json.Unmarshal(b, dst)
	}), nil
}
