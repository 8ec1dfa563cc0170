package firestoredb

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"cloud.google.com/go/firestore"
	"github.com/RoyceAzure/lab/storeadmin/internal/infra/docstore"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Store 以 Cloud Firestore 實作 docstore.Gateway
type Store struct {
	client *firestore.Client
}

var _ docstore.Gateway = (*Store)(nil)

// NewStore credentialsFile 為空時使用預設認證
// 設定 FIRESTORE_EMULATOR_HOST 時 client 會自動連到 emulator
func NewStore(ctx context.Context, projectID, credentialsFile string) (*Store, error) {
	if projectID == "" {
		return nil, errors.New("firestore project id is required")
	}
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("create firestore client: %w", err)
	}
	return &Store{client: client}, nil
}

func (s *Store) collection(path string) (*firestore.CollectionRef, error) {
	if !docstore.IsCollectionPath(path) {
		return nil, fmt.Errorf("%w: %s", docstore.ErrInvalidPath, path)
	}
	ref := s.client.Collection(path)
	if ref == nil {
		return nil, fmt.Errorf("%w: %s", docstore.ErrInvalidPath, path)
	}
	return ref, nil
}

func (s *Store) doc(path string) (*firestore.DocumentRef, error) {
	if !docstore.IsDocumentPath(path) {
		return nil, fmt.Errorf("%w: %s", docstore.ErrInvalidPath, path)
	}
	ref := s.client.Doc(path)
	if ref == nil {
		return nil, fmt.Errorf("%w: %s", docstore.ErrInvalidPath, path)
	}
	return ref, nil
}

func (s *Store) Add(ctx context.Context, collection string, data map[string]any) (string, error) {
	ref, err := s.collection(collection)
	if err != nil {
		return "", err
	}
	docRef, _, err := ref.Add(ctx, toFirestoreFields(data))
	if err != nil {
		return "", err
	}
	return docRef.ID, nil
}

func (s *Store) Get(ctx context.Context, docPath string) (docstore.Document, error) {
	ref, err := s.doc(docPath)
	if err != nil {
		return docstore.Document{}, err
	}
	snap, err := ref.Get(ctx)
	if err != nil {
		return docstore.Document{}, mapError(err)
	}
	return toDocument(snap), nil
}

func (s *Store) List(ctx context.Context, collection string) ([]docstore.Document, error) {
	return s.Query(ctx, collection)
}

func (s *Store) Query(ctx context.Context, collection string, preds ...docstore.Predicate) ([]docstore.Document, error) {
	ref, err := s.collection(collection)
	if err != nil {
		return nil, err
	}

	q := ref.Query
	for _, p := range preds {
		q = q.Where(p.Field, "==", p.Value)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	docs := make([]docstore.Document, 0)
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, mapError(err)
		}
		docs = append(docs, toDocument(snap))
	}
	return docs, nil
}

func (s *Store) Update(ctx context.Context, docPath string, fields map[string]any) error {
	ref, err := s.doc(docPath)
	if err != nil {
		return err
	}
	_, err = ref.Update(ctx, toUpdates(fields))
	return mapError(err)
}

func (s *Store) Delete(ctx context.Context, docPath string) error {
	ref, err := s.doc(docPath)
	if err != nil {
		return err
	}
	_, err = ref.Delete(ctx)
	return mapError(err)
}

func (s *Store) Close() error {
	return s.client.Close()
}

func toDocument(snap *firestore.DocumentSnapshot) docstore.Document {
	return docstore.NewDocument(snap.Ref.ID, relativePath(snap.Ref.Path), snap.DataTo)
}

// relativePath Ref.Path 是完整資源路徑 projects/{p}/databases/{d}/documents/...
func relativePath(full string) string {
	if _, rest, ok := strings.Cut(full, "/documents/"); ok {
		return rest
	}
	return full
}

func toFirestoreValue(v any) any {
	if v == docstore.ServerTimestamp {
		return firestore.ServerTimestamp
	}
	return v
}

func toFirestoreFields(data map[string]any) map[string]any {
	out := make(map[string]any, len(data))
	for k, v := range data {
		out[k] = toFirestoreValue(v)
	}
	return out
}

// toUpdates 依欄位名稱排序，讓寫入內容固定
func toUpdates(fields map[string]any) []firestore.Update {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	updates := make([]firestore.Update, 0, len(keys))
	for _, k := range keys {
		// 用 FieldPath 避免欄位名稱被當成巢狀路徑
		updates = append(updates, firestore.Update{FieldPath: firestore.FieldPath{k}, Value: toFirestoreValue(fields[k])})
	}
	return updates
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if status.Code(err) == codes.NotFound {
		return fmt.Errorf("%w: %v", docstore.ErrNotFound, err)
	}
	return err
}
