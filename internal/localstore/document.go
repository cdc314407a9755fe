package localstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jefanko/app-updates/internal/domain"
	"go.uber.org/zap"
)

// ErrRecordNotFound is returned when a record id is absent from a collection
var ErrRecordNotFound = errors.New("record not found")

// Record is one untyped entry of a local collection
type Record = map[string]interface{}

// DocumentStore caches the main document in memory. The first access loads
// it from the backend, creating {"clients":[],"projects":[]} if it has never
// been written. Every write goes through atomicUpdate, which re-reads the
// document so changes made by another process are not lost.
type DocumentStore struct {
	mu      sync.Mutex
	backend Backend
	cache   map[string][]Record
	logger  *zap.Logger
	now     func() time.Time
}

// NewDocumentStore creates a store over backend
func NewDocumentStore(backend Backend, logger *zap.Logger) *DocumentStore {
	return &DocumentStore{
		backend: backend,
		logger:  logger,
		now:     time.Now,
	}
}

// Path returns where the main document lives
func (s *DocumentStore) Path() string {
	return s.backend.GetPath()
}

// SetPath relocates the main document and drops the cache
func (s *DocumentStore) SetPath(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backend.SetPath(path); err != nil {
		return err
	}
	s.cache = nil
	return nil
}

// Refresh discards the cache and reloads the document
func (s *DocumentStore) Refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache = nil
	_, err := s.load(ctx)
	return err
}

// Collections returns the names of every collection in the document
func (s *DocumentStore) Collections(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(data))
	for name := range data {
		names = append(names, name)
	}
	return names, nil
}

// GetAll returns every record of a collection; unknown collections are empty
func (s *DocumentStore) GetAll(ctx context.Context, collection string) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	items := data[collection]
	out := make([]Record, 0, len(items))
	for _, item := range items {
		out = append(out, copyRecord(item))
	}
	return out, nil
}

// GetByID returns one record of a collection
func (s *DocumentStore) GetByID(ctx context.Context, collection, id string) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOfRecord(data[collection], id)
	if i < 0 {
		return nil, ErrRecordNotFound
	}
	return copyRecord(data[collection][i]), nil
}

// Add appends item to a collection with a fresh id and createdAt timestamp
func (s *DocumentStore) Add(ctx context.Context, collection string, item Record) (Record, error) {
	record := copyRecord(item)
	record["id"] = uuid.New().String()
	record["createdAt"] = s.now().UTC().Format(time.RFC3339Nano)

	err := s.atomicUpdate(ctx, func(data map[string][]Record) error {
		data[collection] = append(data[collection], record)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return copyRecord(record), nil
}

// Update merges updates into the record with the given id
func (s *DocumentStore) Update(ctx context.Context, collection, id string, updates Record) (Record, error) {
	var merged Record
	err := s.atomicUpdate(ctx, func(data map[string][]Record) error {
		i := indexOfRecord(data[collection], id)
		if i < 0 {
			return ErrRecordNotFound
		}
		merged = copyRecord(data[collection][i])
		for k, v := range updates {
			merged[k] = v
		}
		merged["id"] = id
		data[collection][i] = merged
		return nil
	})
	if err != nil {
		return nil, err
	}
	return copyRecord(merged), nil
}

// Delete removes the record with the given id
func (s *DocumentStore) Delete(ctx context.Context, collection, id string) error {
	return s.atomicUpdate(ctx, func(data map[string][]Record) error {
		items := data[collection]
		i := indexOfRecord(items, id)
		if i < 0 {
			return ErrRecordNotFound
		}
		data[collection] = append(items[:i:i], items[i+1:]...)
		return nil
	})
}

// ReadDocument returns the main document in its typed shape
func (s *DocumentStore) ReadDocument(ctx context.Context) (*domain.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	doc := domain.NewDocument()
	if err := json.Unmarshal(raw, doc); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	return doc.Normalize(), nil
}

// WriteDocument replaces the clients and projects collections with doc,
// keeping any other collection untouched
func (s *DocumentStore) WriteDocument(ctx context.Context, doc *domain.Document) error {
	if doc == nil {
		doc = domain.NewDocument()
	}
	raw, err := json.Marshal(doc.Normalize())
	if err != nil {
		return err
	}
	var typed map[string][]Record
	if err := json.Unmarshal(raw, &typed); err != nil {
		return err
	}
	return s.atomicUpdate(ctx, func(data map[string][]Record) error {
		for name, items := range typed {
			data[name] = items
		}
		return nil
	})
}

// atomicUpdate drops the cache, reads the current document, applies fn and
// writes the result back. The cache is only replaced when the write succeeds.
func (s *DocumentStore) atomicUpdate(ctx context.Context, fn func(data map[string][]Record) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache = nil
	data, err := s.load(ctx)
	if err != nil {
		return err
	}
	next := copyDocument(data)
	if err := fn(next); err != nil {
		return err
	}
	if err := s.write(ctx, next); err != nil {
		return err
	}
	s.cache = next
	return nil
}

func (s *DocumentStore) load(ctx context.Context) (map[string][]Record, error) {
	if s.cache != nil {
		return s.cache, nil
	}

	raw, err := s.backend.Read(ctx, MainDocument)
	if errors.Is(err, ErrNotExist) {
		data := defaultDocument()
		if err := s.write(ctx, data); err != nil {
			return nil, err
		}
		s.cache = data
		return data, nil
	}
	if err != nil {
		return nil, err
	}

	var data map[string][]Record
	if err := json.Unmarshal(raw, &data); err != nil {
		s.logger.Warn("local document is unreadable, using an empty one",
			zap.String("path", s.backend.GetPath()),
			zap.Error(err))
		data = defaultDocument()
	}
	for _, name := range []string{"clients", "projects"} {
		if data[name] == nil {
			data[name] = []Record{}
		}
	}
	s.cache = data
	return data, nil
}

func (s *DocumentStore) write(ctx context.Context, data map[string][]Record) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	if err := s.backend.Write(ctx, MainDocument, raw); err != nil {
		return fmt.Errorf("failed to write local document: %w", err)
	}
	return nil
}

func defaultDocument() map[string][]Record {
	return map[string][]Record{
		"clients":  {},
		"projects": {},
	}
}

func copyDocument(data map[string][]Record) map[string][]Record {
	out := make(map[string][]Record, len(data))
	for name, items := range data {
		cp := make([]Record, len(items))
		copy(cp, items)
		out[name] = cp
	}
	return out
}

func copyRecord(r Record) Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

func indexOfRecord(items []Record, id string) int {
	for i, item := range items {
		if v, ok := item["id"].(string); ok && v == id {
			return i
		}
	}
	return -1
}
