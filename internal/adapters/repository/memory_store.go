package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/taskboard/core/internal/domain/entities"
	"github.com/taskboard/core/internal/ports"
)

// MemoryStore keeps the document in memory behind the same interface as
// FileStore. Tests and the integration self-test endpoint use it so they
// never touch the real data file.
type MemoryStore struct {
	mu  sync.RWMutex
	doc *entities.Document
}

// NewMemoryStore returns a store holding a copy of doc, or an empty
// document when doc is nil.
func NewMemoryStore(doc *entities.Document) ports.DocumentStore {
	if doc == nil {
		doc = entities.NewDocument()
	}
	return &MemoryStore{doc: clone(doc)}
}

func (s *MemoryStore) Load(ctx context.Context) (*entities.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return clone(s.doc), nil
}

func (s *MemoryStore) Save(ctx context.Context, doc *entities.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc = clone(doc)
	return nil
}

func (s *MemoryStore) Update(ctx context.Context, fn func(doc *entities.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := clone(s.doc)
	if err := fn(doc); err != nil {
		return err
	}

	s.doc = doc
	return nil
}

// clone deep-copies through the JSON codec, the same round trip the file
// store performs.
func clone(doc *entities.Document) *entities.Document {
	data, err := json.Marshal(doc)
	if err != nil {
		panic(fmt.Sprintf("clone document: %v", err))
	}
	var out entities.Document
	if err := json.Unmarshal(data, &out); err != nil {
		panic(fmt.Sprintf("clone document: %v", err))
	}
	if out.Tasks == nil {
		out.Tasks = []entities.Task{}
	}
	if out.Categories == nil {
		out.Categories = []entities.Category{}
	}
	return &out
}
