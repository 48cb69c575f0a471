package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/taskboard/core/internal/domain/entities"
	"github.com/taskboard/core/internal/infrastructure/config"
	"github.com/taskboard/core/internal/infrastructure/logger"
	"github.com/taskboard/core/internal/ports"
)

// FileStore persists the whole document as one pretty-printed JSON file.
// A store-wide mutex serializes read-modify-write cycles so two mutating
// requests cannot silently discard each other's writes.
type FileStore struct {
	path         string
	seedDefaults bool
	logger       *logger.Logger

	mu sync.RWMutex
}

// NewFileStore creates a file store rooted at cfg.DataFile. The parent
// directory is created if missing.
func NewFileStore(cfg config.StorageConfig, log *logger.Logger) (ports.DocumentStore, error) {
	dir := filepath.Dir(cfg.DataFile)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data directory %s: %w", dir, err)
		}
	}

	return &FileStore{
		path:         cfg.DataFile,
		seedDefaults: cfg.SeedDefaults,
		logger:       log,
	}, nil
}

// Load returns the current document.
func (s *FileStore) Load(ctx context.Context) (*entities.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.load()
}

// Save overwrites the backing file with the full document.
func (s *FileStore) Save(ctx context.Context, doc *entities.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.save(doc)
}

// Update applies fn to the freshly loaded document and persists the
// result under the write lock. Nothing is written when fn fails.
func (s *FileStore) Update(ctx context.Context, fn func(doc *entities.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}

	if err := fn(doc); err != nil {
		return err
	}

	return s.save(doc)
}

// load reads and decodes the backing file. Callers hold the lock.
//
// Three historical file shapes are handled: the document shape, a bare
// task array from the first release (wrapped in memory, persisted on the
// next save), and garbage (yields an empty document with a warning, never
// an error surfaced to the request).
func (s *FileStore) load() (*entities.Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return s.fresh(), nil
		}
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var tasks []entities.Task
		if err := json.Unmarshal(trimmed, &tasks); err != nil {
			s.logger.Warn("Data file is corrupt, starting empty", "path", s.path, "error", err)
			return entities.NewDocument(), nil
		}
		if len(tasks) == 0 {
			return s.fresh(), nil
		}
		s.logger.Info("Migrating legacy task array to document shape", "path", s.path, "tasks", len(tasks))
		return &entities.Document{
			Tasks:      tasks,
			Categories: entities.DefaultCategories(),
		}, nil
	}

	var doc entities.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		s.logger.Warn("Data file is corrupt, starting empty", "path", s.path, "error", err)
		return entities.NewDocument(), nil
	}

	if doc.Tasks == nil {
		doc.Tasks = []entities.Task{}
	}
	if doc.Categories == nil {
		doc.Categories = []entities.Category{}
	}

	return &doc, nil
}

// save writes the full document, pretty-printed. Callers hold the lock.
func (s *FileStore) save(doc *entities.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}

	return nil
}

func (s *FileStore) fresh() *entities.Document {
	doc := entities.NewDocument()
	if s.seedDefaults {
		doc.Categories = entities.DefaultCategories()
	}
	return doc
}
