package repository

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/matryer/is"

	"github.com/taskboard/core/internal/domain/entities"
	"github.com/taskboard/core/internal/infrastructure/config"
	"github.com/taskboard/core/internal/infrastructure/logger"
)

func newTestStore(t *testing.T, seed bool) (*FileStore, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "tareas.json")
	store, err := NewFileStore(config.StorageConfig{DataFile: path, SeedDefaults: seed}, logger.NewNop())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	return store.(*FileStore), path
}

func TestFileStoreFirstRun(t *testing.T) {
	ctx := context.Background()

	t.Run("seeded", func(t *testing.T) {
		is := is.New(t)
		store, _ := newTestStore(t, true)

		doc, err := store.Load(ctx)
		is.NoErr(err)
		is.Equal(len(doc.Tasks), 0)
		is.Equal(len(doc.Categories), 3)
	})

	t.Run("unseeded", func(t *testing.T) {
		is := is.New(t)
		store, _ := newTestStore(t, false)

		doc, err := store.Load(ctx)
		is.NoErr(err)
		is.Equal(len(doc.Tasks), 0)
		is.Equal(len(doc.Categories), 0)
	})
}

func TestFileStoreRoundTrip(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	store, path := newTestStore(t, false)

	doc := entities.NewDocument()
	doc.Tasks = append(doc.Tasks, entities.Task{ID: 1, Title: "comprar pan", Date: "2024-12-01", Time: "10:00", CreatedAt: entities.Now()})
	doc.Categories = append(doc.Categories, entities.Category{ID: 2, Name: "Hogar", Color: "#555555", CreatedAt: entities.Now()})

	is.NoErr(store.Save(ctx, doc))

	loaded, err := store.Load(ctx)
	is.NoErr(err)
	is.Equal(len(loaded.Tasks), 1)
	is.Equal(loaded.Tasks[0].Title, "comprar pan")
	is.Equal(len(loaded.Categories), 1)
	is.Equal(loaded.Categories[0].Name, "Hogar")

	// On-disk field names stay compatible with existing files.
	raw, err := os.ReadFile(path)
	is.NoErr(err)
	var onDisk map[string]json.RawMessage
	is.NoErr(json.Unmarshal(raw, &onDisk))
	_, hasTareas := onDisk["tareas"]
	_, hasCategorias := onDisk["categorias"]
	is.True(hasTareas)
	is.True(hasCategorias)
}

func TestFileStoreCorruptFile(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	store, path := newTestStore(t, true)

	is.NoErr(os.WriteFile(path, []byte("{not json"), 0o644))

	doc, err := store.Load(ctx)
	is.NoErr(err) // corruption is swallowed, not surfaced
	is.Equal(len(doc.Tasks), 0)
	is.Equal(len(doc.Categories), 0)
}

func TestFileStoreLegacyArrayMigration(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	store, path := newTestStore(t, true)

	legacy := `[{"id": 5, "titulo": "vieja tarea", "fecha": "2023-01-01", "hora": "08:00"}]`
	is.NoErr(os.WriteFile(path, []byte(legacy), 0o644))

	doc, err := store.Load(ctx)
	is.NoErr(err)
	is.Equal(len(doc.Tasks), 1)
	is.Equal(doc.Tasks[0].Title, "vieja tarea")
	is.True(len(doc.Categories) > 0) // migration seeds default categories

	// The migration is in-memory only until the next save.
	raw, err := os.ReadFile(path)
	is.NoErr(err)
	is.Equal(raw[0], byte('['))

	is.NoErr(store.Save(ctx, doc))
	raw, err = os.ReadFile(path)
	is.NoErr(err)
	is.Equal(raw[0], byte('{'))
}

func TestFileStoreLegacyEmptyArray(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	store, path := newTestStore(t, true)

	is.NoErr(os.WriteFile(path, []byte("[]"), 0o644))

	doc, err := store.Load(ctx)
	is.NoErr(err)
	is.Equal(len(doc.Tasks), 0)
	is.Equal(len(doc.Categories), 3) // treated as a first run
}

func TestFileStoreUpdateFailureWritesNothing(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	store, _ := newTestStore(t, false)

	doc := entities.NewDocument()
	doc.Tasks = append(doc.Tasks, entities.Task{ID: 1, Title: "intacta"})
	is.NoErr(store.Save(ctx, doc))

	boom := errors.New("boom")
	err := store.Update(ctx, func(doc *entities.Document) error {
		doc.Tasks = nil
		return boom
	})
	is.True(errors.Is(err, boom))

	loaded, err := store.Load(ctx)
	is.NoErr(err)
	is.Equal(len(loaded.Tasks), 1)
}

func TestMemoryStoreIsolation(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	store := NewMemoryStore(nil)

	doc, err := store.Load(ctx)
	is.NoErr(err)
	doc.Tasks = append(doc.Tasks, entities.Task{ID: 1})

	// Mutating the loaded copy must not affect the store.
	fresh, err := store.Load(ctx)
	is.NoErr(err)
	is.Equal(len(fresh.Tasks), 0)

	is.NoErr(store.Update(ctx, func(doc *entities.Document) error {
		doc.Tasks = append(doc.Tasks, entities.Task{ID: 2})
		return nil
	}))

	fresh, err = store.Load(ctx)
	is.NoErr(err)
	is.Equal(len(fresh.Tasks), 1)
}
