package ports

import (
	"context"

	"github.com/taskboard/core/internal/domain/entities"
)

// DocumentStore is the persistence boundary. The whole document is read
// and rewritten on every mutation; implementations must serialize
// read-modify-write cycles so concurrent mutations cannot lose updates.
type DocumentStore interface {
	// Load returns the current document. A missing backing file yields a
	// fresh (optionally seeded) document; an unreadable one yields an
	// empty document rather than an error.
	Load(ctx context.Context) (*entities.Document, error)

	// Save overwrites the backing file with the full document.
	Save(ctx context.Context, doc *entities.Document) error

	// Update runs fn against the freshly loaded document and persists the
	// result, all under the store's write lock. If fn returns an error
	// nothing is written.
	Update(ctx context.Context, fn func(doc *entities.Document) error) error
}
