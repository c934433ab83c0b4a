package favorites

import "context"

// Repository persists the favorites document. Implementations read and
// write the whole document; there is no partial update.
type Repository interface {
	// Load returns the persisted document, or an empty document at the
	// current schema version when nothing has been persisted yet.
	Load(ctx context.Context) (*Document, error)

	// Save replaces the persisted document.
	Save(ctx context.Context, doc *Document) error
}
