package favorites

import (
	"context"
	"sync"
)

// InMemoryRepository is an in-memory implementation of Repository.
// This is intended for testing.
type InMemoryRepository struct {
	mu  sync.Mutex
	doc *Document
}

// NewInMemoryRepository creates a new in-memory favorites repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

// Load returns a copy of the stored document.
func (r *InMemoryRepository) Load(_ context.Context) (*Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.doc == nil {
		return NewDocument(), nil
	}

	cpy := Document{
		SchemaVersion: r.doc.SchemaVersion,
		Names:         append([]string(nil), r.doc.Names...),
	}
	return &cpy, nil
}

// Save stores a copy of the document.
func (r *InMemoryRepository) Save(_ context.Context, doc *Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cpy := Document{
		SchemaVersion: doc.SchemaVersion,
		Names:         append([]string(nil), doc.Names...),
	}
	r.doc = &cpy
	return nil
}

// Ensure InMemoryRepository implements Repository interface.
var _ Repository = (*InMemoryRepository)(nil)
