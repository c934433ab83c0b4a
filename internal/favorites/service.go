package favorites

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// ServiceConfig holds configuration for the favorites service.
type ServiceConfig struct {
	// Repository is the persistence backend.
	Repository Repository

	// Logger for service operations.
	Logger zerolog.Logger
}

// Service keeps the ordered favorites list in sync with its persistence.
// Every mutation is written through before it becomes visible, so the
// in-memory list never diverges from storage.
type Service struct {
	repo   Repository
	logger zerolog.Logger

	mu    sync.Mutex
	names []string
}

// NewService creates the favorites service, loading the persisted document.
// A version 0 document (pre-versioning bare list) is migrated in place.
func NewService(ctx context.Context, cfg ServiceConfig) (*Service, error) {
	doc, err := cfg.Repository.Load(ctx)
	if err != nil {
		return nil, err
	}

	s := &Service{
		repo:   cfg.Repository,
		logger: cfg.Logger,
		names:  doc.Names,
	}

	if doc.SchemaVersion < SchemaVersion {
		s.logger.Info().
			Int("from_version", doc.SchemaVersion).
			Int("to_version", SchemaVersion).
			Msg("migrating favorites document")
		if err := s.persist(ctx); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// List returns the favorite names in insertion order.
func (s *Service) List() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.names...)
}

// Add appends a name and persists the list. Adding a name that is already
// present (case-sensitive exact match) is a no-op.
func (s *Service) Add(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.contains(name) {
		return nil
	}

	s.names = append(s.names, name)
	if err := s.persist(ctx); err != nil {
		// Keep memory and storage in lockstep: undo the append.
		s.names = s.names[:len(s.names)-1]
		return err
	}

	s.logger.Debug().Str("name", name).Msg("favorite added")
	return nil
}

// Remove deletes an exact-match name and persists the list. Removing a
// name that is absent is a no-op, not an error.
func (s *Service) Remove(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, n := range s.names {
		if n == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	removed := s.names[idx]
	s.names = append(s.names[:idx:idx], s.names[idx+1:]...)
	if err := s.persist(ctx); err != nil {
		// Undo the removal at its original position.
		s.names = append(s.names[:idx], append([]string{removed}, s.names[idx:]...)...)
		return err
	}

	s.logger.Debug().Str("name", name).Msg("favorite removed")
	return nil
}

// contains reports whether name is present. Caller holds the lock.
func (s *Service) contains(name string) bool {
	for _, n := range s.names {
		if n == name {
			return true
		}
	}
	return false
}

// persist writes the whole document. Caller holds the lock.
func (s *Service) persist(ctx context.Context) error {
	doc := &Document{
		SchemaVersion: SchemaVersion,
		Names:         append([]string(nil), s.names...),
	}
	return s.repo.Save(ctx, doc)
}
