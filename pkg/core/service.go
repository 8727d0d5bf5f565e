package core

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// Service handles the business logic for notes.
// It owns id assignment and search; persistence is delegated to the Repository.
type Service struct {
	mu     sync.RWMutex
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new Service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// Create validates the input, assigns the next id and persists the new note.
func (s *Service) Create(ctx context.Context, content string, tags []string) (Note, error) {
	if err := validateDraft(draft{Content: content, Tags: tags}); err != nil {
		return Note{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	notes, err := s.repo.Load(ctx)
	if err != nil {
		return Note{}, err
	}

	note := Normalize(Note{
		ID:      NextID(notes),
		Content: content,
		Tags:    append([]string(nil), tags...),
	})

	if err := s.repo.Replace(ctx, append(notes, note)); err != nil {
		return Note{}, err
	}

	s.logger.Debug("note created", "id", note.ID, "tags", len(note.Tags))
	return note, nil
}

// ListAll returns every stored note in insertion order.
func (s *Service) ListAll(ctx context.Context) ([]Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	notes, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	if notes == nil {
		notes = []Note{}
	}
	return notes, nil
}

// Find returns the notes whose content contains substr.
func (s *Service) Find(ctx context.Context, substr string) ([]Note, error) {
	notes, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return Match(notes, substr), nil
}

// Remove deletes the note with the given id and returns that id.
// A missing id yields ErrNotFound and the store is left untouched.
func (s *Service) Remove(ctx context.Context, id int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	notes, err := s.repo.Load(ctx)
	if err != nil {
		return 0, err
	}

	kept := make([]Note, 0, len(notes))
	found := false
	for _, n := range notes {
		if n.ID == id {
			found = true
			continue
		}
		kept = append(kept, n)
	}
	if !found {
		return 0, ErrNotFound
	}

	if err := s.repo.Replace(ctx, kept); err != nil {
		return 0, err
	}

	s.logger.Debug("note removed", "id", id, "remaining", len(kept))
	return id, nil
}

// RemoveAll empties the store. Calling it on an empty store is a no-op success.
func (s *Service) RemoveAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Replace(ctx, []Note{}); err != nil {
		return err
	}
	s.logger.Debug("store cleaned")
	return nil
}

// Watch observes changes in the repository if supported.
func (s *Service) Watch(ctx context.Context) (<-chan Event, error) {
	w, ok := s.repo.(Watchable)
	if !ok {
		return nil, errors.New("repository does not support watching")
	}
	return w.Watch(ctx)
}

// Repository exposes the underlying storage adapter.
func (s *Service) Repository() Repository {
	return s.repo
}
