package client

import (
	"context"
	"net/url"
	"sync"

	"github.com/google/uuid"
)

// Store holds the last fetched list of one entity and splices the results
// of create, update and delete into it. A failed call leaves the list as it
// was and records the error.
type Store[T any] struct {
	c    *Client
	path string
	id   func(*T) uuid.UUID

	mu      sync.RWMutex
	items   []T
	loading bool
	err     error
}

func NewStore[T any](c *Client, path string, id func(*T) uuid.UUID) *Store[T] {
	return &Store[T]{c: c, path: path, id: id}
}

// Items returns a copy of the current list.
func (s *Store[T]) Items() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store[T]) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err is the error of the last failed call, cleared by the next successful
// one.
func (s *Store[T]) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Fetch replaces the list with the first page matching query.
func (s *Store[T]) Fetch(ctx context.Context, query url.Values) error {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	page, err := List[T](ctx, s.c, s.path, query)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = err
		return err
	}
	s.items = page.Data
	s.err = nil
	return nil
}

// Create inserts body and puts the stored row at the front of the list.
func (s *Store[T]) Create(ctx context.Context, body any) (*T, error) {
	row, err := Create[T](ctx, s.c, s.path, body)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.err = err
		return nil, err
	}
	s.items = append([]T{*row}, s.items...)
	s.err = nil
	return row, nil
}

// Update patches the row with id and replaces its entry in the list.
func (s *Store[T]) Update(ctx context.Context, id uuid.UUID, patch any) (*T, error) {
	row, err := Update[T](ctx, s.c, s.path+"/"+id.String(), patch)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.err = err
		return nil, err
	}
	for i := range s.items {
		if s.id(&s.items[i]) == id {
			s.items[i] = *row
		}
	}
	s.err = nil
	return row, nil
}

// Delete removes the row with id on the server and then from the list.
func (s *Store[T]) Delete(ctx context.Context, id uuid.UUID) error {
	err := Delete(ctx, s.c, s.path+"/"+id.String())
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.err = err
		return err
	}
	kept := s.items[:0:0]
	for i := range s.items {
		if s.id(&s.items[i]) != id {
			kept = append(kept, s.items[i])
		}
	}
	s.items = kept
	s.err = nil
	return nil
}
