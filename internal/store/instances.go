package store

import (
	"context"

	"github.com/locallibrary/catalog-server/internal/domain"
)

// CreateInstance inserts a new book copy.
func (s *Store) CreateInstance(ctx context.Context, bi *domain.BookInstance) error {
	return s.instances.Create(ctx, bi.ID, bi)
}

// GetInstance retrieves a book copy by ID.
// Returns ErrNotFound if the copy does not exist.
func (s *Store) GetInstance(ctx context.Context, id string) (*domain.BookInstance, error) {
	return s.instances.Get(ctx, id)
}

// UpdateInstance replaces a book copy record in full.
func (s *Store) UpdateInstance(ctx context.Context, bi *domain.BookInstance) error {
	return s.instances.Update(ctx, bi.ID, bi)
}

// DeleteInstance removes a book copy by ID.
func (s *Store) DeleteInstance(ctx context.Context, id string) error {
	return s.instances.Delete(ctx, id)
}

// ListInstances returns all book copies in key order.
func (s *Store) ListInstances(ctx context.Context) ([]*domain.BookInstance, error) {
	return s.instances.All(ctx)
}

// FindInstancesByBook returns the copies of a book.
func (s *Store) FindInstancesByBook(ctx context.Context, bookID string) ([]*domain.BookInstance, error) {
	return s.instances.FindByIndex(ctx, "book", bookID)
}

// CountInstances returns the number of book copies.
func (s *Store) CountInstances(ctx context.Context) (int, error) {
	return s.instances.Count(ctx)
}

// CountInstancesByStatus returns the number of copies in the given status.
func (s *Store) CountInstancesByStatus(ctx context.Context, status domain.Status) (int, error) {
	return s.instances.CountByIndex(ctx, "status", string(status))
}
