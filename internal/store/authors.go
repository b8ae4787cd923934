package store

import (
	"context"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/locallibrary/catalog-server/internal/domain"
)

// collator orders list pages the way a reader expects, case-insensitively.
var collator = collate.New(language.English, collate.IgnoreCase)

// CreateAuthor inserts a new author.
func (s *Store) CreateAuthor(ctx context.Context, a *domain.Author) error {
	return s.authors.Create(ctx, a.ID, a)
}

// GetAuthor retrieves an author by ID.
// Returns ErrNotFound if the author does not exist.
func (s *Store) GetAuthor(ctx context.Context, id string) (*domain.Author, error) {
	return s.authors.Get(ctx, id)
}

// UpdateAuthor replaces an author record in full.
func (s *Store) UpdateAuthor(ctx context.Context, a *domain.Author) error {
	return s.authors.Update(ctx, a.ID, a)
}

// DeleteAuthor removes an author by ID.
func (s *Store) DeleteAuthor(ctx context.Context, id string) error {
	return s.authors.Delete(ctx, id)
}

// ListAuthors returns all authors sorted ascending by family name.
func (s *Store) ListAuthors(ctx context.Context) ([]*domain.Author, error) {
	authors, err := s.authors.All(ctx)
	if err != nil {
		return nil, err
	}

	slices.SortFunc(authors, func(a, b *domain.Author) int {
		if cmp := collator.CompareString(a.FamilyName, b.FamilyName); cmp != 0 {
			return cmp
		}
		return collator.CompareString(a.FirstName, b.FirstName)
	})

	return authors, nil
}

// CountAuthors returns the number of authors.
func (s *Store) CountAuthors(ctx context.Context) (int, error) {
	return s.authors.Count(ctx)
}
