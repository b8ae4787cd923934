package store

import (
	"context"
	"errors"
	"slices"

	"github.com/locallibrary/catalog-server/internal/domain"
)

// CreateGenre inserts a new genre.
func (s *Store) CreateGenre(ctx context.Context, g *domain.Genre) error {
	return s.genres.Create(ctx, g.ID, g)
}

// GetGenre retrieves a genre by ID.
// Returns ErrNotFound if the genre does not exist.
func (s *Store) GetGenre(ctx context.Context, id string) (*domain.Genre, error) {
	return s.genres.Get(ctx, id)
}

// GetGenreByName retrieves a genre by exact name.
// Returns ErrNotFound when no genre has that name. The genre workflow uses
// this for its duplicate-name check before inserting.
func (s *Store) GetGenreByName(ctx context.Context, name string) (*domain.Genre, error) {
	return s.genres.FirstByIndex(ctx, "name", name)
}

// GetGenresByIDs retrieves multiple genres by their IDs.
// Missing genres are silently skipped; a book referencing a removed genre
// should still render.
func (s *Store) GetGenresByIDs(ctx context.Context, ids []string) ([]*domain.Genre, error) {
	genres := make([]*domain.Genre, 0, len(ids))
	for _, id := range ids {
		g, err := s.genres.Get(ctx, id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return nil, err
		}
		genres = append(genres, g)
	}
	return genres, nil
}

// UpdateGenre replaces a genre record in full.
func (s *Store) UpdateGenre(ctx context.Context, g *domain.Genre) error {
	return s.genres.Update(ctx, g.ID, g)
}

// DeleteGenre removes a genre by ID.
func (s *Store) DeleteGenre(ctx context.Context, id string) error {
	return s.genres.Delete(ctx, id)
}

// ListGenres returns all genres sorted ascending by name.
func (s *Store) ListGenres(ctx context.Context) ([]*domain.Genre, error) {
	genres, err := s.genres.All(ctx)
	if err != nil {
		return nil, err
	}

	slices.SortFunc(genres, func(a, b *domain.Genre) int {
		return collator.CompareString(a.Name, b.Name)
	})

	return genres, nil
}

// CountGenres returns the number of genres.
func (s *Store) CountGenres(ctx context.Context) (int, error) {
	return s.genres.Count(ctx)
}
