package store

import (
	"context"
	"slices"

	"github.com/locallibrary/catalog-server/internal/domain"
)

// CreateBook inserts a new book.
func (s *Store) CreateBook(ctx context.Context, b *domain.Book) error {
	return s.books.Create(ctx, b.ID, b)
}

// GetBook retrieves a book by ID.
// Returns ErrNotFound if the book does not exist.
func (s *Store) GetBook(ctx context.Context, id string) (*domain.Book, error) {
	return s.books.Get(ctx, id)
}

// UpdateBook replaces a book record in full and rewrites its author/genre
// index entries.
func (s *Store) UpdateBook(ctx context.Context, b *domain.Book) error {
	return s.books.Update(ctx, b.ID, b)
}

// DeleteBook removes a book by ID.
func (s *Store) DeleteBook(ctx context.Context, id string) error {
	return s.books.Delete(ctx, id)
}

// ListBooks returns all books sorted ascending by title.
func (s *Store) ListBooks(ctx context.Context) ([]*domain.Book, error) {
	books, err := s.books.All(ctx)
	if err != nil {
		return nil, err
	}

	slices.SortFunc(books, func(a, b *domain.Book) int {
		return collator.CompareString(a.Title, b.Title)
	})

	return books, nil
}

// FindBooksByAuthor returns the books referencing an author.
func (s *Store) FindBooksByAuthor(ctx context.Context, authorID string) ([]*domain.Book, error) {
	return s.books.FindByIndex(ctx, "author", authorID)
}

// FindBooksByGenre returns the books whose genre set contains the genre.
func (s *Store) FindBooksByGenre(ctx context.Context, genreID string) ([]*domain.Book, error) {
	return s.books.FindByIndex(ctx, "genre", genreID)
}

// CountBooks returns the number of books.
func (s *Store) CountBooks(ctx context.Context) (int, error) {
	return s.books.Count(ctx)
}
