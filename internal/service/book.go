package service

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/locallibrary/catalog-server/internal/domain"
	errs "github.com/locallibrary/catalog-server/internal/errors"
	"github.com/locallibrary/catalog-server/internal/forms"
	"github.com/locallibrary/catalog-server/internal/id"
	"github.com/locallibrary/catalog-server/internal/store"
)

// BookService orchestrates book workflows.
type BookService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewBookService creates a new book service.
func NewBookService(st *store.Store, logger *slog.Logger) *BookService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &BookService{store: st, logger: logger}
}

// BookListItem is a book with its author resolved for list pages.
type BookListItem struct {
	Book   *domain.Book
	Author *domain.Author
}

// BookDetail is a book with every reference resolved: its author, its
// genres, and its copies.
type BookDetail struct {
	Book      *domain.Book
	Author    *domain.Author
	Genres    []*domain.Genre
	Instances []*domain.BookInstance
}

// BookFormData holds the selectable authors and genres for book forms.
type BookFormData struct {
	Authors []*domain.Author
	Genres  []*domain.Genre
}

// List returns all books sorted by title with authors resolved.
func (s *BookService) List(ctx context.Context) ([]*BookListItem, error) {
	var (
		books   []*domain.Book
		authors []*domain.Author
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		books, err = s.store.ListBooks(ctx)
		if err != nil {
			return errs.Wrap(err, errs.CodeInternal, "list books")
		}
		return nil
	})
	g.Go(func() error {
		var err error
		authors, err = s.store.ListAuthors(ctx)
		if err != nil {
			return errs.Wrap(err, errs.CodeInternal, "list authors")
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byID := make(map[string]*domain.Author, len(authors))
	for _, a := range authors {
		byID[a.ID] = a
	}

	items := make([]*BookListItem, len(books))
	for i, b := range books {
		items[i] = &BookListItem{Book: b, Author: byID[b.AuthorID]}
	}
	return items, nil
}

// Get returns a book with its author, genres, and copies resolved.
// A dangling author reference leaves Author nil rather than failing the
// whole page.
func (s *BookService) Get(ctx context.Context, bookID string) (*BookDetail, error) {
	book, err := s.store.GetBook(ctx, bookID)
	if err != nil {
		if errs.Is(err, store.ErrNotFound) {
			return nil, errs.NotFoundf("book %s not found", bookID)
		}
		return nil, errs.Wrap(err, errs.CodeInternal, "get book")
	}

	detail := &BookDetail{Book: book}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		author, err := s.store.GetAuthor(ctx, book.AuthorID)
		if err != nil {
			if errs.Is(err, store.ErrNotFound) {
				return nil
			}
			return errs.Wrap(err, errs.CodeInternal, "get author")
		}
		detail.Author = author
		return nil
	})
	g.Go(func() error {
		genres, err := s.store.GetGenresByIDs(ctx, book.GenreIDs)
		if err != nil {
			return errs.Wrap(err, errs.CodeInternal, "get genres")
		}
		detail.Genres = genres
		return nil
	})
	g.Go(func() error {
		instances, err := s.store.FindInstancesByBook(ctx, bookID)
		if err != nil {
			return errs.Wrap(err, errs.CodeInternal, "find instances by book")
		}
		detail.Instances = instances
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return detail, nil
}

// FormData returns the authors and genres selectable on book forms.
func (s *BookService) FormData(ctx context.Context) (*BookFormData, error) {
	data := &BookFormData{}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		authors, err := s.store.ListAuthors(ctx)
		if err != nil {
			return errs.Wrap(err, errs.CodeInternal, "list authors")
		}
		data.Authors = authors
		return nil
	})
	g.Go(func() error {
		genres, err := s.store.ListGenres(ctx)
		if err != nil {
			return errs.Wrap(err, errs.CodeInternal, "list genres")
		}
		data.Genres = genres
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return data, nil
}

// Create validates submitted book fields, checks that the referenced
// author and genres exist, and persists a new book.
func (s *BookService) Create(ctx context.Context, values forms.Values) (*domain.Book, forms.Violations, error) {
	draft, violations := forms.ParseBook(values, "")
	refViolations, err := s.checkReferences(ctx, draft)
	if err != nil {
		return nil, nil, err
	}
	violations.Merge(refViolations)
	if !violations.Empty() {
		return draft, violations, nil
	}

	newID, err := id.New(id.PrefixBook)
	if err != nil {
		return nil, nil, errs.Wrap(err, errs.CodeInternal, "generate id")
	}
	draft.ID = newID
	draft.InitTimestamps()

	if err := s.store.CreateBook(ctx, draft); err != nil {
		return nil, nil, errs.Wrap(err, errs.CodeInternal, "create book")
	}

	s.logger.Info("book created", "book_id", draft.ID, "title", draft.Title)
	return draft, nil, nil
}

// Update validates submitted fields and replaces an existing book,
// keeping its identity and creation time.
func (s *BookService) Update(ctx context.Context, bookID string, values forms.Values) (*domain.Book, forms.Violations, error) {
	existing, err := s.store.GetBook(ctx, bookID)
	if err != nil {
		if errs.Is(err, store.ErrNotFound) {
			return nil, nil, errs.NotFoundf("book %s not found", bookID)
		}
		return nil, nil, errs.Wrap(err, errs.CodeInternal, "get book")
	}

	draft, violations := forms.ParseBook(values, bookID)
	refViolations, err := s.checkReferences(ctx, draft)
	if err != nil {
		return nil, nil, err
	}
	violations.Merge(refViolations)
	if !violations.Empty() {
		return draft, violations, nil
	}

	draft.CreatedAt = existing.CreatedAt
	draft.Touch()

	if err := s.store.UpdateBook(ctx, draft); err != nil {
		return nil, nil, errs.Wrap(err, errs.CodeInternal, "update book")
	}

	s.logger.Info("book updated", "book_id", bookID)
	return draft, nil, nil
}

// Delete removes a book unless copies of it still exist.
func (s *BookService) Delete(ctx context.Context, bookID string) error {
	if _, err := s.store.GetBook(ctx, bookID); err != nil {
		if errs.Is(err, store.ErrNotFound) {
			return errs.NotFoundf("book %s not found", bookID)
		}
		return errs.Wrap(err, errs.CodeInternal, "get book")
	}

	instances, err := s.store.FindInstancesByBook(ctx, bookID)
	if err != nil {
		return errs.Wrap(err, errs.CodeInternal, "find instances by book")
	}
	if len(instances) > 0 {
		return errs.HasDependentsf("book has %d copy(ies)", len(instances))
	}

	if err := s.store.DeleteBook(ctx, bookID); err != nil {
		return errs.Wrap(err, errs.CodeInternal, "delete book")
	}

	s.logger.Info("book deleted", "book_id", bookID)
	return nil
}

// checkReferences verifies that a draft's author and genre references
// point at stored entities. Dangling references come back as field
// violations, not errors.
func (s *BookService) checkReferences(ctx context.Context, draft *domain.Book) (forms.Violations, error) {
	var violations forms.Violations

	if draft.AuthorID != "" {
		_, err := s.store.GetAuthor(ctx, draft.AuthorID)
		if errs.Is(err, store.ErrNotFound) {
			violations.Add(forms.FieldAuthor, "Author does not exist.")
		} else if err != nil {
			return nil, errs.Wrap(err, errs.CodeInternal, "get author")
		}
	}

	for _, genreID := range draft.GenreIDs {
		_, err := s.store.GetGenre(ctx, genreID)
		if errs.Is(err, store.ErrNotFound) {
			violations.Add(forms.FieldGenre, "Selected genre does not exist.")
			break
		} else if err != nil {
			return nil, errs.Wrap(err, errs.CodeInternal, "get genre")
		}
	}

	return violations, nil
}
