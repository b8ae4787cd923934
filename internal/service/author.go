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

// AuthorService orchestrates author workflows.
type AuthorService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewAuthorService creates a new author service.
func NewAuthorService(st *store.Store, logger *slog.Logger) *AuthorService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &AuthorService{store: st, logger: logger}
}

// AuthorDetail is an author joined with the books that reference them.
type AuthorDetail struct {
	Author *domain.Author
	Books  []*domain.Book
}

// List returns all authors sorted by family name.
func (s *AuthorService) List(ctx context.Context) ([]*domain.Author, error) {
	authors, err := s.store.ListAuthors(ctx)
	if err != nil {
		return nil, errs.Wrap(err, errs.CodeInternal, "list authors")
	}
	return authors, nil
}

// Get returns an author together with their books.
func (s *AuthorService) Get(ctx context.Context, authorID string) (*AuthorDetail, error) {
	detail := &AuthorDetail{}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		author, err := s.store.GetAuthor(ctx, authorID)
		if err != nil {
			if errs.Is(err, store.ErrNotFound) {
				return errs.NotFoundf("author %s not found", authorID)
			}
			return errs.Wrap(err, errs.CodeInternal, "get author")
		}
		detail.Author = author
		return nil
	})
	g.Go(func() error {
		books, err := s.store.FindBooksByAuthor(ctx, authorID)
		if err != nil {
			return errs.Wrap(err, errs.CodeInternal, "find books by author")
		}
		detail.Books = books
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return detail, nil
}

// Create validates submitted author fields and persists a new author.
// Field violations are returned alongside the rejected draft so the
// caller can re-render the form.
func (s *AuthorService) Create(ctx context.Context, values forms.Values) (*domain.Author, forms.Violations, error) {
	draft, violations := forms.ParseAuthor(values, "")
	if !violations.Empty() {
		return draft, violations, nil
	}

	newID, err := id.New(id.PrefixAuthor)
	if err != nil {
		return nil, nil, errs.Wrap(err, errs.CodeInternal, "generate id")
	}
	draft.ID = newID
	draft.InitTimestamps()

	if err := s.store.CreateAuthor(ctx, draft); err != nil {
		return nil, nil, errs.Wrap(err, errs.CodeInternal, "create author")
	}

	s.logger.Info("author created", "author_id", draft.ID, "name", draft.Name())
	return draft, nil, nil
}

// Update validates submitted fields and replaces an existing author,
// keeping its identity and creation time.
func (s *AuthorService) Update(ctx context.Context, authorID string, values forms.Values) (*domain.Author, forms.Violations, error) {
	existing, err := s.store.GetAuthor(ctx, authorID)
	if err != nil {
		if errs.Is(err, store.ErrNotFound) {
			return nil, nil, errs.NotFoundf("author %s not found", authorID)
		}
		return nil, nil, errs.Wrap(err, errs.CodeInternal, "get author")
	}

	draft, violations := forms.ParseAuthor(values, authorID)
	if !violations.Empty() {
		return draft, violations, nil
	}

	draft.CreatedAt = existing.CreatedAt
	draft.Touch()

	if err := s.store.UpdateAuthor(ctx, draft); err != nil {
		return nil, nil, errs.Wrap(err, errs.CodeInternal, "update author")
	}

	s.logger.Info("author updated", "author_id", authorID)
	return draft, nil, nil
}

// Delete removes an author unless books still reference them. When
// blocked it returns a HasDependents error; the caller should show the
// confirmation page listing the blockers from Get.
func (s *AuthorService) Delete(ctx context.Context, authorID string) error {
	if _, err := s.store.GetAuthor(ctx, authorID); err != nil {
		if errs.Is(err, store.ErrNotFound) {
			return errs.NotFoundf("author %s not found", authorID)
		}
		return errs.Wrap(err, errs.CodeInternal, "get author")
	}

	books, err := s.store.FindBooksByAuthor(ctx, authorID)
	if err != nil {
		return errs.Wrap(err, errs.CodeInternal, "find books by author")
	}
	if len(books) > 0 {
		return errs.HasDependentsf("author has %d book(s)", len(books))
	}

	if err := s.store.DeleteAuthor(ctx, authorID); err != nil {
		return errs.Wrap(err, errs.CodeInternal, "delete author")
	}

	s.logger.Info("author deleted", "author_id", authorID)
	return nil
}
