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

// GenreService orchestrates genre workflows.
type GenreService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewGenreService creates a new genre service.
func NewGenreService(st *store.Store, logger *slog.Logger) *GenreService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &GenreService{store: st, logger: logger}
}

// GenreDetail is a genre joined with the books tagged with it.
type GenreDetail struct {
	Genre *domain.Genre
	Books []*domain.Book
}

// List returns all genres sorted by name.
func (s *GenreService) List(ctx context.Context) ([]*domain.Genre, error) {
	genres, err := s.store.ListGenres(ctx)
	if err != nil {
		return nil, errs.Wrap(err, errs.CodeInternal, "list genres")
	}
	return genres, nil
}

// Get returns a genre together with the books tagged with it.
func (s *GenreService) Get(ctx context.Context, genreID string) (*GenreDetail, error) {
	detail := &GenreDetail{}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		genre, err := s.store.GetGenre(ctx, genreID)
		if err != nil {
			if errs.Is(err, store.ErrNotFound) {
				return errs.NotFoundf("genre %s not found", genreID)
			}
			return errs.Wrap(err, errs.CodeInternal, "get genre")
		}
		detail.Genre = genre
		return nil
	})
	g.Go(func() error {
		books, err := s.store.FindBooksByGenre(ctx, genreID)
		if err != nil {
			return errs.Wrap(err, errs.CodeInternal, "find books by genre")
		}
		detail.Books = books
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return detail, nil
}

// Create validates the submitted name and persists a new genre.
// Creating a genre whose name already exists is not an error: the
// existing genre is returned unchanged so the caller can redirect to it.
func (s *GenreService) Create(ctx context.Context, values forms.Values) (*domain.Genre, forms.Violations, error) {
	draft, violations := forms.ParseGenre(values, "")
	if !violations.Empty() {
		return draft, violations, nil
	}

	existing, err := s.store.GetGenreByName(ctx, draft.Name)
	if err == nil {
		return existing, nil, nil
	}
	if !errs.Is(err, store.ErrNotFound) {
		return nil, nil, errs.Wrap(err, errs.CodeInternal, "get genre by name")
	}

	newID, err := id.New(id.PrefixGenre)
	if err != nil {
		return nil, nil, errs.Wrap(err, errs.CodeInternal, "generate id")
	}
	draft.ID = newID
	draft.InitTimestamps()

	if err := s.store.CreateGenre(ctx, draft); err != nil {
		return nil, nil, errs.Wrap(err, errs.CodeInternal, "create genre")
	}

	s.logger.Info("genre created", "genre_id", draft.ID, "name", draft.Name)
	return draft, nil, nil
}

// Update validates the submitted name and replaces an existing genre.
// Renaming a genre to another genre's name is rejected as a violation.
func (s *GenreService) Update(ctx context.Context, genreID string, values forms.Values) (*domain.Genre, forms.Violations, error) {
	existing, err := s.store.GetGenre(ctx, genreID)
	if err != nil {
		if errs.Is(err, store.ErrNotFound) {
			return nil, nil, errs.NotFoundf("genre %s not found", genreID)
		}
		return nil, nil, errs.Wrap(err, errs.CodeInternal, "get genre")
	}

	draft, violations := forms.ParseGenre(values, genreID)
	if !violations.Empty() {
		return draft, violations, nil
	}

	other, err := s.store.GetGenreByName(ctx, draft.Name)
	if err == nil && other.ID != genreID {
		violations.Add(forms.FieldGenreName, "Genre with this name already exists.")
		return draft, violations, nil
	}
	if err != nil && !errs.Is(err, store.ErrNotFound) {
		return nil, nil, errs.Wrap(err, errs.CodeInternal, "get genre by name")
	}

	draft.CreatedAt = existing.CreatedAt
	draft.Touch()

	if err := s.store.UpdateGenre(ctx, draft); err != nil {
		return nil, nil, errs.Wrap(err, errs.CodeInternal, "update genre")
	}

	s.logger.Info("genre updated", "genre_id", genreID)
	return draft, nil, nil
}

// Delete removes a genre unless books are still tagged with it.
func (s *GenreService) Delete(ctx context.Context, genreID string) error {
	if _, err := s.store.GetGenre(ctx, genreID); err != nil {
		if errs.Is(err, store.ErrNotFound) {
			return errs.NotFoundf("genre %s not found", genreID)
		}
		return errs.Wrap(err, errs.CodeInternal, "get genre")
	}

	books, err := s.store.FindBooksByGenre(ctx, genreID)
	if err != nil {
		return errs.Wrap(err, errs.CodeInternal, "find books by genre")
	}
	if len(books) > 0 {
		return errs.HasDependentsf("genre has %d book(s)", len(books))
	}

	if err := s.store.DeleteGenre(ctx, genreID); err != nil {
		return errs.Wrap(err, errs.CodeInternal, "delete genre")
	}

	s.logger.Info("genre deleted", "genre_id", genreID)
	return nil
}
