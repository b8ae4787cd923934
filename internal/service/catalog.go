package service

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/locallibrary/catalog-server/internal/domain"
	errs "github.com/locallibrary/catalog-server/internal/errors"
	"github.com/locallibrary/catalog-server/internal/store"
)

// CatalogService answers catalog-wide questions, like the home page
// record counts.
type CatalogService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(st *store.Store, logger *slog.Logger) *CatalogService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &CatalogService{store: st, logger: logger}
}

// Counts holds the record totals shown on the home page.
type Counts struct {
	Books              int
	Instances          int
	InstancesAvailable int
	Authors            int
	Genres             int
}

// Counts gathers every home page total concurrently.
func (s *CatalogService) Counts(ctx context.Context) (*Counts, error) {
	counts := &Counts{}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.store.CountBooks(ctx)
		counts.Books = n
		return err
	})
	g.Go(func() error {
		n, err := s.store.CountInstances(ctx)
		counts.Instances = n
		return err
	})
	g.Go(func() error {
		n, err := s.store.CountInstancesByStatus(ctx, domain.StatusAvailable)
		counts.InstancesAvailable = n
		return err
	})
	g.Go(func() error {
		n, err := s.store.CountAuthors(ctx)
		counts.Authors = n
		return err
	})
	g.Go(func() error {
		n, err := s.store.CountGenres(ctx)
		counts.Genres = n
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, errs.Wrap(err, errs.CodeInternal, "count records")
	}

	return counts, nil
}
