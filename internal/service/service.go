// Package service implements the catalog workflows: validate submitted
// input, resolve references, and persist. Each workflow returns field
// violations separately from operational errors so the web layer can
// re-render forms without treating bad input as a failure.
package service

import (
	"log/slog"

	"github.com/locallibrary/catalog-server/internal/store"
)

// Services bundles the per-entity workflow services.
type Services struct {
	Catalog   *CatalogService
	Authors   *AuthorService
	Books     *BookService
	Genres    *GenreService
	Instances *InstanceService
}

// New wires all services against a single store.
func New(st *store.Store, logger *slog.Logger) *Services {
	return &Services{
		Catalog:   NewCatalogService(st, logger),
		Authors:   NewAuthorService(st, logger),
		Books:     NewBookService(st, logger),
		Genres:    NewGenreService(st, logger),
		Instances: NewInstanceService(st, logger),
	}
}
