// Package store persists catalog entities in a Badger database.
//
// Each entity kind lives in its own keyspace ("author:", "book:", "genre:",
// "copy:") with JSON document values and "idx:" secondary keys for the
// filtered queries the workflows need (books by author, copies by book, genre
// by name).
package store

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"

	"github.com/locallibrary/catalog-server/internal/domain"
)

// Sentinel errors returned by collection operations.
var (
	ErrNotFound      = errors.New("record not found")
	ErrAlreadyExists = errors.New("record already exists")
)

// Key prefixes per entity kind.
const (
	authorPrefix   = "author:"
	bookPrefix     = "book:"
	genrePrefix    = "genre:"
	instancePrefix = "copy:"
)

// Store wraps a Badger database instance and exposes one collection per
// catalog entity kind.
type Store struct {
	db     *badger.DB
	logger *slog.Logger

	authors   *Collection[domain.Author]
	books     *Collection[domain.Book]
	genres    *Collection[domain.Genre]
	instances *Collection[domain.BookInstance]
}

// New opens (or creates) the database at path.
func New(path string, logger *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil            // Disable Badger's internal logging
	opts.SyncWrites = true       // Ensure writes are synced to disk to prevent corruption on crashes
	opts.CompactL0OnClose = true // Compact L0 tables on close for faster startup

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	s := &Store{
		db:     db,
		logger: logger,
	}

	s.authors = NewCollection[domain.Author](s, authorPrefix)

	s.books = NewCollection[domain.Book](s, bookPrefix).
		WithIndex("author", func(b *domain.Book) []string {
			return []string{b.AuthorID}
		}).
		WithIndex("genre", func(b *domain.Book) []string {
			return b.GenreIDs
		})

	s.genres = NewCollection[domain.Genre](s, genrePrefix).
		WithIndex("name", func(g *domain.Genre) []string {
			return []string{g.Name}
		})

	s.instances = NewCollection[domain.BookInstance](s, instancePrefix).
		WithIndex("book", func(bi *domain.BookInstance) []string {
			return []string{bi.BookID}
		}).
		WithIndex("status", func(bi *domain.BookInstance) []string {
			return []string{string(bi.Status)}
		})

	if logger != nil {
		logger.Info("catalog database opened", "path", path)
	}

	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
