package store

import (
	"context"
	"encoding/hex"
	"encoding/json/v2"
	"errors"
	"fmt"
	"iter"
	"strings"

	"github.com/dgraph-io/badger/v4"
)

// Collection provides generic CRUD operations for one entity kind.
//
// Primary keys are prefix+id with a JSON document value. Secondary indexes are
// non-unique: each index entry is prefix+"idx:"+name+":"+hex(value)+":"+id
// mapping to the entity id, so one index value can point at many entities (all
// books by one author). The value segment is hex-encoded so a ":" inside a
// stored value can never collide with the key separators; without that, a
// lookup for "Fan" would prefix-match an entry for "Fan: Fiction". Index
// entries are rewritten on every update.
type Collection[T any] struct {
	store   *Store
	prefix  string
	indexes []index[T]
}

type index[T any] struct {
	name   string
	keyGen func(*T) []string
}

// NewCollection creates a Collection for type T under the given key prefix.
func NewCollection[T any](s *Store, prefix string) *Collection[T] {
	return &Collection[T]{
		store:   s,
		prefix:  prefix,
		indexes: make([]index[T], 0),
	}
}

// WithIndex adds a secondary index. keyGen returns the index values an entity
// should be findable under; an empty value is not indexed.
func (c *Collection[T]) WithIndex(name string, keyGen func(*T) []string) *Collection[T] {
	c.indexes = append(c.indexes, index[T]{name: name, keyGen: keyGen})
	return c
}

func (c *Collection[T]) primaryKey(id string) []byte {
	return []byte(c.prefix + id)
}

func (c *Collection[T]) indexKey(name, value, id string) []byte {
	return []byte(c.prefix + "idx:" + name + ":" + hex.EncodeToString([]byte(value)) + ":" + id)
}

func (c *Collection[T]) indexScanPrefix(name, value string) []byte {
	return []byte(c.prefix + "idx:" + name + ":" + hex.EncodeToString([]byte(value)) + ":")
}

// setIndexKeys writes all index entries for an entity within txn.
func (c *Collection[T]) setIndexKeys(txn *badger.Txn, id string, entity *T) error {
	for _, idx := range c.indexes {
		for _, value := range idx.keyGen(entity) {
			if value == "" {
				continue
			}
			if err := txn.Set(c.indexKey(idx.name, value, id), []byte(id)); err != nil {
				return fmt.Errorf("failed to set index key: %w", err)
			}
		}
	}
	return nil
}

// deleteIndexKeys removes all index entries for an entity within txn.
func (c *Collection[T]) deleteIndexKeys(txn *badger.Txn, id string, entity *T) error {
	for _, idx := range c.indexes {
		for _, value := range idx.keyGen(entity) {
			if value == "" {
				continue
			}
			if err := txn.Delete(c.indexKey(idx.name, value, id)); err != nil {
				return fmt.Errorf("failed to delete index key: %w", err)
			}
		}
	}
	return nil
}

// Create inserts a new entity under the given ID.
// Returns ErrAlreadyExists if an entity with this ID already exists.
func (c *Collection[T]) Create(ctx context.Context, id string, entity *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("failed to marshal entity: %w", err)
	}

	return c.store.db.Update(func(txn *badger.Txn) error {
		key := c.primaryKey(id)

		_, err := txn.Get(key)
		if err == nil {
			return ErrAlreadyExists
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("failed to check existing key: %w", err)
		}

		if err := txn.Set(key, data); err != nil {
			return fmt.Errorf("failed to set key: %w", err)
		}

		return c.setIndexKeys(txn, id, entity)
	})
}

// Get retrieves an entity by ID.
// Returns ErrNotFound if the entity does not exist.
func (c *Collection[T]) Get(ctx context.Context, id string) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var entity T
	err := c.store.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(c.primaryKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to get key: %w", err)
		}

		return item.Value(func(val []byte) error {
			if err := json.Unmarshal(val, &entity); err != nil {
				return fmt.Errorf("failed to unmarshal entity: %w", err)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return &entity, nil
}

// Update replaces an existing entity in full and rewrites its index entries.
// Returns ErrNotFound if the entity does not exist; the identity is never
// reassigned by an update.
func (c *Collection[T]) Update(ctx context.Context, id string, entity *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("failed to marshal entity: %w", err)
	}

	return c.store.db.Update(func(txn *badger.Txn) error {
		key := c.primaryKey(id)

		// Load the old entity to clean up stale index keys.
		var old T
		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to get existing key: %w", err)
		}
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &old)
		}); err != nil {
			return fmt.Errorf("failed to unmarshal old entity: %w", err)
		}

		if err := c.deleteIndexKeys(txn, id, &old); err != nil {
			return err
		}

		if err := txn.Set(key, data); err != nil {
			return fmt.Errorf("failed to set key: %w", err)
		}

		return c.setIndexKeys(txn, id, entity)
	})
}

// Delete removes an entity by ID along with its index entries.
// This operation is idempotent - it does not return an error if the entity does not exist.
func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return c.store.db.Update(func(txn *badger.Txn) error {
		key := c.primaryKey(id)

		var entity T
		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to get key: %w", err)
		}
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &entity)
		}); err != nil {
			return fmt.Errorf("failed to unmarshal entity: %w", err)
		}

		if err := c.deleteIndexKeys(txn, id, &entity); err != nil {
			return err
		}

		if err := txn.Delete(key); err != nil {
			return fmt.Errorf("failed to delete key: %w", err)
		}

		return nil
	})
}

// List returns an iterator over all entities in key order.
func (c *Collection[T]) List(ctx context.Context) iter.Seq2[*T, error] {
	return func(yield func(*T, error) bool) {
		_ = c.store.db.View(func(txn *badger.Txn) error {
			opts := badger.DefaultIteratorOptions
			opts.Prefix = []byte(c.prefix)
			opts.PrefetchValues = true

			it := txn.NewIterator(opts)
			defer it.Close()

			for it.Seek([]byte(c.prefix)); it.ValidForPrefix([]byte(c.prefix)); it.Next() {
				if ctx.Err() != nil {
					yield(nil, ctx.Err())
					return ctx.Err()
				}

				// Skip index keys.
				key := string(it.Item().Key())
				if strings.HasPrefix(key[len(c.prefix):], "idx:") {
					continue
				}

				var entity T
				err := it.Item().Value(func(val []byte) error {
					return json.Unmarshal(val, &entity)
				})
				if err != nil {
					yield(nil, err)
					return err
				}

				if !yield(&entity, nil) {
					return nil // Consumer stopped early
				}
			}

			return nil
		})
	}
}

// All collects every entity into a slice.
func (c *Collection[T]) All(ctx context.Context) ([]*T, error) {
	var out []*T
	for entity, err := range c.List(ctx) {
		if err != nil {
			return nil, err
		}
		out = append(out, entity)
	}
	return out, nil
}

// FindByIndex returns all entities whose index value matches exactly.
func (c *Collection[T]) FindByIndex(ctx context.Context, name, value string) ([]*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var ids []string
	err := c.store.db.View(func(txn *badger.Txn) error {
		prefix := c.indexScanPrefix(name, value)

		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.PrefetchValues = true

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				ids = append(ids, string(val))
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]*T, 0, len(ids))
	for _, id := range ids {
		entity, err := c.Get(ctx, id)
		if err != nil {
			// An index entry pointing at a removed record is skipped rather
			// than failing the whole query.
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return nil, err
		}
		out = append(out, entity)
	}

	return out, nil
}

// FirstByIndex returns one entity whose index value matches exactly.
// Returns ErrNotFound when no entity matches.
func (c *Collection[T]) FirstByIndex(ctx context.Context, name, value string) (*T, error) {
	matches, err := c.FindByIndex(ctx, name, value)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, ErrNotFound
	}
	return matches[0], nil
}

// Count returns the number of entities in the collection.
func (c *Collection[T]) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	count := 0
	err := c.store.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(c.prefix)
		opts.PrefetchValues = false // keys only

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek([]byte(c.prefix)); it.ValidForPrefix([]byte(c.prefix)); it.Next() {
			key := string(it.Item().Key())
			if strings.HasPrefix(key[len(c.prefix):], "idx:") {
				continue
			}
			count++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return count, nil
}

// CountByIndex returns the number of entities whose index value matches exactly.
func (c *Collection[T]) CountByIndex(ctx context.Context, name, value string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	count := 0
	err := c.store.db.View(func(txn *badger.Txn) error {
		prefix := c.indexScanPrefix(name, value)

		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.PrefetchValues = false

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return count, nil
}
