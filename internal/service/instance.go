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

// InstanceService orchestrates book-copy workflows.
type InstanceService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewInstanceService creates a new book-copy service.
func NewInstanceService(st *store.Store, logger *slog.Logger) *InstanceService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &InstanceService{store: st, logger: logger}
}

// InstanceListItem is a book copy with its book resolved for list pages.
type InstanceListItem struct {
	Instance *domain.BookInstance
	Book     *domain.Book
}

// InstanceDetail is a book copy joined with its book.
type InstanceDetail struct {
	Instance *domain.BookInstance
	Book     *domain.Book
}

// List returns all book copies with their books resolved.
func (s *InstanceService) List(ctx context.Context) ([]*InstanceListItem, error) {
	var (
		instances []*domain.BookInstance
		books     []*domain.Book
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		instances, err = s.store.ListInstances(ctx)
		if err != nil {
			return errs.Wrap(err, errs.CodeInternal, "list instances")
		}
		return nil
	})
	g.Go(func() error {
		var err error
		books, err = s.store.ListBooks(ctx)
		if err != nil {
			return errs.Wrap(err, errs.CodeInternal, "list books")
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byID := make(map[string]*domain.Book, len(books))
	for _, b := range books {
		byID[b.ID] = b
	}

	items := make([]*InstanceListItem, len(instances))
	for i, bi := range instances {
		items[i] = &InstanceListItem{Instance: bi, Book: byID[bi.BookID]}
	}
	return items, nil
}

// Get returns a book copy with its book resolved. A dangling book
// reference leaves Book nil rather than failing the page.
func (s *InstanceService) Get(ctx context.Context, instanceID string) (*InstanceDetail, error) {
	instance, err := s.store.GetInstance(ctx, instanceID)
	if err != nil {
		if errs.Is(err, store.ErrNotFound) {
			return nil, errs.NotFoundf("book copy %s not found", instanceID)
		}
		return nil, errs.Wrap(err, errs.CodeInternal, "get instance")
	}

	detail := &InstanceDetail{Instance: instance}

	book, err := s.store.GetBook(ctx, instance.BookID)
	if err != nil && !errs.Is(err, store.ErrNotFound) {
		return nil, errs.Wrap(err, errs.CodeInternal, "get book")
	}
	detail.Book = book

	return detail, nil
}

// Create validates submitted copy fields, checks that the referenced
// book exists, and persists a new copy.
func (s *InstanceService) Create(ctx context.Context, values forms.Values) (*domain.BookInstance, forms.Violations, error) {
	draft, violations := forms.ParseBookInstance(values, "")
	refViolations, err := s.checkReferences(ctx, draft)
	if err != nil {
		return nil, nil, err
	}
	violations.Merge(refViolations)
	if !violations.Empty() {
		return draft, violations, nil
	}

	newID, err := id.New(id.PrefixInstance)
	if err != nil {
		return nil, nil, errs.Wrap(err, errs.CodeInternal, "generate id")
	}
	draft.ID = newID
	draft.InitTimestamps()

	if err := s.store.CreateInstance(ctx, draft); err != nil {
		return nil, nil, errs.Wrap(err, errs.CodeInternal, "create instance")
	}

	s.logger.Info("book copy created", "instance_id", draft.ID, "book_id", draft.BookID)
	return draft, nil, nil
}

// Update validates submitted fields and replaces an existing copy,
// keeping its identity and creation time.
func (s *InstanceService) Update(ctx context.Context, instanceID string, values forms.Values) (*domain.BookInstance, forms.Violations, error) {
	existing, err := s.store.GetInstance(ctx, instanceID)
	if err != nil {
		if errs.Is(err, store.ErrNotFound) {
			return nil, nil, errs.NotFoundf("book copy %s not found", instanceID)
		}
		return nil, nil, errs.Wrap(err, errs.CodeInternal, "get instance")
	}

	draft, violations := forms.ParseBookInstance(values, instanceID)
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

	if err := s.store.UpdateInstance(ctx, draft); err != nil {
		return nil, nil, errs.Wrap(err, errs.CodeInternal, "update instance")
	}

	s.logger.Info("book copy updated", "instance_id", instanceID)
	return draft, nil, nil
}

// Delete removes a book copy. Copies are leaves, so nothing blocks the
// delete.
func (s *InstanceService) Delete(ctx context.Context, instanceID string) error {
	if _, err := s.store.GetInstance(ctx, instanceID); err != nil {
		if errs.Is(err, store.ErrNotFound) {
			return errs.NotFoundf("book copy %s not found", instanceID)
		}
		return errs.Wrap(err, errs.CodeInternal, "get instance")
	}

	if err := s.store.DeleteInstance(ctx, instanceID); err != nil {
		return errs.Wrap(err, errs.CodeInternal, "delete instance")
	}

	s.logger.Info("book copy deleted", "instance_id", instanceID)
	return nil
}

// FormData returns the books selectable on copy forms, sorted by title.
func (s *InstanceService) FormData(ctx context.Context) ([]*domain.Book, error) {
	books, err := s.store.ListBooks(ctx)
	if err != nil {
		return nil, errs.Wrap(err, errs.CodeInternal, "list books")
	}
	return books, nil
}

func (s *InstanceService) checkReferences(ctx context.Context, draft *domain.BookInstance) (forms.Violations, error) {
	var violations forms.Violations

	if draft.BookID != "" {
		_, err := s.store.GetBook(ctx, draft.BookID)
		if errs.Is(err, store.ErrNotFound) {
			violations.Add(forms.FieldBook, "Book does not exist.")
		} else if err != nil {
			return nil, errs.Wrap(err, errs.CodeInternal, "get book")
		}
	}

	return violations, nil
}
