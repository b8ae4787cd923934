package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/locallibrary/catalog-server/internal/errors"
	"github.com/locallibrary/catalog-server/internal/forms"
)

func TestAuthorService_Create(t *testing.T) {
	svc, cleanup := setupTestServices(t)
	defer cleanup()

	author := createTestAuthor(t, svc, "John", "Smith")

	assert.True(t, strings.HasPrefix(author.ID, "author-"))
	assert.False(t, author.CreatedAt.IsZero())
	assert.Equal(t, "Smith, John", author.Name())

	got, err := svc.Authors.Get(context.Background(), author.ID)
	require.NoError(t, err)
	assert.Equal(t, "Smith", got.Author.FamilyName)
	assert.Empty(t, got.Books)
}

func TestAuthorService_Create_Invalid(t *testing.T) {
	svc, cleanup := setupTestServices(t)
	defer cleanup()

	draft, violations, err := svc.Authors.Create(context.Background(), forms.Values{
		forms.FieldFirstName:   {""},
		forms.FieldFamilyName:  {"Smith"},
		forms.FieldDateOfBirth: {"not-a-date"},
	})
	require.NoError(t, err, "bad input is not an operational error")
	require.NotNil(t, draft, "draft comes back for form re-rendering")

	assert.Equal(t, "First name must be specified.", violations.For(forms.FieldFirstName))
	assert.Equal(t, "Invalid date of birth", violations.For(forms.FieldDateOfBirth))

	// The rejected draft is never written.
	authors, err := svc.Authors.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, authors)
}

func TestAuthorService_Update_PreservesIdentity(t *testing.T) {
	svc, cleanup := setupTestServices(t)
	defer cleanup()

	ctx := context.Background()
	author := createTestAuthor(t, svc, "John", "Smith")

	updated, violations, err := svc.Authors.Update(ctx, author.ID, authorValues("Jane", "Smith"))
	require.NoError(t, err)
	require.True(t, violations.Empty())

	assert.Equal(t, author.ID, updated.ID)
	assert.Equal(t, author.CreatedAt, updated.CreatedAt)
	assert.Equal(t, "Jane", updated.FirstName)
}

func TestAuthorService_Update_NotFound(t *testing.T) {
	svc, cleanup := setupTestServices(t)
	defer cleanup()

	_, _, err := svc.Authors.Update(context.Background(), "author-missing", authorValues("A", "B"))
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestAuthorService_Get_IncludesBooks(t *testing.T) {
	svc, cleanup := setupTestServices(t)
	defer cleanup()

	author := createTestAuthor(t, svc, "Franz", "Kafka")
	createTestBook(t, svc, "The Trial", author.ID)
	createTestBook(t, svc, "The Castle", author.ID)

	detail, err := svc.Authors.Get(context.Background(), author.ID)
	require.NoError(t, err)
	assert.Len(t, detail.Books, 2)
}

func TestAuthorService_Delete_BlockedByBooks(t *testing.T) {
	svc, cleanup := setupTestServices(t)
	defer cleanup()

	ctx := context.Background()
	author := createTestAuthor(t, svc, "Franz", "Kafka")
	book := createTestBook(t, svc, "The Trial", author.ID)

	err := svc.Authors.Delete(ctx, author.ID)
	assert.ErrorIs(t, err, errs.ErrHasDependents)

	// Still there.
	_, err = svc.Authors.Get(ctx, author.ID)
	require.NoError(t, err)

	// Removing the blocker unblocks the delete.
	require.NoError(t, svc.Books.Delete(ctx, book.ID))
	require.NoError(t, svc.Authors.Delete(ctx, author.ID))

	_, err = svc.Authors.Get(ctx, author.ID)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestAuthorService_Delete_NotFound(t *testing.T) {
	svc, cleanup := setupTestServices(t)
	defer cleanup()

	err := svc.Authors.Delete(context.Background(), "author-missing")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}
