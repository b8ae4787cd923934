package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locallibrary/catalog-server/internal/domain"
	errs "github.com/locallibrary/catalog-server/internal/errors"
	"github.com/locallibrary/catalog-server/internal/forms"
)

func TestBookService_Create(t *testing.T) {
	svc, cleanup := setupTestServices(t)
	defer cleanup()

	author := createTestAuthor(t, svc, "Frank", "Herbert")
	genre := createTestGenre(t, svc, "Science Fiction")
	book := createTestBook(t, svc, "Dune", author.ID, genre.ID)

	assert.True(t, strings.HasPrefix(book.ID, "book-"))

	detail, err := svc.Books.Get(context.Background(), book.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune", detail.Book.Title)
	require.NotNil(t, detail.Author)
	assert.Equal(t, "Herbert", detail.Author.FamilyName)
	require.Len(t, detail.Genres, 1)
	assert.Equal(t, "Science Fiction", detail.Genres[0].Name)
	assert.Empty(t, detail.Instances)
}

func TestBookService_Create_DanglingAuthor(t *testing.T) {
	svc, cleanup := setupTestServices(t)
	defer cleanup()

	_, violations, err := svc.Books.Create(context.Background(), bookValues("Dune", "author-missing"))
	require.NoError(t, err)
	assert.Equal(t, "Author does not exist.", violations.For(forms.FieldAuthor))
}

func TestBookService_Create_DanglingGenre(t *testing.T) {
	svc, cleanup := setupTestServices(t)
	defer cleanup()

	author := createTestAuthor(t, svc, "Frank", "Herbert")

	_, violations, err := svc.Books.Create(context.Background(), bookValues("Dune", author.ID, "genre-missing"))
	require.NoError(t, err)
	assert.Equal(t, "Selected genre does not exist.", violations.For(forms.FieldGenre))
}

func TestBookService_Create_CollectsAllViolations(t *testing.T) {
	svc, cleanup := setupTestServices(t)
	defer cleanup()

	_, violations, err := svc.Books.Create(context.Background(), forms.Values{})
	require.NoError(t, err)

	// All four required fields reported in one pass.
	assert.Len(t, violations, 4)
	assert.Equal(t, "Title must not be empty.", violations.For(forms.FieldTitle))
	assert.Equal(t, "Author must not be empty.", violations.For(forms.FieldAuthor))

	// The rejected draft is never written.
	items, err := svc.Books.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestBookService_Update_ChangesReferences(t *testing.T) {
	svc, cleanup := setupTestServices(t)
	defer cleanup()

	ctx := context.Background()
	herbert := createTestAuthor(t, svc, "Frank", "Herbert")
	kafka := createTestAuthor(t, svc, "Franz", "Kafka")
	book := createTestBook(t, svc, "Dune", herbert.ID)

	updated, violations, err := svc.Books.Update(ctx, book.ID, bookValues("Dune", kafka.ID))
	require.NoError(t, err)
	require.True(t, violations.Empty())
	assert.Equal(t, book.ID, updated.ID)
	assert.Equal(t, book.CreatedAt, updated.CreatedAt)

	// Old author no longer blocked by this book.
	require.NoError(t, svc.Authors.Delete(ctx, herbert.ID))

	detail, err := svc.Authors.Get(ctx, kafka.ID)
	require.NoError(t, err)
	assert.Len(t, detail.Books, 1)
}

func TestBookService_Delete_BlockedByInstances(t *testing.T) {
	svc, cleanup := setupTestServices(t)
	defer cleanup()

	ctx := context.Background()
	author := createTestAuthor(t, svc, "Frank", "Herbert")
	book := createTestBook(t, svc, "Dune", author.ID)
	instance := createTestInstance(t, svc, book.ID, domain.StatusAvailable)

	err := svc.Books.Delete(ctx, book.ID)
	assert.ErrorIs(t, err, errs.ErrHasDependents)

	require.NoError(t, svc.Instances.Delete(ctx, instance.ID))
	require.NoError(t, svc.Books.Delete(ctx, book.ID))
}

func TestBookService_List_ResolvesAuthors(t *testing.T) {
	svc, cleanup := setupTestServices(t)
	defer cleanup()

	author := createTestAuthor(t, svc, "Frank", "Herbert")
	createTestBook(t, svc, "Dune", author.ID)
	createTestBook(t, svc, "Children of Dune", author.ID)

	items, err := svc.Books.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)

	// Sorted by title, each with its author attached.
	assert.Equal(t, "Children of Dune", items[0].Book.Title)
	require.NotNil(t, items[0].Author)
	assert.Equal(t, "Herbert", items[0].Author.FamilyName)
}

func TestBookService_FormData(t *testing.T) {
	svc, cleanup := setupTestServices(t)
	defer cleanup()

	createTestAuthor(t, svc, "Frank", "Herbert")
	createTestGenre(t, svc, "Science Fiction")
	createTestGenre(t, svc, "Fantasy")

	data, err := svc.Books.FormData(context.Background())
	require.NoError(t, err)
	assert.Len(t, data.Authors, 1)
	assert.Len(t, data.Genres, 2)
}

func TestBookService_Get_NotFound(t *testing.T) {
	svc, cleanup := setupTestServices(t)
	defer cleanup()

	_, err := svc.Books.Get(context.Background(), "book-missing")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}
