package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/locallibrary/catalog-server/internal/errors"
	"github.com/locallibrary/catalog-server/internal/forms"
)

func TestGenreService_Create_DuplicateNameReturnsExisting(t *testing.T) {
	svc, cleanup := setupTestServices(t)
	defer cleanup()

	first := createTestGenre(t, svc, "Fantasy")
	second := createTestGenre(t, svc, "Fantasy")

	assert.Equal(t, first.ID, second.ID, "same name resolves to the same genre")

	genres, err := svc.Genres.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, genres, 1)
}

func TestGenreService_Create_ColonNameStaysDistinct(t *testing.T) {
	svc, cleanup := setupTestServices(t)
	defer cleanup()

	longer := createTestGenre(t, svc, "Fan: Fiction")
	shorter := createTestGenre(t, svc, "Fan")

	assert.NotEqual(t, longer.ID, shorter.ID, "distinct names must yield distinct genres")

	genres, err := svc.Genres.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, genres, 2)
}

func TestGenreService_Create_Invalid(t *testing.T) {
	svc, cleanup := setupTestServices(t)
	defer cleanup()

	_, violations, err := svc.Genres.Create(context.Background(), forms.Values{
		forms.FieldGenreName: {""},
	})
	require.NoError(t, err)
	assert.Equal(t, "Genre name required", violations.For(forms.FieldGenreName))
}

func TestGenreService_Update_RenameCollision(t *testing.T) {
	svc, cleanup := setupTestServices(t)
	defer cleanup()

	createTestGenre(t, svc, "Fantasy")
	horror := createTestGenre(t, svc, "Horror")

	_, violations, err := svc.Genres.Update(context.Background(), horror.ID, forms.Values{
		forms.FieldGenreName: {"Fantasy"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Genre with this name already exists.", violations.For(forms.FieldGenreName))
}

func TestGenreService_Update_SameNameAllowed(t *testing.T) {
	svc, cleanup := setupTestServices(t)
	defer cleanup()

	genre := createTestGenre(t, svc, "Fantasy")

	updated, violations, err := svc.Genres.Update(context.Background(), genre.ID, forms.Values{
		forms.FieldGenreName: {"Fantasy"},
	})
	require.NoError(t, err)
	require.True(t, violations.Empty(), "keeping the current name is not a collision")
	assert.Equal(t, genre.ID, updated.ID)
}

func TestGenreService_Delete_BlockedByBooks(t *testing.T) {
	svc, cleanup := setupTestServices(t)
	defer cleanup()

	ctx := context.Background()
	author := createTestAuthor(t, svc, "Frank", "Herbert")
	genre := createTestGenre(t, svc, "Science Fiction")
	book := createTestBook(t, svc, "Dune", author.ID, genre.ID)

	err := svc.Genres.Delete(ctx, genre.ID)
	assert.ErrorIs(t, err, errs.ErrHasDependents)

	require.NoError(t, svc.Books.Delete(ctx, book.ID))
	require.NoError(t, svc.Genres.Delete(ctx, genre.ID))
}

func TestGenreService_Get_IncludesBooks(t *testing.T) {
	svc, cleanup := setupTestServices(t)
	defer cleanup()

	author := createTestAuthor(t, svc, "Frank", "Herbert")
	genre := createTestGenre(t, svc, "Science Fiction")
	createTestBook(t, svc, "Dune", author.ID, genre.ID)
	createTestBook(t, svc, "Dune Messiah", author.ID, genre.ID)

	detail, err := svc.Genres.Get(context.Background(), genre.ID)
	require.NoError(t, err)
	assert.Equal(t, "Science Fiction", detail.Genre.Name)
	assert.Len(t, detail.Books, 2)
}

func TestGenreService_Get_NotFound(t *testing.T) {
	svc, cleanup := setupTestServices(t)
	defer cleanup()

	_, err := svc.Genres.Get(context.Background(), "genre-missing")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}
