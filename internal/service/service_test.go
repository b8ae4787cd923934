package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/locallibrary/catalog-server/internal/domain"
	"github.com/locallibrary/catalog-server/internal/forms"
	"github.com/locallibrary/catalog-server/internal/store"
)

// setupTestServices creates the full service set backed by a temporary
// store.
func setupTestServices(t *testing.T) (*Services, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "catalog-service-test-*")
	require.NoError(t, err)

	dbPath := filepath.Join(tmpDir, "test.db")
	s, err := store.New(dbPath, nil)
	require.NoError(t, err)

	svc := New(s, nil)

	cleanup := func() {
		_ = s.Close()
		_ = os.RemoveAll(tmpDir)
	}

	return svc, cleanup
}

func authorValues(first, family string) forms.Values {
	return forms.Values{
		forms.FieldFirstName:  {first},
		forms.FieldFamilyName: {family},
	}
}

func bookValues(title, authorID string, genreIDs ...string) forms.Values {
	return forms.Values{
		forms.FieldTitle:   {title},
		forms.FieldSummary: {"A summary."},
		forms.FieldISBN:    {"9780000000000"},
		forms.FieldAuthor:  {authorID},
		forms.FieldGenre:   genreIDs,
	}
}

// createTestAuthor persists an author and returns it.
func createTestAuthor(t *testing.T, svc *Services, first, family string) *domain.Author {
	t.Helper()
	author, violations, err := svc.Authors.Create(context.Background(), authorValues(first, family))
	require.NoError(t, err)
	require.True(t, violations.Empty(), "unexpected violations: %v", violations)
	return author
}

// createTestGenre persists a genre and returns it.
func createTestGenre(t *testing.T, svc *Services, name string) *domain.Genre {
	t.Helper()
	genre, violations, err := svc.Genres.Create(context.Background(), forms.Values{
		forms.FieldGenreName: {name},
	})
	require.NoError(t, err)
	require.True(t, violations.Empty(), "unexpected violations: %v", violations)
	return genre
}

// createTestBook persists a book and returns it.
func createTestBook(t *testing.T, svc *Services, title, authorID string, genreIDs ...string) *domain.Book {
	t.Helper()
	book, violations, err := svc.Books.Create(context.Background(), bookValues(title, authorID, genreIDs...))
	require.NoError(t, err)
	require.True(t, violations.Empty(), "unexpected violations: %v", violations)
	return book
}

// createTestInstance persists a book copy and returns it.
func createTestInstance(t *testing.T, svc *Services, bookID string, status domain.Status) *domain.BookInstance {
	t.Helper()
	instance, violations, err := svc.Instances.Create(context.Background(), forms.Values{
		forms.FieldBook:    {bookID},
		forms.FieldImprint: {"First edition"},
		forms.FieldStatus:  {string(status)},
	})
	require.NoError(t, err)
	require.True(t, violations.Empty(), "unexpected violations: %v", violations)
	return instance
}
