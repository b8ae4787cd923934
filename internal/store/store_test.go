package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locallibrary/catalog-server/internal/domain"
)

func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "catalog-test-*")
	require.NoError(t, err)

	dbPath := filepath.Join(tmpDir, "test.db")
	s, err := New(dbPath, nil)
	require.NoError(t, err)

	cleanup := func() {
		_ = s.Close()
		_ = os.RemoveAll(tmpDir)
	}

	return s, cleanup
}

func testAuthor(id, first, family string) *domain.Author {
	a := &domain.Author{FirstName: first, FamilyName: family}
	a.ID = id
	a.InitTimestamps()
	return a
}

func testBook(id, title, authorID string, genreIDs ...string) *domain.Book {
	b := &domain.Book{
		Title:    title,
		Summary:  "A summary.",
		ISBN:     "9780000000000",
		AuthorID: authorID,
		GenreIDs: genreIDs,
	}
	b.ID = id
	b.InitTimestamps()
	return b
}

func TestAuthorCRUD(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	a := testAuthor("author-001", "John", "Smith")

	require.NoError(t, s.CreateAuthor(ctx, a))

	got, err := s.GetAuthor(ctx, "author-001")
	require.NoError(t, err)
	assert.Equal(t, "Smith", got.FamilyName)

	got.FirstName = "Jonathan"
	require.NoError(t, s.UpdateAuthor(ctx, got))

	got, err = s.GetAuthor(ctx, "author-001")
	require.NoError(t, err)
	assert.Equal(t, "Jonathan", got.FirstName)
	assert.Equal(t, "author-001", got.ID, "identity survives update")

	require.NoError(t, s.DeleteAuthor(ctx, "author-001"))
	_, err = s.GetAuthor(ctx, "author-001")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateAuthor_DuplicateID(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, s.CreateAuthor(ctx, testAuthor("author-001", "John", "Smith")))
	err := s.CreateAuthor(ctx, testAuthor("author-001", "Jane", "Doe"))
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestListAuthors_SortedByFamilyName(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, s.CreateAuthor(ctx, testAuthor("author-1", "Franz", "Kafka")))
	require.NoError(t, s.CreateAuthor(ctx, testAuthor("author-2", "Jane", "Austen")))
	require.NoError(t, s.CreateAuthor(ctx, testAuthor("author-3", "Isaac", "asimov")))

	authors, err := s.ListAuthors(ctx)
	require.NoError(t, err)
	require.Len(t, authors, 3)
	// Case-insensitive ascending by family name.
	assert.Equal(t, "asimov", authors[0].FamilyName)
	assert.Equal(t, "Austen", authors[1].FamilyName)
	assert.Equal(t, "Kafka", authors[2].FamilyName)
}

func TestFindBooksByAuthor(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, s.CreateBook(ctx, testBook("book-1", "The Trial", "author-kafka")))
	require.NoError(t, s.CreateBook(ctx, testBook("book-2", "The Castle", "author-kafka")))
	require.NoError(t, s.CreateBook(ctx, testBook("book-3", "Emma", "author-austen")))

	books, err := s.FindBooksByAuthor(ctx, "author-kafka")
	require.NoError(t, err)
	assert.Len(t, books, 2)

	books, err = s.FindBooksByAuthor(ctx, "author-nobody")
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestFindBooksByGenre_MultiValuedIndex(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, s.CreateBook(ctx, testBook("book-1", "Dune", "author-1", "genre-sf", "genre-classic")))
	require.NoError(t, s.CreateBook(ctx, testBook("book-2", "Emma", "author-2", "genre-classic")))

	sf, err := s.FindBooksByGenre(ctx, "genre-sf")
	require.NoError(t, err)
	require.Len(t, sf, 1)
	assert.Equal(t, "Dune", sf[0].Title)

	classics, err := s.FindBooksByGenre(ctx, "genre-classic")
	require.NoError(t, err)
	assert.Len(t, classics, 2)
}

func TestUpdateBook_RewritesIndexes(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	b := testBook("book-1", "Dune", "author-old", "genre-a")
	require.NoError(t, s.CreateBook(ctx, b))

	b.AuthorID = "author-new"
	b.GenreIDs = []string{"genre-b"}
	require.NoError(t, s.UpdateBook(ctx, b))

	old, err := s.FindBooksByAuthor(ctx, "author-old")
	require.NoError(t, err)
	assert.Empty(t, old, "stale author index entry must be removed")

	books, err := s.FindBooksByAuthor(ctx, "author-new")
	require.NoError(t, err)
	assert.Len(t, books, 1)

	oldGenre, err := s.FindBooksByGenre(ctx, "genre-a")
	require.NoError(t, err)
	assert.Empty(t, oldGenre)
}

func TestGetGenreByName(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	g := &domain.Genre{Name: "Fantasy"}
	g.ID = "genre-1"
	g.InitTimestamps()
	require.NoError(t, s.CreateGenre(ctx, g))

	got, err := s.GetGenreByName(ctx, "Fantasy")
	require.NoError(t, err)
	assert.Equal(t, "genre-1", got.ID)

	_, err = s.GetGenreByName(ctx, "Horror")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetGenreByName_ColonInName(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	g := &domain.Genre{Name: "Fan: Fiction"}
	g.ID = "genre-1"
	g.InitTimestamps()
	require.NoError(t, s.CreateGenre(ctx, g))

	// "Fan" is a prefix of "Fan: Fiction"; the lookup must not match it.
	_, err := s.GetGenreByName(ctx, "Fan")
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := s.GetGenreByName(ctx, "Fan: Fiction")
	require.NoError(t, err)
	assert.Equal(t, "genre-1", got.ID)
}

func TestGetGenresByIDs_SkipsMissing(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	g := &domain.Genre{Name: "Fantasy"}
	g.ID = "genre-1"
	require.NoError(t, s.CreateGenre(ctx, g))

	genres, err := s.GetGenresByIDs(ctx, []string{"genre-1", "genre-gone"})
	require.NoError(t, err)
	require.Len(t, genres, 1)
	assert.Equal(t, "Fantasy", genres[0].Name)
}

func TestListGenres_SortedByName(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	for i, name := range []string{"Western", "Fantasy", "Mystery"} {
		g := &domain.Genre{Name: name}
		g.ID = "genre-" + string(rune('a'+i))
		require.NoError(t, s.CreateGenre(ctx, g))
	}

	genres, err := s.ListGenres(ctx)
	require.NoError(t, err)
	require.Len(t, genres, 3)
	assert.Equal(t, "Fantasy", genres[0].Name)
	assert.Equal(t, "Mystery", genres[1].Name)
	assert.Equal(t, "Western", genres[2].Name)
}

func TestInstancesByBookAndStatusCounts(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	statuses := []domain.Status{domain.StatusAvailable, domain.StatusAvailable, domain.StatusLoaned}
	for i, status := range statuses {
		bi := &domain.BookInstance{
			BookID:  "book-1",
			Imprint: "First edition",
			Status:  status,
			DueBack: time.Now(),
		}
		bi.ID = "copy-" + string(rune('a'+i))
		bi.InitTimestamps()
		require.NoError(t, s.CreateInstance(ctx, bi))
	}

	copies, err := s.FindInstancesByBook(ctx, "book-1")
	require.NoError(t, err)
	assert.Len(t, copies, 3)

	total, err := s.CountInstances(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, total)

	available, err := s.CountInstancesByStatus(ctx, domain.StatusAvailable)
	require.NoError(t, err)
	assert.Equal(t, 2, available)
}

func TestDelete_Idempotent(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	assert.NoError(t, s.DeleteGenre(ctx, "genre-never-existed"))
}

func TestCounts(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, s.CreateAuthor(ctx, testAuthor("author-1", "John", "Smith")))
	require.NoError(t, s.CreateBook(ctx, testBook("book-1", "Dune", "author-1", "genre-x")))

	n, err := s.CountAuthors(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	// Index keys must not inflate entity counts.
	n, err = s.CountBooks(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
