package domain

import "slices"

// Book represents a work in the catalog. It references exactly one Author and
// zero or more Genres by ID; physical copies are tracked as BookInstances.
type Book struct {
	Record
	Title    string   `json:"title"`
	Summary  string   `json:"summary"`
	ISBN     string   `json:"isbn"`
	AuthorID string   `json:"author_id"`
	GenreIDs []string `json:"genre_ids,omitempty"`
}

// HasGenre reports whether the book belongs to the given genre.
func (b *Book) HasGenre(genreID string) bool {
	return slices.Contains(b.GenreIDs, genreID)
}

// URL returns the book's detail page path.
func (b *Book) URL() string {
	return "/catalog/book/" + b.ID
}
