package forms

import "github.com/locallibrary/catalog-server/internal/domain"

// Book form field names.
const (
	FieldTitle   = "title"
	FieldSummary = "summary"
	FieldISBN    = "isbn"
	FieldAuthor  = "author"
	FieldGenre   = "genre"
)

// ParseBook normalizes a book form submission into a draft entity.
// The genre field may arrive as a scalar or a list; it is always coerced to a
// list so nothing downstream has to branch on its shape.
func ParseBook(v Values, existingID string) (*domain.Book, Violations) {
	title := v.Get(FieldTitle)
	summary := v.Get(FieldSummary)
	isbn := v.Get(FieldISBN)
	authorID := v.Get(FieldAuthor)
	genreIDs := v.List(FieldGenre)

	var viols Violations
	viols.Merge(Check(FieldTitle, title, Required("Title must not be empty.")))
	viols.Merge(Check(FieldSummary, summary, Required("Summary must not be empty.")))
	viols.Merge(Check(FieldISBN, isbn, Required("ISBN must not be empty.")))
	viols.Merge(Check(FieldAuthor, authorID, Required("Author must not be empty.")))

	draft := &domain.Book{
		Title:    Escape(title),
		Summary:  Escape(summary),
		ISBN:     Escape(isbn),
		AuthorID: authorID,
		GenreIDs: genreIDs,
	}
	draft.ID = existingID

	return draft, viols
}
