package forms

import "github.com/locallibrary/catalog-server/internal/domain"

// Genre form field names.
const FieldGenreName = "name"

// ParseGenre normalizes a genre form submission into a draft entity.
func ParseGenre(v Values, existingID string) (*domain.Genre, Violations) {
	name := v.Get(FieldGenreName)

	viols := Check(FieldGenreName, name,
		Required("Genre name required"),
		MaxLength(100, "Genre name must not exceed 100 characters."),
	)

	draft := &domain.Genre{Name: Escape(name)}
	draft.ID = existingID

	return draft, viols
}
