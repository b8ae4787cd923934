package forms

import "github.com/locallibrary/catalog-server/internal/domain"

// Author form field names.
const (
	FieldFirstName   = "first_name"
	FieldFamilyName  = "family_name"
	FieldDateOfBirth = "date_of_birth"
	FieldDateOfDeath = "date_of_death"
)

// ParseAuthor normalizes an author form submission into a draft entity.
// existingID carries the target's identity on update and must be empty on
// create; the draft never invents an identity of its own.
func ParseAuthor(v Values, existingID string) (*domain.Author, Violations) {
	first := v.Get(FieldFirstName)
	family := v.Get(FieldFamilyName)

	var viols Violations
	viols.Merge(Check(FieldFirstName, first,
		Required("First name must be specified."),
		MaxLength(100, "First name must not exceed 100 characters."),
		Alphanumeric("First name has non-alphanumeric characters."),
	))
	viols.Merge(Check(FieldFamilyName, family,
		Required("Family name must be specified."),
		MaxLength(100, "Family name must not exceed 100 characters."),
		Alphanumeric("Family name has non-alphanumeric characters."),
	))

	birth, viol := ParseOptionalDate(FieldDateOfBirth, v.Get(FieldDateOfBirth), "Invalid date of birth")
	if viol != nil {
		viols = append(viols, *viol)
	}
	death, viol := ParseOptionalDate(FieldDateOfDeath, v.Get(FieldDateOfDeath), "Invalid date of death")
	if viol != nil {
		viols = append(viols, *viol)
	}

	draft := &domain.Author{
		FirstName:   Escape(first),
		FamilyName:  Escape(family),
		DateOfBirth: birth,
		DateOfDeath: death,
	}
	draft.ID = existingID

	return draft, viols
}
