package forms

import (
	"time"

	"github.com/locallibrary/catalog-server/internal/domain"
)

// BookInstance form field names.
const (
	FieldBook    = "book"
	FieldImprint = "imprint"
	FieldStatus  = "status"
	FieldDueBack = "due_back"
)

// ParseBookInstance normalizes a book-copy form submission into a draft entity.
// An empty status defaults to Maintenance; an empty due-back date defaults to
// the current time.
func ParseBookInstance(v Values, existingID string) (*domain.BookInstance, Violations) {
	bookID := v.Get(FieldBook)
	imprint := v.Get(FieldImprint)
	statusRaw := v.Get(FieldStatus)

	var viols Violations
	viols.Merge(Check(FieldBook, bookID, Required("Book must be specified")))
	viols.Merge(Check(FieldImprint, imprint, Required("Imprint must be specified")))

	status := domain.StatusMaintenance
	if statusRaw != "" {
		status = domain.Status(statusRaw)
		if !status.Valid() {
			viols.Add(FieldStatus, "Invalid status")
		}
	}

	dueBack := time.Now()
	parsed, viol := ParseOptionalDate(FieldDueBack, v.Get(FieldDueBack), "Invalid date")
	if viol != nil {
		viols = append(viols, *viol)
	}
	if parsed != nil {
		dueBack = *parsed
	}

	draft := &domain.BookInstance{
		BookID:  bookID,
		Imprint: Escape(imprint),
		Status:  status,
		DueBack: dueBack,
	}
	draft.ID = existingID

	return draft, viols
}
