package domain

import "time"

// Status describes the lending state of a book copy.
type Status string

// Valid copy statuses.
const (
	StatusAvailable   Status = "Available"
	StatusMaintenance Status = "Maintenance"
	StatusLoaned      Status = "Loaned"
	StatusReserved    Status = "Reserved"
)

// Statuses lists all valid copy statuses, in form display order.
func Statuses() []Status {
	return []Status{StatusAvailable, StatusMaintenance, StatusLoaned, StatusReserved}
}

// Valid reports whether s is one of the defined statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusMaintenance, StatusLoaned, StatusReserved:
		return true
	}
	return false
}

// BookInstance represents a physical copy of a book.
// New copies default to Maintenance status with a due date of "now".
type BookInstance struct {
	Record
	BookID  string    `json:"book_id"`
	Imprint string    `json:"imprint"`
	Status  Status    `json:"status"`
	DueBack time.Time `json:"due_back"`
}

// DueBackFormatted returns the formatted due date, e.g. "Apr 1st, 2026".
func (bi *BookInstance) DueBackFormatted() string {
	return FormatDate(bi.DueBack)
}

// URL returns the copy's detail page path.
func (bi *BookInstance) URL() string {
	return "/catalog/bookinstance/" + bi.ID
}
