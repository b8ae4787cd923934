package domain

import "time"

// Author represents a writer with zero or more books in the catalog.
// Display values (Name, Lifespan, formatted dates) are derived on read and
// never persisted.
type Author struct {
	Record
	FirstName   string     `json:"first_name"`
	FamilyName  string     `json:"family_name"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	DateOfDeath *time.Time `json:"date_of_death,omitempty"`
}

// Name returns the display name, "FamilyName, FirstName".
func (a *Author) Name() string {
	return a.FamilyName + ", " + a.FirstName
}

// Lifespan returns the formatted birth-death range, e.g. "Mar 3rd, 1901 - Jan 1st, 1990".
// An unknown date leaves its side of the range blank.
func (a *Author) Lifespan() string {
	var s string
	if a.DateOfBirth != nil {
		s = FormatDate(*a.DateOfBirth)
	}
	s += " - "
	if a.DateOfDeath != nil {
		s += FormatDate(*a.DateOfDeath)
	}
	return s
}

// BirthFormatted returns the formatted date of birth, or "N/A" when unknown.
func (a *Author) BirthFormatted() string {
	return FormatOptionalDate(a.DateOfBirth)
}

// DeathFormatted returns the formatted date of death, or "N/A" when unknown.
func (a *Author) DeathFormatted() string {
	return FormatOptionalDate(a.DateOfDeath)
}

// URL returns the author's detail page path.
func (a *Author) URL() string {
	return "/catalog/author/" + a.ID
}
