package forms

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAuthor_Valid(t *testing.T) {
	v := Values{
		"first_name":    {"John"},
		"family_name":   {"Smith"},
		"date_of_birth": {"1950-06-15"},
	}

	draft, viols := ParseAuthor(v, "")
	require.True(t, viols.Empty(), "unexpected violations: %v", viols)
	assert.Equal(t, "John", draft.FirstName)
	assert.Equal(t, "Smith", draft.FamilyName)
	require.NotNil(t, draft.DateOfBirth)
	assert.Equal(t, time.Date(1950, time.June, 15, 0, 0, 0, 0, time.UTC), *draft.DateOfBirth)
	assert.Nil(t, draft.DateOfDeath)
	assert.Empty(t, draft.ID, "create drafts must not invent an identity")
}

func TestParseAuthor_MissingRequiredFields(t *testing.T) {
	draft, viols := ParseAuthor(Values{}, "")

	assert.NotNil(t, draft)
	assert.Equal(t, "First name must be specified.", viols.For("first_name"))
	assert.Equal(t, "Family name must be specified.", viols.For("family_name"))
}

func TestParseAuthor_NonAlphanumeric(t *testing.T) {
	v := Values{
		"first_name":  {"Jean-Luc"},
		"family_name": {"Picard"},
	}

	_, viols := ParseAuthor(v, "")
	assert.Equal(t, "First name has non-alphanumeric characters.", viols.For("first_name"))
	assert.Empty(t, viols.For("family_name"))
}

func TestParseAuthor_InvalidDates(t *testing.T) {
	v := Values{
		"first_name":    {"John"},
		"family_name":   {"Smith"},
		"date_of_birth": {"junk"},
		"date_of_death": {"also junk"},
	}

	_, viols := ParseAuthor(v, "")
	assert.Equal(t, "Invalid date of birth", viols.For("date_of_birth"))
	assert.Equal(t, "Invalid date of death", viols.For("date_of_death"))
}

func TestParseAuthor_UpdateCarriesIdentity(t *testing.T) {
	v := Values{
		"first_name":  {"John"},
		"family_name": {"Smith"},
	}

	draft, viols := ParseAuthor(v, "author-existing")
	require.True(t, viols.Empty())
	assert.Equal(t, "author-existing", draft.ID)
}

func TestParseGenre(t *testing.T) {
	draft, viols := ParseGenre(Values{"name": {"  Fantasy  "}}, "")
	require.True(t, viols.Empty())
	assert.Equal(t, "Fantasy", draft.Name)

	_, viols = ParseGenre(Values{"name": {"   "}}, "")
	assert.Equal(t, "Genre name required", viols.For("name"))
}

func TestParseGenre_EscapesMarkup(t *testing.T) {
	draft, viols := ParseGenre(Values{"name": {"<b>Horror</b>"}}, "")
	require.True(t, viols.Empty())
	assert.Equal(t, "&lt;b&gt;Horror&lt;/b&gt;", draft.Name)
}
