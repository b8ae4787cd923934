package domain

// Genre is a category label books can belong to. Names are unique across the
// catalog; uniqueness is enforced by the genre workflow, not the store.
type Genre struct {
	Record
	Name string `json:"name"`
}

// URL returns the genre's detail page path.
func (g *Genre) URL() string {
	return "/catalog/genre/" + g.ID
}
