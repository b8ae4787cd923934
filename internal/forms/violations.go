package forms

// Violation is a single field-level problem with submitted input.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Violations is an ordered collection of field violations.
type Violations []Violation

// Add appends a violation.
func (v *Violations) Add(field, message string) {
	*v = append(*v, Violation{Field: field, Message: message})
}

// Merge appends all violations from another collection.
func (v *Violations) Merge(other Violations) {
	*v = append(*v, other...)
}

// Empty reports whether no violations were collected.
func (v Violations) Empty() bool {
	return len(v) == 0
}

// For returns the first message recorded for a field, or "".
func (v Violations) For(field string) string {
	for _, viol := range v {
		if viol.Field == field {
			return viol.Message
		}
	}
	return ""
}

// Messages returns every message in collection order.
func (v Violations) Messages() []string {
	msgs := make([]string, len(v))
	for i, viol := range v {
		msgs[i] = viol.Message
	}
	return msgs
}
