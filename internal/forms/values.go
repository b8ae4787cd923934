// Package forms parses and validates submitted catalog form input.
//
// Each entity kind has a normalizer (ParseAuthor, ParseBook, ...) that turns a
// raw field mapping into a draft entity plus the full list of field
// violations. Rules never short-circuit: every violation across every field is
// collected so a form can be redisplayed with all problems at once.
package forms

import (
	"net/url"
	"strings"
)

// Values is the raw field mapping submitted with a form.
// Values arrive as strings or string lists; the transport layer decides which.
type Values map[string][]string

// FromURLValues adapts a parsed request body.
func FromURLValues(v url.Values) Values {
	return Values(v)
}

// Get returns the first value for the named field, whitespace-trimmed.
// Absent fields yield the empty string.
func (v Values) Get(name string) string {
	vals := v[name]
	if len(vals) == 0 {
		return ""
	}
	return strings.TrimSpace(vals[0])
}

// List returns the values for a field that may arrive as a scalar or a list,
// normalized to a list: absent yields nil, a scalar yields a singleton, a list
// is returned as-is. Blank entries are dropped.
func (v Values) List(name string) []string {
	vals := v[name]
	if len(vals) == 0 {
		return nil
	}
	out := make([]string, 0, len(vals))
	for _, val := range vals {
		val = strings.TrimSpace(val)
		if val != "" {
			out = append(out, val)
		}
	}
	return out
}

// Set replaces the value of a field. Used by tests and by handlers that
// backfill hidden fields (e.g. the id on delete confirmations).
func (v Values) Set(name, value string) {
	v[name] = []string{value}
}
