// Package id generates prefixed unique identifiers for catalog entities.
package id

import (
	"fmt"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Entity prefixes. The prefix makes an ID self-describing in logs and URLs.
const (
	PrefixAuthor   = "author"
	PrefixBook     = "book"
	PrefixGenre    = "genre"
	PrefixInstance = "copy"
)

// New creates a prefixed unique ID using NanoID.
// Format: prefix-nanoid (e.g., "book-V1StGXR8_Z5jdHi6B-myT").
//
// NanoIDs are URL-friendly and compact (21 characters), which keeps the
// catalog's /catalog/<kind>/<id> URLs readable.
//
// Returns an error if the system has insufficient entropy for secure random generation.
func New(prefix string) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + id, nil
}

// MustNew is like New but panics if ID generation fails.
// Use only where failure should crash the program (tests, seed data).
func MustNew(prefix string) string {
	id, err := New(prefix)
	if err != nil {
		panic(fmt.Sprintf("failed to generate ID: %v", err))
	}
	return id
}

// HasPrefix reports whether the ID carries the given entity prefix.
func HasPrefix(id, prefix string) bool {
	return strings.HasPrefix(id, prefix+"-")
}
