// Package domain contains the core entities and derivation logic for the library catalog.
package domain

import "time"

// Record provides the common identity and bookkeeping fields for catalog entities.
// It gets embedded in every persisted domain type. The ID is assigned once at
// creation and never changes; updates replace the record in place.
type Record struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	ID        string    `json:"id"`
}

// Touch updates the UpdatedAt timestamp to the current time.
// Call this whenever the underlying entity changes.
func (r *Record) Touch() {
	r.UpdatedAt = time.Now()
}

// InitTimestamps sets both CreatedAt and UpdatedAt to now.
// Call this when creating a new entity.
func (r *Record) InitTimestamps() {
	now := time.Now()
	r.CreatedAt = now
	r.UpdatedAt = now
}
