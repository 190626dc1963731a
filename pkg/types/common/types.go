// Package common holds shared identifier and audit types used across the
// engine's application layer.
package common

import (
	"time"

	"github.com/google/uuid"
)

// ID is a string alias for UUID v4.
type ID string

// NewID generates a fresh random ID.
func NewID() ID {
	return ID(uuid.NewString())
}

// IsZero reports whether the ID is unset.
func (id ID) IsZero() bool {
	return id == ""
}

// BaseRecord carries identity and audit metadata for records produced by the
// preprocessing pipeline.
type BaseRecord struct {
	ID        ID        `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

// NewBaseRecord returns a BaseRecord with a fresh ID and the current time.
func NewBaseRecord() BaseRecord {
	return BaseRecord{
		ID:        NewID(),
		CreatedAt: time.Now().UTC(),
	}
}
