package models

import (
	"github.com/google/uuid"
)

// File is a stored file: its payload plus the metadata needed to serve
// it back. Data holds the full payload; it may be empty but is always
// present.
type File struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Type string    `json:"type"`
	Data []byte    `json:"data,omitempty"`
}
