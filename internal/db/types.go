package db

import (
	"time"

	"github.com/google/uuid"
)

// Import represents one content import into the database
type Import struct {
	ID        uuid.UUID      `json:"id"`
	Source    string         `json:"source"`
	Counts    map[string]int `json:"counts"`
	CreatedAt time.Time      `json:"created_at"`
}

// entryRow is one stored content document
type entryRow struct {
	Collection string
	Position   int
	ID         string
	Data       []byte
}
