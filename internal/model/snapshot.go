package model

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
)

type SnapshotStatus string

const (
	SnapshotFresh  SnapshotStatus = "fresh"
	SnapshotFailed SnapshotStatus = "failed"
)

// Snapshot is a fetched copy of the newsletter text.
type Snapshot struct {
	ID           uuid.UUID      `json:"id"`
	Source       string         `json:"source"`
	Checksum     string         `json:"checksum"`
	Size         int            `json:"size"`
	Text         string         `json:"text,omitempty"`
	Status       SnapshotStatus `json:"status"`
	FetchedAt    time.Time      `json:"fetched_at"`
	ErrorMessage string         `json:"error_message,omitempty"`
}

// NewSnapshot wraps freshly fetched newsletter text.
func NewSnapshot(source, text string) Snapshot {
	sum := sha256.Sum256([]byte(text))
	return Snapshot{
		ID:        uuid.New(),
		Source:    source,
		Checksum:  hex.EncodeToString(sum[:]),
		Size:      len(text),
		Text:      text,
		Status:    SnapshotFresh,
		FetchedAt: time.Now(),
	}
}
