package store

import (
	"context"
	"errors"

	"ariss-articles/internal/model"
)

var (
	ErrNotFound = errors.New("snapshot not found")
)

// Store keeps the latest newsletter snapshot per source and the queue of
// sources waiting to be refreshed.
type Store interface {
	SaveSnapshot(ctx context.Context, snap *model.Snapshot) error
	LatestSnapshot(ctx context.Context, source string) (*model.Snapshot, error)
	UpdateStatus(ctx context.Context, source string, status model.SnapshotStatus, message string) error
	Enqueue(ctx context.Context, source string) error
	PopQueue(ctx context.Context) (string, error)
}
