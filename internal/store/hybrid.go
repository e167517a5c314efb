package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ariss-articles/internal/model"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	queueKey   = "queue:refresh"
	sourcesKey = "list:sources"
)

// HybridStore combines Redis (snapshot metadata, refresh queue) and Badger
// (newsletter bodies, keyed by checksum).
type HybridStore struct {
	rdb *redis.Client
	db  *badger.DB
}

// NewHybridStore initializes databases.
// Pass badgerPath="" to run in "Redis-Only" mode (for CLI tools).
func NewHybridStore(redisAddr string, badgerPath string) (*HybridStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	var db *badger.DB
	var err error

	if badgerPath != "" {
		opts := badger.DefaultOptions(badgerPath)
		opts.Logger = nil
		db, err = badger.Open(opts)
		if err != nil {
			rdb.Close()
			return nil, fmt.Errorf("failed to open badger: %w", err)
		}
	}

	return &HybridStore{rdb: rdb, db: db}, nil
}

// Close cleans up connections
func (s *HybridStore) Close() {
	if s.rdb != nil {
		s.rdb.Close()
	}
	if s.db != nil {
		s.db.Close()
	}
}

func metaKey(source string) string {
	sum := sha256.Sum256([]byte(source))
	return "snapshot:" + hex.EncodeToString(sum[:8])
}

func bodyKey(checksum string) []byte {
	return []byte("newsletter:" + checksum)
}

// SaveSnapshot writes metadata to Redis and the text to Badger.
func (s *HybridStore) SaveSnapshot(ctx context.Context, snap *model.Snapshot) error {
	if snap.Text != "" {
		if s.db == nil {
			return fmt.Errorf("cannot save newsletter text: badgerdb is not initialized")
		}
		err := s.db.Update(func(txn *badger.Txn) error {
			return txn.Set(bodyKey(snap.Checksum), []byte(snap.Text))
		})
		if err != nil {
			return fmt.Errorf("saving newsletter text: %w", err)
		}
	}

	return s.saveMeta(ctx, snap)
}

func (s *HybridStore) saveMeta(ctx context.Context, snap *model.Snapshot) error {
	meta := *snap
	meta.Text = ""

	data, err := json.Marshal(meta)
	if err != nil {
		return err
	}

	pipe := s.rdb.Pipeline()
	pipe.Set(ctx, metaKey(snap.Source), data, 0)
	pipe.LRem(ctx, sourcesKey, 0, snap.Source)
	pipe.LPush(ctx, sourcesKey, snap.Source)
	pipe.LTrim(ctx, sourcesKey, 0, 49)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *HybridStore) getMeta(ctx context.Context, source string) (*model.Snapshot, error) {
	val, err := s.rdb.Get(ctx, metaKey(source)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}

	var snap model.Snapshot
	if err := json.Unmarshal(val, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// LatestSnapshot combines metadata from Redis with the text from Badger
// (when Badger is configured).
func (s *HybridStore) LatestSnapshot(ctx context.Context, source string) (*model.Snapshot, error) {
	snap, err := s.getMeta(ctx, source)
	if err != nil {
		return nil, err
	}

	if s.db == nil || snap.Checksum == "" {
		return snap, nil
	}

	err = s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(bodyKey(snap.Checksum))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			snap.Text = string(val)
			return nil
		})
	})
	if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
		return nil, err
	}

	return snap, nil
}

// UpdateStatus flips the status of the latest snapshot, keeping its text.
// A source that was never fetched gets a metadata-only entry.
func (s *HybridStore) UpdateStatus(ctx context.Context, source string, status model.SnapshotStatus, message string) error {
	snap, err := s.getMeta(ctx, source)
	if errors.Is(err, ErrNotFound) {
		snap = &model.Snapshot{ID: uuid.New(), Source: source, FetchedAt: time.Now()}
	} else if err != nil {
		return err
	}

	snap.Status = status
	snap.ErrorMessage = message
	return s.saveMeta(ctx, snap)
}

// Sources lists the most recently refreshed sources.
func (s *HybridStore) Sources(ctx context.Context, limit int) ([]string, error) {
	return s.rdb.LRange(ctx, sourcesKey, 0, int64(limit-1)).Result()
}

// Enqueue asks the worker to refresh source.
func (s *HybridStore) Enqueue(ctx context.Context, source string) error {
	return s.rdb.LPush(ctx, queueKey, source).Err()
}

// PopQueue waits for a job in the Redis queue (Blocking)
func (s *HybridStore) PopQueue(ctx context.Context) (string, error) {
	// 0 means wait forever until an item arrives
	result, err := s.rdb.BRPop(ctx, 0, queueKey).Result()
	if err != nil {
		return "", err
	}
	return result[1], nil
}
