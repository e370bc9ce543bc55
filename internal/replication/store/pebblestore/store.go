// Package pebblestore is a cockroachdb/pebble-backed LocalStore: the
// reference on-disk implementation of the contract the replication worker
// writes blobs and tombstones through.
package pebblestore

import (
	"context"
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"
	"go.uber.org/zap"

	"github.com/blobstore/replicationworker/internal/replication/model"
	"github.com/blobstore/replicationworker/pkg/verrors"
)

// Store is a pebble-backed model.LocalStore. Keys are stored with their
// partition as a prefix, so one Store can serve replicas of many
// partitions; cmd/replicationworker shares a single Store across every
// RemoteReplicaState it builds.
type Store struct {
	db        *pebble.DB
	writeOpts *pebble.WriteOptions
	logger    *zap.Logger
}

var _ model.LocalStore = (*Store)(nil)

// Open opens (or creates) the pebble database rooted at path.
func Open(path string, opts ...Option) (*Store, error) {
	cfg := newConfig(opts)

	pebbleOpts := &pebble.Options{
		MaxOpenFiles: cfg.maxOpenFiles,
	}
	db, err := pebble.Open(path, pebbleOpts)
	if err != nil {
		return nil, fmt.Errorf("pebblestore: open %s: %w", path, err)
	}
	return &Store{
		db:        db,
		writeOpts: &pebble.WriteOptions{Sync: cfg.syncWAL},
		logger:    cfg.logger,
	}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) FindMissingKeys(_ context.Context, keys []model.BlobKey) ([]model.BlobKey, error) {
	missing := make([]model.BlobKey, 0, len(keys))
	for _, k := range keys {
		_, closer, err := s.db.Get(encodeKey(k))
		switch {
		case err == nil:
			_ = closer.Close()
		case errors.Is(err, pebble.ErrNotFound):
			missing = append(missing, k)
		default:
			return nil, fmt.Errorf("pebblestore: get %s: %w", k, err)
		}
	}
	return missing, nil
}

func (s *Store) Put(_ context.Context, ws model.WriteSet) error {
	batch := s.db.NewBatch()
	defer func() { _ = batch.Close() }()

	for i, m := range ws.Messages {
		key := encodeKey(m.Key)
		if _, closer, err := s.db.Get(key); err == nil {
			_ = closer.Close()
			return verrors.ErrExist
		} else if !errors.Is(err, pebble.ErrNotFound) {
			return fmt.Errorf("pebblestore: get %s: %w", m.Key, err)
		}

		var payload []byte
		if i < len(ws.Payloads) {
			payload = ws.Payloads[i]
		}
		value := make([]byte, 1+len(payload))
		value[0] = flagLive
		copy(value[1:], payload)
		if err := batch.Set(key, value, nil); err != nil {
			return fmt.Errorf("pebblestore: set %s: %w", m.Key, err)
		}
	}
	if err := batch.Commit(s.writeOpts); err != nil {
		return fmt.Errorf("pebblestore: commit put batch: %w", err)
	}
	return nil
}

func (s *Store) Delete(_ context.Context, ws model.WriteSet) error {
	batch := s.db.NewBatch()
	defer func() { _ = batch.Close() }()

	for _, m := range ws.Messages {
		key := encodeKey(m.Key)
		value := []byte{flagTombstone}
		if err := batch.Set(key, value, nil); err != nil {
			return fmt.Errorf("pebblestore: tombstone %s: %w", m.Key, err)
		}
	}
	if err := batch.Commit(s.writeOpts); err != nil {
		return fmt.Errorf("pebblestore: commit delete batch: %w", err)
	}
	return nil
}

func (s *Store) IsKeyDeleted(_ context.Context, key model.BlobKey) (bool, error) {
	value, closer, err := s.db.Get(encodeKey(key))
	if errors.Is(err, pebble.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("pebblestore: get %s: %w", key, err)
	}
	defer func() { _ = closer.Close() }()
	return value[0] == flagTombstone, nil
}
