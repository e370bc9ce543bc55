package model

import (
	"context"

	"github.com/blobstore/replicationworker/pkg/types"
)

// WriteSet is a batch of messages destined for one local store call. For a
// put, Payloads[i] holds the raw blob bytes for Messages[i]; for a delete
// Payloads is nil since only the tombstone entry itself is persisted.
type WriteSet struct {
	Partition types.PartitionID
	Messages  []MessageInfo
	Payloads  [][]byte
}

//go:generate mockgen -package mocks -destination ../mocks/localstore_mock.go . LocalStore

// LocalStore is the shared, thread-safe collaborator every RemoteReplicaState
// writes through. It is owned outside the worker; the worker only calls it.
//
// Put reports re-delivery of an already-written key as an error matching
// verrors.ErrExist (checked with errors.Is); callers treat that error as
// success.
type LocalStore interface {
	FindMissingKeys(ctx context.Context, keys []BlobKey) ([]BlobKey, error)
	Put(ctx context.Context, ws WriteSet) error
	Delete(ctx context.Context, ws WriteSet) error
	IsKeyDeleted(ctx context.Context, key BlobKey) (bool, error)
}
