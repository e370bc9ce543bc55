// Package store re-exports the replication worker's LocalStore contract so
// concrete implementations (pebblestore, or a test double) depend on one
// stable import path instead of reaching into model directly.
package store

import "github.com/blobstore/replicationworker/internal/replication/model"

// LocalStore is the contract every concrete local store (pebblestore, or a
// hand-written mock) must satisfy.
type LocalStore = model.LocalStore

// WriteSet is the batch type LocalStore.Put and LocalStore.Delete consume.
type WriteSet = model.WriteSet
