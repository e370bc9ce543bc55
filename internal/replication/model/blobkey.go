// Package model defines the data types the replication worker's components
// pass between each other: blob identities, per-iteration metadata, and the
// per-peer bookkeeping the Worker keeps alive across iterations.
package model

import (
	"encoding/hex"
	"fmt"

	"github.com/blobstore/replicationworker/pkg/types"
)

// BlobKeySize is the width of the opaque identity portion of a BlobKey.
const BlobKeySize = 16

// BlobKey is the opaque identity of one blob within a partition. Equality is
// total and Partition is stable once decoded; a BlobKey is never mutated
// after construction.
type BlobKey struct {
	Partition types.PartitionID
	ID        [BlobKeySize]byte
}

// NewBlobKey builds a BlobKey from a partition and an already-decoded
// identity. id is a fixed-size array and is copied into the key, so later
// changes to the caller's array do not affect it.
func NewBlobKey(partition types.PartitionID, id [BlobKeySize]byte) BlobKey {
	return BlobKey{Partition: partition, ID: id}
}

func (k BlobKey) String() string {
	return fmt.Sprintf("%s/%s", k.Partition, hex.EncodeToString(k.ID[:]))
}

// Invalid reports whether k could not have come from a real decode.
func (k BlobKey) Invalid() bool {
	return k.Partition.Invalid()
}
