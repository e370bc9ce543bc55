// Package notify defines the sink replication reports repaired blobs to.
// It is optional plumbing (spec.md §9): callers that don't care wire the
// no-op Sink instead of threading a nil check through every call site.
package notify

import "github.com/blobstore/replicationworker/internal/replication/model"

// Source identifies why a blob replica changed. Replication always reports
// Repaired; the type exists so a future direct-write path can share the
// sink without a breaking change.
type Source string

const (
	Repaired Source = "REPAIRED"
)

// Sink receives fire-and-forget notifications about blob replicas that
// replication created or deleted on the local node (spec.md §6).
type Sink interface {
	OnBlobReplicaCreated(host string, port int, key model.BlobKey, source Source)
	OnBlobReplicaDeleted(host string, port int, key model.BlobKey, source Source)
}

// NoOp is a Sink that discards every notification.
type NoOp struct{}

var _ Sink = NoOp{}

func (NoOp) OnBlobReplicaCreated(host string, port int, key model.BlobKey, source Source) {}
func (NoOp) OnBlobReplicaDeleted(host string, port int, key model.BlobKey, source Source) {}
