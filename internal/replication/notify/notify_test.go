package notify

import (
	"testing"

	"github.com/blobstore/replicationworker/internal/replication/model"
	"github.com/blobstore/replicationworker/pkg/types"
)

// recordingSink is a test double that captures every call it receives.
type recordingSink struct {
	created []model.BlobKey
	deleted []model.BlobKey
}

func (s *recordingSink) OnBlobReplicaCreated(host string, port int, key model.BlobKey, source Source) {
	s.created = append(s.created, key)
}

func (s *recordingSink) OnBlobReplicaDeleted(host string, port int, key model.BlobKey, source Source) {
	s.deleted = append(s.deleted, key)
}

func TestNoOpDoesNothing(t *testing.T) {
	var sink Sink = NoOp{}
	key := model.NewBlobKey(types.PartitionID(1), [16]byte{1})
	sink.OnBlobReplicaCreated("host", 1, key, Repaired)
	sink.OnBlobReplicaDeleted("host", 1, key, Repaired)
}

func TestRecordingSinkCapturesCalls(t *testing.T) {
	sink := &recordingSink{}
	key := model.NewBlobKey(types.PartitionID(1), [16]byte{2})

	sink.OnBlobReplicaCreated("host", 1, key, Repaired)
	sink.OnBlobReplicaDeleted("host", 1, key, Repaired)

	if len(sink.created) != 1 || sink.created[0] != key {
		t.Fatalf("expected created=[%v], got %v", key, sink.created)
	}
	if len(sink.deleted) != 1 || sink.deleted[0] != key {
		t.Fatalf("expected deleted=[%v], got %v", key, sink.deleted)
	}
}
