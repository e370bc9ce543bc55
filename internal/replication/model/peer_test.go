package model

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/blobstore/replicationworker/pkg/types"
)

func TestRemoteReplicaStateInvalid(t *testing.T) {
	valid := &RemoteReplicaState{
		RemoteReplicaID: types.ReplicaID{Node: 1, Partition: 1},
		LocalReplicaID:  types.ReplicaID{Node: 2, Partition: 1},
	}
	assert.False(t, valid.Invalid())

	mismatched := &RemoteReplicaState{
		RemoteReplicaID: types.ReplicaID{Node: 1, Partition: 1},
		LocalReplicaID:  types.ReplicaID{Node: 2, Partition: 2},
	}
	assert.True(t, mismatched.Invalid())
}

func TestAdvanceTokenNeverRegresses(t *testing.T) {
	s := &RemoteReplicaState{Token: SegmentOffsetToken{SegmentIndex: 1, Offset: 100}}

	s.AdvanceToken(SegmentOffsetToken{SegmentIndex: 1, Offset: 50})
	assert.Equal(t, SegmentOffsetToken{SegmentIndex: 1, Offset: 100}, s.Token)

	s.AdvanceToken(SegmentOffsetToken{SegmentIndex: 1, Offset: 200})
	assert.Equal(t, SegmentOffsetToken{SegmentIndex: 1, Offset: 200}, s.Token)

	s.AdvanceToken(nil)
	assert.Equal(t, SegmentOffsetToken{SegmentIndex: 1, Offset: 200}, s.Token)
}

func TestPeerBatchValidate(t *testing.T) {
	node := PeerNode{ID: 1, Host: "peer", Port: 6000, Datacenter: "dc1"}

	empty := PeerBatch{Remote: node}
	assert.Error(t, empty.Validate())

	mismatched := PeerBatch{
		Remote: node,
		Replicas: []*RemoteReplicaState{
			{RemoteReplicaID: types.ReplicaID{Node: 2, Partition: 1}, LocalReplicaID: types.ReplicaID{Node: 9, Partition: 1}},
		},
	}
	assert.Error(t, mismatched.Validate())

	ok := PeerBatch{
		Remote: node,
		Replicas: []*RemoteReplicaState{
			{RemoteReplicaID: types.ReplicaID{Node: 1, Partition: 1}, LocalReplicaID: types.ReplicaID{Node: 9, Partition: 1}},
		},
	}
	assert.NoError(t, ok.Validate())
}
