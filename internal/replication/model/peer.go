package model

import (
	"fmt"

	"github.com/blobstore/replicationworker/pkg/types"
)

// RemoteReplicaState is the per-(local,remote) bookkeeping the Worker keeps
// alive across iterations. It is created once by the manager that discovers
// the peer topology and survives for the life of the process; only its
// Token field mutates, and only through AdvanceToken.
type RemoteReplicaState struct {
	RemoteReplicaID types.ReplicaID
	LocalReplicaID  types.ReplicaID
	LocalStore      LocalStore
	Token           FindToken
}

// Invalid reports whether s could not have come from a real manager: both
// replica ids must name the same partition.
func (s *RemoteReplicaState) Invalid() bool {
	return s.RemoteReplicaID.Invalid() || s.LocalReplicaID.Invalid() ||
		s.RemoteReplicaID.Partition != s.LocalReplicaID.Partition
}

// AdvanceToken moves the state's token forward. A newToken that would
// regress the current token is dropped rather than applied, preserving the
// monotone-non-decreasing invariant even if a caller passes a stale value.
func (s *RemoteReplicaState) AdvanceToken(newToken FindToken) {
	if newToken == nil {
		return
	}
	if s.Token == nil || s.Token.Less(newToken) || s.Token.Equal(newToken) {
		s.Token = newToken
	}
}

// PeerNode addresses one remote node: where to dial it and which datacenter
// it lives in, which together decide connection kind and metrics bucket.
type PeerNode struct {
	ID         types.NodeID
	Host       string
	Port       int
	Datacenter types.DatacenterID
}

func (n PeerNode) String() string {
	return fmt.Sprintf("%s:%d@%s", n.Host, n.Port, n.Datacenter)
}

// PeerBatch is an ordered sequence of RemoteReplicaState sharing one remote
// node. It is rebuilt every iteration from the current peer topology and
// must carry at least one entry.
type PeerBatch struct {
	Remote   PeerNode
	Replicas []*RemoteReplicaState
}

// Validate checks the structural invariants spec.md's DATA MODEL requires of
// a PeerBatch: non-empty, and every entry naming the same remote node.
func (b PeerBatch) Validate() error {
	if len(b.Replicas) == 0 {
		return fmt.Errorf("model: peer batch for %s has no replicas", b.Remote)
	}
	for i, r := range b.Replicas {
		if r == nil || r.Invalid() {
			return fmt.Errorf("model: peer batch for %s has invalid replica at index %d", b.Remote, i)
		}
		if r.RemoteReplicaID.Node != b.Remote.ID {
			return fmt.Errorf("model: peer batch for %s has replica %s for a different node", b.Remote, r.RemoteReplicaID)
		}
	}
	return nil
}
