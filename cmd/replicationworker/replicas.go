package main

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/blobstore/replicationworker/internal/replication/model"
	"github.com/blobstore/replicationworker/internal/replication/store"
	"github.com/blobstore/replicationworker/pkg/types"
)

// parseReplicas turns "localNode:remoteNode:partition" entries (the
// --replica flag) into the RemoteReplicaState list a WorkerGroup is built
// from. Cluster-map-driven discovery is out of scope per spec.md §1; this
// is the static stand-in an operator supplies at startup.
func parseReplicas(entries []string, localStore store.LocalStore) ([]*model.RemoteReplicaState, error) {
	replicas := make([]*model.RemoteReplicaState, 0, len(entries))
	for _, entry := range entries {
		parts := strings.Split(entry, ":")
		if len(parts) != 3 {
			return nil, errors.Errorf("replicationworker: malformed --replica entry %q, want localNode:remoteNode:partition", entry)
		}
		localNode, err := types.ParseNodeID(parts[0])
		if err != nil {
			return nil, errors.Wrapf(err, "replicationworker: --replica entry %q", entry)
		}
		remoteNode, err := types.ParseNodeID(parts[1])
		if err != nil {
			return nil, errors.Wrapf(err, "replicationworker: --replica entry %q", entry)
		}
		partition, err := types.ParsePartitionID(parts[2])
		if err != nil {
			return nil, errors.Wrapf(err, "replicationworker: --replica entry %q", entry)
		}

		state := &model.RemoteReplicaState{
			RemoteReplicaID: types.ReplicaID{Node: remoteNode, Partition: partition},
			LocalReplicaID:  types.ReplicaID{Node: localNode, Partition: partition},
			LocalStore:      localStore,
		}
		if state.Invalid() {
			return nil, errors.Errorf("replicationworker: --replica entry %q describes an invalid replica", entry)
		}
		replicas = append(replicas, state)
	}
	return replicas, nil
}
