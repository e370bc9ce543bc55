// Package clustermap defines the PeerResolver contract: answering "what is
// the address and datacenter of remote replica X". The cluster's topology
// source of truth is an external collaborator (spec.md keeps it out of the
// core's contract surface); etcdmap is one concrete adapter onto it.
package clustermap

import (
	"context"

	"github.com/blobstore/replicationworker/internal/replication/model"
	"github.com/blobstore/replicationworker/pkg/types"
)

// PeerResolver maps a node id to the address and datacenter the worker
// needs to dial it and to classify it intra-/cross-colo.
type PeerResolver interface {
	Resolve(ctx context.Context, node types.NodeID) (model.PeerNode, error)
}
