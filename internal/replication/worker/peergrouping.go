package worker

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/blobstore/replicationworker/internal/replication/clustermap"
	"github.com/blobstore/replicationworker/internal/replication/model"
	"github.com/blobstore/replicationworker/pkg/types"
)

// groupByPeer groups replicas by remote node so one connection amortizes
// over every partition shared with that peer (spec.md §2, PeerGrouping),
// resolving each node's address through resolver. The returned batches are
// rebuilt fresh from replicas every call, matching "rebuilt each iteration."
func groupByPeer(ctx context.Context, replicas []*model.RemoteReplicaState, resolver clustermap.PeerResolver) ([]model.PeerBatch, error) {
	byNode := make(map[types.NodeID][]*model.RemoteReplicaState)
	order := make([]types.NodeID, 0)
	for _, r := range replicas {
		node := r.RemoteReplicaID.Node
		if _, ok := byNode[node]; !ok {
			order = append(order, node)
		}
		byNode[node] = append(byNode[node], r)
	}

	batches := make([]model.PeerBatch, 0, len(order))
	for _, node := range order {
		peer, err := resolver.Resolve(ctx, node)
		if err != nil {
			return nil, fmt.Errorf("worker: resolving peer %s: %w", node, err)
		}
		batch := model.PeerBatch{Remote: peer, Replicas: byNode[node]}
		if err := batch.Validate(); err != nil {
			return nil, err
		}
		batches = append(batches, batch)
	}
	return batches, nil
}

// shuffleBatches randomizes pass order, matching spec.md §4.1's "each pass
// randomly shuffles the peer list."
func shuffleBatches(batches []model.PeerBatch, rng *rand.Rand) {
	rng.Shuffle(len(batches), func(i, j int) {
		batches[i], batches[j] = batches[j], batches[i]
	})
}
