// Package etcdmap is a clustermap.PeerResolver backed by an etcd cluster:
// each node's address and datacenter are stored as a small JSON document
// under a per-node key, the way a cluster manager would publish topology
// for consumers that only need to read it.
package etcdmap

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	clientv3 "go.etcd.io/etcd/client/v3"

	"github.com/blobstore/replicationworker/internal/replication/clustermap"
	"github.com/blobstore/replicationworker/internal/replication/model"
	"github.com/blobstore/replicationworker/pkg/types"
)

const defaultKeyPrefix = "/replicationworker/nodes/"

type nodeDoc struct {
	Host       string `json:"host"`
	Port       int    `json:"port"`
	Datacenter string `json:"datacenter"`
}

// Resolver is a clustermap.PeerResolver reading node topology from etcd.
type Resolver struct {
	client    *clientv3.Client
	keyPrefix string
}

var _ clustermap.PeerResolver = (*Resolver)(nil)

// New builds a Resolver over an already-connected etcd client. The caller
// owns the client's lifecycle (Close it when done); Resolver never closes
// it.
func New(client *clientv3.Client, opts ...Option) *Resolver {
	r := &Resolver{client: client, keyPrefix: defaultKeyPrefix}
	for _, opt := range opts {
		opt.apply(r)
	}
	return r
}

func (r *Resolver) key(node types.NodeID) string {
	return r.keyPrefix + strconv.FormatInt(int64(node), 10)
}

func (r *Resolver) Resolve(ctx context.Context, node types.NodeID) (model.PeerNode, error) {
	resp, err := r.client.Get(ctx, r.key(node))
	if err != nil {
		return model.PeerNode{}, fmt.Errorf("etcdmap: get %s: %w", node, err)
	}
	if len(resp.Kvs) == 0 {
		return model.PeerNode{}, fmt.Errorf("etcdmap: node %s not found", node)
	}

	var doc nodeDoc
	if err := json.Unmarshal(resp.Kvs[0].Value, &doc); err != nil {
		return model.PeerNode{}, fmt.Errorf("etcdmap: decode node %s: %w", node, err)
	}
	return model.PeerNode{
		ID:         node,
		Host:       doc.Host,
		Port:       doc.Port,
		Datacenter: types.DatacenterID(doc.Datacenter),
	}, nil
}

// Publish writes (or overwrites) the topology document for node. Intended
// for the side that owns cluster membership, or for tests seeding a fake
// cluster map.
func (r *Resolver) Publish(ctx context.Context, node model.PeerNode) error {
	doc := nodeDoc{Host: node.Host, Port: node.Port, Datacenter: string(node.Datacenter)}
	value, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("etcdmap: encode node %s: %w", node.ID, err)
	}
	_, err = r.client.Put(ctx, r.key(node.ID), string(value))
	if err != nil {
		return fmt.Errorf("etcdmap: put node %s: %w", node.ID, err)
	}
	return nil
}
