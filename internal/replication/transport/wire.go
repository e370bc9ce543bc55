// Package transport defines the wire-level request/response shapes the
// worker exchanges with a peer, and the Channel/ConnectionPool contracts a
// concrete transport (grpctransport) implements.
package transport

import (
	"github.com/blobstore/replicationworker/internal/replication/model"
	"github.com/blobstore/replicationworker/pkg/types"
)

// PartitionMetadataRequest asks one peer replica to report everything it
// has past the given token.
type PartitionMetadataRequest struct {
	PartitionID          types.PartitionID
	Token                []byte
	RequesterHost        string
	RequesterReplicaPath string
}

// MetadataRequest is one batched metadata exchange call, carrying one
// PartitionMetadataRequest per RemoteReplicaState in the peer batch.
type MetadataRequest struct {
	CorrelationID    int64
	ClientID         string
	Replicas         []PartitionMetadataRequest
	FetchSizeInBytes int64
}

// PartitionMetadataResponse is one peer replica's answer, positionally
// aligned to the PartitionMetadataRequest that produced it.
type PartitionMetadataResponse struct {
	PartitionID             types.PartitionID
	Error                   types.ErrorCode
	Messages                []model.MessageInfo
	NewToken                []byte
	RemoteReplicaLagInBytes int64
}

// MetadataResponse is the batched reply to a MetadataRequest.
type MetadataResponse struct {
	Error    types.ErrorCode
	Replicas []PartitionMetadataResponse
}

// PartitionGetRequest asks for specific keys within one partition.
type PartitionGetRequest struct {
	PartitionID types.PartitionID
	Keys        []model.BlobKey
}

// GetRequest is one batched get call consolidating, per partition, the keys
// a prior metadata exchange found missing.
type GetRequest struct {
	CorrelationID   int64
	ClientID        string
	FullMessage     bool
	IncludeDeletes  bool
	IncludeExpired  bool
	Partitions      []PartitionGetRequest
}

// PartitionPayload is one partition's worth of fetched content, in the same
// order as the GetRequest's partition list (partitions with nothing to
// return are omitted). Writer's cursor must advance through these in
// exactly this order.
type PartitionPayload struct {
	PartitionID types.PartitionID
	Error       types.ErrorCode
	Messages    []model.MessageInfo
	Blobs       [][]byte // Blobs[i] is the raw bytes for Messages[i]
}

// GetResponse is the batched reply to a GetRequest.
type GetResponse struct {
	Error      types.ErrorCode
	Partitions []PartitionPayload
}
