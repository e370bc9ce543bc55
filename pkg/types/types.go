// Package types defines the small, dependency-free identifier types shared
// across the replication worker: partitions, nodes, and datacenters.
package types

import (
	"fmt"
	"math"
	"strconv"
)

// PartitionID identifies a shard of the blob store. Every replica, local or
// remote, belongs to exactly one partition.
type PartitionID int32

const (
	InvalidPartitionID = PartitionID(0)
	MinPartitionID     = PartitionID(1)
	MaxPartitionID     = PartitionID(math.MaxInt32)
)

var _ fmt.Stringer = PartitionID(0)

func ParsePartitionID(s string) (PartitionID, error) {
	id, err := strconv.ParseInt(s, 10, 32)
	return PartitionID(id), err
}

func (p PartitionID) String() string {
	return strconv.FormatInt(int64(p), 10)
}

func (p PartitionID) Invalid() bool {
	return p < MinPartitionID
}

// NodeID identifies a storage node hosting one or more replicas.
type NodeID int32

const (
	InvalidNodeID = NodeID(0)
	MinNodeID     = NodeID(1)
)

var _ fmt.Stringer = NodeID(0)

func ParseNodeID(s string) (NodeID, error) {
	id, err := strconv.ParseInt(s, 10, 32)
	return NodeID(id), err
}

func (n NodeID) String() string {
	return strconv.FormatInt(int64(n), 10)
}

func (n NodeID) Invalid() bool {
	return n < MinNodeID
}

// DatacenterID names an administrative failure domain ("colo"). Equality of
// two DatacenterID values is what the worker uses to decide intra-colo vs.
// cross-colo policy.
type DatacenterID string

func (d DatacenterID) Invalid() bool {
	return d == ""
}

func (d DatacenterID) String() string {
	return string(d)
}

// ReplicaID names one replica: the node that hosts it and the partition it
// serves. Two ReplicaIDs with the same Partition but different Node are
// different replicas of the same shard, which is exactly the relationship
// between a RemoteReplicaState's remote and local replica identifiers.
type ReplicaID struct {
	Node      NodeID
	Partition PartitionID
}

func (r ReplicaID) Invalid() bool {
	return r.Node.Invalid() || r.Partition.Invalid()
}

func (r ReplicaID) String() string {
	return r.Node.String() + "@" + r.Partition.String()
}

// ErrorCode is the per-slot / per-partition server error reported over the
// wire. No_Error means the rest of the response for that slot is valid.
type ErrorCode int32

const (
	NoError ErrorCode = iota
	ErrorCodeUnknown
	ErrorCodeIOError
	ErrorCodePartitionUnknown
	ErrorCodeReplicaUnavailable
	ErrorCodeAlreadyExists
	ErrorCodeDiskFull
)

func (c ErrorCode) String() string {
	switch c {
	case NoError:
		return "No_Error"
	case ErrorCodeIOError:
		return "IO_Error"
	case ErrorCodePartitionUnknown:
		return "Partition_Unknown"
	case ErrorCodeReplicaUnavailable:
		return "Replica_Unavailable"
	case ErrorCodeAlreadyExists:
		return "Already_Exist"
	case ErrorCodeDiskFull:
		return "Disk_Full"
	default:
		return "Unknown"
	}
}
