package pebblestore

import (
	"encoding/binary"

	"github.com/blobstore/replicationworker/internal/replication/model"
)

const keyLength = 4 + model.BlobKeySize

func encodeKey(k model.BlobKey) []byte {
	b := make([]byte, keyLength)
	binary.BigEndian.PutUint32(b[0:4], uint32(k.Partition))
	copy(b[4:], k.ID[:])
	return b
}

const (
	flagLive      byte = 0
	flagTombstone byte = 1
)
