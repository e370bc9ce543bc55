package model

import (
	"encoding/binary"
	"fmt"
)

// FindToken is an opaque position marker in a remote replica's log. Tokens
// are ordered per (local, remote) replica pair and must be monotone
// non-decreasing across successful iterations; the worker never inspects a
// token's internals, only compares and persists it.
type FindToken interface {
	// Bytes returns the wire encoding of the token.
	Bytes() []byte
	// Equal reports whether two tokens mark the same position.
	Equal(other FindToken) bool
	// Less reports whether t marks an earlier position than other. Tokens
	// from different (local, remote) pairs are not comparable and Less's
	// result is unspecified in that case.
	Less(other FindToken) bool
	fmt.Stringer
}

// TokenFactory decodes the opaque bytes a remote sends back into a FindToken
// the rest of the worker can compare and persist. Injecting the factory
// keeps model free of any one wire representation.
type TokenFactory interface {
	Decode(b []byte) (FindToken, error)
}

// SegmentOffsetToken is the reference FindToken: a monotonically increasing
// (segment index, offset within segment) pair, the shape of a typical
// append-only log position.
type SegmentOffsetToken struct {
	SegmentIndex uint32
	Offset       uint64
}

var _ FindToken = SegmentOffsetToken{}

const segmentOffsetTokenSize = 4 + 8

func (t SegmentOffsetToken) Bytes() []byte {
	b := make([]byte, segmentOffsetTokenSize)
	binary.BigEndian.PutUint32(b[0:4], t.SegmentIndex)
	binary.BigEndian.PutUint64(b[4:12], t.Offset)
	return b
}

func (t SegmentOffsetToken) Equal(other FindToken) bool {
	o, ok := other.(SegmentOffsetToken)
	return ok && o == t
}

func (t SegmentOffsetToken) Less(other FindToken) bool {
	o, ok := other.(SegmentOffsetToken)
	if !ok {
		return false
	}
	if t.SegmentIndex != o.SegmentIndex {
		return t.SegmentIndex < o.SegmentIndex
	}
	return t.Offset < o.Offset
}

func (t SegmentOffsetToken) String() string {
	return fmt.Sprintf("%d:%d", t.SegmentIndex, t.Offset)
}

// SegmentOffsetTokenFactory decodes bytes produced by SegmentOffsetToken.
type SegmentOffsetTokenFactory struct{}

var _ TokenFactory = SegmentOffsetTokenFactory{}

func (SegmentOffsetTokenFactory) Decode(b []byte) (FindToken, error) {
	if len(b) != segmentOffsetTokenSize {
		return nil, fmt.Errorf("model: invalid token length %d, want %d", len(b), segmentOffsetTokenSize)
	}
	return SegmentOffsetToken{
		SegmentIndex: binary.BigEndian.Uint32(b[0:4]),
		Offset:       binary.BigEndian.Uint64(b[4:12]),
	}, nil
}
