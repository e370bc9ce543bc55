package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegmentOffsetTokenRoundTrip(t *testing.T) {
	want := SegmentOffsetToken{SegmentIndex: 3, Offset: 128}
	var factory SegmentOffsetTokenFactory

	got, err := factory.Decode(want.Bytes())
	require.NoError(t, err)
	assert.True(t, want.Equal(got))
}

func TestSegmentOffsetTokenLess(t *testing.T) {
	a := SegmentOffsetToken{SegmentIndex: 1, Offset: 10}
	b := SegmentOffsetToken{SegmentIndex: 1, Offset: 20}
	c := SegmentOffsetToken{SegmentIndex: 2, Offset: 0}

	assert.True(t, a.Less(b))
	assert.False(t, b.Less(a))
	assert.True(t, b.Less(c))
	assert.False(t, a.Less(a))
}

func TestSegmentOffsetTokenFactoryDecodeInvalid(t *testing.T) {
	var factory SegmentOffsetTokenFactory
	_, err := factory.Decode([]byte{1, 2, 3})
	assert.Error(t, err)
}
