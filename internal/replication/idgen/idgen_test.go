package idgen

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNextIsMonotonicAndUnique(t *testing.T) {
	g := &Generator{}
	seen := make(map[int64]struct{})
	var prev int64
	for i := 0; i < 100; i++ {
		next := g.Next()
		require.Greater(t, next, prev)
		_, dup := seen[next]
		require.False(t, dup)
		seen[next] = struct{}{}
		prev = next
	}
}
