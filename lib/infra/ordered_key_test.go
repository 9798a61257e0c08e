package infra

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func ascending[K ScalarKey](ks []K) bool {
	for i := 1; i < len(ks); i++ {
		if ks[i-1] >= ks[i] {
			return false
		}
	}
	return true
}

func TestScalarKeyOrdering(t *testing.T) {
	require.True(t, ascending([]int64{-3, 0, 7}))
	require.False(t, ascending([]int32{5, 5}))
	require.True(t, ascending([]int8{-128, 127}))
}
