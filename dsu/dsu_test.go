package dsu_test

import (
	"testing"

	"github.com/katalvlaran/dxacore/dsu"
	"github.com/stretchr/testify/assert"
)

func TestDisjointSetMergeAndFind(t *testing.T) {
	d := dsu.New(6)
	for i := 0; i < 6; i++ {
		assert.Equal(t, i, d.Find(i))
		assert.Equal(t, 1, d.NodeSize(i))
	}

	d.Merge(0, 1)
	d.Merge(1, 2)
	assert.True(t, d.Connected(0, 2))
	assert.Equal(t, 3, d.NodeSize(0))

	d.Merge(3, 4)
	assert.False(t, d.Connected(0, 3))

	root := d.Merge(2, 3)
	assert.Equal(t, 5, d.NodeSize(root))
	assert.True(t, d.Connected(0, 4))
	assert.False(t, d.Connected(0, 5))
}

// TestDisjointSetIdempotent verifies that repeated Find calls return the
// same root for every node of a merged chain; path lengths are not measured.
func TestDisjointSetIdempotent(t *testing.T) {
	d := dsu.New(8)
	for i := 1; i < 8; i++ {
		d.Merge(i-1, i)
	}
	root := d.Find(7)
	for i := 0; i < 8; i++ {
		assert.Equal(t, root, d.Find(i))
	}
	// Second full pass must be stable (idempotent).
	for i := 0; i < 8; i++ {
		assert.Equal(t, root, d.Find(i))
	}
}

func TestDisjointSetClear(t *testing.T) {
	d := dsu.New(4)
	d.Merge(0, 1)
	d.Merge(2, 3)
	d.Clear()
	for i := 0; i < 4; i++ {
		assert.Equal(t, i, d.Find(i))
		assert.Equal(t, 1, d.NodeSize(i))
	}
}
