package randutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIsDeterministic(t *testing.T) {
	a, b := New(42), New(42)
	for range 100 {
		assert.Equal(t, a.Uint64(), b.Uint64())
	}
	assert.NotEqual(t, New(1).Uint64(), New(2).Uint64())
}

func TestSeed(t *testing.T) {
	seed := int64(-9)
	assert.Equal(t, int64(-9), Seed(&seed))
	assert.NotZero(t, Seed(nil))
}

func TestSplitFollowsParent(t *testing.T) {
	p1, p2 := New(7), New(7)
	c1, c2 := Split(p1), Split(p2)
	assert.Equal(t, c1.Int64(), c2.Int64())

	// Successive children of one parent are different streams.
	p := New(7)
	assert.NotEqual(t, Split(p).Int64(), Split(p).Int64())
}
