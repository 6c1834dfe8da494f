package randutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIsDeterministic(t *testing.T) {
	a, b := New(42), New(42)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Float64(), b.Float64())
	}
	assert.NotEqual(t, New(1).Float64(), New(2).Float64())
}

func TestSeed(t *testing.T) {
	assert.Equal(t, int64(7), Seed(7))
	assert.NotZero(t, Seed(0))
}

func TestSequenceCycles(t *testing.T) {
	s := NewSequence(0.1, 0.2)
	assert.Equal(t, 0.1, s.Float64())
	assert.Equal(t, 0.2, s.Float64())
	assert.Equal(t, 0.1, s.Float64())

	var src Source = NewSequence()
	assert.Equal(t, 0.0, src.Float64())
}
