package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_SameInputsProduceIdenticalSequence(t *testing.T) {
	a := New("game-1", 3, 42)
	b := New("game-1", 3, 42)

	assert.Equal(t, a.Seed(), b.Seed())
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Float64(), b.Float64())
	}
}

func TestNew_DifferentPlayNumberProducesDifferentSeed(t *testing.T) {
	a := New("game-1", 3, 42)
	b := New("game-1", 4, 42)
	assert.NotEqual(t, a.Seed(), b.Seed())
}

func TestNew_DifferentSaltProducesDifferentSeed(t *testing.T) {
	a := New("game-1", 3, 42)
	b := New("game-1", 3, 43)
	assert.NotEqual(t, a.Seed(), b.Seed())
}

func TestUniform_StaysWithinBounds(t *testing.T) {
	s := New("game-1", 1, 0)
	for i := 0; i < 100; i++ {
		v := s.Uniform(10, 20)
		assert.GreaterOrEqual(t, v, 10.0)
		assert.Less(t, v, 20.0)
	}
}

func TestChance_ClampsOutOfRangeProbabilities(t *testing.T) {
	s := New("game-1", 1, 0)
	assert.False(t, s.Chance(0))
	assert.False(t, s.Chance(-1))
	assert.True(t, s.Chance(1))
	assert.True(t, s.Chance(2))
}

func TestSeed_IsNeverNegative(t *testing.T) {
	for i := 0; i < 50; i++ {
		s := New("game-x", i, int64(i*7))
		assert.GreaterOrEqual(t, s.Seed(), int64(0))
	}
}
