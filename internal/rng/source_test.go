package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSameSeedReproducesSequence(t *testing.T) {
	a := New(42)
	b := New(42)

	for i := 0; i < 20; i++ {
		assert.Equal(t, a.IntRange(0, 1000), b.IntRange(0, 1000))
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	a := New(1)
	b := New(2)

	same := true
	for i := 0; i < 20; i++ {
		if a.IntRange(0, 1_000_000) != b.IntRange(0, 1_000_000) {
			same = false
			break
		}
	}
	assert.False(t, same, "two distinct seeds producing identical draws 20 times running is implausible")
}

func TestIntRangeInclusiveBounds(t *testing.T) {
	s := New(7)
	for i := 0; i < 500; i++ {
		v := s.IntRange(3, 5)
		assert.GreaterOrEqual(t, v, 3)
		assert.LessOrEqual(t, v, 5)
	}
}

func TestIntRangeDegenerate(t *testing.T) {
	s := New(7)
	assert.Equal(t, 4, s.IntRange(4, 4))
	assert.Equal(t, 4, s.IntRange(4, 3), "max <= min collapses to min")
}

func TestDice2d6Range(t *testing.T) {
	s := New(99)
	for i := 0; i < 500; i++ {
		roll := s.Dice2d6()
		assert.GreaterOrEqual(t, roll, 2)
		assert.LessOrEqual(t, roll, 12)
	}
}
