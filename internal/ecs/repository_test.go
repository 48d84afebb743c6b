package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ownworld/internal/ids"
)

func TestRepositoryAddRejectsDuplicate(t *testing.T) {
	r := NewRepository[string]()
	assert.True(t, r.Add(1, "a"))
	assert.False(t, r.Add(1, "b"))

	v, ok := r.Get(1)
	assert.True(t, ok)
	assert.Equal(t, "a", v, "a rejected Add must not mutate the existing value")
}

func TestRepositoryMutateNoopWhenAbsent(t *testing.T) {
	r := NewRepository[int]()
	changed := r.Mutate(1, func(v int) int { return v + 1 })
	assert.False(t, changed)
	assert.Equal(t, 0, r.Len())
}

func TestRepositoryMutateAppliesFn(t *testing.T) {
	r := NewRepository[int]()
	r.Add(1, 10)
	assert.True(t, r.Mutate(1, func(v int) int { return v + 5 }))
	v, _ := r.Get(1)
	assert.Equal(t, 15, v)
}

func TestRepositoryRemoveReturnsPreviousValue(t *testing.T) {
	r := NewRepository[int]()
	r.Add(1, 99)
	v, ok := r.Remove(1)
	assert.True(t, ok)
	assert.Equal(t, 99, v)
	assert.False(t, r.Exists(1))

	_, ok = r.Remove(1)
	assert.False(t, ok)
}

func TestRepositoryEachVisitsEveryEntity(t *testing.T) {
	r := NewRepository[int]()
	r.Add(1, 1)
	r.Add(2, 2)
	r.Add(3, 3)

	seen := make(map[ids.EntityID]int)
	r.Each(func(id ids.EntityID, v int) { seen[id] = v })
	assert.Len(t, seen, 3)
	assert.Equal(t, 2, seen[2])
}

func TestRepositoryIdsSnapshot(t *testing.T) {
	r := NewRepository[int]()
	r.Add(1, 1)
	r.Add(2, 2)

	snap := r.Ids()
	assert.ElementsMatch(t, []ids.EntityID{1, 2}, snap)
}
