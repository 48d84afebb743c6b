// Package ecs implements the component repository contract of spec
// §4.2, grounded on original_source's commons/src/repositories.rs
// (HashMapRepository/VecRepository). Go generics give us one
// implementation instead of the original's two backends; the
// contracts — add fails without mutation on conflict, remove yields
// the previous value, iteration order is unspecified — are preserved.
package ecs

import "ownworld/internal/ids"

// Repository is a keyed store of one component kind, mapping entity
// id to component value. A missing key means the component is absent.
type Repository[T any] struct {
	values map[ids.EntityID]T
}

// NewRepository returns an empty repository.
func NewRepository[T any]() *Repository[T] {
	return &Repository[T]{values: make(map[ids.EntityID]T)}
}

// Exists reports whether id has this component.
func (r *Repository[T]) Exists(id ids.EntityID) bool {
	_, ok := r.values[id]
	return ok
}

// Get returns the component value and whether it was present.
func (r *Repository[T]) Get(id ids.EntityID) (T, bool) {
	v, ok := r.values[id]
	return v, ok
}

// Add inserts a new component for id. It returns false without
// mutating the repository if id already has this component.
func (r *Repository[T]) Add(id ids.EntityID, value T) bool {
	if _, ok := r.values[id]; ok {
		return false
	}
	r.values[id] = value
	return true
}

// Update overwrites (or creates) the component for id.
func (r *Repository[T]) Update(id ids.EntityID, value T) {
	r.values[id] = value
}

// Mutate applies fn to the existing component for id and stores the
// result. It is a no-op returning false if id has no such component.
func (r *Repository[T]) Mutate(id ids.EntityID, fn func(T) T) bool {
	v, ok := r.values[id]
	if !ok {
		return false
	}
	r.values[id] = fn(v)
	return true
}

// Remove deletes the component for id, returning the previous value
// if one existed.
func (r *Repository[T]) Remove(id ids.EntityID) (T, bool) {
	v, ok := r.values[id]
	if ok {
		delete(r.values, id)
	}
	return v, ok
}

// Len returns the number of entities carrying this component.
func (r *Repository[T]) Len() int {
	return len(r.values)
}

// Each calls fn for every (id, value) pair. Iteration order is
// unspecified; callers must not depend on it. fn may not mutate the
// repository.
func (r *Repository[T]) Each(fn func(id ids.EntityID, value T)) {
	for id, v := range r.values {
		fn(id, v)
	}
}

// Ids returns a snapshot slice of every entity id present, safe to
// range over while mutating the repository through Update/Remove.
func (r *Repository[T]) Ids() []ids.EntityID {
	out := make([]ids.EntityID, 0, len(r.values))
	for id := range r.values {
		out = append(out, id)
	}
	return out
}
