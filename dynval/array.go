// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the otioframe project

package dynval

import "github.com/rkoesters/otioframe/registry"

// Array is an insertion-ordered sequence of dynamic values. Every
// structural mutation (Append, Insert, Remove, Clear) bumps a mutation
// stamp; iterators created before a mutation fail with IteratorInvalidated
// on their next Next() call rather than silently observing stale state.
type Array struct {
	values []Value
	stamp  uint64
}

// NewArray returns an empty Array.
func NewArray() *Array {
	return &Array{}
}

// Len returns the number of elements.
func (a *Array) Len() int {
	if a == nil {
		return 0
	}
	return len(a.values)
}

// At returns the element at index i.
func (a *Array) At(i int) (Value, error) {
	if i < 0 || i >= len(a.values) {
		return Value{}, registry.NewError(registry.KindIllegalIndex, "array index out of range")
	}
	return a.values[i], nil
}

// Append adds v to the end of the array.
func (a *Array) Append(v Value) {
	a.values = append(a.values, v)
	a.stamp++
}

// Insert places v at index i, shifting subsequent elements right.
func (a *Array) Insert(i int, v Value) error {
	if i < 0 || i > len(a.values) {
		return registry.NewError(registry.KindIllegalIndex, "array insert index out of range")
	}
	a.values = append(a.values, Value{})
	copy(a.values[i+1:], a.values[i:])
	a.values[i] = v
	a.stamp++
	return nil
}

// Remove deletes the element at index i.
func (a *Array) Remove(i int) error {
	if i < 0 || i >= len(a.values) {
		return registry.NewError(registry.KindIllegalIndex, "array remove index out of range")
	}
	a.values = append(a.values[:i], a.values[i+1:]...)
	a.stamp++
	return nil
}

// Clear empties the array.
func (a *Array) Clear() {
	a.values = nil
	a.stamp++
}

// Values returns a snapshot slice of the array's contents. Mutating the
// returned slice does not affect the array.
func (a *Array) Values() []Value {
	out := make([]Value, len(a.values))
	copy(out, a.values)
	return out
}

// Clone returns a deep copy of a.
func (a *Array) Clone() *Array {
	if a == nil {
		return nil
	}
	out := NewArray()
	for _, v := range a.values {
		out.Append(v.Clone())
	}
	return out
}

func (a *Array) equal(other *Array) bool {
	if a == nil || other == nil {
		return a == other
	}
	if len(a.values) != len(other.values) {
		return false
	}
	for i, v := range a.values {
		if !v.Equal(other.values[i]) {
			return false
		}
	}
	return true
}

// ArrayIterator walks an Array's elements in order, failing safely if the
// array is mutated while iteration is outstanding.
type ArrayIterator struct {
	array *Array
	stamp uint64
	index int
}

// Iterator returns a new ArrayIterator positioned before the first element.
func (a *Array) Iterator() *ArrayIterator {
	return &ArrayIterator{array: a, stamp: a.stamp, index: -1}
}

// Next advances the iterator and returns the element now at its position,
// or ok=false once exhausted. It fails with IteratorInvalidated if the
// array was mutated since the iterator (or its last successful Next) was
// taken.
func (it *ArrayIterator) Next() (Value, bool, error) {
	if it.stamp != it.array.stamp {
		return Value{}, false, registry.NewError(registry.KindIteratorInvalidated,
			"array was mutated since this iterator was created")
	}
	it.index++
	if it.index >= len(it.array.values) {
		return Value{}, false, nil
	}
	return it.array.values[it.index], true, nil
}
