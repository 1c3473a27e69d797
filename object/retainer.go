// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the otioframe project

package object

// Retaining is implemented by any entity whose lifetime is managed through
// an embedded Object.
type Retaining interface {
	Retain() int32
	Release() int32
	RefCount() int32
}

// Retainer is a strong, move-safe handle to a serializable entity: taking
// one increments the entity's reference count, releasing it decrements.
// The zero value is an empty Retainer holding nothing.
type Retainer[T Retaining] struct {
	value T
	held  bool
}

// NewRetainer constructs an empty Retainer.
func NewRetainer[T Retaining]() Retainer[T] {
	return Retainer[T]{}
}

// Take wraps value in a Retainer, incrementing its reference count. Taking
// a Retainer on the zero value of T is a programmer error and is not
// guarded against here; callers pass already-constructed entities.
func Take[T Retaining](value T) Retainer[T] {
	value.Retain()
	return Retainer[T]{value: value, held: true}
}

// Value returns the held entity, or the zero value if the Retainer is
// empty.
func (r Retainer[T]) Value() T {
	return r.value
}

// IsEmpty reports whether the Retainer holds nothing.
func (r Retainer[T]) IsEmpty() bool {
	return !r.held
}

// Release drops the held entity, decrementing its reference count and
// returning the Retainer to empty. Releasing an empty Retainer is a no-op.
func (r *Retainer[T]) Release() {
	if !r.held {
		return
	}
	r.value.Release()
	var zero T
	r.value = zero
	r.held = false
}

// Reset replaces the held entity with a new one, releasing the old one
// first (matching move-assignment semantics: the old reference is always
// dropped, even when reassigning to the same value).
func (r *Retainer[T]) Reset(value T) {
	r.Release()
	value.Retain()
	r.value = value
	r.held = true
}

// WeakParent holds a non-owning back-reference to a composition parent.
// It never participates in reference counting and is cleared on detach.
type WeakParent[T any] struct {
	value T
	set   bool
}

// Set records parent as the non-owning back-reference.
func (w *WeakParent[T]) Set(parent T) {
	w.value = parent
	w.set = true
}

// Clear removes the back-reference, leaving the WeakParent empty.
func (w *WeakParent[T]) Clear() {
	var zero T
	w.value = zero
	w.set = false
}

// Get returns the referenced parent and whether one is set.
func (w *WeakParent[T]) Get() (T, bool) {
	return w.value, w.set
}
