// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the otioframe project

package timeline

import (
	"github.com/rkoesters/otioframe/dynval"
	"github.com/rkoesters/otioframe/object"
	"github.com/rkoesters/otioframe/registry"
	"github.com/rkoesters/otioframe/rtime"
)

// Composition is an Item that owns an ordered list of child Composables.
type Composition interface {
	Item

	CompositionKind() string

	Children() []Composable
	ClearChildren()
	InsertChild(index int, child Composable) error
	SetChild(index int, child Composable) error
	RemoveChild(index int) error
	AppendChild(child Composable) error
	IndexOfChild(child Composable) (int, error)
	HasChild(child Composable) bool

	RangeOfChild(child Composable) (rtime.TimeRange, error)
	RangeOfChildAtIndex(index int) (rtime.TimeRange, error)
	TrimmedRangeOfChildAtIndex(index int) (rtime.TimeRange, error)
}

// CompositionBase is the shared base of Track and Stack. Children are held
// by strong Retainer handles; the Composable's own weak parent
// back-reference is set to the owning Composition (via Self()) on insert
// and cleared on removal.
type CompositionBase struct {
	ItemBase
	children []object.Retainer[Composable]
}

// NewCompositionBase constructs a CompositionBase.
func NewCompositionBase(name string, sourceRange *rtime.TimeRange, metadata *dynval.OrderedDict, effects []Effect, markers []*Marker, color *Color) CompositionBase {
	return CompositionBase{
		ItemBase: NewItemBase(name, sourceRange, metadata, effects, markers, true, color),
	}
}

// CompositionKind identifies the concrete kind for diagnostics; concrete
// types (Track, Stack) override it.
func (c *CompositionBase) CompositionKind() string { return "Composition" }

// SchemaName and SchemaVersion complete the Composition interface for a
// bare CompositionBase; Track and Stack override both.
func (c *CompositionBase) SchemaName() string { return "Composition" }
func (c *CompositionBase) SchemaVersion() int { return 1 }

// Children returns the current ordered list of children.
func (c *CompositionBase) Children() []Composable {
	out := make([]Composable, len(c.children))
	for i, r := range c.children {
		out[i] = r.Value()
	}
	return out
}

// ClearChildren detaches and releases every child.
func (c *CompositionBase) ClearChildren() {
	for i := range c.children {
		c.children[i].Value().ClearParent()
		c.children[i].Release()
	}
	c.children = nil
}

// compositionSelf returns c.Self() cast to Composition, falling back to c
// itself if no concrete constructor has called SetSelf yet.
func (c *CompositionBase) compositionSelf() Composition {
	if self, ok := c.Self().(Composition); ok {
		return self
	}
	return c
}

// InsertChild inserts child at index, detaching it from any prior parent
// first.
func (c *CompositionBase) InsertChild(index int, child Composable) error {
	if index < 0 || index > len(c.children) {
		return registry.NewError(registry.KindIllegalIndex, "composition child insert index out of range")
	}
	if prior := child.Parent(); prior != nil {
		if i, err := prior.IndexOfChild(child); err == nil {
			if prior == c.compositionSelf() && i < index {
				index--
			}
			if err := prior.RemoveChild(i); err != nil {
				return err
			}
		}
	}
	object.DetachFromParent(child)
	r := object.Take[Composable](child)
	c.children = append(c.children, object.Retainer[Composable]{})
	copy(c.children[index+1:], c.children[index:])
	c.children[index] = r
	setComposableParent(child, c.compositionSelf())
	return nil
}

// AppendChild appends child after the last existing child.
func (c *CompositionBase) AppendChild(child Composable) error {
	return c.InsertChild(len(c.children), child)
}

// SetChild replaces the child at index, releasing the old one.
func (c *CompositionBase) SetChild(index int, child Composable) error {
	if index < 0 || index >= len(c.children) {
		return registry.NewError(registry.KindIllegalIndex, "composition child set index out of range")
	}
	c.children[index].Value().ClearParent()
	c.children[index].Release()
	object.DetachFromParent(child)
	c.children[index] = object.Take[Composable](child)
	setComposableParent(child, c.compositionSelf())
	return nil
}

// RemoveChild removes and releases the child at index.
func (c *CompositionBase) RemoveChild(index int) error {
	if index < 0 || index >= len(c.children) {
		return registry.NewError(registry.KindIllegalIndex, "composition child remove index out of range")
	}
	c.children[index].Value().ClearParent()
	c.children[index].Release()
	c.children = append(c.children[:index], c.children[index+1:]...)
	return nil
}

// IndexOfChild returns the index of child by identity, or ErrNotFound.
func (c *CompositionBase) IndexOfChild(child Composable) (int, error) {
	for i, r := range c.children {
		if r.Value() == child {
			return i, nil
		}
	}
	return -1, ErrNotFound
}

// HasChild reports whether child is a direct child of c.
func (c *CompositionBase) HasChild(child Composable) bool {
	_, err := c.IndexOfChild(child)
	return err == nil
}

// RangeOfChild returns the range of child within this composition,
// dispatching to self's (possibly overridden) RangeOfChildAtIndex.
func (c *CompositionBase) RangeOfChild(child Composable) (rtime.TimeRange, error) {
	idx, err := c.IndexOfChild(child)
	if err != nil {
		return rtime.TimeRange{}, err
	}
	return c.compositionSelf().RangeOfChildAtIndex(idx)
}

// RangeOfChildAtIndex computes the range of the child at index assuming
// children are laid out one after another — the Track policy. Stack
// overrides this entirely to give every child the same [0, duration)
// range.
func (c *CompositionBase) RangeOfChildAtIndex(index int) (rtime.TimeRange, error) {
	if index < 0 || index >= len(c.children) {
		return rtime.TimeRange{}, registry.NewError(registry.KindIllegalIndex, "composition child index out of range")
	}
	var start rtime.RationalTime
	for i := 0; i < index; i++ {
		dur, err := c.children[i].Value().Duration()
		if err != nil {
			return rtime.TimeRange{}, err
		}
		start = start.Add(dur)
	}
	dur, err := c.children[index].Value().Duration()
	if err != nil {
		return rtime.TimeRange{}, err
	}
	return rtime.NewTimeRange(start, dur), nil
}

// TrimmedRangeOfChildAtIndex clamps RangeOfChildAtIndex to this
// composition's own source range, if any.
func (c *CompositionBase) TrimmedRangeOfChildAtIndex(index int) (rtime.TimeRange, error) {
	r, err := c.compositionSelf().RangeOfChildAtIndex(index)
	if err != nil {
		return rtime.TimeRange{}, err
	}
	if c.sourceRange == nil {
		return r, nil
	}
	return c.sourceRange.ClampedRange(r, rtime.BoundPolicy{Low: rtime.Clamp, High: rtime.Clamp}), nil
}

// Duration returns the composition's source range duration if set,
// otherwise the sum of its children's durations.
func (c *CompositionBase) Duration() (rtime.RationalTime, error) {
	if c.sourceRange != nil {
		return c.sourceRange.Duration, nil
	}
	return c.computedDuration()
}

// computedDuration sums the durations of every child.
func (c *CompositionBase) computedDuration() (rtime.RationalTime, error) {
	var total rtime.RationalTime
	for _, r := range c.children {
		dur, err := r.Value().Duration()
		if err != nil {
			return rtime.RationalTime{}, err
		}
		total = total.Add(dur)
	}
	return total, nil
}

// AvailableRange for a generic composition is [0, sum of child durations).
func (c *CompositionBase) AvailableRange() (rtime.TimeRange, error) {
	dur, err := c.computedDuration()
	if err != nil {
		return rtime.TimeRange{}, err
	}
	return rtime.NewTimeRange(rtime.RationalTime{}, dur), nil
}

// readCompositionFrom populates c's item-level fields from dict; children
// are attached separately by the codec Reader via AppendChild once the
// nested child dictionaries have been resolved through the type registry.
func readCompositionFrom(c *CompositionBase, dict *dynval.OrderedDict) error {
	return readItemFrom(&c.ItemBase, dict)
}

// setComposableParent sets child's weak parent back-reference. It is a
// small helper (rather than a method on Composable) because only
// CompositionBase is allowed to reparent children.
func setComposableParent(child Composable, parent Composition) {
	switch c := child.(type) {
	case interface{ setParent(Composition) }:
		c.setParent(parent)
	}
}
