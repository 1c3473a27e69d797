// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the otioframe project

// Package timeline implements the composition object graph: Composable,
// Item, Composition, and their concrete leaves (Track, Stack, Clip, Gap,
// Transition, Effect, Marker, MediaReference variants), with the
// parent/child and ownership invariants described for the core's data
// model.
package timeline

import (
	"github.com/rkoesters/otioframe/dynval"
	"github.com/rkoesters/otioframe/object"
	"github.com/rkoesters/otioframe/registry"
	"github.com/rkoesters/otioframe/rtime"
)

// Composable is any entity that can be a child of a Composition: it has a
// name, an owned metadata dictionary, and a (weak) parent back-reference.
type Composable interface {
	object.Retaining
	object.SerializableObjectWithMetadata

	Name() string
	SetName(name string)

	// Parent returns the owning Composition, or nil if unparented.
	Parent() Composition
	// ClearParent implements object.Parented.
	ClearParent()

	// Duration returns the entity's own duration.
	Duration() (rtime.RationalTime, error)

	// Visible reports whether the entity occupies time in its parent.
	Visible() bool
	// Overlapping reports whether the entity is a transition-like overlap.
	Overlapping() bool

	// Self returns the outermost interface value for this entity,
	// enabling dynamic dispatch from Base methods to concrete overrides.
	Self() Composable
}

// ComposableBase is the shared base of every Composable concrete type. It
// owns the name/metadata pair, the intrusive refcount (via object.Object),
// and the weak parent back-reference.
type ComposableBase struct {
	object.Object

	name     string
	metadata *dynval.OrderedDict
	parent   object.WeakParent[Composition]
	self     Composable
}

// NewComposableBase constructs a ComposableBase. A nil metadata argument
// is replaced with a fresh empty dictionary.
func NewComposableBase(name string, metadata *dynval.OrderedDict) ComposableBase {
	if metadata == nil {
		metadata = dynval.NewOrderedDict()
	}
	return ComposableBase{name: name, metadata: metadata}
}

func (c *ComposableBase) Name() string            { return c.name }
func (c *ComposableBase) SetName(name string)     { c.name = name }
func (c *ComposableBase) Metadata() *dynval.OrderedDict { return c.metadata }

// Parent returns the current parent composition, or nil.
func (c *ComposableBase) Parent() Composition {
	p, ok := c.parent.Get()
	if !ok {
		return nil
	}
	return p
}

// setParent records parent as the non-owning back-reference. Unexported:
// only a Composition's child-management methods may reparent a Composable.
func (c *ComposableBase) setParent(parent Composition) {
	c.parent.Set(parent)
}

// ClearParent implements object.Parented.
func (c *ComposableBase) ClearParent() {
	c.parent.Clear()
}

// Visible defaults to true; Transition overrides this to false.
func (c *ComposableBase) Visible() bool { return true }

// Overlapping defaults to false; Transition overrides this to true.
func (c *ComposableBase) Overlapping() bool { return false }

// Self returns the dynamic-dispatch handle set by the concrete
// constructor via SetSelf.
func (c *ComposableBase) Self() Composable { return c.self }

// SetSelf must be called by every concrete constructor immediately after
// construction so that Base methods can dispatch to type-specific
// overrides (AvailableRange, Duration, etc.) the way the composition
// graph's traversal code expects.
func (c *ComposableBase) SetSelf(self Composable) { c.self = self }

// ErrNotFound is returned when a child lookup fails to find the needle.
var ErrNotFound = registry.NewError(registry.KindKeyNotFound, "child not found")
