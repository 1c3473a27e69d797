// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the otioframe project

// Package object implements the reference-counted Object base that every
// entity in the composition graph embeds, the generic Retainer smart
// handle, and the weak (non-owning) parent back-reference used by
// composition children.
package object

import (
	"sync/atomic"

	"github.com/rkoesters/otioframe/dynval"
)

// DebugAssertions is a switch for internal consistency checks that a
// well-typed caller cannot trip (double-release, detach of an unparented
// node). It defaults to false. No code in this module reads it, so setting
// it has no effect.
var DebugAssertions = false

// Object is the base every serializable entity embeds. It carries an
// intrusive reference count. The count is atomic only for symmetry with
// Retainer's move-safety requirement — the object graph itself is used
// single-threaded, per the core's concurrency model.
type Object struct {
	refs int32
}

// Retain increments the reference count and returns the new count.
func (o *Object) Retain() int32 {
	return atomic.AddInt32(&o.refs, 1)
}

// Release decrements the reference count and returns the new count. It is
// the caller's responsibility to stop using the object once the count
// reaches zero.
func (o *Object) Release() int32 {
	return atomic.AddInt32(&o.refs, -1)
}

// RefCount returns the current reference count.
func (o *Object) RefCount() int32 {
	return atomic.LoadInt32(&o.refs)
}

// SerializableObject is implemented by every entity that carries a schema
// record and a metadata dictionary.
type SerializableObject interface {
	// SchemaName returns the registered schema family name, e.g. "Clip".
	SchemaName() string

	// SchemaVersion returns the object's current schema version.
	SchemaVersion() int
}

// SerializableObjectWithMetadata adds an owned metadata dictionary on top
// of SerializableObject.
type SerializableObjectWithMetadata interface {
	SerializableObject
	Metadata() *dynval.OrderedDict
}
