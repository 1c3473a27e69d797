// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the otioframe project

// Package dynval implements the dynamic value model: a closed tagged sum
// type carrying every shape the serialization engine needs to move across
// the JSON boundary, plus insertion-ordered containers with mutation-stamp
// iterator invalidation.
package dynval

import (
	"fmt"

	"github.com/rkoesters/otioframe/rtime"
)

// Kind identifies which variant of a Value is populated.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt64
	KindFloat64
	KindString
	KindRationalTime
	KindTimeRange
	KindTimeTransform
	KindV2d
	KindBox2d
	KindObjectRef
	KindRetained
	KindArray
	KindDict
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindBool:
		return "Bool"
	case KindInt64:
		return "Int64"
	case KindFloat64:
		return "Float64"
	case KindString:
		return "String"
	case KindRationalTime:
		return "RationalTime"
	case KindTimeRange:
		return "TimeRange"
	case KindTimeTransform:
		return "TimeTransform"
	case KindV2d:
		return "V2d"
	case KindBox2d:
		return "Box2d"
	case KindObjectRef:
		return "ObjectRef"
	case KindRetained:
		return "Retained"
	case KindArray:
		return "Array"
	case KindDict:
		return "Dict"
	default:
		return "Unknown"
	}
}

// V2d is a 2D point, the "V2d.1" built-in shape.
type V2d struct {
	X, Y float64
}

// Box2d is an axis-aligned 2D box, the "Box2d.1" built-in shape.
type Box2d struct {
	Min, Max V2d
}

// ObjectRef identifies a serializable object by schema family and a
// per-write reference id ("<schema_name>-<n>"), as carried by the
// SerializableObjectRef.1 wire record.
type ObjectRef struct {
	SchemaName string
	ID         string
}

// Retainable is implemented by anything a Value can hold a strong handle
// to. It is intentionally open (unlike the rest of this sum type) because
// the set of entity schemas is extensible at runtime via the type registry.
type Retainable interface {
	SchemaName() string
}

// Value is a tagged union of every shape the serialization engine moves
// across the JSON boundary. It is a closed sum type represented as a
// struct with a discriminant rather than `any`, so that code handling it
// is a switch over a small enum instead of a type switch over interfaces.
type Value struct {
	kind Kind

	b  bool
	i  int64
	f  float64
	s  string
	rt rtime.RationalTime
	tr rtime.TimeRange
	tx rtime.TimeTransform
	v2 V2d
	bx Box2d
	or ObjectRef
	rv Retainable
	ar *Array
	dc *OrderedDict
}

// Null returns the null Value.
func Null() Value { return Value{kind: KindNull} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int64 wraps a signed 64-bit integer.
func Int64(i int64) Value { return Value{kind: KindInt64, i: i} }

// Float64 wraps a double.
func Float64(f float64) Value { return Value{kind: KindFloat64, f: f} }

// String wraps a string.
func String(s string) Value { return Value{kind: KindString, s: s} }

// RationalTimeValue wraps a rtime.RationalTime.
func RationalTimeValue(t rtime.RationalTime) Value { return Value{kind: KindRationalTime, rt: t} }

// TimeRangeValue wraps a rtime.TimeRange.
func TimeRangeValue(r rtime.TimeRange) Value { return Value{kind: KindTimeRange, tr: r} }

// TimeTransformValue wraps a rtime.TimeTransform.
func TimeTransformValue(x rtime.TimeTransform) Value { return Value{kind: KindTimeTransform, tx: x} }

// V2dValue wraps a V2d.
func V2dValue(v V2d) Value { return Value{kind: KindV2d, v2: v} }

// Box2dValue wraps a Box2d.
func Box2dValue(b Box2d) Value { return Value{kind: KindBox2d, bx: b} }

// ObjectRefValue wraps an ObjectRef (a SerializableObjectRef.1 record).
func ObjectRefValue(ref ObjectRef) Value { return Value{kind: KindObjectRef, or: ref} }

// Retained wraps a strong handle to a serializable entity.
func Retained(r Retainable) Value { return Value{kind: KindRetained, rv: r} }

// ArrayValue wraps an *Array.
func ArrayValue(a *Array) Value { return Value{kind: KindArray, ar: a} }

// DictValue wraps an *OrderedDict.
func DictValue(d *OrderedDict) Value { return Value{kind: KindDict, dc: d} }

// Kind returns which variant is populated.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the null variant.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBool returns the boolean payload and whether v held one.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsInt64 returns the int64 payload and whether v held one.
func (v Value) AsInt64() (int64, bool) { return v.i, v.kind == KindInt64 }

// AsFloat64 returns the float64 payload and whether v held one.
func (v Value) AsFloat64() (float64, bool) { return v.f, v.kind == KindFloat64 }

// AsString returns the string payload and whether v held one.
func (v Value) AsString() (string, bool) { return v.s, v.kind == KindString }

// AsRationalTime returns the RationalTime payload and whether v held one.
func (v Value) AsRationalTime() (rtime.RationalTime, bool) { return v.rt, v.kind == KindRationalTime }

// AsTimeRange returns the TimeRange payload and whether v held one.
func (v Value) AsTimeRange() (rtime.TimeRange, bool) { return v.tr, v.kind == KindTimeRange }

// AsTimeTransform returns the TimeTransform payload and whether v held one.
func (v Value) AsTimeTransform() (rtime.TimeTransform, bool) {
	return v.tx, v.kind == KindTimeTransform
}

// AsV2d returns the V2d payload and whether v held one.
func (v Value) AsV2d() (V2d, bool) { return v.v2, v.kind == KindV2d }

// AsBox2d returns the Box2d payload and whether v held one.
func (v Value) AsBox2d() (Box2d, bool) { return v.bx, v.kind == KindBox2d }

// AsObjectRef returns the ObjectRef payload and whether v held one.
func (v Value) AsObjectRef() (ObjectRef, bool) { return v.or, v.kind == KindObjectRef }

// AsRetained returns the retained handle and whether v held one.
func (v Value) AsRetained() (Retainable, bool) { return v.rv, v.kind == KindRetained }

// AsArray returns the *Array payload and whether v held one.
func (v Value) AsArray() (*Array, bool) { return v.ar, v.kind == KindArray }

// AsDict returns the *OrderedDict payload and whether v held one.
func (v Value) AsDict() (*OrderedDict, bool) { return v.dc, v.kind == KindDict }

// String renders a diagnostic form of v; it is not the wire encoding.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return fmt.Sprintf("%v", v.b)
	case KindInt64:
		return fmt.Sprintf("%d", v.i)
	case KindFloat64:
		return fmt.Sprintf("%g", v.f)
	case KindString:
		return fmt.Sprintf("%q", v.s)
	case KindRationalTime:
		return v.rt.String()
	case KindTimeRange:
		return v.tr.String()
	case KindTimeTransform:
		return v.tx.String()
	case KindV2d:
		return fmt.Sprintf("V2d(%g, %g)", v.v2.X, v.v2.Y)
	case KindBox2d:
		return fmt.Sprintf("Box2d(%v, %v)", v.bx.Min, v.bx.Max)
	case KindObjectRef:
		return fmt.Sprintf("ObjectRef(%s, %s)", v.or.SchemaName, v.or.ID)
	case KindRetained:
		if v.rv == nil {
			return "Retained(nil)"
		}
		return fmt.Sprintf("Retained(%s)", v.rv.SchemaName())
	case KindArray:
		return fmt.Sprintf("Array(len=%d)", v.ar.Len())
	case KindDict:
		return fmt.Sprintf("Dict(len=%d)", v.dc.Len())
	default:
		return "<invalid value>"
	}
}

// Clone returns a deep copy of v: nested Array/OrderedDict payloads are
// copied recursively so mutating the clone never affects v. A Retained
// handle is copied by reference, matching the metadata dictionary's role
// as a bag of plain values rather than an owner of entity graphs.
func (v Value) Clone() Value {
	switch v.kind {
	case KindArray:
		v.ar = v.ar.Clone()
	case KindDict:
		v.dc = v.dc.Clone()
	}
	return v
}

// Equal reports structural equality between two values, recursing through
// arrays and dictionaries. Retained handles compare by identity of the
// underlying entity's schema-qualified nature is left to the codec
// package's round-trip equality; here two Retained values are equal only
// if they wrap the identical Retainable.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindInt64:
		return v.i == other.i
	case KindFloat64:
		return v.f == other.f
	case KindString:
		return v.s == other.s
	case KindRationalTime:
		return v.rt.Equal(other.rt)
	case KindTimeRange:
		return v.tr.Equal(other.tr)
	case KindTimeTransform:
		return v.tx.Equal(other.tx)
	case KindV2d:
		return v.v2 == other.v2
	case KindBox2d:
		return v.bx == other.bx
	case KindObjectRef:
		return v.or == other.or
	case KindRetained:
		return v.rv == other.rv
	case KindArray:
		return v.ar.equal(other.ar)
	case KindDict:
		return v.dc.equal(other.dc)
	default:
		return false
	}
}
