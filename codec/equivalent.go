// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the otioframe project

package codec

import (
	"fmt"

	"github.com/rkoesters/otioframe/dynval"
	"github.com/rkoesters/otioframe/internal/jsonenc"
	"github.com/rkoesters/otioframe/object"
	"github.com/rkoesters/otioframe/registry"
)

// tree stages obj through a dictSink: the same pending/completed/ref
// bookkeeping writeNode applies when rendering JSON, but collecting into a
// dynval.Value tree instead of bytes. No downgrade manifest is consulted,
// since Clone and Equivalent both operate in terms of obj's own current
// schema versions.
func tree(obj object.SerializableObject) (dynval.Value, error) {
	w, ok := obj.(writable)
	if !ok {
		return dynval.Value{}, registry.NewErrorWithSubject(registry.KindMalformedSchema,
			"codec: object does not implement the writer's serializable contract", fmt.Sprintf("%T", obj))
	}
	ds := newDictSink()
	if err := newWriteState().writeNode(ds, w); err != nil {
		return dynval.Value{}, err
	}
	return ds.Value(), nil
}

// Clone returns a deep copy of obj: obj is staged into a dynval.Value tree
// via the cloning sink, rendered to wire JSON (a tree with no Retained
// values left in it is a trivial, non-failing thing to render), and handed
// to Unmarshal to rehydrate fresh entities. This keeps Clone going through
// the same entity-construction and forward-reference resolution path a
// read from disk would, while the staging step itself never touches JSON
// text.
func Clone(obj object.SerializableObject) (object.SerializableObject, error) {
	v, err := tree(obj)
	if err != nil {
		return nil, err
	}
	enc := jsonenc.NewEncoder()
	renderValue(enc, v)
	return Unmarshal(enc.Bytes())
}

// Equivalent reports whether a and b are componentwise equal: same schema,
// same fields, same children in the same order, including matching
// instancing structure (two slots sharing one object on one side must
// share an equivalent object on the other). Unlike a byte comparison of two
// Marshal outputs, this never depends on map iteration order or on ref-id
// assignment differing between otherwise-identical graphs, and floats
// compare with Go's native float64 ==, so two NaNs are never equivalent
// just as they are never equal.
func Equivalent(a, b object.SerializableObject) (bool, error) {
	va, err := tree(a)
	if err != nil {
		return false, err
	}
	vb, err := tree(b)
	if err != nil {
		return false, err
	}
	return va.Equal(vb), nil
}

// renderValue writes a dynval.Value tree produced by the cloning sink to
// s. It is simpler than writeValue: a tree coming out of dictSink has
// already had every entity resolved into a nested Dict (for a
// re-encountered instance, the Dict of its SerializableObjectRef.1 record),
// so there is never a
// Retained value left to dispatch through the type registry, and no error
// this renderer could report.
func renderValue(s sink, v dynval.Value) {
	switch v.Kind() {
	case dynval.KindNull:
		s.WriteNull()
	case dynval.KindBool:
		b, _ := v.AsBool()
		s.WriteBool(b)
	case dynval.KindInt64:
		i, _ := v.AsInt64()
		s.WriteInt64(i)
	case dynval.KindFloat64:
		f, _ := v.AsFloat64()
		s.WriteFloat64(f)
	case dynval.KindString:
		str, _ := v.AsString()
		s.WriteQuotedString(str)
	case dynval.KindRationalTime:
		rt, _ := v.AsRationalTime()
		writeRationalTime(s, rt)
	case dynval.KindTimeRange:
		tr, _ := v.AsTimeRange()
		writeTimeRange(s, tr)
	case dynval.KindTimeTransform:
		tx, _ := v.AsTimeTransform()
		writeTimeTransform(s, tx)
	case dynval.KindV2d:
		p, _ := v.AsV2d()
		writeV2d(s, p)
	case dynval.KindBox2d:
		b, _ := v.AsBox2d()
		writeBox2d(s, b)
	case dynval.KindObjectRef:
		ref, _ := v.AsObjectRef()
		s.BeginObject()
		s.WriteStringField("OTIO_SCHEMA", "SerializableObjectRef.1")
		s.WriteStringField("id", ref.SchemaName+"-"+ref.ID)
		s.EndObject()
	case dynval.KindArray:
		a, _ := v.AsArray()
		s.BeginArray()
		for i := 0; i < a.Len(); i++ {
			if i > 0 {
				s.WriteComma()
			}
			elem, _ := a.At(i)
			renderValue(s, elem)
		}
		s.EndArray()
	case dynval.KindDict:
		d, _ := v.AsDict()
		renderDict(s, d)
	default:
		s.WriteNull()
	}
}

func renderDict(s sink, d *dynval.OrderedDict) {
	s.BeginObject()
	if d != nil {
		for _, k := range d.Keys() {
			val, _ := d.Get(k)
			s.WriteKey(k)
			renderValue(s, val)
		}
	}
	s.EndObject()
}
