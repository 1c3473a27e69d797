// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the otioframe project

// Package codec implements the Writer (dynval.Value tree to wire JSON),
// Reader (wire JSON to a timeline entity), and the Equivalent/Clone
// operations built on top of them. It is the only package that needs to
// know both dynval's wire representation and every concrete timeline
// schema, so the per-type dispatch that would otherwise be spread across
// encode_*.go/decode_*.go files per package lives here instead.
package codec

import (
	"github.com/rkoesters/otioframe/dynval"
	"github.com/rkoesters/otioframe/rtime"
)

// writeValue renders a dynval.Value to s. RationalTime, TimeRange,
// TimeTransform, V2d, and Box2d are written as small tagged objects
// carrying their own OTIO_SCHEMA, matching the built-in value schemas
// ("RationalTime.1", "TimeRange.1", ...) the wire format defines alongside
// entity schemas. A Retained handle is routed back through writeNode, so
// an entity reached via metadata or any other generic value position gets
// the same pending/instancing/cycle treatment as a structural child.
func (st *writeState) writeValue(s sink, v dynval.Value) error {
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
	case dynval.KindRetained:
		r, _ := v.AsRetained()
		obj, ok := r.(writable)
		if !ok {
			s.WriteNull()
			return nil
		}
		return st.writeNode(s, obj)
	case dynval.KindArray:
		a, _ := v.AsArray()
		s.BeginArray()
		for i := 0; i < a.Len(); i++ {
			if i > 0 {
				s.WriteComma()
			}
			elem, _ := a.At(i)
			if err := st.writeValue(s, elem); err != nil {
				return err
			}
		}
		s.EndArray()
	case dynval.KindDict:
		d, _ := v.AsDict()
		return st.writeDict(s, d)
	default:
		s.WriteNull()
	}
	return nil
}

func (st *writeState) writeDict(s sink, d *dynval.OrderedDict) error {
	s.BeginObject()
	if d != nil {
		for _, k := range d.Keys() {
			val, _ := d.Get(k)
			s.WriteKey(k)
			if err := st.writeValue(s, val); err != nil {
				return err
			}
		}
	}
	s.EndObject()
	return nil
}

func writeRationalTime(s sink, t rtime.RationalTime) {
	s.BeginObject()
	s.WriteStringField("OTIO_SCHEMA", "RationalTime.1")
	s.WriteFloat64Field("value", t.Value)
	s.WriteFloat64Field("rate", t.Rate)
	s.EndObject()
}

func writeTimeRange(s sink, r rtime.TimeRange) {
	s.BeginObject()
	s.WriteStringField("OTIO_SCHEMA", "TimeRange.1")
	s.WriteKey("start_time")
	writeRationalTime(s, r.StartTime)
	s.WriteKey("duration")
	writeRationalTime(s, r.Duration)
	s.EndObject()
}

func writeTimeTransform(s sink, x rtime.TimeTransform) {
	s.BeginObject()
	s.WriteStringField("OTIO_SCHEMA", "TimeTransform.1")
	s.WriteKey("offset")
	writeRationalTime(s, x.Offset)
	s.WriteFloat64Field("scale", x.Scale)
	s.WriteFloat64Field("rate", x.Rate)
	s.EndObject()
}

func writeV2d(s sink, p dynval.V2d) {
	s.BeginObject()
	s.WriteStringField("OTIO_SCHEMA", "V2d.1")
	s.WriteFloat64Field("x", p.X)
	s.WriteFloat64Field("y", p.Y)
	s.EndObject()
}

func writeBox2d(s sink, b dynval.Box2d) {
	s.BeginObject()
	s.WriteStringField("OTIO_SCHEMA", "Box2d.1")
	s.WriteKey("min")
	writeV2d(s, b.Min)
	s.WriteKey("max")
	writeV2d(s, b.Max)
	s.EndObject()
}
