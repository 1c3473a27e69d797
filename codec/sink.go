// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the otioframe project

package codec

import "github.com/rkoesters/otioframe/dynval"

// sink is the token-level interface both of the Writer's destinations
// implement: *jsonenc.Encoder, which renders tokens straight to wire JSON,
// and *dictSink, which collects the same token stream into a dynval.Value
// tree instead. Every write* function in this package is written once
// against sink and gets both destinations for free — the dict-building
// path is what backs downgrade staging, Clone, and Equivalent.
type sink interface {
	BeginObject()
	EndObject()
	BeginArray()
	EndArray()
	WriteComma()
	WriteKey(key string)
	WriteNull()
	WriteBool(v bool)
	WriteInt64(v int64)
	WriteFloat64(v float64)
	WriteQuotedString(s string)
	WriteStringField(key, value string)
	WriteBoolField(key string, value bool)
	WriteInt64Field(key string, value int64)
	WriteFloat64Field(key string, value float64)
	WriteNullField(key string)
}

// dictFrame is one level of dictSink's open-object/open-array stack.
type dictFrame struct {
	isArray bool
	dict    *dynval.OrderedDict
	arr     *dynval.Array
	key     string
}

// dictSink builds a dynval.Value tree from the same token calls the JSON
// encoder accepts, rather than producing bytes. It is the concrete
// implementation of the cloning sink described in spec.md: anywhere the
// Writer would otherwise open an object and fill in fields, a dictSink
// assembles an OrderedDict instead, entities and all, so the result can be
// downgraded, rehydrated into fresh objects, or compared componentwise
// without ever touching JSON text.
type dictSink struct {
	stack []*dictFrame
	root  dynval.Value
}

func newDictSink() *dictSink {
	return &dictSink{}
}

// Value returns the completed tree. Valid only once every BeginObject/
// BeginArray opened on s has a matching End call.
func (s *dictSink) Value() dynval.Value { return s.root }

func (s *dictSink) top() *dictFrame {
	if len(s.stack) == 0 {
		return nil
	}
	return s.stack[len(s.stack)-1]
}

func (s *dictSink) emit(v dynval.Value) {
	f := s.top()
	if f == nil {
		s.root = v
		return
	}
	if f.isArray {
		f.arr.Append(v)
		return
	}
	f.dict.Set(f.key, v)
	f.key = ""
}

func (s *dictSink) BeginObject() {
	s.stack = append(s.stack, &dictFrame{dict: dynval.NewOrderedDict()})
}

func (s *dictSink) EndObject() {
	f := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	s.emit(dynval.DictValue(f.dict))
}

func (s *dictSink) BeginArray() {
	s.stack = append(s.stack, &dictFrame{isArray: true, arr: dynval.NewArray()})
}

func (s *dictSink) EndArray() {
	f := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	s.emit(dynval.ArrayValue(f.arr))
}

// WriteComma is a no-op: OrderedDict and Array hold their elements directly,
// with no textual separator to track.
func (s *dictSink) WriteComma() {}

func (s *dictSink) WriteKey(key string) { s.top().key = key }

func (s *dictSink) WriteNull()                { s.emit(dynval.Null()) }
func (s *dictSink) WriteBool(v bool)           { s.emit(dynval.Bool(v)) }
func (s *dictSink) WriteInt64(v int64)         { s.emit(dynval.Int64(v)) }
func (s *dictSink) WriteFloat64(v float64)     { s.emit(dynval.Float64(v)) }
func (s *dictSink) WriteQuotedString(v string) { s.emit(dynval.String(v)) }

func (s *dictSink) WriteStringField(key, value string) {
	s.WriteKey(key)
	s.emit(dynval.String(value))
}

func (s *dictSink) WriteBoolField(key string, value bool) {
	s.WriteKey(key)
	s.emit(dynval.Bool(value))
}

func (s *dictSink) WriteInt64Field(key string, value int64) {
	s.WriteKey(key)
	s.emit(dynval.Int64(value))
}

func (s *dictSink) WriteFloat64Field(key string, value float64) {
	s.WriteKey(key)
	s.emit(dynval.Float64(value))
}

func (s *dictSink) WriteNullField(key string) {
	s.WriteKey(key)
	s.emit(dynval.Null())
}
