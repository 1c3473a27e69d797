// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the otioframe project

package dynval

import (
	"testing"

	"github.com/rkoesters/otioframe/rtime"
)

func TestValueKindRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		kind Kind
	}{
		{"null", Null(), KindNull},
		{"bool", Bool(true), KindBool},
		{"int64", Int64(7), KindInt64},
		{"float64", Float64(3.5), KindFloat64},
		{"string", String("hi"), KindString},
		{"rational time", RationalTimeValue(rtime.New(1, 24)), KindRationalTime},
		{"v2d", V2dValue(V2d{1, 2}), KindV2d},
		{"object ref", ObjectRefValue(ObjectRef{SchemaName: "Clip", ID: "Clip-1"}), KindObjectRef},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.v.Kind() != tt.kind {
				t.Errorf("Kind() = %v, want %v", tt.v.Kind(), tt.kind)
			}
		})
	}
}

func TestValueAccessorsRejectWrongKind(t *testing.T) {
	v := Int64(5)
	if _, ok := v.AsString(); ok {
		t.Error("AsString should report ok=false for an int64 value")
	}
	if i, ok := v.AsInt64(); !ok || i != 5 {
		t.Errorf("AsInt64() = %d, %v; want 5, true", i, ok)
	}
}

func TestValueEqual(t *testing.T) {
	a := String("x")
	b := String("x")
	c := String("y")
	if !a.Equal(b) {
		t.Error("expected equal strings to compare equal")
	}
	if a.Equal(c) {
		t.Error("expected different strings to compare unequal")
	}
	if a.Equal(Int64(0)) {
		t.Error("expected different kinds to compare unequal")
	}
}

func TestValueEqualNested(t *testing.T) {
	d1 := NewOrderedDict()
	d1.Set("a", Int64(1))
	d2 := NewOrderedDict()
	d2.Set("a", Int64(1))
	if !DictValue(d1).Equal(DictValue(d2)) {
		t.Error("expected structurally equal dicts to compare equal")
	}

	d2.Set("b", Int64(2))
	if DictValue(d1).Equal(DictValue(d2)) {
		t.Error("expected dicts of different size to compare unequal")
	}
}
