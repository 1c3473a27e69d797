// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the otioframe project

package jsonenc

import (
	"math"
	"testing"
)

func TestEncoderObjectWithFields(t *testing.T) {
	e := NewEncoder()
	e.BeginObject()
	e.WriteStringField("name", "V1")
	e.WriteInt64Field("take", 3)
	e.WriteBoolField("enabled", true)
	e.EndObject()

	want := `{"name":"V1","take":3,"enabled":true}`
	if got := string(e.Bytes()); got != want {
		t.Errorf("Bytes() = %q, want %q", got, want)
	}
}

func TestEncoderNestedArray(t *testing.T) {
	e := NewEncoder()
	e.BeginObject()
	e.WriteKey("children")
	e.BeginArray()
	e.WriteInt64(1)
	e.WriteComma()
	e.WriteInt64(2)
	e.EndArray()
	e.EndObject()

	want := `{"children":[1,2]}`
	if got := string(e.Bytes()); got != want {
		t.Errorf("Bytes() = %q, want %q", got, want)
	}
}

func TestEncoderWriteFloat64SpecialValues(t *testing.T) {
	cases := []struct {
		name string
		v    float64
		want string
	}{
		{"nan", math.NaN(), "NaN"},
		{"posInf", math.Inf(1), "Infinity"},
		{"negInf", math.Inf(-1), "-Infinity"},
		{"ordinary", 1.5, "1.5"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e := NewEncoder()
			e.WriteFloat64(c.v)
			if got := string(e.Bytes()); got != c.want {
				t.Errorf("WriteFloat64(%v) = %q, want %q", c.v, got, c.want)
			}
		})
	}
}

func TestEncoderWriteQuotedStringEscapesControlCharacters(t *testing.T) {
	e := NewEncoder()
	e.WriteQuotedString("line1\nline2\ttabbed\"quoted\"")
	want := `"line1\nline2\ttabbed\"quoted\""`
	if got := string(e.Bytes()); got != want {
		t.Errorf("WriteQuotedString = %q, want %q", got, want)
	}
}

func TestEncoderWriteQuotedStringPassesThroughSafeUnicode(t *testing.T) {
	e := NewEncoder()
	e.WriteQuotedString("café")
	want := "\"café\""
	if got := string(e.Bytes()); got != want {
		t.Errorf("WriteQuotedString = %q, want %q", got, want)
	}
}

func TestEncoderWriteNullField(t *testing.T) {
	e := NewEncoder()
	e.BeginObject()
	e.WriteNullField("source_range")
	e.EndObject()

	want := `{"source_range":null}`
	if got := string(e.Bytes()); got != want {
		t.Errorf("Bytes() = %q, want %q", got, want)
	}
}
