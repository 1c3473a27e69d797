// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the otioframe project

package timeline

import (
	"testing"

	"github.com/rkoesters/otioframe/rtime"
)

func TestNewMarkerDefaultsColorToGreen(t *testing.T) {
	m := NewMarker("todo", rtime.TimeRange{}, "", "needs review", nil)
	if m.Color() != MarkerColorGreen {
		t.Errorf("Color() = %q, want %q", m.Color(), MarkerColorGreen)
	}
}

func TestMarkerSettersRoundTrip(t *testing.T) {
	r := rtime.NewTimeRange(rtime.New(10, 24), rtime.New(0, 24))
	m := NewMarker("todo", r, MarkerColorRed, "flag this", nil)

	if m.MarkedRange() != r {
		t.Errorf("MarkedRange() = %v, want %v", m.MarkedRange(), r)
	}
	if m.Comment() != "flag this" {
		t.Errorf("Comment() = %q, want %q", m.Comment(), "flag this")
	}

	m.SetColor(MarkerColorBlue)
	if m.Color() != MarkerColorBlue {
		t.Error("SetColor should update Color()")
	}
	m.SetComment("updated")
	if m.Comment() != "updated" {
		t.Error("SetComment should update Comment()")
	}
}

func TestMarkerSchemaIdentity(t *testing.T) {
	m := NewMarker("m", rtime.TimeRange{}, "", "", nil)
	if m.SchemaName() != "Marker" || m.SchemaVersion() != 2 {
		t.Errorf("schema identity = %s.%d, want Marker.2", m.SchemaName(), m.SchemaVersion())
	}
}
