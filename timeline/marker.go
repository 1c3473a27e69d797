// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the otioframe project

package timeline

import (
	"github.com/rkoesters/otioframe/dynval"
	"github.com/rkoesters/otioframe/rtime"
	"github.com/rkoesters/otioframe/schema"
)

// Marker annotates a marked time or range on an Item.
type Marker struct {
	name        string
	metadata    *dynval.OrderedDict
	markedRange rtime.TimeRange
	color       MarkerColor
	comment     string
}

// NewMarker constructs a Marker. An empty color defaults to green.
func NewMarker(name string, markedRange rtime.TimeRange, color MarkerColor, comment string, metadata *dynval.OrderedDict) *Marker {
	if color == "" {
		color = MarkerColorGreen
	}
	if metadata == nil {
		metadata = dynval.NewOrderedDict()
	}
	return &Marker{name: name, markedRange: markedRange, color: color, comment: comment, metadata: metadata}
}

func (m *Marker) Name() string                     { return m.name }
func (m *Marker) SetName(name string)              { m.name = name }
func (m *Marker) Metadata() *dynval.OrderedDict    { return m.metadata }
func (m *Marker) MarkedRange() rtime.TimeRange     { return m.markedRange }
func (m *Marker) SetMarkedRange(r rtime.TimeRange) { m.markedRange = r }
func (m *Marker) Color() MarkerColor               { return m.color }
func (m *Marker) SetColor(color MarkerColor)       { m.color = color }
func (m *Marker) Comment() string                  { return m.comment }
func (m *Marker) SetComment(comment string)        { m.comment = comment }

// SchemaName implements object.SerializableObject.
func (m *Marker) SchemaName() string { return "Marker" }

// SchemaVersion implements object.SerializableObject.
func (m *Marker) SchemaVersion() int { return 2 }

// ReadFrom populates m from a decoded schema dictionary.
func (m *Marker) ReadFrom(dict *dynval.OrderedDict) error {
	if v, ok := dict.Get("name"); ok {
		m.name, _ = v.AsString()
	}
	if v, ok := dict.Get("metadata"); ok {
		if d, ok := v.AsDict(); ok {
			m.metadata = d
		}
	}
	if v, ok := dict.Get("marked_range"); ok {
		if tr, ok := v.AsTimeRange(); ok {
			m.markedRange = tr
		}
	}
	if v, ok := dict.Get("color"); ok {
		if s, ok := v.AsString(); ok {
			m.color = MarkerColor(s)
		}
	}
	if v, ok := dict.Get("comment"); ok {
		m.comment, _ = v.AsString()
	}
	if m.metadata == nil {
		m.metadata = dynval.NewOrderedDict()
	}
	return nil
}

func init() {
	schema.Register("Marker", 2, func() schema.Reader { return NewMarker("", rtime.TimeRange{}, "", "", nil) }, nil, nil)
}
