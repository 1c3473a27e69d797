// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the otioframe project

package timeline

import (
	"github.com/rkoesters/otioframe/dynval"
	"github.com/rkoesters/otioframe/rtime"
)

// MediaReference points at the media backing a Clip: a URL, a generator
// recipe, an image sequence, or an explicit placeholder for media that is
// known to be missing.
type MediaReference interface {
	Name() string
	SetName(name string)
	Metadata() *dynval.OrderedDict

	AvailableRange() *rtime.TimeRange
	SetAvailableRange(r *rtime.TimeRange)
	AvailableImageBounds() *dynval.Box2d
	SetAvailableImageBounds(b *dynval.Box2d)

	// IsMissingReference distinguishes MissingReference from every other
	// variant without a type switch at call sites.
	IsMissingReference() bool

	SchemaName() string
	SchemaVersion() int
}

// MediaReferenceBase is the shared base of every concrete MediaReference.
type MediaReferenceBase struct {
	name                 string
	metadata             *dynval.OrderedDict
	availableRange       *rtime.TimeRange
	availableImageBounds *dynval.Box2d
}

// NewMediaReferenceBase constructs a MediaReferenceBase.
func NewMediaReferenceBase(name string, availableRange *rtime.TimeRange, metadata *dynval.OrderedDict, bounds *dynval.Box2d) MediaReferenceBase {
	if metadata == nil {
		metadata = dynval.NewOrderedDict()
	}
	return MediaReferenceBase{name: name, availableRange: availableRange, metadata: metadata, availableImageBounds: bounds}
}

func (m *MediaReferenceBase) Name() string                 { return m.name }
func (m *MediaReferenceBase) SetName(name string)          { m.name = name }
func (m *MediaReferenceBase) Metadata() *dynval.OrderedDict { return m.metadata }
func (m *MediaReferenceBase) AvailableRange() *rtime.TimeRange { return m.availableRange }
func (m *MediaReferenceBase) SetAvailableRange(r *rtime.TimeRange) { m.availableRange = r }
func (m *MediaReferenceBase) AvailableImageBounds() *dynval.Box2d { return m.availableImageBounds }
func (m *MediaReferenceBase) SetAvailableImageBounds(b *dynval.Box2d) { m.availableImageBounds = b }

// IsMissingReference defaults to false; MissingReference overrides it.
func (m *MediaReferenceBase) IsMissingReference() bool { return false }

func (m *MediaReferenceBase) readFrom(dict *dynval.OrderedDict) {
	if v, ok := dict.Get("name"); ok {
		m.name, _ = v.AsString()
	}
	if v, ok := dict.Get("metadata"); ok {
		if d, ok := v.AsDict(); ok {
			m.metadata = d
		}
	}
	if m.metadata == nil {
		m.metadata = dynval.NewOrderedDict()
	}
	if v, ok := dict.Get("available_range"); ok {
		if tr, ok := v.AsTimeRange(); ok {
			r := tr
			m.availableRange = &r
		}
	}
	if v, ok := dict.Get("available_image_bounds"); ok {
		if b, ok := v.AsBox2d(); ok {
			bv := b
			m.availableImageBounds = &bv
		}
	}
}
