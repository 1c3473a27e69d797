// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the otioframe project

package timeline

import (
	"github.com/rkoesters/otioframe/dynval"
	"github.com/rkoesters/otioframe/registry"
	"github.com/rkoesters/otioframe/rtime"
)

// Item is a Composable that occupies a span of time and may carry an
// explicit source range, an ordered list of effects, and an ordered list
// of markers.
type Item interface {
	Composable

	SourceRange() *rtime.TimeRange
	SetSourceRange(sr *rtime.TimeRange)

	Effects() []Effect
	SetEffects(effects []Effect)

	Markers() []*Marker
	SetMarkers(markers []*Marker)

	Enabled() bool
	SetEnabled(enabled bool)

	ItemColor() *Color
	SetItemColor(color *Color)

	// AvailableRange is the full range of material available for this
	// item; concrete leaves (Clip, Gap, Track, Stack) override it.
	AvailableRange() (rtime.TimeRange, error)

	// TrimmedRange is SourceRange() if set, else AvailableRange().
	TrimmedRange() (rtime.TimeRange, error)

	// VisibleRange is the trimmed range; a distinct hook so that a
	// future transition-aware override can widen it without touching
	// TrimmedRange's contract.
	VisibleRange() (rtime.TimeRange, error)
}

// ItemBase is the shared base of every concrete Item.
type ItemBase struct {
	ComposableBase

	sourceRange *rtime.TimeRange
	effects     []Effect
	markers     []*Marker
	enabled     bool
	color       *Color
}

// NewItemBase constructs an ItemBase.
func NewItemBase(name string, sourceRange *rtime.TimeRange, metadata *dynval.OrderedDict, effects []Effect, markers []*Marker, enabled bool, color *Color) ItemBase {
	return ItemBase{
		ComposableBase: NewComposableBase(name, metadata),
		sourceRange:    sourceRange,
		effects:        effects,
		markers:        markers,
		enabled:        enabled,
		color:          color,
	}
}

func (i *ItemBase) SourceRange() *rtime.TimeRange       { return i.sourceRange }
func (i *ItemBase) SetSourceRange(sr *rtime.TimeRange)  { i.sourceRange = sr }
func (i *ItemBase) Effects() []Effect                   { return i.effects }
func (i *ItemBase) SetEffects(effects []Effect)         { i.effects = effects }
func (i *ItemBase) Markers() []*Marker                  { return i.markers }
func (i *ItemBase) SetMarkers(markers []*Marker)        { i.markers = markers }
func (i *ItemBase) Enabled() bool                       { return i.enabled }
func (i *ItemBase) SetEnabled(enabled bool)             { i.enabled = enabled }
func (i *ItemBase) ItemColor() *Color                   { return i.color }
func (i *ItemBase) SetItemColor(color *Color)           { i.color = color }

// AvailableRange has no generic default; concrete leaves must override it.
func (i *ItemBase) AvailableRange() (rtime.TimeRange, error) {
	return rtime.TimeRange{}, registry.NewError(registry.KindNotImplemented,
		"AvailableRange must be overridden by a concrete Item type")
}

// TrimmedRange returns SourceRange() when set, falling back to the
// concrete type's AvailableRange() via Self() for dynamic dispatch.
func (i *ItemBase) TrimmedRange() (rtime.TimeRange, error) {
	if i.sourceRange != nil {
		return *i.sourceRange, nil
	}
	if self, ok := i.Self().(Item); ok {
		return self.AvailableRange()
	}
	return i.AvailableRange()
}

// VisibleRange defaults to TrimmedRange.
func (i *ItemBase) VisibleRange() (rtime.TimeRange, error) {
	if self, ok := i.Self().(Item); ok {
		return self.TrimmedRange()
	}
	return i.TrimmedRange()
}

// readItemFrom populates i's plain fields (name, metadata, source range,
// enabled flag, color) from a decoded schema dictionary. It does not
// populate effects, markers, or children: those hold nested serializable
// entities of their own and are resolved and attached by the codec
// package's Reader after this ReadFrom call returns, once the nested
// dictionaries have themselves been dispatched through the type registry.
func readItemFrom(i *ItemBase, dict *dynval.OrderedDict) error {
	if v, ok := dict.Get("name"); ok {
		i.name, _ = v.AsString()
	}
	if v, ok := dict.Get("metadata"); ok {
		if d, ok := v.AsDict(); ok {
			i.metadata = d
		}
	}
	if i.metadata == nil {
		i.metadata = dynval.NewOrderedDict()
	}
	if v, ok := dict.Get("source_range"); ok {
		if tr, ok := v.AsTimeRange(); ok {
			r := tr
			i.sourceRange = &r
		}
	}
	i.enabled = true
	if v, ok := dict.Get("enabled"); ok {
		if b, ok := v.AsBool(); ok {
			i.enabled = b
		}
	}
	if v, ok := dict.Get("color"); ok {
		if d, ok := v.AsDict(); ok {
			c := &Color{}
			if rv, ok := d.Get("r"); ok {
				c.R, _ = rv.AsFloat64()
			}
			if gv, ok := d.Get("g"); ok {
				c.G, _ = gv.AsFloat64()
			}
			if bv, ok := d.Get("b"); ok {
				c.B, _ = bv.AsFloat64()
			}
			if av, ok := d.Get("a"); ok {
				c.A, _ = av.AsFloat64()
			}
			i.color = c
		}
	}
	return nil
}
