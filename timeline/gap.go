// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the otioframe project

package timeline

import (
	"github.com/rkoesters/otioframe/dynval"
	"github.com/rkoesters/otioframe/registry"
	"github.com/rkoesters/otioframe/rtime"
	"github.com/rkoesters/otioframe/schema"
)

// Gap is an Item representing empty space in a track: it has no media of
// its own, only a duration.
type Gap struct {
	ItemBase
}

// NewGap constructs a Gap.
func NewGap(name string, sourceRange *rtime.TimeRange, metadata *dynval.OrderedDict, effects []Effect, markers []*Marker, color *Color) *Gap {
	g := &Gap{ItemBase: NewItemBase(name, sourceRange, metadata, effects, markers, true, color)}
	g.SetSelf(g)
	return g
}

// NewGapWithDuration constructs an anonymous Gap spanning duration,
// starting at zero.
func NewGapWithDuration(duration rtime.RationalTime) *Gap {
	sr := rtime.NewTimeRange(rtime.RationalTime{Rate: duration.Rate}, duration)
	return NewGap("", &sr, nil, nil, nil, nil)
}

// AvailableRange is the source range: a Gap has no media of its own, so
// its available range must be given explicitly.
func (g *Gap) AvailableRange() (rtime.TimeRange, error) {
	if g.sourceRange != nil {
		return *g.sourceRange, nil
	}
	return rtime.TimeRange{}, registry.NewError(registry.KindInternalError,
		"gap has no source range to report as its available range")
}

// Duration returns SourceRange's duration if set, else AvailableRange's.
func (g *Gap) Duration() (rtime.RationalTime, error) {
	if g.sourceRange != nil {
		return g.sourceRange.Duration, nil
	}
	ar, err := g.AvailableRange()
	if err != nil {
		return rtime.RationalTime{}, err
	}
	return ar.Duration, nil
}

func (g *Gap) SchemaName() string { return "Gap" }
func (g *Gap) SchemaVersion() int { return 1 }

// ReadFrom populates g from a decoded schema dictionary. Effects and
// markers are attached by the codec Reader once resolved.
func (g *Gap) ReadFrom(dict *dynval.OrderedDict) error {
	if err := readItemFrom(&g.ItemBase, dict); err != nil {
		return err
	}
	g.SetSelf(g)
	return nil
}

func init() {
	schema.Register("Gap", 1, func() schema.Reader {
		return NewGap("", nil, nil, nil, nil, nil)
	}, nil, nil)
}
