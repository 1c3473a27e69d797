// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the otioframe project

package timeline

import (
	"github.com/rkoesters/otioframe/dynval"
	"github.com/rkoesters/otioframe/registry"
	"github.com/rkoesters/otioframe/rtime"
	"github.com/rkoesters/otioframe/schema"
)

// Track kinds.
const (
	TrackKindVideo = "Video"
	TrackKindAudio = "Audio"
)

// Track arranges its children sequentially in time.
type Track struct {
	CompositionBase
	kind string
}

// NewTrack constructs a Track. An empty kind defaults to TrackKindVideo.
func NewTrack(name string, sourceRange *rtime.TimeRange, kind string, metadata *dynval.OrderedDict, color *Color) *Track {
	if kind == "" {
		kind = TrackKindVideo
	}
	t := &Track{CompositionBase: NewCompositionBase(name, sourceRange, metadata, nil, nil, color), kind: kind}
	t.SetSelf(t)
	return t
}

func (t *Track) Kind() string      { return t.kind }
func (t *Track) SetKind(kind string) { t.kind = kind }
func (t *Track) CompositionKind() string { return "Track" }

// RangeOfChildAtIndex lays children end to end, skipping the duration
// contribution of any invisible child (a Transition).
func (t *Track) RangeOfChildAtIndex(index int) (rtime.TimeRange, error) {
	children := t.Children()
	if index < 0 || index >= len(children) {
		return rtime.TimeRange{}, registry.NewError(registry.KindIllegalIndex, "track child index out of range")
	}
	dur, err := children[index].Duration()
	if err != nil {
		return rtime.TimeRange{}, err
	}
	start := rtime.RationalTime{Rate: dur.Rate}
	for i := 0; i < index; i++ {
		if !children[i].Visible() {
			continue
		}
		childDur, err := children[i].Duration()
		if err != nil {
			return rtime.TimeRange{}, err
		}
		start = start.Add(childDur)
	}
	return rtime.NewTimeRange(start, dur), nil
}

// AvailableRange is [0, sum of visible children's durations).
func (t *Track) AvailableRange() (rtime.TimeRange, error) {
	children := t.Children()
	if len(children) == 0 {
		return rtime.TimeRange{}, nil
	}
	var total rtime.RationalTime
	haveRate := false
	for _, child := range children {
		if !child.Visible() {
			continue
		}
		dur, err := child.Duration()
		if err != nil {
			return rtime.TimeRange{}, err
		}
		if !haveRate {
			total = dur
			haveRate = true
		} else {
			total = total.Add(dur)
		}
	}
	return rtime.NewTimeRange(rtime.RationalTime{Rate: total.Rate}, total), nil
}

// Duration returns SourceRange's duration if set, else AvailableRange's.
func (t *Track) Duration() (rtime.RationalTime, error) {
	if sr := t.SourceRange(); sr != nil {
		return sr.Duration, nil
	}
	ar, err := t.AvailableRange()
	if err != nil {
		return rtime.RationalTime{}, err
	}
	return ar.Duration, nil
}

// HandlesOfChild returns the in/out transition offsets bordering child, if
// its neighbors are Transitions.
func (t *Track) HandlesOfChild(child Composable) (in, out *rtime.RationalTime, err error) {
	idx, err := t.IndexOfChild(child)
	if err != nil {
		return nil, nil, err
	}
	children := t.Children()
	if idx > 0 {
		if tr, ok := children[idx-1].(*Transition); ok {
			v := tr.InOffset()
			in = &v
		}
	}
	if idx < len(children)-1 {
		if tr, ok := children[idx+1].(*Transition); ok {
			v := tr.OutOffset()
			out = &v
		}
	}
	return in, out, nil
}

// ChildAtTime returns the first child whose range contains searchTime.
func (t *Track) ChildAtTime(searchTime rtime.RationalTime, shallowSearch bool) (Composable, error) {
	children := t.Children()
	for i, child := range children {
		r, err := t.RangeOfChildAtIndex(i)
		if err != nil {
			return nil, err
		}
		if r.Contains(searchTime) {
			if !shallowSearch {
				if comp, ok := child.(interface {
					ChildAtTime(rtime.RationalTime, bool) (Composable, error)
				}); ok {
					return comp.ChildAtTime(searchTime.Sub(r.StartTime), false)
				}
			}
			return child, nil
		}
	}
	return nil, nil
}

func (t *Track) SchemaName() string { return "Track" }
func (t *Track) SchemaVersion() int { return 1 }

// ReadFrom populates t's item-level fields and kind from a decoded schema
// dictionary; children are attached afterwards by the codec Reader.
func (t *Track) ReadFrom(dict *dynval.OrderedDict) error {
	if err := readCompositionFrom(&t.CompositionBase, dict); err != nil {
		return err
	}
	if v, ok := dict.Get("kind"); ok {
		t.kind, _ = v.AsString()
	}
	if t.kind == "" {
		t.kind = TrackKindVideo
	}
	t.SetSelf(t)
	return nil
}

func init() {
	schema.Register("Track", 1, func() schema.Reader {
		return NewTrack("", nil, "", nil, nil)
	}, nil, nil)
}
