// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the otioframe project

package timeline

import (
	"github.com/rkoesters/otioframe/dynval"
	"github.com/rkoesters/otioframe/registry"
	"github.com/rkoesters/otioframe/rtime"
	"github.com/rkoesters/otioframe/schema"
)

// Stack arranges its children as overlapping layers, all sharing the same
// start time.
type Stack struct {
	CompositionBase
}

// NewStack constructs a Stack.
func NewStack(name string, sourceRange *rtime.TimeRange, metadata *dynval.OrderedDict, effects []Effect, markers []*Marker, color *Color) *Stack {
	s := &Stack{CompositionBase: NewCompositionBase(name, sourceRange, metadata, effects, markers, color)}
	s.SetSelf(s)
	return s
}

func (s *Stack) CompositionKind() string { return "Stack" }

// RangeOfChildAtIndex gives every child the range [0, its own duration).
func (s *Stack) RangeOfChildAtIndex(index int) (rtime.TimeRange, error) {
	children := s.Children()
	if index < 0 || index >= len(children) {
		return rtime.TimeRange{}, registry.NewError(registry.KindIllegalIndex, "stack child index out of range")
	}
	dur, err := children[index].Duration()
	if err != nil {
		return rtime.TimeRange{}, err
	}
	return rtime.NewTimeRange(rtime.RationalTime{Rate: dur.Rate}, dur), nil
}

// AvailableRange is [0, longest child's duration).
func (s *Stack) AvailableRange() (rtime.TimeRange, error) {
	children := s.Children()
	if len(children) == 0 {
		return rtime.TimeRange{}, nil
	}
	maxDur, err := children[0].Duration()
	if err != nil {
		return rtime.TimeRange{}, err
	}
	for _, child := range children[1:] {
		dur, err := child.Duration()
		if err != nil {
			return rtime.TimeRange{}, err
		}
		if dur.ToSeconds() > maxDur.ToSeconds() {
			maxDur = dur
		}
	}
	return rtime.NewTimeRange(rtime.RationalTime{Rate: maxDur.Rate}, maxDur), nil
}

// Duration returns SourceRange's duration if set, else AvailableRange's.
func (s *Stack) Duration() (rtime.RationalTime, error) {
	if sr := s.SourceRange(); sr != nil {
		return sr.Duration, nil
	}
	ar, err := s.AvailableRange()
	if err != nil {
		return rtime.RationalTime{}, err
	}
	return ar.Duration, nil
}

// ChildAtTime searches top-to-bottom (the last child is topmost) for the
// first child whose range contains searchTime.
func (s *Stack) ChildAtTime(searchTime rtime.RationalTime, shallowSearch bool) (Composable, error) {
	children := s.Children()
	for i := len(children) - 1; i >= 0; i-- {
		r, err := s.RangeOfChildAtIndex(i)
		if err != nil {
			return nil, err
		}
		if r.Contains(searchTime) {
			if !shallowSearch {
				if comp, ok := children[i].(interface {
					ChildAtTime(rtime.RationalTime, bool) (Composable, error)
				}); ok {
					return comp.ChildAtTime(searchTime, false)
				}
			}
			return children[i], nil
		}
	}
	return nil, nil
}

func (s *Stack) SchemaName() string { return "Stack" }
func (s *Stack) SchemaVersion() int { return 1 }

func (s *Stack) ReadFrom(dict *dynval.OrderedDict) error {
	if err := readCompositionFrom(&s.CompositionBase, dict); err != nil {
		return err
	}
	s.SetSelf(s)
	return nil
}

func init() {
	schema.Register("Stack", 1, func() schema.Reader {
		return NewStack("", nil, nil, nil, nil, nil)
	}, nil, nil)
}
