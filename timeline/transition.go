// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the otioframe project

package timeline

import (
	"github.com/rkoesters/otioframe/dynval"
	"github.com/rkoesters/otioframe/rtime"
	"github.com/rkoesters/otioframe/schema"
)

// TransitionKind names a transition's visual treatment.
type TransitionKind string

const (
	TransitionKindSMPTEDissolve TransitionKind = "SMPTE_Dissolve"
	TransitionKindCustom        TransitionKind = "Custom_Transition"
)

// Transition sits between two adjacent items in a track and consumes a
// slice of each neighbor's duration (inOffset into the outgoing item,
// outOffset into the incoming item) rather than occupying time of its
// own: Visible reports false and Overlapping reports true.
type Transition struct {
	ComposableBase
	transitionKind TransitionKind
	inOffset       rtime.RationalTime
	outOffset      rtime.RationalTime
}

// NewTransition constructs a Transition.
func NewTransition(name string, transitionKind TransitionKind, inOffset, outOffset rtime.RationalTime, metadata *dynval.OrderedDict) *Transition {
	t := &Transition{
		ComposableBase: NewComposableBase(name, metadata),
		transitionKind: transitionKind,
		inOffset:       inOffset,
		outOffset:      outOffset,
	}
	t.SetSelf(t)
	return t
}

func (t *Transition) TransitionKind() TransitionKind          { return t.transitionKind }
func (t *Transition) SetTransitionKind(kind TransitionKind)   { t.transitionKind = kind }
func (t *Transition) InOffset() rtime.RationalTime            { return t.inOffset }
func (t *Transition) SetInOffset(offset rtime.RationalTime)   { t.inOffset = offset }
func (t *Transition) OutOffset() rtime.RationalTime           { return t.outOffset }
func (t *Transition) SetOutOffset(offset rtime.RationalTime)  { t.outOffset = offset }

// Duration is the sum of the in and out offsets.
func (t *Transition) Duration() (rtime.RationalTime, error) {
	return t.inOffset.Add(t.outOffset), nil
}

// Visible is always false: a transition borrows time from its neighbors
// rather than occupying a slot of its own in a track's timeline.
func (t *Transition) Visible() bool { return false }

// Overlapping is always true.
func (t *Transition) Overlapping() bool { return true }

func (t *Transition) SchemaName() string { return "Transition" }
func (t *Transition) SchemaVersion() int { return 1 }

// ReadFrom populates t from a decoded schema dictionary.
func (t *Transition) ReadFrom(dict *dynval.OrderedDict) error {
	if v, ok := dict.Get("name"); ok {
		t.name, _ = v.AsString()
	}
	if v, ok := dict.Get("metadata"); ok {
		if d, ok := v.AsDict(); ok {
			t.metadata = d
		}
	}
	if t.metadata == nil {
		t.metadata = dynval.NewOrderedDict()
	}
	if v, ok := dict.Get("transition_type"); ok {
		if s, ok := v.AsString(); ok {
			t.transitionKind = TransitionKind(s)
		}
	}
	if v, ok := dict.Get("in_offset"); ok {
		if rt, ok := v.AsRationalTime(); ok {
			t.inOffset = rt
		}
	}
	if v, ok := dict.Get("out_offset"); ok {
		if rt, ok := v.AsRationalTime(); ok {
			t.outOffset = rt
		}
	}
	t.SetSelf(t)
	return nil
}

func init() {
	schema.Register("Transition", 1, func() schema.Reader {
		return NewTransition("", TransitionKindSMPTEDissolve, rtime.RationalTime{}, rtime.RationalTime{}, nil)
	}, nil, nil)
}
