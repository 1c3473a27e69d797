// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the otioframe project

package timeline

import (
	"github.com/rkoesters/otioframe/dynval"
	"github.com/rkoesters/otioframe/schema"
)

// Effect is a named, orderable processing step attached to an Item.
type Effect interface {
	Name() string
	SetName(name string)
	Metadata() *dynval.OrderedDict

	EffectName() string
	SetEffectName(name string)

	SchemaName() string
	SchemaVersion() int
}

// EffectBase is the shared base of every concrete Effect.
type EffectBase struct {
	name       string
	metadata   *dynval.OrderedDict
	effectName string
}

// NewEffectBase constructs an EffectBase.
func NewEffectBase(name, effectName string, metadata *dynval.OrderedDict) EffectBase {
	if metadata == nil {
		metadata = dynval.NewOrderedDict()
	}
	return EffectBase{name: name, effectName: effectName, metadata: metadata}
}

func (e *EffectBase) Name() string                  { return e.name }
func (e *EffectBase) SetName(name string)            { e.name = name }
func (e *EffectBase) Metadata() *dynval.OrderedDict  { return e.metadata }
func (e *EffectBase) EffectName() string             { return e.effectName }
func (e *EffectBase) SetEffectName(name string)      { e.effectName = name }

func (e *EffectBase) readFrom(dict *dynval.OrderedDict) {
	if v, ok := dict.Get("name"); ok {
		e.name, _ = v.AsString()
	}
	if v, ok := dict.Get("metadata"); ok {
		if d, ok := v.AsDict(); ok {
			e.metadata = d
		}
	}
	if v, ok := dict.Get("effect_name"); ok {
		e.effectName, _ = v.AsString()
	}
	if e.metadata == nil {
		e.metadata = dynval.NewOrderedDict()
	}
}

// genericEffect is a plain named effect with no extra state, the
// equivalent of the opentimelineio.Effect concrete type.
type genericEffect struct {
	EffectBase
}

// NewEffect constructs a generic Effect with no type-specific behavior.
func NewEffect(name, effectName string, metadata *dynval.OrderedDict) Effect {
	return &genericEffect{EffectBase: NewEffectBase(name, effectName, metadata)}
}

func (e *genericEffect) SchemaName() string  { return "Effect" }
func (e *genericEffect) SchemaVersion() int  { return 1 }

func (e *genericEffect) ReadFrom(dict *dynval.OrderedDict) error {
	e.readFrom(dict)
	return nil
}

// TimeEffect is an Effect that alters the flow of time; LinearTimeWarp and
// FreezeFrame are its concrete variants.
type TimeEffect interface {
	Effect
	TimeScalar() float64
}

// LinearTimeWarp applies a constant speed multiplier to its Item.
type LinearTimeWarp struct {
	EffectBase
	timeScalar float64
}

// NewLinearTimeWarp constructs a LinearTimeWarp. A zero scalar defaults to
// 1.0 (no-op speed), guarding against an uninitialized zero value silently
// freezing time.
func NewLinearTimeWarp(name, effectName string, timeScalar float64, metadata *dynval.OrderedDict) *LinearTimeWarp {
	if timeScalar == 0 {
		timeScalar = 1.0
	}
	return &LinearTimeWarp{EffectBase: NewEffectBase(name, effectName, metadata), timeScalar: timeScalar}
}

func (l *LinearTimeWarp) TimeScalar() float64        { return l.timeScalar }
func (l *LinearTimeWarp) SetTimeScalar(scalar float64) { l.timeScalar = scalar }
func (l *LinearTimeWarp) SchemaName() string          { return "LinearTimeWarp" }
func (l *LinearTimeWarp) SchemaVersion() int          { return 1 }

func (l *LinearTimeWarp) ReadFrom(dict *dynval.OrderedDict) error {
	l.readFrom(dict)
	if v, ok := dict.Get("time_scalar"); ok {
		if f, ok := v.AsFloat64(); ok {
			l.timeScalar = f
		}
	}
	if l.timeScalar == 0 {
		l.timeScalar = 1.0
	}
	return nil
}

// FreezeFrame holds a single frame indefinitely: its time scalar is always
// zero.
type FreezeFrame struct {
	EffectBase
}

// NewFreezeFrame constructs a FreezeFrame.
func NewFreezeFrame(name string, metadata *dynval.OrderedDict) *FreezeFrame {
	return &FreezeFrame{EffectBase: NewEffectBase(name, "FreezeFrame", metadata)}
}

func (f *FreezeFrame) TimeScalar() float64 { return 0 }
func (f *FreezeFrame) SchemaName() string  { return "FreezeFrame" }
func (f *FreezeFrame) SchemaVersion() int  { return 1 }

func (f *FreezeFrame) ReadFrom(dict *dynval.OrderedDict) error {
	f.readFrom(dict)
	f.effectName = "FreezeFrame"
	return nil
}

func init() {
	schema.Register("Effect", 1, func() schema.Reader { return NewEffect("", "", nil).(schema.Reader) }, nil, nil)
	schema.Register("LinearTimeWarp", 1, func() schema.Reader { return NewLinearTimeWarp("", "", 1.0, nil) }, nil, nil)
	schema.Register("FreezeFrame", 1, func() schema.Reader { return NewFreezeFrame("", nil) }, nil, nil)
}
