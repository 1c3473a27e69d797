// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the otioframe project

// Package rtime implements the rate-aware time algebra: RationalTime,
// TimeRange, and TimeTransform, with exact rescaling, comparison, and
// range operations.
package rtime

import (
	"fmt"
	"math"

	"github.com/rkoesters/otioframe/registry"
)

// RationalTime is a moment in time expressed as value/rate seconds.
// Both fields are real numbers; Rate must be strictly positive for the
// value to be meaningful (see IsValid).
type RationalTime struct {
	Value float64
	Rate  float64
}

// New constructs a RationalTime from a raw value and rate.
func New(value, rate float64) RationalTime {
	return RationalTime{Value: value, Rate: rate}
}

// IsValid reports whether the time has a usable rate and non-NaN fields.
func (t RationalTime) IsValid() bool {
	return !math.IsNaN(t.Value) && !math.IsNaN(t.Rate) && t.Rate > 0
}

// Rescale converts the value to an equivalent one at newRate, preserving
// value/rate seconds exactly for exact rational inputs. It fails with
// InvalidRate if newRate is not strictly positive.
func (t RationalTime) Rescale(newRate float64) (RationalTime, error) {
	if newRate <= 0 {
		return RationalTime{}, registry.NewError(registry.KindInvalidRate,
			fmt.Sprintf("rescale target rate must be positive, got %g", newRate))
	}
	if newRate == t.Rate {
		return t, nil
	}
	return RationalTime{Value: t.Value * newRate / t.Rate, Rate: newRate}, nil
}

// rescaledValue returns just the numeric value component of Rescale(newRate),
// without the positivity check — used internally where the target rate is
// known-good (e.g. another RationalTime's Rate).
func (t RationalTime) rescaledValue(newRate float64) float64 {
	if newRate == t.Rate {
		return t.Value
	}
	return t.Value * newRate / t.Rate
}

// Add returns t + other, represented at t's rate: the left operand's rate
// wins, so addition is commutative in value but not in representation.
func (t RationalTime) Add(other RationalTime) RationalTime {
	return RationalTime{Value: t.Value + other.rescaledValue(t.Rate), Rate: t.Rate}
}

// Sub returns t - other, represented at t's rate.
func (t RationalTime) Sub(other RationalTime) RationalTime {
	return RationalTime{Value: t.Value - other.rescaledValue(t.Rate), Rate: t.Rate}
}

// Neg returns -t.
func (t RationalTime) Neg() RationalTime {
	return RationalTime{Value: -t.Value, Rate: t.Rate}
}

// Floor, Ceil and Round return a time with the value rounded towards the
// named direction, keeping the same rate.
func (t RationalTime) Floor() RationalTime { return RationalTime{Value: math.Floor(t.Value), Rate: t.Rate} }
func (t RationalTime) Ceil() RationalTime  { return RationalTime{Value: math.Ceil(t.Value), Rate: t.Rate} }
func (t RationalTime) Round() RationalTime { return RationalTime{Value: math.Round(t.Value), Rate: t.Rate} }

// Compare returns -1, 0, or 1 as t is less than, equal to, or greater than
// other, comparing by projecting other onto t's rate. Comparison is done
// on the double precision values at that rate.
func (t RationalTime) Compare(other RationalTime) int {
	lhs := t.Value
	rhs := other.rescaledValue(t.Rate)
	if lhs < rhs {
		return -1
	}
	if lhs > rhs {
		return 1
	}
	return 0
}

// Equal reports value-equality at a common rate: two operands with
// different rates can be equal.
func (t RationalTime) Equal(other RationalTime) bool {
	return t.Compare(other) == 0
}

// AlmostEqual reports whether t and other differ by no more than delta,
// expressed at other's rate.
func (t RationalTime) AlmostEqual(other RationalTime, delta float64) bool {
	return math.Abs(t.rescaledValue(other.Rate)-other.Value) <= delta
}

// ToSeconds returns the time's value in seconds (rate 1).
func (t RationalTime) ToSeconds() float64 {
	return t.rescaledValue(1)
}

// ToFrames truncates the value to an int at the time's own rate.
func (t RationalTime) ToFrames() int64 {
	return int64(t.Value)
}

// ToFramesAtRate truncates the value to an int at the given rate.
func (t RationalTime) ToFramesAtRate(rate float64) int64 {
	return int64(t.rescaledValue(rate))
}

// FromSeconds constructs a RationalTime for a duration given in seconds at
// the given rate.
func FromSeconds(seconds, rate float64) RationalTime {
	return RationalTime{Value: seconds, Rate: 1}.mustRescale(rate)
}

func (t RationalTime) mustRescale(rate float64) RationalTime {
	r, err := t.Rescale(rate)
	if err != nil {
		// rate is a caller-supplied constant at this call site; a bad
		// rate here is a programmer error, not a runtime condition.
		panic(err)
	}
	return r
}

// ntscDenominator is the rate FromFrames uses for non-integer fps values
// that become integral when scaled by 600, such as 29.97 and 59.94.
const ntscDenominator = 600

// FromFrames converts a frame number at the given fps into a RationalTime.
// If fps is integer-valued, the result is simply RationalTime(frame, fps).
// Otherwise, if fps*600 is integer-valued (true of 29.97 and 59.94, but not
// of 23.976), the result is expressed at rate 600. Any other fractional fps
// fails with NonStandardFps.
func FromFrames(frame, fps float64) (RationalTime, error) {
	if fps == math.Trunc(fps) {
		return RationalTime{Value: frame, Rate: fps}, nil
	}
	scaled := fps * ntscDenominator
	if math.Abs(scaled-math.Round(scaled)) < 1e-6 {
		return RationalTime{Value: frame * ntscDenominator / fps, Rate: ntscDenominator}, nil
	}
	return RationalTime{}, registry.NewError(registry.KindNonStandardFps,
		fmt.Sprintf("fps %g is not a standard rate (integer, or *600 integral)", fps))
}

// DurationFromStartEndTime computes the exclusive-end duration of samples
// from startTime to endTimeExclusive, expressed at startTime's rate.
func DurationFromStartEndTime(startTime, endTimeExclusive RationalTime) RationalTime {
	return RationalTime{Value: endTimeExclusive.rescaledValue(startTime.Rate) - startTime.Value, Rate: startTime.Rate}
}

// DurationFromStartEndTimeInclusive computes the inclusive-end duration of
// samples from startTime to endTimeInclusive, expressed at startTime's rate.
func DurationFromStartEndTimeInclusive(startTime, endTimeInclusive RationalTime) RationalTime {
	return RationalTime{Value: endTimeInclusive.rescaledValue(startTime.Rate) - startTime.Value + 1, Rate: startTime.Rate}
}

// String renders the time as "RationalTime(value, rate)".
func (t RationalTime) String() string {
	return fmt.Sprintf("RationalTime(%g, %g)", t.Value, t.Rate)
}
