// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the otioframe project

package rtime

import "fmt"

// TimeTransform maps a time or range through an offset, scale, and target
// rate: applied_time = (time + offset), rescaled to rate when rate is
// positive, then multiplied by scale.
type TimeTransform struct {
	Offset RationalTime
	Scale  float64
	Rate   float64
}

// NewTimeTransform constructs a TimeTransform. A zero Rate means "keep the
// input's rate" rather than forcing a rescale.
func NewTimeTransform(offset RationalTime, scale, rate float64) TimeTransform {
	return TimeTransform{Offset: offset, Scale: scale, Rate: rate}
}

// AppliedToTime returns (t + offset).rescale(Rate) * scale along the value
// axis, keeping the rate of the (possibly rescaled) sum when Rate is not
// positive.
func (xf TimeTransform) AppliedToTime(t RationalTime) RationalTime {
	sum := t.Add(xf.Offset)
	if xf.Rate > 0 {
		sum = sum.mustRescale(xf.Rate)
	}
	return RationalTime{Value: sum.Value * xf.Scale, Rate: sum.Rate}
}

// AppliedToRange applies the transform to the start time of r and scales
// its duration by the same factor.
func (xf TimeTransform) AppliedToRange(r TimeRange) TimeRange {
	return TimeRange{
		StartTime: xf.AppliedToTime(r.StartTime),
		Duration:  RationalTime{Value: r.Duration.Value * xf.Scale, Rate: r.Duration.Rate},
	}
}

// AppliedToTransform composes xf with other: first other, then xf.
func (xf TimeTransform) AppliedToTransform(other TimeTransform) TimeTransform {
	return TimeTransform{
		Offset: xf.AppliedToTime(other.Offset),
		Scale:  xf.Scale * other.Scale,
		Rate:   other.Rate,
	}
}

// Equal reports whether xf and other have value-equal offset, scale, and
// rate.
func (xf TimeTransform) Equal(other TimeTransform) bool {
	return xf.Offset.Equal(other.Offset) && xf.Scale == other.Scale && xf.Rate == other.Rate
}

// String renders the transform as "TimeTransform(offset, scale, rate)".
func (xf TimeTransform) String() string {
	return fmt.Sprintf("TimeTransform(%s, %g, %g)", xf.Offset.String(), xf.Scale, xf.Rate)
}
