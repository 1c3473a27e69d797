// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the otioframe project

package rtime

// DefaultEpsilon is the default tolerance used where callers don't supply
// one of their own.
const DefaultEpsilon = 1.0 / 192000.0

// TimeRange is a half-open [start, start+duration) span, duration
// expressed exclusive of the end point.
type TimeRange struct {
	StartTime RationalTime
	Duration  RationalTime
}

// NewTimeRange constructs a TimeRange from a start time and duration.
func NewTimeRange(start, duration RationalTime) TimeRange {
	return TimeRange{StartTime: start, Duration: duration}
}

// EndTimeExclusive returns the time one sample past the range's last
// sample, at the start time's rate.
func (r TimeRange) EndTimeExclusive() RationalTime {
	return r.StartTime.Add(r.Duration)
}

// EndTimeInclusive returns the time of the range's last sample.
func (r TimeRange) EndTimeInclusive() RationalTime {
	if r.Duration.Value == 0 {
		return r.StartTime
	}
	end := r.EndTimeExclusive()
	return end.Sub(RationalTime{Value: 1, Rate: end.Rate})
}

// ExtendedBy returns the smallest range covering r and point.
func (r TimeRange) ExtendedBy(point RationalTime) TimeRange {
	start := r.StartTime
	if point.Compare(start) < 0 {
		start = point
	}
	end := r.EndTimeExclusive()
	if point.Compare(end) > 0 {
		end = point
	}
	return TimeRange{StartTime: start, Duration: DurationFromStartEndTime(start, end)}
}

// ExtendedByRange returns the union of r and other.
func (r TimeRange) ExtendedByRange(other TimeRange) TimeRange {
	extended := r.ExtendedBy(other.StartTime)
	return extended.ExtendedBy(other.EndTimeExclusive())
}

// BoundStrategy selects whether ClampedTime/ClampedRange clamp a given
// side of a range.
type BoundStrategy int

const (
	// Free performs no clamping on that side.
	Free BoundStrategy = iota
	// Clamp restricts that side to the bounding range.
	Clamp
)

// BoundPolicy selects a BoundStrategy independently for the low and high
// side of a clamp operation.
type BoundPolicy struct {
	Low  BoundStrategy
	High BoundStrategy
}

// ClampedTime clamps point into bounds according to policy.
func (r TimeRange) ClampedTime(point RationalTime, policy BoundPolicy) RationalTime {
	if policy.Low == Clamp && point.Compare(r.StartTime) < 0 {
		point = r.StartTime
	}
	end := r.EndTimeInclusive()
	if policy.High == Clamp && point.Compare(end) > 0 {
		point = end
	}
	return point
}

// ClampedRange clamps other's start and end into r according to policy.
func (r TimeRange) ClampedRange(other TimeRange, policy BoundPolicy) TimeRange {
	start := other.StartTime
	if policy.Low == Clamp && start.Compare(r.StartTime) < 0 {
		start = r.StartTime
	}
	end := other.EndTimeExclusive()
	if policy.High == Clamp && end.Compare(r.EndTimeExclusive()) > 0 {
		end = r.EndTimeExclusive()
	}
	return TimeRange{StartTime: start, Duration: DurationFromStartEndTime(start, end)}
}

// Contains reports whether point falls within [start, end).
func (r TimeRange) Contains(point RationalTime) bool {
	return point.Compare(r.StartTime) >= 0 && point.Compare(r.EndTimeExclusive()) < 0
}

// ContainsRange reports whether other is fully covered by r (both its
// start and its end point fall within r).
func (r TimeRange) ContainsRange(other TimeRange) bool {
	return other.StartTime.Compare(r.StartTime) >= 0 &&
		other.EndTimeExclusive().Compare(r.EndTimeExclusive()) <= 0
}

// OverlapsRange reports whether r and other share any sample, inclusive
// on the start and exclusive on the end of each.
func (r TimeRange) OverlapsRange(other TimeRange) bool {
	return r.StartTime.Compare(other.EndTimeExclusive()) < 0 &&
		other.StartTime.Compare(r.EndTimeExclusive()) < 0
}

// Before reports whether r ends at or before other begins.
func (r TimeRange) Before(other TimeRange) bool {
	return r.EndTimeExclusive().Compare(other.StartTime) <= 0
}

// Meets reports whether r's end exactly touches other's start.
func (r TimeRange) Meets(other TimeRange) bool {
	return r.EndTimeExclusive().Equal(other.StartTime)
}

// Begins reports whether r and other share a start time and r is no
// longer than other.
func (r TimeRange) Begins(other TimeRange) bool {
	return r.StartTime.Equal(other.StartTime) &&
		r.EndTimeExclusive().Compare(other.EndTimeExclusive()) <= 0
}

// Finishes reports whether r and other share an end time and r is no
// longer than other.
func (r TimeRange) Finishes(other TimeRange) bool {
	return r.EndTimeExclusive().Equal(other.EndTimeExclusive()) &&
		r.StartTime.Compare(other.StartTime) >= 0
}

// Intersects reports whether r and other overlap by at least one sample.
func (r TimeRange) Intersects(other TimeRange) bool {
	return r.OverlapsRange(other)
}

// Equal reports whether r and other have value-equal start and duration.
func (r TimeRange) Equal(other TimeRange) bool {
	return r.StartTime.Equal(other.StartTime) && r.Duration.Equal(other.Duration)
}

// RangeFromStartEndTime constructs a TimeRange from an exclusive end time.
func RangeFromStartEndTime(start, endExclusive RationalTime) TimeRange {
	return TimeRange{StartTime: start, Duration: DurationFromStartEndTime(start, endExclusive)}
}

// RangeFromStartEndTimeInclusive constructs a TimeRange from an inclusive
// end time.
func RangeFromStartEndTimeInclusive(start, endInclusive RationalTime) TimeRange {
	return TimeRange{StartTime: start, Duration: DurationFromStartEndTimeInclusive(start, endInclusive)}
}

// String renders the range as "TimeRange(start, duration)".
func (r TimeRange) String() string {
	return "TimeRange(" + r.StartTime.String() + ", " + r.Duration.String() + ")"
}
