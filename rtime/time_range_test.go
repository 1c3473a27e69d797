// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the otioframe project

package rtime

import "testing"

func TestEndTimeExclusiveInclusive(t *testing.T) {
	r := NewTimeRange(New(10, 24), New(10, 24))
	if r.EndTimeExclusive().Value != 20 {
		t.Errorf("EndTimeExclusive: got %g", r.EndTimeExclusive().Value)
	}
	if r.EndTimeInclusive().Value != 19 {
		t.Errorf("EndTimeInclusive: got %g", r.EndTimeInclusive().Value)
	}
}

func TestExtendedBy(t *testing.T) {
	r := NewTimeRange(New(10, 24), New(10, 24))
	extended := r.ExtendedBy(New(5, 24))
	if extended.StartTime.Value != 5 {
		t.Errorf("expected start 5, got %g", extended.StartTime.Value)
	}
	extended = r.ExtendedBy(New(30, 24))
	if extended.EndTimeExclusive().Value != 30 {
		t.Errorf("expected end 30, got %g", extended.EndTimeExclusive().Value)
	}
}

func TestExtendedByRange(t *testing.T) {
	a := NewTimeRange(New(0, 24), New(10, 24))
	b := NewTimeRange(New(20, 24), New(10, 24))
	union := a.ExtendedByRange(b)
	if union.StartTime.Value != 0 || union.EndTimeExclusive().Value != 30 {
		t.Errorf("got %v", union)
	}
}

func TestClampedTime(t *testing.T) {
	bounds := NewTimeRange(New(10, 24), New(10, 24))
	clamped := bounds.ClampedTime(New(0, 24), BoundPolicy{Low: Clamp, High: Clamp})
	if clamped.Value != 10 {
		t.Errorf("expected clamp to start, got %g", clamped.Value)
	}
	free := bounds.ClampedTime(New(0, 24), BoundPolicy{Low: Free, High: Free})
	if free.Value != 0 {
		t.Errorf("expected no clamping, got %g", free.Value)
	}
}

func TestClampedRange(t *testing.T) {
	bounds := NewTimeRange(New(10, 24), New(10, 24))
	other := NewTimeRange(New(0, 24), New(40, 24))
	clamped := bounds.ClampedRange(other, BoundPolicy{Low: Clamp, High: Clamp})
	if !clamped.Equal(bounds) {
		t.Errorf("expected clamped range to equal bounds, got %v", clamped)
	}
}

func TestContainsAndContainsRange(t *testing.T) {
	r := NewTimeRange(New(10, 24), New(10, 24))
	if !r.Contains(New(10, 24)) {
		t.Error("expected range to contain its own start")
	}
	if r.Contains(New(20, 24)) {
		t.Error("end point should be exclusive")
	}
	inner := NewTimeRange(New(12, 24), New(5, 24))
	if !r.ContainsRange(inner) {
		t.Error("expected r to contain inner")
	}
}

func TestOverlapsRange(t *testing.T) {
	a := NewTimeRange(New(0, 24), New(10, 24))
	b := NewTimeRange(New(5, 24), New(10, 24))
	c := NewTimeRange(New(10, 24), New(10, 24))
	if !a.OverlapsRange(b) {
		t.Error("expected a and b to overlap")
	}
	if a.OverlapsRange(c) {
		t.Error("expected a and c not to overlap (end exclusive)")
	}
}

func TestBeforeMeetsBeginsFinishes(t *testing.T) {
	a := NewTimeRange(New(0, 24), New(10, 24))
	b := NewTimeRange(New(10, 24), New(10, 24))
	if !a.Before(b) {
		t.Error("expected a before b")
	}
	if !a.Meets(b) {
		t.Error("expected a meets b")
	}

	c := NewTimeRange(New(0, 24), New(5, 24))
	if !c.Begins(a) {
		t.Error("expected c begins a")
	}

	d := NewTimeRange(New(5, 24), New(5, 24))
	if !d.Finishes(a) {
		t.Error("expected d finishes a")
	}
}

func TestRangeFromStartEndTime(t *testing.T) {
	r := RangeFromStartEndTime(New(10, 24), New(20, 24))
	if r.Duration.Value != 10 {
		t.Errorf("got duration %g, want 10", r.Duration.Value)
	}
	rInclusive := RangeFromStartEndTimeInclusive(New(10, 24), New(19, 24))
	if rInclusive.Duration.Value != 10 {
		t.Errorf("got duration %g, want 10", rInclusive.Duration.Value)
	}
}
