// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the otioframe project

package rtime

import "testing"

func TestAppliedToTime(t *testing.T) {
	xf := NewTimeTransform(New(10, 24), 2, 0)
	result := xf.AppliedToTime(New(5, 24))
	if result.Value != 30 {
		t.Errorf("got %g, want 30", result.Value)
	}
}

func TestAppliedToTimeWithRate(t *testing.T) {
	xf := NewTimeTransform(New(0, 24), 1, 48)
	result := xf.AppliedToTime(New(10, 24))
	if result.Rate != 48 {
		t.Errorf("expected result at rate 48, got %g", result.Rate)
	}
	if result.Value != 20 {
		t.Errorf("got value %g, want 20", result.Value)
	}
}

func TestAppliedToRange(t *testing.T) {
	xf := NewTimeTransform(New(10, 24), 1, 0)
	r := NewTimeRange(New(0, 24), New(5, 24))
	applied := xf.AppliedToRange(r)
	if applied.StartTime.Value != 10 || applied.Duration.Value != 5 {
		t.Errorf("got %v", applied)
	}
}

func TestAppliedToTransform(t *testing.T) {
	a := NewTimeTransform(New(10, 24), 2, 0)
	b := NewTimeTransform(New(1, 24), 3, 0)
	composed := a.AppliedToTransform(b)
	if composed.Scale != 6 {
		t.Errorf("got scale %g, want 6", composed.Scale)
	}
}

func TestTimeTransformEqual(t *testing.T) {
	a := NewTimeTransform(New(10, 24), 2, 0)
	b := NewTimeTransform(New(10, 24), 2, 0)
	if !a.Equal(b) {
		t.Error("expected equal transforms to compare equal")
	}
}
