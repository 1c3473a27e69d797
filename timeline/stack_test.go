// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the otioframe project

package timeline

import (
	"testing"

	"github.com/rkoesters/otioframe/rtime"
)

func TestStackRangeOfChildAtIndexAllStartAtZero(t *testing.T) {
	stack := NewStack("S", nil, nil, nil, nil, nil)
	gap1 := NewGapWithDuration(rtime.New(24, 24))
	gap2 := NewGapWithDuration(rtime.New(48, 24))
	if err := stack.AppendChild(gap1); err != nil {
		t.Fatal(err)
	}
	if err := stack.AppendChild(gap2); err != nil {
		t.Fatal(err)
	}

	r0, err := stack.RangeOfChildAtIndex(0)
	if err != nil {
		t.Fatalf("RangeOfChildAtIndex(0): %v", err)
	}
	r1, err := stack.RangeOfChildAtIndex(1)
	if err != nil {
		t.Fatalf("RangeOfChildAtIndex(1): %v", err)
	}
	if r0.StartTime.Value != 0 || r1.StartTime.Value != 0 {
		t.Error("every stack child should start at time zero")
	}
}

func TestStackAvailableRangeIsLongestChild(t *testing.T) {
	stack := NewStack("S", nil, nil, nil, nil, nil)
	short := rtime.New(24, 24)
	long := rtime.New(96, 24)
	if err := stack.AppendChild(NewGapWithDuration(short)); err != nil {
		t.Fatal(err)
	}
	if err := stack.AppendChild(NewGapWithDuration(long)); err != nil {
		t.Fatal(err)
	}

	ar, err := stack.AvailableRange()
	if err != nil {
		t.Fatalf("AvailableRange: %v", err)
	}
	if !ar.Duration.Equal(long) {
		t.Errorf("AvailableRange().Duration = %v, want %v", ar.Duration, long)
	}
}

func TestStackChildAtTimeSearchesTopDown(t *testing.T) {
	stack := NewStack("S", nil, nil, nil, nil, nil)
	bottom := NewGapWithDuration(rtime.New(24, 24))
	top := NewGapWithDuration(rtime.New(24, 24))
	if err := stack.AppendChild(bottom); err != nil {
		t.Fatal(err)
	}
	if err := stack.AppendChild(top); err != nil {
		t.Fatal(err)
	}

	found, err := stack.ChildAtTime(rtime.New(10, 24), true)
	if err != nil {
		t.Fatalf("ChildAtTime: %v", err)
	}
	if found != Composable(top) {
		t.Error("ChildAtTime should prefer the topmost (last-appended) child")
	}
}
