// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the otioframe project

package rtime

import (
	"testing"

	"github.com/rkoesters/otioframe/registry"
)

func TestToFromTimecodeRoundTrip(t *testing.T) {
	rt := New(24*60+5, 24)
	tc, err := ToTimecode(rt, 24, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tc != "00:01:00:05" {
		t.Errorf("got %q", tc)
	}

	back, err := FromTimecode(tc, 24)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !back.Equal(rt) {
		t.Errorf("round trip mismatch: got %v, want %v", back, rt)
	}
}

func TestToTimecodeDropframeRequiresValidRate(t *testing.T) {
	_, err := ToTimecode(New(0, 24), 24, true)
	if err == nil {
		t.Fatal("expected NonDropframeRate error")
	}
	ce, ok := err.(*registry.CoreError)
	if !ok || ce.Kind != registry.KindNonDropframeRate {
		t.Errorf("expected NonDropframeRate, got %v", err)
	}
}

func TestFromTimecodeMalformed(t *testing.T) {
	_, err := FromTimecode("not-a-timecode", 24)
	if err == nil {
		t.Fatal("expected InvalidTimecodeString error")
	}
	ce, ok := err.(*registry.CoreError)
	if !ok || ce.Kind != registry.KindInvalidTimecodeString {
		t.Errorf("expected InvalidTimecodeString, got %v", err)
	}
}

func TestFromTimecodeRateMismatch(t *testing.T) {
	_, err := FromTimecode("00:00:00:30", 24)
	if err == nil {
		t.Fatal("expected TimecodeRateMismatch error")
	}
	ce, ok := err.(*registry.CoreError)
	if !ok || ce.Kind != registry.KindTimecodeRateMismatch {
		t.Errorf("expected TimecodeRateMismatch, got %v", err)
	}
}

func TestToFromTimeStringRoundTrip(t *testing.T) {
	rt := New(90, 1)
	s := ToTimeString(rt)
	back, err := FromTimeString(s, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !back.AlmostEqual(rt, 1e-6) {
		t.Errorf("round trip mismatch: got %v, want %v", back, rt)
	}
}

func TestFromTimeStringMalformed(t *testing.T) {
	_, err := FromTimeString("garbage", 24)
	if err == nil {
		t.Fatal("expected InvalidTimeString error")
	}
	ce, ok := err.(*registry.CoreError)
	if !ok || ce.Kind != registry.KindInvalidTimeString {
		t.Errorf("expected InvalidTimeString, got %v", err)
	}
}
