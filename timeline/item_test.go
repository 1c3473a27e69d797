// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the otioframe project

package timeline

import (
	"testing"

	"github.com/rkoesters/otioframe/rtime"
)

func TestItemBaseTrimmedRangeFallsBackToAvailableRange(t *testing.T) {
	duration := rtime.New(24, 24)
	available := rtime.NewTimeRange(rtime.New(0, 24), duration)
	clip := NewClip("", NewExternalReference("", "file:///a.mov", &available, nil), nil, nil, nil, nil, "", nil)

	tr, err := clip.TrimmedRange()
	if err != nil {
		t.Fatalf("TrimmedRange: %v", err)
	}
	if !tr.Duration.Equal(duration) {
		t.Errorf("TrimmedRange().Duration = %v, want %v", tr.Duration, duration)
	}
}

func TestItemBaseTrimmedRangePrefersSourceRange(t *testing.T) {
	full := rtime.New(48, 24)
	gap := NewGapWithDuration(full)

	trimmed := rtime.NewTimeRange(rtime.New(4, 24), rtime.New(8, 24))
	gap.SetSourceRange(&trimmed)

	tr, err := gap.TrimmedRange()
	if err != nil {
		t.Fatalf("TrimmedRange: %v", err)
	}
	if !tr.Duration.Equal(trimmed.Duration) {
		t.Errorf("TrimmedRange().Duration = %v, want %v", tr.Duration, trimmed.Duration)
	}
}

func TestItemBaseVisibleRangeDefaultsToTrimmedRange(t *testing.T) {
	gap := NewGapWithDuration(rtime.New(10, 24))

	vr, err := gap.VisibleRange()
	if err != nil {
		t.Fatalf("VisibleRange: %v", err)
	}
	tr, err := gap.TrimmedRange()
	if err != nil {
		t.Fatalf("TrimmedRange: %v", err)
	}
	if !vr.Equal(tr) {
		t.Errorf("VisibleRange() = %v, want %v (TrimmedRange)", vr, tr)
	}
}

func TestItemBaseEffectsAndMarkersSetters(t *testing.T) {
	clip := NewClip("c", nil, nil, nil, nil, nil, "", nil)

	effect := NewEffect("blur", "Blur", nil)
	clip.SetEffects([]Effect{effect})
	if len(clip.Effects()) != 1 || clip.Effects()[0] != effect {
		t.Error("SetEffects/Effects round trip failed")
	}

	marker := NewMarker("m", rtime.TimeRange{}, "", "", nil)
	clip.SetMarkers([]*Marker{marker})
	if len(clip.Markers()) != 1 || clip.Markers()[0] != marker {
		t.Error("SetMarkers/Markers round trip failed")
	}
}

func TestItemBaseEnabledDefaultsTrue(t *testing.T) {
	clip := NewClip("c", nil, nil, nil, nil, nil, "", nil)
	if !clip.Enabled() {
		t.Error("a freshly constructed Item should default to Enabled() true")
	}
	clip.SetEnabled(false)
	if clip.Enabled() {
		t.Error("SetEnabled(false) should disable the item")
	}
}
