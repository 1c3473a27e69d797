// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the otioframe project

package timeline

import (
	"testing"

	"github.com/rkoesters/otioframe/rtime"
)

func TestNewImageSequenceReferenceDefaults(t *testing.T) {
	seq := NewImageSequenceReference("seq", "file:///frames/", "frame.", ".exr", 1, 0, 24, 4, nil, nil, "")
	if seq.FrameStep() != 1 {
		t.Errorf("FrameStep() = %d, want 1 for a zero constructor argument", seq.FrameStep())
	}
	if seq.MissingFramePolicy() != MissingFramePolicyError {
		t.Errorf("MissingFramePolicy() = %q, want %q for an empty constructor argument", seq.MissingFramePolicy(), MissingFramePolicyError)
	}
}

func TestImageSequenceReferenceTargetURLForImageNumber(t *testing.T) {
	seq := NewImageSequenceReference("seq", "file:///frames/", "frame.", ".exr", 1, 1, 24, 4, nil, nil, "")
	got := seq.TargetURLForImageNumber(42)
	want := "file:///frames/frame.0042.exr"
	if got != want {
		t.Errorf("TargetURLForImageNumber(42) = %q, want %q", got, want)
	}
}

func TestImageSequenceReferenceFrameForTime(t *testing.T) {
	seq := NewImageSequenceReference("seq", "file:///frames/", "frame.", ".exr", 100, 1, 24, 4, nil, nil, "")
	frame := seq.FrameForTime(rtime.New(10, 24))
	if frame != 110 {
		t.Errorf("FrameForTime(10@24) = %d, want 110", frame)
	}
}

func TestImageSequenceReferenceNumberOfImagesAndEndFrame(t *testing.T) {
	avail := rtime.NewTimeRange(rtime.New(0, 24), rtime.New(240, 24))
	seq := NewImageSequenceReference("seq", "file:///frames/", "frame.", ".exr", 1, 1, 24, 4, &avail, nil, "")

	n := seq.NumberOfImagesInSequence()
	if n != 240 {
		t.Errorf("NumberOfImagesInSequence() = %d, want 240", n)
	}
	if seq.EndFrame() != 240 {
		t.Errorf("EndFrame() = %d, want 240", seq.EndFrame())
	}
}

func TestImageSequenceReferenceNumberOfImagesWithoutAvailableRange(t *testing.T) {
	seq := NewImageSequenceReference("seq", "file:///frames/", "frame.", ".exr", 1, 1, 24, 4, nil, nil, "")
	if seq.NumberOfImagesInSequence() != 0 {
		t.Error("NumberOfImagesInSequence should be 0 without an available range")
	}
}
