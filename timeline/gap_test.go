// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the otioframe project

package timeline

import (
	"testing"

	"github.com/rkoesters/otioframe/rtime"
)

func TestNewGapWithDurationStartsAtZero(t *testing.T) {
	duration := rtime.New(48, 24)
	gap := NewGapWithDuration(duration)

	ar, err := gap.AvailableRange()
	if err != nil {
		t.Fatalf("AvailableRange: %v", err)
	}
	if ar.StartTime.Value != 0 {
		t.Errorf("AvailableRange().StartTime = %v, want 0", ar.StartTime)
	}
	if !ar.Duration.Equal(duration) {
		t.Errorf("AvailableRange().Duration = %v, want %v", ar.Duration, duration)
	}
}

func TestGapWithoutSourceRangeHasNoAvailableRange(t *testing.T) {
	gap := NewGap("g", nil, nil, nil, nil, nil)
	if _, err := gap.AvailableRange(); err == nil {
		t.Error("a Gap constructed without a source range should fail AvailableRange")
	}
}
