// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the otioframe project

package timeline

import "testing"

func TestComposableBaseNameAndMetadata(t *testing.T) {
	track := NewTrack("V1", nil, "", nil, nil)
	if track.Name() != "V1" {
		t.Errorf("Name() = %q, want V1", track.Name())
	}
	track.SetName("V2")
	if track.Name() != "V2" {
		t.Errorf("Name() after SetName = %q, want V2", track.Name())
	}
	if track.Metadata() == nil {
		t.Error("a nil metadata argument should be replaced with an empty dictionary")
	}
}

func TestComposableBaseVisibleOverlappingDefaults(t *testing.T) {
	gap := NewGap("g", nil, nil, nil, nil, nil)
	if !gap.Visible() {
		t.Error("an ordinary Composable should default to Visible() true")
	}
	if gap.Overlapping() {
		t.Error("an ordinary Composable should default to Overlapping() false")
	}
}

func TestComposableBaseParentLifecycle(t *testing.T) {
	track := NewTrack("V1", nil, "", nil, nil)
	clip := NewClip("c", nil, nil, nil, nil, nil, "", nil)

	if clip.Parent() != nil {
		t.Fatal("a freshly constructed Composable should have no parent")
	}
	if err := track.AppendChild(clip); err != nil {
		t.Fatalf("AppendChild: %v", err)
	}
	if clip.Parent() == nil {
		t.Error("AppendChild should set the child's parent back-reference")
	}
	clip.ClearParent()
	if clip.Parent() != nil {
		t.Error("ClearParent should clear the back-reference")
	}
}
