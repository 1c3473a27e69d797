// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the otioframe project

package registry

import (
	"errors"
	"testing"
)

func TestCoreErrorStringIncludesDetail(t *testing.T) {
	err := NewError(KindKeyNotFound, "no such media reference key")
	want := "KeyNotFound: no such media reference key"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestCoreErrorStringOmitsEmptyDetail(t *testing.T) {
	err := NewError(KindNotImplemented, "")
	if got := err.Error(); got != "NotImplemented" {
		t.Errorf("Error() = %q, want %q", got, "NotImplemented")
	}
}

func TestCoreErrorIsMatchesByKindOnly(t *testing.T) {
	err := NewErrorWithSubject(KindIllegalIndex, "index 5 out of range", 5)
	if !errors.Is(err, Sentinel(KindIllegalIndex)) {
		t.Error("errors.Is should match a Sentinel with the same Kind")
	}
	if errors.Is(err, Sentinel(KindKeyNotFound)) {
		t.Error("errors.Is should not match a Sentinel with a different Kind")
	}
}

func TestUnknownKindStringIsUnknown(t *testing.T) {
	var k ErrorKind = 999
	if k.String() != "Unknown" {
		t.Errorf("String() = %q, want %q", k.String(), "Unknown")
	}
}
