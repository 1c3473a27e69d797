// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the otioframe project

package object

import "testing"

type fakeChild struct {
	parent WeakParent[*fakeEntity]
}

func (c *fakeChild) ClearParent() { c.parent.Clear() }

func TestDetachFromParentClearsWeakParent(t *testing.T) {
	p := &fakeEntity{}
	c := &fakeChild{}
	c.parent.Set(p)

	DetachFromParent(c)

	if _, ok := c.parent.Get(); ok {
		t.Error("expected parent to be cleared after DetachFromParent")
	}
}

func TestDetachFromParentNilIsNoop(t *testing.T) {
	DetachFromParent(nil) // must not panic
}

func TestDetachFromParentAlreadyUnparentedIsNoop(t *testing.T) {
	c := &fakeChild{}
	DetachFromParent(c) // must not panic even with no parent set
	if _, ok := c.parent.Get(); ok {
		t.Error("expected no parent after DetachFromParent on an unparented child")
	}
}
