// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the otioframe project

package object

// Parented is implemented by anything that can be detached from a
// composition parent — used to centralize the detach-before-reparent
// sequence in one place instead of repeating it at every concrete
// Composable constructor and insertion site.
type Parented interface {
	ClearParent()
}

// DetachFromParent clears child's weak parent back-reference if it has
// one. It is a no-op if child is nil or already unparented.
func DetachFromParent(child Parented) {
	if child == nil {
		return
	}
	child.ClearParent()
}
