// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the otioframe project

package dynval

import (
	"testing"

	"github.com/rkoesters/otioframe/registry"
)

func TestOrderedDictSetGet(t *testing.T) {
	d := NewOrderedDict()
	d.Set("a", Int64(1))
	d.Set("b", Int64(2))
	v, ok := d.Get("a")
	if !ok {
		t.Fatal("expected key a to be present")
	}
	if i, _ := v.AsInt64(); i != 1 {
		t.Errorf("got %d, want 1", i)
	}
}

func TestOrderedDictPreservesInsertionOrder(t *testing.T) {
	d := NewOrderedDict()
	d.Set("z", Int64(1))
	d.Set("a", Int64(2))
	d.Set("m", Int64(3))
	d.Set("a", Int64(4)) // overwrite should not move position

	want := []string{"z", "a", "m"}
	got := d.Keys()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Keys()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestOrderedDictDeleteMissingKey(t *testing.T) {
	d := NewOrderedDict()
	err := d.Delete("missing")
	if err == nil {
		t.Fatal("expected KeyNotFound error")
	}
	ce, ok := err.(*registry.CoreError)
	if !ok || ce.Kind != registry.KindKeyNotFound {
		t.Errorf("expected KeyNotFound, got %v", err)
	}
}

func TestOrderedDictIteratorInvalidatedOnMutation(t *testing.T) {
	d := NewOrderedDict()
	d.Set("a", Int64(1))

	it := d.Iterator()
	if _, _, ok, err := it.Next(); err != nil || !ok {
		t.Fatalf("expected first entry, got ok=%v err=%v", ok, err)
	}

	d.Set("b", Int64(2))

	_, _, _, err := it.Next()
	if err == nil {
		t.Fatal("expected IteratorInvalidated error after mutation")
	}
	ce, ok := err.(*registry.CoreError)
	if !ok || ce.Kind != registry.KindIteratorInvalidated {
		t.Errorf("expected IteratorInvalidated, got %v", err)
	}
}

func TestOrderedDictClear(t *testing.T) {
	d := NewOrderedDict()
	d.Set("a", Int64(1))
	d.Clear()
	if d.Len() != 0 {
		t.Errorf("Len() = %d, want 0 after Clear", d.Len())
	}
	if _, ok := d.Get("a"); ok {
		t.Error("expected key a to be gone after Clear")
	}
}
