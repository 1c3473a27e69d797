// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the otioframe project

package dynval

import "github.com/rkoesters/otioframe/registry"

// OrderedDict is a string-keyed dictionary that preserves insertion order
// for deterministic JSON output. As with Array, every structural mutation
// bumps a mutation stamp that invalidates outstanding iterators.
type OrderedDict struct {
	keys   []string
	values map[string]Value
	stamp  uint64
}

// NewOrderedDict returns an empty OrderedDict.
func NewOrderedDict() *OrderedDict {
	return &OrderedDict{values: make(map[string]Value)}
}

// Len returns the number of entries.
func (d *OrderedDict) Len() int {
	if d == nil {
		return 0
	}
	return len(d.keys)
}

// Get returns the value for key and whether it was present.
func (d *OrderedDict) Get(key string) (Value, bool) {
	v, ok := d.values[key]
	return v, ok
}

// Set inserts or overwrites key with value, appending to the insertion
// order only if key was not already present.
func (d *OrderedDict) Set(key string, value Value) {
	if d.values == nil {
		d.values = make(map[string]Value)
	}
	if _, exists := d.values[key]; !exists {
		d.keys = append(d.keys, key)
	}
	d.values[key] = value
	d.stamp++
}

// Delete removes key, returning KeyNotFound if it was not present.
func (d *OrderedDict) Delete(key string) error {
	if _, ok := d.values[key]; !ok {
		return registry.NewError(registry.KindKeyNotFound, "key not found: "+key)
	}
	delete(d.values, key)
	for i, k := range d.keys {
		if k == key {
			d.keys = append(d.keys[:i], d.keys[i+1:]...)
			break
		}
	}
	d.stamp++
	return nil
}

// Clear empties the dictionary.
func (d *OrderedDict) Clear() {
	d.keys = nil
	d.values = make(map[string]Value)
	d.stamp++
}

// Keys returns a snapshot slice of keys in insertion order.
func (d *OrderedDict) Keys() []string {
	out := make([]string, len(d.keys))
	copy(out, d.keys)
	return out
}

// Clone returns a deep copy of d.
func (d *OrderedDict) Clone() *OrderedDict {
	if d == nil {
		return nil
	}
	out := NewOrderedDict()
	for _, k := range d.keys {
		out.Set(k, d.values[k].Clone())
	}
	return out
}

func (d *OrderedDict) equal(other *OrderedDict) bool {
	if d == nil || other == nil {
		return d == other
	}
	if len(d.keys) != len(other.keys) {
		return false
	}
	for _, k := range d.keys {
		ov, ok := other.values[k]
		if !ok || !d.values[k].Equal(ov) {
			return false
		}
	}
	return true
}

// DictIterator walks an OrderedDict's entries in insertion order, failing
// safely if the dictionary is mutated while iteration is outstanding.
type DictIterator struct {
	dict  *OrderedDict
	stamp uint64
	index int
}

// Iterator returns a new DictIterator positioned before the first entry.
func (d *OrderedDict) Iterator() *DictIterator {
	return &DictIterator{dict: d, stamp: d.stamp, index: -1}
}

// Next advances the iterator and returns the entry now at its position, or
// ok=false once exhausted. It fails with IteratorInvalidated if the
// dictionary was mutated since the iterator (or its last successful Next)
// was taken.
func (it *DictIterator) Next() (key string, value Value, ok bool, err error) {
	if it.stamp != it.dict.stamp {
		return "", Value{}, false, registry.NewError(registry.KindIteratorInvalidated,
			"dictionary was mutated since this iterator was created")
	}
	it.index++
	if it.index >= len(it.dict.keys) {
		return "", Value{}, false, nil
	}
	k := it.dict.keys[it.index]
	return k, it.dict.values[k], true, nil
}
