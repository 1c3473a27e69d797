// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the otioframe project

package timeline

import (
	"github.com/rkoesters/otioframe/dynval"
	"github.com/rkoesters/otioframe/object"
	"github.com/rkoesters/otioframe/registry"
	"github.com/rkoesters/otioframe/schema"
)

// SerializableCollection is a named, ordered, metadata-bearing bag of
// top-level serializable objects: a file container for a batch of
// timelines, clips, or other collections that do not share a single
// parent Composition.
type SerializableCollection struct {
	object.Object

	name     string
	metadata *dynval.OrderedDict
	children []object.SerializableObject
}

// NewSerializableCollection constructs a SerializableCollection.
func NewSerializableCollection(name string, children []object.SerializableObject, metadata *dynval.OrderedDict) *SerializableCollection {
	if children == nil {
		children = make([]object.SerializableObject, 0)
	}
	if metadata == nil {
		metadata = dynval.NewOrderedDict()
	}
	return &SerializableCollection{name: name, children: children, metadata: metadata}
}

func (s *SerializableCollection) Name() string                 { return s.name }
func (s *SerializableCollection) SetName(name string)          { s.name = name }
func (s *SerializableCollection) Metadata() *dynval.OrderedDict { return s.metadata }
func (s *SerializableCollection) Children() []object.SerializableObject {
	return s.children
}

// SetChildren replaces the whole child list.
func (s *SerializableCollection) SetChildren(children []object.SerializableObject) {
	if children == nil {
		children = make([]object.SerializableObject, 0)
	}
	s.children = children
}

// AppendChild appends a child to the end of the collection.
func (s *SerializableCollection) AppendChild(child object.SerializableObject) {
	s.children = append(s.children, child)
}

// InsertChild inserts child at index, shifting later children right.
func (s *SerializableCollection) InsertChild(index int, child object.SerializableObject) error {
	if index < 0 || index > len(s.children) {
		return registry.NewError(registry.KindIllegalIndex, "serializable collection child index out of range")
	}
	s.children = append(s.children[:index:index], append([]object.SerializableObject{child}, s.children[index:]...)...)
	return nil
}

// RemoveChild removes the child at index.
func (s *SerializableCollection) RemoveChild(index int) error {
	if index < 0 || index >= len(s.children) {
		return registry.NewError(registry.KindIllegalIndex, "serializable collection child index out of range")
	}
	s.children = append(s.children[:index], s.children[index+1:]...)
	return nil
}

// ClearChildren empties the collection.
func (s *SerializableCollection) ClearChildren() {
	s.children = make([]object.SerializableObject, 0)
}

// FindChildren returns every child for which filter reports true, or
// every child if filter is nil.
func (s *SerializableCollection) FindChildren(filter func(object.SerializableObject) bool) []object.SerializableObject {
	var result []object.SerializableObject
	for _, child := range s.children {
		if filter == nil || filter(child) {
			result = append(result, child)
		}
	}
	return result
}

func (s *SerializableCollection) SchemaName() string { return "SerializableCollection" }
func (s *SerializableCollection) SchemaVersion() int { return 1 }

// ReadFrom populates s's plain fields. Children are resolved through the
// type registry and attached by the codec Reader, the same deferral used
// for Composition children, Clip media references, and Item effects and
// markers.
func (s *SerializableCollection) ReadFrom(dict *dynval.OrderedDict) error {
	if v, ok := dict.Get("name"); ok {
		s.name, _ = v.AsString()
	}
	if v, ok := dict.Get("metadata"); ok {
		if d, ok := v.AsDict(); ok {
			s.metadata = d
		}
	}
	if s.metadata == nil {
		s.metadata = dynval.NewOrderedDict()
	}
	if s.children == nil {
		s.children = make([]object.SerializableObject, 0)
	}
	return nil
}

func init() {
	schema.Register("SerializableCollection", 1, func() schema.Reader {
		return NewSerializableCollection("", nil, nil)
	}, nil, nil)
}
