// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the otioframe project

package timeline

import (
	"github.com/rkoesters/otioframe/dynval"
	"github.com/rkoesters/otioframe/registry"
	"github.com/rkoesters/otioframe/rtime"
	"github.com/rkoesters/otioframe/schema"
)

// DefaultMediaKey names the primary media reference slot of a Clip.
const DefaultMediaKey = "DEFAULT_MEDIA"

// Clip is a segment of editable media, usually audio or video.
type Clip struct {
	ItemBase
	mediaReferences         map[string]MediaReference
	activeMediaReferenceKey string
}

// NewClip constructs a Clip. A nil mediaReference is replaced with a
// MissingReference so MediaReference() never returns nil. An empty
// activeMediaReferenceKey defaults to DefaultMediaKey.
func NewClip(name string, mediaReference MediaReference, sourceRange *rtime.TimeRange, metadata *dynval.OrderedDict, effects []Effect, markers []*Marker, activeMediaReferenceKey string, color *Color) *Clip {
	if activeMediaReferenceKey == "" {
		activeMediaReferenceKey = DefaultMediaKey
	}
	refs := make(map[string]MediaReference)
	if mediaReference != nil {
		refs[activeMediaReferenceKey] = mediaReference
	} else {
		refs[activeMediaReferenceKey] = NewMissingReference("", nil, nil)
	}
	c := &Clip{
		ItemBase:                NewItemBase(name, sourceRange, metadata, effects, markers, true, color),
		mediaReferences:         refs,
		activeMediaReferenceKey: activeMediaReferenceKey,
	}
	c.SetSelf(c)
	return c
}

// MediaReference returns the active media reference.
func (c *Clip) MediaReference() MediaReference {
	return c.mediaReferences[c.activeMediaReferenceKey]
}

// SetMediaReference replaces the active media reference. A nil argument
// is replaced with a MissingReference.
func (c *Clip) SetMediaReference(ref MediaReference) {
	if ref == nil {
		ref = NewMissingReference("", nil, nil)
	}
	c.mediaReferences[c.activeMediaReferenceKey] = ref
}

// MediaReferences returns every named media reference slot.
func (c *Clip) MediaReferences() map[string]MediaReference { return c.mediaReferences }

// SetMediaReferences replaces the whole set of named references and
// switches the active key. It fails with KeyNotFound if activeKey is not
// one of refs' keys.
func (c *Clip) SetMediaReferences(refs map[string]MediaReference, activeKey string) error {
	if _, ok := refs[activeKey]; !ok {
		return registry.NewError(registry.KindKeyNotFound, "active media reference key not present in refs")
	}
	c.mediaReferences = refs
	c.activeMediaReferenceKey = activeKey
	return nil
}

// ActiveMediaReferenceKey returns the key of the currently active slot.
func (c *Clip) ActiveMediaReferenceKey() string { return c.activeMediaReferenceKey }

// SetActiveMediaReferenceKey switches slots, failing with KeyNotFound if
// key has no corresponding reference.
func (c *Clip) SetActiveMediaReferenceKey(key string) error {
	if _, ok := c.mediaReferences[key]; !ok {
		return registry.NewError(registry.KindKeyNotFound, "no media reference registered under key "+key)
	}
	c.activeMediaReferenceKey = key
	return nil
}

// AvailableRange is the active media reference's available range.
func (c *Clip) AvailableRange() (rtime.TimeRange, error) {
	ref := c.MediaReference()
	if ref == nil {
		return rtime.TimeRange{}, registry.NewError(registry.KindInternalError, "clip has no active media reference")
	}
	ar := ref.AvailableRange()
	if ar == nil {
		return rtime.TimeRange{}, registry.NewError(registry.KindInternalError,
			"active media reference has no available range")
	}
	return *ar, nil
}

// AvailableImageBounds forwards to the active media reference.
func (c *Clip) AvailableImageBounds() (*dynval.Box2d, error) {
	ref := c.MediaReference()
	if ref == nil {
		return nil, registry.NewError(registry.KindInternalError, "clip has no active media reference")
	}
	return ref.AvailableImageBounds(), nil
}

// Duration returns SourceRange's duration if set, else AvailableRange's.
func (c *Clip) Duration() (rtime.RationalTime, error) {
	if c.sourceRange != nil {
		return c.sourceRange.Duration, nil
	}
	ar, err := c.AvailableRange()
	if err != nil {
		return rtime.RationalTime{}, err
	}
	return ar.Duration, nil
}

func (c *Clip) SchemaName() string { return "Clip" }
func (c *Clip) SchemaVersion() int { return 2 }

// ReadFrom populates c's item-level fields. Media references, like
// effects and markers, are attached by the codec Reader after their own
// nested dictionaries have been resolved through the type registry.
func (c *Clip) ReadFrom(dict *dynval.OrderedDict) error {
	if err := readItemFrom(&c.ItemBase, dict); err != nil {
		return err
	}
	if v, ok := dict.Get("active_media_reference_key"); ok {
		c.activeMediaReferenceKey, _ = v.AsString()
	}
	if c.activeMediaReferenceKey == "" {
		c.activeMediaReferenceKey = DefaultMediaKey
	}
	if c.mediaReferences == nil {
		c.mediaReferences = map[string]MediaReference{
			c.activeMediaReferenceKey: NewMissingReference("", nil, nil),
		}
	}
	c.SetSelf(c)
	return nil
}

func init() {
	schema.Register("Clip", 2, func() schema.Reader {
		return NewClip("", nil, nil, nil, nil, nil, "", nil)
	}, nil, nil)
}
