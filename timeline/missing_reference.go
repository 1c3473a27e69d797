// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the otioframe project

package timeline

import (
	"github.com/rkoesters/otioframe/dynval"
	"github.com/rkoesters/otioframe/rtime"
	"github.com/rkoesters/otioframe/schema"
)

// MissingReference is an explicit placeholder standing in for media known
// to be unavailable, rather than an absent MediaReference.
type MissingReference struct {
	MediaReferenceBase
}

// NewMissingReference constructs a MissingReference.
func NewMissingReference(name string, availableRange *rtime.TimeRange, metadata *dynval.OrderedDict) *MissingReference {
	return &MissingReference{MediaReferenceBase: NewMediaReferenceBase(name, availableRange, metadata, nil)}
}

func (m *MissingReference) IsMissingReference() bool { return true }
func (m *MissingReference) SchemaName() string       { return "MissingReference" }
func (m *MissingReference) SchemaVersion() int       { return 1 }

func (m *MissingReference) ReadFrom(dict *dynval.OrderedDict) error {
	m.readFrom(dict)
	return nil
}

func init() {
	schema.Register("MissingReference", 1, func() schema.Reader {
		return NewMissingReference("", nil, nil)
	}, nil, nil)
}
