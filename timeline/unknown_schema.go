// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the otioframe project

package timeline

import "github.com/rkoesters/otioframe/dynval"

// UnknownSchema stands in for a decoded object whose OTIO_SCHEMA name has
// no registered factory. It preserves the entire
// decoded dictionary unexamined so that re-encoding the same tree losslessly
// reproduces the original data, per the schema registry's compatibility
// contract: a reader from a newer otioframe must not destroy data it does
// not understand yet.
type UnknownSchema struct {
	originalSchemaName    string
	originalSchemaVersion int
	data                  *dynval.OrderedDict
}

// NewUnknownSchema constructs an UnknownSchema. The codec package's Reader
// calls this directly (rather than through the type registry, since by
// definition no factory is registered for originalSchemaName) when
// InstanceFromSchema reports no match.
func NewUnknownSchema(originalSchemaName string, originalSchemaVersion int, data *dynval.OrderedDict) *UnknownSchema {
	if data == nil {
		data = dynval.NewOrderedDict()
	}
	return &UnknownSchema{
		originalSchemaName:    originalSchemaName,
		originalSchemaVersion: originalSchemaVersion,
		data:                  data,
	}
}

// SchemaName returns "UnknownSchema", not the name of the schema it
// preserves: callers that need the preserved name use OriginalSchemaName.
func (u *UnknownSchema) SchemaName() string { return "UnknownSchema" }

// SchemaVersion always reports 1: UnknownSchema itself is not versioned.
func (u *UnknownSchema) SchemaVersion() int { return 1 }

// OriginalSchemaName returns the unregistered schema name this object
// preserves.
func (u *UnknownSchema) OriginalSchemaName() string { return u.originalSchemaName }

// OriginalSchemaVersion returns the unregistered schema version this
// object preserves.
func (u *UnknownSchema) OriginalSchemaVersion() int { return u.originalSchemaVersion }

// Data returns the preserved dictionary, including its OTIO_SCHEMA field.
func (u *UnknownSchema) Data() *dynval.OrderedDict { return u.data }
