// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the otioframe project

package timeline

import (
	"github.com/rkoesters/otioframe/dynval"
	"github.com/rkoesters/otioframe/rtime"
	"github.com/rkoesters/otioframe/schema"
)

// GeneratorReference is a MediaReference produced algorithmically (bars
// and tone, color fields, slates) rather than read from a file.
type GeneratorReference struct {
	MediaReferenceBase
	generatorKind string
	parameters    *dynval.OrderedDict
}

// NewGeneratorReference constructs a GeneratorReference.
func NewGeneratorReference(name, generatorKind string, parameters *dynval.OrderedDict, availableRange *rtime.TimeRange, metadata *dynval.OrderedDict) *GeneratorReference {
	if parameters == nil {
		parameters = dynval.NewOrderedDict()
	}
	return &GeneratorReference{
		MediaReferenceBase: NewMediaReferenceBase(name, availableRange, metadata, nil),
		generatorKind:      generatorKind,
		parameters:         parameters,
	}
}

func (g *GeneratorReference) GeneratorKind() string              { return g.generatorKind }
func (g *GeneratorReference) SetGeneratorKind(kind string)       { g.generatorKind = kind }
func (g *GeneratorReference) Parameters() *dynval.OrderedDict    { return g.parameters }
func (g *GeneratorReference) SetParameters(params *dynval.OrderedDict) {
	if params == nil {
		params = dynval.NewOrderedDict()
	}
	g.parameters = params
}

func (g *GeneratorReference) SchemaName() string { return "GeneratorReference" }
func (g *GeneratorReference) SchemaVersion() int { return 1 }

func (g *GeneratorReference) ReadFrom(dict *dynval.OrderedDict) error {
	g.readFrom(dict)
	if v, ok := dict.Get("generator_kind"); ok {
		g.generatorKind, _ = v.AsString()
	}
	if v, ok := dict.Get("parameters"); ok {
		if d, ok := v.AsDict(); ok {
			g.parameters = d
		}
	}
	if g.parameters == nil {
		g.parameters = dynval.NewOrderedDict()
	}
	return nil
}

func init() {
	schema.Register("GeneratorReference", 1, func() schema.Reader {
		return NewGeneratorReference("", "", nil, nil, nil)
	}, nil, nil)
}
