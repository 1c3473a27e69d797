// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the otioframe project

package timeline

import (
	"github.com/rkoesters/otioframe/dynval"
	"github.com/rkoesters/otioframe/rtime"
	"github.com/rkoesters/otioframe/schema"
)

// ExternalReference is a MediaReference resolved by a URL.
type ExternalReference struct {
	MediaReferenceBase
	targetURL string
}

// NewExternalReference constructs an ExternalReference.
func NewExternalReference(name, targetURL string, availableRange *rtime.TimeRange, metadata *dynval.OrderedDict) *ExternalReference {
	return &ExternalReference{
		MediaReferenceBase: NewMediaReferenceBase(name, availableRange, metadata, nil),
		targetURL:          targetURL,
	}
}

func (e *ExternalReference) TargetURL() string        { return e.targetURL }
func (e *ExternalReference) SetTargetURL(url string)  { e.targetURL = url }
func (e *ExternalReference) SchemaName() string       { return "ExternalReference" }
func (e *ExternalReference) SchemaVersion() int       { return 1 }

func (e *ExternalReference) ReadFrom(dict *dynval.OrderedDict) error {
	e.readFrom(dict)
	if v, ok := dict.Get("target_url"); ok {
		e.targetURL, _ = v.AsString()
	}
	return nil
}

func init() {
	schema.Register("ExternalReference", 1, func() schema.Reader {
		return NewExternalReference("", "", nil, nil)
	}, nil, nil)
}
