// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the otioframe project

package timeline

import (
	"fmt"

	"github.com/rkoesters/otioframe/dynval"
	"github.com/rkoesters/otioframe/rtime"
	"github.com/rkoesters/otioframe/schema"
)

// MissingFramePolicy controls how a reader should treat a frame number
// outside the sequence's available range.
type MissingFramePolicy string

const (
	MissingFramePolicyError MissingFramePolicy = "error"
	MissingFramePolicyHold  MissingFramePolicy = "hold"
	MissingFramePolicyBlack MissingFramePolicy = "black"
)

// ImageSequenceReference is a MediaReference naming a numbered sequence of
// image files sharing a prefix/suffix and zero-padding convention.
type ImageSequenceReference struct {
	MediaReferenceBase
	targetURLBase      string
	namePrefix         string
	nameSuffix         string
	startFrame         int
	frameStep          int
	rate               float64
	frameZeroPadding   int
	missingFramePolicy MissingFramePolicy
}

// NewImageSequenceReference constructs an ImageSequenceReference. A zero
// frameStep defaults to 1; an empty missingFramePolicy defaults to
// MissingFramePolicyError.
func NewImageSequenceReference(name, targetURLBase, namePrefix, nameSuffix string, startFrame, frameStep int, rate float64, frameZeroPadding int, availableRange *rtime.TimeRange, metadata *dynval.OrderedDict, missingFramePolicy MissingFramePolicy) *ImageSequenceReference {
	if frameStep == 0 {
		frameStep = 1
	}
	if missingFramePolicy == "" {
		missingFramePolicy = MissingFramePolicyError
	}
	return &ImageSequenceReference{
		MediaReferenceBase: NewMediaReferenceBase(name, availableRange, metadata, nil),
		targetURLBase:      targetURLBase,
		namePrefix:         namePrefix,
		nameSuffix:         nameSuffix,
		startFrame:         startFrame,
		frameStep:          frameStep,
		rate:               rate,
		frameZeroPadding:   frameZeroPadding,
		missingFramePolicy: missingFramePolicy,
	}
}

func (i *ImageSequenceReference) TargetURLBase() string            { return i.targetURLBase }
func (i *ImageSequenceReference) SetTargetURLBase(url string)      { i.targetURLBase = url }
func (i *ImageSequenceReference) NamePrefix() string                { return i.namePrefix }
func (i *ImageSequenceReference) SetNamePrefix(prefix string)       { i.namePrefix = prefix }
func (i *ImageSequenceReference) NameSuffix() string                { return i.nameSuffix }
func (i *ImageSequenceReference) SetNameSuffix(suffix string)       { i.nameSuffix = suffix }
func (i *ImageSequenceReference) StartFrame() int                   { return i.startFrame }
func (i *ImageSequenceReference) SetStartFrame(frame int)           { i.startFrame = frame }
func (i *ImageSequenceReference) FrameStep() int                    { return i.frameStep }
func (i *ImageSequenceReference) SetFrameStep(step int)             { i.frameStep = step }
func (i *ImageSequenceReference) Rate() float64                     { return i.rate }
func (i *ImageSequenceReference) SetRate(rate float64)              { i.rate = rate }
func (i *ImageSequenceReference) FrameZeroPadding() int              { return i.frameZeroPadding }
func (i *ImageSequenceReference) SetFrameZeroPadding(padding int)    { i.frameZeroPadding = padding }
func (i *ImageSequenceReference) MissingFramePolicy() MissingFramePolicy {
	return i.missingFramePolicy
}
func (i *ImageSequenceReference) SetMissingFramePolicy(policy MissingFramePolicy) {
	i.missingFramePolicy = policy
}

// TargetURLForImageNumber renders the file URL for one frame of the
// sequence, zero-padded to frameZeroPadding digits.
func (i *ImageSequenceReference) TargetURLForImageNumber(frameNumber int) string {
	format := fmt.Sprintf("%%s%%s%%0%dd%%s", i.frameZeroPadding)
	return fmt.Sprintf(format, i.targetURLBase, i.namePrefix, frameNumber, i.nameSuffix)
}

// FrameForTime converts a RationalTime offset into the sequence into an
// absolute frame number.
func (i *ImageSequenceReference) FrameForTime(t rtime.RationalTime) int {
	return i.startFrame + int(t.Value)*i.frameStep
}

// NumberOfImagesInSequence returns how many frames AvailableRange spans at
// the sequence's own rate, or 0 if AvailableRange is unset.
func (i *ImageSequenceReference) NumberOfImagesInSequence() int {
	if i.availableRange == nil || i.rate == 0 {
		return 0
	}
	return int(i.availableRange.Duration.ToFramesAtRate(i.rate))
}

// EndFrame returns the last frame number in the sequence.
func (i *ImageSequenceReference) EndFrame() int {
	n := i.NumberOfImagesInSequence()
	if n == 0 {
		return i.startFrame
	}
	return i.startFrame + (n-1)*i.frameStep
}

func (i *ImageSequenceReference) SchemaName() string { return "ImageSequenceReference" }
func (i *ImageSequenceReference) SchemaVersion() int { return 1 }

func (i *ImageSequenceReference) ReadFrom(dict *dynval.OrderedDict) error {
	i.readFrom(dict)
	if v, ok := dict.Get("target_url_base"); ok {
		i.targetURLBase, _ = v.AsString()
	}
	if v, ok := dict.Get("name_prefix"); ok {
		i.namePrefix, _ = v.AsString()
	}
	if v, ok := dict.Get("name_suffix"); ok {
		i.nameSuffix, _ = v.AsString()
	}
	if v, ok := dict.Get("start_frame"); ok {
		if n, ok := v.AsInt64(); ok {
			i.startFrame = int(n)
		}
	}
	if v, ok := dict.Get("frame_step"); ok {
		if n, ok := v.AsInt64(); ok {
			i.frameStep = int(n)
		}
	}
	if i.frameStep == 0 {
		i.frameStep = 1
	}
	if v, ok := dict.Get("rate"); ok {
		i.rate, _ = v.AsFloat64()
	}
	if v, ok := dict.Get("frame_zero_padding"); ok {
		if n, ok := v.AsInt64(); ok {
			i.frameZeroPadding = int(n)
		}
	}
	if v, ok := dict.Get("missing_frame_policy"); ok {
		if s, ok := v.AsString(); ok {
			i.missingFramePolicy = MissingFramePolicy(s)
		}
	}
	if i.missingFramePolicy == "" {
		i.missingFramePolicy = MissingFramePolicyError
	}
	return nil
}

func init() {
	schema.Register("ImageSequenceReference", 1, func() schema.Reader {
		return NewImageSequenceReference("", "", "", "", 0, 1, 0, 0, nil, nil, "")
	}, nil, nil)
}
